package extract

import (
	"context"
	"log/slog"

	"github.com/chromedp/chromedp"
)

// Browser renders pages in headless Chrome before extracting the visible
// body text. Slower than Static but handles script-rendered content.
type Browser struct {
	logger *slog.Logger
}

// NewBrowser builds a Browser extractor. The Chrome process is launched
// per extraction and torn down with the tab context.
func NewBrowser(opts ...Option) *Browser {
	o := applyOptions(opts)
	return &Browser{logger: o.logger}
}

// ExtractText implements Extractor.
func (b *Browser) ExtractText(ctx context.Context, url string, maxLen int) (string, bool) {
	execOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
	)
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, execOpts...)
	defer cancelAlloc()
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	var text string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(url),
		chromedp.Text("body", &text, chromedp.ByQuery),
	)
	if err != nil {
		b.logger.WarnContext(ctx, "browser extraction failed", "url", url, "error", err)
		return "", false
	}
	return clean(text, maxLen), true
}
