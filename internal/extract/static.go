package extract

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/net/html"
)

const (
	userAgent      = "Mozilla/5.0 (Fathom Research Agent)"
	defaultTimeout = 10 * time.Second
)

// Option configures an extractor during construction.
type Option func(*options)

type options struct {
	httpClient *http.Client
	logger     *slog.Logger
}

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) { o.httpClient = c }
}

// WithLogger configures structured logging.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

func applyOptions(opts []Option) *options {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.httpClient == nil {
		o.httpClient = &http.Client{Timeout: defaultTimeout}
	}
	if o.logger == nil {
		o.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return o
}

// Static fetches pages with a plain HTTP GET and strips markup with an
// HTML tokenizer. No JavaScript execution; use the browser extractor for
// script-rendered pages.
type Static struct {
	httpClient *http.Client
	logger     *slog.Logger
}

// NewStatic builds a Static extractor.
func NewStatic(opts ...Option) *Static {
	o := applyOptions(opts)
	return &Static{httpClient: o.httpClient, logger: o.logger}
}

// ExtractText implements Extractor.
func (s *Static) ExtractText(ctx context.Context, url string, maxLen int) (string, bool) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		s.logger.WarnContext(ctx, "bad URL", "url", url, "error", err)
		return "", false
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		s.logger.WarnContext(ctx, "fetch failed", "url", url, "error", err)
		return "", false
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		s.logger.WarnContext(ctx, "fetch failed", "url", url, "status", resp.StatusCode)
		return "", false
	}

	text, err := htmlToText(resp.Body)
	if err != nil {
		s.logger.WarnContext(ctx, "parse failed", "url", url, "error", err)
		return "", false
	}
	return clean(text, maxLen), true
}

// skippedElements never contribute visible text.
var skippedElements = map[string]struct{}{
	"script": {}, "style": {}, "noscript": {}, "iframe": {}, "head": {},
}

// htmlToText walks the document tree collecting text nodes, skipping
// non-content elements.
func htmlToText(r io.Reader) (string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if _, skip := skippedElements[n.Data]; skip {
				return
			}
		}
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
			sb.WriteByte(' ')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return sb.String(), nil
}
