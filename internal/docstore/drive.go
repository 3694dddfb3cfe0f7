package docstore

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

// googleDocMimeType marks native Google Docs, which must be exported
// rather than downloaded.
const googleDocMimeType = "application/vnd.google-apps.document"

// DriveStore fetches documents from Google Drive using a service account.
type DriveStore struct {
	svc    *drive.Service
	logger *slog.Logger
}

// NewDrive builds a DriveStore authenticated with the service-account JSON
// file at credentialsFile, with read-only scope.
func NewDrive(ctx context.Context, credentialsFile string, logger *slog.Logger) (*DriveStore, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	svc, err := drive.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(drive.DriveReadonlyScope),
	)
	if err != nil {
		return nil, fmt.Errorf("docstore: init drive service: %w", err)
	}
	return &DriveStore{svc: svc, logger: logger}, nil
}

// FetchNamedDocument implements Store. It searches Drive for files whose
// name contains the given string and returns the content of the first hit.
// Google Docs are exported as text/plain; other files are downloaded raw.
func (d *DriveStore) FetchNamedDocument(ctx context.Context, name string) (string, bool, error) {
	query := fmt.Sprintf("name contains '%s'", strings.ReplaceAll(name, "'", `\'`))
	list, err := d.svc.Files.List().
		Q(query).
		PageSize(10).
		Fields("files(id, name, mimeType)").
		Context(ctx).
		Do()
	if err != nil {
		return "", false, fmt.Errorf("docstore: search %q: %w", name, err)
	}
	if len(list.Files) == 0 {
		d.logger.InfoContext(ctx, "no document matched", "name", name)
		return "", false, nil
	}

	file := list.Files[0]
	d.logger.InfoContext(ctx, "document found", "name", file.Name, "id", file.Id, "mime", file.MimeType)

	var resp io.ReadCloser
	if file.MimeType == googleDocMimeType {
		r, err := d.svc.Files.Export(file.Id, "text/plain").Context(ctx).Download()
		if err != nil {
			return "", false, fmt.Errorf("docstore: export %q: %w", file.Name, err)
		}
		resp = r.Body
	} else {
		r, err := d.svc.Files.Get(file.Id).Context(ctx).Download()
		if err != nil {
			return "", false, fmt.Errorf("docstore: download %q: %w", file.Name, err)
		}
		resp = r.Body
	}
	defer resp.Close()

	content, err := io.ReadAll(resp)
	if err != nil {
		return "", false, fmt.Errorf("docstore: read %q: %w", file.Name, err)
	}
	return string(content), true, nil
}
