// Package docstore provides the document-fetch capability used to load the
// optional research framework: a guidance document looked up by name.
// Absence is a valid, non-error outcome by contract — callers branch on the
// ok flag, errors mean the lookup itself failed.
package docstore

import "context"

// Store fetches named documents.
type Store interface {
	// FetchNamedDocument returns the plain-text content of the first
	// document whose name matches. ok is false when nothing matched.
	FetchNamedDocument(ctx context.Context, name string) (text string, ok bool, err error)
}
