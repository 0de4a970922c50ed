package extract

import (
	"context"

	"medsum/file"
)

// Client converts a document into a single text blob. An empty string means
// the service recognized no text; the caller decides what to do with that.
type Client interface {
	ExtractText(ctx context.Context, doc *file.Document) (string, error)
}
