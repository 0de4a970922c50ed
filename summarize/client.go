package summarize

import "context"

// Client turns an ordered sequence of text chunks into one summary string.
// The operation is all-or-nothing: a failure on any chunk fails the whole
// call and no partial summary is returned.
type Client interface {
	Summarize(ctx context.Context, chunks []string) (string, error)
}
