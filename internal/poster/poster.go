package poster

import (
	"context"
)

// Poster publishes a single post, optionally as a reply, and returns the
// new post's id.
type Poster interface {
	Post(ctx context.Context, text, inReplyTo string) (string, error)
}
