package poster

import (
	"context"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

// ruleWidth is the display width of the separator printed above each post
const ruleWidth = 60

// ConsolePoster renders posts to a writer instead of publishing them.
// Ids are "dry-1", "dry-2", ... so reply chaining is visible in the output.
type ConsolePoster struct {
	out   io.Writer
	limit int
	next  int
}

// NewConsole creates a ConsolePoster that flags posts longer than limit
// characters (0 disables the check).
func NewConsole(out io.Writer, limit int) *ConsolePoster {
	return &ConsolePoster{out: out, limit: limit}
}

// Post prints the post with a header and returns a fake id.
func (c *ConsolePoster) Post(ctx context.Context, text, inReplyTo string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	c.next++
	id := fmt.Sprintf("dry-%d", c.next)

	if _, err := fmt.Fprintln(c.out, header(id, inReplyTo, utf8.RuneCountInString(text), c.limit)); err != nil {
		return "", err
	}
	if _, err := fmt.Fprintln(c.out, text); err != nil {
		return "", err
	}

	return id, nil
}

// header builds a fixed-width rule like
// "── dry-2 ↳ dry-1 · 245/280 ──────────────".
func header(id, inReplyTo string, length, limit int) string {
	label := "── " + id
	if inReplyTo != "" {
		label += " ↳ " + inReplyTo
	}
	if limit > 0 {
		label += fmt.Sprintf(" · %d/%d", length, limit)
		if length > limit {
			label += " OVER LIMIT"
		}
	} else {
		label += fmt.Sprintf(" · %d", length)
	}
	label += " "

	w := runewidth.StringWidth(label)
	if w >= ruleWidth {
		return label
	}
	return label + strings.Repeat("─", ruleWidth-w)
}
