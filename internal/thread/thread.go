package thread

import (
	"context"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/jfmyers9/chartthread/internal/charts"
	"github.com/jfmyers9/chartthread/internal/poster"
	"github.com/rs/zerolog"
)

// MaxPostLength is the character budget of a single post
const MaxPostLength = 280

// Thread is a composed chart thread: a title post followed by replies
type Thread struct {
	Title   string
	Replies []string
}

// Posts returns the title followed by the replies, in publishing order
func (t Thread) Posts() []string {
	return append([]string{t.Title}, t.Replies...)
}

// Composer turns charts into reply-chained threads
type Composer struct {
	poster poster.Poster
	maxLen int
	logger zerolog.Logger
}

// NewComposer creates a Composer that publishes through p
func NewComposer(p poster.Poster, logger zerolog.Logger) *Composer {
	return &Composer{
		poster: p,
		maxLen: MaxPostLength,
		logger: logger.With().Str("component", "thread").Logger(),
	}
}

// Line formats a chart entry. rank is the 1-based position in the full chart.
func Line(rank int, track charts.Track) string {
	return fmt.Sprintf("%d. %s - %s\n", rank, track.Name, track.Artist)
}

// Length counts characters the way the post budget does (code points)
func Length(s string) int {
	return utf8.RuneCountInString(s)
}

// Compose packs the ranked lines of tracks into replies of at most maxLen
// characters. A line is never split: one that is longer than maxLen on its
// own becomes an oversized reply.
func Compose(title string, tracks []charts.Track, maxLen int) Thread {
	t := Thread{Title: title}

	var buf strings.Builder
	bufLen := 0
	for i, track := range tracks {
		line := Line(i+1, track)
		lineLen := Length(line)

		if bufLen+lineLen > maxLen && bufLen > 0 {
			t.Replies = append(t.Replies, strings.TrimRightFunc(buf.String(), unicode.IsSpace))
			buf.Reset()
			bufLen = 0
		}

		buf.WriteString(line)
		bufLen += lineLen
	}

	if bufLen > 0 {
		t.Replies = append(t.Replies, strings.TrimRightFunc(buf.String(), unicode.IsSpace))
	}

	return t
}

// Publish posts the title, then each reply to the post before it. It
// returns the ids of the posts created, in order. The first failing post
// stops the thread and is returned as a charts.PostFailure; ids created
// before the failure are still returned.
func (c *Composer) Publish(ctx context.Context, title string, tracks []charts.Track) ([]string, error) {
	t := Compose(title, tracks, c.maxLen)

	ids := make([]string, 0, len(t.Replies)+1)
	tail := ""
	for i, text := range t.Posts() {
		id, err := c.poster.Post(ctx, text, tail)
		if err != nil {
			op := "post title"
			if i > 0 {
				op = fmt.Sprintf("post reply %d/%d", i, len(t.Replies))
			}
			return ids, &charts.Error{Kind: charts.PostFailure, Op: op, Err: err}
		}

		if n := Length(text); n > c.maxLen {
			c.logger.Warn().
				Str("id", id).
				Int("length", n).
				Msg("Posted oversized chart line")
		}

		ids = append(ids, id)
		tail = id
	}

	c.logger.Info().
		Str("title", title).
		Int("tracks", len(tracks)).
		Int("posts", len(ids)).
		Str("root", ids[0]).
		Msg("Published thread")

	return ids, nil
}
