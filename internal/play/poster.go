package play

import (
	"context"
	"fmt"
	"io"
)

// WriterPoster "posts" by writing the text to W. The CLI uses it to print
// the share text so it can be copied by hand.
type WriterPoster struct {
	W io.Writer
}

func (p WriterPoster) Post(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(p.W, text); err != nil {
		return fmt.Errorf("write share text: %w", err)
	}
	return nil
}
