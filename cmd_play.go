// cmd_play.go
//
// "play" command: a line-driven terminal game.
//
// Input lines:
//   - a five-letter word     submits it directly
//   - other letters          are typed into the active row
//   - an empty line          submits the typed row
//   - "<" (one per letter)   removes typed letters
//   - ":listen"              voice input, when a listener is configured
//   - ":share"               prints the shareable result once the game is over
//   - ":quit"                leaves the game

package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle/apps/deepwordle/internal/daily"
	"github.com/robalobadob/wordle/apps/deepwordle/internal/game"
	"github.com/robalobadob/wordle/apps/deepwordle/internal/play"
	"github.com/robalobadob/wordle/apps/deepwordle/internal/words"
)

var (
	playDaily  bool
	playAnswer string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a game in the terminal",
	Args:  cobra.NoArgs,
	RunE:  runPlay,
}

func addPlayFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&playDaily, "daily", false, "Play today's word instead of a random one")
	cmd.Flags().StringVar(&playAnswer, "answer", "", "Play a fixed answer (must be in the word list)")
}

func init() {
	addPlayFlags(playCmd)
}

func runPlay(cmd *cobra.Command, args []string) error {
	sess, err := newSession(lists, time.Now())
	if err != nil {
		return err
	}
	c := play.New(sess, play.Options{
		Poster:         play.WriterPoster{W: cmd.OutOrStdout()},
		ListenDuration: cfg.ListenDuration,
		ShareFooter:    cfg.ShareFooter,
		Logger:         log.Logger,
	})
	t := &terminal{in: cmd.InOrStdin(), out: cmd.OutOrStdout(), c: c}
	return t.run(cmd.Context())
}

// newSession picks the secret from the --answer/--daily flags.
func newSession(l *words.Lists, now time.Time) (*game.Session, error) {
	var secret string
	switch {
	case playAnswer != "":
		if !l.IsAllowed(playAnswer) {
			return nil, fmt.Errorf("answer %q is not in the word list", playAnswer)
		}
		secret = playAnswer
	case playDaily:
		secret = l.At(daily.WordIndex(now, cfg.DailySalt, len(l.Answers())))
	default:
		secret = l.Random()
	}
	return game.New(uuid.NewString(), l, secret, daily.DayIndex(now, cfg.Epoch())), nil
}

// terminal feeds input lines to a controller and prints the grid after each.
type terminal struct {
	in    io.Reader
	out   io.Writer
	c     *play.Controller
	voice bool // a listener is configured
}

func (t *terminal) run(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	t.render()

	sc := bufio.NewScanner(t.in)
	for sc.Scan() {
		if err := t.line(ctx, strings.TrimSpace(sc.Text())); err != nil {
			return err
		}
		if t.c.Quit() {
			return nil
		}
		t.render()
	}
	if err := sc.Err(); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("read input: %w", err)
	}
	return nil
}

func (t *terminal) line(ctx context.Context, s string) error {
	switch s {
	case "":
		return t.key(ctx, play.Key{Type: play.KeyEnter})
	case ":quit", ":q":
		return t.key(ctx, play.Key{Type: play.KeyQuit})
	case ":share":
		if t.c.Session().IsOver() {
			fmt.Fprintln(t.out, play.MsgSharing)
		}
		return t.key(ctx, play.Key{Type: play.KeyShare})
	case ":listen":
		if t.voice {
			fmt.Fprintf(t.out, play.MsgRecording+"\n", cfg.ListenDuration)
		}
		return t.key(ctx, play.Key{Type: play.KeyListen})
	}

	if strings.Trim(s, "<") == "" {
		for range s {
			if err := t.key(ctx, play.Key{Type: play.KeyBackspace}); err != nil {
				return err
			}
		}
		return nil
	}

	if len(s) == game.WordLength {
		_, _, err := t.c.Submit(s)
		if err != nil && !errors.Is(err, game.ErrTooShort) && !errors.Is(err, game.ErrNotInWordList) && !errors.Is(err, game.ErrGameOver) {
			return err
		}
		return nil
	}

	for _, r := range s {
		if err := t.key(ctx, play.Letter(r)); err != nil {
			return err
		}
	}
	return nil
}

func (t *terminal) key(ctx context.Context, k play.Key) error {
	_, err := t.c.HandleKey(ctx, k)
	if errors.Is(err, play.ErrBusy) {
		return nil
	}
	return err
}

// render prints the submitted rows, the row being typed and the message.
func (t *terminal) render() {
	t.c.View(func(s *game.Session, message string) {
		g := s.Grid()
		cells := g.Cells()
		for r := 0; r < g.Submitted(); r++ {
			row := cells[r*game.WordLength : (r+1)*game.WordLength]
			var letters, tokens strings.Builder
			for _, l := range row {
				letters.WriteString(l.String())
				tokens.WriteString(l.State.Token())
			}
			fmt.Fprintf(t.out, "%s  %s\n", letters.String(), tokens.String())
		}
		if !s.IsOver() {
			fmt.Fprintf(t.out, "%-5s  (%d/%d)\n", strings.ToUpper(g.CurrentWord()), g.Submitted()+1, game.Rows)
		}
		fmt.Fprintln(t.out, message)
	})
}
