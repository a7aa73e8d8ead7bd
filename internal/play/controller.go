// internal/play/controller.go
//
// Controller turns discrete input events into session operations and keeps
// the status message shown next to the grid.
//
// Key handling:
//   - Letter:    type a letter into the active row.
//   - Backspace: remove the last typed letter.
//   - Enter:     submit the active row.
//   - Listen:    capture a spoken word and type it into the active row.
//   - Share:     post the result summary once the game is over.
//   - Quit:      recorded; Quit reports it to the input loop.
//
// Only one event is handled at a time. Events arriving while another one is
// still being handled (typically a slow Listen or Share round-trip) are
// rejected with ErrBusy and leave the session untouched.

package play

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/robalobadob/wordle/apps/deepwordle/internal/game"
)

// ErrBusy is returned when a key arrives during another key's handling.
var ErrBusy = errors.New("busy")

// Messages shown by the controller.
const (
	MsgPrompt     = "Type a word or press `r` to start recording audio..."
	MsgTooShort   = "Not enough letters"
	MsgNotInList  = "Not in word list"
	MsgWin        = "You Win!\nPress `t` to share your result."
	MsgAnswer     = "The answer is: %s"
	MsgRecording  = "Recording audio for %s..."
	MsgNoVoice    = "Voice input is not configured."
	MsgNoShare    = "Sharing is not configured."
	MsgSharing    = "Sharing your result..."
	MsgShared     = "Your result was shared."
	MsgShareEarly = "Finish the game before sharing."
)

// KeyType enumerates the events the input layer delivers.
type KeyType int

const (
	KeyLetter KeyType = iota
	KeyEnter
	KeyBackspace
	KeyListen
	KeyShare
	KeyQuit
)

// Key is one input event. Rune is only set for KeyLetter.
type Key struct {
	Type KeyType
	Rune rune
}

// Letter is a convenience constructor for a KeyLetter event.
func Letter(r rune) Key { return Key{Type: KeyLetter, Rune: r} }

// Listener captures up to d of audio and returns its transcript.
type Listener interface {
	Listen(ctx context.Context, d time.Duration) (string, error)
}

// Poster publishes a pre-formatted text.
type Poster interface {
	Post(ctx context.Context, text string) error
}

// Options configures a Controller. Listener and Poster may be nil.
type Options struct {
	Listener       Listener
	Poster         Poster
	ListenDuration time.Duration
	ShareFooter    string
	Logger         zerolog.Logger
}

// Controller serializes input events against one session.
type Controller struct {
	mu      sync.Mutex
	session *game.Session
	opts    Options
	log     zerolog.Logger
	message string
	quit    bool
}

// New wraps session.
func New(session *game.Session, opts Options) *Controller {
	if opts.ListenDuration <= 0 {
		opts.ListenDuration = 2 * time.Second
	}
	return &Controller{
		session: session,
		opts:    opts,
		log:     opts.Logger.With().Str("gameId", session.ID).Logger(),
		message: MsgPrompt,
	}
}

// Session returns the controlled session. Callers must not mutate it while
// events are being handled.
func (c *Controller) Session() *game.Session { return c.session }

// Message returns the current status message.
func (c *Controller) Message() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.message
}

// View runs fn with exclusive access to the session and current message.
// It waits for an in-flight event to finish.
func (c *Controller) View(fn func(s *game.Session, message string)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fn(c.session, c.message)
}

// Quit reports whether a KeyQuit event was received.
func (c *Controller) Quit() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.quit
}

// HandleKey applies one input event and returns the resulting message.
func (c *Controller) HandleKey(ctx context.Context, k Key) (string, error) {
	if !c.mu.TryLock() {
		return "", ErrBusy
	}
	defer c.mu.Unlock()

	switch k.Type {
	case KeyQuit:
		c.quit = true
		return c.message, nil
	case KeyShare:
		c.message = c.share(ctx)
		return c.message, nil
	}

	if c.session.IsOver() {
		return c.message, nil
	}

	switch k.Type {
	case KeyLetter:
		c.session.AddLetter(k.Rune)
		c.message = MsgPrompt
	case KeyBackspace:
		c.session.RemoveLetter()
		c.message = MsgPrompt
	case KeyEnter:
		c.message = c.submit(c.session.Enter())
	case KeyListen:
		c.message = c.listen(ctx)
	default:
		return c.message, fmt.Errorf("unknown key type %d", k.Type)
	}
	return c.message, nil
}

// Submit validates and scores word directly, bypassing typed letters.
func (c *Controller) Submit(word string) (game.Result, string, error) {
	if !c.mu.TryLock() {
		return game.Result{}, "", ErrBusy
	}
	defer c.mu.Unlock()

	res, err := c.session.Submit(word)
	c.message = c.submit(res, err)
	return res, c.message, err
}

// submit maps a submission outcome to a message.
func (c *Controller) submit(res game.Result, err error) string {
	switch {
	case errors.Is(err, game.ErrTooShort):
		return MsgTooShort
	case errors.Is(err, game.ErrNotInWordList):
		return MsgNotInList
	case err != nil:
		c.log.Warn().Err(err).Msg("submit")
		return c.message
	}

	c.log.Debug().Int("attempt", res.Attempt).Bool("won", res.Won).Msg("guess accepted")
	switch c.session.Outcome() {
	case game.Won:
		c.log.Info().Int("attempts", res.Attempt).Msg("game won")
		return MsgWin
	case game.Lost:
		secret, _ := c.session.RevealSecret()
		c.log.Info().Str("secret", secret).Msg("game lost")
		return fmt.Sprintf(MsgAnswer, secret)
	}
	return MsgPrompt
}

// listen runs one voice round-trip. The grid is only touched once the
// transcript yielded a five-letter word.
func (c *Controller) listen(ctx context.Context) string {
	if c.opts.Listener == nil {
		return MsgNoVoice
	}
	transcript, err := c.opts.Listener.Listen(ctx, c.opts.ListenDuration)
	if err != nil {
		c.log.Warn().Err(err).Msg("listen")
		return fmt.Sprintf("Could not transcribe audio: %v\nPress `r` and try again.", err)
	}

	word := FirstWord(transcript)
	if !isWord(word) {
		return fmt.Sprintf("You said `%s` which is not a five letters word.\nPress `r` and try again.", word)
	}

	c.session.TypeWord(word)
	return fmt.Sprintf("You said %s.\nPress:\n  ↵ to submit your word.\n  ← to remove your letters.", word)
}

// share posts the summary with the configured footer.
func (c *Controller) share(ctx context.Context) string {
	if !c.session.IsOver() {
		return MsgShareEarly
	}
	if c.opts.Poster == nil {
		return MsgNoShare
	}
	if err := c.opts.Poster.Post(ctx, c.ShareText()); err != nil {
		c.log.Warn().Err(err).Msg("share")
		return fmt.Sprintf("Could not share your result: %v", err)
	}
	return MsgShared
}

// ShareText is the text handed to the Poster.
func (c *Controller) ShareText() string {
	text := c.session.Summary()
	if c.opts.ShareFooter != "" {
		text += "\n\n" + c.opts.ShareFooter
	}
	return text
}

// FirstWord returns the first whitespace-separated word of s, stripped of
// surrounding punctuation.
func FirstWord(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return strings.TrimFunc(fields[0], func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z')
	})
}

func isWord(w string) bool {
	if len(w) != game.WordLength {
		return false
	}
	for _, r := range w {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z') {
			return false
		}
	}
	return true
}
