// internal/game/session.go
//
// Session orchestrates a single game.
// Responsibilities:
//   - Validate submitted words (length, vocabulary) before scoring.
//   - Drive the grid through entry, removal and submission.
//   - Track state transitions: playing → won/lost.
//   - Build the shareable emoji summary.
//
// The secret and the vocabulary are chosen by the caller (see the words and
// daily packages); the session never reaches for global state.

package game

import (
	"fmt"
	"strings"
)

// Vocabulary reports whether a lowercase word may be submitted.
type Vocabulary interface {
	IsAllowed(w string) bool
}

// Session holds the state of one game.
type Session struct {
	ID      string
	secret  string
	day     int
	vocab   Vocabulary
	grid    *Grid
	outcome Outcome
}

// Result describes an accepted submission.
type Result struct {
	Marks   []State // per-letter states of the submitted row
	Won     bool
	Attempt int // 1-based row number of the submission
}

// New constructs a session for secret. day labels the share summary.
func New(id string, vocab Vocabulary, secret string, day int) *Session {
	return &Session{
		ID:     id,
		secret: strings.ToLower(strings.TrimSpace(secret)),
		day:    day,
		vocab:  vocab,
		grid:   NewGrid(),
	}
}

// Grid exposes the session's grid for read access.
func (s *Session) Grid() *Grid { return s.grid }

// DayIndex returns the day label of the session.
func (s *Session) DayIndex() int { return s.day }

// Outcome returns the current lifecycle state.
func (s *Session) Outcome() Outcome { return s.outcome }

// IsOver reports whether the game was won or all rows were used.
func (s *Session) IsOver() bool { return s.outcome != InProgress }

// AddLetter types ch into the active row. No-op once the game is over.
func (s *Session) AddLetter(ch rune) int {
	if s.IsOver() {
		return s.grid.Cursor()
	}
	return s.grid.AddLetter(ch)
}

// RemoveLetter deletes the last typed letter. No-op once the game is over.
func (s *Session) RemoveLetter() int {
	if s.IsOver() {
		return s.grid.Cursor()
	}
	return s.grid.RemoveLetter()
}

// Enter submits the letters typed into the active row.
func (s *Session) Enter() (Result, error) {
	return s.Submit(s.grid.CurrentWord())
}

// Submit validates word and, if legal, scores it in the active row.
//
// Validation rules:
//   - Game must not be finished (ErrGameOver).
//   - Word must have at least WordLength letters (ErrTooShort).
//   - Lowercased word must be in the vocabulary (ErrNotInWordList).
//
// The grid is untouched by a rejected word. An accepted word replaces
// whatever was typed into the active row.
func (s *Session) Submit(word string) (Result, error) {
	if s.IsOver() {
		return Result{}, ErrGameOver
	}
	word = strings.ToLower(strings.TrimSpace(word))
	if len(word) < WordLength {
		return Result{}, ErrTooShort
	}
	if !s.vocab.IsAllowed(word) {
		return Result{}, ErrNotInWordList
	}

	if s.grid.CurrentWord() != strings.ToUpper(word) {
		s.TypeWord(word)
	}
	won, err := s.grid.CheckGuess(s.secret)
	if err != nil {
		return Result{}, fmt.Errorf("check guess %q: %w", word, err)
	}

	attempt := s.grid.Submitted()
	row := s.grid.Rowed()[attempt-1]
	switch {
	case won:
		s.outcome = Won
	case s.grid.Full():
		s.outcome = Lost
	}
	return Result{Marks: row, Won: won, Attempt: attempt}, nil
}

// TypeWord clears the active row and types word into it.
// No-op once the game is over.
func (s *Session) TypeWord(word string) {
	if s.IsOver() {
		return
	}
	for s.grid.Cursor() > s.grid.rowStart() {
		s.grid.RemoveLetter()
	}
	for _, r := range word {
		s.grid.AddLetter(r)
	}
}

// RevealSecret returns the secret once the game is over.
func (s *Session) RevealSecret() (string, error) {
	if !s.IsOver() {
		return "", ErrInProgress
	}
	return strings.ToUpper(s.secret), nil
}

// Summary renders the shareable result:
//
//	Wordle <day> <n>/6
//
//	⬛🟨⬛⬛⬛
//	🟩🟩🟩🟩🟩
//
// n is the number of attempts, or "x" when the game was lost.
func (s *Session) Summary() string {
	used := s.grid.NonEmpty()
	numerator := fmt.Sprint(len(used) / WordLength)
	if s.outcome == Lost {
		numerator = "x"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Wordle %d %s/%d\n", s.day, numerator, Rows)
	for i, l := range used {
		if i%WordLength == 0 {
			b.WriteByte('\n')
		}
		b.WriteString(l.State.Token())
	}
	return b.String()
}
