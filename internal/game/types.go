// internal/game/types.go
//
// Core type definitions for the deepwordle game engine.
// Defines:
//   - State: per-letter result of a guess (absent/present/correct).
//   - Letter: a single grid cell (character + state).
//   - Outcome: the coarse lifecycle of a session.
//   - Sentinel errors surfaced to callers as rejection reasons.

package game

import "errors"

const (
	// WordLength is the number of letters per guess.
	WordLength = 5
	// Rows is the number of attempts per game.
	Rows = 6
	// Cells is the size of the grid.
	Cells = Rows * WordLength
)

// State is the evaluation result for a single letter in a guess.
// The numeric values match the wire format used by the HTTP surface:
//   - 0 absent:  letter does not occur (or all occurrences are used up).
//   - 1 present: letter occurs in the answer at another position.
//   - 2 correct: letter is in the correct position.
type State int

const (
	Absent State = iota
	Present
	Correct
)

func (s State) String() string {
	switch s {
	case Present:
		return "present"
	case Correct:
		return "correct"
	default:
		return "absent"
	}
}

// Token returns the share-grid square for the state.
func (s State) Token() string {
	switch s {
	case Present:
		return "🟨"
	case Correct:
		return "🟩"
	default:
		return "⬛"
	}
}

// Letter is one grid cell. Char is 0 for an empty cell, otherwise 'A'..'Z'.
// State is only meaningful once the row holding the letter was submitted.
type Letter struct {
	Char  byte
	State State
}

// Empty reports whether no character was entered in the cell.
func (l Letter) Empty() bool { return l.Char == 0 }

func (l Letter) String() string {
	if l.Empty() {
		return ""
	}
	return string(l.Char)
}

// Outcome reports whether a session is still being played.
type Outcome int

const (
	InProgress Outcome = iota
	Won
	Lost
)

func (o Outcome) String() string {
	switch o {
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return "playing"
	}
}

var (
	ErrTooShort      = errors.New("too short")
	ErrNotInWordList = errors.New("not in word list")
	ErrGameOver      = errors.New("game finished")
	ErrIncomplete    = errors.New("not enough letters")
	ErrInProgress    = errors.New("game in progress")
)
