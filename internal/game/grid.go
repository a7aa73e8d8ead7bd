// internal/game/grid.go
//
// The bounded 6×5 letter buffer.
//
// The grid tracks two positions:
//   - cursor: number of filled cells, always in [0, Cells].
//   - row:    index of the active row (= rows already submitted), in [0, Rows].
//
// Letters are typed into the active row only. A row is frozen once
// CheckGuess accepts it; the cursor never moves back into it.
// Out-of-range edits are silent no-ops returning the unchanged cursor.

package game

import "strings"

// Grid owns the letter cells and cursor arithmetic for one game.
// The zero value is an empty grid ready for use.
type Grid struct {
	cells  [Cells]Letter
	cursor int
	row    int
}

// NewGrid returns an empty grid.
func NewGrid() *Grid { return &Grid{} }

// Cursor returns the number of filled cells.
func (g *Grid) Cursor() int { return g.cursor }

// Row returns the index of the active row.
func (g *Grid) Row() int { return g.row }

// Submitted returns the number of rows frozen by CheckGuess.
func (g *Grid) Submitted() int { return g.row }

// Full reports whether every row has been submitted.
func (g *Grid) Full() bool { return g.row >= Rows }

// Cells returns a copy of all cells in reading order.
func (g *Grid) Cells() [Cells]Letter { return g.cells }

// rowStart is the index of the first cell of the active row.
// Once every row is submitted it points at the last row.
func (g *Grid) rowStart() int {
	r := g.row
	if r >= Rows {
		r = Rows - 1
	}
	return r * WordLength
}

// CurrentRow returns the cells of the active row. The slice shares the
// grid's backing array.
func (g *Grid) CurrentRow() []Letter {
	start := g.rowStart()
	return g.cells[start : start+WordLength]
}

// CurrentWord returns the characters typed into the active row.
func (g *Grid) CurrentWord() string {
	var b strings.Builder
	for _, l := range g.CurrentRow() {
		if !l.Empty() {
			b.WriteByte(l.Char)
		}
	}
	return b.String()
}

// AddLetter writes ch (upper-cased) at the cursor and advances it.
// No-op when the active row is already full, every row is submitted,
// or ch is not an ASCII letter.
func (g *Grid) AddLetter(ch rune) int {
	if g.Full() || g.cursor-g.rowStart() >= WordLength {
		return g.cursor
	}
	switch {
	case ch >= 'a' && ch <= 'z':
		ch -= 'a' - 'A'
	case ch >= 'A' && ch <= 'Z':
	default:
		return g.cursor
	}
	g.cells[g.cursor] = Letter{Char: byte(ch)}
	g.cursor++
	return g.cursor
}

// RemoveLetter clears the last typed letter of the active row.
// No-op when the active row is empty or every row is submitted.
func (g *Grid) RemoveLetter() int {
	if g.Full() || g.cursor <= g.rowStart() {
		return g.cursor
	}
	g.cursor--
	g.cells[g.cursor] = Letter{}
	return g.cursor
}

// CheckGuess scores the active row against answer, applies the states to
// the row in place and moves on to the next row.
// Returns ErrIncomplete without touching the grid unless the row is full.
func (g *Grid) CheckGuess(answer string) (bool, error) {
	if g.Full() || g.cursor-g.rowStart() < WordLength {
		return false, ErrIncomplete
	}
	current := g.CurrentRow()
	guess := strings.ToLower(g.CurrentWord())
	states := Evaluate(guess, answer)
	if states == nil {
		return false, ErrIncomplete
	}
	for i := range current {
		current[i].State = states[i]
	}
	if g.row < Rows {
		g.row++
	}
	return guess == strings.ToLower(answer), nil
}

// NonEmpty returns the filled cells of submitted rows in reading order.
func (g *Grid) NonEmpty() []Letter {
	out := make([]Letter, 0, g.row*WordLength)
	for _, l := range g.cells[:g.row*WordLength] {
		if !l.Empty() {
			out = append(out, l)
		}
	}
	return out
}

// Rowed returns the submitted rows' states, one slice per row.
func (g *Grid) Rowed() [][]State {
	out := make([][]State, 0, g.row)
	for r := 0; r < g.row; r++ {
		row := make([]State, WordLength)
		for c := 0; c < WordLength; c++ {
			row[c] = g.cells[r*WordLength+c].State
		}
		out = append(out, row)
	}
	return out
}
