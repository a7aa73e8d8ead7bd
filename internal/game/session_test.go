package game

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type setVocab map[string]struct{}

func (v setVocab) IsAllowed(w string) bool {
	_, ok := v[w]
	return ok
}

func vocab(words ...string) setVocab {
	v := setVocab{}
	for _, w := range words {
		v[w] = struct{}{}
	}
	return v
}

func TestSessionSubmitRejections(t *testing.T) {
	s := New("g1", vocab("react", "wrong"), "REACT", 42)

	_, err := s.Submit("cat")
	assert.ErrorIs(t, err, ErrTooShort)
	assert.Equal(t, "too short", err.Error())

	_, err = s.Submit("zzzzz")
	assert.ErrorIs(t, err, ErrNotInWordList)
	assert.Equal(t, "not in word list", err.Error())

	assert.Equal(t, 0, s.Grid().Cursor())
	assert.Equal(t, 0, s.Grid().Row())
	assert.False(t, s.IsOver())
}

func TestSessionRejectionKeepsTypedLetters(t *testing.T) {
	s := New("g1", vocab("react"), "react", 1)
	for _, r := range "zzzzz" {
		s.AddLetter(r)
	}
	_, err := s.Enter()
	assert.ErrorIs(t, err, ErrNotInWordList)
	assert.Equal(t, "ZZZZZ", s.Grid().CurrentWord())
	assert.Equal(t, 0, s.Grid().Row())
}

func TestSessionWinInOne(t *testing.T) {
	s := New("g1", vocab("react"), "REACT", 482)

	res, err := s.Submit("react")
	require.NoError(t, err)
	assert.True(t, res.Won)
	assert.Equal(t, 1, res.Attempt)
	assert.True(t, s.IsOver())
	assert.Equal(t, Won, s.Outcome())

	summary := s.Summary()
	assert.Contains(t, summary, "1/6")
	assert.Equal(t, "Wordle 482 1/6\n\n🟩🟩🟩🟩🟩", summary)

	secret, err := s.RevealSecret()
	require.NoError(t, err)
	assert.Equal(t, "REACT", secret)

	_, err = s.Submit("react")
	assert.ErrorIs(t, err, ErrGameOver)
}

func TestSessionLoss(t *testing.T) {
	s := New("g1", vocab("react", "wrong"), "REACT", 3)

	_, err := s.RevealSecret()
	assert.ErrorIs(t, err, ErrInProgress)

	for i := 1; i <= Rows; i++ {
		res, err := s.Submit("WRONG")
		require.NoError(t, err)
		assert.False(t, res.Won)
		assert.Equal(t, i, res.Attempt)
		assert.Equal(t, i == Rows, s.IsOver())
	}

	assert.Equal(t, Lost, s.Outcome())
	secret, err := s.RevealSecret()
	require.NoError(t, err)
	assert.Equal(t, "REACT", secret)

	summary := s.Summary()
	lines := strings.Split(summary, "\n")
	assert.Equal(t, "Wordle 3 x/6", lines[0])
	assert.Len(t, lines, 2+Rows)
	// WRONG vs REACT: only R is shared, misplaced
	assert.Equal(t, "⬛🟨⬛⬛⬛", lines[2])

	assert.Equal(t, Cells, s.AddLetter('a'))
}

func TestSessionEnterUsesTypedLetters(t *testing.T) {
	s := New("g1", vocab("react", "trace"), "react", 1)

	for _, r := range "tra" {
		s.AddLetter(r)
	}
	_, err := s.Enter()
	assert.ErrorIs(t, err, ErrTooShort)

	s.AddLetter('c')
	s.AddLetter('e')
	res, err := s.Enter()
	require.NoError(t, err)
	assert.Equal(t, []State{Present, Present, Correct, Correct, Present}, res.Marks)
	assert.False(t, res.Won)

	for _, r := range "react" {
		s.AddLetter(r)
	}
	res, err = s.Enter()
	require.NoError(t, err)
	assert.True(t, res.Won)
	assert.Equal(t, 2, res.Attempt)
	assert.Equal(t, "Wordle 1 2/6\n\n🟨🟨🟩🟩🟨\n🟩🟩🟩🟩🟩", s.Summary())
}

func TestSessionSubmitReplacesPartialRow(t *testing.T) {
	s := New("g1", vocab("react"), "react", 1)
	s.AddLetter('x')
	s.AddLetter('y')

	res, err := s.Submit("react")
	require.NoError(t, err)
	assert.True(t, res.Won)
	assert.Equal(t, WordLength, s.Grid().Cursor())
}
