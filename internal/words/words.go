// internal/words/words.go
//
// Provides word list management for the game engine.
//
// Responsibilities:
//   - Load answer and allowed guess lists from configured files or fall back to embedded defaults.
//   - Maintain sets for quick lookups (answers only, answers∪guesses).
//   - Supply secret selection (Random, Daily) and membership checks (IsAllowed, IsAnswer).
//
// Word Lists:
//   - "answers": canonical solutions (exactly 5 lowercase letters).
//   - "allowed": valid guesses (always includes answers).
//
// Load behavior:
//   1. If both AnswersFile and AllowedFile are set,
//      load answers from the first and allowed guesses from the second.
//   2. If only AllowedFile is set,
//      load that file and use it for both answers and allowed guesses.
//   3. If only AnswersFile is set,
//      load answers from it and keep the embedded allowed list.
//   4. If neither is set, use the embedded lists from the assets package.
//
// Constraints:
//   • Words must be 5 alphabetic letters (a–z); other lines are skipped.
//   • Blank lines and lines starting with '#' are skipped.
//   • Lists are normalized to lowercase.

package words

import (
	"bufio"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"
	"os"
	"strings"

	"github.com/robalobadob/wordle/apps/deepwordle/assets"
	"github.com/robalobadob/wordle/apps/deepwordle/internal/game"
)

// ErrEmpty is returned when no answer survives loading.
var ErrEmpty = errors.New("words: answers list is empty")

// Source names the files to read. Empty fields fall back to embedded lists.
type Source struct {
	AnswersFile string
	AllowedFile string
}

// Lists holds the two vocabularies.
type Lists struct {
	answers    []string            // canonical answers, file order
	answersSet map[string]struct{} // answers only
	allowedSet map[string]struct{} // answers ∪ guesses
}

// Load reads the word lists described by src.
func Load(src Source) (*Lists, error) {
	var ansList, allowList []string
	var err error

	switch {
	// Case 1: both lists provided
	case src.AnswersFile != "" && src.AllowedFile != "":
		if ansList, err = ReadFile(src.AnswersFile); err != nil {
			return nil, err
		}
		if allowList, err = ReadFile(src.AllowedFile); err != nil {
			return nil, err
		}

	// Case 2: only allowed file provided → use for both
	case src.AnswersFile == "" && src.AllowedFile != "":
		if allowList, err = ReadFile(src.AllowedFile); err != nil {
			return nil, err
		}
		ansList = allowList

	// Case 3: only answers file provided → embedded guesses
	case src.AnswersFile != "":
		if ansList, err = ReadFile(src.AnswersFile); err != nil {
			return nil, err
		}
		if allowList, err = readEmbedded(assets.AllowedFile); err != nil {
			return nil, err
		}

	// Case 4: embedded defaults
	default:
		if ansList, err = readEmbedded(assets.AnswersFile); err != nil {
			return nil, err
		}
		if allowList, err = readEmbedded(assets.AllowedFile); err != nil {
			return nil, err
		}
	}
	return New(ansList, allowList)
}

// New builds Lists from in-memory word slices. Words are normalized and
// filtered the same way file contents are.
func New(answers, allowed []string) (*Lists, error) {
	ans := normalizeAll(answers)
	if len(ans) == 0 {
		return nil, ErrEmpty
	}
	l := &Lists{
		answers:    ans,
		answersSet: toSet(ans),
		allowedSet: toSet(ans),
	}
	// Ensure all answers are also marked as allowed
	for _, w := range normalizeAll(allowed) {
		l.allowedSet[w] = struct{}{}
	}
	return l, nil
}

// ReadFile loads one word per line from a file.
func ReadFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("words: open %s: %w", path, err)
	}
	defer f.Close()
	out, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("words: read %s: %w", path, err)
	}
	return out, nil
}

func readEmbedded(name string) ([]string, error) {
	f, err := assets.Open(name)
	if err != nil {
		return nil, fmt.Errorf("words: open embedded %s: %w", name, err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads a line-delimited list, keeping valid lowercase 5-letter words
// in order.
func Parse(r io.Reader) ([]string, error) {
	var out []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if w, ok := normalize(line); ok {
			out = append(out, w)
		}
	}
	return out, sc.Err()
}

func normalizeAll(list []string) []string {
	out := make([]string, 0, len(list))
	for _, s := range list {
		if w, ok := normalize(s); ok {
			out = append(out, w)
		}
	}
	return out
}

func normalize(s string) (string, bool) {
	w := strings.ToLower(strings.TrimSpace(s))
	if len(w) != game.WordLength || !isAlpha(w) {
		return "", false
	}
	return w, true
}

// toSet converts a list of strings into a lookup set.
func toSet(list []string) map[string]struct{} {
	m := make(map[string]struct{}, len(list))
	for _, w := range list {
		m[w] = struct{}{}
	}
	return m
}

// isAlpha reports whether s is all lowercase ASCII letters.
func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}

// Random returns a cryptographically random answer.
func (l *Lists) Random() string {
	nBig, err := rand.Int(rand.Reader, big.NewInt(int64(len(l.answers))))
	if err != nil {
		return l.answers[0]
	}
	return l.answers[nBig.Int64()]
}

// At returns the answer at index i, wrapping around the list.
func (l *Lists) At(i int) string {
	n := len(l.answers)
	return l.answers[((i%n)+n)%n]
}

// Answers returns the canonical answer list (all lowercase).
func (l *Lists) Answers() []string { return l.answers }

// IsAllowed reports whether w is a valid guess (answers ∪ guesses).
func (l *Lists) IsAllowed(w string) bool {
	_, ok := l.allowedSet[strings.ToLower(w)]
	return ok
}

// IsAnswer reports whether w is an answer word.
func (l *Lists) IsAnswer(w string) bool {
	_, ok := l.answersSet[strings.ToLower(w)]
	return ok
}

// Stats returns counts of loaded words: (answers, allowed).
func (l *Lists) Stats() (answersCount int, allowedCount int) {
	return len(l.answers), len(l.allowedSet)
}
