// internal/game/evaluate.go
//
// Guess scoring. Evaluate is pure: it never touches grid cells, the grid
// applies the returned states to its own letters.

package game

// Evaluate implements the standard Wordle two‑pass scoring algorithm.
//
// Pass 1:
//   - Mark exact matches as Correct.
//   - Count remaining (non‑correct) answer letters by letter index.
//
// Pass 2:
//   - For each non‑correct guess letter: if there is remaining count for that
//     letter, mark Present and decrement the count; otherwise mark Absent.
//
// Comparison is case-insensitive. Returns nil unless both words are exactly
// WordLength ASCII letters.
func Evaluate(guess, answer string) []State {
	g, ok := normalize(guess)
	if !ok {
		return nil
	}
	a, ok := normalize(answer)
	if !ok {
		return nil
	}

	res := make([]State, WordLength)
	correct := make([]bool, WordLength)
	var counts [26]int

	// First pass: mark hits and collect counts for remaining answer letters.
	for i := 0; i < WordLength; i++ {
		if g[i] == a[i] {
			res[i] = Correct
			correct[i] = true
		} else {
			counts[a[i]-'a']++
		}
	}

	// Second pass: resolve presents/absents for non‑correct tiles.
	for i := 0; i < WordLength; i++ {
		if correct[i] {
			continue
		}
		j := g[i] - 'a'
		if counts[j] > 0 {
			res[i] = Present
			counts[j]--
		} else {
			res[i] = Absent
		}
	}
	return res
}

// AllCorrect reports whether every state is Correct.
func AllCorrect(states []State) bool {
	if len(states) == 0 {
		return false
	}
	for _, s := range states {
		if s != Correct {
			return false
		}
	}
	return true
}

// normalize lowercases an ASCII word of WordLength letters.
func normalize(w string) ([WordLength]byte, bool) {
	var out [WordLength]byte
	if len(w) != WordLength {
		return out, false
	}
	for i := 0; i < WordLength; i++ {
		c := w[i]
		switch {
		case c >= 'a' && c <= 'z':
			out[i] = c
		case c >= 'A' && c <= 'Z':
			out[i] = c + ('a' - 'A')
		default:
			return out, false
		}
	}
	return out, true
}
