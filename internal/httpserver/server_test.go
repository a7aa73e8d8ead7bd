package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle/apps/deepwordle/internal/store"
	"github.com/robalobadob/wordle/apps/deepwordle/internal/words"
)

var testNow = time.Date(2021, 6, 29, 15, 0, 0, 0, time.UTC)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	lists, err := words.New([]string{"react", "crane"}, []string{"wrong", "trace"})
	require.NoError(t, err)
	return New(store.NewMemoryStore(), lists, Options{
		JWTSecret:   "test-secret",
		TokenTTL:    time.Hour,
		DailySalt:   "salt",
		ShareFooter: "#deepwordle",
		Logger:      zerolog.Nop(),
		Now:         func() time.Time { return testNow },
	})
}

func do(t *testing.T, s *Server, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func newGame(t *testing.T, s *Server, answer string) newGameRes {
	t.Helper()
	rec := do(t, s, http.MethodPost, "/game/new", "", newGameReq{Answer: answer})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var res newGameRes
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&res))
	return res
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	rec := do(t, s, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true}`, rec.Body.String())

	rec = do(t, s, http.MethodGet, "/debug/words", "", nil)
	assert.JSONEq(t, `{"answers":2,"allowed":4}`, rec.Body.String())
}

func TestNewGame(t *testing.T) {
	s := newTestServer(t)

	res := newGame(t, s, "")
	assert.NotEmpty(t, res.GameID)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, 10, res.DayIndex)
	assert.Equal(t, testNow.Add(time.Hour).Unix(), res.ExpiresAt.Unix())

	rec := do(t, s, http.MethodPost, "/game/new", "", newGameReq{Mode: "daily"})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, s, http.MethodPost, "/game/new", "", newGameReq{Mode: "hard"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, s, http.MethodPost, "/game/new", "", newGameReq{Answer: "zzzzz"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGameRequiresToken(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, http.MethodGet, "/game/state", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(t, s, http.MethodGet, "/game/state", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	other := newTestServer(t)
	res := newGame(t, other, "react")
	rec = do(t, s, http.MethodGet, "/game/state", res.Token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code, "token for a game this server does not hold")

	res = newGame(t, s, "react")
	s.opts.Now = func() time.Time { return testNow.Add(30 * time.Minute) }
	rec = do(t, s, http.MethodGet, "/game/state", res.Token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	s.opts.Now = func() time.Time { return testNow.Add(2 * time.Hour) }
	rec = do(t, s, http.MethodGet, "/game/state", res.Token, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code, "expired")
}

func TestKeyFlow(t *testing.T) {
	s := newTestServer(t)
	g := newGame(t, s, "react")

	for _, k := range []string{"t", "r", "a", "c", "e", "enter"} {
		rec := do(t, s, http.MethodPost, "/game/key", g.Token, keyReq{Key: k})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	}

	rec := do(t, s, http.MethodGet, "/game/state", g.Token, nil)
	var st stateRes
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&st))
	assert.Equal(t, "playing", st.State)
	assert.Equal(t, 1, st.Row)
	require.Len(t, st.Grid, 6)
	assert.Equal(t, []cellRes{
		{"T", "present"}, {"R", "present"}, {"A", "correct"}, {"C", "correct"}, {"E", "present"},
	}, st.Grid[0])
	assert.Equal(t, cellRes{}, st.Grid[1][0])
	assert.Empty(t, st.Answer)

	rec = do(t, s, http.MethodPost, "/game/key", g.Token, keyReq{Key: "?"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, s, http.MethodPost, "/game/key", g.Token, keyReq{Key: "z"})
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&st))
	assert.Equal(t, "Z", st.Grid[1][0].Letter)
	assert.Equal(t, 6, st.Cursor)

	rec = do(t, s, http.MethodPost, "/game/key", g.Token, keyReq{Key: "enter"})
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&st))
	assert.Equal(t, "Not enough letters", st.Message)
	assert.Equal(t, 1, st.Row)
}

func TestGuessFlow(t *testing.T) {
	s := newTestServer(t)
	g := newGame(t, s, "react")

	rec := do(t, s, http.MethodPost, "/game/guess", g.Token, guessReq{Guess: "cat"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "too short")

	rec = do(t, s, http.MethodPost, "/game/guess", g.Token, guessReq{Guess: "zzzzz"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "not in word list")

	rec = do(t, s, http.MethodGet, "/game/share", g.Token, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(t, s, http.MethodPost, "/game/guess", g.Token, guessReq{Guess: "react"})
	require.Equal(t, http.StatusOK, rec.Code)
	var res guessRes
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&res))
	assert.Equal(t, []int{2, 2, 2, 2, 2}, res.Marks)
	assert.Equal(t, "won", res.State)
	assert.Equal(t, 1, res.Attempt)

	rec = do(t, s, http.MethodPost, "/game/guess", g.Token, guessReq{Guess: "react"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(t, s, http.MethodGet, "/game/share", g.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var share map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&share))
	assert.Equal(t, "Wordle 10 1/6\n\n🟩🟩🟩🟩🟩\n\n#deepwordle", share["text"])
}

func TestLossRevealsAnswer(t *testing.T) {
	s := newTestServer(t)
	g := newGame(t, s, "react")

	for i := 0; i < 6; i++ {
		rec := do(t, s, http.MethodPost, "/game/guess", g.Token, guessReq{Guess: "wrong"})
		require.Equal(t, http.StatusOK, rec.Code)
	}
	rec := do(t, s, http.MethodGet, "/game/state", g.Token, nil)
	var st stateRes
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&st))
	assert.Equal(t, "lost", st.State)
	assert.Equal(t, "REACT", st.Answer)
	assert.Equal(t, "The answer is: REACT", st.Message)
}
