// internal/httpserver/server.go
//
// HTTP surface for deepwordle: a thin key-event transport over play.Controller.
// Responsibilities:
//   - Router + middleware (JSON, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health", "/debug/words", POST /game/new.
//   - Game endpoints (require a game token): POST /game/key, POST /game/guess,
//     GET /game/state, GET /game/share.
//
// Notes:
//   - POST /game/new returns a signed token naming the game; every other game
//     endpoint reads the game ID from that token, so clients cannot drive
//     someone else's game.
//   - Each game is driven through its controller, which handles one event at a
//     time; a request arriving mid-event gets 409 busy.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/robalobadob/wordle/apps/deepwordle/internal/daily"
	"github.com/robalobadob/wordle/apps/deepwordle/internal/game"
	"github.com/robalobadob/wordle/apps/deepwordle/internal/play"
	"github.com/robalobadob/wordle/apps/deepwordle/internal/store"
	"github.com/robalobadob/wordle/apps/deepwordle/internal/words"
)

// Options carries the server configuration.
type Options struct {
	JWTSecret   string
	TokenTTL    time.Duration
	Epoch       time.Time
	DailySalt   string
	ShareFooter string
	Logger      zerolog.Logger
	Now         func() time.Time
}

// Server bundles router, game store and word lists.
type Server struct {
	r     *chi.Mux
	store store.Store
	lists *words.Lists
	opts  Options
	log   zerolog.Logger
}

// New constructs a Server, installs middleware, and registers routes.
func New(st store.Store, lists *words.Lists, opts Options) *Server {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.TokenTTL <= 0 {
		opts.TokenTTL = 24 * time.Hour
	}
	if opts.Epoch.IsZero() {
		opts.Epoch = daily.DefaultEpoch
	}
	s := &Server{r: chi.NewRouter(), store: st, lists: lists, opts: opts, log: opts.Logger}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"deepwordle","endpoints":["/health","POST /game/new","POST /game/key","POST /game/guess","GET /game/state","GET /game/share"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	s.r.Get("/debug/words", func(w http.ResponseWriter, r *http.Request) {
		a, g := s.lists.Stats()
		_ = json.NewEncoder(w).Encode(map[string]int{"answers": a, "allowed": g})
	})

	s.r.Post("/game/new", s.handleNewGame)
	s.r.Group(func(r chi.Router) {
		r.Use(s.requireGame)
		r.Post("/game/key", s.handleKey)
		r.Post("/game/guess", s.handleGuess)
		r.Get("/game/state", s.handleState)
		r.Get("/game/share", s.handleShare)
	})

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"not_found","path":"`+r.URL.Path+`"}`, http.StatusNotFound)
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// ctxGameKey is the context key type for the authenticated game ID.
type ctxGameKey struct{}

// requireGame enforces a valid game token and loads its controller into the
// request context.
func (s *Server) requireGame(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenStr := bearer(r)
		if tokenStr == "" {
			http.Error(w, `{"error":"Unauthorized"}`, http.StatusUnauthorized)
			return
		}
		gid, err := s.parseToken(tokenStr)
		if err != nil {
			http.Error(w, `{"error":"Invalid token"}`, http.StatusUnauthorized)
			return
		}
		c, err := s.store.Get(r.Context(), gid)
		if err != nil {
			http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
			return
		}
		ctx := context.WithValue(r.Context(), ctxGameKey{}, c)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func controllerFrom(r *http.Request) *play.Controller {
	c, _ := r.Context().Value(ctxGameKey{}).(*play.Controller)
	return c
}

// bearer extracts a bearer token from the Authorization header.
func bearer(r *http.Request) string {
	// Authorization: Bearer <token>
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	return ""
}

// ------------------------------ tokens -------------------------------------

// signToken creates an HS256 JWT naming the game, valid for TokenTTL.
func (s *Server) signToken(gid string) (string, time.Time, error) {
	now := s.opts.Now()
	exp := now.Add(s.opts.TokenTTL)
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"gid": gid,
		"exp": exp.Unix(),
		"iat": now.Unix(),
	})
	ss, err := t.SignedString([]byte(s.opts.JWTSecret))
	return ss, exp, err
}

// parseToken verifies a token and returns its game ID.
func (s *Server) parseToken(tokenStr string) (string, error) {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(s.opts.JWTSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.opts.Now))
	if err != nil {
		return "", err
	}
	if !token.Valid {
		return "", errors.New("invalid token")
	}
	gid, _ := claims["gid"].(string)
	if gid == "" {
		return "", errors.New("token without game id")
	}
	return gid, nil
}

// ------------------------------ GAME ---------------------------------------

// newGameReq/Res payloads for POST /game/new.
type newGameReq struct {
	Mode   string `json:"mode"`   // "random" (default) | "daily"
	Answer string `json:"answer"` // optional fixed answer (testing)
}
type newGameRes struct {
	GameID    string    `json:"gameId"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	DayIndex  int       `json:"dayIndex"`
}

// handleNewGame creates a game, stores its controller and returns a token for it.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
			return
		}
	}

	now := s.opts.Now()
	day := daily.DayIndex(now, s.opts.Epoch)
	var secret string
	switch {
	case req.Answer != "":
		if !s.lists.IsAllowed(req.Answer) {
			http.Error(w, `{"error":"answer not in word list"}`, http.StatusBadRequest)
			return
		}
		secret = req.Answer
	case req.Mode == "daily":
		secret = s.lists.At(daily.WordIndex(now, s.opts.DailySalt, len(s.lists.Answers())))
	case req.Mode == "" || req.Mode == "random":
		secret = s.lists.Random()
	default:
		http.Error(w, `{"error":"unknown mode"}`, http.StatusBadRequest)
		return
	}

	sess := game.New(uuid.NewString(), s.lists, secret, day)
	c := play.New(sess, play.Options{ShareFooter: s.opts.ShareFooter, Logger: s.log})
	if err := s.store.Save(r.Context(), c); err != nil {
		s.log.Error().Err(err).Msg("save game")
		http.Error(w, `{"error":"save_failed"}`, http.StatusInternalServerError)
		return
	}
	tok, exp, err := s.signToken(sess.ID)
	if err != nil {
		s.log.Error().Err(err).Msg("sign token")
		http.Error(w, `{"error":"sign_failed"}`, http.StatusInternalServerError)
		return
	}
	s.log.Info().Str("gameId", sess.ID).Str("mode", req.Mode).Int("day", day).Msg("game created")
	_ = json.NewEncoder(w).Encode(newGameRes{GameID: sess.ID, Token: tok, ExpiresAt: exp, DayIndex: day})
}

// cellRes is one grid cell. State is empty until the row is submitted.
type cellRes struct {
	Letter string `json:"letter"`
	State  string `json:"state,omitempty"`
}

// stateRes is the snapshot returned by every game endpoint.
type stateRes struct {
	GameID   string      `json:"gameId"`
	State    string      `json:"state"` // "playing" | "won" | "lost"
	Row      int         `json:"row"`
	Cursor   int         `json:"cursor"`
	Grid     [][]cellRes `json:"grid"`
	Message  string      `json:"message"`
	DayIndex int         `json:"dayIndex"`
	Answer   string      `json:"answer,omitempty"` // revealed once the game is over
}

func snapshot(c *play.Controller) stateRes {
	var out stateRes
	c.View(func(sess *game.Session, message string) {
		g := sess.Grid()
		cells := g.Cells()
		out = stateRes{
			GameID:   sess.ID,
			State:    sess.Outcome().String(),
			Row:      g.Row(),
			Cursor:   g.Cursor(),
			Message:  message,
			DayIndex: sess.DayIndex(),
		}
		for r := 0; r < game.Rows; r++ {
			row := make([]cellRes, game.WordLength)
			for col := range row {
				l := cells[r*game.WordLength+col]
				row[col].Letter = l.String()
				if r < g.Submitted() {
					row[col].State = l.State.String()
				}
			}
			out.Grid = append(out.Grid, row)
		}
		if secret, err := sess.RevealSecret(); err == nil {
			out.Answer = secret
		}
	})
	return out
}

// keyReq is the payload for POST /game/key.
// Key is a single letter or one of "enter", "backspace", "listen".
type keyReq struct {
	Key string `json:"key"`
}

func parseKey(s string) (play.Key, bool) {
	switch strings.ToLower(s) {
	case "enter":
		return play.Key{Type: play.KeyEnter}, true
	case "backspace":
		return play.Key{Type: play.KeyBackspace}, true
	case "listen":
		return play.Key{Type: play.KeyListen}, true
	}
	if len(s) == 1 {
		r := rune(s[0])
		if r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' {
			return play.Letter(r), true
		}
	}
	return play.Key{}, false
}

// handleKey delivers one key event to the game.
func (s *Server) handleKey(w http.ResponseWriter, r *http.Request) {
	c := controllerFrom(r)
	var req keyReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	k, ok := parseKey(req.Key)
	if !ok {
		http.Error(w, `{"error":"unknown key"}`, http.StatusBadRequest)
		return
	}
	if _, err := c.HandleKey(r.Context(), k); err != nil {
		writeEventErr(w, err)
		return
	}
	_ = json.NewEncoder(w).Encode(snapshot(c))
}

// guessReq/Res payloads for POST /game/guess.
type guessReq struct {
	Guess string `json:"guess"`
}
type guessRes struct {
	Marks   []int  `json:"marks"` // per-letter: 0=absent, 1=present, 2=correct
	State   string `json:"state"` // "playing" | "won" | "lost"
	Attempt int    `json:"attempt"`
	Message string `json:"message"`
}

// handleGuess submits a whole word, bypassing typed letters.
func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	c := controllerFrom(r)
	var req guessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	res, msg, err := c.Submit(req.Guess)
	if err != nil {
		writeEventErr(w, err)
		return
	}
	marks := make([]int, len(res.Marks))
	for i, m := range res.Marks {
		marks[i] = int(m)
	}
	state := "playing"
	c.View(func(sess *game.Session, _ string) { state = sess.Outcome().String() })
	_ = json.NewEncoder(w).Encode(guessRes{Marks: marks, State: state, Attempt: res.Attempt, Message: msg})
}

// handleState returns the current snapshot.
func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	_ = json.NewEncoder(w).Encode(snapshot(controllerFrom(r)))
}

// handleShare returns the shareable summary once the game is over.
func (s *Server) handleShare(w http.ResponseWriter, r *http.Request) {
	c := controllerFrom(r)
	var text string
	over := false
	c.View(func(sess *game.Session, _ string) {
		over = sess.IsOver()
		if over {
			text = c.ShareText()
		}
	})
	if !over {
		http.Error(w, `{"error":"game in progress"}`, http.StatusConflict)
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]string{"text": text})
}

// writeEventErr maps controller and session errors to HTTP statuses.
func writeEventErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, play.ErrBusy):
		http.Error(w, `{"error":"busy"}`, http.StatusConflict)
	case errors.Is(err, game.ErrGameOver):
		http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusConflict)
	case errors.Is(err, game.ErrTooShort), errors.Is(err, game.ErrNotInWordList):
		http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusBadRequest)
	default:
		http.Error(w, `{"error":"server error"}`, http.StatusInternalServerError)
	}
}
