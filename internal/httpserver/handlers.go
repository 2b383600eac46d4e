package httpserver

import (
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/Akari202/wordle/internal/game"
	"github.com/Akari202/wordle/internal/matrix"
	"github.com/Akari202/wordle/internal/pattern"
)

// writeDomainError maps package errors onto HTTP statuses.
func writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, pattern.ErrInvalidWord),
		errors.Is(err, pattern.ErrInvalidPattern),
		errors.Is(err, game.ErrNotAllowed),
		errors.Is(err, game.ErrNotAnswer):
		status = http.StatusBadRequest
	case errors.Is(err, matrix.ErrUnknownWord), errors.Is(err, game.ErrGameNotFound):
		status = http.StatusNotFound
	case errors.Is(err, game.ErrFinished):
		status = http.StatusConflict
	case errors.Is(err, matrix.ErrCacheLoad):
		status = http.StatusServiceUnavailable
	}
	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
	}
	writeError(w, status, err.Error())
}

// normalizeWord trims and lowercases client input the way Engine.Guess does.
func normalizeWord(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

func normalizeWords(ws []string) []string {
	out := make([]string, len(ws))
	for i, w := range ws {
		out[i] = normalizeWord(w)
	}
	return out
}

// --------------------------- POST /pattern ---------------------------------

type patternReq struct {
	Guess  string `json:"guess"`
	Answer string `json:"answer"`
}

type patternRes struct {
	Pattern int    `json:"pattern"`
	Ternary string `json:"ternary"`
	Glyphs  string `json:"glyphs"`
}

func newPatternRes(p pattern.Pattern) patternRes {
	return patternRes{Pattern: int(p), Ternary: p.Ternary(), Glyphs: p.String()}
}

func (s *Server) handlePattern(w http.ResponseWriter, r *http.Request) {
	var req patternReq
	if !decode(w, r, &req) {
		return
	}
	p, err := s.cache.PatternFor(normalizeWord(req.Guess), normalizeWord(req.Answer))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newPatternRes(p))
}

// ---------------------------- POST /matrix ---------------------------------

type matrixReq struct {
	Rows []string `json:"rows"`
	Cols []string `json:"cols"`
}

type matrixRes struct {
	Rows     []string `json:"rows"`
	Cols     []string `json:"cols"`
	Patterns [][]int  `json:"patterns"`
}

func (s *Server) handleMatrix(w http.ResponseWriter, r *http.Request) {
	var req matrixReq
	if !decode(w, r, &req) {
		return
	}
	req.Rows, req.Cols = normalizeWords(req.Rows), normalizeWords(req.Cols)
	m, err := s.cache.PatternMatrixFor(r.Context(), req.Rows, req.Cols)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, matrixRes{Rows: req.Rows, Cols: req.Cols, Patterns: m.Grid()})
}

// ---------------------------- POST /groups ---------------------------------

type groupsReq struct {
	Guess      string   `json:"guess"`
	Candidates []string `json:"candidates"` // optional, defaults to every answer
}

type groupOut struct {
	Pattern int      `json:"pattern"`
	Glyphs  string   `json:"glyphs"`
	Size    int      `json:"size"`
	Words   []string `json:"words"`
}

type groupsRes struct {
	Guess  string     `json:"guess"`
	Count  int        `json:"count"`
	Mean   float64    `json:"mean"`
	Max    int        `json:"max"`
	Groups []groupOut `json:"groups"`
}

func (s *Server) handleGroups(w http.ResponseWriter, r *http.Request) {
	var req groupsReq
	if !decode(w, r, &req) {
		return
	}
	req.Guess = normalizeWord(req.Guess)
	candidates := normalizeWords(req.Candidates)
	if len(candidates) == 0 {
		candidates = s.cache.Vocabulary().Answers
	}
	gm, err := s.cache.GroupByPattern(r.Context(), req.Guess, candidates)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	res := groupsRes{
		Guess:  req.Guess,
		Count:  gm.Len(),
		Mean:   gm.MeanSize(),
		Max:    gm.MaxSize(),
		Groups: make([]groupOut, 0, gm.Len()),
	}
	for _, g := range gm.Groups() {
		res.Groups = append(res.Groups, groupOut{
			Pattern: int(g.Pattern),
			Glyphs:  g.Pattern.String(),
			Size:    len(g.Words),
			Words:   g.Words,
		})
	}
	writeJSON(w, http.StatusOK, res)
}

// ------------------------------ GAME ---------------------------------------

// newGameReq/Res payloads for POST /game/new.
type newGameReq struct {
	Mode   string `json:"mode"`   // "" | "random" | "daily"
	Answer string `json:"answer"` // optional fixed answer (testing)
}
type newGameRes struct {
	GameID string `json:"gameId"`
	Rows   int    `json:"rows"`
	Date   string `json:"date,omitempty"`
}

func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	// An empty body means a random game.
	if r.ContentLength != 0 && !decode(w, r, &req) {
		return
	}

	var (
		g   *game.Game
		err error
		res newGameRes
	)
	switch req.Mode {
	case "daily":
		now := s.opts.Now()
		g, err = s.engine.Daily(now, s.opts.DailySalt)
		res.Date = game.DateKey(now)
	case "", "random":
		g, err = s.engine.New(req.Answer)
	default:
		writeError(w, http.StatusBadRequest, "unknown mode")
		return
	}
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	s.games.Put(g)
	res.GameID, res.Rows = g.ID, g.Rows
	writeJSON(w, http.StatusOK, res)
}

// guessReq/Res payloads for POST /game/guess.
type guessReq struct {
	GameID string `json:"gameId"`
	Guess  string `json:"guess"`
}
type guessRes struct {
	patternRes
	State     game.Status `json:"state"` // "playing" | "won" | "lost"
	Remaining int         `json:"remaining"`
	History   string      `json:"history"`
	Answer    string      `json:"answer,omitempty"` // revealed once finished
}

func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	if !decode(w, r, &req) {
		return
	}
	var p pattern.Pattern
	g, err := s.games.Update(req.GameID, func(g *game.Game) error {
		var err error
		p, err = s.engine.Guess(g, req.Guess)
		return err
	})
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	res := guessRes{
		patternRes: newPatternRes(p),
		State:      g.Status(),
		Remaining:  g.Remaining(),
		History:    g.History(),
	}
	if g.Finished {
		res.Answer = g.Answer
	}
	writeJSON(w, http.StatusOK, res)
}

// ------------------------------ ADMIN --------------------------------------

type warmRes struct {
	Rows   int    `json:"rows"`
	Cols   int    `json:"cols"`
	Builds int64  `json:"builds"`
	State  string `json:"state"`
	Warn   string `json:"warning,omitempty"`
}

// handleWarm loads or builds the matrix. A persist failure still returns 200
// with a warning since the matrix is usable.
func (s *Server) handleWarm(w http.ResponseWriter, r *http.Request) {
	sub, _ := r.Context().Value(ctxAdminKey{}).(string)
	log.Info().Str("admin", sub).Msg("warm requested")
	snap, err := s.cache.LoadOrBuild(r.Context())
	res := warmRes{}
	if err != nil {
		if !errors.Is(err, matrix.ErrCachePersist) {
			writeDomainError(w, r, err)
			return
		}
		res.Warn = err.Error()
	}
	res.Rows, res.Cols = snap.Matrix.Rows(), snap.Matrix.Cols()
	res.Builds = s.cache.Builds()
	res.State = s.cache.State().String()
	writeJSON(w, http.StatusOK, res)
}

// handleWords reports vocabulary counts.
func (s *Server) handleWords(w http.ResponseWriter, r *http.Request) {
	a, g := s.cache.Vocabulary().Stats()
	writeJSON(w, http.StatusOK, map[string]int{"answers": a, "allowed": g})
}
