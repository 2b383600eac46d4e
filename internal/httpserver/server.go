// internal/httpserver/server.go
//
// HTTP server wiring for the pattern service.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs,
//     optional per-client rate limiting).
//   - Public endpoints: "/", "/health".
//   - Pattern endpoints: POST /pattern, POST /matrix, POST /groups.
//   - Game endpoints: POST /game/new, POST /game/guess.
//   - Admin endpoints (JWT bearer with role=admin): POST /admin/warm, GET /debug/words.
//
// Notes:
//   - CORS is single-origin and credentials-enabled.
//   - Errors are JSON bodies of the form {"error":"..."}.
//   - /matrix and /groups load the pattern matrix on first use; /pattern and
//     the game endpoints never wait for it.

package httpserver

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/Akari202/wordle/internal/game"
	"github.com/Akari202/wordle/internal/matrix"
)

// Options tunes the server. Zero values are usable except AdminSecret, which
// disables the admin routes when empty.
type Options struct {
	ClientOrigin string
	AdminSecret  string
	DailySalt    string
	RateLimit    float64 // requests per second per client, 0 = off
	Now          func() time.Time
}

// Server bundles router, matrix cache and in-memory game store.
type Server struct {
	r      *chi.Mux
	cache  *matrix.Cache
	engine *game.Engine
	games  *game.Store
	opts   Options
}

// New constructs a Server, installs middleware, and registers routes.
func New(c *matrix.Cache, opts Options) *Server {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.ClientOrigin == "" {
		opts.ClientOrigin = "http://localhost:5173"
	}
	s := &Server{
		r:      chi.NewRouter(),
		cache:  c,
		engine: game.NewEngine(c.Vocabulary(), c),
		games:  game.NewStore(),
		opts:   opts,
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(cors(opts.ClientOrigin))         // credentials-friendly CORS
	if opts.RateLimit > 0 {
		s.r.Use(newClientLimiter(opts.RateLimit).middleware)
	}

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"service": "wordle-patterns",
			"endpoints": []string{
				"/health", "POST /pattern", "POST /matrix", "POST /groups",
				"POST /game/new", "POST /game/guess", "POST /admin/warm", "/debug/words",
			},
		})
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true, "cache": s.cache.State().String()})
	})

	s.r.Post("/pattern", s.handlePattern)
	s.r.Post("/matrix", s.handleMatrix)
	s.r.Post("/groups", s.handleGroups)

	s.r.Post("/game/new", s.handleNewGame)
	s.r.Post("/game/guess", s.handleGuess)

	s.r.Group(func(r chi.Router) {
		r.Use(s.requireAdmin)
		r.Post("/admin/warm", s.handleWarm)
		r.Get("/debug/words", s.handleWords)
	})

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Handler exposes the router (useful for tests and custom http.Server setups).
func (s *Server) Handler() http.Handler { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables credentialed CORS for a single origin.
func cors(origin string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ------------------------------- helpers -----------------------------------

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return false
	}
	return true
}
