// Package httpserver exposes the ranking table over HTTP.
//
// Routes:
//   - GET  /health
//   - GET  /rankings          ranked list, best first
//   - POST /rankings          {"name": "...", "score": N}; bearer JWT required when a secret is set
package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"go-tenbox/internal/scoring"
)

// Server bundles the router and the ranking store.
type Server struct {
	r      *chi.Mux
	store  *scoring.RankingStore
	secret []byte
	log    zerolog.Logger
}

type rankedEntry struct {
	Rank int `json:"rank"`
	scoring.Entry
}

type submitRequest struct {
	Name  string `json:"name"`
	Score *int   `json:"score"`
}

type submitResponse struct {
	Rank    int    `json:"rank"`
	Warning string `json:"warning,omitempty"`
}

// New constructs a Server. An empty secret leaves submissions unauthenticated.
func New(store *scoring.RankingStore, secret string, logger zerolog.Logger) *Server {
	s := &Server{r: chi.NewRouter(), store: store, log: logger}
	if secret != "" {
		s.secret = []byte(secret)
	}

	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(chimw.Recoverer)
	s.r.Use(chimw.Timeout(10 * time.Second))
	s.r.Use(s.requestLog)
	s.r.Use(jsonContentType)

	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	s.r.Get("/rankings", s.handleList)
	s.r.With(s.requireToken).Post("/rankings", s.handleSubmit)

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found")
	})
	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	entries := s.store.Refresh()
	out := make([]rankedEntry, len(entries))
	for i, e := range entries {
		out[i] = rankedEntry{Rank: i + 1, Entry: e}
	}
	_ = json.NewEncoder(w).Encode(out)
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 4<<10)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}
	if req.Score == nil {
		writeError(w, http.StatusBadRequest, "score_required")
		return
	}

	rank, err := s.store.Submit(req.Name, *req.Score)
	if errors.Is(err, scoring.ErrNegativeScore) {
		writeError(w, http.StatusBadRequest, "negative_score")
		return
	}
	resp := submitResponse{Rank: rank}
	if err != nil {
		// the entry is kept in memory; the caller only gets a warning
		s.log.Warn().Err(err).Msg("submit ranking")
		resp.Warning = "not_persisted"
	}
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(resp)
}

// requireToken checks a bearer HS256 token when the server has a secret.
func (s *Server) requireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.secret == nil {
			next.ServeHTTP(w, r)
			return
		}
		tokenStr := bearer(r)
		if tokenStr == "" {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
			return s.secret, nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if err != nil || !token.Valid {
			writeError(w, http.StatusUnauthorized, "invalid_token")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// SignToken issues an HS256 token accepted by requireToken.
func SignToken(secret, subject string, ttl time.Duration) (string, error) {
	now := time.Now()
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	})
	return t.SignedString([]byte(secret))
}

func (s *Server) requestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("elapsed", time.Since(start)).
			Str("request_id", chimw.GetReqID(r.Context())).
			Msg("request")
	})
}

func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

func bearer(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if after, ok := strings.CutPrefix(h, "Bearer "); ok {
		return strings.TrimSpace(after)
	}
	return ""
}

func writeError(w http.ResponseWriter, code int, msg string) {
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
