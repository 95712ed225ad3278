// Package server exposes the triage engine and the check store over HTTP.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	gocache "github.com/patrickmn/go-cache"

	"github.com/bisheshoggo/symtriage/internal/check"
	"github.com/bisheshoggo/symtriage/internal/intake"
	"github.com/bisheshoggo/symtriage/internal/knowledge"
	"github.com/bisheshoggo/symtriage/internal/store"
	"github.com/bisheshoggo/symtriage/internal/syncer"
	"github.com/bisheshoggo/symtriage/internal/triage"
)

// Replayed responses are kept this long per Idempotency-Key.
const (
	idempotencyTTL     = 24 * time.Hour
	idempotencyCleanup = time.Hour
)

// Submitter runs the intake pipeline.
type Submitter interface {
	Submit(ctx context.Context, sub intake.Submission) (*check.Check, error)
}

// Checks reads stored checks.
type Checks interface {
	Get(id string) (*check.Check, error)
	Query(f store.QueryFilter) ([]*check.Check, error)
}

// SyncStatus reports the sync state.
type SyncStatus interface {
	Status() (syncer.Status, error)
}

// Deps are the collaborators of a Server. Sync may be nil when syncing is
// disabled; Knowledge defaults to the built-in articles.
type Deps struct {
	Intake    Submitter
	Checks    Checks
	Sync      SyncStatus
	Knowledge *knowledge.Base
	Language  triage.Language
	Hotline   string
}

// Server routes HTTP requests.
type Server struct {
	deps   Deps
	engine *triage.Engine
	idem   *gocache.Cache
	router chi.Router
}

// New creates a Server and registers its routes.
func New(deps Deps) *Server {
	if deps.Language == "" {
		deps.Language = triage.English
	}
	if deps.Knowledge == nil {
		deps.Knowledge = knowledge.Default()
	}
	s := &Server{
		deps:   deps,
		engine: triage.New(),
		idem:   gocache.New(idempotencyTTL, idempotencyCleanup),
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors)

	r.Get("/healthz", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Post("/symptom-check", s.handleSubmit)
		r.Get("/symptom-check", s.handleList)
		r.Get("/symptom-check/{id}", s.handleGet)
		r.Get("/triage/explain/{level}", s.handleExplain)
		r.Post("/emergency/message", s.handleEmergencyMessage)
		r.Get("/knowledge", s.handleKnowledge)
		r.Get("/knowledge/categories", s.handleCategories)
		r.Get("/sync-status", s.handleSyncStatus)
	})

	s.router = r
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// cors allows the browser frontend to call the API from another origin.
func cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Accept, Accept-Language, Content-Type, Authorization, Idempotency-Key")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// language picks the display language: ?lang= first, then Accept-Language,
// then the configured default.
func (s *Server) language(r *http.Request) triage.Language {
	if v := r.URL.Query().Get("lang"); v != "" {
		return triage.ParseLanguage(v)
	}
	if v := r.Header.Get("Accept-Language"); v != "" {
		return triage.ParseLanguage(v)
	}
	return s.deps.Language
}
