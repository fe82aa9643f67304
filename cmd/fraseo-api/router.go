// Package main provides the API router setup.
package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/vozclara/fraseo/cmd/fraseo-api/handlers"
	"github.com/vozclara/fraseo/cmd/fraseo-api/middleware"
	"github.com/vozclara/fraseo/internal/audit"
	"github.com/vozclara/fraseo/internal/cache"
	"github.com/vozclara/fraseo/internal/catalog"
	"github.com/vozclara/fraseo/internal/match"
	"github.com/vozclara/fraseo/internal/observability"
)

// AppDeps holds the initialized services the router wires into handlers.
type AppDeps struct {
	Catalog    *catalog.Catalog
	Engine     *match.Engine
	Cache      cache.Client
	CacheTTL   time.Duration
	AuditStore *audit.Store
	Timeout    time.Duration
}

// NewRouter creates the main API router with all routes configured.
func NewRouter(logger *observability.Logger, deps AppDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS([]string{"*"}))
	r.Use(chimiddleware.Timeout(deps.Timeout))

	statusHandler := handlers.NewStatusHandler(deps.Catalog, deps.Engine)
	searchHandler := handlers.NewSearchHandler(logger, deps.Engine, deps.Cache, deps.CacheTTL, deps.AuditStore)
	groupsHandler := handlers.NewGroupsHandler(logger, deps.Catalog)
	spellHandler := handlers.NewSpellHandler(logger)

	r.Get("/", statusHandler.Status)
	r.Get("/health", statusHandler.Health)
	r.Post("/buscar", searchHandler.Search)
	r.Get("/grupos", groupsHandler.List)
	r.Get("/grupos/{grupo}", groupsHandler.Get)
	r.Post("/deletreo", spellHandler.Spell)

	return r
}
