package main

import (
	"context"
	"net/http"
	"time"

	"pokecatcher/internal/catalog"
	"pokecatcher/internal/collection"
	"pokecatcher/internal/httpx"
	"pokecatcher/internal/roster"
)

type handlers struct {
	catalog    *catalog.HTTPHandler
	jobs       *catalog.JobHandler
	collection *collection.HTTPHandler
	roster     *roster.HTTPHandler
	verifier   httpx.TokenVerifier
	// ready reports whether backing services are reachable; nil means
	// always ready.
	ready func(ctx context.Context) error
}

func newRouter(h handlers) *http.ServeMux {
	router := http.NewServeMux()

	router.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.HandleFunc("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		if h.ready != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
			defer cancel()
			if err := h.ready(ctx); err != nil {
				http.Error(w, "not ready", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	router.HandleFunc("GET /v1/catalog", h.catalog.List)
	router.HandleFunc("GET /v1/catalog/autocomplete", h.catalog.Autocomplete)
	router.HandleFunc("GET /v1/catalog/{id}", h.catalog.Get)
	router.HandleFunc("GET /v1/catalog/{id}/species", h.catalog.Species)

	router.HandleFunc("POST /internal/jobs/catalog/load", h.jobs.LoadNextPage)

	auth := httpx.AuthMiddleware(h.verifier)
	protected := func(pattern string, fn http.HandlerFunc) {
		router.Handle(pattern, auth(fn))
	}

	protected("GET /v1/me/pokemons", h.collection.ListPokemons)
	protected("POST /v1/me/pokemons", h.collection.Catch)
	protected("PATCH /v1/me/pokemons/{id}", h.collection.Edit)
	protected("DELETE /v1/me/pokemons/{id}", h.collection.Release)

	protected("GET /v1/me/teams", h.collection.ListTeams)
	protected("POST /v1/me/teams", h.collection.CreateTeam)
	protected("PATCH /v1/me/teams/{id}", h.collection.RenameTeam)
	protected("DELETE /v1/me/teams/{id}", h.collection.DeleteTeam)

	protected("GET /v1/me/pool", h.roster.Pool)
	protected("POST /v1/me/roster/moves", h.roster.Move)

	return router
}
