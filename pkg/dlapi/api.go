package dlapi

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type Api struct {
	Api    huma.API
	Router *chi.Mux
}

func NewApi() *Api {
	router := chi.NewMux()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	config := huma.DefaultConfig("dlgate", "1.0.0")
	config.Info.Description = "Redirects download requests to the newest installer for a platform."

	api := humachi.New(router, config)

	return &Api{Api: api, Router: router}
}

// Fallback routes every request no operation claims to h.
func (a *Api) Fallback(h http.Handler) {
	a.Router.NotFound(h.ServeHTTP)
}
