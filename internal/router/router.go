package router

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/GregMSThompson/dashboard-builder/internal/handlers"
	"github.com/GregMSThompson/dashboard-builder/internal/middleware"
)

func NewRouter(deps *handlers.Deps) chi.Router {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggerMiddleware(deps.Log).LoggerMiddleware)
	r.Use(chimiddleware.Recoverer)

	hh := handlers.NewHealthHandlers(deps)
	r.Get("/healthz", hh.Health)

	mw := middleware.NewMiddleware(nil)
	if deps.Firebase != nil {
		mw = middleware.NewMiddleware(deps.Firebase)
	}

	ch := handlers.NewCatalogHandlers(deps)
	dh := handlers.NewDashboardHandlers(deps)

	r.Group(func(r chi.Router) {
		r.Use(mw.Auth(deps.AuthMode))
		r.Mount("/catalog", ch.CatalogRoutes())
		r.Mount("/dashboard", dh.DashboardRoutes())
	})
	return r
}
