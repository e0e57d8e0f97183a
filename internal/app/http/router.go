package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"gparts/presupuestos_backend/internal/app/config"
	"gparts/presupuestos_backend/internal/app/http/handlers"
	"gparts/presupuestos_backend/internal/app/http/middleware"
)

func NewRouter(cfg config.Config) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(middleware.CORS(cfg.CORSAllowOrigin))

	r.MethodNotAllowed(handlers.MethodNotAllowed)

	h := handlers.New(cfg)

	r.Get("/health", h.Health)

	r.Route("/v1", func(r chi.Router) {
		if cfg.InternalToken != "" {
			r.Use(middleware.InternalAuth(cfg.InternalToken))
		}

		r.Post("/presupuestos/pdf", h.GeneratePDF)
		r.Post("/presupuestos/excel", h.GenerateFromExcel)
		r.Post("/presupuestos/restore", h.RestoreOrden)
	})

	return r
}
