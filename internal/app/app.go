package app

import (
	"log"
	"net/http"
	"time"

	"gparts/presupuestos_backend/internal/app/config"
	apphttp "gparts/presupuestos_backend/internal/app/http"
)

func Run() {
	cfg := config.MustLoad()

	router := apphttp.NewRouter(cfg)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Printf("listening on %s", cfg.HTTPAddr)
	log.Fatal(srv.ListenAndServe())
}
