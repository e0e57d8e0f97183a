package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr        string
	CORSAllowOrigin string

	// InternalToken guards the /v1 routes when set; empty leaves them
	// open, which is how the public quotation form uses the service.
	InternalToken string
}

func MustLoad() Config {
	_ = godotenv.Load()

	return Config{
		HTTPAddr:        env("HTTP_ADDR", ":8080"),
		CORSAllowOrigin: env("CORS_ALLOW_ORIGIN", "*"),
		InternalToken:   env("INTERNAL_TOKEN", ""),
	}
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
