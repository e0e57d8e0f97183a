package handlers

import (
	"encoding/json"
	"net/http"

	"gparts/presupuestos_backend/internal/app/config"
	"gparts/presupuestos_backend/internal/domain/presupuesto/pdf"
	pdfgen "gparts/presupuestos_backend/internal/domain/presupuesto/pdf/gofpdf"
)

type Handlers struct {
	Cfg config.Config
	Gen pdf.Generator
}

func New(cfg config.Config) *Handlers {
	return &Handlers{
		Cfg: cfg,
		Gen: pdfgen.New(),
	}
}

type errorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg, detail string) {
	writeJSON(w, status, errorResponse{Error: msg, Detail: detail})
}

func writePDF(w http.ResponseWriter, pdfBytes []byte) {
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="presupuesto.pdf"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdfBytes)
}

// MethodNotAllowed matches the error envelope of every other response.
func MethodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	writeError(w, http.StatusMethodNotAllowed, "Método no permitido", "")
}
