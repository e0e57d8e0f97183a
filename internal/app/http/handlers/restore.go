package handlers

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"

	"gparts/presupuestos_backend/internal/domain/presupuesto/metadata"
)

type restoreRequest struct {
	PDFBase64 string `json:"pdfBase64"`
}

type restoreResponse struct {
	Orden json.RawMessage `json:"orden"`
}

// RestoreOrden recovers the original order from a previously generated
// PDF's metadata.
func (h *Handlers) RestoreOrden(w http.ResponseWriter, r *http.Request) {
	var req restoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Cuerpo inválido (JSON)", "")
		return
	}
	if req.PDFBase64 == "" {
		writeError(w, http.StatusBadRequest, "Falta pdfBase64", "")
		return
	}
	pdfBytes, err := base64.StdEncoding.DecodeString(req.PDFBase64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Archivo inválido (base64)", "")
		return
	}

	orden, err := metadata.Decode(pdfBytes)
	if errors.Is(err, metadata.ErrSinOrden) {
		writeError(w, http.StatusBadRequest, "Este PDF no contiene datos para retomar la orden (solo funciona con PDFs nuevos).", "")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Error al leer el PDF", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, restoreResponse{Orden: orden})
}
