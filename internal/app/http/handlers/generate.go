package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"gparts/presupuestos_backend/internal/domain/presupuesto"
	"gparts/presupuestos_backend/internal/domain/presupuesto/metadata"
)

// GeneratePDF turns the structured web-form payload into the quotation
// PDF, with the sanitized order embedded in its metadata.
func (h *Handlers) GeneratePDF(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil || len(body) == 0 {
		writeError(w, http.StatusBadRequest, "Cuerpo inválido (JSON)", "")
		return
	}

	var p presupuesto.Payload
	if err := json.Unmarshal(body, &p); err != nil {
		writeError(w, http.StatusBadRequest, "Cuerpo inválido (JSON)", "")
		return
	}

	rec, err := presupuesto.Normalize(p)
	if errors.Is(err, presupuesto.ErrSinFilas) {
		writeError(w, http.StatusBadRequest, "Añade al menos una fila en Repuestos o Mano de Obra", "")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Error al generar el PDF", err.Error())
		return
	}

	pdfBytes, err := h.Gen.Generate(rec, h.snapshot(p, body))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Error al generar el PDF", err.Error())
		return
	}
	writePDF(w, pdfBytes)
}

// snapshot builds the metadata payload: the form's echo-back orden when
// present, otherwise the raw body with the logo stripped. A snapshot that
// cannot be encoded degrades to no metadata rather than failing the
// request.
func (h *Handlers) snapshot(p presupuesto.Payload, body []byte) string {
	var orden any
	if len(p.Orden) > 0 {
		orden = p.Orden
	} else {
		var raw map[string]json.RawMessage
		if err := json.Unmarshal(body, &raw); err != nil {
			return ""
		}
		delete(raw, "logo")
		orden = raw
	}
	s, err := metadata.Encode(orden)
	if err != nil {
		log.Printf("presupuesto: snapshot no serializable, PDF sin metadata: %v", err)
		return ""
	}
	return s
}
