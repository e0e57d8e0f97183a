package handlers

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"gparts/presupuestos_backend/internal/domain/presupuesto"
	"gparts/presupuestos_backend/internal/domain/presupuesto/excel"
	"gparts/presupuestos_backend/internal/domain/presupuesto/metadata"
)

type excelRequest struct {
	File  string `json:"file"`
	Excel string `json:"excel"`
}

// GenerateFromExcel builds the quotation PDF from an uploaded workbook
// instead of the structured form.
func (h *Handlers) GenerateFromExcel(w http.ResponseWriter, r *http.Request) {
	var req excelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Cuerpo inválido (JSON)", "")
		return
	}
	b64 := req.File
	if b64 == "" {
		b64 = req.Excel
	}
	if b64 == "" {
		writeError(w, http.StatusBadRequest, "Falta el archivo Excel (file)", "")
		return
	}
	if i := strings.IndexByte(b64, ','); i >= 0 && strings.HasPrefix(b64, "data:") {
		b64 = b64[i+1:]
	}
	raw, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Archivo inválido (base64)", "")
		return
	}

	res, err := excel.Parse(bytes.NewReader(raw))
	if err != nil {
		writeError(w, http.StatusBadRequest, "No se pudo leer el Excel", err.Error())
		return
	}

	p := excelPayload(res)
	rec, err := presupuesto.Normalize(p)
	if errors.Is(err, presupuesto.ErrSinFilas) {
		writeError(w, http.StatusBadRequest, "Añade al menos una fila en Repuestos o Mano de Obra", "")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Error al generar el PDF", err.Error())
		return
	}

	snapshot, err := metadata.Encode(p)
	if err != nil {
		snapshot = ""
	}
	pdfBytes, err := h.Gen.Generate(rec, snapshot)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Error al generar el PDF", err.Error())
		return
	}
	writePDF(w, pdfBytes)
}

func excelPayload(res excel.Result) presupuesto.Payload {
	p := presupuesto.Payload{
		AbonoMonto: presupuesto.Monto(res.DepositoInicial),
	}
	for _, f := range res.Repuestos {
		p.Repuestos = append(p.Repuestos, presupuesto.ItemPayload{
			Descripcion: f.Descripcion,
			Valor:       presupuesto.Monto(f.ValorTotal),
		})
	}
	for _, f := range res.ManoDeObra {
		p.ManoDeObra = append(p.ManoDeObra, presupuesto.ItemPayload{
			Descripcion: f.Descripcion,
			Valor:       presupuesto.Monto(f.ValorTotal),
		})
	}
	return p
}
