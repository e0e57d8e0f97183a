package http

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"gparts/presupuestos_backend/internal/app/config"
	"gparts/presupuestos_backend/internal/domain/presupuesto"
	pdfgen "gparts/presupuestos_backend/internal/domain/presupuesto/pdf/gofpdf"
)

func testRouter() http.Handler {
	return NewRouter(config.Config{HTTPAddr: ":0", CORSAllowOrigin: "*"})
}

func postJSON(t *testing.T, h http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("response is not a JSON error envelope: %v: %s", err, rec.Body.String())
	}
	return resp.Error
}

func TestGeneratePDF_MethodNotAllowed(t *testing.T) {
	h := testRouter()
	req := httptest.NewRequest(http.MethodGet, "/v1/presupuestos/pdf", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rec.Code)
	}
	if errorMessage(t, rec) != "Método no permitido" {
		t.Fatalf("wrong message: %s", rec.Body.String())
	}
}

func TestGeneratePDF_BadJSON(t *testing.T) {
	rec := postJSON(t, testRouter(), "/v1/presupuestos/pdf", "{not json")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if errorMessage(t, rec) != "Cuerpo inválido (JSON)" {
		t.Fatalf("wrong message: %s", rec.Body.String())
	}
}

func TestGeneratePDF_EmptyRows(t *testing.T) {
	rec := postJSON(t, testRouter(), "/v1/presupuestos/pdf", `{"repuestos":[],"manoDeObra":[]}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if errorMessage(t, rec) != "Añade al menos una fila en Repuestos o Mano de Obra" {
		t.Fatalf("wrong message: %s", rec.Body.String())
	}
}

func TestGeneratePDF_Success(t *testing.T) {
	body := `{
		"repuestos": [{"descripcion": "Filtro aceite", "cantidad": 2, "valor": 15000}],
		"manoDeObra": [],
		"cliente": {"nombre": "Ana", "fecha": "01-09-2026", "rut": "1-9", "fono": "+56 9 1234"},
		"vehiculo": {"patente": "ABCD12", "ano": "2019", "marca": "Toyota", "modelo": "Yaris",
			"kilometraje": "123456", "vin": "XYZ", "combustible": "Bencina", "color": "Rojo"}
	}`
	rec := postJSON(t, testRouter(), "/v1/presupuestos/pdf", body)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Fatalf("content type: %s", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "presupuesto.pdf") {
		t.Fatalf("content disposition: %s", cd)
	}
	if !bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF-")) {
		t.Fatal("body is not a PDF")
	}
}

func TestRestore_RoundTripThroughGeneratedPDF(t *testing.T) {
	h := testRouter()

	orden := `{"presupuestoNumero":"77","repuestos":[{"descripcion":"Filtro","valor":1000}]}`
	genBody := `{"repuestos":[{"descripcion":"Filtro","valor":1000}],"orden":` + orden + `}`
	genRec := postJSON(t, h, "/v1/presupuestos/pdf", genBody)
	if genRec.Code != http.StatusOK {
		t.Fatalf("generate failed: %d %s", genRec.Code, genRec.Body.String())
	}

	restoreBody, _ := json.Marshal(map[string]string{
		"pdfBase64": base64.StdEncoding.EncodeToString(genRec.Body.Bytes()),
	})
	rec := postJSON(t, h, "/v1/presupuestos/restore", string(restoreBody))
	if rec.Code != http.StatusOK {
		t.Fatalf("restore failed: %d %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Orden json.RawMessage `json:"orden"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("restore response: %v", err)
	}
	var want, got any
	if err := json.Unmarshal([]byte(orden), &want); err != nil {
		t.Fatal(err)
	}
	if err := json.Unmarshal(resp.Orden, &got); err != nil {
		t.Fatalf("recovered orden is not JSON: %v", err)
	}
	wantJSON, _ := json.Marshal(want)
	gotJSON, _ := json.Marshal(got)
	if !bytes.Equal(wantJSON, gotJSON) {
		t.Fatalf("orden mismatch:\nwant %s\ngot  %s", wantJSON, gotJSON)
	}
}

func TestRestore_MissingField(t *testing.T) {
	rec := postJSON(t, testRouter(), "/v1/presupuestos/restore", `{}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if errorMessage(t, rec) != "Falta pdfBase64" {
		t.Fatalf("wrong message: %s", rec.Body.String())
	}
}

func TestRestore_PDFWithoutMetadata(t *testing.T) {
	// A PDF from an older generator revision: valid file, no snapshot.
	rec := presupuesto.Presupuesto{
		Numero:    "1",
		Repuestos: []presupuesto.Item{{Descripcion: "FILTRO", Cantidad: 1, ValorTotal: 1000}},
		TotalRepuestos: 1000,
		Subtotal:       1000,
		Total:          1000,
		Saldo:          1000,
	}
	pdfBytes, err := pdfgen.New().Generate(rec, "")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	body, _ := json.Marshal(map[string]string{
		"pdfBase64": base64.StdEncoding.EncodeToString(pdfBytes),
	})

	res := postJSON(t, testRouter(), "/v1/presupuestos/restore", string(body))
	if res.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", res.Code, res.Body.String())
	}
	if !strings.Contains(errorMessage(t, res), "no contiene datos") {
		t.Fatalf("wrong message: %s", res.Body.String())
	}
}

func TestRestore_UnreadablePDF(t *testing.T) {
	body, _ := json.Marshal(map[string]string{
		"pdfBase64": base64.StdEncoding.EncodeToString([]byte("garbage bytes")),
	})
	rec := postJSON(t, testRouter(), "/v1/presupuestos/restore", string(body))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 for an unreadable file, got %d", rec.Code)
	}
}

func TestExcelEndpoint_GeneratesPDF(t *testing.T) {
	f := excelize.NewFile()
	const sheet = "Table 1"
	idx, err := f.NewSheet(sheet)
	if err != nil {
		t.Fatalf("new sheet: %v", err)
	}
	f.SetActiveSheet(idx)
	cells := map[string]string{
		"A1": "REPUESTOS",
		"A2": "Filtro aceite",
		"D2": "15000",
		"B3": "TOTAL REPUESTOS $ 15.000",
	}
	for cell, v := range cells {
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			t.Fatalf("set %s: %v", cell, err)
		}
	}
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("write workbook: %v", err)
	}

	body, _ := json.Marshal(map[string]string{
		"file": base64.StdEncoding.EncodeToString(buf.Bytes()),
	})
	rec := postJSON(t, testRouter(), "/v1/presupuestos/excel", string(body))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if !bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF-")) {
		t.Fatal("body is not a PDF")
	}
}

func TestExcelEndpoint_MissingFile(t *testing.T) {
	rec := postJSON(t, testRouter(), "/v1/presupuestos/excel", `{}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestInternalAuth_Enforced(t *testing.T) {
	h := NewRouter(config.Config{HTTPAddr: ":0", InternalToken: "secreto"})

	rec := postJSON(t, h, "/v1/presupuestos/pdf", `{}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}

	req := httptest.NewRequest(http.MethodPost, "/v1/presupuestos/pdf", strings.NewReader(`{}`))
	req.Header.Set("X-Internal-Token", "secreto")
	res := httptest.NewRecorder()
	h.ServeHTTP(res, req)
	if res.Code == http.StatusUnauthorized {
		t.Fatal("expected the token to pass auth")
	}
}
