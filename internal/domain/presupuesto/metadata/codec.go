// Package metadata embeds the original order inside the PDF document
// information fields and reads it back out. The payload is JSON,
// base64-encoded and prefixed with a fixed marker; it is written to the
// Subject, Keywords and Title fields redundantly so recovery survives any
// single field being dropped by downstream tooling.
package metadata

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"seehuhn.de/go/pdf"
)

const marker = "PRESUPUESTOS_ORDEN_V1:"

// ErrSinOrden reports a structurally valid PDF that carries no embedded
// order in any metadata field. Distinct from a file that cannot be read
// as a PDF at all.
var ErrSinOrden = errors.New("el PDF no contiene una orden embebida")

// Encode serializes the order snapshot into the marker-prefixed string
// stored in the document metadata. The snapshot must already be free of
// binary payloads.
func Encode(orden any) (string, error) {
	b, err := json.Marshal(orden)
	if err != nil {
		return "", fmt.Errorf("serializar orden: %w", err)
	}
	return marker + base64.StdEncoding.EncodeToString(b), nil
}

// Decode loads pdfBytes as a document and recovers the embedded order
// from the first metadata field carrying the marker. A file that is not a
// readable PDF returns a wrapped load error; a readable PDF without the
// marker returns ErrSinOrden.
func Decode(pdfBytes []byte) (json.RawMessage, error) {
	r, err := pdf.NewReader(bytes.NewReader(pdfBytes), int64(len(pdfBytes)), nil)
	if err != nil {
		return nil, fmt.Errorf("leer PDF: %w", err)
	}
	info, err := r.GetInfo()
	if err != nil || info == nil {
		// No Info dictionary means no embedded order, not a broken file.
		return nil, ErrSinOrden
	}
	for _, field := range []string{info.Subject, info.Keywords, info.Title} {
		if orden, ok := extract(field); ok {
			return orden, nil
		}
	}
	return nil, ErrSinOrden
}

func extract(field string) (json.RawMessage, bool) {
	s := strings.TrimSpace(field)
	if !strings.HasPrefix(s, marker) {
		return nil, false
	}
	b64 := strings.TrimSpace(strings.TrimPrefix(s, marker))
	if b64 == "" {
		return nil, false
	}
	b, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return nil, false
	}
	if !json.Valid(b) {
		return nil, false
	}
	return json.RawMessage(b), true
}
