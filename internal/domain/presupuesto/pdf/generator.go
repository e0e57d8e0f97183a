package pdf

import "gparts/presupuestos_backend/internal/domain/presupuesto"

// Generator renders one canonical record as a single-page PDF. The
// snapshot string, when non-empty, is stored verbatim in the document
// metadata so the order can be recovered from the file later.
type Generator interface {
	Generate(p presupuesto.Presupuesto, snapshot string) ([]byte, error)
}
