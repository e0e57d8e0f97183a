// Package excel extracts a quotation from an uploaded workbook. The sheet
// is scanned row by row for the REPUESTOS and MANO DE OBRA section
// markers; item rows follow until the section's declared-total marker
// closes it.
package excel

import (
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/xuri/excelize/v2"

	"gparts/presupuestos_backend/internal/domain/presupuesto"
)

// preferredSheet is the sheet name the workbooks exported by the shop's
// scanner always use; anything else falls back to the first sheet.
const preferredSheet = "Table 1"

var (
	reTotalRepuestos   = regexp.MustCompile(`(?i)TOTAL REPUESTOS\s*\$\s*([\d.,]+)`)
	reTotalManoDeObra  = regexp.MustCompile(`(?i)TOTAL MANO DE OBRA\s*\$\s*([\d.,]+)`)
	reTotalPresupuesto = regexp.MustCompile(`(?i)TOTAL PRESUPUESTO\s*\$\s*([\d.,]+)`)
	reDeposito         = regexp.MustCompile(`(?i)DEPOSITO[^$]*\$\s*([\d.,]+)`)
)

// Fila is one extracted line: description from column A, total from
// column D.
type Fila struct {
	Descripcion string
	ValorTotal  int64
}

// Result is the raw outcome of a workbook scan. Section totals fall back
// to computed sums when the sheet declares none.
type Result struct {
	Repuestos  []Fila
	ManoDeObra []Fila

	TotalRepuestos   int64
	TotalManoDeObra  int64
	TotalPresupuesto int64

	// DepositoInicial is the advance payment declared on the sheet,
	// zero when absent.
	DepositoInicial int64
}

// Parse reads the workbook and extracts both item sections and any
// declared totals.
func Parse(r io.Reader) (Result, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return Result{}, fmt.Errorf("abrir excel: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return Result{}, errors.New("el archivo no tiene hojas")
	}
	name := sheets[0]
	for _, s := range sheets {
		if s == preferredSheet {
			name = s
			break
		}
	}
	rows, err := f.GetRows(name)
	if err != nil {
		return Result{}, fmt.Errorf("leer hoja %q: %w", name, err)
	}
	return scan(rows), nil
}

func scan(rows [][]string) Result {
	var res Result
	var declRepuestos, declManoDeObra, declPresupuesto *int64

	section := ""
	for _, row := range rows {
		a := strings.TrimSpace(cell(row, 0))
		b := strings.TrimSpace(cell(row, 1))
		d := strings.TrimSpace(cell(row, 3))

		switch a {
		case "REPUESTOS":
			section = "repuestos"
			continue
		case "MANO DE OBRA":
			section = "manoDeObra"
			continue
		}

		switch section {
		case "repuestos":
			if m := reTotalRepuestos.FindStringSubmatch(b); m != nil {
				declRepuestos = amountPtr(m[1])
				section = ""
				continue
			}
			if fila, ok := itemRow(a, d); ok {
				res.Repuestos = append(res.Repuestos, fila)
			}
		case "manoDeObra":
			if m := reTotalManoDeObra.FindStringSubmatch(b); m != nil {
				declManoDeObra = amountPtr(m[1])
				section = ""
				continue
			}
			if fila, ok := itemRow(a, d); ok {
				res.ManoDeObra = append(res.ManoDeObra, fila)
			}
		}

		if m := reTotalPresupuesto.FindStringSubmatch(b); m != nil {
			declPresupuesto = amountPtr(m[1])
		}
		if m := reDeposito.FindStringSubmatch(a); m != nil {
			if v, ok := presupuesto.ParseMonto(m[1]); ok {
				res.DepositoInicial = v
			}
		}
	}

	res.TotalRepuestos = orSum(declRepuestos, res.Repuestos)
	res.TotalManoDeObra = orSum(declManoDeObra, res.ManoDeObra)
	if declPresupuesto != nil {
		res.TotalPresupuesto = *declPresupuesto
	} else {
		res.TotalPresupuesto = res.TotalRepuestos + res.TotalManoDeObra
	}
	return res
}

func itemRow(desc, total string) (Fila, bool) {
	if desc == "" || total == "" {
		return Fila{}, false
	}
	v, ok := presupuesto.ParseMonto(total)
	if !ok {
		return Fila{}, false
	}
	return Fila{Descripcion: desc, ValorTotal: v}, true
}

func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

func amountPtr(s string) *int64 {
	v, ok := presupuesto.ParseMonto(s)
	if !ok {
		return nil
	}
	return &v
}

func orSum(decl *int64, filas []Fila) int64 {
	if decl != nil {
		return *decl
	}
	var sum int64
	for _, f := range filas {
		sum += f.ValorTotal
	}
	return sum
}
