package excel

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestScan_SectionsAndTotals(t *testing.T) {
	rows := [][]string{
		{"PRESUPUESTO TALLER", "", "", ""},
		{"REPUESTOS", "", "", ""},
		{"Filtro aceite", "2", "7.500", "15.000"},
		{"Bujías juego", "1", "22.000", "22.000"},
		{"", "TOTAL REPUESTOS $ 37.000", "", ""},
		{"MANO DE OBRA", "", "", ""},
		{"Cambio de aceite", "1", "25.000", "25.000"},
		{"", "TOTAL MANO DE OBRA $ 25.000", "", ""},
		{"", "TOTAL PRESUPUESTO $ 62.000", "", ""},
		{"DEPOSITO INICIAL REPUESTOS $ 37.000", "", "", ""},
	}

	res := scan(rows)

	if len(res.Repuestos) != 2 || len(res.ManoDeObra) != 1 {
		t.Fatalf("wrong row counts: %d repuestos, %d mano de obra", len(res.Repuestos), len(res.ManoDeObra))
	}
	if res.Repuestos[0].Descripcion != "Filtro aceite" || res.Repuestos[0].ValorTotal != 15000 {
		t.Fatalf("first repuesto: %+v", res.Repuestos[0])
	}
	if res.TotalRepuestos != 37000 || res.TotalManoDeObra != 25000 || res.TotalPresupuesto != 62000 {
		t.Fatalf("declared totals not honored: %+v", res)
	}
	if res.DepositoInicial != 37000 {
		t.Fatalf("deposito: %d", res.DepositoInicial)
	}
}

func TestScan_ComputedFallbackTotals(t *testing.T) {
	rows := [][]string{
		{"REPUESTOS", "", "", ""},
		{"Filtro", "", "", "10.000"},
		{"Correa", "", "", "5.000"},
		{"MANO DE OBRA", "", "", ""},
		{"Ajuste", "", "", "8.000"},
	}

	res := scan(rows)

	if res.TotalRepuestos != 15000 {
		t.Fatalf("expected computed repuestos total 15000, got %d", res.TotalRepuestos)
	}
	if res.TotalManoDeObra != 8000 {
		t.Fatalf("expected computed mano de obra total 8000, got %d", res.TotalManoDeObra)
	}
	if res.TotalPresupuesto != 23000 {
		t.Fatalf("expected computed grand total 23000, got %d", res.TotalPresupuesto)
	}
	if res.DepositoInicial != 0 {
		t.Fatalf("expected no deposito, got %d", res.DepositoInicial)
	}
}

func TestScan_IgnoresRowsOutsideSectionsAndBlanks(t *testing.T) {
	rows := [][]string{
		{"Algo suelto", "", "", "9.999"},
		{"REPUESTOS", "", "", ""},
		{"", "", "", "5.000"},        // no description
		{"Sin total", "", "", ""},    // no numeric column D
		{"Válido", "", "", "1.000"},  // kept
		{"Otro", "", "", "no-numér"}, // unparseable column D
	}

	res := scan(rows)

	if len(res.Repuestos) != 1 || res.Repuestos[0].Descripcion != "Válido" {
		t.Fatalf("unexpected repuestos: %+v", res.Repuestos)
	}
}

func TestParse_Workbook(t *testing.T) {
	f := excelize.NewFile()
	const sheet = "Table 1"
	idx, err := f.NewSheet(sheet)
	if err != nil {
		t.Fatalf("new sheet: %v", err)
	}
	f.SetActiveSheet(idx)

	set := func(cell, value string) {
		if err := f.SetCellValue(sheet, cell, value); err != nil {
			t.Fatalf("set %s: %v", cell, err)
		}
	}
	set("A1", "REPUESTOS")
	set("A2", "Filtro aceite")
	set("D2", "15000")
	set("B3", "TOTAL REPUESTOS $ 15.000")
	set("A4", "MANO DE OBRA")
	set("A5", "Cambio de aceite")
	set("D5", "25000")
	set("B6", "TOTAL MANO DE OBRA $ 25.000")

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("write workbook: %v", err)
	}

	res, err := Parse(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(res.Repuestos) != 1 || res.Repuestos[0].ValorTotal != 15000 {
		t.Fatalf("repuestos: %+v", res.Repuestos)
	}
	if len(res.ManoDeObra) != 1 || res.ManoDeObra[0].ValorTotal != 25000 {
		t.Fatalf("mano de obra: %+v", res.ManoDeObra)
	}
	if res.TotalPresupuesto != 40000 {
		t.Fatalf("grand total: %d", res.TotalPresupuesto)
	}
}
