// Package gofpdf renders the quotation page with github.com/jung-kurt/gofpdf.
// The layout is a single deterministic top-to-bottom pass: every section
// takes the current cursor (distance from the page top, in points) and
// returns the advanced cursor.
package gofpdf

import (
	"bytes"
	_ "embed"
	"fmt"
	"image/png"
	"log"
	"math"

	"github.com/jung-kurt/gofpdf"

	"gparts/presupuestos_backend/internal/domain/presupuesto"
)

//go:embed logo.png
var defaultLogo []byte

const (
	fontFamily   = "Helvetica"
	copiaCliente = "COPIA CLIENTE"
	footerText   = "*la validez de la cotización es de 7 días*"
	bankTitle    = "Cuenta para depósitos de repuestos:"
)

var contactoLines = []string{
	"Joaquin Miranda",
	"joaquinmirand22@hotmail.com",
	"Sanchez Fontecilla 4655, Puente Alto",
	"+56 9 8136 7788",
	copiaCliente,
}

var bankLines = []string{
	"Luz Soto",
	"12.274.838-3",
	"Banco de Chile",
	"Cuenta Vista 00-023-25250-80",
	"Joaquinmirand22@hotmail.com",
}

type Generator struct {
	layout Layout
}

func New() *Generator { return &Generator{layout: DefaultLayout()} }

func NewWithLayout(l Layout) *Generator { return &Generator{layout: l} }

func (g *Generator) Generate(p presupuesto.Presupuesto, snapshot string) ([]byte, error) {
	l := g.layout
	doc := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: l.PageWidth, Ht: l.PageHeight},
	})
	doc.SetAutoPageBreak(false, 0)
	doc.AddPage()

	pg := &page{doc: doc, tr: doc.UnicodeTranslatorFromDescriptor(""), l: l}

	pg.drawLogo(p.Logo)
	numeroBottom := pg.drawNumero(p.Numero)
	contactoBottom := pg.drawContacto()

	// Content starts below both the contact box and the quote-number
	// line, whichever reaches lower.
	y := math.Max(numeroBottom, contactoBottom+12+l.LineHeight+4)

	y = pg.drawDatosBox(y, "Datos del Cliente", clienteFilas(p.Cliente), 72, 46)
	y = pg.drawDatosBox(y+14, "Datos del Vehículo", vehiculoFilas(p.Vehiculo), 82, 52)
	y = pg.drawTablaHeader(y + 14)
	y = pg.drawSeccionItems(y+14, "Repuestos", p.Repuestos)
	y = pg.drawDepositoRepuestos(y+6, p.TotalRepuestos)
	y = pg.drawSeccionItems(y+14, "Mano de Obra", p.ManoDeObra)
	y = pg.drawResumen(y+6, p)
	if p.Nota != "" {
		y = pg.drawNota(y+14, p.Nota)
	}

	pg.drawBankInfo()
	pg.drawFooter()

	if snapshot != "" {
		doc.SetTitle(snapshot, true)
		doc.SetSubject(snapshot, true)
		doc.SetKeywords(snapshot, true)
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("generar PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// page carries the document, the CP1252 translator for the core fonts and
// the layout through the section helpers.
type page struct {
	doc *gofpdf.Fpdf
	tr  func(string) string
	l   Layout
}

func (pg *page) text(x, y float64, style string, size float64, s string) {
	pg.doc.SetFont(fontFamily, style, size)
	pg.doc.Text(x, y, pg.tr(s))
}

func (pg *page) width(style string, size float64, s string) float64 {
	pg.doc.SetFont(fontFamily, style, size)
	return pg.doc.GetStringWidth(pg.tr(s))
}

func (pg *page) rect(x, y, w, h, border float64) {
	pg.doc.SetLineWidth(border)
	pg.doc.Rect(x, y, w, h, "D")
}

func (pg *page) line(x1, y1, x2, y2, border float64) {
	pg.doc.SetLineWidth(border)
	pg.doc.Line(x1, y1, x2, y2)
}

func (pg *page) centered(y float64, style string, size float64, s string) {
	x := (pg.l.PageWidth - pg.width(style, size, s)) / 2
	if x < 0 {
		x = 0
	}
	pg.text(x, y, style, size, s)
}

// drawLogo places the order's logo, or the bundled default, top-left at a
// fixed height with the aspect ratio preserved. A broken image is logged
// and skipped; it must never abort the generation.
func (pg *page) drawLogo(logo []byte) {
	if len(logo) == 0 {
		logo = defaultLogo
	}
	if _, err := png.DecodeConfig(bytes.NewReader(logo)); err != nil {
		log.Printf("presupuesto pdf: logo inválido, se omite: %v", err)
		return
	}
	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pg.doc.RegisterImageOptionsReader("logo", opts, bytes.NewReader(logo))
	if pg.doc.Ok() {
		pg.doc.ImageOptions("logo", pg.l.Margin, pg.l.Margin, 0, pg.l.LogoHeight, false, opts, 0, "")
	}
	if err := pg.doc.Error(); err != nil {
		log.Printf("presupuesto pdf: no se pudo incrustar el logo: %v", err)
		pg.doc.ClearError()
	}
}

func (pg *page) drawNumero(numero string) float64 {
	l := pg.l
	baseline := l.Margin + l.LogoHeight + 18
	line := "Presupuesto N°"
	if numero != "" {
		line += " " + numero
	}
	pg.text(l.Margin, baseline, "B", l.FontSizeNumero, line)
	return baseline + l.FontSizeNumero + 11
}

func (pg *page) drawContacto() float64 {
	l := pg.l
	height := float64(len(contactoLines))*l.LineHeight + 2*l.ContactoPad
	x := l.PageWidth - l.Margin - l.ContactoWidth
	pg.rect(x, l.Margin, l.ContactoWidth, height, l.Border)

	y := l.Margin + l.ContactoPad + 12
	for _, line := range contactoLines {
		style := ""
		if line == copiaCliente {
			style = "B"
		}
		w := pg.width(style, l.FontSize, line)
		pg.text(x+l.ContactoWidth-l.ContactoPad-w, y, style, l.FontSize, line)
		y += l.LineHeight
	}
	return l.Margin + height
}

type par struct {
	label string
	valor string
}

type fila struct {
	izq par
	der par
}

func clienteFilas(c presupuesto.Cliente) []fila {
	return []fila{
		{par{"Nombre", c.Nombre}, par{"Fecha", c.Fecha}},
		{par{"Rut", c.Rut}, par{"Fono", c.Fono}},
		{izq: par{"Email", c.Email}},
	}
}

func vehiculoFilas(v presupuesto.Vehiculo) []fila {
	return []fila{
		{par{"Patente", v.Patente}, par{"Año", v.Ano}},
		{par{"Marca", v.Marca}, par{"Modelo", v.Modelo}},
		{par{"Kilometraje", v.Kilometraje}, par{"VIN", v.VIN}},
		{par{"Combustible", v.Combustible}, par{"Color", v.Color}},
	}
}

// filasPobladas drops rows with no values at all and re-anchors a lone
// right-column value to the left column so the box never shows a gap.
func filasPobladas(filas []fila) []fila {
	var out []fila
	for _, f := range filas {
		if f.izq.valor == "" && f.der.valor == "" {
			continue
		}
		if f.izq.valor == "" {
			f = fila{izq: f.der}
		}
		out = append(out, f)
	}
	return out
}

// drawDatosBox draws a bordered two-column label/value box whose height is
// derived from the rows actually populated. valXIzq and valXDer are the
// value offsets from the box edge and the second-column edge.
func (pg *page) drawDatosBox(y float64, titulo string, filas []fila, valXIzq, valXDer float64) float64 {
	l := pg.l
	filas = filasPobladas(filas)
	height := l.LineHeight + 8 + 6 + float64(len(filas))*l.LineHeight + 10

	pg.rect(l.Margin, y, l.ContentWidth(), height, l.Border)
	pg.text(l.Margin+l.CellPad, y+14, "B", l.FontSizeSection, titulo)

	col2X := l.Margin + l.ContentWidth()*0.5
	baseline := y + l.LineHeight + 18
	for _, f := range filas {
		pg.text(l.Margin+l.CellPad, baseline, "B", l.FontSizeDatos, f.izq.label)
		pg.text(l.Margin+valXIzq, baseline, "", l.FontSizeDatos, f.izq.valor)
		if f.der.valor != "" {
			pg.text(col2X+l.CellPad, baseline, "B", l.FontSizeDatos, f.der.label)
			pg.text(col2X+valXDer, baseline, "", l.FontSizeDatos, f.der.valor)
		}
		baseline += l.LineHeight
	}
	return y + height
}

func (pg *page) drawTablaHeader(y float64) float64 {
	l := pg.l
	divX := l.Margin + l.ColDescWidth()
	pg.rect(l.Margin, y, l.ContentWidth(), l.RowHeight, l.Border)
	pg.line(divX, y, divX, y+l.RowHeight, l.Border)
	pg.text(l.Margin+l.CellPad, y+13, "B", l.FontSize, "Descripción")
	pg.text(divX+l.CellPad, y+13, "B", l.FontSize, "Valor Total")
	return y + l.RowHeight
}

// drawSeccionItems renders a section label and one row per line item. The
// description wraps to the column width, the value sits on the first
// wrapped line, and the cursor advances by at least a full row height.
func (pg *page) drawSeccionItems(y float64, titulo string, items []presupuesto.Item) float64 {
	l := pg.l
	pg.text(l.Margin, y, "B", l.FontSizeSection, titulo)
	y += l.RowHeight

	measure := func(s string) float64 { return pg.width("", l.FontSize, s) }
	for _, it := range items {
		desc := it.Descripcion
		if it.Cantidad > 1 {
			desc += fmt.Sprintf(" (x%d)", it.Cantidad)
		}
		lines := wrapText(desc, l.DescMaxWidth(), measure)
		first := y
		for _, line := range lines {
			pg.text(l.Margin+l.DescIndent, y, "", l.FontSize, line)
			y += l.LineHeight
		}
		pg.text(l.Margin+l.ColDescWidth()+l.CellPad, first, "", l.FontSize, presupuesto.FormatMoneda(it.ValorTotal))
		if extra := l.RowHeight - float64(len(lines))*l.LineHeight; extra > 0 {
			y += extra
		}
	}
	return y
}

// drawDepositoRepuestos is the emphasis row between Repuestos and Mano de
// Obra showing the parts subtotal expected as an upfront deposit.
func (pg *page) drawDepositoRepuestos(y float64, total int64) float64 {
	l := pg.l
	divX := l.Margin + l.ColDescWidth()
	pg.rect(l.Margin, y, l.ContentWidth(), l.RowHeight, l.BorderThick)
	pg.line(divX, y, divX, y+l.RowHeight, l.BorderThick)
	pg.text(l.Margin+l.CellPad, y+13, "B", l.FontSize, "Depósito por repuestos")
	pg.text(divX+l.CellPad, y+13, "B", l.FontSize, presupuesto.FormatMoneda(total))
	return y + l.RowHeight
}

type resumenFila struct {
	label string
	valor string
	bold  bool
}

// drawResumen renders the closing totals block. With discounts or an
// abono it itemizes Subtotal, each applied discount, the abono and the
// outstanding balance; otherwise it is a single bold Total row.
func (pg *page) drawResumen(y float64, p presupuesto.Presupuesto) float64 {
	l := pg.l

	var filas []resumenFila
	if len(p.Descuentos) > 0 || p.Abono > 0 {
		filas = append(filas, resumenFila{"Subtotal", presupuesto.FormatMoneda(p.Subtotal), false})
		for _, d := range p.Descuentos {
			label := "Descuento"
			if d.Motivo != "" {
				label += " (" + d.Motivo + ")"
			}
			filas = append(filas, resumenFila{label, "- " + presupuesto.FormatMoneda(d.Monto), false})
		}
		if p.Abono > 0 {
			filas = append(filas, resumenFila{"Abono", "- " + presupuesto.FormatMoneda(p.Abono), false})
		}
		filas = append(filas, resumenFila{"Saldo por pagar", presupuesto.FormatMoneda(p.Saldo), true})
	} else {
		filas = []resumenFila{{"Total", presupuesto.FormatMoneda(p.Total), true}}
	}

	height := float64(len(filas)) * l.RowHeight
	divX := l.Margin + l.ColDescWidth()
	pg.rect(l.Margin, y, l.ContentWidth(), height, l.BorderThick)
	pg.line(divX, y, divX, y+height, l.BorderThick)

	for i, f := range filas {
		top := y + float64(i)*l.RowHeight
		if i > 0 {
			pg.line(l.Margin, top, l.Margin+l.ContentWidth(), top, l.Border)
		}
		style := ""
		if f.bold {
			style = "B"
		}
		pg.text(l.Margin+l.CellPad, top+13, style, l.FontSize, f.label)
		pg.text(divX+l.CellPad, top+13, style, l.FontSize, f.valor)
	}
	return y + height
}

func (pg *page) drawNota(y float64, nota string) float64 {
	l := pg.l
	label := "Nota:"
	pg.text(l.Margin, y, "B", l.FontSize, label)

	indent := pg.width("B", l.FontSize, label) + l.CellPad
	measure := func(s string) float64 { return pg.width("", l.FontSize, s) }
	for i, line := range wrapText(nota, l.ContentWidth()-indent, measure) {
		if i > 0 {
			y += l.LineHeight
		}
		pg.text(l.Margin+indent, y, "", l.FontSize, line)
	}
	return y + l.LineHeight
}

// drawBankInfo centers the fixed deposit-account block just above the
// footer. First page only; the layout never paginates.
func (pg *page) drawBankInfo() {
	l := pg.l
	y := l.PageHeight - (l.FooterY + l.BankBottomPad + float64(len(bankLines))*l.BankLineHeight + 2)
	pg.centered(y, "B", l.BankFontSize, bankTitle)
	y += l.BankLineHeight
	for _, line := range bankLines {
		pg.centered(y, "", l.BankFontSize, line)
		y += l.BankLineHeight
	}
}

func (pg *page) drawFooter() {
	l := pg.l
	pg.centered(l.PageHeight-l.FooterY, "I", l.FooterFontSize, footerText)
}
