package gofpdf

// Layout collects every geometric constant of the quotation page, in PDF
// points. The generator owns one immutable value; nothing here is shared
// mutable state.
type Layout struct {
	PageWidth  float64
	PageHeight float64
	Margin     float64

	FontSize        float64
	FontSizeNumero  float64
	FontSizeSection float64
	FontSizeDatos   float64

	RowHeight  float64
	LineHeight float64
	CellPad    float64

	Border      float64
	BorderThick float64

	// ColValorWidth is the fixed width of the value column; the
	// description column takes the rest of the content width.
	ColValorWidth float64
	DescIndent    float64

	LogoHeight float64

	ContactoWidth float64
	ContactoPad   float64

	FooterFontSize float64
	FooterY        float64

	BankFontSize   float64
	BankLineHeight float64
	BankBottomPad  float64
}

// DefaultLayout matches the production quotation template: A4 in points
// with everything tuned so a typical order fits one page.
func DefaultLayout() Layout {
	return Layout{
		PageWidth:  595,
		PageHeight: 842,
		Margin:     38,

		FontSize:        10,
		FontSizeNumero:  11,
		FontSizeSection: 13,
		FontSizeDatos:   11,

		RowHeight:  18,
		LineHeight: 14,
		CellPad:    6,

		Border:      0.5,
		BorderThick: 1,

		ColValorWidth: 100,
		DescIndent:    12,

		LogoHeight: 104,

		ContactoWidth: 200,
		ContactoPad:   8,

		FooterFontSize: 9,
		FooterY:        16,

		BankFontSize:   9,
		BankLineHeight: 11,
		BankBottomPad:  30,
	}
}

func (l Layout) ContentWidth() float64 {
	return l.PageWidth - 2*l.Margin
}

func (l Layout) ColDescWidth() float64 {
	return l.ContentWidth() - l.ColValorWidth
}

// DescMaxWidth is the usable width for wrapped description text: the
// description column minus its indent and the gap before the value column.
func (l Layout) DescMaxWidth() float64 {
	return l.ColDescWidth() - l.DescIndent - l.CellPad
}
