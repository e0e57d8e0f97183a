// Package presupuesto holds the canonical repair-quotation record and the
// normalization rules that turn loose web or spreadsheet input into it.
package presupuesto

// Presupuesto is the canonical quotation record consumed by the PDF layout.
// All label-like strings are trimmed and upper-cased; Nota keeps its casing.
type Presupuesto struct {
	Numero   string
	Cliente  Cliente
	Vehiculo Vehiculo

	Repuestos  []Item
	ManoDeObra []Item

	// Descuentos are the discounts that actually applied, in input order,
	// each already clipped so their sum never exceeds Subtotal.
	Descuentos []Descuento
	Abono      int64

	Nota string

	// Logo is a validated PNG, or nil when the request carried none.
	Logo []byte

	TotalRepuestos  int64
	TotalManoDeObra int64
	Subtotal        int64
	TotalDescuentos int64
	Total           int64
	Saldo           int64
}

type Cliente struct {
	Nombre string
	Fecha  string
	Rut    string
	Fono   string
	Email  string
}

type Vehiculo struct {
	Patente     string
	Ano         string
	Marca       string
	Modelo      string
	Kilometraje string
	VIN         string
	Combustible string
	Color       string
}

// Item is one billable line. ValorTotal is the line total in pesos.
type Item struct {
	Descripcion string
	Cantidad    int
	ValorTotal  int64
}

type Descuento struct {
	Monto  int64
	Motivo string
}
