package presupuesto

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"image/png"
	"strings"
)

// ErrSinFilas reports a payload that decoded fine but kept no line items
// after filtering. Callers treat it as a bad request, not a server error.
var ErrSinFilas = errors.New("sin filas de repuestos ni mano de obra")

// Payload is the loosely typed order as submitted by the web form, or as
// rebuilt from an uploaded spreadsheet.
type Payload struct {
	Repuestos  []ItemPayload      `json:"repuestos"`
	ManoDeObra []ItemPayload      `json:"manoDeObra"`
	Descuentos []DescuentoPayload `json:"descuentos,omitempty"`

	// DescuentoMonto is the legacy single flat discount. It is honored
	// only when Descuentos is empty.
	DescuentoMonto Monto `json:"descuentoMonto,omitempty"`

	AbonoMonto Monto `json:"abonoMonto,omitempty"`

	Cliente  ClientePayload  `json:"cliente"`
	Vehiculo VehiculoPayload `json:"vehiculo"`

	Logo              string `json:"logo,omitempty"`
	PresupuestoNumero string `json:"presupuestoNumero,omitempty"`
	Nota              string `json:"nota,omitempty"`

	// Orden is an opaque echo-back blob the web form may supply; when
	// present it becomes the snapshot embedded in the PDF metadata.
	Orden json.RawMessage `json:"orden,omitempty"`
}

type ItemPayload struct {
	Descripcion string `json:"descripcion"`
	Cantidad    Monto  `json:"cantidad,omitempty"`
	Valor       Monto  `json:"valor"`
}

type DescuentoPayload struct {
	Monto  Monto  `json:"monto"`
	Motivo string `json:"motivo,omitempty"`
}

type ClientePayload struct {
	Nombre string `json:"nombre"`
	Fecha  string `json:"fecha"`
	Rut    string `json:"rut"`
	Fono   string `json:"fono"`
	Email  string `json:"email,omitempty"`
}

type VehiculoPayload struct {
	Patente     string `json:"patente"`
	Ano         string `json:"ano"`
	Marca       string `json:"marca"`
	Modelo      string `json:"modelo"`
	Kilometraje string `json:"kilometraje"`
	VIN         string `json:"vin"`
	Combustible string `json:"combustible"`
	Color       string `json:"color"`
}

// Normalize turns a raw payload into the canonical record. Malformed
// optional fields degrade to defaults; the only failure is a payload with
// no surviving line items at all.
func Normalize(p Payload) (Presupuesto, error) {
	rep := normalizeItems(p.Repuestos)
	mo := normalizeItems(p.ManoDeObra)
	if len(rep) == 0 && len(mo) == 0 {
		return Presupuesto{}, ErrSinFilas
	}

	out := Presupuesto{
		Numero: upper(p.PresupuestoNumero),
		Nota:   strings.TrimSpace(p.Nota),
		Cliente: Cliente{
			Nombre: upper(p.Cliente.Nombre),
			Fecha:  upper(p.Cliente.Fecha),
			Rut:    upper(p.Cliente.Rut),
			Fono:   upper(p.Cliente.Fono),
			Email:  strings.TrimSpace(p.Cliente.Email),
		},
		Vehiculo: Vehiculo{
			Patente:     upper(p.Vehiculo.Patente),
			Ano:         upper(p.Vehiculo.Ano),
			Marca:       upper(p.Vehiculo.Marca),
			Modelo:      upper(p.Vehiculo.Modelo),
			Kilometraje: FormatKilometraje(p.Vehiculo.Kilometraje),
			VIN:         upper(p.Vehiculo.VIN),
			Combustible: upper(p.Vehiculo.Combustible),
			Color:       upper(p.Vehiculo.Color),
		},
		Repuestos:  rep,
		ManoDeObra: mo,
		Logo:       decodeLogo(p.Logo),
	}

	for _, it := range rep {
		out.TotalRepuestos += it.ValorTotal
	}
	for _, it := range mo {
		out.TotalManoDeObra += it.ValorTotal
	}
	out.Subtotal = out.TotalRepuestos + out.TotalManoDeObra

	descuentos := p.Descuentos
	if len(descuentos) == 0 && p.DescuentoMonto > 0 {
		descuentos = []DescuentoPayload{{Monto: p.DescuentoMonto}}
	}
	// Apply discounts in input order, each clipped to the remaining
	// balance. Once the balance is gone, later discounts are dropped
	// entirely, so the sum can never exceed the subtotal.
	remaining := out.Subtotal
	for _, d := range descuentos {
		if remaining <= 0 {
			break
		}
		monto := int64(d.Monto)
		if monto > remaining {
			monto = remaining
		}
		if monto <= 0 {
			continue
		}
		out.Descuentos = append(out.Descuentos, Descuento{Monto: monto, Motivo: strings.TrimSpace(d.Motivo)})
		out.TotalDescuentos += monto
		remaining -= monto
	}

	out.Total = out.Subtotal - out.TotalDescuentos
	if a := int64(p.AbonoMonto); a > 0 {
		out.Abono = a
	}
	out.Saldo = out.Total - out.Abono
	if out.Saldo < 0 {
		out.Saldo = 0
	}
	return out, nil
}

// normalizeItems keeps only rows with a non-empty description and a
// strictly positive total. Quantity defaults to 1.
func normalizeItems(items []ItemPayload) []Item {
	var out []Item
	for _, it := range items {
		desc := upper(it.Descripcion)
		valor := int64(it.Valor)
		if desc == "" || valor <= 0 {
			continue
		}
		cantidad := int(it.Cantidad)
		if cantidad < 1 {
			cantidad = 1
		}
		out = append(out, Item{Descripcion: desc, Cantidad: cantidad, ValorTotal: valor})
	}
	return out
}

func upper(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// decodeLogo decodes the optional base64 logo and verifies it is a real
// PNG. Any failure means "no logo supplied"; embedding a broken image
// must never abort a generation.
func decodeLogo(b64 string) []byte {
	s := strings.TrimSpace(b64)
	if s == "" {
		return nil
	}
	if strings.HasPrefix(s, "data:") {
		if i := strings.IndexByte(s, ','); i >= 0 {
			s = s[i+1:]
		}
	}
	raw, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil
	}
	if _, err := png.DecodeConfig(bytes.NewReader(raw)); err != nil {
		return nil
	}
	return raw
}
