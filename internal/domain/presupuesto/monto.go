package presupuesto

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Monto is a peso amount as it arrives from the web form: a JSON number, a
// numeric string in Chilean format ("12.500", "1.234,56"), an empty string
// or null. Anything unparseable decodes to zero instead of failing the
// whole request.
type Monto int64

func (m *Monto) UnmarshalJSON(b []byte) error {
	*m = 0
	var raw any
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil
	}
	switch v := raw.(type) {
	case float64:
		*m = Monto(v)
	case string:
		if n, ok := ParseMonto(v); ok {
			*m = Monto(n)
		}
	}
	return nil
}

// ParseMonto reads an amount in the Chilean source format: "." groups
// thousands, "," starts the decimal part. Decimals are truncated, not
// rounded, when converting to pesos.
func ParseMonto(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, ".", "")
	if i := strings.IndexByte(s, ','); i >= 0 {
		s = s[:i]
	}
	if s == "" {
		return 0, false
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
