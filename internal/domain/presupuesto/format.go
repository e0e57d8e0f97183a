package presupuesto

import (
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.MustParse("es-CL"))

// FormatMoneda renders pesos the way the quotation shows them: "$ 12.500".
func FormatMoneda(v int64) string {
	return printer.Sprintf("$ %d", v)
}

// FormatKilometraje strips everything but digits and re-groups them with
// the Chilean thousands separator ("123456 km" -> "123.456"). Values with
// no digits pass through trimmed.
func FormatKilometraje(s string) string {
	s = strings.TrimSpace(s)
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
	if digits == "" {
		return s
	}
	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return s
	}
	return printer.Sprintf("%d", n)
}
