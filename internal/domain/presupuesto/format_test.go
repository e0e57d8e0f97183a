package presupuesto

import "testing"

func TestFormatMoneda(t *testing.T) {
	cases := []struct {
		in   int64
		want string
	}{
		{0, "$ 0"},
		{950, "$ 950"},
		{15000, "$ 15.000"},
		{1234567, "$ 1.234.567"},
	}
	for _, c := range cases {
		if got := FormatMoneda(c.in); got != c.want {
			t.Fatalf("FormatMoneda(%d) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestFormatKilometraje(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"  ", ""},
		{"123456", "123.456"},
		{"123456 km", "123.456"},
		{"12.345", "12.345"},
		{"sin dato", "sin dato"},
	}
	for _, c := range cases {
		if got := FormatKilometraje(c.in); got != c.want {
			t.Fatalf("FormatKilometraje(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestParseMonto(t *testing.T) {
	cases := []struct {
		in   string
		want int64
		ok   bool
	}{
		{"15000", 15000, true},
		{"15.000", 15000, true},
		{"1.234,56", 1234, true},
		{"$ 2.500", 2500, true},
		{" 1 000 ", 1000, true},
		{",50", 0, false},
		{"", 0, false},
		{"abc", 0, false},
	}
	for _, c := range cases {
		got, ok := ParseMonto(c.in)
		if got != c.want || ok != c.ok {
			t.Fatalf("ParseMonto(%q) = (%d, %v), want (%d, %v)", c.in, got, ok, c.want, c.ok)
		}
	}
}
