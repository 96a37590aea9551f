package planilha

import (
	"math"
	"testing"
)

func TestParseValorBR(t *testing.T) {
	casos := []struct {
		entrada  string
		esperado float64
	}{
		{"1.234,56", 1234.56},
		{"R$ 1.234,56", 1234.56},
		{"(1.000,00)", -1000},
		{"-150,75", -150.75},
		{"0,00", 0},
		{"12", 12},
		{"", 0},
		{"abc", 0},
		{"1.234.567,89", 1234567.89},
	}
	for _, c := range casos {
		if got := ParseValorBR(c.entrada); math.Abs(got-c.esperado) > 1e-9 {
			t.Errorf("ParseValorBR(%q) = %v, esperado %v", c.entrada, got, c.esperado)
		}
	}
}

func TestParseValorBROpcionalDistingueVazioDeZero(t *testing.T) {
	if _, ok := ParseValorBROpcional(""); ok {
		t.Error("entrada vazia não deveria ser interpretável")
	}
	if _, ok := ParseValorBROpcional("texto"); ok {
		t.Error("texto puro não deveria ser interpretável")
	}
	v, ok := ParseValorBROpcional("0,00")
	if !ok || v != 0 {
		t.Errorf("ParseValorBROpcional(\"0,00\") = (%v, %v), esperado (0, true)", v, ok)
	}
}

func TestFormatarDuasCasas(t *testing.T) {
	casos := []struct {
		entrada  float64
		esperado string
	}{
		{19943.7, "19943,70"},
		{0, "0,00"},
		{-5, "-5,00"},
		{1234567.891, "1234567,89"},
	}
	for _, c := range casos {
		if got := FormatarDuasCasas(c.entrada); got != c.esperado {
			t.Errorf("FormatarDuasCasas(%v) = %q, esperado %q", c.entrada, got, c.esperado)
		}
	}
}

func TestParseDataBR(t *testing.T) {
	casos := []struct {
		entrada  string
		esperado string
	}{
		{"5/3/2024", "2024-03-05"},
		{"05/03/2024", "2024-03-05"},
		{"31/12/2023", "2023-12-31"},
		{"38000", "2004-01-14"}, // serial de Excel
		{"100", "100"},          // fora da janela de seriais
		{"texto livre", "texto livre"},
		{"", ""},
	}
	for _, c := range casos {
		if got := ParseDataBR(c.entrada); got != c.esperado {
			t.Errorf("ParseDataBR(%q) = %q, esperado %q", c.entrada, got, c.esperado)
		}
	}
}

func TestNormalizeTexto(t *testing.T) {
	casos := []struct {
		entrada  string
		esperado string
	}{
		{"Fornecedor Ltda. - São Paulo", "FORNECEDOR LTDA SAO PAULO"},
		{"  aço   e  ferro ", "ACO E FERRO"},
		{"", ""},
	}
	for _, c := range casos {
		if got := NormalizeTexto(c.entrada); got != c.esperado {
			t.Errorf("NormalizeTexto(%q) = %q, esperado %q", c.entrada, got, c.esperado)
		}
	}
}

func TestNormalizeChave(t *testing.T) {
	casos := []struct {
		entrada  string
		esperado string
	}{
		{"Descrição", "descricao"},
		{"Cta. C/Part.", "ctacpart"},
		{"CNPJ ", "cnpj"},
	}
	for _, c := range casos {
		if got := NormalizeChave(c.entrada); got != c.esperado {
			t.Errorf("NormalizeChave(%q) = %q, esperado %q", c.entrada, got, c.esperado)
		}
	}
}

func TestSanitizarCSV(t *testing.T) {
	if got := SanitizarCSV("  linha\ncom\tquebra  "); got != "linhacomquebra" {
		t.Errorf("SanitizarCSV = %q", got)
	}
	if got := SanitizarCSV("   "); got != "" {
		t.Errorf("somente espaços deveria virar vazio, veio %q", got)
	}
}
