package extrator

import (
	"testing"

	"conciliacao-service/internal/core/planilha"
)

func TestExtrairNotasSaida(t *testing.T) {
	g := planilha.Grade{
		{"Notas Fiscais Emitidas"},
		{"Emissão", "Número", "Cliente", "CFOP", "Valor Total", "Situação"},
		{"10/04/2024", "NF-e 000410", "CLIENTE ALFA", "5102", "1.234,56", "Autorizada"},
		{"11/04/2024", "411", "CLIENTE BETA", "6102", "500,00", "Cancelada"},
		{"", "Total", "", "", "1.734,56", ""},
	}

	notas := ExtrairNotasSaida(g)
	if len(notas) != 2 {
		t.Fatalf("notas = %d, esperado 2", len(notas))
	}

	if notas[0].Numero != "NF 410" {
		t.Errorf("número canônico = %q, esperado \"NF 410\"", notas[0].Numero)
	}
	if notas[0].Emissao != "2024-04-10" {
		t.Errorf("emissão = %q, esperado 2024-04-10", notas[0].Emissao)
	}
	if notas[0].Valor != 1234.56 {
		t.Errorf("valor = %v", notas[0].Valor)
	}
	if notas[1].Numero != "NF 411" {
		t.Errorf("número sem prefixo na origem = %q, esperado \"NF 411\"", notas[1].Numero)
	}
	if notas[1].Situacao != "Cancelada" {
		t.Errorf("situação = %q", notas[1].Situacao)
	}
}

func TestExtrairNotasSaidaSemColunaDeEmissao(t *testing.T) {
	g := planilha.Grade{
		{"Número", "Cliente", "Valor"},
		{"410", "CLIENTE ALFA", "100,00"},
	}
	if notas := ExtrairNotasSaida(g); notas != nil {
		t.Errorf("sem coluna de emissão o resultado deveria ser nil, veio %v", notas)
	}
}

func TestNormalizarNumeroNota(t *testing.T) {
	casos := []struct {
		entrada  string
		esperado string
	}{
		{"410", "NF 410"},
		{"NF 410", "NF 410"},
		{"NF-e 000410", "NF 410"},
		{"0", "NF 0"},
		{"sem numero", "sem numero"},
	}
	for _, c := range casos {
		if got := NormalizarNumeroNota(c.entrada); got != c.esperado {
			t.Errorf("NormalizarNumeroNota(%q) = %q, esperado %q", c.entrada, got, c.esperado)
		}
	}
}
