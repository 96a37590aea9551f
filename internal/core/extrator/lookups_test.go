package extrator

import (
	"testing"

	"conciliacao-service/internal/domain"
)

func TestConstruirLookupHistorico(t *testing.T) {
	lancamentos := []domain.LancamentoRazao{
		{Historico: "Pagto. Aluguel", CtaCPart: "2.1.1", Credito: 100},
		// mesmo texto normalizado do primeiro: o primeiro visto vence
		{Historico: "PAGTO ALUGUEL", CtaCPart: "9.9.9", Credito: 50},
		// crédito zero e contrapartida vazia ficam de fora
		{Historico: "TARIFA BANCARIA", CtaCPart: "4.1.1", Credito: 0},
		{Historico: "JUROS RECEBIDOS", CtaCPart: "", Credito: 30},
		{Historico: "ENERGIA ELETRICA", CtaCPart: "4.1.2", Credito: 80},
	}

	lookup := ConstruirLookupHistorico(lancamentos)
	if len(lookup) != 2 {
		t.Fatalf("entradas = %d, esperado 2: %v", len(lookup), lookup)
	}
	if lookup["PAGTO ALUGUEL"] != "2.1.1" {
		t.Errorf("primeiro visto deveria vencer: %v", lookup)
	}
	if lookup["ENERGIA ELETRICA"] != "4.1.2" {
		t.Errorf("lookup de energia: %v", lookup)
	}
}

func TestConstruirLookupCentroCusto(t *testing.T) {
	lancamentos := []domain.LancamentoRazao{
		{Historico: "Rateio centro 1.02 administração", CtaCPart: "4.1.1"},
		{Historico: "RATEIO CENTRO 1.02 ADM", CtaCPart: "4.1.1"},
		{Historico: "AJUSTE CENTRO 1.02", CtaCPart: "4.2.2"},
		{Historico: "CENTRO 2.05 PRODUCAO", CtaCPart: "5.1.1"},
		{Historico: "SEM CODIGO NENHUM", CtaCPart: "6.1.1"},
	}

	lookup := ConstruirLookupCentroCusto(lancamentos)
	if len(lookup) != 2 {
		t.Fatalf("entradas = %d, esperado 2: %v", len(lookup), lookup)
	}
	if lookup["1.02"] != "4.1.1" {
		t.Errorf("maioria deveria vencer para 1.02: %v", lookup)
	}
	if lookup["2.05"] != "5.1.1" {
		t.Errorf("lookup de 2.05: %v", lookup)
	}
}

func TestConstruirLookupCentroCustoEmpate(t *testing.T) {
	lancamentos := []domain.LancamentoRazao{
		{Historico: "CENTRO 3.01 X", CtaCPart: "7.1.1"},
		{Historico: "CENTRO 3.01 Y", CtaCPart: "8.1.1"},
	}
	lookup := ConstruirLookupCentroCusto(lancamentos)
	if lookup["3.01"] != "7.1.1" {
		t.Errorf("empate deveria premiar a contrapartida vista primeiro: %v", lookup)
	}
}
