package extrator

import (
	"testing"

	"conciliacao-service/internal/core/planilha"
)

func TestExtrairPagamentos(t *testing.T) {
	g := planilha.Grade{
		{"Banco Exemplo S.A."},
		{"Relatório de pagamentos efetuados"},
		{"Favorecido", "CPF/CNPJ", "Tipo", "Referência", "Data", "Valor", "Status"},
		{"FORNECEDOR ALFA LTDA", "12.345.678/0001-95", "TED", "NF 410", "15/03/2024", "1.500,00", "Efetivado"},
		{"", "", "", "", "", "", ""},
		{"JOSE DA SILVA", "***.456.789-**", "PIX", "", "16/03/2024", "200,50", "Efetivado"},
	}

	pagamentos := ExtrairPagamentos(g)
	if len(pagamentos) != 2 {
		t.Fatalf("pagamentos = %d, esperado 2", len(pagamentos))
	}

	p := pagamentos[0]
	if p.Favorecido != "FORNECEDOR ALFA LTDA" {
		t.Errorf("favorecido = %q", p.Favorecido)
	}
	if p.CpfCnpj != "12345678000195" {
		t.Errorf("cpf/cnpj sem máscara = %q", p.CpfCnpj)
	}
	if p.Data != "2024-03-15" {
		t.Errorf("data = %q, esperado 2024-03-15", p.Data)
	}
	if p.Valor != 1500 {
		t.Errorf("valor = %v, esperado 1500", p.Valor)
	}

	if pagamentos[1].CpfCnpj != "456789" {
		t.Errorf("cpf anonimizado = %q, esperado só os dígitos visíveis", pagamentos[1].CpfCnpj)
	}
}

func TestExtrairPagamentosSemCabecalho(t *testing.T) {
	g := planilha.Grade{
		{"FORNECEDOR ALFA", "1.500,00"},
		{"FORNECEDOR BETA", "200,00"},
	}
	if pagamentos := ExtrairPagamentos(g); pagamentos != nil {
		t.Errorf("sem cabeçalho qualificado o resultado deveria ser nil, veio %v", pagamentos)
	}
}
