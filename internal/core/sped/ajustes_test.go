package sped

import (
	"strings"
	"testing"
)

const tabelaAjustes = `NF;Vencimento;Pagamento;Data Lancamento;Valor Ajuste;Credito ICMS;ICMS ST;Doc Lancamento;Autenticacao;Parceiro;Serie;Sub;Chave
NF 410;10/05/2024;12/05/2024;15/05/2024;1.500,00;120,00;30,00;GNRE123;AUT456;987;1;0;41240512345678000195550010000004101
411;;;;200,00;;;;;;;;
`

func TestCarregarAjustes(t *testing.T) {
	ajustes, err := CarregarAjustes([]byte(tabelaAjustes))
	if err != nil {
		t.Fatal(err)
	}
	if len(ajustes) != 2 {
		t.Fatalf("ajustes = %d, esperado 2", len(ajustes))
	}

	a := ajustes[0]
	if a.NF != "NF 410" || a.Valor != "1.500,00" || a.CreditoIcms != "120,00" {
		t.Errorf("primeiro ajuste: %+v", a)
	}
	if a.DataVencimento != "10/05/2024" || a.CodigoParceiro != "987" {
		t.Errorf("campos do primeiro ajuste: %+v", a)
	}
	if a.ChaveAcesso != "41240512345678000195550010000004101" {
		t.Errorf("chave de acesso: %q", a.ChaveAcesso)
	}

	if ajustes[1].NF != "411" || ajustes[1].DataVencimento != "" {
		t.Errorf("segundo ajuste: %+v", ajustes[1])
	}
}

func TestCarregarAjustesSemCabecalho(t *testing.T) {
	_, err := CarregarAjustes([]byte("410;10/05/2024;1.500,00\n"))
	if err == nil || !strings.Contains(err.Error(), "cabeçalho") {
		t.Errorf("esperado erro de cabeçalho, veio %v", err)
	}
}

func TestNormalizarNF(t *testing.T) {
	casos := []struct {
		entrada  string
		esperado string
	}{
		{"NF 410", "410"},
		{"nf410", "410"},
		{"NF-e 000410", "410"},
		{"000410", "410"},
		{"410", "410"},
		{"0", "0"},
		{"", "0"},
	}
	for _, c := range casos {
		if got := NormalizarNF(c.entrada); got != c.esperado {
			t.Errorf("NormalizarNF(%q) = %q, esperado %q", c.entrada, got, c.esperado)
		}
	}
}
