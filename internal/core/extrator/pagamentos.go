package extrator

import (
	"strings"

	"conciliacao-service/internal/core/planilha"
	"conciliacao-service/internal/domain"
)

// Limites da varredura de cabeçalho do relatório de pagamentos. O layout
// desses relatórios varia demais entre bancos para um fallback fixo: sem
// cabeçalho qualificado o resultado é vazio.
const (
	pagamentosMaxLinhasCabecalho = 60
	pagamentosMinAcertos         = 4
)

var regrasPagamentos = []planilha.RegraCampo{
	{Campo: "favorecido", Fragmentos: []string{"favorecido", "beneficiario", "nome"}, Obrigatorio: true},
	{Campo: "cpfcnpj", Fragmentos: []string{"cpf", "cnpj"}},
	{Campo: "tipo", Fragmentos: []string{"tipo"}},
	{Campo: "referencia", Fragmentos: []string{"referencia", "ref"}},
	{Campo: "data", Fragmentos: []string{"data"}},
	{Campo: "valor", Fragmentos: []string{"valor"}, Obrigatorio: true},
	{Campo: "status", Fragmentos: []string{"status", "situacao"}},
}

// ExtrairPagamentos extrai o relatório de pagamentos do banco. Linhas sem
// favorecido e sem valor são ruído de rodapé e são puladas.
func ExtrairPagamentos(g planilha.Grade) []domain.PagamentoBanco {
	cab := planilha.LocalizarCabecalho(g, regrasPagamentos, pagamentosMaxLinhasCabecalho, pagamentosMinAcertos)
	if !cab.Encontrado {
		return nil
	}

	var pagamentos []domain.PagamentoBanco
	for i := cab.Linha + 1; i < len(g); i++ {
		linha := g[i]

		favorecido := cab.Colunas.Valor(linha, "favorecido")
		valor := planilha.ParseValorBR(cab.Colunas.Valor(linha, "valor"))
		if favorecido == "" && valor == 0 {
			continue
		}

		pagamentos = append(pagamentos, domain.PagamentoBanco{
			Favorecido: favorecido,
			CpfCnpj:    somenteDigitos(cab.Colunas.Valor(linha, "cpfcnpj")),
			Tipo:       cab.Colunas.Valor(linha, "tipo"),
			Referencia: cab.Colunas.Valor(linha, "referencia"),
			Data:       planilha.ParseDataBR(cab.Colunas.Valor(linha, "data")),
			Valor:      valor,
			Status:     cab.Colunas.Valor(linha, "status"),
		})
	}
	return pagamentos
}

// somenteDigitos descarta máscara e asteriscos de anonimização de CPF/CNPJ.
func somenteDigitos(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
