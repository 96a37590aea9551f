package sped

import (
	"fmt"
	"strings"

	"conciliacao-service/internal/core/planilha"
	"conciliacao-service/internal/domain"
)

// A tabela de ajustes é texto delimitado com cabeçalho obrigatório; os nomes
// de coluna são comparados sem caixa/acentos contra os nomes esperados.
const (
	ajustesMaxLinhasCabecalho = 20
	ajustesMinAcertos         = 5
)

var regrasAjustes = []planilha.RegraCampo{
	{Campo: "nf", Fragmentos: []string{"nf", "nota"}, Obrigatorio: true},
	{Campo: "vencimento", Fragmentos: []string{"venc"}},
	{Campo: "pagamento", Fragmentos: []string{"pagamento", "pgto"}},
	{Campo: "lancamento", Fragmentos: []string{"datalancamento", "dtlanc"}},
	{Campo: "valor", Fragmentos: []string{"valorajuste", "valor"}, Obrigatorio: true},
	{Campo: "creditoicms", Fragmentos: []string{"creditoicms", "credicms"}},
	{Campo: "creditoicmsst", Fragmentos: []string{"icmsst"}},
	{Campo: "documento", Fragmentos: []string{"doclancamento", "documento"}},
	{Campo: "autenticacao", Fragmentos: []string{"autentic"}},
	{Campo: "parceiro", Fragmentos: []string{"parceiro", "participante"}},
	{Campo: "serie", Fragmentos: []string{"serie"}},
	{Campo: "subserie", Fragmentos: []string{"subserie", "sub"}},
	{Campo: "chave", Fragmentos: []string{"chave"}},
}

// CarregarAjustes lê a tabela de ajustes de texto delimitado (tolerante a
// Latin-1). O cabeçalho é obrigatório: sem ele não há como confiar nas
// colunas.
func CarregarAjustes(data []byte) ([]domain.AjusteNF, error) {
	g := planilha.CarregarGradeTexto(data)
	cab := planilha.LocalizarCabecalho(g, regrasAjustes, ajustesMaxLinhasCabecalho, ajustesMinAcertos)
	if !cab.Encontrado {
		return nil, fmt.Errorf("cabeçalho da tabela de ajustes não encontrado")
	}

	var ajustes []domain.AjusteNF
	for i := cab.Linha + 1; i < len(g); i++ {
		linha := g[i]
		nf := cab.Colunas.Valor(linha, "nf")
		if nf == "" {
			continue
		}
		ajustes = append(ajustes, domain.AjusteNF{
			NF:             nf,
			DataVencimento: cab.Colunas.Valor(linha, "vencimento"),
			DataPagamento:  cab.Colunas.Valor(linha, "pagamento"),
			DataLancamento: cab.Colunas.Valor(linha, "lancamento"),
			Valor:          cab.Colunas.Valor(linha, "valor"),
			CreditoIcms:    cab.Colunas.Valor(linha, "creditoicms"),
			CreditoIcmsSt:  cab.Colunas.Valor(linha, "creditoicmsst"),
			DocLancamento:  cab.Colunas.Valor(linha, "documento"),
			Autenticacao:   cab.Colunas.Valor(linha, "autenticacao"),
			CodigoParceiro: cab.Colunas.Valor(linha, "parceiro"),
			Serie:          cab.Colunas.Valor(linha, "serie"),
			SubSerie:       cab.Colunas.Valor(linha, "subserie"),
			ChaveAcesso:    cab.Colunas.Valor(linha, "chave"),
		})
	}
	return ajustes, nil
}

// NormalizarNF remove o prefixo "NF" (com ou sem espaço) e zeros à esquerda,
// para casar a tabela de ajustes com o campo de número do C100.
func NormalizarNF(s string) string {
	s = strings.TrimSpace(s)
	upper := strings.ToUpper(s)
	if strings.HasPrefix(upper, "NF") {
		s = strings.TrimSpace(strings.TrimLeft(s[2:], " .-eE"))
	}
	s = strings.TrimLeft(s, "0")
	if s == "" {
		return "0"
	}
	return s
}
