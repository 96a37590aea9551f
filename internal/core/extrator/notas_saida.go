package extrator

import (
	"regexp"
	"strings"

	"conciliacao-service/internal/core/planilha"
	"conciliacao-service/internal/domain"
)

// A listagem de notas emitidas é reconhecida pela coluna de emissão; sem
// cabeçalho com "emiss" o resultado é vazio (layout varia demais para um
// fallback fixo).
const notasMaxLinhasCabecalho = 60

var regrasNotas = []planilha.RegraCampo{
	{Campo: "emissao", Fragmentos: []string{"emiss"}, Obrigatorio: true},
	{Campo: "numero", Fragmentos: []string{"numero", "nota", "nf", "doc"}},
	{Campo: "cliente", Fragmentos: []string{"cliente", "destinat", "razao"}},
	{Campo: "cfop", Fragmentos: []string{"cfop"}},
	{Campo: "valor", Fragmentos: []string{"valor", "total"}},
	{Campo: "situacao", Fragmentos: []string{"situacao", "status"}},
}

var (
	dataNotaRegex   = regexp.MustCompile(`^\d{1,2}/\d{1,2}/\d{2}(\d{2})?$`)
	numeroNotaRegex = regexp.MustCompile(`\d+`)
)

// ExtrairNotasSaida extrai a listagem de notas de saída. O número do documento
// sai sempre na forma canônica "NF <n>", venha a origem com ou sem prefixo.
func ExtrairNotasSaida(g planilha.Grade) []domain.NotaSaida {
	cab := planilha.LocalizarCabecalho(g, regrasNotas, notasMaxLinhasCabecalho, 1)
	if !cab.Encontrado {
		return nil
	}

	var notas []domain.NotaSaida
	for i := cab.Linha + 1; i < len(g); i++ {
		linha := g[i]
		primeira := primeiraCelula(linha)
		if !dataNotaRegex.MatchString(primeira) {
			continue
		}

		notas = append(notas, domain.NotaSaida{
			Numero:   NormalizarNumeroNota(cab.Colunas.Valor(linha, "numero")),
			Emissao:  planilha.ParseDataBR(cab.Colunas.Valor(linha, "emissao")),
			Cliente:  cab.Colunas.Valor(linha, "cliente"),
			Cfop:     cab.Colunas.Valor(linha, "cfop"),
			Valor:    planilha.ParseValorBR(cab.Colunas.Valor(linha, "valor")),
			Situacao: cab.Colunas.Valor(linha, "situacao"),
		})
	}
	return notas
}

// NormalizarNumeroNota devolve "NF <n>" para qualquer grafia de número de
// documento ("410", "NF 410", "NF-e 000410").
func NormalizarNumeroNota(s string) string {
	m := numeroNotaRegex.FindString(s)
	if m == "" {
		return strings.TrimSpace(s)
	}
	m = strings.TrimLeft(m, "0")
	if m == "" {
		m = "0"
	}
	return "NF " + m
}
