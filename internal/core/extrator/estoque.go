package extrator

import (
	"regexp"
	"strings"

	"conciliacao-service/internal/core/planilha"
	"conciliacao-service/internal/domain"
)

// Posições fixas do relatório de movimentação de estoque. O formato não tem
// cabeçalho aproveitável; estas posições são da versão corrente do exportador
// e o extrator não tenta inferi-las (limitação documentada: outra versão do
// relatório desloca colunas silenciosamente).
const (
	estoqueColData         = 0
	estoqueColDocumento    = 1
	estoqueColEntradaQtde  = 2
	estoqueColEntradaUnit  = 3
	estoqueColEntradaTotal = 4
	estoqueColSaidaQtde    = 5
	estoqueColSaidaUnit    = 6
	estoqueColSaidaTotal   = 7
	estoqueColSaldoQtde    = 8
	estoqueColSaldoMedio   = 9
	estoqueColSaldoTotal   = 10
)

const marcadorSaldoAnterior = "SALDO ANTERIOR"

var estoqueDocumentosIgnorados = []string{
	marcadorSaldoAnterior,
	"TRANSPORTE",
	"A TRANSPORTAR",
	"TOTAL",
	"TOTAIS",
}

var dataEstoqueRegex = regexp.MustCompile(`^\d{1,2}/\d{1,2}/\d{2}(\d{2})?$`)

// ExtrairEstoque extrai os movimentos do relatório. Uma linha com quantidade
// de entrada e de saída positivas gera um movimento de cada tipo; a linha de
// saldo anterior vira o resumo, não um movimento.
func ExtrairEstoque(g planilha.Grade) domain.RelatorioEstoque {
	var relatorio domain.RelatorioEstoque

	for _, linha := range g {
		data := celula(linha, estoqueColData)
		documento := celula(linha, estoqueColDocumento)
		docNorm := planilha.NormalizeTexto(documento)

		if strings.Contains(docNorm, marcadorSaldoAnterior) {
			relatorio.Resumo = domain.ResumoEstoque{
				SaldoAnteriorQtde:  planilha.ParseValorBR(celula(linha, estoqueColSaldoQtde)),
				SaldoAnteriorValor: planilha.ParseValorBR(celula(linha, estoqueColSaldoTotal)),
			}
			continue
		}
		if documentoIgnorado(docNorm) {
			continue
		}
		if !dataEstoqueRegex.MatchString(data) {
			continue
		}

		saldoQtde := planilha.ParseValorBR(celula(linha, estoqueColSaldoQtde))
		saldoMedio := planilha.ParseValorBR(celula(linha, estoqueColSaldoMedio))
		saldoTotal := planilha.ParseValorBR(celula(linha, estoqueColSaldoTotal))

		if qtde := planilha.ParseValorBR(celula(linha, estoqueColEntradaQtde)); qtde > 0 {
			relatorio.Movimentos = append(relatorio.Movimentos, domain.MovimentoEstoque{
				Data:          planilha.ParseDataBR(data),
				Documento:     documento,
				Tipo:          domain.MovimentoEntrada,
				Quantidade:    qtde,
				ValorUnitario: planilha.ParseValorBR(celula(linha, estoqueColEntradaUnit)),
				ValorTotal:    planilha.ParseValorBR(celula(linha, estoqueColEntradaTotal)),
				SaldoQtde:     saldoQtde,
				SaldoMedio:    saldoMedio,
				SaldoTotal:    saldoTotal,
			})
		}
		if qtde := planilha.ParseValorBR(celula(linha, estoqueColSaidaQtde)); qtde > 0 {
			relatorio.Movimentos = append(relatorio.Movimentos, domain.MovimentoEstoque{
				Data:          planilha.ParseDataBR(data),
				Documento:     documento,
				Tipo:          domain.MovimentoSaida,
				Quantidade:    qtde,
				ValorUnitario: planilha.ParseValorBR(celula(linha, estoqueColSaidaUnit)),
				ValorTotal:    planilha.ParseValorBR(celula(linha, estoqueColSaidaTotal)),
				SaldoQtde:     saldoQtde,
				SaldoMedio:    saldoMedio,
				SaldoTotal:    saldoTotal,
			})
		}
	}
	return relatorio
}

func documentoIgnorado(docNorm string) bool {
	for _, marcador := range estoqueDocumentosIgnorados {
		if strings.Contains(docNorm, marcador) {
			return true
		}
	}
	return false
}

func celula(linha []string, idx int) string {
	if idx < 0 || idx >= len(linha) {
		return ""
	}
	return strings.TrimSpace(linha[idx])
}
