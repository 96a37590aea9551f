package extrator

import (
	"regexp"
	"strings"

	"conciliacao-service/internal/core/planilha"
	"conciliacao-service/internal/domain"
)

var centroCustoRegex = regexp.MustCompile(`CENTRO\s+(\d+(?:\.\d+)+)`)

// ConstruirLookupHistorico deriva texto normalizado → conta de débito a partir
// do razão. Só entram lançamentos com crédito positivo e contrapartida
// preenchida; o primeiro visto por texto vence.
func ConstruirLookupHistorico(lancamentos []domain.LancamentoRazao) map[string]string {
	lookup := make(map[string]string)
	for _, l := range lancamentos {
		if l.Credito <= 0 || l.CtaCPart == "" {
			continue
		}
		chave := planilha.NormalizeTexto(l.Historico)
		if chave == "" {
			continue
		}
		if _, visto := lookup[chave]; !visto {
			lookup[chave] = l.CtaCPart
		}
	}
	return lookup
}

// ConstruirLookupCentroCusto varre todos os históricos por ocorrências de
// "CENTRO <código pontuado>" e apura, por código, a contrapartida mais
// frequente. Empate: vence a contrapartida vista primeiro.
func ConstruirLookupCentroCusto(lancamentos []domain.LancamentoRazao) map[string]string {
	contagem := make(map[string]map[string]int)
	ordem := make(map[string][]string)

	for _, l := range lancamentos {
		if l.CtaCPart == "" {
			continue
		}
		// sobre o texto cru em maiúsculas: a normalização de matching trocaria
		// os pontos do código por espaço
		historico := strings.ToUpper(l.Historico)
		for _, m := range centroCustoRegex.FindAllStringSubmatch(historico, -1) {
			codigo := m[1]
			if contagem[codigo] == nil {
				contagem[codigo] = make(map[string]int)
			}
			if contagem[codigo][l.CtaCPart] == 0 {
				ordem[codigo] = append(ordem[codigo], l.CtaCPart)
			}
			contagem[codigo][l.CtaCPart]++
		}
	}

	lookup := make(map[string]string, len(contagem))
	for codigo, votos := range contagem {
		melhor := ""
		melhorVotos := 0
		for _, conta := range ordem[codigo] {
			if votos[conta] > melhorVotos {
				melhor = conta
				melhorVotos = votos[conta]
			}
		}
		if melhor != "" {
			lookup[codigo] = melhor
		}
	}
	return lookup
}
