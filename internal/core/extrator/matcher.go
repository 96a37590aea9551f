package extrator

import (
	"strings"

	"conciliacao-service/internal/core/planilha"
	"conciliacao-service/internal/domain"

	"github.com/schollz/closestmatch"
)

// LimiarMatch é o score mínimo para considerar um fornecedor encontrado.
const LimiarMatch = 0.6

// Tokens sem poder discriminante: sufixos societários, artigos e preposições.
// Tokens de um único caractere também são descartados.
var stopWordsMatcher = map[string]bool{
	"LTDA": true, "ME": true, "EPP": true, "EIRELI": true, "SA": true,
	"CIA": true, "COMERCIO": true, "COM": true, "IND": true,
	"DE": true, "DA": true, "DO": true, "DAS": true, "DOS": true,
	"EM": true, "PARA": true, "POR": true,
}

// MatchFornecedor compara um nome livre com as descrições do plano de contas.
// Match exato da string normalizada vale 1.0; senão o score é a fração dos
// tokens significativos da consulta presentes no candidato (igual, substring
// ou superstring). Empate: vence o primeiro candidato na ordem do plano.
func MatchFornecedor(nome string, contas []domain.ContaPlano, limiar float64) domain.ResultadoMatch {
	consulta := planilha.NormalizeTexto(nome)
	if consulta == "" {
		return domain.ResultadoMatch{}
	}

	tokensConsulta := tokensSignificativos(consulta)

	var melhor domain.ResultadoMatch
	for _, conta := range contas {
		candidato := planilha.NormalizeTexto(conta.Descricao)
		if candidato == "" {
			continue
		}
		if candidato == consulta {
			return domain.ResultadoMatch{
				Encontrou:      true,
				ContaPlano:     conta.Codigo,
				DescricaoPlano: conta.Descricao,
				Score:          1.0,
			}
		}
		if len(tokensConsulta) == 0 {
			continue
		}

		score := scoreTokens(tokensConsulta, tokensSignificativos(candidato))
		if score > melhor.Score {
			melhor = domain.ResultadoMatch{
				Encontrou:      true,
				ContaPlano:     conta.Codigo,
				DescricaoPlano: conta.Descricao,
				Score:          score,
			}
		}
	}

	if melhor.Score < limiar {
		return domain.ResultadoMatch{}
	}
	return melhor
}

func tokensSignificativos(texto string) []string {
	var tokens []string
	for _, t := range strings.Fields(texto) {
		if len(t) <= 1 || stopWordsMatcher[t] {
			continue
		}
		tokens = append(tokens, t)
	}
	return tokens
}

func scoreTokens(consulta, candidato []string) float64 {
	if len(consulta) == 0 {
		return 0
	}
	acertos := 0
	for _, tq := range consulta {
		for _, tc := range candidato {
			if tq == tc || strings.Contains(tc, tq) || strings.Contains(tq, tc) {
				acertos++
				break
			}
		}
	}
	return float64(acertos) / float64(len(consulta))
}

// SugerirConta é o degrau fuzzy usado quando o matcher não atinge o limiar:
// bag-of-words sobre as descrições normalizadas, como nos conversores.
func SugerirConta(nome string, contas []domain.ContaPlano) (domain.ContaPlano, bool) {
	consulta := planilha.NormalizeTexto(nome)
	if consulta == "" || len(contas) == 0 {
		return domain.ContaPlano{}, false
	}

	porDescricao := make(map[string]domain.ContaPlano, len(contas))
	chaves := make([]string, 0, len(contas))
	for _, conta := range contas {
		chave := planilha.NormalizeTexto(conta.Descricao)
		if chave == "" {
			continue
		}
		if _, visto := porDescricao[chave]; !visto {
			porDescricao[chave] = conta
			chaves = append(chaves, chave)
		}
	}
	if len(chaves) == 0 {
		return domain.ContaPlano{}, false
	}

	cm := closestmatch.New(chaves, []int{3, 4, 5})
	match := cm.Closest(consulta)
	if match == "" {
		return domain.ContaPlano{}, false
	}
	conta, ok := porDescricao[match]
	return conta, ok
}
