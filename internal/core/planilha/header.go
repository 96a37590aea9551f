package planilha

import "strings"

// RegraCampo descreve como localizar um campo lógico no cabeçalho: qualquer um
// dos fragmentos, comparado sobre o texto normalizado da célula.
type RegraCampo struct {
	Campo       string
	Fragmentos  []string
	Obrigatorio bool
}

// MapaColunas associa campo lógico ao índice de coluna na grade. Índice -1 ou
// campo ausente significa "não encontrado": o campo sai vazio.
type MapaColunas map[string]int

// Valor devolve a célula do campo na linha, ou vazio quando o campo não foi
// mapeado ou a linha é curta.
func (m MapaColunas) Valor(linha []string, campo string) string {
	idx, ok := m[campo]
	if !ok || idx < 0 || idx >= len(linha) {
		return ""
	}
	return strings.TrimSpace(linha[idx])
}

// ResultadoCabecalho é a saída da varredura de cabeçalho.
type ResultadoCabecalho struct {
	Linha      int
	Colunas    MapaColunas
	Encontrado bool
}

// LocalizarCabecalho varre as primeiras maxLinhas da grade pontuando cada
// linha contra as regras. Uma linha qualifica quando atinge minAcertos campos
// e todos os campos obrigatórios foram encontrados; a primeira linha que
// qualifica vence. Sem linha qualificada, Encontrado é false e o extrator
// decide o fallback.
func LocalizarCabecalho(g Grade, regras []RegraCampo, maxLinhas, minAcertos int) ResultadoCabecalho {
	if maxLinhas > len(g) {
		maxLinhas = len(g)
	}

	for i := 0; i < maxLinhas; i++ {
		colunas := mapearLinha(g[i], regras)

		acertos := 0
		obrigatoriosOK := true
		for _, regra := range regras {
			if _, ok := colunas[regra.Campo]; ok {
				acertos++
			} else if regra.Obrigatorio {
				obrigatoriosOK = false
			}
		}
		if acertos >= minAcertos && obrigatoriosOK {
			return ResultadoCabecalho{Linha: i, Colunas: colunas, Encontrado: true}
		}
	}
	return ResultadoCabecalho{Linha: -1, Colunas: MapaColunas{}, Encontrado: false}
}

func mapearLinha(linha []string, regras []RegraCampo) MapaColunas {
	normalizadas := make([]string, len(linha))
	for i, cell := range linha {
		normalizadas[i] = NormalizeChave(cell)
	}

	colunas := make(MapaColunas, len(regras))
	for _, regra := range regras {
		for idx, chave := range normalizadas {
			if chave == "" {
				continue
			}
			achou := false
			for _, frag := range regra.Fragmentos {
				if strings.Contains(chave, NormalizeChave(frag)) {
					achou = true
					break
				}
			}
			if achou {
				colunas[regra.Campo] = idx
				break
			}
		}
	}
	return colunas
}
