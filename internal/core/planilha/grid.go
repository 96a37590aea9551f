package planilha

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/shakinm/xlsReader/xls"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// ErrEntradaIlegivel indica que os bytes recebidos não são uma planilha nem
// texto delimitado legível. Workbooks vazios NÃO geram este erro: viram grade
// vazia.
var ErrEntradaIlegivel = errors.New("arquivo de entrada ilegível")

// Grade é a matriz de células texto produzida pela ingestão. Imutável após a
// carga; células ausentes são string vazia.
type Grade [][]string

// CarregarGrade decide o carregador pela extensão do nome original, como os
// conversores fazem com os arquivos de lançamentos.
func CarregarGrade(data []byte, nomeArquivo string) (Grade, error) {
	switch strings.ToLower(filepath.Ext(nomeArquivo)) {
	case ".xlsx":
		return CarregarGradeXLSX(data)
	case ".xls":
		return CarregarGradeXLS(data)
	default:
		return CarregarGradeTexto(data), nil
	}
}

// CarregarGradeXLSX lê um workbook xlsx: primeira aba com conteúdo, com
// expansão das regiões mescladas.
func CarregarGradeXLSX(data []byte) (Grade, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEntradaIlegivel, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return Grade{}, nil
	}

	escolhida := sheets[0]
	var rows [][]string
	for _, name := range sheets {
		r, err := f.GetRows(name)
		if err != nil {
			continue
		}
		if temConteudo(r) {
			escolhida = name
			rows = r
			break
		}
	}
	if rows == nil {
		rows, err = f.GetRows(escolhida)
		if err != nil {
			return Grade{}, nil
		}
	}

	g := Grade(rows)
	expandirMesclagens(f, escolhida, g)
	return g, nil
}

// CarregarGradeXLS lê um .xls legado; se os bytes forem na verdade um xlsx
// renomeado, tenta o excelize.
func CarregarGradeXLS(data []byte) (Grade, error) {
	workbook, err := xls.OpenReader(bytes.NewReader(data))
	if err != nil {
		if g, errX := CarregarGradeXLSX(data); errX == nil {
			return g, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrEntradaIlegivel, err)
	}

	sheets := workbook.GetSheets()
	if len(sheets) == 0 {
		return Grade{}, nil
	}

	for i := range sheets {
		var g Grade
		for _, row := range sheets[i].GetRows() {
			var cells []string
			for _, cell := range row.GetCols() {
				cells = append(cells, cell.GetString())
			}
			g = append(g, cells)
		}
		if temConteudo(g) || i == len(sheets)-1 {
			return g, nil
		}
	}
	return Grade{}, nil
}

// CarregarGradeTexto interpreta texto delimitado. A decodificação tenta UTF-8 e
// recua para Latin-1 quando o resultado contém o caractere de substituição ou
// artefatos de dupla codificação de exportadores legados.
func CarregarGradeTexto(data []byte) Grade {
	texto := DecodificarTexto(data)
	delim := inferirDelimitador(texto)

	reader := csv.NewReader(strings.NewReader(texto))
	reader.Comma = delim
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	var g Grade
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue
		}
		g = append(g, record)
	}
	return g
}

var artefatosDuplaCodificacao = []string{"Ã©", "Ã§", "Ã£", "Ã¡", "Ãª", "Ã³", "Ãµ", "Ãº", "Ã‰", "Ã‡"}

// DecodificarTexto devolve os bytes como string UTF-8, recuando para Latin-1
// quando a entrada não é UTF-8 válido ou carrega artefatos de dupla
// codificação.
func DecodificarTexto(data []byte) string {
	if utf8.Valid(data) {
		s := string(data)
		suspeito := strings.ContainsRune(s, '�')
		for _, a := range artefatosDuplaCodificacao {
			if suspeito {
				break
			}
			suspeito = strings.Contains(s, a)
		}
		if !suspeito {
			return s
		}
	}
	decoder := charmap.ISO8859_1.NewDecoder()
	decoded, _, err := transform.String(decoder, string(data))
	if err != nil {
		return string(data)
	}
	return decoded
}

func inferirDelimitador(texto string) rune {
	for _, linha := range strings.Split(texto, "\n") {
		if strings.TrimSpace(linha) == "" {
			continue
		}
		if strings.ContainsRune(linha, ';') {
			return ';'
		}
		return ','
	}
	return ','
}

// expandirMesclagens copia o valor da célula âncora de cada região mesclada
// para as demais células vazias da região, para que acesso por índice de
// coluna não veja vazios espúrios.
func expandirMesclagens(f *excelize.File, sheet string, g Grade) {
	merges, err := f.GetMergeCells(sheet)
	if err != nil {
		return
	}
	for _, m := range merges {
		c1, r1, err1 := excelize.CellNameToCoordinates(m.GetStartAxis())
		c2, r2, err2 := excelize.CellNameToCoordinates(m.GetEndAxis())
		if err1 != nil || err2 != nil {
			continue
		}
		valor := m.GetCellValue()
		for r := r1; r <= r2; r++ {
			for c := c1; c <= c2; c++ {
				ri, ci := r-1, c-1
				if ri >= len(g) {
					continue
				}
				for ci >= len(g[ri]) {
					g[ri] = append(g[ri], "")
				}
				if g[ri][ci] == "" {
					g[ri][ci] = valor
				}
			}
		}
	}
}

func temConteudo(g [][]string) bool {
	for _, row := range g {
		for _, cell := range row {
			if strings.TrimSpace(cell) != "" {
				return true
			}
		}
	}
	return false
}
