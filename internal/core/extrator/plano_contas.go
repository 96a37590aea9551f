package extrator

import (
	"bytes"
	"encoding/csv"
	"strings"

	"conciliacao-service/internal/core/planilha"
	"conciliacao-service/internal/domain"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// Limites da varredura de cabeçalho do plano de contas.
const (
	planoMaxLinhasCabecalho = 40
	planoMinAcertos         = 3
)

var regrasPlano = []planilha.RegraCampo{
	{Campo: "codigo", Fragmentos: []string{"codigo", "cod"}},
	{Campo: "descricao", Fragmentos: []string{"descricao", "nome", "conta"}},
	{Campo: "classificacao", Fragmentos: []string{"classificacao", "classif"}},
	{Campo: "cnpj", Fragmentos: []string{"cnpj"}},
}

// Layout fixo usado quando nenhuma linha qualifica como cabeçalho: o mesmo dos
// arquivos Contas.csv dos escritórios (código; classificação; descrição; cnpj).
var planoLayoutPadrao = planilha.MapaColunas{
	"codigo":        0,
	"classificacao": 1,
	"descricao":     2,
	"cnpj":          3,
}

// ExtrairPlanoContas extrai as contas na ordem de aparição; a ordem é parte do
// contrato (reexportações dependem do round-trip).
func ExtrairPlanoContas(g planilha.Grade) []domain.ContaPlano {
	cab := planilha.LocalizarCabecalho(g, regrasPlano, planoMaxLinhasCabecalho, planoMinAcertos)
	colunas := cab.Colunas
	inicio := cab.Linha + 1
	if !cab.Encontrado {
		colunas = planoLayoutPadrao
		inicio = 0
	}

	contas := make([]domain.ContaPlano, 0, len(g))
	for i := inicio; i < len(g); i++ {
		linha := g[i]
		conta := domain.ContaPlano{
			Codigo:        colunas.Valor(linha, "codigo"),
			Descricao:     colunas.Valor(linha, "descricao"),
			Classificacao: colunas.Valor(linha, "classificacao"),
			Cnpj:          normalizarCnpj(colunas.Valor(linha, "cnpj")),
		}

		if conta.Codigo == "" && conta.Descricao == "" && conta.Classificacao == "" && conta.Cnpj == domain.CnpjZerado {
			continue
		}
		if conta.Codigo == "" && conta.Descricao == "" {
			continue
		}
		contas = append(contas, conta)
	}
	return contas
}

// normalizarCnpj remove máscara e completa com zeros à esquerda; ausente vira
// o sentinela todo-zero.
func normalizarCnpj(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digitos := b.String()
	if digitos == "" {
		return domain.CnpjZerado
	}
	if len(digitos) < 14 {
		digitos = strings.Repeat("0", 14-len(digitos)) + digitos
	}
	return digitos
}

// ExportarPlanoCSV reexporta o plano no formato dos arquivos de contas
// (Windows-1252, ponto-e-vírgula), campo a campo na ordem de importação.
func ExportarPlanoCSV(contas []domain.ContaPlano) ([]byte, error) {
	var buffer bytes.Buffer
	encoder := charmap.Windows1252.NewEncoder()
	writer := csv.NewWriter(transform.NewWriter(&buffer, encoder))
	writer.Comma = ';'

	header := []string{"Código", "Classificação", "Descrição", "CNPJ"}
	for i := range header {
		header[i] = planilha.SanitizarCSV(header[i])
	}
	if err := writer.Write(header); err != nil {
		return nil, err
	}

	for _, conta := range contas {
		record := []string{
			planilha.SanitizarCSV(conta.Codigo),
			planilha.SanitizarCSV(conta.Classificacao),
			planilha.SanitizarCSV(conta.Descricao),
			planilha.SanitizarCSV(conta.Cnpj),
		}
		if err := writer.Write(record); err != nil {
			return nil, err
		}
	}

	writer.Flush()
	return buffer.Bytes(), writer.Error()
}
