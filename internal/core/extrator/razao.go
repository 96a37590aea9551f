package extrator

import (
	"regexp"
	"strings"

	"conciliacao-service/internal/core/planilha"
	"conciliacao-service/internal/domain"
)

// Limites da varredura de cabeçalho do razão.
const (
	razaoMaxLinhasCabecalho = 50
	razaoMinAcertos         = 4
)

var regrasRazao = []planilha.RegraCampo{
	{Campo: "data", Fragmentos: []string{"data"}},
	{Campo: "lote", Fragmentos: []string{"lote", "linha"}},
	{Campo: "historico", Fragmentos: []string{"historico", "hist"}},
	{Campo: "ctacpart", Fragmentos: []string{"ctacpart", "cpart", "contrapartida"}},
	{Campo: "debito", Fragmentos: []string{"debito", "deb"}},
	{Campo: "credito", Fragmentos: []string{"credito", "cred"}},
	{Campo: "saldo", Fragmentos: []string{"saldo"}},
}

// Layout fixo dos relatórios de razão quando o cabeçalho não qualifica.
var razaoLayoutPadrao = planilha.MapaColunas{
	"data":      0,
	"lote":      1,
	"historico": 2,
	"ctacpart":  3,
	"debito":    4,
	"credito":   5,
	"saldo":     6,
}

var (
	dataLinhaRegex   = regexp.MustCompile(`^\d{1,2}/\d{1,2}/\d{2}(\d{2})?$`)
	contaCodigoRegex = regexp.MustCompile(`\d+(\.\d+)+`)
)

// Linhas de relatório que nunca são lançamentos, comparadas sobre o texto
// normalizado da primeira célula útil.
var razaoLinhasIgnoradas = []string{
	"SALDO ANTERIOR",
	"TOTAL",
	"TOTAIS",
	"TRANSPORTE",
	"DATA",
	"HISTORICO",
	"EMPRESA",
	"PERIODO",
	"FOLHA",
	"CNPJ",
}

// estadoRazao é o estado explícito do fold sobre as linhas: fora de conta, ou
// dentro do bloco da conta corrente.
type estadoRazao struct {
	emConta   bool
	codigo    string
	descricao string
}

// ExtrairRazao percorre o relatório de razão acumulando lançamentos sob o
// marcador "Conta" mais recente. Lançamentos antes do primeiro marcador são
// descartados.
func ExtrairRazao(g planilha.Grade) []domain.LancamentoRazao {
	cab := planilha.LocalizarCabecalho(g, regrasRazao, razaoMaxLinhasCabecalho, razaoMinAcertos)
	colunas := cab.Colunas
	if !cab.Encontrado {
		colunas = razaoLayoutPadrao
	}

	var estado estadoRazao
	var lancamentos []domain.LancamentoRazao

	for i, linha := range g {
		if cab.Encontrado && i <= cab.Linha {
			continue
		}
		primeira := primeiraCelula(linha)
		if primeira == "" {
			continue
		}

		if codigo, descricao, ok := marcadorConta(primeira, linha); ok {
			estado = estadoRazao{emConta: true, codigo: codigo, descricao: descricao}
			continue
		}

		if !dataLinhaRegex.MatchString(primeira) {
			continue
		}
		if linhaIgnoradaRazao(linha, colunas) {
			continue
		}
		if !estado.emConta {
			continue
		}

		lancamentos = append(lancamentos, domain.LancamentoRazao{
			ContaCodigo:    estado.codigo,
			ContaDescricao: estado.descricao,
			Data:           primeira,
			Lote:           colunas.Valor(linha, "lote"),
			Historico:      colunas.Valor(linha, "historico"),
			CtaCPart:       colunas.Valor(linha, "ctacpart"),
			Debito:         planilha.ParseValorBR(colunas.Valor(linha, "debito")),
			Credito:        planilha.ParseValorBR(colunas.Valor(linha, "credito")),
			Saldo:          planilha.ParseValorBR(colunas.Valor(linha, "saldo")),
		})
	}
	return lancamentos
}

// marcadorConta reconhece linhas "Conta: 1.1.1.01.00001 CAIXA" e separa código
// e descrição. O código é o primeiro token numérico pontuado da linha.
func marcadorConta(primeira string, linha []string) (codigo, descricao string, ok bool) {
	if !strings.HasPrefix(strings.ToLower(primeira), "conta") {
		return "", "", false
	}

	texto := strings.Join(linha, " ")
	loc := contaCodigoRegex.FindStringIndex(texto)
	if loc == nil {
		return "", "", false
	}
	codigo = texto[loc[0]:loc[1]]
	descricao = strings.TrimSpace(texto[loc[1]:])
	descricao = strings.TrimLeft(descricao, "-: ")
	return codigo, strings.TrimSpace(descricao), true
}

func linhaIgnoradaRazao(linha []string, colunas planilha.MapaColunas) bool {
	historico := planilha.NormalizeTexto(colunas.Valor(linha, "historico"))
	for _, marcador := range razaoLinhasIgnoradas {
		if historico == marcador || strings.HasPrefix(historico, marcador+" ") {
			return true
		}
	}
	return false
}

func primeiraCelula(linha []string) string {
	for _, cell := range linha {
		if v := strings.TrimSpace(cell); v != "" {
			return v
		}
	}
	return ""
}
