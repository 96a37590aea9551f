package sped

import (
	"fmt"
	"strings"
	"time"

	"conciliacao-service/internal/core/planilha"
	"conciliacao-service/internal/domain"
)

// Registros do arquivo fiscal manipulados pelo reescritor.
const (
	regDocumento  = "C100"
	regDetalhe    = "C170"
	regInfoCompl  = "C110"
	regArrecad    = "C112"
	regDocRef     = "C113"
	regResumo     = "C190"
	regObservacao = "C195"
	regAjuste     = "C197"
)

// Posição do número do documento dentro do registro C100 (campo NUM_DOC).
const c100CampoNumDoc = 8

// Códigos e textos fixos das linhas injetadas.
const (
	codAjusteCredito   = "RS10000001"
	codAjusteCreditoSt = "RS10000002"
	textoInfoCompl     = "AJUSTE DE CREDITO CONFORME LANCAMENTO CONTABIL"
	textoObservacao    = "VALORES AJUSTADOS CONFORME DOCUMENTO DE ARRECADACAO"
)

// OpcoesReescrita controla a política das linhas C197: sempre emitir as duas,
// ou somente as de valor estritamente positivo.
type OpcoesReescrita struct {
	EmitirSempre bool
}

// ReescreverArquivo aplica os ajustes ao arquivo fiscal em uma única passada.
// Linhas sem ajuste correspondente são copiadas byte a byte; o bloco de um
// documento casado é substituído pela sequência nova. Um ajuste que falhe na
// formatação entra na lista de erros e deixa o bloco original intacto — nunca
// aborta a reescrita dos demais.
func ReescreverArquivo(linhas []string, ajustes []domain.AjusteNF, op OpcoesReescrita) domain.ResultadoReescrita {
	pendentes := make(map[string]domain.AjusteNF, len(ajustes))
	for _, aj := range ajustes {
		chave := NormalizarNF(aj.NF)
		if _, visto := pendentes[chave]; !visto {
			pendentes[chave] = aj
		}
	}

	resultado := domain.ResultadoReescrita{Linhas: make([]string, 0, len(linhas))}

	for i := 0; i < len(linhas); i++ {
		linha := linhas[i]
		if campoRegistro(linha) != regDocumento {
			resultado.Linhas = append(resultado.Linhas, linha)
			continue
		}

		numero := NormalizarNF(campo(linha, c100CampoNumDoc))
		ajuste, ok := pendentes[numero]
		if !ok {
			resultado.Linhas = append(resultado.Linhas, linha)
			continue
		}
		delete(pendentes, numero)

		fim := FimDoBloco(linhas, i)
		bloco := linhas[i:fim]

		novas, err := montarBloco(bloco, ajuste, op)
		if err != nil {
			resultado.Erros = append(resultado.Erros, domain.ErroAjuste{NF: ajuste.NF, Motivo: err.Error()})
			resultado.Linhas = append(resultado.Linhas, bloco...)
		} else {
			resultado.Linhas = append(resultado.Linhas, novas...)
			resultado.Aplicados++
		}
		i = fim - 1
	}
	return resultado
}

// FimDoBloco devolve o índice (exclusivo) do fim do bloco do documento que
// começa em inicio: a próxima linha C100, ou o fim do arquivo.
func FimDoBloco(linhas []string, inicio int) int {
	for j := inicio + 1; j < len(linhas); j++ {
		if campoRegistro(linhas[j]) == regDocumento {
			return j
		}
	}
	return len(linhas)
}

// montarBloco produz a sequência que substitui o bloco original, na ordem
// fixa exigida pelo layout.
func montarBloco(bloco []string, aj domain.AjusteNF, op OpcoesReescrita) ([]string, error) {
	venc, err := formatarData(aj.DataVencimento)
	if err != nil {
		return nil, fmt.Errorf("data de vencimento: %v", err)
	}
	pag, err := formatarData(aj.DataPagamento)
	if err != nil {
		return nil, fmt.Errorf("data de pagamento: %v", err)
	}
	lanc, err := formatarData(aj.DataLancamento)
	if err != nil {
		return nil, fmt.Errorf("data de lançamento: %v", err)
	}
	parceiro, err := formatarParceiro(aj.CodigoParceiro)
	if err != nil {
		return nil, err
	}

	detalhe := primeiraDoTipo(bloco, regDetalhe)
	if detalhe == "" {
		detalhe = montarLinha(regDetalhe, "1", "", "", "0", "", "0,00", "0,00")
	}
	resumo := primeiraDoTipo(bloco, regResumo)

	novas := []string{
		bloco[0],
		detalhe,
		montarLinha(regInfoCompl, "1", textoInfoCompl),
		montarLinha(regArrecad, "0", "", aj.DocLancamento, aj.Autenticacao, formatarValor(aj.Valor), venc, pag),
		montarLinha(regDocRef, "0", "1", parceiro, "55", aj.Serie, aj.SubSerie, NormalizarNF(aj.NF), lanc, aj.ChaveAcesso),
	}
	if resumo != "" {
		novas = append(novas, resumo)
	}
	novas = append(novas, montarLinha(regObservacao, "1", textoObservacao))

	novas = append(novas, linhasAjuste(aj, op)...)
	return novas, nil
}

func linhasAjuste(aj domain.AjusteNF, op OpcoesReescrita) []string {
	var linhas []string

	icms, icmsOK := planilha.ParseValorBROpcional(aj.CreditoIcms)
	if op.EmitirSempre || (icmsOK && icms > 0) {
		linhas = append(linhas, montarLinha(regAjuste, codAjusteCredito, "CREDITO DE ICMS", "", "", "", formatarValor(aj.CreditoIcms), ""))
	}

	st, stOK := planilha.ParseValorBROpcional(aj.CreditoIcmsSt)
	if op.EmitirSempre || (stOK && st > 0) {
		linhas = append(linhas, montarLinha(regAjuste, codAjusteCreditoSt, "CREDITO DE ICMS ST", "", "", "", formatarValor(aj.CreditoIcmsSt), ""))
	}
	return linhas
}

// campoRegistro devolve o código de registro de uma linha do arquivo fiscal
// (segundo campo; o primeiro é vazio porque a linha começa com "|").
func campoRegistro(linha string) string {
	partes := strings.SplitN(linha, "|", 3)
	if len(partes) < 2 {
		return ""
	}
	return partes[1]
}

func campo(linha string, idx int) string {
	partes := strings.Split(linha, "|")
	if idx < 0 || idx >= len(partes) {
		return ""
	}
	return partes[idx]
}

func primeiraDoTipo(bloco []string, registro string) string {
	for _, linha := range bloco {
		if campoRegistro(linha) == registro {
			return linha
		}
	}
	return ""
}

func montarLinha(campos ...string) string {
	return "|" + strings.Join(campos, "|") + "|"
}

// formatarValor formata um valor bruto com vírgula decimal e duas casas, sem
// separador de milhar. Entrada vazia ou não numérica vira campo vazio.
func formatarValor(raw string) string {
	v, ok := planilha.ParseValorBROpcional(raw)
	if !ok {
		return ""
	}
	return planilha.FormatarDuasCasas(v)
}

// formatarData converte uma data da tabela de ajustes para DDMMAAAA. Vazio é
// permitido (campo vazio); não parseável é erro do ajuste.
func formatarData(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", nil
	}
	if t, err := time.Parse("2/1/2006", s); err == nil {
		return FormatarDataSped(t), nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return FormatarDataSped(t), nil
	}
	return "", fmt.Errorf("data inválida %q", raw)
}

// FormatarDataSped formata uma data no padrão de 8 dígitos do arquivo fiscal.
func FormatarDataSped(t time.Time) string {
	return t.Format("02012006")
}

func formatarParceiro(raw string) (string, error) {
	digitos := strings.TrimSpace(raw)
	if digitos == "" {
		return "000000", nil
	}
	for _, r := range digitos {
		if r < '0' || r > '9' {
			return "", fmt.Errorf("código de parceiro inválido %q", raw)
		}
	}
	for len(digitos) < 6 {
		digitos = "0" + digitos
	}
	return digitos, nil
}
