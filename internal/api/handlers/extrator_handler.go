package handlers

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"conciliacao-service/internal/api/responses"
	"conciliacao-service/internal/core/extrator"
	"conciliacao-service/internal/core/planilha"
	"conciliacao-service/internal/domain"

	"github.com/gin-gonic/gin"
)

// ExtratorHandler lida com as requisições de extração de relatórios.
type ExtratorHandler struct{}

// NewExtratorHandler cria um novo handler de extração.
func NewExtratorHandler() *ExtratorHandler {
	return &ExtratorHandler{}
}

// lerArquivoForm lê os bytes de um arquivo enviado no formulário.
func lerArquivoForm(c *gin.Context, campo string) ([]byte, string, error) {
	fileHeader, err := c.FormFile(campo)
	if err != nil {
		return nil, "", err
	}
	file, err := fileHeader.Open()
	if err != nil {
		return nil, "", err
	}
	defer func(f multipart.File) { _ = f.Close() }(file)

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, "", err
	}
	return data, fileHeader.Filename, nil
}

func carregarGradeForm(c *gin.Context, campo string) (planilha.Grade, bool) {
	data, nome, err := lerArquivoForm(c, campo)
	if err != nil {
		responses.Error(c, http.StatusBadRequest, fmt.Sprintf("Arquivo %q não encontrado ou inválido", campo))
		return nil, false
	}
	g, err := planilha.CarregarGrade(data, nome)
	if err != nil {
		if errors.Is(err, planilha.ErrEntradaIlegivel) {
			responses.Error(c, http.StatusUnprocessableEntity, "Arquivo ilegível", err.Error())
		} else {
			responses.Error(c, http.StatusInternalServerError, "Erro ao carregar o arquivo", err.Error())
		}
		return nil, false
	}
	return g, true
}

// HandlePlanoContas extrai o plano de contas; com formato=csv devolve a
// reexportação Windows-1252 em vez do JSON.
func (h *ExtratorHandler) HandlePlanoContas(c *gin.Context) {
	g, ok := carregarGradeForm(c, "planoFile")
	if !ok {
		return
	}
	contas := extrator.ExtrairPlanoContas(g)

	if c.Query("formato") == "csv" {
		data, err := extrator.ExportarPlanoCSV(contas)
		if err != nil {
			responses.Error(c, http.StatusInternalServerError, "Erro ao gerar CSV do plano", err.Error())
			return
		}
		nome := fmt.Sprintf("PlanoContas_%s.csv", time.Now().Format("20060102_150405"))
		responses.File(c, nome, "text/csv; charset=windows-1252", data)
		return
	}
	responses.Success(c, contas, fmt.Sprintf("%d contas extraídas", len(contas)))
}

// HandleRazao extrai os lançamentos do relatório de razão.
func (h *ExtratorHandler) HandleRazao(c *gin.Context) {
	g, ok := carregarGradeForm(c, "razaoFile")
	if !ok {
		return
	}
	lancamentos := extrator.ExtrairRazao(g)
	responses.Success(c, lancamentos, fmt.Sprintf("%d lançamentos extraídos", len(lancamentos)))
}

// HandlePagamentos extrai o relatório de pagamentos do banco.
func (h *ExtratorHandler) HandlePagamentos(c *gin.Context) {
	g, ok := carregarGradeForm(c, "pagamentosFile")
	if !ok {
		return
	}
	pagamentos := extrator.ExtrairPagamentos(g)
	responses.Success(c, pagamentos, fmt.Sprintf("%d pagamentos extraídos", len(pagamentos)))
}

// HandleEstoque extrai a movimentação de estoque.
func (h *ExtratorHandler) HandleEstoque(c *gin.Context) {
	g, ok := carregarGradeForm(c, "estoqueFile")
	if !ok {
		return
	}
	relatorio := extrator.ExtrairEstoque(g)
	responses.Success(c, relatorio, fmt.Sprintf("%d movimentos extraídos", len(relatorio.Movimentos)))
}

// HandleNotasSaida extrai a listagem de notas de saída.
func (h *ExtratorHandler) HandleNotasSaida(c *gin.Context) {
	g, ok := carregarGradeForm(c, "notasFile")
	if !ok {
		return
	}
	notas := extrator.ExtrairNotasSaida(g)
	responses.Success(c, notas, fmt.Sprintf("%d notas extraídas", len(notas)))
}

// resultadoMatchComSugestao acrescenta ao resultado do matcher a sugestão
// fuzzy usada quando o limiar não é atingido.
type resultadoMatchComSugestao struct {
	domain.ResultadoMatch
	Sugestao *domain.ContaPlano `json:"sugestao,omitempty"`
}

// HandleMatchFornecedor casa um nome livre contra o plano de contas enviado.
func (h *ExtratorHandler) HandleMatchFornecedor(c *gin.Context) {
	nome := c.PostForm("nome")
	if nome == "" {
		responses.Error(c, http.StatusBadRequest, "Campo 'nome' é obrigatório")
		return
	}
	g, ok := carregarGradeForm(c, "planoFile")
	if !ok {
		return
	}

	limiar := extrator.LimiarMatch
	if raw := c.PostForm("limiar"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil && v > 0 && v <= 1 {
			limiar = v
		}
	}

	contas := extrator.ExtrairPlanoContas(g)
	resultado := resultadoMatchComSugestao{ResultadoMatch: extrator.MatchFornecedor(nome, contas, limiar)}
	if !resultado.Encontrou {
		if conta, achou := extrator.SugerirConta(nome, contas); achou {
			resultado.Sugestao = &conta
		}
	}
	responses.Success(c, resultado, "Matching concluído")
}

// lookupsRazao agrupa os dois índices derivados do razão.
type lookupsRazao struct {
	Historico   map[string]string `json:"historico"`
	CentroCusto map[string]string `json:"centro_custo"`
}

// HandleLookupsRazao deriva os índices texto→conta e centro-de-custo→conta.
func (h *ExtratorHandler) HandleLookupsRazao(c *gin.Context) {
	g, ok := carregarGradeForm(c, "razaoFile")
	if !ok {
		return
	}
	lancamentos := extrator.ExtrairRazao(g)
	resultado := lookupsRazao{
		Historico:   extrator.ConstruirLookupHistorico(lancamentos),
		CentroCusto: extrator.ConstruirLookupCentroCusto(lancamentos),
	}
	responses.Success(c, resultado, fmt.Sprintf("Índices derivados de %d lançamentos", len(lancamentos)))
}
