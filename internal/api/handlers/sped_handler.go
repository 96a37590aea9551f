package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"conciliacao-service/internal/api/responses"
	"conciliacao-service/internal/core/planilha"
	"conciliacao-service/internal/core/sped"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SpedHandler lida com a reescrita do arquivo fiscal.
type SpedHandler struct{}

// NewSpedHandler cria um novo handler de reescrita.
func NewSpedHandler() *SpedHandler {
	return &SpedHandler{}
}

// HandleReescrever recebe o arquivo fiscal e a tabela de ajustes, aplica os
// ajustes e devolve o resultado. Com download=1 a resposta é o arquivo
// reescrito em vez do JSON; os erros por documento vão no cabeçalho
// X-Ajustes-Erros.
func (h *SpedHandler) HandleReescrever(c *gin.Context) {
	spedData, _, err := lerArquivoForm(c, "spedFile")
	if err != nil {
		responses.Error(c, http.StatusBadRequest, "Arquivo \"spedFile\" não encontrado ou inválido")
		return
	}
	ajustesData, _, err := lerArquivoForm(c, "ajustesFile")
	if err != nil {
		responses.Error(c, http.StatusBadRequest, "Arquivo \"ajustesFile\" não encontrado ou inválido")
		return
	}

	ajustes, err := sped.CarregarAjustes(ajustesData)
	if err != nil {
		responses.Error(c, http.StatusUnprocessableEntity, "Tabela de ajustes inválida", err.Error())
		return
	}

	op := sped.OpcoesReescrita{EmitirSempre: c.PostForm("emitirSempre") == "true"}
	linhas := dividirLinhas(spedData)
	resultado := sped.ReescreverArquivo(linhas, ajustes, op)

	if c.Query("download") == "1" {
		for _, e := range resultado.Erros {
			c.Header("X-Ajustes-Erros", fmt.Sprintf("NF %s: %s", e.NF, e.Motivo))
		}
		nome := fmt.Sprintf("SpedAjustado_%s_%s.txt", time.Now().Format("20060102_150405"), uuid.NewString()[:8])
		conteudo := strings.Join(resultado.Linhas, "\r\n") + "\r\n"
		responses.File(c, nome, "text/plain; charset=utf-8", []byte(conteudo))
		return
	}
	responses.Success(c, resultado, fmt.Sprintf("%d ajustes aplicados, %d com erro", resultado.Aplicados, len(resultado.Erros)))
}

// dividirLinhas quebra o arquivo fiscal em linhas, tolerando CRLF e a quebra
// final sem produzir uma linha vazia espúria.
func dividirLinhas(data []byte) []string {
	texto := strings.ReplaceAll(planilha.DecodificarTexto(data), "\r\n", "\n")
	texto = strings.TrimSuffix(texto, "\n")
	if texto == "" {
		return nil
	}
	return strings.Split(texto, "\n")
}
