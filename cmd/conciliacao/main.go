package main

import (
	"log"
	"net/http"
	"os"

	"conciliacao-service/internal/api/handlers"
	"conciliacao-service/internal/api/responses"

	"github.com/gin-gonic/gin"
)

const portaPadrao = "8084"

func main() {
	responses.InitLogger()

	router := gin.Default()
	router.MaxMultipartMemory = 32 << 20

	extratorHandler := handlers.NewExtratorHandler()
	spedHandler := handlers.NewSpedHandler()

	api := router.Group("/api/v1")
	{
		api.POST("/extrair/plano-contas", extratorHandler.HandlePlanoContas)
		api.POST("/extrair/razao", extratorHandler.HandleRazao)
		api.POST("/extrair/pagamentos", extratorHandler.HandlePagamentos)
		api.POST("/extrair/estoque", extratorHandler.HandleEstoque)
		api.POST("/extrair/notas-saida", extratorHandler.HandleNotasSaida)
		api.POST("/plano/match", extratorHandler.HandleMatchFornecedor)
		api.POST("/razao/lookups", extratorHandler.HandleLookupsRazao)
		api.POST("/sped/reescrever", spedHandler.HandleReescrever)
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	porta := os.Getenv("PORT")
	if porta == "" {
		porta = portaPadrao
	}

	log.Printf("Serviço de conciliação iniciado na porta %s", porta)
	if err := router.Run(":" + porta); err != nil {
		log.Fatalf("Erro ao iniciar o servidor: %v", err)
	}
}
