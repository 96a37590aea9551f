// internal/domain/models.go
package domain

// CnpjZerado é o sentinela de CNPJ ausente no plano de contas (14 dígitos zero).
const CnpjZerado = "00000000000000"

// --- Plano de Contas ---

// ContaPlano representa uma conta do plano de contas importado.
type ContaPlano struct {
	Codigo        string `json:"codigo"`
	Descricao     string `json:"descricao"`
	Classificacao string `json:"classificacao"`
	Cnpj          string `json:"cnpj"`
}

// --- Razão ---

// LancamentoRazao representa um lançamento extraído do relatório de razão,
// já associado à conta corrente do bloco em que apareceu.
type LancamentoRazao struct {
	ContaCodigo    string  `json:"conta_codigo"`
	ContaDescricao string  `json:"conta_descricao"`
	Data           string  `json:"data"`
	Lote           string  `json:"lote"`
	Historico      string  `json:"historico"`
	CtaCPart       string  `json:"cta_c_part"`
	Debito         float64 `json:"debito"`
	Credito        float64 `json:"credito"`
	Saldo          float64 `json:"saldo"`
}

// --- Relatório de pagamentos bancários ---

// PagamentoBanco representa uma linha do relatório de pagamentos do banco.
type PagamentoBanco struct {
	Favorecido string  `json:"favorecido"`
	CpfCnpj    string  `json:"cpf_cnpj"`
	Tipo       string  `json:"tipo"`
	Referencia string  `json:"referencia"`
	Data       string  `json:"data"`
	Valor      float64 `json:"valor"`
	Status     string  `json:"status"`
}

// --- Movimentação de estoque ---

// TipoMovimento classifica uma linha de movimentação de estoque.
type TipoMovimento string

// Tipos de movimento emitidos pelo extrator de estoque.
const (
	MovimentoEntrada TipoMovimento = "entrada"
	MovimentoSaida   TipoMovimento = "saida"
)

// MovimentoEstoque representa uma entrada ou saída de estoque. Uma mesma linha
// do relatório pode gerar um movimento de cada tipo.
type MovimentoEstoque struct {
	Data          string        `json:"data"`
	Documento     string        `json:"documento"`
	Tipo          TipoMovimento `json:"tipo"`
	Quantidade    float64       `json:"quantidade"`
	ValorUnitario float64       `json:"valor_unitario"`
	ValorTotal    float64       `json:"valor_total"`
	SaldoQtde     float64       `json:"saldo_qtde"`
	SaldoMedio    float64       `json:"saldo_medio"`
	SaldoTotal    float64       `json:"saldo_total"`
}

// ResumoEstoque guarda o saldo anterior capturado da linha dedicada do
// relatório, separado dos movimentos.
type ResumoEstoque struct {
	SaldoAnteriorQtde  float64 `json:"saldo_anterior_qtde"`
	SaldoAnteriorValor float64 `json:"saldo_anterior_valor"`
}

// RelatorioEstoque é o resultado completo do extrator de estoque.
type RelatorioEstoque struct {
	Resumo     ResumoEstoque      `json:"resumo"`
	Movimentos []MovimentoEstoque `json:"movimentos"`
}

// --- Notas fiscais de saída ---

// NotaSaida representa uma linha da listagem de notas emitidas.
type NotaSaida struct {
	Numero   string  `json:"numero"` // sempre na forma canônica "NF <n>"
	Emissao  string  `json:"emissao"`
	Cliente  string  `json:"cliente"`
	Cfop     string  `json:"cfop"`
	Valor    float64 `json:"valor"`
	Situacao string  `json:"situacao"`
}

// --- Matching de fornecedores ---

// ResultadoMatch é o resultado do matching de um nome livre contra o plano.
type ResultadoMatch struct {
	Encontrou      bool    `json:"encontrou"`
	ContaPlano     string  `json:"conta_plano,omitempty"`
	DescricaoPlano string  `json:"descricao_plano,omitempty"`
	Score          float64 `json:"score,omitempty"`
}

// --- Ajustes SPED ---

// AjusteNF é uma linha da tabela de ajustes a injetar no arquivo fiscal.
// O número da nota pode vir com ou sem o prefixo "NF ". Datas e valores ficam
// como texto bruto: o reescritor formata campo a campo e registra em ErroAjuste
// o documento cujo ajuste não puder ser formatado.
type AjusteNF struct {
	NF             string `json:"nf"`
	DataVencimento string `json:"data_vencimento"`
	DataPagamento  string `json:"data_pagamento"`
	DataLancamento string `json:"data_lancamento"`
	Valor          string `json:"valor"`
	CreditoIcms    string `json:"credito_icms"`
	CreditoIcmsSt  string `json:"credito_icms_st"`
	DocLancamento  string `json:"doc_lancamento"`
	Autenticacao   string `json:"autenticacao"`
	CodigoParceiro string `json:"codigo_parceiro"`
	Serie          string `json:"serie"`
	SubSerie       string `json:"sub_serie"`
	ChaveAcesso    string `json:"chave_acesso"`
}

// ErroAjuste registra a falha de aplicação de um ajuste a um documento; o bloco
// original do documento permanece intacto na saída.
type ErroAjuste struct {
	NF     string `json:"nf"`
	Motivo string `json:"motivo"`
}

// ResultadoReescrita é a saída do reescritor de arquivo fiscal.
type ResultadoReescrita struct {
	Linhas    []string     `json:"linhas"`
	Aplicados int          `json:"aplicados"`
	Erros     []ErroAjuste `json:"erros"`
}
