package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/controle-financeiro/api/internal/application/usecase/transaction"
	"github.com/controle-financeiro/api/internal/integration/entrypoint/dto"
	"github.com/controle-financeiro/api/internal/integration/entrypoint/middleware"
)

// TransactionController handles transaction endpoints.
type TransactionController struct {
	listUseCase           *transaction.ListTransactionsUseCase
	getUseCase            *transaction.GetTransactionUseCase
	createUseCase         *transaction.CreateTransactionUseCase
	updateUseCase         *transaction.UpdateTransactionUseCase
	deleteUseCase         *transaction.DeleteTransactionUseCase
	listByPeriodUseCase   *transaction.ListTransactionsByPeriodUseCase
	listByCategoryUseCase *transaction.ListTransactionsByCategoryUseCase
	searchUseCase         *transaction.SearchTransactionsUseCase
	summaryUseCase        *transaction.GetSummaryUseCase
}

// TransactionUseCases groups the use cases served by the transaction controller.
type TransactionUseCases struct {
	List           *transaction.ListTransactionsUseCase
	Get            *transaction.GetTransactionUseCase
	Create         *transaction.CreateTransactionUseCase
	Update         *transaction.UpdateTransactionUseCase
	Delete         *transaction.DeleteTransactionUseCase
	ListByPeriod   *transaction.ListTransactionsByPeriodUseCase
	ListByCategory *transaction.ListTransactionsByCategoryUseCase
	Search         *transaction.SearchTransactionsUseCase
	Summary        *transaction.GetSummaryUseCase
}

// NewTransactionController creates a new transaction controller instance.
func NewTransactionController(useCases TransactionUseCases) *TransactionController {
	return &TransactionController{
		listUseCase:           useCases.List,
		getUseCase:            useCases.Get,
		createUseCase:         useCases.Create,
		updateUseCase:         useCases.Update,
		deleteUseCase:         useCases.Delete,
		listByPeriodUseCase:   useCases.ListByPeriod,
		listByCategoryUseCase: useCases.ListByCategory,
		searchUseCase:         useCases.Search,
		summaryUseCase:        useCases.Summary,
	}
}

// List handles GET /api/transacoes requests.
func (c *TransactionController) List(ctx *gin.Context) {
	output, err := c.listUseCase.Execute(ctx.Request.Context(), transaction.ListTransactionsInput{})
	if err != nil {
		_ = ctx.Error(err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTransactionListResponse(output.Transactions))
}

// ListByKind handles GET /api/transacoes/tipo/:tipo requests.
func (c *TransactionController) ListByKind(ctx *gin.Context) {
	kind, err := pathKind(ctx, "tipo")
	if err != nil {
		_ = ctx.Error(err)
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), transaction.ListTransactionsInput{Kind: &kind})
	if err != nil {
		_ = ctx.Error(err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTransactionListResponse(output.Transactions))
}

// ListByPeriod handles GET /api/transacoes/periodo requests.
func (c *TransactionController) ListByPeriod(ctx *gin.Context) {
	from, to, err := queryPeriod(ctx)
	if err != nil {
		_ = ctx.Error(err)
		return
	}

	output, err := c.listByPeriodUseCase.Execute(ctx.Request.Context(), transaction.ListTransactionsByPeriodInput{
		From: from,
		To:   to,
	})
	if err != nil {
		_ = ctx.Error(err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTransactionListResponse(output.Transactions))
}

// ListByCategory handles GET /api/transacoes/categoria/:categoriaId requests.
func (c *TransactionController) ListByCategory(ctx *gin.Context) {
	categoryID, err := pathID(ctx, "categoriaId")
	if err != nil {
		_ = ctx.Error(err)
		return
	}

	output, err := c.listByCategoryUseCase.Execute(ctx.Request.Context(), transaction.ListTransactionsByCategoryInput{
		CategoryID: categoryID,
	})
	if err != nil {
		_ = ctx.Error(err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTransactionListResponse(output.Transactions))
}

// Search handles GET /api/transacoes/buscar requests.
func (c *TransactionController) Search(ctx *gin.Context) {
	text, err := requiredQuery(ctx, "texto")
	if err != nil {
		_ = ctx.Error(err)
		return
	}

	output, err := c.searchUseCase.Execute(ctx.Request.Context(), transaction.SearchTransactionsInput{Text: text})
	if err != nil {
		_ = ctx.Error(err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTransactionListResponse(output.Transactions))
}

// Summary handles GET /api/transacoes/resumo requests.
func (c *TransactionController) Summary(ctx *gin.Context) {
	from, to, err := queryPeriod(ctx)
	if err != nil {
		_ = ctx.Error(err)
		return
	}

	output, err := c.summaryUseCase.Execute(ctx.Request.Context(), transaction.GetSummaryInput{From: from, To: to})
	if err != nil {
		_ = ctx.Error(err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToFinancialSummaryResponse(output.Summary))
}

// Get handles GET /api/transacoes/:id requests.
func (c *TransactionController) Get(ctx *gin.Context) {
	transactionID, err := pathID(ctx, "id")
	if err != nil {
		_ = ctx.Error(err)
		return
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), transaction.GetTransactionInput{TransactionID: transactionID})
	if err != nil {
		_ = ctx.Error(err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTransactionResponse(output.Transaction))
}

// Create handles POST /api/transacoes requests.
func (c *TransactionController) Create(ctx *gin.Context) {
	// Parse request body
	var req dto.TransactionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		_ = ctx.Error(middleware.BindError(err))
		return
	}

	input := transaction.CreateTransactionInput{
		Description: req.Description,
		Amount:      req.AmountOrZero(),
		Kind:        req.Kind,
		Date:        req.Date.Time,
		CategoryID:  req.CategoryID,
		Notes:       optionalText(req.Notes),
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		_ = ctx.Error(err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToTransactionResponse(output.Transaction))
}

// Update handles PUT /api/transacoes/:id requests.
func (c *TransactionController) Update(ctx *gin.Context) {
	transactionID, err := pathID(ctx, "id")
	if err != nil {
		_ = ctx.Error(err)
		return
	}

	// Parse request body
	var req dto.TransactionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		_ = ctx.Error(middleware.BindError(err))
		return
	}

	input := transaction.UpdateTransactionInput{
		TransactionID: transactionID,
		Description:   req.Description,
		Amount:        req.AmountOrZero(),
		Kind:          req.Kind,
		Date:          req.Date.Time,
		CategoryID:    req.CategoryID,
		Notes:         optionalText(req.Notes),
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		_ = ctx.Error(err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTransactionResponse(output.Transaction))
}

// Delete handles DELETE /api/transacoes/:id requests.
func (c *TransactionController) Delete(ctx *gin.Context) {
	transactionID, err := pathID(ctx, "id")
	if err != nil {
		_ = ctx.Error(err)
		return
	}

	if err := c.deleteUseCase.Execute(ctx.Request.Context(), transaction.DeleteTransactionInput{TransactionID: transactionID}); err != nil {
		_ = ctx.Error(err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
