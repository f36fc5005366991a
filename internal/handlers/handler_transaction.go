package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/SscSPs/empower_finance_app/internal/core/domain"
	portssvc "github.com/SscSPs/empower_finance_app/internal/core/ports/services"
	"github.com/SscSPs/empower_finance_app/internal/dto"
	"github.com/SscSPs/empower_finance_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// transactionHandler handles HTTP requests related to ledger entries and their aggregations.
type transactionHandler struct {
	transactionService portssvc.TransactionSvcFacade
	aggregationService portssvc.AggregationService
}

// RegisterTransactionRoutes registers the ledger routes on the given group.
func RegisterTransactionRoutes(rg *gin.RouterGroup, transactionService portssvc.TransactionSvcFacade, aggregationService portssvc.AggregationService) {
	h := &transactionHandler{
		transactionService: transactionService,
		aggregationService: aggregationService,
	}

	transactions := rg.Group("/transactions")
	{
		transactions.POST("", h.createTransaction)
		transactions.GET("", h.listTransactions)
		transactions.GET("/balance", h.getBalance)
		transactions.GET("/summary", h.getMonthlySummary)
		transactions.GET("/categories", h.listCategories)
		transactions.GET("/:id", h.getTransaction)
		transactions.PUT("/:id", h.updateTransaction)
		transactions.DELETE("/:id", h.deleteTransaction)
	}
}

// createTransaction godoc
// @Summary Record a transaction
// @Description Records an income or expense entry for the logged-in user
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   transaction body dto.CreateTransactionRequest true "Transaction details"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input format or validation error"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Failed to create transaction"
// @Security BearerAuth
// @Router /transactions [post]
func (h *transactionHandler) createTransaction(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "request format", err)
		return
	}

	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	logger.Info("Received request to create transaction", slog.String("type", string(req.Type)), slog.String("category", req.Category))

	txn, err := h.transactionService.CreateTransaction(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err, "transaction")
		return
	}

	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

// listTransactions godoc
// @Summary List transactions
// @Description Lists the logged-in user's transactions, newest first, with optional filters
// @Tags transactions
// @Produce  json
// @Param   from query string false "Start of the range (RFC3339 or YYYY-MM-DD, inclusive)"
// @Param   to query string false "End of the range (RFC3339 or YYYY-MM-DD, inclusive)"
// @Param   type query string false "income or expense"
// @Param   category query string false "Exact category"
// @Param   limit query int false "Page size" default(50)
// @Param   nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid filter or range"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Failed to list transactions"
// @Security BearerAuth
// @Router /transactions [get]
func (h *transactionHandler) listTransactions(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		badRequest(c, "query parameters", err)
		return
	}

	txns, nextToken, err := h.transactionService.ListTransactions(c.Request.Context(), userID, params)
	if err != nil {
		respondError(c, err, "transaction")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Transactions listed successfully", slog.Int("count", len(txns)))
	c.JSON(http.StatusOK, dto.ListTransactionsResponse{
		Transactions: dto.ToTransactionResponses(txns),
		NextToken:    nextToken,
	})
}

// getTransaction godoc
// @Summary Get a transaction
// @Tags transactions
// @Produce  json
// @Param   id path string true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Transaction not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to retrieve transaction"
// @Security BearerAuth
// @Router /transactions/{id} [get]
func (h *transactionHandler) getTransaction(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	txn, err := h.transactionService.GetTransaction(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, err, "transaction")
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// updateTransaction godoc
// @Summary Update a transaction
// @Description Applies a partial update. Omitted fields keep their value; the merged record is validated again.
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   id path string true "Transaction ID"
// @Param   transaction body dto.UpdateTransactionRequest true "Fields to change"
// @Success 200 {object} dto.TransactionResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input format or validation error"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Transaction not found"
// @Failure 409 {object} dto.ErrorResponse "Modified concurrently"
// @Failure 500 {object} dto.ErrorResponse "Failed to update transaction"
// @Security BearerAuth
// @Router /transactions/{id} [put]
func (h *transactionHandler) updateTransaction(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "request format", err)
		return
	}

	txn, err := h.transactionService.UpdateTransaction(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		respondError(c, err, "transaction")
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// deleteTransaction godoc
// @Summary Delete a transaction
// @Tags transactions
// @Param   id path string true "Transaction ID"
// @Success 204 "No Content"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Transaction not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to delete transaction"
// @Security BearerAuth
// @Router /transactions/{id} [delete]
func (h *transactionHandler) deleteTransaction(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.transactionService.DeleteTransaction(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondError(c, err, "transaction")
		return
	}
	c.Status(http.StatusNoContent)
}

// getBalance godoc
// @Summary Get the balance
// @Description Sums income and expense over the optional inclusive range
// @Tags transactions
// @Produce  json
// @Param   from query string false "Start of the range (RFC3339 or YYYY-MM-DD)"
// @Param   to query string false "End of the range (RFC3339 or YYYY-MM-DD)"
// @Success 200 {object} dto.BalanceResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid range"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Failed to compute balance"
// @Security BearerAuth
// @Router /transactions/balance [get]
func (h *transactionHandler) getBalance(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var query dto.BalanceQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		badRequest(c, "query parameters", err)
		return
	}
	dateRange, err := dto.ParseDateRange(query.From, query.To)
	if err != nil {
		respondError(c, err, "balance")
		return
	}

	balance, err := h.aggregationService.BalanceFor(c.Request.Context(), userID, dateRange)
	if err != nil {
		respondError(c, err, "balance")
		return
	}
	c.JSON(http.StatusOK, dto.ToBalanceResponse(balance))
}

// getMonthlySummary godoc
// @Summary Get a monthly breakdown
// @Description Groups one calendar month (UTC) by type and category. Defaults to the current month.
// @Tags transactions
// @Produce  json
// @Param   year query int false "Year"
// @Param   month query int false "Month (1-12)"
// @Success 200 {object} dto.MonthlyBreakdownResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid year or month"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Failed to compute summary"
// @Security BearerAuth
// @Router /transactions/summary [get]
func (h *transactionHandler) getMonthlySummary(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var query dto.MonthlySummaryQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		badRequest(c, "query parameters", err)
		return
	}
	if query.Year == 0 && query.Month == 0 {
		now := time.Now().UTC()
		query.Year, query.Month = now.Year(), int(now.Month())
	}

	breakdown, err := h.aggregationService.MonthlyBreakdown(c.Request.Context(), userID, query.Year, query.Month)
	if err != nil {
		respondError(c, err, "summary")
		return
	}
	c.JSON(http.StatusOK, dto.ToMonthlyBreakdownResponse(breakdown))
}

// listCategories godoc
// @Summary List category palettes
// @Description Suggested categories per transaction type. Other categories are accepted too.
// @Tags transactions
// @Produce  json
// @Success 200 {object} dto.CategoriesResponse
// @Security BearerAuth
// @Router /transactions/categories [get]
func (h *transactionHandler) listCategories(c *gin.Context) {
	c.JSON(http.StatusOK, dto.CategoriesResponse{
		Income:  domain.IncomeCategories,
		Expense: domain.ExpenseCategories,
	})
}
