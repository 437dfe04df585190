package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rbank-app/budget_backend/internal/apperrors"
	portssvc "github.com/rbank-app/budget_backend/internal/core/ports/services"
	"github.com/rbank-app/budget_backend/internal/dto"
	"github.com/rbank-app/budget_backend/internal/middleware"
)

// bankHandler handles HTTP requests related to banks.
type bankHandler struct {
	bankService   portssvc.BankSvcFacade
	ledgerService portssvc.LedgerSvcFacade
}

// newBankHandler creates a new bankHandler.
func newBankHandler(bs portssvc.BankSvcFacade, ls portssvc.LedgerSvcFacade) *bankHandler {
	return &bankHandler{bankService: bs, ledgerService: ls}
}

// registerBankRoutes registers routes related to banks.
func registerBankRoutes(rg *gin.RouterGroup, bankService portssvc.BankSvcFacade, ledgerService portssvc.LedgerSvcFacade) {
	h := newBankHandler(bankService, ledgerService)

	banks := rg.Group("/banks")
	{
		banks.GET("", h.listBanks)
		banks.POST("", h.createBank)
		banks.DELETE("/:bankID", h.deleteBank)
		banks.PATCH("/:bankID/balance", h.overrideBalance)
		banks.GET("/:bankID/transactions", h.listBankTransactions)
	}
}

// listBanks lists all banks for the caller's budget, bootstrapping the
// default payroll bank first so a fresh budget never lists empty.
func (h *bankHandler) listBanks(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	budgetID, ok := middleware.GetBudgetIDFromContext(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Budget code required"})
		return
	}

	if _, err := h.bankService.EnsureDefaultBank(c.Request.Context(), budgetID); err != nil {
		logger.Error("Failed to ensure default bank", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to prepare default bank"})
		return
	}

	banks, err := h.bankService.ListBanks(c.Request.Context(), budgetID)
	if err != nil {
		logger.Error("Failed to list banks", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list banks"})
		return
	}

	c.JSON(http.StatusOK, dto.ListBanksResponse{Banks: dto.ToBankResponses(banks)})
}

func (h *bankHandler) createBank(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	budgetID, ok := middleware.GetBudgetIDFromContext(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Budget code required"})
		return
	}

	var req dto.CreateBankRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createBank", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	bank, err := h.bankService.CreateBank(c.Request.Context(), budgetID, req.Name, req.Balance)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrConflict), errors.Is(err, apperrors.ErrDuplicate):
			logger.Warn("Conflicting bank creation", slog.String("error", err.Error()))
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to create bank", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create bank"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToBankResponse(bank))
}

func (h *bankHandler) deleteBank(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	budgetID, ok := middleware.GetBudgetIDFromContext(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Budget code required"})
		return
	}
	bankID := c.Param("bankID")

	err := h.bankService.DeleteBank(c.Request.Context(), budgetID, bankID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Bank not found"})
		case errors.Is(err, apperrors.ErrConflict):
			logger.Warn("Attempt to delete the default bank")
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to delete bank", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete bank"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// overrideBalance force-sets a bank's balance. This is the administrative
// escape hatch; the bank's balance stops matching its transaction history.
func (h *bankHandler) overrideBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	budgetID, ok := middleware.GetBudgetIDFromContext(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Budget code required"})
		return
	}
	bankID := c.Param("bankID")

	var req dto.OverrideBalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for overrideBalance", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	bank, err := h.bankService.OverrideBalance(c.Request.Context(), budgetID, bankID, *req.Balance)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Bank not found"})
		} else {
			logger.Error("Failed to override bank balance", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to override bank balance"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToBankResponse(bank))
}

func (h *bankHandler) listBankTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	budgetID, ok := middleware.GetBudgetIDFromContext(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Budget code required"})
		return
	}
	bankID := c.Param("bankID")

	txns, err := h.ledgerService.ListTransactionsByBank(c.Request.Context(), budgetID, bankID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Bank not found"})
		} else {
			logger.Error("Failed to list bank transactions", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list bank transactions"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ListTransactionsResponse{Transactions: dto.ToTransactionResponses(txns)})
}
