package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vyapaarhq/ledger_backend/internal/apperrors"
	portssvc "github.com/vyapaarhq/ledger_backend/internal/core/ports/services"
	"github.com/vyapaarhq/ledger_backend/internal/core/services"
	"github.com/vyapaarhq/ledger_backend/internal/dto"
	"github.com/vyapaarhq/ledger_backend/internal/middleware"
)

// ledgerHandler handles HTTP requests for stock and payment entries.
type ledgerHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

// newLedgerHandler creates a new ledgerHandler.
func newLedgerHandler(ledgerService portssvc.LedgerSvcFacade) *ledgerHandler {
	return &ledgerHandler{
		ledgerService: ledgerService,
	}
}

// registerLedgerRoutes sets up the entry routes on the authenticated group.
func registerLedgerRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade) {
	h := newLedgerHandler(ledgerService)

	entries := rg.Group("/entries")
	{
		entries.POST("/stock", h.recordStockEntries)
		entries.POST("/payment", h.recordPayment)
		entries.GET("/:entryID", h.getEntry)
	}
}

// isEntryValidationErr reports whether the error is one of the ledger
// service's input validation failures.
func isEntryValidationErr(err error) bool {
	for _, target := range []error{
		services.ErrEmptyStockBatch,
		services.ErrEntryDateMissing,
		services.ErrQualityTypeMissing,
		services.ErrQuantityNotPositive,
		services.ErrRateNotPositive,
		services.ErrAmountNegative,
		services.ErrBankAccountRequired,
		services.ErrBankAccountMismatch,
		services.ErrBankAccountInactive,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// recordStockEntries godoc
// @Summary Record stock entries
// @Description Persists a batch of stock purchases for one customer. Running
// @Description balances are chained atomically in entry order.
// @Tags entries
// @Accept json
// @Produce json
// @Param batch body dto.CreateStockEntriesRequest true "Stock Batch"
// @Success 201 {object} []dto.LedgerEntryResponse
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 404 {object} map[string]string "Customer not found"
// @Failure 500 {object} map[string]string "Failed to record stock entries"
// @Router /entries/stock [post]
func (h *ledgerHandler) recordStockEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateStockEntriesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for recordStockEntries", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	saved, err := h.ledgerService.RecordStockEntries(c.Request.Context(), req, creatorUserID)
	if err != nil {
		switch {
		case isEntryValidationErr(err):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
		default:
			logger.Error("Failed to record stock entries", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record stock entries"})
		}
		return
	}

	responses := make([]dto.LedgerEntryResponse, len(saved))
	for i := range saved {
		responses[i] = dto.ToLedgerEntryResponse(&saved[i])
	}
	c.JSON(http.StatusCreated, responses)
}

// recordPayment godoc
// @Summary Record a payment
// @Description Persists a payment and allocates it across the customer's
// @Description outstanding stock oldest first, returning the allocation report.
// @Tags entries
// @Accept json
// @Produce json
// @Param payment body dto.CreatePaymentRequest true "Payment"
// @Success 201 {object} dto.RecordPaymentResponse
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 404 {object} map[string]string "Customer or bank account not found"
// @Failure 409 {object} map[string]string "Duplicate transaction reference"
// @Failure 500 {object} map[string]string "Failed to record payment"
// @Router /entries/payment [post]
func (h *ledgerHandler) recordPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for recordPayment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	resp, err := h.ledgerService.RecordPayment(c.Request.Context(), req, creatorUserID)
	if err != nil {
		switch {
		case isEntryValidationErr(err):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrDuplicate):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to record payment", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record payment"})
		}
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// getEntry godoc
// @Summary Get a ledger entry
// @Description Retrieves one ledger entry with its stock or payment details.
// @Tags entries
// @Produce json
// @Param entryID path string true "Entry ID"
// @Success 200 {object} dto.LedgerEntryResponse
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 500 {object} map[string]string "Failed to retrieve entry"
// @Router /entries/{entryID} [get]
func (h *ledgerHandler) getEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("entryID")

	entry, err := h.ledgerService.GetEntryByID(c.Request.Context(), entryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Entry not found"})
			return
		}
		logger.Error("Failed to get ledger entry", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve entry"})
		return
	}

	c.JSON(http.StatusOK, dto.ToLedgerEntryResponse(entry))
}
