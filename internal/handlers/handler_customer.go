package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vyapaarhq/ledger_backend/internal/apperrors"
	portssvc "github.com/vyapaarhq/ledger_backend/internal/core/ports/services"
	"github.com/vyapaarhq/ledger_backend/internal/dto"
	"github.com/vyapaarhq/ledger_backend/internal/middleware"
)

// customerHandler handles HTTP requests for customers and their bank accounts.
type customerHandler struct {
	customerService    portssvc.CustomerSvcFacade
	bankAccountService portssvc.BankAccountSvcFacade
	ledgerService      portssvc.LedgerSvcFacade
}

// newCustomerHandler creates a new customerHandler.
func newCustomerHandler(customerService portssvc.CustomerSvcFacade, bankAccountService portssvc.BankAccountSvcFacade, ledgerService portssvc.LedgerSvcFacade) *customerHandler {
	return &customerHandler{
		customerService:    customerService,
		bankAccountService: bankAccountService,
		ledgerService:      ledgerService,
	}
}

// registerCustomerRoutes sets up the customer routes on the authenticated group.
func registerCustomerRoutes(rg *gin.RouterGroup, customerService portssvc.CustomerSvcFacade, bankAccountService portssvc.BankAccountSvcFacade, ledgerService portssvc.LedgerSvcFacade) {
	h := newCustomerHandler(customerService, bankAccountService, ledgerService)

	customers := rg.Group("/customers")
	{
		customers.POST("", h.createCustomer)
		customers.GET("/search", h.searchCustomers)
		customers.GET("/:customerID", h.getCustomerDetails)
		customers.PATCH("/:customerID", h.updateCustomer)
		customers.GET("/:customerID/balance", h.getCustomerBalance)
		customers.GET("/:customerID/entries", h.listCustomerEntries)
		customers.POST("/:customerID/bank-accounts", h.addBankAccount)
		customers.GET("/:customerID/bank-accounts", h.listBankAccounts)
		customers.PATCH("/:customerID/bank-accounts/:bankAccountID/default", h.setDefaultBankAccount)
	}
}

// createCustomer godoc
// @Summary Create a customer
// @Description Creates a new customer. The aadhaar number must be unique.
// @Tags customers
// @Accept json
// @Produce json
// @Param customer body dto.CreateCustomerRequest true "Customer"
// @Success 201 {object} dto.CustomerResponse
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 409 {object} map[string]string "Duplicate aadhaar number"
// @Failure 500 {object} map[string]string "Failed to create customer"
// @Router /customers [post]
func (h *customerHandler) createCustomer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for createCustomer", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	customer, err := h.customerService.CreateCustomer(c.Request.Context(), req, creatorUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to create customer", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create customer"})
		return
	}

	logger.Info("Customer created", slog.String("customer_id", customer.CustomerID))
	c.JSON(http.StatusCreated, dto.ToCustomerResponse(customer))
}

// searchCustomers godoc
// @Summary Search customers
// @Description Matches the query against name, email, phone, company name, GST and PAN.
// @Description An empty query lists customers up to the cap.
// @Tags customers
// @Produce json
// @Param query query string false "Search query"
// @Param limit query int false "Result cap" default(100)
// @Success 200 {object} dto.SearchCustomersResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 500 {object} map[string]string "Failed to search customers"
// @Router /customers/search [get]
func (h *customerHandler) searchCustomers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.SearchCustomersParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	customers, err := h.customerService.SearchCustomers(c.Request.Context(), params)
	if err != nil {
		logger.Error("Failed to search customers", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search customers"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListCustomerResponse(customers))
}

// getCustomerDetails godoc
// @Summary Get customer details
// @Description Retrieves a customer with tax identifiers, bank accounts and aggregate balance.
// @Tags customers
// @Produce json
// @Param customerID path string true "Customer ID"
// @Success 200 {object} dto.CustomerDetailsResponse
// @Failure 404 {object} map[string]string "Customer not found"
// @Failure 500 {object} map[string]string "Failed to retrieve customer"
// @Router /customers/{customerID} [get]
func (h *customerHandler) getCustomerDetails(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	customerID := c.Param("customerID")

	details, err := h.customerService.GetCustomerDetails(c.Request.Context(), customerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
			return
		}
		logger.Error("Failed to get customer details", slog.String("error", err.Error()), slog.String("customer_id", customerID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve customer"})
		return
	}

	c.JSON(http.StatusOK, details)
}

// updateCustomer godoc
// @Summary Update a customer
// @Description Applies a partial update to a customer. Only provided fields change.
// @Tags customers
// @Accept json
// @Produce json
// @Param customerID path string true "Customer ID"
// @Param customer body dto.UpdateCustomerRequest true "Fields to update"
// @Success 200 {object} dto.CustomerResponse
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 404 {object} map[string]string "Customer not found"
// @Failure 500 {object} map[string]string "Failed to update customer"
// @Router /customers/{customerID} [patch]
func (h *customerHandler) updateCustomer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	customerID := c.Param("customerID")

	var req dto.UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	customer, err := h.customerService.UpdateCustomer(c.Request.Context(), customerID, req, requestingUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
			return
		}
		logger.Error("Failed to update customer", slog.String("error", err.Error()), slog.String("customer_id", customerID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update customer"})
		return
	}

	logger.Info("Customer updated", slog.String("customer_id", customerID))
	c.JSON(http.StatusOK, dto.ToCustomerResponse(customer))
}

// getCustomerBalance godoc
// @Summary Get customer balance
// @Description Computes the customer's aggregate position from the full ledger, including advances.
// @Tags customers
// @Produce json
// @Param customerID path string true "Customer ID"
// @Success 200 {object} dto.CustomerBalanceResponse
// @Failure 404 {object} map[string]string "Customer not found"
// @Failure 500 {object} map[string]string "Failed to compute balance"
// @Router /customers/{customerID}/balance [get]
func (h *customerHandler) getCustomerBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	customerID := c.Param("customerID")

	balance, err := h.ledgerService.GetCustomerBalance(c.Request.Context(), customerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
			return
		}
		logger.Error("Failed to compute customer balance", slog.String("error", err.Error()), slog.String("customer_id", customerID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute balance"})
		return
	}

	c.JSON(http.StatusOK, dto.ToCustomerBalanceResponse(customerID, balance))
}

// listCustomerEntries godoc
// @Summary List a customer's ledger entries
// @Description Retrieves the customer's entries newest first with token pagination
// @Description and the total pending balance across the ledger.
// @Tags customers
// @Produce json
// @Param customerID path string true "Customer ID"
// @Param limit query int false "Page size" default(20)
// @Param nextToken query string false "Pagination token from the previous page"
// @Success 200 {object} dto.ListEntriesResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 404 {object} map[string]string "Customer not found"
// @Failure 500 {object} map[string]string "Failed to list entries"
// @Router /customers/{customerID}/entries [get]
func (h *customerHandler) listCustomerEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	customerID := c.Param("customerID")

	var params dto.ListEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	page, err := h.ledgerService.ListCustomerEntries(c.Request.Context(), customerID, params)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
			return
		}
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to list customer entries", slog.String("error", err.Error()), slog.String("customer_id", customerID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list entries"})
		return
	}

	c.JSON(http.StatusOK, page)
}

// addBankAccount godoc
// @Summary Add a bank account
// @Description Adds a bank account to a customer. The first account becomes the default.
// @Tags customers
// @Accept json
// @Produce json
// @Param customerID path string true "Customer ID"
// @Param account body dto.CreateBankAccountRequest true "Bank Account"
// @Success 201 {object} dto.BankAccountResponse
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 404 {object} map[string]string "Customer not found"
// @Failure 409 {object} map[string]string "Duplicate account number"
// @Failure 500 {object} map[string]string "Failed to add bank account"
// @Router /customers/{customerID}/bank-accounts [post]
func (h *customerHandler) addBankAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	customerID := c.Param("customerID")

	var req dto.CreateBankAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	account, err := h.bankAccountService.AddBankAccount(c.Request.Context(), customerID, req, creatorUserID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
		case errors.Is(err, apperrors.ErrDuplicate):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to add bank account", slog.String("error", err.Error()), slog.String("customer_id", customerID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add bank account"})
		}
		return
	}

	logger.Info("Bank account added", slog.String("customer_id", customerID), slog.String("bank_account_id", account.BankAccountID))
	c.JSON(http.StatusCreated, dto.ToBankAccountResponse(account))
}

// listBankAccounts godoc
// @Summary List a customer's bank accounts
// @Description Lists the customer's bank accounts, default first.
// @Tags customers
// @Produce json
// @Param customerID path string true "Customer ID"
// @Success 200 {object} dto.ListBankAccountsResponse
// @Failure 404 {object} map[string]string "Customer not found"
// @Failure 500 {object} map[string]string "Failed to list bank accounts"
// @Router /customers/{customerID}/bank-accounts [get]
func (h *customerHandler) listBankAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	customerID := c.Param("customerID")

	accounts, err := h.bankAccountService.ListBankAccounts(c.Request.Context(), customerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
			return
		}
		logger.Error("Failed to list bank accounts", slog.String("error", err.Error()), slog.String("customer_id", customerID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list bank accounts"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListBankAccountResponse(accounts))
}

// setDefaultBankAccount godoc
// @Summary Set the default bank account
// @Description Marks one account as the default and clears the flag on the others.
// @Tags customers
// @Produce json
// @Param customerID path string true "Customer ID"
// @Param bankAccountID path string true "Bank Account ID"
// @Success 200 {object} map[string]string "Status message"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to set default"
// @Router /customers/{customerID}/bank-accounts/{bankAccountID}/default [patch]
func (h *customerHandler) setDefaultBankAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	customerID := c.Param("customerID")
	bankAccountID := c.Param("bankAccountID")

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	err := h.bankAccountService.SetDefaultBankAccount(c.Request.Context(), customerID, bankAccountID, requestingUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Bank account not found"})
			return
		}
		logger.Error("Failed to set default bank account", slog.String("error", err.Error()), slog.String("bank_account_id", bankAccountID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to set default"})
		return
	}

	logger.Info("Default bank account updated", slog.String("customer_id", customerID), slog.String("bank_account_id", bankAccountID))
	c.JSON(http.StatusOK, gin.H{"status": "default updated"})
}
