package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"krilo/internal/core/apperror"
	"krilo/internal/core/id"
	"krilo/internal/domain/registers/account"
	"krilo/internal/infrastructure/http/v1/dto"
)

// AccountHandler handles the accounting entry register endpoints.
type AccountHandler struct {
	*BaseHandler
	service *account.Service
}

// NewAccountHandler creates a new account handler.
func NewAccountHandler(base *BaseHandler, service *account.Service) *AccountHandler {
	return &AccountHandler{
		BaseHandler: base,
		service:     service,
	}
}

// List handles GET /accounts with account/type/invoice/date filters.
func (h *AccountHandler) List(c *gin.Context) {
	filter := account.EntryFilter{
		Limit:  h.ParseIntQuery(c, "limit", 100),
		Offset: h.ParseIntQuery(c, "offset", 0),
	}

	if accountType := c.Query("accountType"); accountType != "" {
		filter.AccountType = &accountType
	}

	if rawType := c.Query("type"); rawType != "" {
		entryType := account.EntryType(rawType)
		if entryType != account.Debit && entryType != account.Credit {
			h.Error(c, apperror.NewValidation("entry type must be debit or credit").
				WithDetail("type", rawType))
			return
		}
		filter.EntryType = &entryType
	}

	if rawInvoiceID := c.Query("invoiceId"); rawInvoiceID != "" {
		invoiceID, err := id.Parse(rawInvoiceID)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid invoice id").
				WithDetail("invoiceId", rawInvoiceID))
			return
		}
		filter.InvoiceID = &invoiceID
	}

	if from, ok := h.parseTimeQuery(c, "from"); ok {
		filter.FromDate = &from
	}
	if to, ok := h.parseTimeQuery(c, "to"); ok {
		filter.ToDate = &to
	}

	entries, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	items := make([]any, len(entries))
	for i, e := range entries {
		items[i] = dto.FromEntry(e)
	}

	c.JSON(http.StatusOK, dto.ListResponse{
		Items:      items,
		TotalCount: int64(len(items)),
		Limit:      filter.Limit,
		Offset:     filter.Offset,
	})
}

// Create handles POST /accounts - manual ledger entry.
func (h *AccountHandler) Create(c *gin.Context) {
	var req dto.CreateEntryRequest
	if !h.BindJSON(c, &req) {
		return
	}

	entry, err := req.ToEntry()
	if err != nil {
		h.Error(c, err)
		return
	}

	if err := h.service.RecordEntries(c.Request.Context(), []account.Entry{entry}); err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromEntry(entry))
}

// Balance handles GET /accounts/balance?accountType=...&asOf=...
func (h *AccountHandler) Balance(c *gin.Context) {
	accountType := c.Query("accountType")
	if accountType == "" {
		h.Error(c, apperror.NewValidation("accountType is required"))
		return
	}
	if !account.IsAllowedAccount(accountType) {
		h.Error(c, apperror.NewValidation("unknown account").
			WithDetail("accountType", accountType))
		return
	}

	asOf, ok := h.parseTimeQuery(c, "asOf")
	if !ok {
		asOf = time.Now().UTC()
	}

	balance, err := h.service.GetAccountBalance(c.Request.Context(), accountType, asOf)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.BalanceResponse{
		AccountType: accountType,
		Balance:     balance,
		AsOf:        asOf,
	})
}
