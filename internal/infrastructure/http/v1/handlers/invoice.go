package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"krilo/internal/core/apperror"
	"krilo/internal/core/id"
	"krilo/internal/domain"
	"krilo/internal/domain/catalogs/product"
	"krilo/internal/domain/documents/invoice"
	"krilo/internal/domain/export"
	"krilo/internal/infrastructure/http/v1/dto"
)

// InvoiceHandler handles the invoice document endpoints.
type InvoiceHandler struct {
	*BaseHandler
	service  *invoice.Service
	products product.Repository
	exporter *export.Builder
	renderer export.Renderer
}

// NewInvoiceHandler creates a new invoice handler.
func NewInvoiceHandler(
	base *BaseHandler,
	service *invoice.Service,
	products product.Repository,
	exporter *export.Builder,
	renderer export.Renderer,
) *InvoiceHandler {
	return &InvoiceHandler{
		BaseHandler: base,
		service:     service,
		products:    products,
		exporter:    exporter,
		renderer:    renderer,
	}
}

// List handles GET /invoices with type/customer/date filters.
func (h *InvoiceHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	filter := invoice.ListFilter{
		Limit:  h.ParseIntQuery(c, "limit", 50),
		Offset: h.ParseIntQuery(c, "offset", 0),
	}

	if rawType := c.Query("type"); rawType != "" {
		invType, err := invoice.ParseType(rawType)
		if err != nil {
			h.Error(c, err)
			return
		}
		filter.Type = &invType
	}

	if rawCustomerID := c.Query("customerId"); rawCustomerID != "" {
		customerID, err := id.Parse(rawCustomerID)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid customer id").
				WithDetail("customerId", rawCustomerID))
			return
		}
		filter.CustomerID = &customerID
	}

	if customerName := c.Query("customer"); customerName != "" {
		filter.CustomerName = &customerName
	}

	if from, ok := h.parseTimeQuery(c, "from"); ok {
		filter.FromDate = &from
	}
	if to, ok := h.parseTimeQuery(c, "to"); ok {
		filter.ToDate = &to
	}

	result, err := h.service.List(ctx, filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	names, err := h.productNames(c, result.Items...)
	if err != nil {
		h.Error(c, err)
		return
	}

	items := make([]any, len(result.Items))
	for i, inv := range result.Items {
		items[i] = dto.FromInvoice(inv, names)
	}

	c.JSON(http.StatusOK, dto.ListResponse{
		Items:      items,
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	})
}

// Get handles GET /invoices/:id.
func (h *InvoiceHandler) Get(c *gin.Context) {
	invoiceID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	inv, err := h.service.GetByID(c.Request.Context(), invoiceID)
	if err != nil {
		h.Error(c, err)
		return
	}

	names, err := h.productNames(c, inv)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromInvoice(inv, names))
}

// Create handles POST /invoices - the invoice transaction.
func (h *InvoiceHandler) Create(c *gin.Context) {
	var req dto.CreateInvoiceRequest
	if !h.BindJSON(c, &req) {
		return
	}

	input, err := req.ToCreateInput()
	if err != nil {
		h.Error(c, err)
		return
	}

	inv, err := h.service.Create(c.Request.Context(), input)
	if err != nil {
		h.Error(c, err)
		return
	}

	names, err := h.productNames(c, inv)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromInvoice(inv, names))
}

// UpdatePayment handles PUT /invoices/:id - payment update.
func (h *InvoiceHandler) UpdatePayment(c *gin.Context) {
	invoiceID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	var req dto.UpdatePaymentRequest
	if !h.BindJSON(c, &req) {
		return
	}

	inv, err := h.service.RecordPayment(c.Request.Context(), invoiceID, req.TotalReceived)
	if err != nil {
		h.Error(c, err)
		return
	}

	names, err := h.productNames(c, inv)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromInvoice(inv, names))
}

// Document handles GET /invoices/:id/document - rendered document.
func (h *InvoiceHandler) Document(c *gin.Context) {
	invoiceID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	ctx := c.Request.Context()

	doc, err := h.exporter.Build(ctx, invoiceID)
	if err != nil {
		h.Error(c, err)
		return
	}

	body, contentType, err := h.renderer.Render(ctx, doc)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.Data(http.StatusOK, contentType, body)
}

// productNames resolves line product names for response expansion.
func (h *InvoiceHandler) productNames(c *gin.Context, invoices ...*invoice.Invoice) (map[string]string, error) {
	seen := make(map[id.ID]struct{})
	var ids []id.ID
	for _, inv := range invoices {
		for _, line := range inv.Lines {
			if _, ok := seen[line.ProductID]; ok {
				continue
			}
			seen[line.ProductID] = struct{}{}
			ids = append(ids, line.ProductID)
		}
	}
	if len(ids) == 0 {
		return nil, nil
	}

	result, err := h.products.List(c.Request.Context(), domain.ListFilter{
		IDs:   ids,
		Limit: len(ids),
	})
	if err != nil {
		return nil, err
	}

	names := make(map[string]string, len(result.Items))
	for _, p := range result.Items {
		names[p.ID.String()] = p.Name
	}
	return names, nil
}
