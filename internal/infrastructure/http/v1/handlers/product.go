package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"krilo/internal/domain"
	"krilo/internal/domain/catalogs/product"
	"krilo/internal/infrastructure/http/v1/dto"
)

// ProductHTTPHandler aliases the generic catalog handler for products.
type ProductHTTPHandler = CatalogHandler[
	*product.Product,
	dto.CreateProductRequest,
	dto.UpdateProductRequest,
]

// ProductHandler bundles the generic CRUD handler with product-specific
// endpoints (categories, low stock).
type ProductHandler struct {
	*ProductHTTPHandler
	service *product.Service
}

// NewProductHandler creates a new product handler.
func NewProductHandler(base *BaseHandler, service *product.Service) *ProductHandler {
	config := CatalogHandlerConfig[
		*product.Product,
		dto.CreateProductRequest,
		dto.UpdateProductRequest,
	]{
		Service:    service.CatalogService,
		EntityName: "product",
		MapCreateDTO: func(req dto.CreateProductRequest) *product.Product {
			return req.ToEntity()
		},
		MapUpdateDTO: func(req dto.UpdateProductRequest, existing *product.Product) *product.Product {
			req.ApplyTo(existing)
			return existing
		},
		MapToDTO: func(item *product.Product) any {
			return dto.FromProduct(item)
		},
	}

	return &ProductHandler{
		ProductHTTPHandler: NewCatalogHandler(base, config),
		service:            service,
	}
}

// Categories handles GET /products/categories - distinct category names.
func (h *ProductHandler) Categories(c *gin.Context) {
	categories, err := h.service.ListCategories(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// LowStock handles GET /products/low-stock?threshold=N.
func (h *ProductHandler) LowStock(c *gin.Context) {
	threshold := int64(h.ParseIntQuery(c, "threshold", 5))

	filter := domain.DefaultListFilter()
	filter.Limit = h.ParseIntQuery(c, "limit", 50)
	filter.Offset = h.ParseIntQuery(c, "offset", 0)

	result, err := h.service.FindLowStock(c.Request.Context(), threshold, filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	items := make([]any, len(result.Items))
	for i, item := range result.Items {
		items[i] = dto.FromProduct(item)
	}

	c.JSON(http.StatusOK, dto.ListResponse{
		Items:      items,
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	})
}
