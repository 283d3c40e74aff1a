package dto

import (
	"github.com/shopspring/decimal"

	"krilo/internal/domain/catalogs/product"
)

// --- Request DTOs ---

// CreateProductRequest is the request body for creating a product.
type CreateProductRequest struct {
	Name        string          `json:"name" binding:"required"`
	Category    string          `json:"category" binding:"required"`
	Price       decimal.Decimal `json:"price"`
	Stock       int64           `json:"stock"`
	GSTRate     decimal.Decimal `json:"gstRate"`
	HSNCode     string          `json:"hsnCode"`
	Description string          `json:"description"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateProductRequest) ToEntity() *product.Product {
	item := product.New(r.Name, r.Category, r.Price, r.Stock)
	item.GSTRate = r.GSTRate
	item.HSNCode = r.HSNCode
	item.Description = r.Description
	return item
}

// UpdateProductRequest is the request body for updating a product.
type UpdateProductRequest struct {
	Name        string          `json:"name" binding:"required"`
	Category    string          `json:"category" binding:"required"`
	Price       decimal.Decimal `json:"price"`
	Stock       int64           `json:"stock"`
	GSTRate     decimal.Decimal `json:"gstRate"`
	HSNCode     string          `json:"hsnCode"`
	Description string          `json:"description"`
	Version     int             `json:"version" binding:"required,min=1"`
}

// ApplyTo applies update DTO to existing entity.
func (r *UpdateProductRequest) ApplyTo(item *product.Product) {
	item.Name = r.Name
	item.Category = r.Category
	item.Price = r.Price
	item.Stock = r.Stock
	item.GSTRate = r.GSTRate
	item.HSNCode = r.HSNCode
	item.Description = r.Description
	item.Version = r.Version
}

// --- Response DTOs ---

// ProductResponse is the response body for a product.
type ProductResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	Stock       int64           `json:"stock"`
	GSTRate     decimal.Decimal `json:"gstRate"`
	HSNCode     string          `json:"hsnCode,omitempty"`
	Description string          `json:"description,omitempty"`
	Version     int             `json:"version"`
}

// FromProduct creates response DTO from domain entity.
func FromProduct(item *product.Product) *ProductResponse {
	return &ProductResponse{
		ID:          item.ID.String(),
		Name:        item.Name,
		Category:    item.Category,
		Price:       item.Price,
		Stock:       item.Stock,
		GSTRate:     item.GSTRate,
		HSNCode:     item.HSNCode,
		Description: item.Description,
		Version:     item.Version,
	}
}
