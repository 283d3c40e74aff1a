package dto

import (
	"krilo/internal/domain/catalogs/customer"
)

// --- Request DTOs ---

// CreateCustomerRequest is the request body for creating a customer.
type CreateCustomerRequest struct {
	Name    string `json:"name" binding:"required"`
	Address string `json:"address" binding:"required"`
	Country string `json:"country" binding:"required"`
	State   string `json:"state" binding:"required"`
	City    string `json:"city" binding:"required"`
	Pincode string `json:"pincode" binding:"required"`
	GSTIN   string `json:"gstin"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateCustomerRequest) ToEntity() *customer.Customer {
	item := customer.New(r.Name, r.Address, r.Country, r.State, r.City, r.Pincode)
	item.GSTIN = r.GSTIN
	return item
}

// UpdateCustomerRequest is the request body for updating a customer.
type UpdateCustomerRequest struct {
	Name    string `json:"name" binding:"required"`
	Address string `json:"address" binding:"required"`
	Country string `json:"country" binding:"required"`
	State   string `json:"state" binding:"required"`
	City    string `json:"city" binding:"required"`
	Pincode string `json:"pincode" binding:"required"`
	GSTIN   string `json:"gstin"`
	Version int    `json:"version" binding:"required,min=1"`
}

// ApplyTo applies update DTO to existing entity.
func (r *UpdateCustomerRequest) ApplyTo(item *customer.Customer) {
	item.Name = r.Name
	item.Address = r.Address
	item.Country = r.Country
	item.State = r.State
	item.City = r.City
	item.Pincode = r.Pincode
	item.GSTIN = r.GSTIN
	item.Version = r.Version
}

// --- Response DTOs ---

// CustomerResponse is the response body for a customer.
type CustomerResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
	Country string `json:"country"`
	State   string `json:"state"`
	City    string `json:"city"`
	Pincode string `json:"pincode"`
	GSTIN   string `json:"gstin,omitempty"`
	Version int    `json:"version"`
}

// FromCustomer creates response DTO from domain entity.
func FromCustomer(item *customer.Customer) *CustomerResponse {
	return &CustomerResponse{
		ID:      item.ID.String(),
		Name:    item.Name,
		Address: item.Address,
		Country: item.Country,
		State:   item.State,
		City:    item.City,
		Pincode: item.Pincode,
		GSTIN:   item.GSTIN,
		Version: item.Version,
	}
}
