package catalog_repo

import (
	"context"

	"github.com/Masterminds/squirrel"

	"krilo/internal/core/apperror"
	"krilo/internal/domain/catalogs/customer"
	"krilo/internal/infrastructure/storage/postgres"
)

const customerTable = "customers"

// CustomerRepo implements customer.Repository.
type CustomerRepo struct {
	*BaseCatalogRepo[*customer.Customer]
}

// NewCustomerRepo creates a new customer repository.
func NewCustomerRepo() *CustomerRepo {
	return &CustomerRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(
			customerTable,
			postgres.ExtractDBColumns[customer.Customer](),
			func() *customer.Customer { return &customer.Customer{} },
		),
	}
}

// FindByGSTIN retrieves a customer by tax registration number.
func (r *CustomerRepo) FindByGSTIN(ctx context.Context, gstin string) (*customer.Customer, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"gstin": gstin}).
		Limit(1)

	item, err := r.FindOne(ctx, q)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("customer", gstin)
		}
		return nil, err
	}
	return item, nil
}
