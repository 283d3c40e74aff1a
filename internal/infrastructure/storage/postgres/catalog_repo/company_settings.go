package catalog_repo

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"krilo/internal/core/apperror"
	"krilo/internal/core/id"
	"krilo/internal/domain/company"
	"krilo/internal/infrastructure/storage/postgres"
)

const companySettingsTable = "company_settings"

// settingsRow is the flattened table shape; bank detail columns live
// beside the profile columns in the singleton row.
type settingsRow struct {
	ID      id.ID  `db:"id"`
	Version int    `db:"version"`
	Company string `db:"company_name"`
	Address string `db:"address"`
	Country string `db:"country"`
	State   string `db:"state"`
	City    string `db:"city"`
	Pincode string `db:"pincode"`
	GSTIN   string `db:"gstin"`

	CompanyLogo        string `db:"company_logo"`
	CompanySign        string `db:"company_sign"`
	TermsAndConditions string `db:"terms_and_conditions"`
	ContactNumber      string `db:"contact_number"`

	BankName      string `db:"bank_name"`
	AccountNumber string `db:"account_number"`
	IFSC          string `db:"ifsc"`
	Branch        string `db:"branch"`

	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (row *settingsRow) toModel() *company.Settings {
	s := &company.Settings{
		CompanyName:        row.Company,
		Address:            row.Address,
		Country:            row.Country,
		State:              row.State,
		City:               row.City,
		Pincode:            row.Pincode,
		GSTIN:              row.GSTIN,
		CompanyLogo:        row.CompanyLogo,
		CompanySign:        row.CompanySign,
		TermsAndConditions: row.TermsAndConditions,
		ContactNumber:      row.ContactNumber,
		BankDetails: company.BankDetails{
			BankName:      row.BankName,
			AccountNumber: row.AccountNumber,
			IFSC:          row.IFSC,
			Branch:        row.Branch,
		},
	}
	s.ID = row.ID
	s.Version = row.Version
	s.CreatedAt = row.CreatedAt
	s.UpdatedAt = row.UpdatedAt
	return s
}

// CompanySettingsRepo implements company.Repository.
type CompanySettingsRepo struct{}

// NewCompanySettingsRepo creates a new company settings repository.
func NewCompanySettingsRepo() *CompanySettingsRepo {
	return &CompanySettingsRepo{}
}

func (r *CompanySettingsRepo) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// Get retrieves the singleton settings row.
func (r *CompanySettingsRepo) Get(ctx context.Context) (*company.Settings, error) {
	q := r.builder().
		Select(postgres.ExtractDBColumns[settingsRow]()...).
		From(companySettingsTable).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var row settingsRow
	querier := postgres.MustGetTxManager(ctx).GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, &row, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("company settings", nil)
		}
		return nil, fmt.Errorf("get company settings: %w", err)
	}

	return row.toModel(), nil
}

// Upsert writes the singleton row. The table carries a unique index on
// a constant column, so ON CONFLICT keeps the row single per tenant.
func (r *CompanySettingsRepo) Upsert(ctx context.Context, s *company.Settings) error {
	if id.IsNil(s.ID) {
		s.ID = id.New()
		s.Version = 1
		s.CreatedAt = time.Now().UTC()
	}
	s.UpdatedAt = time.Now().UTC()

	sql := `
		INSERT INTO company_settings (
			id, version, company_name, address, country, state, city, pincode,
			gstin, company_logo, company_sign, terms_and_conditions, contact_number,
			bank_name, account_number, ifsc, branch, created_at, updated_at, singleton
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8,
			$9, $10, $11, $12, $13,
			$14, $15, $16, $17, $18, $19, TRUE
		)
		ON CONFLICT (singleton) DO UPDATE SET
			company_name = EXCLUDED.company_name,
			address = EXCLUDED.address,
			country = EXCLUDED.country,
			state = EXCLUDED.state,
			city = EXCLUDED.city,
			pincode = EXCLUDED.pincode,
			gstin = EXCLUDED.gstin,
			company_logo = EXCLUDED.company_logo,
			company_sign = EXCLUDED.company_sign,
			terms_and_conditions = EXCLUDED.terms_and_conditions,
			contact_number = EXCLUDED.contact_number,
			bank_name = EXCLUDED.bank_name,
			account_number = EXCLUDED.account_number,
			ifsc = EXCLUDED.ifsc,
			branch = EXCLUDED.branch,
			updated_at = EXCLUDED.updated_at,
			version = company_settings.version + 1
	`

	querier := postgres.MustGetTxManager(ctx).GetQuerier(ctx)
	_, err := querier.Exec(ctx, sql,
		s.ID, s.Version, s.CompanyName, s.Address, s.Country, s.State, s.City, s.Pincode,
		s.GSTIN, s.CompanyLogo, s.CompanySign, s.TermsAndConditions, s.ContactNumber,
		s.BankDetails.BankName, s.BankDetails.AccountNumber, s.BankDetails.IFSC, s.BankDetails.Branch,
		s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert company settings: %w", err)
	}
	return nil
}
