package register_repo

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/shopspring/decimal"

	"krilo/internal/core/id"
	"krilo/internal/core/types"
	"krilo/internal/domain/registers/account"
	"krilo/internal/infrastructure/storage/postgres"
)

const accountEntriesTable = "reg_account_entries"

// AccountRepo implements account.Repository.
// The table is append-only; no update or delete statements exist here.
type AccountRepo struct {
	batch *postgres.BatchInserter
}

// NewAccountRepo creates a new account register repository.
func NewAccountRepo() *AccountRepo {
	return &AccountRepo{
		batch: postgres.NewBatchInserter(accountEntriesTable),
	}
}

func (r *AccountRepo) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// CreateEntries batch inserts ledger entries via the COPY protocol.
func (r *AccountRepo) CreateEntries(ctx context.Context, entries []account.Entry) error {
	if len(entries) == 0 {
		return nil
	}

	columns := []string{"id", "account_type", "entry_type", "amount", "invoice_id", "date", "created_at"}
	rows := make([][]any, 0, len(entries))
	for _, e := range entries {
		var invoiceID any
		if e.InvoiceID != nil {
			invoiceID = *e.InvoiceID
		}
		rows = append(rows, []any{
			e.ID, e.AccountType, string(e.EntryType), e.Amount, invoiceID, e.Date, e.CreatedAt,
		})
	}

	if err := r.batch.CopyRows(ctx, columns, rows); err != nil {
		return fmt.Errorf("copy account entries: %w", err)
	}
	return nil
}

// GetByInvoice retrieves all entries linked to an invoice.
func (r *AccountRepo) GetByInvoice(ctx context.Context, invoiceID id.ID) ([]account.Entry, error) {
	q := r.builder().
		Select(postgres.ExtractDBColumns[account.Entry]()...).
		From(accountEntriesTable).
		Where(squirrel.Eq{"invoice_id": invoiceID}).
		OrderBy("created_at ASC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var entries []account.Entry
	querier := postgres.MustGetTxManager(ctx).GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &entries, sql, args...); err != nil {
		return nil, fmt.Errorf("get entries by invoice: %w", err)
	}
	return entries, nil
}

// List retrieves entries with filtering, newest first.
func (r *AccountRepo) List(ctx context.Context, filter account.EntryFilter) ([]account.Entry, error) {
	q := r.builder().
		Select(postgres.ExtractDBColumns[account.Entry]()...).
		From(accountEntriesTable).
		OrderBy("date DESC", "created_at DESC")

	if filter.AccountType != nil {
		q = q.Where(squirrel.Eq{"account_type": *filter.AccountType})
	}
	if filter.EntryType != nil {
		q = q.Where(squirrel.Eq{"entry_type": string(*filter.EntryType)})
	}
	if filter.InvoiceID != nil {
		q = q.Where(squirrel.Eq{"invoice_id": *filter.InvoiceID})
	}
	if filter.FromDate != nil {
		q = q.Where(squirrel.GtOrEq{"date": *filter.FromDate})
	}
	if filter.ToDate != nil {
		q = q.Where(squirrel.Lt{"date": *filter.ToDate})
	}
	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		q = q.Offset(uint64(filter.Offset))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var entries []account.Entry
	querier := postgres.MustGetTxManager(ctx).GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &entries, sql, args...); err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	return entries, nil
}

// GetAccountBalance computes debit minus credit for an account.
func (r *AccountRepo) GetAccountBalance(ctx context.Context, accountType string, asOf time.Time) (types.Money, error) {
	querier := postgres.MustGetTxManager(ctx).GetQuerier(ctx)

	var balance decimal.Decimal
	err := querier.QueryRow(ctx, `
		SELECT COALESCE(SUM(
			CASE WHEN entry_type = 'debit' THEN amount ELSE -amount END
		), 0)
		FROM reg_account_entries
		WHERE account_type = $1 AND date <= $2
	`, accountType, asOf).Scan(&balance)
	if err != nil {
		return types.Zero(), fmt.Errorf("account balance: %w", err)
	}
	return balance, nil
}
