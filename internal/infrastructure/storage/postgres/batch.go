package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// BatchInserter provides bulk inserts into one table using the COPY
// protocol. Used for invoice lines and ledger entry batches inside a
// posting transaction. The TxManager is resolved from context so one
// inserter serves every tenant.
type BatchInserter struct {
	table string
}

// NewBatchInserter creates a batch inserter for a table.
func NewBatchInserter(table string) *BatchInserter {
	return &BatchInserter{table: table}
}

// CopyRows performs a bulk insert. Requires an active transaction in
// context; COPY outside a posting transaction is a programming error.
func (b *BatchInserter) CopyRows(ctx context.Context, columns []string, rows [][]any) error {
	if len(rows) == 0 {
		return nil
	}

	tx := MustGetTxManager(ctx).GetTx(ctx)
	if tx == nil {
		return fmt.Errorf("CopyRows requires transaction context")
	}

	n, err := tx.CopyFrom(ctx, pgx.Identifier{b.table}, columns, pgx.CopyFromRows(rows))
	if err != nil {
		return fmt.Errorf("copy into %s: %w", b.table, err)
	}
	if n != int64(len(rows)) {
		return fmt.Errorf("copy into %s: inserted %d of %d rows", b.table, n, len(rows))
	}
	return nil
}
