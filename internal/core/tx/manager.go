// Package tx provides transaction management abstractions.
// Domain services depend on this interface, not on a concrete database
// implementation; the pgx-backed implementation lives in
// infrastructure/storage/postgres.
package tx

import (
	"context"
)

// Manager defines the contract for transaction management.
// Implementations handle BEGIN, COMMIT and ROLLBACK.
//
// The invoice transaction engine runs its whole four-step sequence
// (stock precheck, stock mutation, invoice persist, ledger post) inside
// one RunInTransaction call, so partial completion is impossible.
type Manager interface {
	// RunInTransaction executes fn within a database transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn succeeds, the transaction is committed.
	//
	// Nested calls reuse the existing transaction from context.
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
