package account

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"krilo/internal/core/id"
	"krilo/internal/core/tenant"
	"krilo/internal/core/types"
)

type passthroughTxManager struct{}

func (passthroughTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeRepo struct {
	created    []Entry
	lastFilter *EntryFilter
	err        error
}

func (f *fakeRepo) CreateEntries(_ context.Context, entries []Entry) error {
	if f.err != nil {
		return f.err
	}
	f.created = append(f.created, entries...)
	return nil
}

func (f *fakeRepo) GetByInvoice(context.Context, id.ID) ([]Entry, error) {
	return nil, nil
}

func (f *fakeRepo) List(_ context.Context, filter EntryFilter) ([]Entry, error) {
	f.lastFilter = &filter
	return nil, nil
}

func (f *fakeRepo) GetAccountBalance(context.Context, string, time.Time) (types.Money, error) {
	return types.Zero(), nil
}

func testContext() context.Context {
	return tenant.WithTxManager(context.Background(), passthroughTxManager{})
}

func TestRecordEntries_Valid(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo)

	invID := id.New()
	entries := []Entry{
		NewEntry(AccountsReceivable, Credit, types.MustMoney("1180"), &invID),
		NewEntry(AccountsReceivable, Debit, types.MustMoney("500"), &invID),
	}

	require.NoError(t, svc.RecordEntries(testContext(), entries))
	assert.Len(t, repo.created, 2)
}

func TestRecordEntries_EmptyIsNoop(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo)

	require.NoError(t, svc.RecordEntries(context.Background(), nil))
	assert.Empty(t, repo.created)
}

func TestRecordEntries_Validation(t *testing.T) {
	svc := NewService(&fakeRepo{})

	tests := []struct {
		name  string
		entry Entry
	}{
		{"unknown account", NewEntry("Petty Cash", Debit, types.MustMoney("10"), nil)},
		{"bad entry type", NewEntry(Cash, EntryType("transfer"), types.MustMoney("10"), nil)},
		{"zero amount", NewEntry(Cash, Debit, types.Zero(), nil)},
		{"negative amount", NewEntry(Cash, Debit, types.MustMoney("-5"), nil)},
		{"amount over limit", NewEntry(Cash, Debit, MaxEntryAmount.Add(types.MustMoney("0.01")), nil)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Validation fails before any transaction is opened,
			// so a bare context is enough.
			err := svc.RecordEntries(context.Background(), []Entry{tt.entry})
			assert.Error(t, err)
		})
	}
}

func TestRecordEntries_RepoError(t *testing.T) {
	repoErr := errors.New("insert failed")
	svc := NewService(&fakeRepo{err: repoErr})

	err := svc.RecordEntries(testContext(), []Entry{
		NewEntry(Cash, Debit, types.MustMoney("10"), nil),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, repoErr)
}

func TestList_DefaultsAndValidation(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo)

	_, err := svc.List(context.Background(), EntryFilter{})
	require.NoError(t, err)
	require.NotNil(t, repo.lastFilter)
	assert.Equal(t, 100, repo.lastFilter.Limit)

	bad := "No Such Account"
	_, err = svc.List(context.Background(), EntryFilter{AccountType: &bad})
	assert.Error(t, err)
}

func TestGetAccountBalance_UnknownAccount(t *testing.T) {
	svc := NewService(&fakeRepo{})

	_, err := svc.GetAccountBalance(context.Background(), "Petty Cash", time.Now())
	assert.Error(t, err)
}
