package invoice

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"krilo/internal/core/apperror"
	"krilo/internal/core/entity"
	"krilo/internal/core/id"
	"krilo/internal/core/tenant"
	"krilo/internal/core/types"
	"krilo/internal/domain"
	"krilo/internal/domain/catalogs/customer"
	"krilo/internal/domain/catalogs/product"
	"krilo/internal/domain/registers/account"
	"krilo/internal/domain/registers/inventory"
)

// --- fakes ---

type txPassthrough struct{}

func (txPassthrough) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeInvoiceRepo struct {
	byID       map[id.ID]*Invoice
	lines      map[id.ID][]Line
	createdIDs []id.ID
	updated    int
}

func newFakeInvoiceRepo() *fakeInvoiceRepo {
	return &fakeInvoiceRepo{
		byID:  make(map[id.ID]*Invoice),
		lines: make(map[id.ID][]Line),
	}
}

func (f *fakeInvoiceRepo) Create(_ context.Context, inv *Invoice) error {
	f.byID[inv.ID] = inv
	f.createdIDs = append(f.createdIDs, inv.ID)
	return nil
}

func (f *fakeInvoiceRepo) SaveLines(_ context.Context, invoiceID id.ID, lines []Line) error {
	f.lines[invoiceID] = lines
	return nil
}

func (f *fakeInvoiceRepo) GetByID(_ context.Context, invoiceID id.ID) (*Invoice, error) {
	inv, ok := f.byID[invoiceID]
	if !ok {
		return nil, apperror.NewNotFound("invoice", invoiceID.String())
	}
	return inv, nil
}

func (f *fakeInvoiceRepo) GetLines(_ context.Context, invoiceID id.ID) ([]Line, error) {
	return f.lines[invoiceID], nil
}

func (f *fakeInvoiceRepo) GetLinesForInvoices(_ context.Context, invoiceIDs []id.ID) (map[id.ID][]Line, error) {
	byInvoice := make(map[id.ID][]Line, len(invoiceIDs))
	for _, invoiceID := range invoiceIDs {
		byInvoice[invoiceID] = f.lines[invoiceID]
	}
	return byInvoice, nil
}

func (f *fakeInvoiceRepo) UpdatePayment(_ context.Context, inv *Invoice) error {
	f.byID[inv.ID] = inv
	f.updated++
	return nil
}

func (f *fakeInvoiceRepo) List(_ context.Context, filter ListFilter) (domain.ListResult[*Invoice], error) {
	items := make([]*Invoice, 0, len(f.byID))
	for _, inv := range f.byID {
		items = append(items, inv)
	}
	return domain.ListResult[*Invoice]{Items: items, TotalCount: int64(len(items))}, nil
}

type fakeProductRepo struct {
	products map[id.ID]*product.Product
}

func (f *fakeProductRepo) Create(_ context.Context, p *product.Product) error {
	f.products[p.ID] = p
	return nil
}

func (f *fakeProductRepo) GetByID(_ context.Context, productID id.ID) (*product.Product, error) {
	p, ok := f.products[productID]
	if !ok {
		return nil, apperror.NewNotFound("product", productID.String())
	}
	return p, nil
}

func (f *fakeProductRepo) Update(context.Context, *product.Product) error { return nil }
func (f *fakeProductRepo) Delete(context.Context, id.ID) error            { return nil }

func (f *fakeProductRepo) List(_ context.Context, filter domain.ListFilter) (domain.ListResult[*product.Product], error) {
	items := make([]*product.Product, 0, len(filter.IDs))
	for _, productID := range filter.IDs {
		if p, ok := f.products[productID]; ok {
			items = append(items, p)
		}
	}
	return domain.ListResult[*product.Product]{Items: items, TotalCount: int64(len(items))}, nil
}

func (f *fakeProductRepo) Exists(_ context.Context, productID id.ID) (bool, error) {
	_, ok := f.products[productID]
	return ok, nil
}

func (f *fakeProductRepo) FindByName(context.Context, string) (*product.Product, error) {
	return nil, apperror.NewNotFound("product", nil)
}

func (f *fakeProductRepo) ListCategories(context.Context) ([]string, error) { return nil, nil }

func (f *fakeProductRepo) FindLowStock(context.Context, int64, domain.ListFilter) (domain.ListResult[*product.Product], error) {
	return domain.ListResult[*product.Product]{}, nil
}

type fakeCustomerRepo struct {
	cust *customer.Customer
}

func (f *fakeCustomerRepo) Create(context.Context, *customer.Customer) error { return nil }

func (f *fakeCustomerRepo) GetByID(_ context.Context, customerID id.ID) (*customer.Customer, error) {
	if f.cust == nil || f.cust.ID != customerID {
		return nil, apperror.NewNotFound("customer", customerID.String())
	}
	return f.cust, nil
}

func (f *fakeCustomerRepo) Update(context.Context, *customer.Customer) error { return nil }
func (f *fakeCustomerRepo) Delete(context.Context, id.ID) error              { return nil }

func (f *fakeCustomerRepo) List(context.Context, domain.ListFilter) (domain.ListResult[*customer.Customer], error) {
	return domain.ListResult[*customer.Customer]{}, nil
}

func (f *fakeCustomerRepo) Exists(context.Context, id.ID) (bool, error) { return false, nil }

func (f *fakeCustomerRepo) FindByGSTIN(context.Context, string) (*customer.Customer, error) {
	return nil, apperror.NewNotFound("customer", nil)
}

type fakeStockRepo struct {
	stocks map[id.ID]int64
}

func (f *fakeStockRepo) AdjustStock(_ context.Context, adj inventory.Adjustment) (int64, error) {
	current := f.stocks[adj.ProductID]
	next := current + adj.Delta
	if next < 0 {
		return 0, apperror.NewInsufficientStock("", current, -adj.Delta)
	}
	f.stocks[adj.ProductID] = next
	return next, nil
}

type recordingAccountRepo struct {
	entries []account.Entry
}

func (r *recordingAccountRepo) CreateEntries(_ context.Context, entries []account.Entry) error {
	r.entries = append(r.entries, entries...)
	return nil
}

func (r *recordingAccountRepo) GetByInvoice(context.Context, id.ID) ([]account.Entry, error) {
	return nil, nil
}

func (r *recordingAccountRepo) List(context.Context, account.EntryFilter) ([]account.Entry, error) {
	return nil, nil
}

func (r *recordingAccountRepo) GetAccountBalance(context.Context, string, time.Time) (types.Money, error) {
	return types.Zero(), nil
}

// --- fixture ---

type fixture struct {
	svc      *Service
	repo     *fakeInvoiceRepo
	stock    *fakeStockRepo
	ledger   *recordingAccountRepo
	customer *customer.Customer
	widget   *product.Product
}

func newFixture() *fixture {
	cust := &customer.Customer{
		Base:    entity.NewBase(),
		Name:    "ACME Traders",
		Address: "12 MG Road",
		Country: "India",
		State:   "Karnataka",
		City:    "Bengaluru",
		Pincode: "560001",
	}

	widget := &product.Product{
		Base:     entity.NewBase(),
		Name:     "Widget",
		Category: "Hardware",
		Price:    money("100"),
		Stock:    10,
		GSTRate:  money("18"),
		HSNCode:  "8471",
	}

	repo := newFakeInvoiceRepo()
	stock := &fakeStockRepo{stocks: map[id.ID]int64{widget.ID: widget.Stock}}
	ledger := &recordingAccountRepo{}

	svc := NewService(
		repo,
		&fakeProductRepo{products: map[id.ID]*product.Product{widget.ID: widget}},
		&fakeCustomerRepo{cust: cust},
		inventory.NewService(stock),
		account.NewService(ledger),
		func(context.Context) (string, error) { return "Karnataka", nil },
	)

	return &fixture{svc: svc, repo: repo, stock: stock, ledger: ledger, customer: cust, widget: widget}
}

func txContext() context.Context {
	return tenant.WithTxManager(context.Background(), txPassthrough{})
}

// Intrastate sale of 2 widgets at 100 with 18% GST:
// taxable 200, CGST 18 + SGST 18, grand total 236.
func (f *fixture) salesInput() CreateInput {
	return CreateInput{
		CustomerID:   f.customer.ID,
		CustomerName: f.customer.Name,
		Type:         TypeSalesInvoice,
		Lines: []LineInput{
			{ProductID: f.widget.ID, Quantity: 2},
		},
		Total: money("236"),
	}
}

// --- tests ---

func TestCreate_SalesInvoice(t *testing.T) {
	f := newFixture()

	inv, err := f.svc.Create(txContext(), f.salesInput())
	require.NoError(t, err)

	assert.True(t, inv.Total.Equal(money("236")), "got %s", inv.Total)
	require.Len(t, inv.Lines, 1)
	assert.True(t, inv.Lines[0].GSTAmount.Equal(money("36")))

	// Stock decremented, document persisted, one receivable credit posted.
	assert.Equal(t, int64(8), f.stock.stocks[f.widget.ID])
	assert.Len(t, f.repo.createdIDs, 1)
	assert.Len(t, f.repo.lines[inv.ID], 1)
	require.Len(t, f.ledger.entries, 1)
	entry := f.ledger.entries[0]
	assert.Equal(t, account.AccountsReceivable, entry.AccountType)
	assert.Equal(t, account.Credit, entry.EntryType)
	assert.True(t, entry.Amount.Equal(money("236")))
	require.NotNil(t, entry.InvoiceID)
	assert.Equal(t, inv.ID, *entry.InvoiceID)
}

func TestCreate_SalesInvoiceWithPayment(t *testing.T) {
	f := newFixture()

	input := f.salesInput()
	received := money("100")
	input.TotalReceived = &received

	inv, err := f.svc.Create(txContext(), input)
	require.NoError(t, err)

	require.NotNil(t, inv.TotalPending)
	assert.True(t, inv.TotalPending.Equal(money("136")))

	// Credit for the full total plus a debit for the amount received.
	require.Len(t, f.ledger.entries, 2)
	assert.Equal(t, account.Credit, f.ledger.entries[0].EntryType)
	assert.Equal(t, account.Debit, f.ledger.entries[1].EntryType)
	assert.True(t, f.ledger.entries[1].Amount.Equal(money("100")))
}

func TestCreate_QuotationPostsNothing(t *testing.T) {
	f := newFixture()

	input := f.salesInput()
	input.Type = TypeQuotation

	inv, err := f.svc.Create(txContext(), input)
	require.NoError(t, err)
	require.NotNil(t, inv)

	assert.Equal(t, int64(10), f.stock.stocks[f.widget.ID], "stock untouched")
	assert.Empty(t, f.ledger.entries)
	assert.Len(t, f.repo.createdIDs, 1, "document still persisted")
}

func TestCreate_PurchaseInvoice(t *testing.T) {
	f := newFixture()

	input := f.salesInput()
	input.Type = TypePurchaseInvoice

	_, err := f.svc.Create(txContext(), input)
	require.NoError(t, err)

	assert.Equal(t, int64(12), f.stock.stocks[f.widget.ID])
	require.Len(t, f.ledger.entries, 1)
	assert.Equal(t, account.PurchaseRevenue, f.ledger.entries[0].AccountType)
	assert.Equal(t, account.Debit, f.ledger.entries[0].EntryType)
}

func TestCreate_TotalMismatchRejected(t *testing.T) {
	f := newFixture()

	input := f.salesInput()
	input.Total = money("250")

	_, err := f.svc.Create(txContext(), input)
	require.Error(t, err)
	assert.Empty(t, f.repo.createdIDs)
	assert.Equal(t, int64(10), f.stock.stocks[f.widget.ID])
}

func TestCreate_TotalWithinToleranceKeepsClientFigure(t *testing.T) {
	f := newFixture()

	input := f.salesInput()
	input.Total = money("236.01")

	inv, err := f.svc.Create(txContext(), input)
	require.NoError(t, err)
	assert.True(t, inv.Total.Equal(money("236.01")))
}

func TestCreate_InsufficientStock(t *testing.T) {
	f := newFixture()

	input := f.salesInput()
	input.Lines[0].Quantity = 11
	input.Total = money("1298")

	_, err := f.svc.Create(txContext(), input)
	require.Error(t, err)
	assert.Empty(t, f.repo.createdIDs)
	assert.Empty(t, f.ledger.entries)
}

func TestCreate_CustomerNameMismatch(t *testing.T) {
	f := newFixture()

	input := f.salesInput()
	input.CustomerName = "Someone Else"

	_, err := f.svc.Create(txContext(), input)
	assert.Error(t, err)
}

func TestCreate_UnknownProduct(t *testing.T) {
	f := newFixture()

	input := f.salesInput()
	input.Lines = append(input.Lines, LineInput{ProductID: id.New(), Quantity: 1})

	_, err := f.svc.Create(txContext(), input)
	assert.Error(t, err)
}

func TestCreate_UnknownCustomer(t *testing.T) {
	f := newFixture()

	input := f.salesInput()
	input.CustomerID = id.New()

	_, err := f.svc.Create(txContext(), input)
	assert.Error(t, err)
}

func TestCreate_ExplicitLinePriceOverridesCatalog(t *testing.T) {
	f := newFixture()

	override := money("50")
	input := f.salesInput()
	input.Lines[0].UnitPrice = &override
	// 50 x 2 = 100 taxable, 18 tax, 118 total
	input.Total = money("118")

	inv, err := f.svc.Create(txContext(), input)
	require.NoError(t, err)
	assert.True(t, inv.Lines[0].UnitPrice.Equal(money("50")))
	assert.True(t, inv.Total.Equal(money("118")))
}

func TestRecordPayment(t *testing.T) {
	f := newFixture()

	inv, err := f.svc.Create(txContext(), f.salesInput())
	require.NoError(t, err)
	postingEntries := len(f.ledger.entries)

	t.Run("first payment posts a debit for the delta", func(t *testing.T) {
		updated, err := f.svc.RecordPayment(txContext(), inv.ID, money("100"))
		require.NoError(t, err)
		require.NotNil(t, updated.TotalReceived)
		assert.True(t, updated.TotalReceived.Equal(money("100")))
		assert.True(t, updated.TotalPending.Equal(money("136")))

		require.Len(t, f.ledger.entries, postingEntries+1)
		last := f.ledger.entries[len(f.ledger.entries)-1]
		assert.Equal(t, account.Debit, last.EntryType)
		assert.True(t, last.Amount.Equal(money("100")))
	})

	t.Run("lowering the figure posts a reversing credit", func(t *testing.T) {
		updated, err := f.svc.RecordPayment(txContext(), inv.ID, money("60"))
		require.NoError(t, err)
		assert.True(t, updated.TotalReceived.Equal(money("60")))

		last := f.ledger.entries[len(f.ledger.entries)-1]
		assert.Equal(t, account.Credit, last.EntryType)
		assert.True(t, last.Amount.Equal(money("40")))
	})

	t.Run("unchanged figure posts nothing", func(t *testing.T) {
		before := len(f.ledger.entries)
		_, err := f.svc.RecordPayment(txContext(), inv.ID, money("60"))
		require.NoError(t, err)
		assert.Len(t, f.ledger.entries, before)
	})

	t.Run("overpayment rejected", func(t *testing.T) {
		_, err := f.svc.RecordPayment(txContext(), inv.ID, money("500"))
		assert.Error(t, err)
	})

	t.Run("negative amount rejected", func(t *testing.T) {
		_, err := f.svc.RecordPayment(txContext(), inv.ID, money("-1"))
		assert.Error(t, err)
	})

	t.Run("unknown invoice rejected", func(t *testing.T) {
		_, err := f.svc.RecordPayment(txContext(), id.New(), money("10"))
		assert.Error(t, err)
	})
}

func TestCreate_LineDiscountAppliedBeforeTax(t *testing.T) {
	f := newFixture()

	// 100 x 2 at 50% discount: taxable 100, GST 18, total 118.
	input := f.salesInput()
	input.Lines[0].Discount = money("50")
	input.Total = money("118")

	inv, err := f.svc.Create(txContext(), input)
	require.NoError(t, err)
	assert.True(t, inv.Total.Equal(money("118")), "got %s", inv.Total)
	assert.True(t, inv.Lines[0].GSTAmount.Equal(money("18")))
}

func TestTaxSummary_MatchesStoredTotalWithDiscount(t *testing.T) {
	f := newFixture()

	input := f.salesInput()
	input.Lines[0].Discount = money("50")
	input.Total = money("118")

	inv, err := f.svc.Create(txContext(), input)
	require.NoError(t, err)

	summary, err := f.svc.TaxSummary(txContext(), inv)
	require.NoError(t, err)
	assert.True(t, summary.GrandTotal.Equal(inv.Total),
		"summary %s vs stored %s", summary.GrandTotal, inv.Total)
	assert.True(t, summary.TaxableAmount.Equal(money("100")))
	assert.True(t, summary.TotalTax.Equal(money("18")))
}

func TestCreate_GrandTotalDiscount(t *testing.T) {
	t.Run("reduces the verified total", func(t *testing.T) {
		f := newFixture()

		// Lines sum to 236; a 36 grand discount brings the total to 200.
		input := f.salesInput()
		input.GrandTotalDiscount = money("36")
		input.Total = money("200")

		inv, err := f.svc.Create(txContext(), input)
		require.NoError(t, err)
		assert.True(t, inv.Total.Equal(money("200")))
		assert.True(t, inv.GrandTotalDiscount.Equal(money("36")))

		// Ledger posts on the discounted figure.
		require.Len(t, f.ledger.entries, 1)
		assert.True(t, f.ledger.entries[0].Amount.Equal(money("200")))
	})

	t.Run("negative discount rejected", func(t *testing.T) {
		f := newFixture()

		input := f.salesInput()
		input.GrandTotalDiscount = money("-1")

		_, err := f.svc.Create(txContext(), input)
		assert.Error(t, err)
	})

	t.Run("discount above line items total rejected", func(t *testing.T) {
		f := newFixture()

		input := f.salesInput()
		input.GrandTotalDiscount = money("300")
		input.Total = money("1")

		_, err := f.svc.Create(txContext(), input)
		assert.Error(t, err)
	})

	t.Run("undiscounted total rejected when a discount is set", func(t *testing.T) {
		f := newFixture()

		input := f.salesInput()
		input.GrandTotalDiscount = money("36")

		_, err := f.svc.Create(txContext(), input)
		assert.Error(t, err)
	})
}

func TestList_IncludesLines(t *testing.T) {
	f := newFixture()

	created, err := f.svc.Create(txContext(), f.salesInput())
	require.NoError(t, err)

	result, err := f.svc.List(context.Background(), ListFilter{})
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	assert.Equal(t, created.ID, result.Items[0].ID)
	require.Len(t, result.Items[0].Lines, 1)
	assert.Equal(t, f.widget.ID, result.Items[0].Lines[0].ProductID)
}

func TestGetByID_IncludesLines(t *testing.T) {
	f := newFixture()

	created, err := f.svc.Create(txContext(), f.salesInput())
	require.NoError(t, err)

	got, err := f.svc.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	require.Len(t, got.Lines, 1)
	assert.Equal(t, f.widget.ID, got.Lines[0].ProductID)
}
