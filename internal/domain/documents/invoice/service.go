package invoice

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"krilo/internal/core/apperror"
	"krilo/internal/core/id"
	"krilo/internal/core/tenant"
	"krilo/internal/core/tx"
	"krilo/internal/core/types"
	"krilo/internal/domain"
	"krilo/internal/domain/catalogs/customer"
	"krilo/internal/domain/catalogs/product"
	"krilo/internal/domain/registers/account"
	"krilo/internal/domain/registers/inventory"
	"krilo/internal/domain/tax"
	"krilo/pkg/logger"
)

// CreateInput is the invoice submission payload after transport decoding.
type CreateInput struct {
	CustomerID   id.ID
	CustomerName string
	Type         Type

	Lines []LineInput

	// Total is the client-computed grand total, verified against the
	// server-side calculation within the money tolerance.
	Total types.Money

	GrandTotalDiscount types.Money

	// TotalReceived is nil when payment tracking has not started
	TotalReceived *types.Money
}

// LineInput is one requested line. UnitPrice and Discount are optional;
// a nil UnitPrice falls back to the catalog price.
type LineInput struct {
	ProductID id.ID
	Quantity  int64
	UnitPrice *types.Money
	Discount  types.Money
}

// Service is the invoice transaction engine. A single Create call
// validates the submission, adjusts stock, persists the document and
// posts ledger entries as one storage transaction.
type Service struct {
	repo         Repository
	products     product.Repository
	customers    customer.Repository
	inventorySvc *inventory.Service
	accountSvc   *account.Service
	sellerState  SellerStateFunc
	txManager    tx.Manager // Optional. If nil, obtained from context (DB-per-tenant).
}

// SellerStateFunc resolves the company's registered state for the
// interstate/intrastate tax decision.
type SellerStateFunc func(ctx context.Context) (string, error)

// NewService creates the invoice transaction engine.
func NewService(
	repo Repository,
	products product.Repository,
	customers customer.Repository,
	inventorySvc *inventory.Service,
	accountSvc *account.Service,
	sellerState SellerStateFunc,
) *Service {
	return &Service{
		repo:         repo,
		products:     products,
		customers:    customers,
		inventorySvc: inventorySvc,
		accountSvc:   accountSvc,
		sellerState:  sellerState,
	}
}

func (s *Service) getTxManager(ctx context.Context) (tx.Manager, error) {
	if s.txManager != nil {
		return s.txManager, nil
	}
	return tenant.GetTxManager(ctx)
}

// Create runs the full posting sequence. Terminal on success or the
// first failure; the storage transaction guarantees no partial stock
// mutation or ledger entry survives an aborted attempt.
func (s *Service) Create(ctx context.Context, input CreateInput) (*Invoice, error) {
	// 1. Shape validation
	if err := s.validateInput(ctx, input); err != nil {
		return nil, err
	}

	// 2. Resolve customer and products
	cust, err := s.resolveCustomer(ctx, input)
	if err != nil {
		return nil, err
	}
	productsByID, err := s.resolveProducts(ctx, input.Lines)
	if err != nil {
		return nil, err
	}

	// 3. Stock precheck against the current snapshot (sales only).
	// The conditional update inside the transaction is the authoritative
	// guard; this pass exists to fail fast with full detail.
	if input.Type == TypeSalesInvoice {
		if err := s.precheckStock(input.Lines, productsByID); err != nil {
			return nil, err
		}
	}

	// Build the document with server-side tax calculation
	inv, err := s.buildInvoice(ctx, input, cust, productsByID)
	if err != nil {
		return nil, err
	}

	adjustments := planStockAdjustments(inv.Type, inv.Lines)
	entries := planLedgerEntries(inv)

	txm, err := s.getTxManager(ctx)
	if err != nil {
		return nil, apperror.NewInternal(err).WithDetail("missing", "tx_manager")
	}
	err = txm.RunInTransaction(ctx, func(ctx context.Context) error {
		// 4. Stock mutation: atomic conditional updates. A rejection
		// here means a concurrent sale won the race after our precheck.
		if err := s.inventorySvc.ApplyAdjustments(ctx, adjustments); err != nil {
			return err
		}

		// 5. Invoice persistence
		if err := s.repo.Create(ctx, inv); err != nil {
			return fmt.Errorf("create invoice: %w", err)
		}
		if err := s.repo.SaveLines(ctx, inv.ID, inv.Lines); err != nil {
			return fmt.Errorf("save lines: %w", err)
		}

		// 6. Ledger posting
		if err := s.accountSvc.RecordEntries(ctx, entries); err != nil {
			return fmt.Errorf("post ledger entries: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "invoice created",
		"id", inv.ID,
		"type", inv.Type,
		"customer", inv.CustomerName,
		"total", inv.Total,
		"entries", len(entries),
	)

	return inv, nil
}

// RecordPayment updates the received amount and posts the matching
// receivable entry for the delta.
func (s *Service) RecordPayment(ctx context.Context, invoiceID id.ID, newReceived types.Money) (*Invoice, error) {
	txm, err := s.getTxManager(ctx)
	if err != nil {
		return nil, apperror.NewInternal(err).WithDetail("missing", "tx_manager")
	}

	var inv *Invoice
	err = txm.RunInTransaction(ctx, func(ctx context.Context) error {
		inv, err = s.repo.GetByID(ctx, invoiceID)
		if err != nil {
			return err
		}

		if newReceived.IsNegative() || newReceived.GreaterThan(inv.Total) {
			return apperror.NewInvalidPayment(newReceived, inv.Total)
		}

		delta := newReceived.Sub(inv.ReceivedOrZero())
		inv.SetReceived(newReceived)
		inv.Touch()

		if err := s.repo.UpdatePayment(ctx, inv); err != nil {
			return fmt.Errorf("update payment: %w", err)
		}

		entries := planPaymentEntries(inv, delta)
		if err := s.accountSvc.RecordEntries(ctx, entries); err != nil {
			return fmt.Errorf("post payment entries: %w", err)
		}

		logger.Info(ctx, "payment recorded",
			"id", inv.ID,
			"received", newReceived,
			"delta", delta,
		)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetByID(ctx, invoiceID)
}

// GetByID retrieves an invoice with its lines.
func (s *Service) GetByID(ctx context.Context, invoiceID id.ID) (*Invoice, error) {
	inv, err := s.repo.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	lines, err := s.repo.GetLines(ctx, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("get lines: %w", err)
	}
	inv.Lines = lines

	return inv, nil
}

// List retrieves invoices with filtering, lines included.
func (s *Service) List(ctx context.Context, filter ListFilter) (domain.ListResult[*Invoice], error) {
	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	result, err := s.repo.List(ctx, filter)
	if err != nil {
		return result, err
	}

	ids := make([]id.ID, 0, len(result.Items))
	for _, inv := range result.Items {
		ids = append(ids, inv.ID)
	}
	linesByInvoice, err := s.repo.GetLinesForInvoices(ctx, ids)
	if err != nil {
		return result, fmt.Errorf("get lines: %w", err)
	}
	for _, inv := range result.Items {
		inv.Lines = linesByInvoice[inv.ID]
	}

	return result, nil
}

// --- Create internals ---

func (s *Service) validateInput(ctx context.Context, input CreateInput) error {
	if id.IsNil(input.CustomerID) {
		return apperror.NewValidation("customer is required").
			WithDetail("field", "customerId")
	}
	if input.CustomerName == "" {
		return apperror.NewValidation("customer name is required").
			WithDetail("field", "customer")
	}
	if _, err := ParseType(string(input.Type)); err != nil {
		return err
	}
	if len(input.Lines) == 0 {
		return apperror.NewValidation("products array is required and cannot be empty").
			WithDetail("field", "products")
	}
	for i, line := range input.Lines {
		if id.IsNil(line.ProductID) {
			return apperror.NewValidation(fmt.Sprintf("line %d: product is required", i+1))
		}
		if line.Quantity <= 0 {
			return apperror.NewValidation("all quantities must be positive integers").
				WithDetail("lineNo", i+1)
		}
	}
	if !input.Total.IsPositive() {
		return apperror.NewValidation("total amount must be a positive number").
			WithDetail("total", input.Total.String())
	}
	if input.TotalReceived != nil {
		received := *input.TotalReceived
		if received.IsNegative() || received.GreaterThan(input.Total) {
			return apperror.NewInvalidPayment(received, input.Total)
		}
	}
	return nil
}

func (s *Service) resolveCustomer(ctx context.Context, input CreateInput) (*customer.Customer, error) {
	cust, err := s.customers.GetByID(ctx, input.CustomerID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("customer", input.CustomerID.String())
		}
		return nil, err
	}
	if cust.Name != input.CustomerName {
		return nil, apperror.NewValidation("customer name does not match customer record").
			WithDetail("customer", input.CustomerName).
			WithDetail("expected", cust.Name)
	}
	return cust, nil
}

func (s *Service) resolveProducts(ctx context.Context, lines []LineInput) (map[id.ID]*product.Product, error) {
	ids := make([]id.ID, 0, len(lines))
	seen := make(map[id.ID]struct{}, len(lines))
	for _, line := range lines {
		if _, ok := seen[line.ProductID]; ok {
			continue
		}
		seen[line.ProductID] = struct{}{}
		ids = append(ids, line.ProductID)
	}

	result, err := s.products.List(ctx, domain.ListFilter{IDs: ids, Limit: len(ids)})
	if err != nil {
		return nil, fmt.Errorf("resolve products: %w", err)
	}
	if len(result.Items) != len(ids) {
		return nil, apperror.NewNotFound("product", nil).
			WithDetail("found", len(result.Items)).
			WithDetail("expected", len(ids))
	}

	byID := make(map[id.ID]*product.Product, len(result.Items))
	for _, p := range result.Items {
		byID[p.ID] = p
	}
	return byID, nil
}

// precheckStock verifies each line against the current snapshot so the
// caller gets product names and quantities in the failure.
func (s *Service) precheckStock(lines []LineInput, products map[id.ID]*product.Product) error {
	requested := make(map[id.ID]int64)
	for _, line := range lines {
		requested[line.ProductID] += line.Quantity
	}
	for productID, qty := range requested {
		p := products[productID]
		if p.Stock < qty {
			return apperror.NewInsufficientStock(p.Name, p.Stock, qty)
		}
	}
	return nil
}

// buildInvoice computes per-line tax and totals server-side and checks
// them against the client total.
func (s *Service) buildInvoice(
	ctx context.Context,
	input CreateInput,
	cust *customer.Customer,
	products map[id.ID]*product.Product,
) (*Invoice, error) {
	companyState, err := s.sellerState(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolve company state: %w", err)
	}
	interState := tax.IsInterState(companyState, cust.State)

	inv := New(input.CustomerID, input.CustomerName, input.Type)
	inv.GrandTotalDiscount = input.GrandTotalDiscount

	for _, line := range input.Lines {
		p := products[line.ProductID]

		unitPrice := p.Price
		if line.UnitPrice != nil {
			unitPrice = *line.UnitPrice
		}

		taxable := unitPrice.Mul(decimal.NewFromInt(line.Quantity))
		discounted := taxable.Sub(taxable.Mul(line.Discount).Div(decimal.NewFromInt(100)))

		var gstAmount types.Money
		if interState {
			gstAmount = discounted.Mul(p.GSTRate).Div(decimal.NewFromInt(100))
		} else {
			half := discounted.Mul(p.GSTRate).Div(decimal.NewFromInt(200))
			gstAmount = half.Add(half)
		}

		inv.AddLine(line.ProductID, line.Quantity, unitPrice, line.Discount, gstAmount)
	}

	if input.GrandTotalDiscount.IsNegative() {
		return nil, apperror.NewValidation("grand total discount cannot be negative").
			WithDetail("grandTotalDiscount", input.GrandTotalDiscount.String())
	}
	if input.GrandTotalDiscount.GreaterThan(inv.Total) {
		return nil, apperror.NewValidation("grand total discount exceeds line items total").
			WithDetail("grandTotalDiscount", input.GrandTotalDiscount.String()).
			WithDetail("lineItemsTotal", inv.Total.String())
	}

	// The grand total discount comes off after the line extensions;
	// pending and ledger math run on the discounted figure.
	expected := inv.Total.Sub(input.GrandTotalDiscount)
	if !types.MoneyEqual(expected, input.Total) {
		return nil, apperror.NewValidation("total does not match line items").
			WithDetail("computed", expected.String()).
			WithDetail("submitted", input.Total.String())
	}
	// Keep the client figure when the difference is inside tolerance
	inv.Total = input.Total

	if input.TotalReceived != nil {
		inv.SetReceived(*input.TotalReceived)
	}

	if err := inv.Validate(ctx); err != nil {
		return nil, err
	}
	return inv, nil
}

// TaxSummary recalculates the HSN-wise breakup for a stored invoice.
// Used by the document renderer.
func (s *Service) TaxSummary(ctx context.Context, inv *Invoice) (tax.Summary, error) {
	companyState, err := s.sellerState(ctx)
	if err != nil {
		return tax.Summary{}, fmt.Errorf("resolve company state: %w", err)
	}
	cust, err := s.customers.GetByID(ctx, inv.CustomerID)
	if err != nil {
		return tax.Summary{}, err
	}

	productIDs := make([]id.ID, 0, len(inv.Lines))
	for _, line := range inv.Lines {
		productIDs = append(productIDs, line.ProductID)
	}
	result, err := s.products.List(ctx, domain.ListFilter{IDs: productIDs, Limit: len(productIDs)})
	if err != nil {
		return tax.Summary{}, fmt.Errorf("resolve products: %w", err)
	}
	byID := make(map[id.ID]*product.Product, len(result.Items))
	for _, p := range result.Items {
		byID[p.ID] = p
	}

	taxLines := make([]tax.Line, 0, len(inv.Lines))
	for _, line := range inv.Lines {
		var gstRate types.Money
		var hsn string
		if p, ok := byID[line.ProductID]; ok {
			gstRate = p.GSTRate
			hsn = p.HSNCode
		}
		taxLines = append(taxLines, tax.Line{
			Price:    line.UnitPrice,
			Quantity: line.Quantity,
			Discount: line.Discount,
			GSTRate:  gstRate,
			HSNCode:  hsn,
		})
	}

	return tax.Calculate(companyState, cust.State, taxLines), nil
}
