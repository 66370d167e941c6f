package sales

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/migueldelacruz-dev/vapetrack-backend/internal/dates"
	"github.com/migueldelacruz-dev/vapetrack-backend/internal/identifier"
	"github.com/migueldelacruz-dev/vapetrack-backend/internal/inventory"
	"github.com/migueldelacruz-dev/vapetrack-backend/internal/itemlock"
	"github.com/migueldelacruz-dev/vapetrack-backend/internal/loans"
	"github.com/migueldelacruz-dev/vapetrack-backend/internal/rowstore"
	"github.com/migueldelacruz-dev/vapetrack-backend/pkg/enums"
	pkgerrors "github.com/migueldelacruz-dev/vapetrack-backend/pkg/errors"
	"github.com/migueldelacruz-dev/vapetrack-backend/pkg/logger"
	"github.com/migueldelacruz-dev/vapetrack-backend/pkg/metrics"
)

// Engine reconciles sale requests against the inventory table. Each call
// loads a fresh inventory snapshot, validates before issuing any write, and
// then writes in a fixed order: sale record, loan record (credit sales
// only), inventory decrements. A failure after the sale append leaves an
// auditable overstated sale rather than a silently dropped one; nothing is
// rolled back.
//
// The per-item lock closes the read-validate-write race for single-item
// sales and claims within this process. Two processes sharing one
// spreadsheet can still interleave; the last quantity write wins there.
type Engine struct {
	store   rowstore.Store
	locks   *itemlock.Map
	logg    *logger.Logger
	metrics *metrics.SaleMetrics
}

// NewEngine builds a sale engine over the given row store.
func NewEngine(store rowstore.Store, locks *itemlock.Map, logg *logger.Logger, m *metrics.SaleMetrics) (*Engine, error) {
	if store == nil {
		return nil, fmt.Errorf("row store required")
	}
	if locks == nil {
		locks = itemlock.NewMap()
	}
	return &Engine{store: store, locks: locks, logg: logg, metrics: m}, nil
}

// Sell executes a sale request and returns its receipt.
func (e *Engine) Sell(ctx context.Context, req Request) (*Receipt, error) {
	receipt, err := e.sell(ctx, req)
	if err != nil {
		e.metrics.IncSaleFailure(failureReason(err))
		return nil, err
	}
	e.metrics.IncSale(receipt.SaleType.String(), req.PaymentMethod.String())
	return receipt, nil
}

func (e *Engine) sell(ctx context.Context, req Request) (*Receipt, error) {
	if err := validateCommon(req); err != nil {
		return nil, err
	}
	if req.IsBulk() {
		return e.sellBulk(ctx, req)
	}
	return e.sellSingle(ctx, req)
}

func validateCommon(req Request) error {
	if req.PaymentMethod == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "payment method is required")
	}
	if req.Quantity <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "quantity sold must be a positive integer")
	}
	if req.AppliedPrice != nil && req.AppliedPrice.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "applied price cannot be negative")
	}
	if req.PricePerUnit != nil && req.PricePerUnit.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "price per unit cannot be negative")
	}
	return nil
}

func (e *Engine) sellSingle(ctx context.Context, req Request) (*Receipt, error) {
	if req.ItemID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "item id is required")
	}
	date, err := dates.Normalize(req.Date)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid sale date")
	}

	unlock := e.locks.Lock(req.ItemID)
	defer unlock()

	index, err := inventory.Load(ctx, e.store)
	if err != nil {
		return nil, err
	}
	item, err := index.FindByID(req.ItemID)
	if err != nil {
		return nil, err
	}

	// Validates stock before any write is issued.
	write, err := index.ApplyDelta(item.ID, -req.Quantity)
	if err != nil {
		return nil, err
	}

	price := appliedPrice(req, item.Price)
	total := price.Mul(decimal.NewFromInt(int64(req.Quantity))).Round(2)
	saleID := identifier.New("S")

	record := Record{
		SaleID:        saleID,
		ItemID:        item.ID,
		ItemName:      item.Label(),
		Category:      item.Category.String(),
		QuantitySold:  req.Quantity,
		PricePerUnit:  price,
		Total:         total,
		Date:          date,
		Customer:      req.Customer,
		SaleType:      enums.SaleTypeRetail,
		PaymentMethod: req.PaymentMethod,
		Notes:         req.Notes,
	}
	if err := e.store.AppendRow(ctx, rowstore.TableSales, record.toRow()); err != nil {
		return nil, err
	}

	receipt := &Receipt{SaleID: saleID, SaleType: enums.SaleTypeRetail, Total: total}

	if req.PaymentMethod.IsLoan() {
		loanID, err := e.appendLoan(ctx, saleID, record.ItemName, req.Customer, total, date, req.Notes)
		if err != nil {
			return nil, recordedButIncomplete(err, saleID, "loan record not written")
		}
		receipt.LoanID = loanID
	}

	if err := e.store.WriteRange(ctx, rowstore.TableInventory, write.Address, write.Values()); err != nil {
		return nil, recordedButIncomplete(err, saleID, fmt.Sprintf("inventory update for %s not written", item.ID))
	}
	receipt.NewQuantity = &write.NewQuantity

	if e.logg != nil {
		logCtx := e.logg.WithFields(ctx, map[string]any{"sale_id": saleID, "item_id": item.ID, "total": total})
		e.logg.Info(logCtx, "sale recorded")
	}
	return receipt, nil
}

func (e *Engine) sellBulk(ctx context.Context, req Request) (*Receipt, error) {
	if req.AppliedPrice == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "applied price is required for bulk sales")
	}
	for _, line := range req.BulkLines {
		if line.ItemID == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "bulk line item id is required")
		}
		if line.Quantity <= 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("bulk line quantity for %s must be a positive integer", line.ItemID))
		}
	}
	date, err := dates.Normalize(req.Date)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid sale date")
	}

	index, err := inventory.Load(ctx, e.store)
	if err != nil {
		return nil, err
	}

	total := req.AppliedPrice.Mul(decimal.NewFromInt(int64(req.Quantity))).Round(2)
	saleID := identifier.New("S")

	// The sale (and loan) record is written before any inventory touch, so a
	// failed decrement can never lose the sale itself.
	record := Record{
		SaleID:        saleID,
		ItemID:        BulkItemID,
		ItemName:      "Bulk Sale",
		Category:      "Bulk",
		QuantitySold:  req.Quantity,
		PricePerUnit:  *req.AppliedPrice,
		Total:         total,
		Date:          date,
		Customer:      req.Customer,
		SaleType:      enums.SaleTypeBulk,
		PaymentMethod: req.PaymentMethod,
		Notes:         req.Notes,
	}
	if err := e.store.AppendRow(ctx, rowstore.TableSales, record.toRow()); err != nil {
		return nil, err
	}

	receipt := &Receipt{SaleID: saleID, SaleType: enums.SaleTypeBulk, Total: total}

	if req.PaymentMethod.IsLoan() {
		loanID, err := e.appendLoan(ctx, saleID, record.ItemName, req.Customer, total, date, req.Notes)
		if err != nil {
			return nil, recordedButIncomplete(err, saleID, "loan record not written")
		}
		receipt.LoanID = loanID
	}

	// Each line re-validates against the snapshot updated by prior lines, so
	// two lines naming the same item compose. Unknown items are skipped with
	// a warning; insufficient stock aborts the remaining loop and leaves the
	// decrements already written in place.
	for _, line := range req.BulkLines {
		write, err := index.ApplyDelta(line.ItemID, -line.Quantity)
		if err != nil {
			if pkgerrors.IsCode(err, pkgerrors.CodeNotFound) {
				if e.logg != nil {
					logCtx := e.logg.WithFields(ctx, map[string]any{"sale_id": saleID, "item_id": line.ItemID})
					e.logg.Warn(logCtx, "bulk sale line skipped: item not found")
				}
				receipt.SkippedItems = append(receipt.SkippedItems, line.ItemID)
				continue
			}
			return nil, recordedButIncomplete(err, saleID, "bulk inventory updates aborted")
		}
		if err := e.store.WriteRange(ctx, rowstore.TableInventory, write.Address, write.Values()); err != nil {
			return nil, recordedButIncomplete(err, saleID, fmt.Sprintf("inventory update for %s not written", line.ItemID))
		}
	}

	if e.logg != nil {
		logCtx := e.logg.WithFields(ctx, map[string]any{"sale_id": saleID, "lines": len(req.BulkLines), "total": total})
		e.logg.Info(logCtx, "bulk sale recorded")
	}
	return receipt, nil
}

// ListSales returns every persisted sale in append order.
func (e *Engine) ListSales(ctx context.Context) ([]Record, error) {
	_, rows, err := e.store.ReadAll(ctx, rowstore.TableSales)
	if err != nil {
		return nil, err
	}
	records := make([]Record, 0, len(rows))
	for _, row := range rows {
		records = append(records, recordFromRow(row))
	}
	return records, nil
}

func (e *Engine) appendLoan(ctx context.Context, saleID, itemName, customer string, amount decimal.Decimal, date, notes string) (string, error) {
	loan := loans.Loan{
		ID:         identifier.ForLoan(saleID),
		SaleID:     saleID,
		Customer:   customer,
		ItemName:   itemName,
		Amount:     amount,
		DateIssued: date,
		Status:     enums.LoanStatusUnpaid,
		Notes:      notes,
	}
	if err := e.store.AppendRow(ctx, rowstore.TableLoans, loan.ToRow()); err != nil {
		return "", err
	}
	return loan.ID, nil
}

func appliedPrice(req Request, catalogPrice decimal.Decimal) decimal.Decimal {
	if req.AppliedPrice != nil {
		return *req.AppliedPrice
	}
	if req.PricePerUnit != nil {
		return *req.PricePerUnit
	}
	return catalogPrice
}

// recordedButIncomplete keeps the original error code while flagging that
// the sale row already exists and reconciliation is manual.
func recordedButIncomplete(err error, saleID, step string) error {
	code := pkgerrors.CodeDependency
	if typed := pkgerrors.As(err); typed != nil {
		code = typed.Code()
	}
	return pkgerrors.Wrap(code, err, fmt.Sprintf("sale %s recorded but %s", saleID, step)).
		WithDetails(map[string]any{"sale_id": saleID, "step": step})
}

func failureReason(err error) string {
	if typed := pkgerrors.As(err); typed != nil {
		return string(typed.Code())
	}
	return string(pkgerrors.CodeInternal)
}
