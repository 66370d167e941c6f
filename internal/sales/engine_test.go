package sales

import (
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/migueldelacruz-dev/vapetrack-backend/internal/rowstore"
	"github.com/migueldelacruz-dev/vapetrack-backend/pkg/enums"
	pkgerrors "github.com/migueldelacruz-dev/vapetrack-backend/pkg/errors"
)

func seededStore(t *testing.T) *rowstore.Memory {
	t.Helper()
	store := rowstore.NewMemory()
	ctx := context.Background()
	require.NoError(t, rowstore.EnsureAll(ctx, store))
	rows := [][]string{
		{"VT-A", "Device", "Argus P1", "v2", "", "10", "50", "2026-08-01", "", "30"},
		{"VT-B", "JuiceOrPod", "Nasty Juice", "", "Mango Ice", "24", "50", "2026-08-02", "", ""},
		{"VT-C", "Device", "Oxbar G8000", "", "", "0", "550", "2026-08-03", "sold out", "380"},
	}
	for _, row := range rows {
		require.NoError(t, store.AppendRow(ctx, rowstore.TableInventory, row))
	}
	return store
}

func newEngine(t *testing.T, store rowstore.Store) *Engine {
	t.Helper()
	engine, err := NewEngine(store, nil, nil, nil)
	require.NoError(t, err)
	return engine
}

func TestSellSingleDecrementsStockAndAppendsRecord(t *testing.T) {
	store := seededStore(t)
	engine := newEngine(t, store)
	ctx := context.Background()

	receipt, err := engine.Sell(ctx, Request{
		ItemID:        "VT-A",
		Quantity:      3,
		PaymentMethod: enums.PaymentMethodCash,
		Customer:      "Walk-in",
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(receipt.SaleID, "S"))
	assert.Equal(t, enums.SaleTypeRetail, receipt.SaleType)
	assert.Equal(t, "150.00", receipt.Total.StringFixed(2))
	assert.Empty(t, receipt.LoanID)
	require.NotNil(t, receipt.NewQuantity)
	assert.Equal(t, 7, *receipt.NewQuantity)

	_, invRows, err := store.ReadAll(ctx, rowstore.TableInventory)
	require.NoError(t, err)
	assert.Equal(t, "7", invRows[0][5])

	records, err := engine.ListSales(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, receipt.SaleID, records[0].SaleID)
	assert.Equal(t, "VT-A", records[0].ItemID)
	assert.Equal(t, "Argus P1 v2", records[0].ItemName)
	assert.Equal(t, 3, records[0].QuantitySold)
	assert.Equal(t, enums.PaymentMethodCash, records[0].PaymentMethod)

	_, loanRows, err := store.ReadAll(ctx, rowstore.TableLoans)
	require.NoError(t, err)
	assert.Empty(t, loanRows, "cash sale must not open a loan")
}

func TestSellSingleOversellWritesNothing(t *testing.T) {
	store := seededStore(t)
	engine := newEngine(t, store)
	ctx := context.Background()

	_, err := engine.Sell(ctx, Request{
		ItemID:        "VT-A",
		Quantity:      11,
		PaymentMethod: enums.PaymentMethodCash,
	})
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeInsufficientStock))

	_, invRows, err := store.ReadAll(ctx, rowstore.TableInventory)
	require.NoError(t, err)
	assert.Equal(t, "10", invRows[0][5], "failed sale must not touch inventory")

	_, saleRows, err := store.ReadAll(ctx, rowstore.TableSales)
	require.NoError(t, err)
	assert.Empty(t, saleRows, "failed sale must not append a record")
}

func TestSellSingleZeroStockRejected(t *testing.T) {
	engine := newEngine(t, seededStore(t))

	_, err := engine.Sell(context.Background(), Request{
		ItemID:        "VT-C",
		Quantity:      1,
		PaymentMethod: enums.PaymentMethodCash,
	})
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeInsufficientStock))
}

func TestSellSinglePriceOverridePrecedence(t *testing.T) {
	tests := []struct {
		name      string
		request   Request
		wantTotal string
	}{
		{
			name: "catalog price when no override",
			request: Request{
				ItemID: "VT-B", Quantity: 2,
				PaymentMethod: enums.PaymentMethodCash,
			},
			wantTotal: "100.00",
		},
		{
			name: "per-unit override beats catalog",
			request: Request{
				ItemID: "VT-B", Quantity: 2,
				PricePerUnit:  decPtr("40"),
				PaymentMethod: enums.PaymentMethodCash,
			},
			wantTotal: "80.00",
		},
		{
			name: "applied price beats both",
			request: Request{
				ItemID: "VT-B", Quantity: 2,
				AppliedPrice:  decPtr("35.125"),
				PricePerUnit:  decPtr("40"),
				PaymentMethod: enums.PaymentMethodCash,
			},
			wantTotal: "70.25",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			engine := newEngine(t, seededStore(t))
			receipt, err := engine.Sell(context.Background(), tc.request)
			require.NoError(t, err)
			assert.Equal(t, tc.wantTotal, receipt.Total.StringFixed(2))
		})
	}
}

func TestSellValidation(t *testing.T) {
	engine := newEngine(t, seededStore(t))
	ctx := context.Background()

	tests := []struct {
		name    string
		request Request
	}{
		{"missing payment method", Request{ItemID: "VT-A", Quantity: 1}},
		{"zero quantity", Request{ItemID: "VT-A", Quantity: 0, PaymentMethod: enums.PaymentMethodCash}},
		{"negative quantity", Request{ItemID: "VT-A", Quantity: -2, PaymentMethod: enums.PaymentMethodCash}},
		{"missing item id", Request{Quantity: 1, PaymentMethod: enums.PaymentMethodCash}},
		{"negative applied price", Request{ItemID: "VT-A", Quantity: 1, AppliedPrice: decPtr("-5"), PaymentMethod: enums.PaymentMethodCash}},
		{"bad date", Request{ItemID: "VT-A", Quantity: 1, Date: "31/08/2026", PaymentMethod: enums.PaymentMethodCash}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := engine.Sell(ctx, tc.request)
			require.Error(t, err)
			assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
		})
	}
}

func TestSellUnknownItemNotFound(t *testing.T) {
	engine := newEngine(t, seededStore(t))

	_, err := engine.Sell(context.Background(), Request{
		ItemID:        "VT-404",
		Quantity:      1,
		PaymentMethod: enums.PaymentMethodCash,
	})
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
}

func TestSellLoanPaymentOpensLedgerEntry(t *testing.T) {
	store := seededStore(t)
	engine := newEngine(t, store)
	ctx := context.Background()

	receipt, err := engine.Sell(ctx, Request{
		ItemID:        "VT-A",
		Quantity:      2,
		PaymentMethod: enums.PaymentMethodLoan,
		Customer:      "Miguel",
	})
	require.NoError(t, err)
	require.NotEmpty(t, receipt.LoanID)
	assert.Equal(t, "L"+strings.TrimPrefix(receipt.SaleID, "S"), receipt.LoanID)

	_, loanRows, err := store.ReadAll(ctx, rowstore.TableLoans)
	require.NoError(t, err)
	require.Len(t, loanRows, 1)
	assert.Equal(t, receipt.LoanID, loanRows[0][0])
	assert.Equal(t, receipt.SaleID, loanRows[0][1])
	assert.Equal(t, "Miguel", loanRows[0][2])
	assert.Equal(t, "100.00", loanRows[0][4])
	assert.Equal(t, "Unpaid", loanRows[0][7])
}

func TestSellBulkTotalIgnoresLineQuantities(t *testing.T) {
	store := seededStore(t)
	engine := newEngine(t, store)
	ctx := context.Background()

	receipt, err := engine.Sell(ctx, Request{
		Quantity:      5,
		AppliedPrice:  decPtr("50"),
		PaymentMethod: enums.PaymentMethodGCash,
		BulkLines: []BulkLine{
			{ItemID: "VT-A", Quantity: 3},
			{ItemID: "VT-B", Quantity: 2},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, enums.SaleTypeBulk, receipt.SaleType)
	assert.Equal(t, "250.00", receipt.Total.StringFixed(2))
	assert.Nil(t, receipt.NewQuantity)
	assert.Empty(t, receipt.SkippedItems)

	_, saleRows, err := store.ReadAll(ctx, rowstore.TableSales)
	require.NoError(t, err)
	require.Len(t, saleRows, 1)
	assert.Equal(t, BulkItemID, saleRows[0][1])
	assert.Equal(t, "Bulk Sale", saleRows[0][2])
	assert.Equal(t, "5", saleRows[0][4])
	assert.Equal(t, "bulk", saleRows[0][9])

	_, invRows, err := store.ReadAll(ctx, rowstore.TableInventory)
	require.NoError(t, err)
	assert.Equal(t, "7", invRows[0][5])
	assert.Equal(t, "22", invRows[1][5])
}

func TestSellBulkRequiresAppliedPrice(t *testing.T) {
	engine := newEngine(t, seededStore(t))

	_, err := engine.Sell(context.Background(), Request{
		Quantity:      2,
		PaymentMethod: enums.PaymentMethodCash,
		BulkLines:     []BulkLine{{ItemID: "VT-A", Quantity: 2}},
	})
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}

func TestSellBulkSkipsUnknownLines(t *testing.T) {
	store := seededStore(t)
	engine := newEngine(t, store)
	ctx := context.Background()

	receipt, err := engine.Sell(ctx, Request{
		Quantity:      3,
		AppliedPrice:  decPtr("100"),
		PaymentMethod: enums.PaymentMethodCash,
		BulkLines: []BulkLine{
			{ItemID: "VT-A", Quantity: 1},
			{ItemID: "VT-404", Quantity: 2},
			{ItemID: "VT-B", Quantity: 1},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"VT-404"}, receipt.SkippedItems)

	_, invRows, err := store.ReadAll(ctx, rowstore.TableInventory)
	require.NoError(t, err)
	assert.Equal(t, "9", invRows[0][5])
	assert.Equal(t, "23", invRows[1][5])
}

func TestSellBulkInsufficientLineAbortsRemainingDecrements(t *testing.T) {
	store := seededStore(t)
	engine := newEngine(t, store)
	ctx := context.Background()

	_, err := engine.Sell(ctx, Request{
		Quantity:      3,
		AppliedPrice:  decPtr("100"),
		PaymentMethod: enums.PaymentMethodCash,
		BulkLines: []BulkLine{
			{ItemID: "VT-A", Quantity: 2},
			{ItemID: "VT-B", Quantity: 30},
			{ItemID: "VT-A", Quantity: 1},
		},
	})
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeInsufficientStock))
	assert.Contains(t, err.Error(), "recorded but")

	// The sale record stays, the first decrement stays, and the line after
	// the failure is never applied.
	_, saleRows, err := store.ReadAll(ctx, rowstore.TableSales)
	require.NoError(t, err)
	assert.Len(t, saleRows, 1)

	_, invRows, err := store.ReadAll(ctx, rowstore.TableInventory)
	require.NoError(t, err)
	assert.Equal(t, "8", invRows[0][5])
	assert.Equal(t, "24", invRows[1][5])
}

func TestSellBulkRepeatedLinesComposeAgainstStock(t *testing.T) {
	store := seededStore(t)
	engine := newEngine(t, store)
	ctx := context.Background()

	_, err := engine.Sell(ctx, Request{
		Quantity:      2,
		AppliedPrice:  decPtr("10"),
		PaymentMethod: enums.PaymentMethodCash,
		BulkLines: []BulkLine{
			{ItemID: "VT-A", Quantity: 6},
			{ItemID: "VT-A", Quantity: 6},
		},
	})
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeInsufficientStock))

	_, invRows, err := store.ReadAll(ctx, rowstore.TableInventory)
	require.NoError(t, err)
	assert.Equal(t, "4", invRows[0][5], "first line's decrement is already written")
}

func decPtr(value string) *decimal.Decimal {
	d := decimal.RequireFromString(value)
	return &d
}
