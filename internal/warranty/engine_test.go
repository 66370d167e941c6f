package warranty

import (
	"context"
	"strings"
	"testing"

	"github.com/migueldelacruz-dev/vapetrack-backend/internal/rowstore"
	pkgerrors "github.com/migueldelacruz-dev/vapetrack-backend/pkg/errors"
)

func seededEngine(t *testing.T) (*Engine, *rowstore.Memory) {
	t.Helper()
	store := rowstore.NewMemory()
	ctx := context.Background()
	if err := rowstore.EnsureAll(ctx, store); err != nil {
		t.Fatalf("ensure tables: %v", err)
	}
	rows := [][]string{
		{"VT-A", "Device", "Argus P1", "v2", "", "10", "1200", "2026-08-01", "", "800"},
		{"VT-B", "JuiceOrPod", "Nasty Juice", "", "Mango Ice", "2", "350", "2026-08-02", "", ""},
	}
	for _, row := range rows {
		if err := store.AppendRow(ctx, rowstore.TableInventory, row); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	engine, err := NewEngine(store, nil, nil, nil)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine, store
}

func TestProcessClaimDecrementsStockAndAppendsRecord(t *testing.T) {
	engine, store := seededEngine(t)
	ctx := context.Background()

	receipt, err := engine.ProcessClaim(ctx, ClaimInput{
		ProductID: "VT-A",
		Quantity:  2,
		Reason:    "dead on arrival",
		Customer:  "Miguel",
	})
	if err != nil {
		t.Fatalf("process claim: %v", err)
	}
	if !strings.HasPrefix(receipt.ClaimID, "W") {
		t.Fatalf("claim id must carry the W prefix, got %q", receipt.ClaimID)
	}
	if receipt.NewQuantity != 8 {
		t.Fatalf("expected new quantity 8, got %d", receipt.NewQuantity)
	}

	_, invRows, err := store.ReadAll(ctx, rowstore.TableInventory)
	if err != nil {
		t.Fatalf("read inventory: %v", err)
	}
	if invRows[0][5] != "8" {
		t.Fatalf("inventory not decremented: %v", invRows[0])
	}

	claims, err := engine.ListClaims(ctx)
	if err != nil {
		t.Fatalf("list claims: %v", err)
	}
	if len(claims) != 1 {
		t.Fatalf("expected 1 claim, got %d", len(claims))
	}
	claim := claims[0]
	if claim.ID != receipt.ClaimID || claim.ProductID != "VT-A" {
		t.Fatalf("unexpected claim %+v", claim)
	}
	if claim.ProductName != "Argus P1 v2" {
		t.Fatalf("product name must be denormalized at claim time, got %q", claim.ProductName)
	}
	if claim.Status.String() != "Completed" {
		t.Fatalf("expected Completed, got %s", claim.Status)
	}
}

func TestProcessClaimInsufficientStockWritesNothing(t *testing.T) {
	engine, store := seededEngine(t)
	ctx := context.Background()

	_, err := engine.ProcessClaim(ctx, ClaimInput{ProductID: "VT-B", Quantity: 3})
	if !pkgerrors.IsCode(err, pkgerrors.CodeInsufficientStock) {
		t.Fatalf("expected INSUFFICIENT_STOCK, got %v", err)
	}

	_, invRows, err := store.ReadAll(ctx, rowstore.TableInventory)
	if err != nil {
		t.Fatalf("read inventory: %v", err)
	}
	if invRows[1][5] != "2" {
		t.Fatalf("failed claim must not touch inventory: %v", invRows[1])
	}
	_, claimRows, err := store.ReadAll(ctx, rowstore.TableWarranty)
	if err != nil {
		t.Fatalf("read warranty: %v", err)
	}
	if len(claimRows) != 0 {
		t.Fatalf("failed claim must not append a record, got %d rows", len(claimRows))
	}
}

func TestProcessClaimUnknownProduct(t *testing.T) {
	engine, _ := seededEngine(t)

	_, err := engine.ProcessClaim(context.Background(), ClaimInput{ProductID: "VT-404", Quantity: 1})
	if !pkgerrors.IsCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

func TestProcessClaimValidation(t *testing.T) {
	engine, _ := seededEngine(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		input ClaimInput
	}{
		{"missing product id", ClaimInput{Quantity: 1}},
		{"zero quantity", ClaimInput{ProductID: "VT-A", Quantity: 0}},
		{"negative quantity", ClaimInput{ProductID: "VT-A", Quantity: -1}},
		{"bad date", ClaimInput{ProductID: "VT-A", Quantity: 1, Date: "31/08/2026"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := engine.ProcessClaim(ctx, tc.input)
			if !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
				t.Fatalf("expected VALIDATION_ERROR, got %v", err)
			}
		})
	}
}
