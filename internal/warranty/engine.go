package warranty

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/migueldelacruz-dev/vapetrack-backend/internal/dates"
	"github.com/migueldelacruz-dev/vapetrack-backend/internal/identifier"
	"github.com/migueldelacruz-dev/vapetrack-backend/internal/inventory"
	"github.com/migueldelacruz-dev/vapetrack-backend/internal/itemlock"
	"github.com/migueldelacruz-dev/vapetrack-backend/internal/rowstore"
	"github.com/migueldelacruz-dev/vapetrack-backend/pkg/enums"
	pkgerrors "github.com/migueldelacruz-dev/vapetrack-backend/pkg/errors"
	"github.com/migueldelacruz-dev/vapetrack-backend/pkg/logger"
	"github.com/migueldelacruz-dev/vapetrack-backend/pkg/metrics"
)

// Warranty table columns.
const (
	colClaimID = iota
	colDate
	colProductID
	colProductName
	colQuantity
	colReason
	colCustomer
	colNotes
	colStatus
)

// Claim is one warranty replacement record. The product name is a
// denormalized copy taken at claim time; claims stay readable even if the
// inventory row is later edited.
type Claim struct {
	ID          string            `json:"claim_id"`
	Date        string            `json:"date"`
	ProductID   string            `json:"product_id"`
	ProductName string            `json:"product_name"`
	Quantity    int               `json:"quantity"`
	Reason      string            `json:"reason,omitempty"`
	Customer    string            `json:"customer,omitempty"`
	Notes       string            `json:"notes,omitempty"`
	Status      enums.ClaimStatus `json:"status"`
}

func (c Claim) toRow() []string {
	return []string{
		c.ID,
		c.Date,
		c.ProductID,
		c.ProductName,
		strconv.Itoa(c.Quantity),
		c.Reason,
		c.Customer,
		c.Notes,
		c.Status.String(),
	}
}

func claimFromRow(row []string) Claim {
	claim := Claim{
		ID:          cell(row, colClaimID),
		Date:        cell(row, colDate),
		ProductID:   cell(row, colProductID),
		ProductName: cell(row, colProductName),
		Reason:      cell(row, colReason),
		Customer:    cell(row, colCustomer),
		Notes:       cell(row, colNotes),
		Status:      enums.ClaimStatus(cell(row, colStatus)),
	}
	if qty, err := strconv.Atoi(strings.TrimSpace(cell(row, colQuantity))); err == nil {
		claim.Quantity = qty
	}
	return claim
}

func cell(row []string, index int) string {
	if index < len(row) {
		return row[index]
	}
	return ""
}

// ClaimInput is a normalized warranty claim request.
type ClaimInput struct {
	ProductID string
	Quantity  int
	Reason    string
	Customer  string
	Notes     string
	Date      string
}

// Receipt confirms a processed claim.
type Receipt struct {
	ClaimID     string `json:"claim_id"`
	NewQuantity int    `json:"new_quantity"`
}

// Engine validates and records warranty replacements. It is the sale
// engine's simpler sibling: same fresh snapshot, same validate-then-write
// order (claim record before inventory decrement), same accepted risk that
// a failure between the two leaves a recorded claim with stale stock.
type Engine struct {
	store   rowstore.Store
	locks   *itemlock.Map
	logg    *logger.Logger
	metrics *metrics.SaleMetrics
}

// NewEngine builds a warranty engine over the given row store.
func NewEngine(store rowstore.Store, locks *itemlock.Map, logg *logger.Logger, m *metrics.SaleMetrics) (*Engine, error) {
	if store == nil {
		return nil, fmt.Errorf("row store required")
	}
	if locks == nil {
		locks = itemlock.NewMap()
	}
	return &Engine{store: store, locks: locks, logg: logg, metrics: m}, nil
}

// ProcessClaim validates the claim against current stock, appends the claim
// record, and decrements the product's quantity.
func (e *Engine) ProcessClaim(ctx context.Context, input ClaimInput) (*Receipt, error) {
	receipt, err := e.processClaim(ctx, input)
	if err != nil {
		e.metrics.IncClaimFailure(failureReason(err))
		return nil, err
	}
	e.metrics.IncClaim(enums.ClaimStatusCompleted.String())
	return receipt, nil
}

func (e *Engine) processClaim(ctx context.Context, input ClaimInput) (*Receipt, error) {
	if input.ProductID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	if input.Quantity <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "replacement quantity must be a positive integer")
	}
	date, err := dates.Normalize(input.Date)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid claim date")
	}

	unlock := e.locks.Lock(input.ProductID)
	defer unlock()

	index, err := inventory.Load(ctx, e.store)
	if err != nil {
		return nil, err
	}
	item, err := index.FindByID(input.ProductID)
	if err != nil {
		return nil, err
	}

	write, err := index.ApplyDelta(item.ID, -input.Quantity)
	if err != nil {
		return nil, err
	}

	claim := Claim{
		ID:          identifier.New("W"),
		Date:        date,
		ProductID:   item.ID,
		ProductName: item.Label(),
		Quantity:    input.Quantity,
		Reason:      input.Reason,
		Customer:    input.Customer,
		Notes:       input.Notes,
		Status:      enums.ClaimStatusCompleted,
	}
	if err := e.store.AppendRow(ctx, rowstore.TableWarranty, claim.toRow()); err != nil {
		return nil, err
	}

	if err := e.store.WriteRange(ctx, rowstore.TableInventory, write.Address, write.Values()); err != nil {
		code := pkgerrors.CodeDependency
		if typed := pkgerrors.As(err); typed != nil {
			code = typed.Code()
		}
		return nil, pkgerrors.Wrap(code, err, fmt.Sprintf("claim %s recorded but inventory update for %s not written", claim.ID, item.ID)).
			WithDetails(map[string]any{"claim_id": claim.ID, "step": "inventory decrement"})
	}

	if e.logg != nil {
		logCtx := e.logg.WithFields(ctx, map[string]any{"claim_id": claim.ID, "item_id": item.ID})
		e.logg.Info(logCtx, "warranty claim processed")
	}
	return &Receipt{ClaimID: claim.ID, NewQuantity: write.NewQuantity}, nil
}

// ListClaims returns every persisted claim in append order.
func (e *Engine) ListClaims(ctx context.Context) ([]Claim, error) {
	_, rows, err := e.store.ReadAll(ctx, rowstore.TableWarranty)
	if err != nil {
		return nil, err
	}
	claims := make([]Claim, 0, len(rows))
	for _, row := range rows {
		claims = append(claims, claimFromRow(row))
	}
	return claims, nil
}

func failureReason(err error) string {
	if typed := pkgerrors.As(err); typed != nil {
		return string(typed.Code())
	}
	return string(pkgerrors.CodeInternal)
}
