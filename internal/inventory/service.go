package inventory

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/migueldelacruz-dev/vapetrack-backend/internal/dates"
	"github.com/migueldelacruz-dev/vapetrack-backend/internal/identifier"
	"github.com/migueldelacruz-dev/vapetrack-backend/internal/rowstore"
	"github.com/migueldelacruz-dev/vapetrack-backend/pkg/enums"
	pkgerrors "github.com/migueldelacruz-dev/vapetrack-backend/pkg/errors"
	"github.com/migueldelacruz-dev/vapetrack-backend/pkg/logger"
)

// Service exposes the inventory read and create operations.
type Service interface {
	List(ctx context.Context, category string) ([]Item, error)
	LowStock(ctx context.Context) ([]Item, error)
	Add(ctx context.Context, input AddItemInput) (*Item, error)
}

type service struct {
	store     rowstore.Store
	logg      *logger.Logger
	threshold int
}

// NewService builds an inventory service over the given row store.
func NewService(store rowstore.Store, logg *logger.Logger, lowStockThreshold int) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("row store required")
	}
	if lowStockThreshold < 0 {
		lowStockThreshold = 0
	}
	return &service{store: store, logg: logg, threshold: lowStockThreshold}, nil
}

// AddItemInput captures a new inventory record. The identifier is
// caller-generated (the UI stamps one per form submit); a blank identifier
// gets a server-side time-based one.
type AddItemInput struct {
	ID       string
	Category enums.Category
	Name     string
	Version  string
	Flavor   string
	Quantity int
	Price    decimal.Decimal
	Cost     *decimal.Decimal
	Date     string
	Notes    string
}

func (s *service) List(ctx context.Context, category string) ([]Item, error) {
	index, err := Load(ctx, s.store)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(category) == "" {
		return index.Items(), nil
	}
	return index.FilterByCategory(category), nil
}

func (s *service) LowStock(ctx context.Context) ([]Item, error) {
	index, err := Load(ctx, s.store)
	if err != nil {
		return nil, err
	}
	return index.LowStock(s.threshold), nil
}

func (s *service) Add(ctx context.Context, input AddItemInput) (*Item, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "item name is required")
	}
	if strings.TrimSpace(string(input.Category)) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "category is required")
	}
	if input.Category.RequiresFlavor() && strings.TrimSpace(input.Flavor) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "flavor is required for juice and pod items")
	}
	if input.Quantity < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity cannot be negative")
	}
	if input.Price.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
	}
	if input.Cost != nil && input.Cost.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cost cannot be negative")
	}
	date, err := dates.Normalize(input.Date)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid date added")
	}

	index, err := Load(ctx, s.store)
	if err != nil {
		return nil, err
	}

	id := strings.TrimSpace(input.ID)
	if id == "" {
		id = identifier.New("I")
	}
	if _, err := index.FindByID(id); err == nil {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, fmt.Sprintf("item %s already exists", id))
	}

	item := Item{
		ID:        id,
		Category:  input.Category,
		Name:      strings.TrimSpace(input.Name),
		Version:   strings.TrimSpace(input.Version),
		Flavor:    strings.TrimSpace(input.Flavor),
		Quantity:  input.Quantity,
		Price:     input.Price,
		Cost:      input.Cost,
		DateAdded: date,
		Notes:     input.Notes,
	}
	if err := s.store.AppendRow(ctx, rowstore.TableInventory, item.toRow()); err != nil {
		return nil, err
	}
	item.Row = rowstore.DataRowNumber(len(index.Items()))

	if s.logg != nil {
		s.logg.Info(s.logg.WithItemID(ctx, item.ID), "inventory item added")
	}
	return &item, nil
}
