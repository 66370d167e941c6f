package inventory

import (
	"context"
	"fmt"
	"strconv"

	"github.com/migueldelacruz-dev/vapetrack-backend/internal/rowstore"
	pkgerrors "github.com/migueldelacruz-dev/vapetrack-backend/pkg/errors"
)

// Index is an in-memory projection of the Inventory table, keyed by item
// identifier. It is built fresh from the store at the start of every
// operation and discarded afterwards; nothing caches it across requests
// because the sheet may change underneath.
type Index struct {
	items []*Item
	byID  map[string]*Item
}

// Load reads the Inventory table and projects it into an Index.
func Load(ctx context.Context, store rowstore.Store) (*Index, error) {
	_, rows, err := store.ReadAll(ctx, rowstore.TableInventory)
	if err != nil {
		return nil, err
	}
	return buildIndex(rows), nil
}

func buildIndex(rows [][]string) *Index {
	index := &Index{byID: make(map[string]*Item, len(rows))}
	for i, row := range rows {
		item := itemFromRow(row, i)
		ptr := &item
		index.items = append(index.items, ptr)
		if item.ID != "" {
			// first occurrence wins on duplicate ids; rows are append-ordered
			if _, exists := index.byID[item.ID]; !exists {
				index.byID[item.ID] = ptr
			}
		}
	}
	return index
}

// FindByID returns the item with the given identifier.
func (x *Index) FindByID(id string) (*Item, error) {
	if item, ok := x.byID[id]; ok {
		return item, nil
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("item %s not found", id)).
		WithDetails(map[string]any{"item_id": id})
}

// Items returns the snapshot in sheet order.
func (x *Index) Items() []Item {
	out := make([]Item, len(x.items))
	for i, item := range x.items {
		out[i] = *item
	}
	return out
}

// FilterByCategory returns the items in the given category.
func (x *Index) FilterByCategory(category string) []Item {
	var out []Item
	for _, item := range x.items {
		if string(item.Category) == category {
			out = append(out, *item)
		}
	}
	return out
}

// LowStock returns the items at or below the given threshold.
func (x *Index) LowStock(threshold int) []Item {
	var out []Item
	for _, item := range x.items {
		if item.Quantity <= threshold {
			out = append(out, *item)
		}
	}
	return out
}

// QuantityWrite is the single-cell store write realizing a quantity change.
type QuantityWrite struct {
	ItemID      string
	NewQuantity int
	Address     string
}

// Values returns the write in store row form.
func (w QuantityWrite) Values() [][]string {
	return [][]string{{strconv.Itoa(w.NewQuantity)}}
}

// ApplyDelta validates a quantity change against the snapshot, mutates the
// snapshot (so later lines of the same request compose), and returns the
// pending store write. It never touches the store itself. A delta that would
// drive the quantity negative is rejected before any write exists.
func (x *Index) ApplyDelta(id string, delta int) (QuantityWrite, error) {
	item, err := x.FindByID(id)
	if err != nil {
		return QuantityWrite{}, err
	}
	newQty := item.Quantity + delta
	if newQty < 0 {
		return QuantityWrite{}, pkgerrors.New(
			pkgerrors.CodeInsufficientStock,
			fmt.Sprintf("insufficient stock for %s: %d available, %d requested", item.Label(), item.Quantity, -delta),
		).WithDetails(map[string]any{
			"item_id":   item.ID,
			"available": item.Quantity,
			"requested": -delta,
		})
	}
	item.Quantity = newQty
	return QuantityWrite{
		ItemID:      item.ID,
		NewQuantity: newQty,
		Address:     item.QuantityCell(),
	}, nil
}
