package inventory

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/migueldelacruz-dev/vapetrack-backend/internal/rowstore"
	"github.com/migueldelacruz-dev/vapetrack-backend/pkg/enums"
)

// Inventory table columns. Positional mapping is confined to this file; the
// rest of the codebase works with the named record.
const (
	colID = iota
	colCategory
	colName
	colVersion
	colFlavor
	colQuantity
	colPrice
	colDateAdded
	colNotes
	colCost
)

// QuantityColumn is the sheet column holding the quantity cell, the only
// inventory cell the engines write in place.
const QuantityColumn = "F"

// Item is one inventory record plus the sheet row it was read from.
type Item struct {
	ID        string           `json:"id"`
	Category  enums.Category   `json:"category"`
	Name      string           `json:"name"`
	Version   string           `json:"version,omitempty"`
	Flavor    string           `json:"flavor,omitempty"`
	Quantity  int              `json:"quantity"`
	Price     decimal.Decimal  `json:"price"`
	DateAdded string           `json:"date_added,omitempty"`
	Notes     string           `json:"notes,omitempty"`
	Cost      *decimal.Decimal `json:"cost,omitempty"`

	// Row is the item's 1-based sheet row within the current snapshot.
	Row int `json:"-"`
}

// Label renders the human-readable name recorded on sales and claims.
func (i Item) Label() string {
	label := strings.TrimSpace(i.Name)
	if v := strings.TrimSpace(i.Version); v != "" {
		label += " " + v
	}
	if f := strings.TrimSpace(i.Flavor); f != "" {
		label += " (" + f + ")"
	}
	return label
}

// QuantityCell returns the A1 address of this item's quantity cell.
func (i Item) QuantityCell() string {
	return rowstore.CellAddress(QuantityColumn, i.Row)
}

// itemFromRow decodes a data row. Store rows are parsed leniently: legacy
// sheets hold blank or hand-edited numeric cells, and a single bad row must
// not make the whole table unreadable.
func itemFromRow(row []string, index int) Item {
	item := Item{
		ID:        cell(row, colID),
		Category:  enums.Category(cell(row, colCategory)),
		Name:      cell(row, colName),
		Version:   cell(row, colVersion),
		Flavor:    cell(row, colFlavor),
		DateAdded: cell(row, colDateAdded),
		Notes:     cell(row, colNotes),
		Row:       rowstore.DataRowNumber(index),
	}
	if qty, err := strconv.Atoi(strings.TrimSpace(cell(row, colQuantity))); err == nil {
		item.Quantity = qty
	}
	if price, err := decimal.NewFromString(strings.TrimSpace(cell(row, colPrice))); err == nil {
		item.Price = price
	}
	if raw := strings.TrimSpace(cell(row, colCost)); raw != "" {
		if cost, err := decimal.NewFromString(raw); err == nil {
			item.Cost = &cost
		}
	}
	return item
}

func (i Item) toRow() []string {
	cost := ""
	if i.Cost != nil {
		cost = i.Cost.String()
	}
	return []string{
		i.ID,
		i.Category.String(),
		i.Name,
		i.Version,
		i.Flavor,
		strconv.Itoa(i.Quantity),
		i.Price.String(),
		i.DateAdded,
		i.Notes,
		cost,
	}
}

func cell(row []string, index int) string {
	if index < len(row) {
		return row[index]
	}
	return ""
}
