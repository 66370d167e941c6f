package sales

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/migueldelacruz-dev/vapetrack-backend/pkg/enums"
)

// BulkItemID is the sentinel recorded in a bulk sale's item-id column; the
// record covers many items, so no single identifier applies.
const BulkItemID = "BULK"

// BulkLine is one inventory line of a bulk sale.
type BulkLine struct {
	ItemID   string
	Quantity int
}

// Request is a normalized sale request. Exactly one of ItemID or BulkLines
// is set; numeric fields have already been defensively parsed at the
// boundary.
type Request struct {
	ItemID        string
	Quantity      int
	AppliedPrice  *decimal.Decimal
	PricePerUnit  *decimal.Decimal
	PaymentMethod enums.PaymentMethod
	Customer      string
	Date          string
	Notes         string
	BulkLines     []BulkLine
}

// IsBulk reports whether the request covers multiple inventory lines.
func (r Request) IsBulk() bool {
	return len(r.BulkLines) > 0
}

// Receipt confirms a completed sale.
type Receipt struct {
	SaleID       string          `json:"sale_id"`
	SaleType     enums.SaleType  `json:"sale_type"`
	Total        decimal.Decimal `json:"total"`
	LoanID       string          `json:"loan_id,omitempty"`
	NewQuantity  *int            `json:"new_quantity,omitempty"`
	SkippedItems []string        `json:"skipped_items,omitempty"`
}

// Sales table columns.
const (
	colSaleID = iota
	colItemID
	colItemName
	colCategory
	colQuantitySold
	colPricePerUnit
	colTotal
	colDate
	colCustomer
	colSaleType
	colPaymentMethod
	colNotes
)

// Record is one persisted sale row.
type Record struct {
	SaleID        string              `json:"sale_id"`
	ItemID        string              `json:"item_id"`
	ItemName      string              `json:"item_name"`
	Category      string              `json:"category"`
	QuantitySold  int                 `json:"quantity_sold"`
	PricePerUnit  decimal.Decimal     `json:"price_per_unit"`
	Total         decimal.Decimal     `json:"total"`
	Date          string              `json:"date"`
	Customer      string              `json:"customer,omitempty"`
	SaleType      enums.SaleType      `json:"sale_type"`
	PaymentMethod enums.PaymentMethod `json:"payment_method"`
	Notes         string              `json:"notes,omitempty"`
}

func (r Record) toRow() []string {
	return []string{
		r.SaleID,
		r.ItemID,
		r.ItemName,
		r.Category,
		strconv.Itoa(r.QuantitySold),
		r.PricePerUnit.String(),
		r.Total.StringFixed(2),
		r.Date,
		r.Customer,
		r.SaleType.String(),
		r.PaymentMethod.String(),
		r.Notes,
	}
}

func recordFromRow(row []string) Record {
	record := Record{
		SaleID:        cell(row, colSaleID),
		ItemID:        cell(row, colItemID),
		ItemName:      cell(row, colItemName),
		Category:      cell(row, colCategory),
		Date:          cell(row, colDate),
		Customer:      cell(row, colCustomer),
		SaleType:      enums.SaleType(cell(row, colSaleType)),
		PaymentMethod: enums.PaymentMethod(cell(row, colPaymentMethod)),
		Notes:         cell(row, colNotes),
	}
	if qty, err := strconv.Atoi(strings.TrimSpace(cell(row, colQuantitySold))); err == nil {
		record.QuantitySold = qty
	}
	if price, err := decimal.NewFromString(strings.TrimSpace(cell(row, colPricePerUnit))); err == nil {
		record.PricePerUnit = price
	}
	if total, err := decimal.NewFromString(strings.TrimSpace(cell(row, colTotal))); err == nil {
		record.Total = total
	}
	return record
}

func cell(row []string, index int) string {
	if index < len(row) {
		return row[index]
	}
	return ""
}
