package loans

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/migueldelacruz-dev/vapetrack-backend/internal/rowstore"
	"github.com/migueldelacruz-dev/vapetrack-backend/pkg/enums"
)

// Loans table columns.
const (
	colLoanID = iota
	colSaleID
	colCustomer
	colItemName
	colAmount
	colDateIssued
	colDueDate
	colStatus
	colDatePaid
	colNotes
)

// Column letters for the in-place status and due-date writes.
const (
	dueDateColumn  = "G"
	statusColumn   = "H"
	datePaidColumn = "I"
)

// Loan is one credit-sale ledger entry. The amount is fixed at creation and
// never recalculated.
type Loan struct {
	ID         string           `json:"loan_id"`
	SaleID     string           `json:"sale_id"`
	Customer   string           `json:"customer,omitempty"`
	ItemName   string           `json:"item_name"`
	Amount     decimal.Decimal  `json:"amount"`
	DateIssued string           `json:"date_issued"`
	DueDate    string           `json:"due_date,omitempty"`
	Status     enums.LoanStatus `json:"status"`
	DatePaid   string           `json:"date_paid,omitempty"`
	Notes      string           `json:"notes,omitempty"`

	// Row is the loan's 1-based sheet row within the snapshot it was read
	// from; zero for loans not yet persisted.
	Row int `json:"-"`
}

// ToRow serializes the loan in table column order.
func (l Loan) ToRow() []string {
	return []string{
		l.ID,
		l.SaleID,
		l.Customer,
		l.ItemName,
		l.Amount.StringFixed(2),
		l.DateIssued,
		l.DueDate,
		l.Status.String(),
		l.DatePaid,
		l.Notes,
	}
}

func loanFromRow(row []string, index int) Loan {
	loan := Loan{
		ID:         cell(row, colLoanID),
		SaleID:     cell(row, colSaleID),
		Customer:   cell(row, colCustomer),
		ItemName:   cell(row, colItemName),
		DateIssued: cell(row, colDateIssued),
		DueDate:    cell(row, colDueDate),
		Status:     enums.LoanStatus(cell(row, colStatus)),
		DatePaid:   cell(row, colDatePaid),
		Notes:      cell(row, colNotes),
		Row:        rowstore.DataRowNumber(index),
	}
	if amount, err := decimal.NewFromString(strings.TrimSpace(cell(row, colAmount))); err == nil {
		loan.Amount = amount
	}
	return loan
}

func cell(row []string, index int) string {
	if index < len(row) {
		return row[index]
	}
	return ""
}
