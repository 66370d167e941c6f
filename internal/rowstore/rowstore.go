package rowstore

import (
	"context"
	"fmt"
	"strings"
)

// Store is the row-oriented table contract the engines write through. The
// backing service is non-transactional: every call is a discrete read or
// write, concurrent appends from independent callers are unordered relative
// to each other, and there is no cross-call locking. Adapter failures
// surface as DEPENDENCY_ERROR coded errors; retries are a caller concern.
type Store interface {
	// EnsureTable creates the named table with header as its first row if it
	// does not exist yet. Idempotent; never overwrites an existing header.
	EnsureTable(ctx context.Context, name string, header []string) error
	// ReadAll returns the header row and all data rows in append order.
	ReadAll(ctx context.Context, name string) (header []string, rows [][]string, err error)
	// AppendRow appends one record to the end of the table.
	AppendRow(ctx context.Context, name string, row []string) error
	// WriteRange overwrites the rectangular region at the table-relative
	// A1-style address, e.g. "F12" or "H5:I5".
	WriteRange(ctx context.Context, name string, address string, rows [][]string) error
}

// Pinger exposes the health-check surface of a store implementation.
type Pinger interface {
	Ping(ctx context.Context) error
}

const (
	TableInventory = "Inventory"
	TableSales     = "Sales"
	TableLoans     = "Loans"
	TableWarranty  = "Warranty"
)

var (
	HeaderInventory = []string{"ID", "Category", "Item Name", "Version", "Flavor", "Quantity", "Price", "Date Added", "Notes", "Cost"}
	HeaderSales     = []string{"Sale ID", "Item ID", "Item Name", "Category", "Quantity Sold", "Price Per Unit", "Total", "Date", "Customer", "Sale Type", "Payment Method", "Notes"}
	HeaderLoans     = []string{"Loan ID", "Sale ID", "Customer", "Item Name", "Amount", "Date Issued", "Due Date", "Status", "Date Paid", "Notes"}
	HeaderWarranty  = []string{"Claim ID", "Date", "Product ID", "Product Name", "Quantity", "Reason", "Customer", "Notes", "Status"}
)

// Tables enumerates every table the service owns, paired with its header.
func Tables() map[string][]string {
	return map[string][]string{
		TableInventory: HeaderInventory,
		TableSales:     HeaderSales,
		TableLoans:     HeaderLoans,
		TableWarranty:  HeaderWarranty,
	}
}

// EnsureAll creates every owned table that does not exist yet.
func EnsureAll(ctx context.Context, store Store) error {
	for name, header := range Tables() {
		if err := store.EnsureTable(ctx, name, header); err != nil {
			return fmt.Errorf("ensure table %s: %w", name, err)
		}
	}
	return nil
}

// DataRowNumber maps a zero-based data row index to its 1-based sheet row
// number: the header occupies row 1, data starts at row 2. Rows are never
// reordered or compacted, so the mapping holds for the lifetime of a
// snapshot.
func DataRowNumber(index int) int {
	return index + 2
}

// CellAddress builds a single-cell A1 address.
func CellAddress(column string, row int) string {
	return fmt.Sprintf("%s%d", column, row)
}

// RowSpanAddress builds a one-row span address, e.g. "H5:I5".
func RowSpanAddress(startColumn, endColumn string, row int) string {
	return fmt.Sprintf("%s%d:%s%d", startColumn, row, endColumn, row)
}

// ColumnLetter converts a zero-based column index to its letter form.
func ColumnLetter(index int) string {
	letters := ""
	for index >= 0 {
		letters = string(rune('A'+index%26)) + letters
		index = index/26 - 1
	}
	return letters
}

// columnIndex converts a column letter form back to a zero-based index.
func columnIndex(letters string) (int, error) {
	letters = strings.ToUpper(strings.TrimSpace(letters))
	if letters == "" {
		return 0, fmt.Errorf("empty column reference")
	}
	index := 0
	for _, r := range letters {
		if r < 'A' || r > 'Z' {
			return 0, fmt.Errorf("invalid column reference %q", letters)
		}
		index = index*26 + int(r-'A') + 1
	}
	return index - 1, nil
}

type cellRef struct {
	col int
	row int
}

// parseAddress decodes an A1-style address (single cell or rectangular
// range) into zero-based start/end cell references.
func parseAddress(address string) (start, end cellRef, err error) {
	parts := strings.Split(strings.TrimSpace(address), ":")
	switch len(parts) {
	case 1:
		start, err = parseCell(parts[0])
		if err != nil {
			return cellRef{}, cellRef{}, err
		}
		return start, start, nil
	case 2:
		start, err = parseCell(parts[0])
		if err != nil {
			return cellRef{}, cellRef{}, err
		}
		end, err = parseCell(parts[1])
		if err != nil {
			return cellRef{}, cellRef{}, err
		}
		if end.row < start.row || end.col < start.col {
			return cellRef{}, cellRef{}, fmt.Errorf("inverted range %q", address)
		}
		return start, end, nil
	}
	return cellRef{}, cellRef{}, fmt.Errorf("malformed address %q", address)
}

func parseCell(cell string) (cellRef, error) {
	cell = strings.TrimSpace(cell)
	split := 0
	for split < len(cell) && cell[split] >= 'A' && cell[split] <= 'Z' {
		split++
	}
	if split == 0 || split == len(cell) {
		return cellRef{}, fmt.Errorf("malformed cell %q", cell)
	}
	col, err := columnIndex(cell[:split])
	if err != nil {
		return cellRef{}, err
	}
	row := 0
	for _, r := range cell[split:] {
		if r < '0' || r > '9' {
			return cellRef{}, fmt.Errorf("malformed cell %q", cell)
		}
		row = row*10 + int(r-'0')
	}
	if row < 1 {
		return cellRef{}, fmt.Errorf("row out of range in %q", cell)
	}
	return cellRef{col: col, row: row - 1}, nil
}
