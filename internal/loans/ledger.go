package loans

import (
	"context"
	"fmt"

	"github.com/migueldelacruz-dev/vapetrack-backend/internal/dates"
	"github.com/migueldelacruz-dev/vapetrack-backend/internal/rowstore"
	"github.com/migueldelacruz-dev/vapetrack-backend/pkg/enums"
	pkgerrors "github.com/migueldelacruz-dev/vapetrack-backend/pkg/errors"
	"github.com/migueldelacruz-dev/vapetrack-backend/pkg/logger"
)

// Ledger reads and mutates the append-only Loans table. New entries are
// appended by the sale engine; the ledger only flips status and dates in
// place.
type Ledger struct {
	store rowstore.Store
	logg  *logger.Logger
}

// NewLedger builds a loan ledger over the given row store.
func NewLedger(store rowstore.Store, logg *logger.Logger) (*Ledger, error) {
	if store == nil {
		return nil, fmt.Errorf("row store required")
	}
	return &Ledger{store: store, logg: logg}, nil
}

// List returns every loan in append order.
func (l *Ledger) List(ctx context.Context) ([]Loan, error) {
	_, rows, err := l.store.ReadAll(ctx, rowstore.TableLoans)
	if err != nil {
		return nil, err
	}
	loans := make([]Loan, 0, len(rows))
	for i, row := range rows {
		loans = append(loans, loanFromRow(row, i))
	}
	return loans, nil
}

// MarkPaid flips a loan to Paid and stamps the payment date, writing only
// the status and date-paid cell span. A loan already Paid keeps its original
// payment date; the repeat call rewrites the same values, which makes it a
// safe no-op.
func (l *Ledger) MarkPaid(ctx context.Context, loanID string) (*Loan, error) {
	loan, err := l.find(ctx, loanID)
	if err != nil {
		return nil, err
	}

	if loan.Status != enums.LoanStatusPaid {
		loan.Status = enums.LoanStatusPaid
		loan.DatePaid = dates.Today()
	}

	address := rowstore.RowSpanAddress(statusColumn, datePaidColumn, loan.Row)
	values := [][]string{{loan.Status.String(), loan.DatePaid}}
	if err := l.store.WriteRange(ctx, rowstore.TableLoans, address, values); err != nil {
		return nil, err
	}

	if l.logg != nil {
		logCtx := l.logg.WithFields(ctx, map[string]any{"loan_id": loan.ID, "sale_id": loan.SaleID})
		l.logg.Info(logCtx, "loan marked paid")
	}
	return loan, nil
}

// SetDueDate stamps or replaces a loan's due date.
func (l *Ledger) SetDueDate(ctx context.Context, loanID, dueDate string) (*Loan, error) {
	normalized, err := dates.Normalize(dueDate)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid due date")
	}

	loan, err := l.find(ctx, loanID)
	if err != nil {
		return nil, err
	}

	loan.DueDate = normalized
	address := rowstore.CellAddress(dueDateColumn, loan.Row)
	if err := l.store.WriteRange(ctx, rowstore.TableLoans, address, [][]string{{normalized}}); err != nil {
		return nil, err
	}
	return loan, nil
}

func (l *Ledger) find(ctx context.Context, loanID string) (*Loan, error) {
	loans, err := l.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range loans {
		if loans[i].ID == loanID {
			return &loans[i], nil
		}
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("loan %s not found", loanID)).
		WithDetails(map[string]any{"loan_id": loanID})
}
