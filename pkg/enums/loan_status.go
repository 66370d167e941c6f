package enums

import "fmt"

// LoanStatus tracks a credit sale's repayment state. The only legal
// transition is Unpaid to Paid.
type LoanStatus string

const (
	LoanStatusUnpaid LoanStatus = "Unpaid"
	LoanStatusPaid   LoanStatus = "Paid"
)

// String implements fmt.Stringer.
func (l LoanStatus) String() string {
	return string(l)
}

// IsValid reports whether the value is a known LoanStatus.
func (l LoanStatus) IsValid() bool {
	return l == LoanStatusUnpaid || l == LoanStatusPaid
}

// ParseLoanStatus converts raw input into a LoanStatus.
func ParseLoanStatus(value string) (LoanStatus, error) {
	switch LoanStatus(value) {
	case LoanStatusUnpaid:
		return LoanStatusUnpaid, nil
	case LoanStatusPaid:
		return LoanStatusPaid, nil
	}
	return "", fmt.Errorf("invalid loan status %q", value)
}
