package enums

// PaymentMethod describes how a buyer settled a sale. The set is open:
// unknown values are recorded verbatim, only Loan changes behavior.
type PaymentMethod string

const (
	PaymentMethodCash  PaymentMethod = "Cash"
	PaymentMethodGCash PaymentMethod = "GCash"
	PaymentMethodMaya  PaymentMethod = "Maya"
	PaymentMethodLoan  PaymentMethod = "Loan"
)

var knownPaymentMethods = []PaymentMethod{
	PaymentMethodCash,
	PaymentMethodGCash,
	PaymentMethodMaya,
	PaymentMethodLoan,
}

// String implements fmt.Stringer.
func (p PaymentMethod) String() string {
	return string(p)
}

// IsKnown reports whether the value is one of the recognized methods.
func (p PaymentMethod) IsKnown() bool {
	for _, candidate := range knownPaymentMethods {
		if candidate == p {
			return true
		}
	}
	return false
}

// IsLoan reports whether the sale must open a loan ledger entry.
func (p PaymentMethod) IsLoan() bool {
	return p == PaymentMethodLoan
}
