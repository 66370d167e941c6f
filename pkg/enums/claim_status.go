package enums

// ClaimStatus is the lifecycle state of a warranty claim. Claims are
// resolved on the spot, so creation fixes the status to Completed.
type ClaimStatus string

const (
	ClaimStatusCompleted ClaimStatus = "Completed"
)

// String implements fmt.Stringer.
func (c ClaimStatus) String() string {
	return string(c)
}
