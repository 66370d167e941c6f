package identifier

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

var (
	mu   sync.Mutex
	last int64
)

// New returns a time-based identifier with the given prefix. The millisecond
// stamp is bumped when two calls land in the same millisecond, so identifiers
// generated by one process are unique and sortable by creation time.
func New(prefix string) string {
	mu.Lock()
	now := time.Now().UnixMilli()
	if now <= last {
		now = last + 1
	}
	last = now
	mu.Unlock()
	return fmt.Sprintf("%s%d", prefix, now)
}

// ForLoan derives a loan identifier deterministically from its sale
// identifier, so the pair can be correlated without a lookup.
func ForLoan(saleID string) string {
	digits := strings.TrimLeft(saleID, "ABCDEFGHIJKLMNOPQRSTUVWXYZ")
	if digits == "" {
		digits = saleID
	}
	return "L" + digits
}
