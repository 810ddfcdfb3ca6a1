package id

import (
	"github.com/oklog/ulid/v2"
)

// New generates a new ULID string. ulid.Make draws from a process-wide
// monotonic entropy source, so IDs minted in the same millisecond still sort
// in creation order.
func New() string {
	return ulid.Make().String()
}
