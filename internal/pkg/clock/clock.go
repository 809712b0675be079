// Package clock abstracts the current time so stored timestamps and history
// expiry can be pinned in tests
package clock

import "time"

//go:generate mockgen -destination=mock/mock.go -package=mockclock github.com/KirkDiggler/rpg-spellchain/internal/pkg/clock Clock

// Clock reports the current time
type Clock interface {
	Now() time.Time
}

// System reads the wall clock. Times are UTC, truncated to milliseconds to
// match what the stores persist.
type System struct{}

// Now returns the current UTC time
func (System) Now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

// New returns the system clock
func New() Clock {
	return System{}
}
