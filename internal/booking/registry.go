package booking

import (
	"errors"
	"fmt"
	"strings"

	"github.com/kingrea/gic-cinemas/internal/seat"
	"github.com/kingrea/gic-cinemas/internal/theater"
)

const (
	DefaultIDPrefix = "GIC"
	DefaultIDDigits = 4
)

var (
	// ErrNotFound is returned by Lookup for unknown ids.
	ErrNotFound = errors.New("booking: not found")
	// ErrDuplicateID means Commit was called twice for the same id.
	ErrDuplicateID = errors.New("booking: id already committed")
	// ErrNoSeats means Commit was called with an empty seat list.
	ErrNoSeats = errors.New("booking: at least one seat is required")
)

// Booking is a committed reservation. Its seats never change.
type Booking struct {
	id    string
	seats []seat.Coordinate
}

func (b Booking) ID() string { return b.id }

// Seats returns a copy of the seats in allocation order.
func (b Booking) Seats() []seat.Coordinate {
	out := make([]seat.Coordinate, len(b.seats))
	copy(out, b.seats)
	return out
}

func (b Booking) Codes() []string { return seat.Codes(b.seats) }
func (b Booking) Len() int        { return len(b.seats) }

// RegistryOption customizes a Registry during construction.
type RegistryOption func(*Registry)

// WithIDPrefix overrides the booking id prefix.
func WithIDPrefix(prefix string) RegistryOption {
	return func(r *Registry) {
		if p := strings.ToUpper(strings.TrimSpace(prefix)); p != "" {
			r.prefix = p
		}
	}
}

// WithIDDigits overrides how many digits the sequence is padded to.
func WithIDDigits(digits int) RegistryOption {
	return func(r *Registry) {
		if digits > 0 {
			r.digits = digits
		}
	}
}

// Registry owns committed bookings and the id sequence. It is the only
// component that writes to the theater grid.
type Registry struct {
	theater  *theater.Theater
	bookings map[string]Booking
	order    []string
	next     int
	prefix   string
	digits   int
}

// NewRegistry returns an empty registry bound to t.
func NewRegistry(t *theater.Theater, opts ...RegistryOption) *Registry {
	r := &Registry{
		theater:  t,
		bookings: map[string]Booking{},
		next:     1,
		prefix:   DefaultIDPrefix,
		digits:   DefaultIDDigits,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Theater returns the grid this registry commits into.
func (r *Registry) Theater() *theater.Theater {
	return r.theater
}

// IDFormat returns the prefix and zero-padding width used by MintID.
func (r *Registry) IDFormat() (prefix string, digits int) {
	return r.prefix, r.digits
}

// MintID returns the next booking id and advances the sequence, whether or
// not the id is ever committed.
func (r *Registry) MintID() string {
	id := fmt.Sprintf("%s%0*d", r.prefix, r.digits, r.next)
	r.next++
	return id
}

// Commit writes seats to the grid under id and records the booking. Nothing
// is written when any precondition fails.
func (r *Registry) Commit(id string, seats []seat.Coordinate) (Booking, error) {
	id = normalizeID(id)
	if len(seats) == 0 {
		return Booking{}, fmt.Errorf("booking: commit %s: %w", id, ErrNoSeats)
	}
	if _, exists := r.bookings[id]; exists {
		return Booking{}, fmt.Errorf("booking: commit %s: %w", id, ErrDuplicateID)
	}
	if err := r.theater.Assign(id, seats); err != nil {
		return Booking{}, fmt.Errorf("booking: commit %s: %w", id, err)
	}
	b := Booking{id: id, seats: append([]seat.Coordinate(nil), seats...)}
	r.bookings[id] = b
	r.order = append(r.order, id)
	return b, nil
}

// Lookup returns the booking registered under id.
func (r *Registry) Lookup(id string) (Booking, error) {
	id = normalizeID(id)
	b, ok := r.bookings[id]
	if !ok {
		return Booking{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return b, nil
}

// IDs lists committed booking ids in commit order.
func (r *Registry) IDs() []string {
	return append([]string(nil), r.order...)
}

func (r *Registry) Len() int {
	return len(r.bookings)
}

func normalizeID(id string) string {
	return strings.ToUpper(strings.TrimSpace(id))
}
