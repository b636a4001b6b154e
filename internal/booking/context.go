// Package booking turns allocation proposals into committed reservations.
//
// A Context is created once per process and owns the theater grid and the
// registry of bookings. Front ends talk to it through a Desk, which previews
// allocations and drives each transaction as a Draft until it is confirmed or
// abandoned.
package booking

import (
	"fmt"

	"github.com/kingrea/gic-cinemas/internal/theater"
)

// Context is the durable application state: one theater and its bookings.
type Context struct {
	Theater  *theater.Theater
	Registry *Registry
}

// NewContext builds the theater and an empty registry for it.
func NewContext(title string, rows, cols int, opts ...RegistryOption) (*Context, error) {
	t, err := theater.New(title, rows, cols)
	if err != nil {
		return nil, fmt.Errorf("booking: new context: %w", err)
	}
	return &Context{Theater: t, Registry: NewRegistry(t, opts...)}, nil
}
