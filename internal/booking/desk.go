package booking

import (
	"errors"
	"fmt"
	"strings"

	"github.com/kingrea/gic-cinemas/internal/allocation"
	"github.com/kingrea/gic-cinemas/internal/seat"
)

// Journal receives one line per booking event. *logbook.Logbook satisfies it.
type Journal interface {
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}

// CapacityError reports a request larger than the theater's free seats.
type CapacityError struct {
	Requested int
	Available int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("Sorry, there are only %d seats available.", e.Available)
}

// Unwrap lets errors.Is(err, allocation.ErrInfeasible) match.
func (e *CapacityError) Unwrap() error {
	return allocation.ErrInfeasible
}

// Desk previews allocations and commits drafts against a Context.
type Desk struct {
	ctx     *Context
	journal Journal
}

// DeskOption customizes a Desk during construction.
type DeskOption func(*Desk)

// WithJournal records previews, confirmations and abandons.
func WithJournal(j Journal) DeskOption {
	return func(d *Desk) {
		d.journal = j
	}
}

// NewDesk returns a desk bound to ctx.
func NewDesk(ctx *Context, opts ...DeskOption) *Desk {
	d := &Desk{ctx: ctx}
	for _, opt := range opts {
		if opt != nil {
			opt(d)
		}
	}
	return d
}

func (d *Desk) Context() *Context { return d.ctx }

// PreviewAuto proposes k seats with the default policy.
func (d *Desk) PreviewAuto(k int) ([]seat.Coordinate, error) {
	if err := d.checkCapacity(k); err != nil {
		return nil, err
	}
	return allocation.Auto(d.ctx.Theater, k)
}

// PreviewManual proposes k seats anchored at start.
func (d *Desk) PreviewManual(k int, start seat.Coordinate) ([]seat.Coordinate, error) {
	if err := d.checkCapacity(k); err != nil {
		return nil, err
	}
	return allocation.Manual(d.ctx.Theater, k, start)
}

// Begin opens a booking transaction for k seats. A provisional id is minted
// only once the default preview succeeds.
func (d *Desk) Begin(k int) (*Draft, error) {
	if k <= 0 {
		return nil, fmt.Errorf("booking: ticket count must be positive, got %d", k)
	}
	seats, err := d.PreviewAuto(k)
	if err != nil {
		d.logWarn("Preview · %d seat(s) refused: %v", k, err)
		return nil, err
	}
	id := d.ctx.Registry.MintID()
	d.logInfo("Preview · %s holds %d seat(s): %s", id, k, strings.Join(seat.Codes(seats), " "))
	return &Draft{desk: d, id: id, requested: k, seats: seats, state: DraftPreviewing}, nil
}

// Check returns the committed booking for id.
func (d *Desk) Check(id string) (Booking, error) {
	return d.ctx.Registry.Lookup(id)
}

func (d *Desk) checkCapacity(k int) error {
	if free := d.ctx.Theater.Available(); k > free {
		return &CapacityError{Requested: k, Available: free}
	}
	return nil
}

func (d *Desk) commit(id string, seats []seat.Coordinate) (Booking, error) {
	b, err := d.ctx.Registry.Commit(id, seats)
	if err != nil {
		d.logError("Commit · %s failed: %v", id, err)
		return Booking{}, err
	}
	d.logInfo("Commit · %s confirmed %s (%d left)", id, strings.Join(b.Codes(), " "), d.ctx.Theater.Available())
	return b, nil
}

func (d *Desk) logInfo(format string, args ...any) {
	if d.journal != nil {
		d.journal.Info(format, args...)
	}
}

func (d *Desk) logWarn(format string, args ...any) {
	if d.journal != nil {
		d.journal.Warn(format, args...)
	}
}

func (d *Desk) logError(format string, args ...any) {
	if d.journal != nil {
		d.journal.Error(format, args...)
	}
}

// IsInfeasible reports whether err means the seats requested cannot be found.
func IsInfeasible(err error) bool {
	return errors.Is(err, allocation.ErrInfeasible)
}
