package booking

import (
	"errors"
	"fmt"
	"strings"

	"github.com/kingrea/gic-cinemas/internal/seat"
)

// ErrDraftClosed is returned when a confirmed or abandoned draft is reused.
var ErrDraftClosed = errors.New("booking: draft already closed")

// DraftState tracks where a single booking transaction is.
type DraftState string

const (
	DraftPreviewing DraftState = "previewing"
	DraftConfirmed  DraftState = "confirmed"
	DraftAbandoned  DraftState = "abandoned"
)

// Draft is one in-progress booking: a provisional id plus the current
// preview. Reseat replaces the preview; Confirm commits it; Abandon drops
// it, leaving only the consumed id number behind.
type Draft struct {
	desk      *Desk
	id        string
	requested int
	seats     []seat.Coordinate
	start     *seat.Coordinate
	state     DraftState
}

func (d *Draft) ID() string        { return d.id }
func (d *Draft) Requested() int    { return d.requested }
func (d *Draft) State() DraftState { return d.state }

// Seats returns a copy of the current preview.
func (d *Draft) Seats() []seat.Coordinate {
	return append([]seat.Coordinate(nil), d.seats...)
}

// Start returns the manual starting seat, if the preview came from one.
func (d *Draft) Start() (seat.Coordinate, bool) {
	if d.start == nil {
		return seat.Coordinate{}, false
	}
	return *d.start, true
}

// Reseat recomputes the preview from start. On failure the previous
// preview stays in place.
func (d *Draft) Reseat(start seat.Coordinate) ([]seat.Coordinate, error) {
	if d.state != DraftPreviewing {
		return nil, fmt.Errorf("%w: %s is %s", ErrDraftClosed, d.id, d.state)
	}
	seats, err := d.desk.PreviewManual(d.requested, start)
	if err != nil {
		d.desk.logWarn("Reseat · %s from %s refused: %v", d.id, start.Code(), err)
		return nil, err
	}
	d.seats = seats
	d.start = &start
	d.desk.logInfo("Reseat · %s from %s: %s", d.id, start.Code(), strings.Join(seat.Codes(seats), " "))
	return d.Seats(), nil
}

// Confirm commits the current preview under the draft's id.
func (d *Draft) Confirm() (Booking, error) {
	if d.state != DraftPreviewing {
		return Booking{}, fmt.Errorf("%w: %s is %s", ErrDraftClosed, d.id, d.state)
	}
	b, err := d.desk.commit(d.id, d.seats)
	if err != nil {
		return Booking{}, err
	}
	d.state = DraftConfirmed
	return b, nil
}

// Abandon discards the preview without touching the grid.
func (d *Draft) Abandon() {
	if d.state != DraftPreviewing {
		return
	}
	d.state = DraftAbandoned
	d.desk.logInfo("Abandon · %s released %d proposed seat(s)", d.id, len(d.seats))
}
