// Package theater holds the seating grid for a single screen: its fixed
// dimensions and which booking, if any, occupies each cell.
package theater

import (
	"errors"
	"fmt"
	"strings"

	"github.com/kingrea/gic-cinemas/internal/seat"
)

const (
	// MaxRows is bounded by the single-letter row alphabet.
	MaxRows = seat.MaxRows
	// MaxCols is the widest supported row.
	MaxCols = 50
)

var (
	ErrEmptyTitle        = errors.New("theater: title is required")
	ErrRowsOutOfRange    = fmt.Errorf("theater: rows must be between 1 and %d", MaxRows)
	ErrColsOutOfRange    = fmt.Errorf("theater: seats per row must be between 1 and %d", MaxCols)
	ErrContractViolation = errors.New("theater: seat assignment contract violated")
)

// Theater is one screen's seating layout. The zero value is not usable; build
// it with New.
type Theater struct {
	title string
	rows  int
	cols  int
	// grid[row][col-1] holds the occupying booking id, "" when empty.
	grid [][]string
}

// New creates an empty theater.
func New(title string, rows, cols int) (*Theater, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrEmptyTitle
	}
	if rows < 1 || rows > MaxRows {
		return nil, fmt.Errorf("%w (got %d)", ErrRowsOutOfRange, rows)
	}
	if cols < 1 || cols > MaxCols {
		return nil, fmt.Errorf("%w (got %d)", ErrColsOutOfRange, cols)
	}
	grid := make([][]string, rows)
	for i := range grid {
		grid[i] = make([]string, cols)
	}
	return &Theater{title: title, rows: rows, cols: cols, grid: grid}, nil
}

func (t *Theater) Title() string { return t.title }
func (t *Theater) Rows() int     { return t.rows }
func (t *Theater) Cols() int     { return t.cols }

// Capacity is the total number of seats.
func (t *Theater) Capacity() int {
	return t.rows * t.cols
}

// Available counts empty cells. It scans the grid on every call.
func (t *Theater) Available() int {
	free := 0
	for _, row := range t.grid {
		for _, owner := range row {
			if owner == "" {
				free++
			}
		}
	}
	return free
}

// InBounds reports whether c addresses a seat in this theater.
func (t *Theater) InBounds(c seat.Coordinate) bool {
	idx := c.RowIndex()
	return idx >= 0 && idx < t.rows && c.Col >= 1 && c.Col <= t.cols
}

// IsFree reports whether c is in bounds and unoccupied.
func (t *Theater) IsFree(c seat.Coordinate) bool {
	return t.InBounds(c) && t.grid[c.RowIndex()][c.Col-1] == ""
}

// Occupant returns the booking id holding c.
func (t *Theater) Occupant(c seat.Coordinate) (string, bool) {
	if !t.InBounds(c) {
		return "", false
	}
	owner := t.grid[c.RowIndex()][c.Col-1]
	return owner, owner != ""
}

// Assign marks every seat as owned by bookingID. Only the booking registry
// calls this. Seats must be in bounds, empty and distinct; when any check
// fails nothing is written.
func (t *Theater) Assign(bookingID string, seats []seat.Coordinate) error {
	if strings.TrimSpace(bookingID) == "" {
		return fmt.Errorf("%w: booking id is required", ErrContractViolation)
	}
	seen := make(map[seat.Coordinate]struct{}, len(seats))
	for _, s := range seats {
		if !t.InBounds(s) {
			return fmt.Errorf("%w: %s is out of bounds for %dx%d", ErrContractViolation, s.Code(), t.rows, t.cols)
		}
		if owner := t.grid[s.RowIndex()][s.Col-1]; owner != "" {
			return fmt.Errorf("%w: %s already held by %s", ErrContractViolation, s.Code(), owner)
		}
		if _, dup := seen[s]; dup {
			return fmt.Errorf("%w: %s listed twice", ErrContractViolation, s.Code())
		}
		seen[s] = struct{}{}
	}
	for _, s := range seats {
		t.grid[s.RowIndex()][s.Col-1] = bookingID
	}
	return nil
}
