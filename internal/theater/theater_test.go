package theater

import (
	"errors"
	"testing"

	"github.com/kingrea/gic-cinemas/internal/seat"
)

func TestNewValidatesDimensions(t *testing.T) {
	cases := []struct {
		name  string
		title string
		rows  int
		cols  int
		want  error
	}{
		{"empty title", "  ", 2, 2, ErrEmptyTitle},
		{"zero rows", "Inception", 0, 5, ErrRowsOutOfRange},
		{"too many rows", "Inception", 27, 5, ErrRowsOutOfRange},
		{"zero cols", "Inception", 3, 0, ErrColsOutOfRange},
		{"too many cols", "Inception", 3, 51, ErrColsOutOfRange},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := New(tc.title, tc.rows, tc.cols); !errors.Is(err, tc.want) {
				t.Fatalf("New error = %v, want %v", err, tc.want)
			}
		})
	}
	th, err := New(" Inception ", 26, 50)
	if err != nil {
		t.Fatalf("New at max bounds: %v", err)
	}
	if th.Title() != "Inception" {
		t.Fatalf("title = %q, want trimmed", th.Title())
	}
}

func TestCapacityAndAvailability(t *testing.T) {
	th := mustTheater(t, 3, 6)
	if th.Capacity() != 18 || th.Available() != 18 {
		t.Fatalf("capacity/available = %d/%d, want 18/18", th.Capacity(), th.Available())
	}
	if err := th.Assign("GIC0001", []seat.Coordinate{seat.At(0, 1), seat.At(2, 6)}); err != nil {
		t.Fatalf("assign: %v", err)
	}
	if th.Capacity() != 18 {
		t.Fatalf("capacity changed to %d", th.Capacity())
	}
	if th.Available() != 16 {
		t.Fatalf("available = %d, want 16", th.Available())
	}
	owner, ok := th.Occupant(seat.At(2, 6))
	if !ok || owner != "GIC0001" {
		t.Fatalf("occupant = %q/%v, want GIC0001", owner, ok)
	}
	if th.IsFree(seat.At(0, 1)) {
		t.Fatalf("A01 should be occupied")
	}
}

func TestBoundsChecks(t *testing.T) {
	th := mustTheater(t, 2, 4)
	if !th.InBounds(seat.At(1, 4)) {
		t.Fatalf("B04 should be in bounds")
	}
	for _, c := range []seat.Coordinate{seat.At(2, 1), seat.At(0, 5), {Row: 'A', Col: 0}} {
		if th.InBounds(c) {
			t.Fatalf("%s should be out of bounds", c)
		}
		if th.IsFree(c) {
			t.Fatalf("%s out of bounds must not be free", c)
		}
		if _, ok := th.Occupant(c); ok {
			t.Fatalf("%s out of bounds has no occupant", c)
		}
	}
}

func TestAssignIsAllOrNothing(t *testing.T) {
	th := mustTheater(t, 1, 4)
	if err := th.Assign("GIC0001", []seat.Coordinate{seat.At(0, 2)}); err != nil {
		t.Fatalf("assign: %v", err)
	}
	cases := map[string][]seat.Coordinate{
		"occupied":      {seat.At(0, 1), seat.At(0, 2)},
		"out of bounds": {seat.At(0, 3), seat.At(0, 5)},
		"duplicate":     {seat.At(0, 3), seat.At(0, 3)},
	}
	for name, seats := range cases {
		err := th.Assign("GIC0002", seats)
		if !errors.Is(err, ErrContractViolation) {
			t.Fatalf("%s: error = %v, want ErrContractViolation", name, err)
		}
		if th.Available() != 3 {
			t.Fatalf("%s: grid mutated, available = %d", name, th.Available())
		}
	}
	if err := th.Assign(" ", []seat.Coordinate{seat.At(0, 1)}); !errors.Is(err, ErrContractViolation) {
		t.Fatalf("blank id error = %v", err)
	}
}

func mustTheater(t *testing.T, rows, cols int) *Theater {
	t.Helper()
	th, err := New("Inception", rows, cols)
	if err != nil {
		t.Fatalf("new theater: %v", err)
	}
	return th
}
