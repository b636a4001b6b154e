package booking

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/kingrea/gic-cinemas/internal/allocation"
	"github.com/kingrea/gic-cinemas/internal/seat"
	"github.com/kingrea/gic-cinemas/internal/theater"
)

func TestMintIDAdvancesSequence(t *testing.T) {
	ctx := newTestContext(t, 2, 4)
	for _, want := range []string{"GIC0001", "GIC0002", "GIC0003"} {
		if got := ctx.Registry.MintID(); got != want {
			t.Fatalf("MintID = %s, want %s", got, want)
		}
	}
}

func TestMintIDHonoursOptions(t *testing.T) {
	ctx, err := NewContext("Inception", 2, 4, WithIDPrefix("abc"), WithIDDigits(6))
	if err != nil {
		t.Fatalf("new context: %v", err)
	}
	if got := ctx.Registry.MintID(); got != "ABC000001" {
		t.Fatalf("MintID = %s, want ABC000001", got)
	}
	if prefix, digits := ctx.Registry.IDFormat(); prefix != "ABC" || digits != 6 {
		t.Fatalf("IDFormat = %s, %d", prefix, digits)
	}
}

func TestNewContextRejectsBadTheater(t *testing.T) {
	if _, err := NewContext("Inception", 0, 4); !errors.Is(err, theater.ErrRowsOutOfRange) {
		t.Fatalf("expected ErrRowsOutOfRange, got %v", err)
	}
}

func TestCommitMarksGridAndRegisters(t *testing.T) {
	ctx := newTestContext(t, 2, 4)
	seats := seatsOf(t, "A02", "A03")
	before := ctx.Theater.Available()
	b, err := ctx.Registry.Commit("gic0001", seats)
	if err != nil {
		t.Fatalf("commit: %v", err)
	}
	if b.ID() != "GIC0001" {
		t.Fatalf("id = %s, want normalised GIC0001", b.ID())
	}
	if got := ctx.Theater.Available(); got != before-2 {
		t.Fatalf("available = %d, want %d", got, before-2)
	}
	for _, s := range seats {
		if owner, _ := ctx.Theater.Occupant(s); owner != "GIC0001" {
			t.Fatalf("%s owner = %q", s, owner)
		}
	}
	found, err := ctx.Registry.Lookup(" GIC0001 ")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if !reflect.DeepEqual(found.Codes(), []string{"A02", "A03"}) {
		t.Fatalf("codes = %v", found.Codes())
	}
	if ids := ctx.Registry.IDs(); !reflect.DeepEqual(ids, []string{"GIC0001"}) {
		t.Fatalf("ids = %v", ids)
	}
}

func TestCommitRejectsContractViolations(t *testing.T) {
	ctx := newTestContext(t, 1, 4)
	if _, err := ctx.Registry.Commit("GIC0001", seatsOf(t, "A01")); err != nil {
		t.Fatalf("commit: %v", err)
	}
	cases := []struct {
		name  string
		id    string
		seats []seat.Coordinate
		want  error
	}{
		{"no seats", "GIC0002", nil, ErrNoSeats},
		{"duplicate id", "GIC0001", seatsOf(t, "A02"), ErrDuplicateID},
		{"occupied seat", "GIC0002", seatsOf(t, "A02", "A01"), theater.ErrContractViolation},
		{"out of bounds", "GIC0002", seatsOf(t, "B01"), theater.ErrContractViolation},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ctx.Registry.Commit(tc.id, tc.seats); !errors.Is(err, tc.want) {
				t.Fatalf("commit error = %v, want %v", err, tc.want)
			}
			if ctx.Theater.Available() != 3 || ctx.Registry.Len() != 1 {
				t.Fatalf("state changed: available=%d bookings=%d", ctx.Theater.Available(), ctx.Registry.Len())
			}
		})
	}
}

func TestLookupUnknownID(t *testing.T) {
	ctx := newTestContext(t, 1, 4)
	if _, err := ctx.Registry.Lookup("GIC0042"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestBookingSeatsAreImmutable(t *testing.T) {
	ctx := newTestContext(t, 1, 4)
	input := seatsOf(t, "A01", "A02")
	b, err := ctx.Registry.Commit("GIC0001", input)
	if err != nil {
		t.Fatalf("commit: %v", err)
	}
	input[0] = seat.At(0, 4)
	out := b.Seats()
	out[1] = seat.At(0, 3)
	stored, _ := ctx.Registry.Lookup("GIC0001")
	if !reflect.DeepEqual(stored.Codes(), []string{"A01", "A02"}) {
		t.Fatalf("stored seats changed: %v", stored.Codes())
	}
}

func TestDeskPreviewCapacityMessage(t *testing.T) {
	ctx := newTestContext(t, 1, 4)
	desk := NewDesk(ctx)
	_, err := desk.PreviewAuto(5)
	var capErr *CapacityError
	if !errors.As(err, &capErr) {
		t.Fatalf("expected CapacityError, got %v", err)
	}
	if capErr.Available != 4 || capErr.Requested != 5 {
		t.Fatalf("capacity error = %+v", capErr)
	}
	if err.Error() != "Sorry, there are only 4 seats available." {
		t.Fatalf("message = %q", err.Error())
	}
	if !IsInfeasible(err) || !errors.Is(err, allocation.ErrInfeasible) {
		t.Fatalf("capacity error should match ErrInfeasible")
	}
	if _, err := desk.PreviewManual(5, seat.At(0, 1)); !errors.As(err, &capErr) {
		t.Fatalf("manual preview expected CapacityError, got %v", err)
	}
}

func TestDraftConfirmCommitsPreview(t *testing.T) {
	ctx := newTestContext(t, 3, 6)
	journal := &memoryJournal{}
	desk := NewDesk(ctx, WithJournal(journal))
	draft, err := desk.Begin(4)
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	if draft.ID() != "GIC0001" || draft.State() != DraftPreviewing {
		t.Fatalf("draft = %s/%s", draft.ID(), draft.State())
	}
	proposed := draft.Seats()
	for _, s := range proposed {
		if !ctx.Theater.IsFree(s) {
			t.Fatalf("preview seat %s already taken", s)
		}
	}
	if ctx.Theater.Available() != 18 {
		t.Fatalf("preview mutated the grid")
	}
	b, err := draft.Confirm()
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if !reflect.DeepEqual(b.Seats(), proposed) {
		t.Fatalf("committed %v, proposed %v", b.Codes(), seat.Codes(proposed))
	}
	if ctx.Theater.Available() != 14 {
		t.Fatalf("available = %d, want 14", ctx.Theater.Available())
	}
	if draft.State() != DraftConfirmed {
		t.Fatalf("state = %s, want confirmed", draft.State())
	}
	if _, err := draft.Confirm(); !errors.Is(err, ErrDraftClosed) {
		t.Fatalf("second confirm error = %v, want ErrDraftClosed", err)
	}
	if !journal.contains("Commit · GIC0001 confirmed A03 A04 A02 A05") {
		t.Fatalf("journal missing commit line: %v", journal.lines)
	}
}

func TestDraftReseatKeepsIDAndPreviousPreviewOnFailure(t *testing.T) {
	ctx := newTestContext(t, 2, 4)
	desk := NewDesk(ctx)
	draft, err := desk.Begin(3)
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	seats, err := draft.Reseat(seat.At(1, 2))
	if err != nil {
		t.Fatalf("reseat: %v", err)
	}
	if got := seat.Codes(seats); !reflect.DeepEqual(got, []string{"B02", "B03", "B04"}) {
		t.Fatalf("reseat = %v", got)
	}
	if start, ok := draft.Start(); !ok || start.Code() != "B02" {
		t.Fatalf("start = %v/%v", start, ok)
	}
	if _, err := draft.Reseat(seat.At(1, 3)); !IsInfeasible(err) {
		t.Fatalf("expected infeasible reseat, got %v", err)
	}
	if got := seat.Codes(draft.Seats()); !reflect.DeepEqual(got, []string{"B02", "B03", "B04"}) {
		t.Fatalf("failed reseat replaced preview: %v", got)
	}
	b, err := draft.Confirm()
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if b.ID() != "GIC0001" {
		t.Fatalf("reseat changed id to %s", b.ID())
	}
}

func TestAbandonedDraftConsumesSequenceOnly(t *testing.T) {
	ctx := newTestContext(t, 2, 4)
	desk := NewDesk(ctx)
	first, err := desk.Begin(2)
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	first.Abandon()
	if first.State() != DraftAbandoned {
		t.Fatalf("state = %s", first.State())
	}
	if _, err := first.Reseat(seat.At(0, 1)); !errors.Is(err, ErrDraftClosed) {
		t.Fatalf("reseat after abandon = %v", err)
	}
	if ctx.Theater.Available() != 8 || ctx.Registry.Len() != 0 {
		t.Fatalf("abandon left a trace: available=%d bookings=%d", ctx.Theater.Available(), ctx.Registry.Len())
	}
	second, err := desk.Begin(2)
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	if second.ID() != "GIC0002" {
		t.Fatalf("second id = %s, want GIC0002", second.ID())
	}
}

func TestBeginDoesNotMintOnFailure(t *testing.T) {
	ctx := newTestContext(t, 1, 2)
	desk := NewDesk(ctx)
	if _, err := desk.Begin(3); !IsInfeasible(err) {
		t.Fatalf("expected infeasible, got %v", err)
	}
	if _, err := desk.Begin(0); err == nil {
		t.Fatalf("expected error for zero tickets")
	}
	draft, err := desk.Begin(1)
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	if draft.ID() != "GIC0001" {
		t.Fatalf("id = %s, want GIC0001", draft.ID())
	}
}

func TestSuccessiveBookingsAreDisjoint(t *testing.T) {
	ctx := newTestContext(t, 3, 5)
	desk := NewDesk(ctx)
	taken := map[seat.Coordinate]string{}
	for i := 0; i < 5; i++ {
		draft, err := desk.Begin(3)
		if err != nil {
			t.Fatalf("begin %d: %v", i, err)
		}
		b, err := draft.Confirm()
		if err != nil {
			t.Fatalf("confirm %d: %v", i, err)
		}
		for _, s := range b.Seats() {
			if prev, dup := taken[s]; dup {
				t.Fatalf("%s booked by %s and %s", s, prev, b.ID())
			}
			taken[s] = b.ID()
		}
	}
	if ctx.Theater.Available() != 0 {
		t.Fatalf("available = %d, want 0", ctx.Theater.Available())
	}
}

func newTestContext(t *testing.T, rows, cols int) *Context {
	t.Helper()
	ctx, err := NewContext("Inception", rows, cols)
	if err != nil {
		t.Fatalf("new context: %v", err)
	}
	return ctx
}

func seatsOf(t *testing.T, codes ...string) []seat.Coordinate {
	t.Helper()
	out := make([]seat.Coordinate, len(codes))
	for i, code := range codes {
		c, err := seat.Parse(code)
		if err != nil {
			t.Fatalf("parse %s: %v", code, err)
		}
		out[i] = c
	}
	return out
}

type memoryJournal struct {
	lines []string
}

func (j *memoryJournal) Info(format string, args ...any)  { j.add("INFO", format, args...) }
func (j *memoryJournal) Warn(format string, args ...any)  { j.add("WARN", format, args...) }
func (j *memoryJournal) Error(format string, args ...any) { j.add("ERROR", format, args...) }

func (j *memoryJournal) add(level, format string, args ...any) {
	j.lines = append(j.lines, level+" "+fmt.Sprintf(format, args...))
}

func (j *memoryJournal) contains(fragment string) bool {
	for _, line := range j.lines {
		if strings.Contains(line, fragment) {
			return true
		}
	}
	return false
}
