// Package input turns raw console lines into validated booking values.
// Every failure carries the message shown to the patron.
package input

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/kingrea/gic-cinemas/internal/seat"
	"github.com/kingrea/gic-cinemas/internal/theater"
)

// ErrInvalid marks every validation failure produced by this package.
var ErrInvalid = errors.New("input: invalid")

// Error is a validation failure. Message is safe to print as-is.
type Error struct {
	Field   string
	Message string
	Err     error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Err }

// Is reports ErrInvalid so callers can match without a type assertion.
func (e *Error) Is(target error) bool { return target == ErrInvalid }

func invalid(field, message string, cause error) *Error {
	return &Error{Field: field, Message: message, Err: cause}
}

// Init is a parsed initialisation line.
type Init struct {
	Title string
	Rows  int
	Cols  int
}

// ParseInitLine parses "[Title] [Rows] [SeatsPerRow]". The last two tokens
// are the dimensions and everything before them is the title.
func ParseInitLine(line string) (Init, error) {
	if strings.TrimSpace(line) == "" {
		return Init{}, invalid("init", "Initialization input cannot be empty.", nil)
	}
	parts := strings.Fields(line)
	if len(parts) < 3 {
		return Init{}, invalid("init", "Provide: [Title] [Rows] [SeatsPerRow].", nil)
	}
	rows, err := strconv.Atoi(parts[len(parts)-2])
	if err != nil {
		return Init{}, invalid("init", "Rows and SeatsPerRow must be integers.", err)
	}
	cols, err := strconv.Atoi(parts[len(parts)-1])
	if err != nil {
		return Init{}, invalid("init", "Rows and SeatsPerRow must be integers.", err)
	}
	title := strings.TrimSpace(strings.Join(parts[:len(parts)-2], " "))
	if title == "" {
		return Init{}, invalid("init", "Title cannot be empty.", theater.ErrEmptyTitle)
	}
	if rows < 1 || rows > theater.MaxRows {
		return Init{}, invalid("init", "Rows must be between 1 and 26 (A–Z).", theater.ErrRowsOutOfRange)
	}
	if cols < 1 || cols > theater.MaxCols {
		return Init{}, invalid("init", "SeatsPerRow must be between 1 and 50.", theater.ErrColsOutOfRange)
	}
	return Init{Title: title, Rows: rows, Cols: cols}, nil
}

// String renders the line back in its input form.
func (i Init) String() string {
	return fmt.Sprintf("%s %d %d", i.Title, i.Rows, i.Cols)
}

// ParseTicketCount accepts a string of ASCII digits with a value above zero.
func ParseTicketCount(text string) (int, error) {
	value := strings.TrimSpace(text)
	if !isDigits(value) {
		return 0, invalid("tickets", "Please enter a positive integer.", nil)
	}
	count, err := strconv.Atoi(value)
	if err != nil {
		return 0, invalid("tickets", "Please enter a positive integer.", err)
	}
	if count <= 0 {
		return 0, invalid("tickets", "Ticket count must be greater than zero.", nil)
	}
	return count, nil
}

// IDPattern describes the shape of a booking id, e.g. GIC####.
type IDPattern struct {
	prefix string
	digits int
	re     *regexp.Regexp
}

// BookingIDPattern compiles the pattern for ids minted with prefix and digits.
func BookingIDPattern(prefix string, digits int) IDPattern {
	prefix = strings.ToUpper(strings.TrimSpace(prefix))
	return IDPattern{
		prefix: prefix,
		digits: digits,
		re:     regexp.MustCompile(fmt.Sprintf(`^%s\d{%d}$`, regexp.QuoteMeta(prefix), digits)),
	}
}

// Match reports whether id (already normalised) fits the pattern.
func (p IDPattern) Match(id string) bool {
	return p.re != nil && p.re.MatchString(id)
}

// String returns the human form, e.g. "GIC####".
func (p IDPattern) String() string {
	return p.prefix + strings.Repeat("#", p.digits)
}

// Example returns the first id the pattern allows, e.g. "GIC0001".
func (p IDPattern) Example() string {
	return fmt.Sprintf("%s%0*d", p.prefix, p.digits, 1)
}

// ParseBookingID trims and upper-cases text and checks it against pattern.
func ParseBookingID(text string, pattern IDPattern) (string, error) {
	id := strings.ToUpper(strings.TrimSpace(text))
	if !pattern.Match(id) {
		msg := fmt.Sprintf("Booking ID must match pattern %s (e.g., %s).", pattern, pattern.Example())
		return "", invalid("booking id", msg, nil)
	}
	return id, nil
}

// Grid is the occupancy view a start seat is checked against.
type Grid interface {
	InBounds(c seat.Coordinate) bool
	IsFree(c seat.Coordinate) bool
}

// ParseStartSeat parses a seat code and checks that it names a free seat in g.
func ParseStartSeat(g Grid, text string) (seat.Coordinate, error) {
	raw := strings.TrimSpace(text)
	c, err := seat.Parse(raw)
	if err != nil {
		return seat.Coordinate{}, invalid("seat", seatMessage(raw, err), err)
	}
	if !g.InBounds(c) {
		return seat.Coordinate{}, invalid("seat", "Seat is out of bounds for this theater.", nil)
	}
	if !g.IsFree(c) {
		return seat.Coordinate{}, invalid("seat", "Selected seat is already taken. Choose another seat.", nil)
	}
	return c, nil
}

func seatMessage(code string, err error) string {
	switch {
	case errors.Is(err, seat.ErrEmptyCode):
		return "Seat code cannot be empty."
	case errors.Is(err, seat.ErrInvalidRow):
		return fmt.Sprintf("Invalid seat code row in '%s'. Row must be A–Z.", code)
	case errors.Is(err, seat.ErrInvalidDigits):
		return fmt.Sprintf("Invalid seat code digits in '%s'.", code)
	case errors.Is(err, seat.ErrInvalidColumn):
		return "Seat column must be >= 1."
	}
	return err.Error()
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
