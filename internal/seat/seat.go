// Package seat defines the coordinate value shared by every layer of the
// booking system: a row letter A–Z plus a one-based column.
package seat

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// MaxRows is the number of distinct row letters.
const MaxRows = 26

var (
	ErrEmptyCode     = errors.New("seat: code cannot be empty")
	ErrInvalidRow    = errors.New("seat: row must be a single letter A-Z")
	ErrInvalidDigits = errors.New("seat: column must be digits")
	ErrInvalidColumn = errors.New("seat: column must be >= 1")
)

// Coordinate identifies one physical seat. Row is always stored uppercase.
type Coordinate struct {
	Row byte
	Col int
}

// New builds a coordinate from a case-insensitive row letter.
func New(row rune, col int) (Coordinate, error) {
	idx, err := RowIndex(row)
	if err != nil {
		return Coordinate{}, err
	}
	if col < 1 {
		return Coordinate{}, fmt.Errorf("%w: got %d", ErrInvalidColumn, col)
	}
	return Coordinate{Row: byte('A' + idx), Col: col}, nil
}

// At converts a zero-based row index and one-based column. It panics on an
// index outside 0..25 because callers iterate over validated grid bounds.
func At(rowIndex, col int) Coordinate {
	letter, err := RowLetter(rowIndex)
	if err != nil {
		panic(err)
	}
	return Coordinate{Row: letter, Col: col}
}

// RowIndex returns the zero-based index for the coordinate's row.
func (c Coordinate) RowIndex() int {
	return int(c.Row) - 'A'
}

// Code renders the canonical seat code, e.g. A03.
func (c Coordinate) Code() string {
	return fmt.Sprintf("%c%02d", c.Row, c.Col)
}

func (c Coordinate) String() string {
	return c.Code()
}

// RowLetter converts a zero-based index to its row letter.
func RowLetter(index int) (byte, error) {
	if index < 0 || index >= MaxRows {
		return 0, fmt.Errorf("%w: index %d", ErrInvalidRow, index)
	}
	return byte('A' + index), nil
}

// RowIndex converts a row letter (either case) to its zero-based index.
func RowIndex(letter rune) (int, error) {
	switch {
	case letter >= 'A' && letter <= 'Z':
		return int(letter - 'A'), nil
	case letter >= 'a' && letter <= 'z':
		return int(letter - 'a'), nil
	}
	return 0, fmt.Errorf("%w: got %q", ErrInvalidRow, letter)
}

// Parse reads a seat code such as "B03" or "b3".
func Parse(code string) (Coordinate, error) {
	trimmed := strings.TrimSpace(code)
	if trimmed == "" {
		return Coordinate{}, ErrEmptyCode
	}
	if _, err := RowIndex(rune(trimmed[0])); err != nil {
		return Coordinate{}, fmt.Errorf("%w in %q", ErrInvalidRow, trimmed)
	}
	digits := trimmed[1:]
	if digits == "" || strings.TrimLeft(digits, "0123456789") != "" {
		return Coordinate{}, fmt.Errorf("%w in %q", ErrInvalidDigits, trimmed)
	}
	col, err := strconv.Atoi(digits)
	if err != nil {
		return Coordinate{}, fmt.Errorf("%w in %q", ErrInvalidDigits, trimmed)
	}
	return New(rune(trimmed[0]), col)
}

// Codes renders each coordinate's code, preserving order.
func Codes(seats []Coordinate) []string {
	out := make([]string, len(seats))
	for i, s := range seats {
		out[i] = s.Code()
	}
	return out
}
