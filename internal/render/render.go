// Package render draws the theater seat map for the console and the TUI.
package render

import (
	"strconv"
	"strings"

	"github.com/kingrea/gic-cinemas/internal/seat"
	"github.com/kingrea/gic-cinemas/internal/theater"
)

const (
	screenHeader   = "    S C R E E N"
	minDividerSize = 18
)

// Highlight selects which seats are drawn with the highlight glyph.
// Preview seats win over ownership; BookingID highlights that booking's seats.
type Highlight struct {
	BookingID string
	Preview   []seat.Coordinate
}

// Renderer draws a seat map as a multi-line string.
type Renderer interface {
	SeatMap(t *theater.Theater, h Highlight) string
}

// Glyphs are the single-character symbols used for each cell state.
type Glyphs struct {
	Empty     string
	Highlight string
	Taken     string
}

// DefaultGlyphs returns ".", "o" and "#".
func DefaultGlyphs() Glyphs {
	return Glyphs{Empty: ".", Highlight: "o", Taken: "#"}
}

func (g Glyphs) withDefaults() Glyphs {
	def := DefaultGlyphs()
	if g.Empty == "" {
		g.Empty = def.Empty
	}
	if g.Highlight == "" {
		g.Highlight = def.Highlight
	}
	if g.Taken == "" {
		g.Taken = def.Taken
	}
	return g
}

// Legend describes the glyphs on one line.
func Legend(g Glyphs) string {
	g = g.withDefaults()
	return g.Empty + " empty   " + g.Highlight + " selected   " + g.Taken + " taken"
}

type cellState int

const (
	cellEmpty cellState = iota
	cellHighlight
	cellTaken
)

// classify returns the state of every cell, indexed [rowIndex][col-1].
func classify(t *theater.Theater, h Highlight) [][]cellState {
	preview := make(map[seat.Coordinate]struct{}, len(h.Preview))
	for _, c := range h.Preview {
		preview[c] = struct{}{}
	}
	cells := make([][]cellState, t.Rows())
	for r := 0; r < t.Rows(); r++ {
		cells[r] = make([]cellState, t.Cols())
		for col := 1; col <= t.Cols(); col++ {
			c := seat.At(r, col)
			owner, taken := t.Occupant(c)
			switch {
			case hasSeat(preview, c):
				cells[r][col-1] = cellHighlight
			case !taken:
				cells[r][col-1] = cellEmpty
			case h.BookingID != "" && owner == h.BookingID:
				cells[r][col-1] = cellHighlight
			default:
				cells[r][col-1] = cellTaken
			}
		}
	}
	return cells
}

func hasSeat(set map[seat.Coordinate]struct{}, c seat.Coordinate) bool {
	_, ok := set[c]
	return ok
}

// layout assembles header, divider, rows back to front, and the column footer.
// paint turns one row of cell states into its rendered cells.
func layout(t *theater.Theater, h Highlight, paint func(cellState) string) []string {
	cells := classify(t, h)
	lines := make([]string, 0, t.Rows()+3)
	lines = append(lines, screenHeader)
	lines = append(lines, strings.Repeat("-", max(2*t.Cols()+2, minDividerSize)))
	for r := t.Rows() - 1; r >= 0; r-- {
		letter, _ := seat.RowLetter(r)
		painted := make([]string, len(cells[r]))
		for i, state := range cells[r] {
			painted[i] = paint(state)
		}
		lines = append(lines, string(letter)+"  "+strings.Join(painted, " "))
	}
	nums := make([]string, t.Cols())
	for i := range nums {
		nums[i] = strconv.Itoa(i + 1)
	}
	lines = append(lines, "   "+strings.Join(nums, " "))
	return lines
}

// ASCII renders plain monospaced text.
type ASCII struct {
	Glyphs Glyphs
}

// NewASCII returns an ASCII renderer with the given glyphs.
func NewASCII(g Glyphs) ASCII {
	return ASCII{Glyphs: g.withDefaults()}
}

func (a ASCII) SeatMap(t *theater.Theater, h Highlight) string {
	g := a.Glyphs.withDefaults()
	return strings.Join(layout(t, h, func(state cellState) string {
		switch state {
		case cellHighlight:
			return g.Highlight
		case cellTaken:
			return g.Taken
		}
		return g.Empty
	}), "\n")
}
