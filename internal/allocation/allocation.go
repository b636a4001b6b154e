// Package allocation proposes seat assignments against a read-only grid.
//
// Two policies are supported. Auto fills rows from A upward, taking the
// centre-most free seats of each row first. Manual starts at a chosen seat,
// walks rightward along that row, and overflows into the following rows using
// the same centre-first order. Neither function mutates the grid; the result
// is a proposal until the booking registry commits it.
package allocation

import (
	"errors"
	"sync"

	"github.com/kingrea/gic-cinemas/internal/seat"
)

// ErrInfeasible means the request cannot be satisfied in full. Callers never
// receive a partial proposal.
var ErrInfeasible = errors.New("allocation: not enough free seats")

// Grid is the read-only view the engine needs.
type Grid interface {
	Rows() int
	Cols() int
	Available() int
	IsFree(seat.Coordinate) bool
}

var (
	orderMu    sync.Mutex
	orderCache = map[int][]int{}
)

// CenterOrder returns columns 1..cols ordered from the middle outward.
//
//	cols=10 -> [5 6 4 7 3 8 2 9 1 10]
//	cols=9  -> [5 4 6 3 7 2 8 1 9]
func CenterOrder(cols int) []int {
	if cols <= 0 {
		return []int{}
	}
	orderMu.Lock()
	order, ok := orderCache[cols]
	if !ok {
		order = buildCenterOrder(cols)
		orderCache[cols] = order
	}
	orderMu.Unlock()
	out := make([]int, len(order))
	copy(out, order)
	return out
}

func buildCenterOrder(cols int) []int {
	order := make([]int, 0, cols)
	var left, right int
	if cols%2 == 0 {
		left, right = cols/2, cols/2+1
		order = append(order, left, right)
	} else {
		center := (cols + 1) / 2
		order = append(order, center)
		left, right = center, center
	}
	for left > 1 || right < cols {
		if left--; left >= 1 {
			order = append(order, left)
		}
		if right++; right <= cols {
			order = append(order, right)
		}
	}
	return order
}

// Auto proposes k seats using the default policy.
func Auto(g Grid, k int) ([]seat.Coordinate, error) {
	if k <= 0 {
		return []seat.Coordinate{}, nil
	}
	if k > g.Available() {
		return nil, ErrInfeasible
	}
	picked := make([]seat.Coordinate, 0, k)
	for row := 0; row < g.Rows() && len(picked) < k; row++ {
		picked = fillCenterOut(g, row, k, picked)
	}
	if len(picked) != k {
		return nil, ErrInfeasible
	}
	return picked, nil
}

// Manual proposes k seats anchored at start. The start row is scanned
// rightward from start.Col; once collection has begun, the first occupied
// seat ends the scan so seats beyond it are never reached. If start itself
// sits on an occupied block, the scan moves past that block before
// collecting. Remaining seats come from later rows in centre order.
func Manual(g Grid, k int, start seat.Coordinate) ([]seat.Coordinate, error) {
	if k <= 0 {
		return []seat.Coordinate{}, nil
	}
	if k > g.Available() {
		return nil, ErrInfeasible
	}
	startRow := start.RowIndex()
	if startRow < 0 || startRow >= g.Rows() {
		return nil, ErrInfeasible
	}
	picked := make([]seat.Coordinate, 0, k)
	col := max(start.Col, 1)
	for col <= g.Cols() && !g.IsFree(seat.At(startRow, col)) {
		col++
	}
	for ; col <= g.Cols() && len(picked) < k; col++ {
		c := seat.At(startRow, col)
		if !g.IsFree(c) {
			break
		}
		picked = append(picked, c)
	}
	for row := startRow + 1; row < g.Rows() && len(picked) < k; row++ {
		picked = fillCenterOut(g, row, k, picked)
	}
	if len(picked) != k {
		return nil, ErrInfeasible
	}
	return picked, nil
}

func fillCenterOut(g Grid, row, k int, picked []seat.Coordinate) []seat.Coordinate {
	for _, col := range CenterOrder(g.Cols()) {
		if len(picked) == k {
			break
		}
		c := seat.At(row, col)
		if g.IsFree(c) {
			picked = append(picked, c)
		}
	}
	return picked
}
