// Package raycast is the simulation core of the game: the grid world, the
// ray caster, the wall and sprite projectors, input handling, movement,
// combat and the session state machine.
//
// Everything here is deterministic. Time enters only through the explicit
// `now` passed to Tick, randomness only through the seeded RNG, and output
// is a Frame of draw commands. Hosts own the loop, the devices and the
// actual drawing.
package raycast

import (
	"errors"
	"fmt"
	"math"
)

// BoundaryCell is the category reported for rays that leave the grid or run
// out of search depth.
const BoundaryCell = 1

var (
	ErrEmptyMap     = errors.New("raycast: map has no cells")
	ErrRaggedMap    = errors.New("raycast: map rows differ in length")
	ErrOpenBoundary = errors.New("raycast: map outer ring must be walls")
	ErrNegativeCell = errors.New("raycast: map cell codes must be >= 0")
)

// Map is an immutable grid of cell codes: 0 is floor, >0 is a wall whose
// value selects its material category. Cells are addressed as (x, y) with
// y indexing rows.
type Map struct {
	width  int
	height int
	cells  []int
}

// defaultRows is the 16x16 arena the game ships with.
var defaultRows = [][]int{
	{1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1},
	{1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1},
	{1, 0, 2, 2, 0, 0, 0, 0, 0, 0, 0, 0, 2, 2, 0, 1},
	{1, 0, 2, 0, 0, 0, 0, 3, 3, 0, 0, 0, 0, 2, 0, 1},
	{1, 0, 0, 0, 0, 0, 0, 3, 3, 0, 0, 0, 0, 0, 0, 1},
	{1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1},
	{1, 0, 0, 0, 2, 2, 2, 0, 0, 2, 2, 2, 0, 0, 0, 1},
	{1, 0, 0, 0, 2, 0, 0, 0, 0, 0, 0, 2, 0, 0, 0, 1},
	{1, 0, 0, 0, 2, 0, 0, 0, 0, 0, 0, 2, 0, 0, 0, 1},
	{1, 0, 0, 0, 2, 2, 2, 0, 0, 2, 2, 2, 0, 0, 0, 1},
	{1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1},
	{1, 0, 0, 0, 0, 0, 0, 3, 3, 0, 0, 0, 0, 0, 0, 1},
	{1, 0, 2, 0, 0, 0, 0, 3, 3, 0, 0, 0, 0, 2, 0, 1},
	{1, 0, 2, 2, 0, 0, 0, 0, 0, 0, 0, 0, 2, 2, 0, 1},
	{1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1},
	{1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1},
}

// DefaultMap returns the built-in 16x16 arena.
func DefaultMap() *Map {
	m, err := NewMap(defaultRows)
	if err != nil {
		panic(err)
	}
	return m
}

// NewMap validates rows and builds a map from a copy of them.
func NewMap(rows [][]int) (*Map, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrEmptyMap
	}

	m := &Map{width: len(rows[0]), height: len(rows)}
	m.cells = make([]int, 0, m.width*m.height)
	for y, row := range rows {
		if len(row) != m.width {
			return nil, fmt.Errorf("%w: row %d has %d cells, expected %d", ErrRaggedMap, y, len(row), m.width)
		}
		for x, c := range row {
			if c < 0 {
				return nil, fmt.Errorf("%w: (%d, %d) = %d", ErrNegativeCell, x, y, c)
			}
		}
		m.cells = append(m.cells, row...)
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// Validate checks that the outer ring is closed so every ray terminates.
func (m *Map) Validate() error {
	if m.width == 0 || m.height == 0 || len(m.cells) != m.width*m.height {
		return ErrEmptyMap
	}
	for x := 0; x < m.width; x++ {
		if m.cell(x, 0) == 0 || m.cell(x, m.height-1) == 0 {
			return fmt.Errorf("%w: gap at column %d", ErrOpenBoundary, x)
		}
	}
	for y := 0; y < m.height; y++ {
		if m.cell(0, y) == 0 || m.cell(m.width-1, y) == 0 {
			return fmt.Errorf("%w: gap at row %d", ErrOpenBoundary, y)
		}
	}
	return nil
}

// Width returns the number of columns.
func (m *Map) Width() int { return m.width }

// Height returns the number of rows.
func (m *Map) Height() int { return m.height }

// InBounds reports whether (x, y) is a cell of the grid.
func (m *Map) InBounds(x, y int) bool {
	return x >= 0 && x < m.width && y >= 0 && y < m.height
}

// At returns the cell code at (x, y). Outside the grid it reports
// BoundaryCell, so callers can treat the void as solid wall.
func (m *Map) At(x, y int) int {
	if !m.InBounds(x, y) {
		return BoundaryCell
	}
	return m.cell(x, y)
}

// IsWall reports whether the world point (x, y) lies in a non-empty cell.
func (m *Map) IsWall(x, y float64) bool {
	return m.At(int(math.Floor(x)), int(math.Floor(y))) != 0
}

// Rows returns a copy of the grid as rows.
func (m *Map) Rows() [][]int {
	rows := make([][]int, m.height)
	for y := range rows {
		rows[y] = append([]int(nil), m.cells[y*m.width:(y+1)*m.width]...)
	}
	return rows
}

func (m *Map) cell(x, y int) int {
	return m.cells[y*m.width+x]
}
