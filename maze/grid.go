/*
Package maze provides the wall grid, generator, move validation and A* pathfinding
behind the maze runner levels.

A Grid is a rows×cols rectangle of cells. Each cell stores its four walls as a 4-bit
mask, and the wall between two neighbours is always carved from both sides at once.
Generate carves a perfect maze (a spanning tree over every cell) with a seeded
depth-first backtracker, Step checks a single move against the walls, and FindPath
returns the shortest route between two cells.

Grids returned by Generate are never mutated again, so they are safe for concurrent readers.
*/
package maze

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// allWalls is the mask of a cell that has not been carved yet.
	allWalls uint8 = 1<<North | 1<<East | 1<<South | 1<<West
)

var (
	ErrInvalidDimensions = errors.New("invalid maze dimensions")
	ErrOutOfBounds       = errors.New("cell position out of bounds")
	ErrInvalidDirection  = errors.New("invalid direction")
	ErrNoPath            = errors.New("no path between cells")
)

// Grid is a rectangular maze of cells with four walls each.
type Grid struct {
	rows  int
	cols  int
	cells []uint8 // wall masks indexed by row*cols+col
}

// NewGrid returns a fully walled grid of the given dimensions.
func NewGrid(rows, cols int) (*Grid, error) {
	if rows < 1 || cols < 1 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, rows, cols)
	}

	cells := make([]uint8, rows*cols)
	for i := range cells {
		cells[i] = allWalls
	}

	return &Grid{
		rows:  rows,
		cols:  cols,
		cells: cells,
	}, nil
}

// Rows returns the number of rows in the grid.
func (g *Grid) Rows() int {
	return g.rows
}

// Cols returns the number of columns in the grid.
func (g *Grid) Cols() int {
	return g.cols
}

// InBound reports whether pos lies inside the grid.
func (g *Grid) InBound(pos CellPosition) bool {
	return pos.Row >= 0 && pos.Row < g.rows && pos.Col >= 0 && pos.Col < g.cols
}

// HasWall reports whether the cell at pos has a wall on side d.
func (g *Grid) HasWall(pos CellPosition, d Direction) (bool, error) {
	if !g.InBound(pos) {
		return false, fmt.Errorf("%w: %s in %dx%d grid", ErrOutOfBounds, pos, g.rows, g.cols)
	}
	if !d.Valid() {
		return false, fmt.Errorf("%w: %d", ErrInvalidDirection, uint8(d))
	}
	return g.wall(pos, d), nil
}

// Passages counts the carved walls between neighbouring cells, each pair once.
func (g *Grid) Passages() int {
	count := 0
	for row := 0; row < g.rows; row++ {
		for col := 0; col < g.cols; col++ {
			pos := CellPosition{Row: row, Col: col}
			if col+1 < g.cols && !g.wall(pos, East) {
				count++
			}
			if row+1 < g.rows && !g.wall(pos, South) {
				count++
			}
		}
	}
	return count
}

// Masks returns a copy of the per-cell wall masks in row-major order.
// Bit d of a mask is set when the wall in Direction d is present.
func (g *Grid) Masks() []uint8 {
	masks := make([]uint8, len(g.cells))
	copy(masks, g.cells)
	return masks
}

// Clone returns an independent copy of the grid.
func (g *Grid) Clone() *Grid {
	return &Grid{
		rows:  g.rows,
		cols:  g.cols,
		cells: g.Masks(),
	}
}

// Equal reports whether both grids have the same dimensions and walls.
func (g *Grid) Equal(other *Grid) bool {
	if other == nil || g.rows != other.rows || g.cols != other.cols {
		return false
	}
	for i := range g.cells {
		if g.cells[i] != other.cells[i] {
			return false
		}
	}
	return true
}

func (g *Grid) index(pos CellPosition) int {
	return pos.Row*g.cols + pos.Col
}

// wall is HasWall without the bounds checks.
func (g *Grid) wall(pos CellPosition, d Direction) bool {
	return g.cells[g.index(pos)]&(1<<d) != 0
}

// carve removes the wall on side d of pos together with the matching wall of its neighbour.
// Nothing changes when the neighbour is outside the grid.
func (g *Grid) carve(pos CellPosition, d Direction) error {
	if !d.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidDirection, uint8(d))
	}
	next := pos.Neighbor(d)
	if !g.InBound(pos) || !g.InBound(next) {
		return fmt.Errorf("%w: carving %s from %s", ErrOutOfBounds, d, pos)
	}

	g.cells[g.index(pos)] &^= 1 << d
	g.cells[g.index(next)] &^= 1 << d.Opposite()
	return nil
}

// String provides a textual representation of the maze.
func (g *Grid) String() string {
	var output strings.Builder

	// Top boundary
	output.WriteString("+" + strings.Repeat("---+", g.cols) + "\n")

	for row := 0; row < g.rows; row++ {
		cellRow := "|"
		wallRow := "+"
		for col := 0; col < g.cols; col++ {
			pos := CellPosition{Row: row, Col: col}

			if g.wall(pos, East) {
				cellRow += "   |"
			} else {
				cellRow += "    "
			}

			if g.wall(pos, South) {
				wallRow += "---+"
			} else {
				wallRow += "   +"
			}
		}
		output.WriteString(cellRow + "\n")
		output.WriteString(wallRow + "\n")
	}

	return output.String()
}
