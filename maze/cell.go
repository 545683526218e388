package maze

import (
	"fmt"
	"strings"
)

// Direction identifies one of the four walls of a cell.
// The numeric values double as bit positions in a cell's wall mask.
type Direction uint8

const (
	North Direction = iota
	East
	South
	West
)

var (
	// directions lists every direction in the order neighbours are enumerated.
	directions = [4]Direction{North, East, South, West}

	directionDeltas = [4]CellPosition{
		North: {Row: -1, Col: 0},
		East:  {Row: 0, Col: 1},
		South: {Row: 1, Col: 0},
		West:  {Row: 0, Col: -1},
	}

	directionNames = [4]string{
		North: "north",
		East:  "east",
		South: "south",
		West:  "west",
	}

	directionAliases = map[string]Direction{
		"north": North, "up": North,
		"east": East, "right": East,
		"south": South, "down": South,
		"west": West, "left": West,
	}
)

// Directions returns the four directions in enumeration order (North, East, South, West).
func Directions() []Direction {
	return directions[:]
}

// ParseDirection converts a direction name into a Direction.
// Besides the compass names it accepts the arrow-key aliases up, right, down and left.
func ParseDirection(s string) (Direction, error) {
	d, ok := directionAliases[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDirection, s)
	}
	return d, nil
}

// Valid reports whether d is one of the four cardinal directions.
func (d Direction) Valid() bool {
	return d <= West
}

// Opposite returns the direction pointing back the way d came.
func (d Direction) Opposite() Direction {
	return (d + 2) % 4
}

// Delta returns the row/column offset of a single step in direction d.
func (d Direction) Delta() CellPosition {
	return directionDeltas[d]
}

func (d Direction) String() string {
	if !d.Valid() {
		return fmt.Sprintf("Direction(%d)", uint8(d))
	}
	return directionNames[d]
}

// MarshalText implements encoding.TextMarshaler.
func (d Direction) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidDirection, uint8(d))
	}
	return []byte(directionNames[d]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Direction) UnmarshalText(text []byte) error {
	parsed, err := ParseDirection(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// CellPosition represents the position of a cell in the maze grid.
type CellPosition struct {
	Row int `json:"row"` // Row index of the cell
	Col int `json:"col"` // Column index of the cell
}

// Neighbor returns the position one step away in direction d.
// The result is not bounds checked.
func (cp CellPosition) Neighbor(d Direction) CellPosition {
	delta := d.Delta()
	return CellPosition{Row: cp.Row + delta.Row, Col: cp.Col + delta.Col}
}

func (cp CellPosition) String() string {
	return fmt.Sprintf("(%d,%d)", cp.Row, cp.Col)
}

// manhattan returns the grid distance between two cells.
func manhattan(a, b CellPosition) int {
	return abs(a.Row-b.Row) + abs(a.Col-b.Col)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
