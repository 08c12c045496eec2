package maze

import (
	"errors"
	"fmt"
	"strings"
)

// Direction identifies one side of a cell.
type Direction int

// Directions in their fixed enumeration order.
const (
	Top Direction = iota
	Right
	Bottom
	Left
)

var (
	// Directions lists every direction in enumeration order (top, right, bottom, left).
	Directions = []Direction{Top, Right, Bottom, Left}

	// DefaultEntrySides are the sides opened on the entry row. The bottom wall stays closed
	// so the corridor still funnels into the carved maze one column at a time.
	DefaultEntrySides = []Direction{Top, Left, Right}

	ErrUnknownDirection = errors.New("unknown direction")
)

var directionAliases = map[string]Direction{
	"top":    Top,
	"up":     Top,
	"north":  Top,
	"right":  Right,
	"east":   Right,
	"bottom": Bottom,
	"down":   Bottom,
	"south":  Bottom,
	"left":   Left,
	"west":   Left,
}

// ParseDirection converts a direction name such as "top" or "left" into a Direction.
func ParseDirection(s string) (Direction, error) {
	d, ok := directionAliases[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownDirection, s)
	}
	return d, nil
}

// ParseDirections parses a comma separated list of direction names.
// An empty string yields no directions.
func ParseDirections(s string) ([]Direction, error) {
	var dirs []Direction
	for _, part := range strings.Split(s, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		d, err := ParseDirection(part)
		if err != nil {
			return nil, err
		}
		dirs = append(dirs, d)
	}
	return dirs, nil
}

// Delta returns the column and row offsets of a step in the direction.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case Top:
		return 0, -1
	case Right:
		return 1, 0
	case Bottom:
		return 0, 1
	case Left:
		return -1, 0
	default:
		return 0, 0
	}
}

// Opposite returns the direction facing back.
func (d Direction) Opposite() Direction {
	return (d + 2) % 4
}

// Valid reports whether d is one of the four directions.
func (d Direction) Valid() bool {
	return d >= Top && d <= Left
}

func (d Direction) String() string {
	switch d {
	case Top:
		return "top"
	case Right:
		return "right"
	case Bottom:
		return "bottom"
	case Left:
		return "left"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (d Direction) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownDirection, int(d))
	}
	return []byte(d.String()), nil
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

// Position is a grid coordinate: X is the column and Y the row, both 0-indexed.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Add returns the position one step away in direction d.
func (p Position) Add(d Direction) Position {
	dx, dy := d.Delta()
	return Position{X: p.X + dx, Y: p.Y + dy}
}

// Manhattan returns |Δx| + |Δy| between p and o.
func (p Position) Manhattan(o Position) int {
	return abs(p.X-o.X) + abs(p.Y-o.Y)
}

// DirectionTo returns the direction leading from p to an orthogonally adjacent o.
func (p Position) DirectionTo(o Position) (Direction, bool) {
	for _, d := range Directions {
		if p.Add(d) == o {
			return d, true
		}
	}
	return 0, false
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
