package cubesim

import "strings"

// Side identifies one of the six faces of the cube.
// The numeric value is also the face's storage index.
type Side int

const (
	Bottom Side = 0
	Front  Side = 1
	Left   Side = 2
	Back   Side = 3
	Right  Side = 4
	Top    Side = 5
)

// Sides lists every side in storage order.
var Sides = [6]Side{Bottom, Front, Left, Back, Right, Top}

func (s Side) String() string {
	switch s {
	case Bottom:
		return "bottom"
	case Front:
		return "front"
	case Left:
		return "left"
	case Back:
		return "back"
	case Right:
		return "right"
	case Top:
		return "top"
	default:
		return "?"
	}
}

// Letter returns the notation letter for the side (U, D, L, R, F, B).
func (s Side) Letter() byte {
	switch s {
	case Top:
		return 'U'
	case Bottom:
		return 'D'
	case Left:
		return 'L'
	case Right:
		return 'R'
	case Front:
		return 'F'
	case Back:
		return 'B'
	default:
		return '?'
	}
}

// Valid reports whether s is one of the six sides.
func (s Side) Valid() bool {
	return s >= Bottom && s <= Top
}

// Opposite returns the side across the cube from s.
func (s Side) Opposite() Side {
	switch s {
	case Bottom:
		return Top
	case Top:
		return Bottom
	case Front:
		return Back
	case Back:
		return Front
	case Left:
		return Right
	case Right:
		return Left
	default:
		return s
	}
}

// SideFromLetter maps a notation letter to its side. Lower case is accepted.
func SideFromLetter(b byte) (Side, bool) {
	switch b {
	case 'U', 'u':
		return Top, true
	case 'D', 'd':
		return Bottom, true
	case 'L', 'l':
		return Left, true
	case 'R', 'r':
		return Right, true
	case 'F', 'f':
		return Front, true
	case 'B', 'b':
		return Back, true
	default:
		return 0, false
	}
}

// ParseSide accepts a side name ("front") or notation letter ("F").
func ParseSide(s string) (Side, bool) {
	s = strings.TrimSpace(s)
	if len(s) == 1 {
		return SideFromLetter(s[0])
	}
	for _, side := range Sides {
		if strings.EqualFold(s, side.String()) {
			return side, true
		}
	}
	return 0, false
}

// Color represents a tile color.
type Color byte

// Colors are numbered so that Color(side) is the side's solved color.
const (
	White  Color = 0 // Bottom face when solved
	Blue   Color = 1 // Front face when solved
	Orange Color = 2 // Left face when solved
	Green  Color = 3 // Back face when solved
	Red    Color = 4 // Right face when solved
	Yellow Color = 5 // Top face when solved
)

func (c Color) String() string {
	switch c {
	case White:
		return "W"
	case Blue:
		return "B"
	case Orange:
		return "O"
	case Green:
		return "G"
	case Red:
		return "R"
	case Yellow:
		return "Y"
	default:
		return "?"
	}
}

// Name returns the lower-case color name.
func (c Color) Name() string {
	switch c {
	case White:
		return "white"
	case Blue:
		return "blue"
	case Orange:
		return "orange"
	case Green:
		return "green"
	case Red:
		return "red"
	case Yellow:
		return "yellow"
	default:
		return "unknown"
	}
}

// SolvedColor returns the color every cell of s shows when solved.
func SolvedColor(s Side) Color {
	return Color(s)
}
