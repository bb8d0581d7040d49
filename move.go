package cubesim

import (
	"math"
	"strings"
)

// Direction is the direction and magnitude of a face turn.
type Direction int

const (
	Regular Direction = 1  // Clockwise quarter turn, seen facing the side
	Prime   Direction = -1 // Counter-clockwise quarter turn
	Double  Direction = 2  // Half turn
)

func (d Direction) String() string {
	switch d {
	case Regular:
		return "regular"
	case Prime:
		return "prime"
	case Double:
		return "double"
	default:
		return "?"
	}
}

// Valid reports whether d is one of the three turn directions.
func (d Direction) Valid() bool {
	return d == Regular || d == Prime || d == Double
}

// Suffix returns the notation suffix: "", "'" or "2".
func (d Direction) Suffix() string {
	switch d {
	case Prime:
		return "'"
	case Double:
		return "2"
	default:
		return ""
	}
}

// Move is a turn of one side. Progress is the angle in radians the turn
// has swept so far while animating; it has no meaning for cube state.
type Move struct {
	Side      Side
	Direction Direction
	Progress  float64
}

// Target returns the total sweep angle of the move in radians:
// a quarter turn for regular and prime, a half turn for double.
func (m Move) Target() float64 {
	if m.Direction == Double {
		return math.Pi
	}
	return math.Pi / 2
}

// Notation returns the standard notation for this move.
// Examples: F, F', F2, U, U', U2
func (m Move) Notation() string {
	return string(m.Side.Letter()) + m.Direction.Suffix()
}

// String returns the notation string (alias for Notation).
func (m Move) String() string {
	return m.Notation()
}

// Inverse returns the move that undoes m.
// F becomes F', F' becomes F, F2 stays F2.
func (m Move) Inverse() Move {
	inv := Move{Side: m.Side, Direction: m.Direction}
	switch m.Direction {
	case Regular:
		inv.Direction = Prime
	case Prime:
		inv.Direction = Regular
	}
	return inv
}

// ParseMove parses a single notation token into a Move.
// The letter may be upper or lower case. Returns ErrInvalidNotation for
// anything other than Letter, Letter' or Letter2.
func ParseMove(s string) (Move, error) {
	s = strings.TrimSpace(s)
	if len(s) == 0 || len(s) > 2 {
		return Move{}, ErrInvalidNotation
	}

	side, ok := SideFromLetter(s[0])
	if !ok {
		return Move{}, ErrInvalidNotation
	}

	dir := Regular
	if len(s) == 2 {
		switch s[1] {
		case '\'':
			dir = Prime
		case '2':
			dir = Double
		default:
			return Move{}, ErrInvalidNotation
		}
	}

	return Move{Side: side, Direction: dir}, nil
}

// ParseMoves parses a whitespace separated sequence of moves.
// Example: "R U R' U'"
// Unknown tokens are skipped.
func ParseMoves(s string) []Move {
	moves, _ := ParseMovesReport(s)
	return moves
}

// ParseMovesReport is ParseMoves that also returns the skipped tokens.
func ParseMovesReport(s string) (moves []Move, dropped []string) {
	parts := strings.Fields(s)
	moves = make([]Move, 0, len(parts))

	for _, part := range parts {
		move, err := ParseMove(part)
		if err != nil {
			dropped = append(dropped, part)
			continue
		}
		moves = append(moves, move)
	}

	return moves, dropped
}

// FormatMoves formats moves as a space separated notation string.
func FormatMoves(moves []Move) string {
	if len(moves) == 0 {
		return ""
	}

	parts := make([]string, len(moves))
	for i, m := range moves {
		parts[i] = m.Notation()
	}

	return strings.Join(parts, " ")
}
