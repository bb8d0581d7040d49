package cubesim

// Predefined moves for convenience.
//
// Example:
//
//	cube.Apply(cubesim.R, cubesim.U, cubesim.RPrime, cubesim.UPrime)
var (
	// Right face moves
	R      = Move{Side: Right, Direction: Regular}
	RPrime = Move{Side: Right, Direction: Prime}
	R2     = Move{Side: Right, Direction: Double}

	// Left face moves
	L      = Move{Side: Left, Direction: Regular}
	LPrime = Move{Side: Left, Direction: Prime}
	L2     = Move{Side: Left, Direction: Double}

	// Up face moves
	U      = Move{Side: Top, Direction: Regular}
	UPrime = Move{Side: Top, Direction: Prime}
	U2     = Move{Side: Top, Direction: Double}

	// Down face moves
	D      = Move{Side: Bottom, Direction: Regular}
	DPrime = Move{Side: Bottom, Direction: Prime}
	D2     = Move{Side: Bottom, Direction: Double}

	// Front face moves
	F      = Move{Side: Front, Direction: Regular}
	FPrime = Move{Side: Front, Direction: Prime}
	F2     = Move{Side: Front, Direction: Double}

	// Back face moves
	B      = Move{Side: Back, Direction: Regular}
	BPrime = Move{Side: Back, Direction: Prime}
	B2     = Move{Side: Back, Direction: Double}
)

// DemoSequence turns every side regular, then prime, then double, each
// time in the order F L B U R D.
const DemoSequence = "F L B U R D F' L' B' U' R' D' F2 L2 B2 U2 R2 D2"

// SexyMove is R U R' U'. Six repetitions return a cube to where it started.
var SexyMove = []Move{R, U, RPrime, UPrime}
