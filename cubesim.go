// Package cubesim models an N×N×N twisty cube and animates its face turns.
//
// # Features
//
//   - Cube state for any dimension (2x2, 3x3, 7x7, ...)
//   - Face turns for all six sides in three directions
//   - Standard notation parsing (F, F', F2, ...)
//   - Frame-driven turn animation that commits each turn exactly once
//
// # Quick Start
//
// Drive an animator from your render loop:
//
//	cube, err := cubesim.New(3)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	anim := cubesim.NewAnimator(cube)
//	anim.Enqueue("R U R' U'")
//
//	for {
//	    frame, ok := anim.Tick(frameTime)
//	    if ok {
//	        // rotate the tiles in cube.TurningCells(frame.Move.Side)
//	        // by frame.Rotation()
//	    }
//	}
//
// # Standalone Cube
//
// The Cube type can be used without the animator:
//
//	cube, _ := cubesim.New(4)
//	cube.Apply(cubesim.R, cubesim.U, cubesim.RPrime, cubesim.UPrime)
//	cube.ApplyNotation("F B2 L' D")
//	fmt.Println(cube)
//
// # Sides and Storage Order
//
// Faces are stored in the order bottom, front, left, back, right, top.
// Opposite faces use mirrored index conventions, so a regular turn rotates
// the left, bottom and front grids counter-clockwise in index space while
// right, back and top rotate clockwise.
package cubesim
