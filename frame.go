package cubesim

import "github.com/go-gl/mathgl/mgl64"

// Frame describes what a single tick did to the move in flight.
type Frame struct {
	// Move is a snapshot of the current move after this tick, including
	// its accumulated Progress.
	Move Move
	// Delta is the angle in radians swept this tick. It is negative for
	// prime moves and positive otherwise.
	Delta float64
	// Completed is true on the tick that finished the move. By the time
	// the frame is returned the permutation has been committed.
	Completed bool
}

// Axis returns the outward normal of the turning side in world space,
// with x to the right, y up and z toward the viewer facing the front.
func (f Frame) Axis() mgl64.Vec3 {
	return SideAxis(f.Move.Side)
}

// Angle returns this tick's rotation about Axis. A regular turn is
// clockwise seen from outside the side, which is a negative rotation
// about its outward normal.
func (f Frame) Angle() float64 {
	return -f.Delta
}

// Rotation returns this tick's incremental rotation as a quaternion.
func (f Frame) Rotation() mgl64.Quat {
	return mgl64.QuatRotate(f.Angle(), f.Axis())
}

// Turned returns the rotation accumulated by the move so far.
func (f Frame) Turned() mgl64.Quat {
	angle := -f.Move.Progress
	if f.Move.Direction == Prime {
		angle = -angle
	}
	return mgl64.QuatRotate(angle, f.Axis())
}

// SideAxis returns the outward unit normal of side s.
func SideAxis(s Side) mgl64.Vec3 {
	switch s {
	case Front:
		return mgl64.Vec3{0, 0, 1}
	case Back:
		return mgl64.Vec3{0, 0, -1}
	case Right:
		return mgl64.Vec3{1, 0, 0}
	case Left:
		return mgl64.Vec3{-1, 0, 0}
	case Top:
		return mgl64.Vec3{0, 1, 0}
	case Bottom:
		return mgl64.Vec3{0, -1, 0}
	default:
		return mgl64.Vec3{}
	}
}
