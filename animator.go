package cubesim

import (
	"math"
	"time"

	"go.uber.org/zap"
)

// State is the animator's state.
type State int

const (
	Idle      State = 0 // No move in flight
	Animating State = 1 // A move is advancing toward its target angle
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Animating:
		return "animating"
	default:
		return "?"
	}
}

// Animator paces queued moves over time and commits each one to the cube
// exactly once, when its animation completes.
//
// An Animator is driven by calling Tick (or Advance) once per frame. It is
// not safe for concurrent use; all mutation of the cube and the queue
// happens inside those calls. Skipping ticks pauses the animation without
// corrupting state, since the cube only changes at completion.
type Animator struct {
	cube   *Cube
	queue  *Queue
	logger *zap.Logger
	speed  float64
	loop   bool

	current Move
	active  bool
	paused  bool

	committed   int
	commitHooks []func(Move)
}

// NewAnimator creates an animator for cube.
func NewAnimator(cube *Cube, opts ...Option) *Animator {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	q := cfg.queue
	if q == nil {
		q = NewQueue()
	}

	return &Animator{
		cube:   cube,
		queue:  q,
		logger: cfg.logger,
		speed:  cfg.speed,
		loop:   cfg.loop,
	}
}

// Cube returns the cube the animator commits to.
func (a *Animator) Cube() *Cube {
	return a.cube
}

// Dim returns the cube dimension.
func (a *Animator) Dim() int {
	return a.cube.Dim()
}

// Queue returns the pending move queue.
func (a *Animator) Queue() *Queue {
	return a.queue
}

// Enqueue parses notation and appends the recognised moves to the queue.
// Unknown tokens are dropped. It returns the number of moves queued.
func (a *Animator) Enqueue(notation string) int {
	n := a.queue.PushNotation(notation)
	a.logger.Debug("moves queued",
		zap.String("notation", notation),
		zap.Int("accepted", n),
		zap.Int("pending", a.queue.Len()),
	)
	return n
}

// Push appends moves to the queue.
func (a *Animator) Push(moves ...Move) {
	a.queue.Push(moves...)
}

// OnCommit registers a callback that fires after each move is committed
// to the cube. Callbacks must not call Tick or Advance.
func (a *Animator) OnCommit(fn func(Move)) {
	a.commitHooks = append(a.commitHooks, fn)
}

// State returns Animating while a move is in flight, Idle otherwise.
func (a *Animator) State() State {
	if a.active {
		return Animating
	}
	return Idle
}

// Current returns the move in flight.
func (a *Animator) Current() (Move, bool) {
	return a.current, a.active
}

// Pending returns the number of queued moves, not counting the current one.
func (a *Animator) Pending() int {
	return a.queue.Len()
}

// Committed returns how many moves have been committed so far.
func (a *Animator) Committed() int {
	return a.committed
}

// Speed returns the turn speed in radians per second.
func (a *Animator) Speed() float64 {
	return a.speed
}

// SetSpeed changes the turn speed. Non-positive values are ignored.
func (a *Animator) SetSpeed(radiansPerSecond float64) {
	if radiansPerSecond > 0 && !math.IsInf(radiansPerSecond, 0) {
		a.speed = radiansPerSecond
	}
}

// Pause stops ticks from having any effect until Resume is called.
func (a *Animator) Pause() {
	a.paused = true
}

// Resume undoes Pause.
func (a *Animator) Resume() {
	a.paused = false
}

// Paused reports whether the animator is paused.
func (a *Animator) Paused() bool {
	return a.paused
}

// Tick advances the animation by elapsed wall time, converted to an angle
// with the animator's turn speed. See Advance.
func (a *Animator) Tick(elapsed time.Duration) (Frame, bool) {
	return a.Advance(elapsed.Seconds() * a.speed)
}

// Advance moves the current turn forward by angle radians.
//
// When no move is in flight the next one is taken from the queue and
// advanced by angle on this same call; if the queue is empty nothing
// happens and ok is false. Double moves advance at
// twice the given angle so every turn appears to rotate at the same speed.
// The step that reaches the target angle is clamped to land on it
// exactly, the move is committed, and the next queued move (if any)
// becomes current.
func (a *Animator) Advance(angle float64) (frame Frame, ok bool) {
	if a.paused {
		return Frame{}, false
	}

	if !a.active {
		m, ok := a.queue.Dequeue()
		if !ok {
			return Frame{}, false
		}
		a.start(m)
	}

	if angle < 0 || math.IsNaN(angle) {
		angle = 0
	}

	step := angle
	if a.current.Direction == Double {
		step *= 2
	}

	target := a.current.Target()
	if a.current.Progress+step >= target {
		step = target - a.current.Progress
		frame.Completed = true
	}
	a.current.Progress += step

	frame.Move = a.current
	frame.Delta = step
	if a.current.Direction == Prime {
		frame.Delta = -step
	}

	if frame.Completed {
		a.commit(a.loop)
		if next, ok := a.queue.Dequeue(); ok {
			a.start(next)
		}
	}

	return frame, true
}

// Flush commits the current move and every queued move immediately,
// without animating. Loop mode does not apply. It returns the number of
// moves committed.
func (a *Animator) Flush() int {
	n := 0
	for {
		if !a.active {
			m, ok := a.queue.Dequeue()
			if !ok {
				return n
			}
			a.start(m)
		}
		a.current.Progress = a.current.Target()
		a.commit(false)
		n++
	}
}

func (a *Animator) start(m Move) {
	m.Progress = 0
	a.current = m
	a.active = true
	a.logger.Debug("turn started",
		zap.String("move", m.Notation()),
		zap.Int("pending", a.queue.Len()),
	)
}

// commit applies the current move to the cube and clears it.
func (a *Animator) commit(requeue bool) {
	m := a.current
	a.current = Move{}
	a.active = false

	a.cube.Turn(m)
	a.committed++

	a.logger.Debug("turn committed",
		zap.String("move", m.Notation()),
		zap.Int("committed", a.committed),
	)

	for _, fn := range a.commitHooks {
		fn(m)
	}

	if requeue {
		a.queue.Push(m)
	}
}
