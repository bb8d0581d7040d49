package server

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/SeamusWaldron/cubesim"
)

// ErrEngineStopped is returned by calls made after Run has exited.
var ErrEngineStopped = errors.New("server: engine stopped")

const subscriberBuffer = 256

// Engine owns an animator on a single goroutine. Everything else reaches
// the animator through Do, so the animator itself needs no locking.
type Engine struct {
	anim     *cubesim.Animator
	interval time.Duration
	logger   *zap.Logger

	cmds chan command
	done chan struct{}

	mu   sync.Mutex
	subs map[chan Event]struct{}
}

type command struct {
	fn    func(*cubesim.Animator)
	reply chan struct{}
}

// NewEngine wraps anim. interval is the frame period.
func NewEngine(anim *cubesim.Animator, interval time.Duration, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	if interval <= 0 {
		interval = time.Second / 60
	}
	e := &Engine{
		anim:     anim,
		interval: interval,
		logger:   logger,
		cmds:     make(chan command),
		done:     make(chan struct{}),
		subs:     make(map[chan Event]struct{}),
	}
	anim.OnCommit(func(m cubesim.Move) {
		snap := anim.Cube().Snapshot()
		e.publish(Event{Type: EventCommit, Move: m.Notation(), Cube: &snap})
	})
	return e
}

// Run drives the animator until ctx is cancelled.
func (e *Engine) Run(ctx context.Context) error {
	defer close(e.done)

	ticker := time.NewTicker(e.interval)
	defer ticker.Stop()

	last := time.Now()
	e.logger.Info("engine started", zap.Duration("interval", e.interval))
	for {
		select {
		case <-ctx.Done():
			e.logger.Info("engine stopped", zap.Int("committed", e.anim.Committed()))
			return nil
		case cmd := <-e.cmds:
			cmd.fn(e.anim)
			close(cmd.reply)
		case now := <-ticker.C:
			elapsed := now.Sub(last)
			last = now
			if frame, ok := e.anim.Tick(elapsed); ok {
				e.publish(Event{Type: EventFrame, Frame: newFrameMsg(frame)})
			}
		}
	}
}

// Do runs fn on the engine goroutine and waits for it to finish.
func (e *Engine) Do(ctx context.Context, fn func(*cubesim.Animator)) error {
	cmd := command{fn: fn, reply: make(chan struct{})}
	select {
	case e.cmds <- cmd:
	case <-e.done:
		return ErrEngineStopped
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case <-cmd.reply:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Enqueue parses notation and queues the recognised moves.
func (e *Engine) Enqueue(ctx context.Context, notation string) (MovesResponse, error) {
	moves, dropped := cubesim.ParseMovesReport(notation)
	resp := MovesResponse{Accepted: make([]string, len(moves)), Dropped: dropped}
	for i, m := range moves {
		resp.Accepted[i] = m.Notation()
	}
	pending, err := query(ctx, e, func(a *cubesim.Animator) int {
		a.Push(moves...)
		return a.Pending()
	})
	if err != nil {
		return MovesResponse{}, err
	}
	resp.Pending = pending
	e.logger.Debug("moves queued",
		zap.Int("accepted", len(moves)),
		zap.Strings("dropped", dropped),
	)
	return resp, nil
}

// State returns the animator status and a cube snapshot.
func (e *Engine) State(ctx context.Context) (StateResponse, error) {
	return query(ctx, e, func(a *cubesim.Animator) StateResponse {
		return StateResponse{Status: statusOf(a), Cube: a.Cube().Snapshot()}
	})
}

// query runs fn on the engine goroutine and returns its result. The result
// only reaches the caller when Do succeeds.
func query[T any](ctx context.Context, e *Engine, fn func(*cubesim.Animator) T) (T, error) {
	out := make(chan T, 1)
	if err := e.Do(ctx, func(a *cubesim.Animator) { out <- fn(a) }); err != nil {
		var zero T
		return zero, err
	}
	return <-out, nil
}

// Subscribe returns a stream of events and a cancel func. Events are
// dropped for a subscriber whose buffer is full.
func (e *Engine) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, subscriberBuffer)
	e.mu.Lock()
	e.subs[ch] = struct{}{}
	e.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			e.mu.Lock()
			delete(e.subs, ch)
			e.mu.Unlock()
		})
	}
}

func (e *Engine) publish(ev Event) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for ch := range e.subs {
		select {
		case ch <- ev:
		default:
			e.logger.Warn("subscriber lagging, event dropped", zap.String("type", ev.Type))
		}
	}
}
