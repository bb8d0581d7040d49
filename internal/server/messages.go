package server

import "github.com/SeamusWaldron/cubesim"

// Event types pushed to websocket subscribers.
const (
	EventFrame  = "frame"
	EventCommit = "commit"
	EventState  = "state"
)

// Event is one message on the websocket stream.
type Event struct {
	Type   string            `json:"type"`
	Frame  *FrameMsg         `json:"frame,omitempty"`
	Move   string            `json:"move,omitempty"`
	Status *Status           `json:"status,omitempty"`
	Cube   *cubesim.Snapshot `json:"cube,omitempty"`
}

// FrameMsg is a renderer-facing copy of cubesim.Frame.
type FrameMsg struct {
	Move      string     `json:"move"`
	Side      string     `json:"side"`
	Delta     float64    `json:"delta"`
	Progress  float64    `json:"progress"`
	Target    float64    `json:"target"`
	Completed bool       `json:"completed"`
	Axis      [3]float64 `json:"axis"`
	Angle     float64    `json:"angle"`
}

func newFrameMsg(f cubesim.Frame) *FrameMsg {
	axis := f.Axis()
	return &FrameMsg{
		Move:      f.Move.Notation(),
		Side:      f.Move.Side.String(),
		Delta:     f.Delta,
		Progress:  f.Move.Progress,
		Target:    f.Move.Target(),
		Completed: f.Completed,
		Axis:      [3]float64{axis.X(), axis.Y(), axis.Z()},
		Angle:     f.Angle(),
	}
}

// Status summarises the animator.
type Status struct {
	State     string  `json:"state"`
	Current   string  `json:"current,omitempty"`
	Progress  float64 `json:"progress,omitempty"`
	Pending   int     `json:"pending"`
	Committed int     `json:"committed"`
	Paused    bool    `json:"paused"`
	Speed     float64 `json:"speed"`
}

func statusOf(a *cubesim.Animator) Status {
	st := Status{
		State:     a.State().String(),
		Pending:   a.Pending(),
		Committed: a.Committed(),
		Paused:    a.Paused(),
		Speed:     a.Speed(),
	}
	if m, ok := a.Current(); ok {
		st.Current = m.Notation()
		st.Progress = m.Progress
	}
	return st
}

// StateResponse is the body of GET /state.
type StateResponse struct {
	Status Status           `json:"status"`
	Cube   cubesim.Snapshot `json:"cube"`
}

// MovesRequest is the JSON body of POST /moves.
type MovesRequest struct {
	Moves string `json:"moves"`
}

// MovesResponse reports what POST /moves queued.
type MovesResponse struct {
	Accepted []string `json:"accepted"`
	Dropped  []string `json:"dropped,omitempty"`
	Pending  int      `json:"pending"`
}

// ClientMsg is a command read from a websocket client.
type ClientMsg struct {
	Moves string  `json:"moves,omitempty"`
	Pause *bool   `json:"pause,omitempty"`
	Speed float64 `json:"speed,omitempty"`
}
