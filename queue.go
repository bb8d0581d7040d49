package cubesim

// Queue is an unbounded FIFO of moves waiting to be animated.
// The zero value is an empty queue ready to use.
type Queue struct {
	moves []Move
}

// NewQueue creates an empty queue.
func NewQueue() *Queue {
	return &Queue{}
}

// Push appends moves to the tail. Progress is reset on every pushed move,
// so the queue never holds a partly animated turn.
func (q *Queue) Push(moves ...Move) {
	for _, m := range moves {
		m.Progress = 0
		q.moves = append(q.moves, m)
	}
}

// PushNotation parses s and appends every recognised move.
// It returns the number of moves appended.
func (q *Queue) PushNotation(s string) int {
	moves := ParseMoves(s)
	q.Push(moves...)
	return len(moves)
}

// Dequeue removes and returns the head move. ok is false when the queue
// is empty.
func (q *Queue) Dequeue() (m Move, ok bool) {
	if len(q.moves) == 0 {
		return Move{}, false
	}

	m = q.moves[0]
	q.moves[0] = Move{}
	q.moves = q.moves[1:]
	if len(q.moves) == 0 {
		q.moves = nil
	}
	return m, true
}

// Peek returns the head move without removing it.
func (q *Queue) Peek() (Move, bool) {
	if len(q.moves) == 0 {
		return Move{}, false
	}
	return q.moves[0], true
}

// Len returns the number of pending moves.
func (q *Queue) Len() int {
	return len(q.moves)
}

// Moves returns a copy of the pending moves, head first.
func (q *Queue) Moves() []Move {
	return append([]Move(nil), q.moves...)
}

// Clear drops every pending move.
func (q *Queue) Clear() {
	q.moves = nil
}
