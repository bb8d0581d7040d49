// Package recorder journals committed turns into the storage layer.
package recorder

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/SeamusWaldron/cubesim"
	"github.com/SeamusWaldron/cubesim/internal/storage"
)

var (
	ErrAlreadyRecording = errors.New("recorder: session already in progress")
	ErrNotRecording     = errors.New("recorder: no session in progress")
)

// SessionState represents the current state of a recording session.
type SessionState int

const (
	StateIdle SessionState = iota
	StateRecording
	StateEnded
)

// String returns the string representation of the session state.
func (s SessionState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRecording:
		return "recording"
	case StateEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// Session records the turns an animator commits.
type Session struct {
	logger *zap.Logger

	mu        sync.RWMutex
	state     SessionState
	sessionID string
	startTime time.Time
	turnIndex int
	lastErr   error

	sessionRepo *storage.SessionRepository
	turnRepo    *storage.TurnRepository

	onTurn func(cubesim.Move)
}

// NewSession creates a new session manager. A nil logger discards output.
func NewSession(db *storage.DB, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{
		logger:      logger,
		state:       StateIdle,
		sessionRepo: storage.NewSessionRepository(db),
		turnRepo:    storage.NewTurnRepository(db),
	}
}

// SetTurnCallback sets a callback run after each turn is stored.
func (s *Session) SetTurnCallback(cb func(cubesim.Move)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onTurn = cb
}

// State returns the current session state.
func (s *Session) State() SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// SessionID returns the current session ID.
func (s *Session) SessionID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sessionID
}

// TurnCount returns how many turns have been stored this session.
func (s *Session) TurnCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.turnIndex
}

// Err returns the last storage error seen by the commit hook.
func (s *Session) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// Start opens a new session for a cube of the given dimension.
func (s *Session) Start(dim int, notes, appVersion string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateRecording {
		return "", ErrAlreadyRecording
	}

	id, err := s.sessionRepo.Create(dim, notes, appVersion)
	if err != nil {
		return "", fmt.Errorf("failed to create session: %w", err)
	}

	s.sessionID = id
	s.startTime = time.Now()
	s.turnIndex = 0
	s.lastErr = nil
	s.state = StateRecording

	s.logger.Info("session started", zap.String("session", id), zap.Int("dim", dim))
	return id, nil
}

// End closes the current session.
func (s *Session) End() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateRecording {
		return ErrNotRecording
	}

	if err := s.sessionRepo.End(s.sessionID); err != nil {
		return fmt.Errorf("failed to end session: %w", err)
	}

	s.state = StateEnded
	s.logger.Info("session ended",
		zap.String("session", s.sessionID),
		zap.Int("turns", s.turnIndex),
	)
	return nil
}

// Record stores one committed turn. Turns outside a session are ignored.
func (s *Session) Record(m cubesim.Move) error {
	s.mu.Lock()

	if s.state != StateRecording {
		s.mu.Unlock()
		return nil
	}

	tsMs := time.Since(s.startTime).Milliseconds()
	if _, err := s.turnRepo.Create(s.sessionID, s.turnIndex, tsMs, m); err != nil {
		s.lastErr = err
		s.mu.Unlock()
		return fmt.Errorf("failed to store turn: %w", err)
	}
	s.turnIndex++
	cb := s.onTurn
	s.mu.Unlock()

	if cb != nil {
		cb(m)
	}
	return nil
}

// Attach registers the session as a commit hook on the animator.
// Storage errors are logged and kept for Err.
func (s *Session) Attach(a *cubesim.Animator) {
	a.OnCommit(func(m cubesim.Move) {
		if err := s.Record(m); err != nil {
			s.logger.Error("journal write failed", zap.Error(err), zap.String("move", m.Notation()))
		}
	})
}
