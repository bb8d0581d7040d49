package storage

import (
	"database/sql"
	"fmt"

	"github.com/SeamusWaldron/cubesim"
)

// TurnRecord is one committed turn in the journal.
type TurnRecord struct {
	TurnID    int64
	SessionID string
	TurnIndex int
	TsMs      int64
	Side      string
	Direction int
	Notation  string
}

// Move converts the record back to a move.
func (t TurnRecord) Move() (cubesim.Move, error) {
	side, ok := cubesim.ParseSide(t.Side)
	if !ok {
		return cubesim.Move{}, fmt.Errorf("turn %d: unknown side %q", t.TurnIndex, t.Side)
	}
	dir := cubesim.Direction(t.Direction)
	if !dir.Valid() {
		return cubesim.Move{}, fmt.Errorf("turn %d: unknown direction %d", t.TurnIndex, t.Direction)
	}
	return cubesim.Move{Side: side, Direction: dir}, nil
}

// TurnRepository provides CRUD operations for turns.
type TurnRepository struct {
	db *DB
}

// NewTurnRepository creates a new turn repository.
func NewTurnRepository(db *DB) *TurnRepository {
	return &TurnRepository{db: db}
}

// Create records a committed turn and returns its ID.
func (r *TurnRepository) Create(sessionID string, turnIndex int, tsMs int64, move cubesim.Move) (int64, error) {
	result, err := r.db.Exec(`
		INSERT INTO turns (session_id, turn_index, ts_ms, side, direction, notation)
		VALUES (?, ?, ?, ?, ?, ?)
	`, sessionID, turnIndex, tsMs, move.Side.String(), int(move.Direction), move.Notation())
	if err != nil {
		return 0, fmt.Errorf("failed to create turn: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get turn ID: %w", err)
	}

	return id, nil
}

// CreateBatch records several turns in one transaction. All share tsMs.
func (r *TurnRepository) CreateBatch(sessionID string, moves []cubesim.Move, startIndex int, tsMs int64) error {
	return r.db.Transaction(func(tx *sql.Tx) error {
		for i, move := range moves {
			_, err := tx.Exec(`
				INSERT INTO turns (session_id, turn_index, ts_ms, side, direction, notation)
				VALUES (?, ?, ?, ?, ?, ?)
			`, sessionID, startIndex+i, tsMs, move.Side.String(), int(move.Direction), move.Notation())
			if err != nil {
				return fmt.Errorf("failed to create turn %d: %w", startIndex+i, err)
			}
		}
		return nil
	})
}

// ListBySession retrieves all turns for a session in commit order.
func (r *TurnRepository) ListBySession(sessionID string) ([]TurnRecord, error) {
	rows, err := r.db.Query(`
		SELECT turn_id, session_id, turn_index, ts_ms, side, direction, notation
		FROM turns
		WHERE session_id = ?
		ORDER BY turn_index
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get turns: %w", err)
	}
	defer rows.Close()

	var turns []TurnRecord
	for rows.Next() {
		var t TurnRecord
		if err := rows.Scan(&t.TurnID, &t.SessionID, &t.TurnIndex, &t.TsMs, &t.Side, &t.Direction, &t.Notation); err != nil {
			return nil, fmt.Errorf("failed to scan turn: %w", err)
		}
		turns = append(turns, t)
	}

	return turns, rows.Err()
}

// NextIndex returns the index the next turn in the session should use.
func (r *TurnRepository) NextIndex(sessionID string) (int, error) {
	var maxIndex sql.NullInt64
	err := r.db.QueryRow(`
		SELECT MAX(turn_index) FROM turns WHERE session_id = ?
	`, sessionID).Scan(&maxIndex)
	if err != nil {
		return 0, fmt.Errorf("failed to get next turn index: %w", err)
	}

	if !maxIndex.Valid {
		return 0, nil
	}
	return int(maxIndex.Int64) + 1, nil
}

// Count returns the number of turns recorded for a session.
func (r *TurnRepository) Count(sessionID string) (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM turns WHERE session_id = ?", sessionID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count turns: %w", err)
	}
	return count, nil
}

// ToMoves converts turn records to moves, stopping at the first bad row.
func ToMoves(records []TurnRecord) ([]cubesim.Move, error) {
	moves := make([]cubesim.Move, 0, len(records))
	for _, rec := range records {
		m, err := rec.Move()
		if err != nil {
			return nil, err
		}
		moves = append(moves, m)
	}
	return moves, nil
}
