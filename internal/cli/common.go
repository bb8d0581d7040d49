package cli

import (
	"fmt"

	"github.com/SeamusWaldron/cubesim"
	"github.com/SeamusWaldron/cubesim/internal/recorder"
	"github.com/SeamusWaldron/cubesim/internal/storage"
)

// openDB opens the journal at the configured path and migrates it.
func openDB() (*storage.DB, error) {
	db, err := storage.Open(cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.MigrateUp(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return db, nil
}

// newAnimator builds a solved cube and an animator from the loaded config.
func newAnimator(loop bool) (*cubesim.Animator, error) {
	cube, err := cubesim.New(cfg.Dim)
	if err != nil {
		return nil, err
	}
	return cubesim.NewAnimator(cube,
		cubesim.WithLogger(logger),
		cubesim.WithTurnSpeed(cfg.Speed),
		cubesim.WithLoop(loop),
	), nil
}

// journal is an open database plus a recording session attached to an
// animator.
type journal struct {
	db      *storage.DB
	session *recorder.Session
}

// startJournal opens the database and records every commit of anim.
func startJournal(anim *cubesim.Animator, notes string) (*journal, error) {
	db, err := openDB()
	if err != nil {
		return nil, err
	}

	session := recorder.NewSession(db, logger)
	if _, err := session.Start(anim.Dim(), notes, version); err != nil {
		db.Close()
		return nil, err
	}
	session.Attach(anim)
	return &journal{db: db, session: session}, nil
}

// Close ends the session and closes the database.
func (j *journal) Close() error {
	if j == nil {
		return nil
	}
	endErr := j.session.End()
	closeErr := j.db.Close()
	if endErr != nil {
		return endErr
	}
	return closeErr
}
