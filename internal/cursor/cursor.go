// Package cursor implements the durable checkpoint (C6): read the
// persisted position on startup, and periodically persist the supervisor's
// in-memory high-water mark so a restart resumes close to where it left
// off.
package cursor

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/observ-ing/core-sub000/internal/store/db"
)

const saveInterval = 30 * time.Second

// Load reads the persisted cursor. A nil result means "start from the
// relay's live position" (§4.6).
func Load(ctx context.Context, q db.Querier) (*int64, error) {
	return q.GetCursor(ctx)
}

// Source supplies the current in-memory high-water mark to save.
type Source interface {
	LastCommittedCursor() (int64, bool)
}

// Saver periodically writes the in-memory cursor to durable storage.
type Saver struct {
	q      db.Querier
	source Source
	logger *zap.Logger

	lastWritten int64
	haveWritten bool
}

func NewSaver(q db.Querier, source Source, logger *zap.Logger) *Saver {
	return &Saver{q: q, source: source, logger: logger}
}

// Run ticks every 30 seconds until ctx is cancelled, writing the cursor
// only when it has changed since the last write (§4.6).
func (s *Saver) Run(ctx context.Context) {
	ticker := time.NewTicker(saveInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.saveOnce(ctx)
		}
	}
}

func (s *Saver) saveOnce(ctx context.Context) {
	seq, ok := s.source.LastCommittedCursor()
	if !ok {
		return
	}
	if s.haveWritten && seq == s.lastWritten {
		return
	}
	if err := s.q.UpsertCursor(ctx, seq); err != nil {
		s.logger.Error("cursor checkpoint failed", zap.Error(err), zap.Int64("cursor", seq))
		return
	}
	s.lastWritten = seq
	s.haveWritten = true
	s.logger.Debug("cursor checkpointed", zap.Int64("cursor", seq))
}
