// Package supervisor wires the subscription client, normalizer, and writer
// together (C7): it fans events from C1 into the derivation pipeline,
// tracks shared in-memory state for the operator HTTP surface, and runs
// the periodic throughput/lag log line.
package supervisor

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/observ-ing/core-sub000/internal/jetstream"
	"github.com/observ-ing/core-sub000/internal/store"
)

const statsLogInterval = 10 * time.Second

// Supervisor runs the subscription consumer and exposes State for the
// cursor saver and HTTP surface to read.
type Supervisor struct {
	sub    *jetstream.Subscription
	writer *store.Writer
	state  *State
	logger *zap.Logger
	m      instruments
}

func New(sub *jetstream.Subscription, writer *store.Writer, logger *zap.Logger) *Supervisor {
	return &Supervisor{sub: sub, writer: writer, state: NewState(), logger: logger, m: newInstruments()}
}

// State exposes the shared read-only state cell.
func (s *Supervisor) State() *State { return s.state }

// Consume drains the subscription's event channel and dispatches commits
// into the pipeline until the channel closes (i.e. until Subscription.Run
// returns). It never blocks on I/O while holding State's lock (§5).
func (s *Supervisor) Consume(ctx context.Context) {
	var (
		eventsSinceLog  int
		commitsSinceLog int
		lastLog         = time.Now()
		lastDropped     int64
	)

	// reconcileDropped folds C1's backpressure-drop counter (§5: "a dropped
	// send is treated as a soft failure: the event is discarded, errors
	// incremented") into the shared error counters. It is polled rather than
	// event-driven because a drop, by definition, couldn't be delivered as
	// an event of its own.
	reconcileDropped := func() {
		dropped := s.sub.DroppedCount()
		if delta := dropped - lastDropped; delta > 0 {
			for i := int64(0); i < delta; i++ {
				s.state.RecordError()
				s.m.recordError(ctx)
			}
			s.logger.Warn("commits dropped under consumer backpressure", zap.Int64("count", delta))
			lastDropped = dropped
		}
	}

	logThroughput := func() {
		reconcileDropped()
		elapsed := time.Since(lastLog).Seconds()
		if elapsed <= 0 {
			return
		}
		s.logger.Info("ingest throughput",
			zap.Float64("events_per_sec", float64(eventsSinceLog)/elapsed),
			zap.Float64("commits_per_sec", float64(commitsSinceLog)/elapsed),
			zap.Int64("lag_seconds", s.observedLagSeconds()),
		)
		eventsSinceLog, commitsSinceLog = 0, 0
		lastLog = time.Now()
	}

	ticker := time.NewTicker(statsLogInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			reconcileDropped()
			return
		case <-ticker.C:
			logThroughput()
		case ev, ok := <-s.sub.Events():
			if !ok {
				reconcileDropped()
				return
			}
			eventsSinceLog++
			s.handleEvent(ctx, ev)
			if ev.Kind == jetstream.EventCommit {
				commitsSinceLog++
			}
		}
	}
}

func (s *Supervisor) handleEvent(ctx context.Context, ev jetstream.Event) {
	switch ev.Kind {
	case jetstream.EventConnected:
		s.state.SetConnected(true)
		s.logger.Info("jetstream connected")
	case jetstream.EventDisconnected:
		s.state.SetConnected(false)
		s.logger.Info("jetstream disconnected")
	case jetstream.EventError:
		s.state.SetConnected(true) // non-terminal; C1's reconnect loop handles recovery
		s.state.RecordError()
		s.m.recordError(ctx)
		s.logger.Warn("jetstream error", zap.Error(ev.Err))
	case jetstream.EventTiming:
		// used only for lag display; no state beyond last-processed is kept.
	case jetstream.EventCommit:
		s.processCommit(ctx, *ev.Commit)
	}
}

func (s *Supervisor) processCommit(ctx context.Context, c jetstream.Commit) {
	kind, dropped, err := s.writer.Apply(ctx, c)
	if err != nil {
		s.state.RecordError()
		s.m.recordError(ctx)
		s.logger.Error("write failed",
			zap.String("uri", c.URI()), zap.String("collection", c.Collection),
			zap.String("operation", string(c.Operation)), zap.Error(err))
		return
	}
	if dropped {
		s.state.RecordError()
		s.m.recordError(ctx)
		s.logger.Debug("record dropped",
			zap.String("uri", c.URI()), zap.String("collection", c.Collection))
		return
	}

	singular := singularKind(kind)
	s.state.RecordSuccess(singular, string(c.Operation), c.URI(), c.Seq, c.Time)
	s.m.recordSuccess(ctx, singular)
}

func singularKind(k store.RecordKind) string {
	switch k {
	case store.KindOccurrence:
		return "occurrence"
	case store.KindIdentification:
		return "identification"
	case store.KindComment:
		return "comment"
	case store.KindInteraction:
		return "interaction"
	case store.KindLike:
		return "like"
	default:
		return string(k)
	}
}

func (s *Supervisor) observedLagSeconds() int64 {
	snap := s.state.Snapshot()
	if snap.LastProcessed == nil {
		return 0
	}
	lag := time.Since(snap.LastProcessed.Time)
	if lag < 0 {
		return 0
	}
	return int64(lag.Seconds())
}
