// Package store implements the derivation pipeline's writer (C4): routes a
// decoded commit through the record normalizer and into the seven-table
// upsert/delete contract, including the observer-table rebuild and the
// community-identification refresh trigger.
package store

import (
	"context"
	"fmt"

	"github.com/observ-ing/core-sub000/internal/community"
	"github.com/observ-ing/core-sub000/internal/jetstream"
	"github.com/observ-ing/core-sub000/internal/normalize"
	"github.com/observ-ing/core-sub000/internal/store/db"
)

// RecordKind identifies which stats counter a successfully processed
// commit belongs to (§4.7: "each successful write increments exactly one
// type counter").
type RecordKind string

const (
	KindOccurrence     RecordKind = "occurrences"
	KindIdentification RecordKind = "identifications"
	KindComment        RecordKind = "comments"
	KindInteraction    RecordKind = "interactions"
	KindLike           RecordKind = "likes"
)

// Writer applies decoded commits to durable storage.
type Writer struct {
	q db.Querier
}

func New(q db.Querier) *Writer { return &Writer{q: q} }

// Apply routes one commit to its collection/operation handler. dropped is
// true for a normalizer-drop (unknown collection, missing required field,
// invalid coordinates/date, like of a non-occurrence subject) and is
// reported with a nil err; the supervisor counts drops under its error
// counter all the same. A non-nil err is a database failure and is always
// counted as an error by the caller.
func (w *Writer) Apply(ctx context.Context, c jetstream.Commit) (kind RecordKind, dropped bool, err error) {
	switch c.Collection {
	case normalize.CollectionOccurrence:
		return w.applyOccurrence(ctx, c)
	case normalize.CollectionIdentification:
		return w.applyIdentification(ctx, c)
	case normalize.CollectionComment:
		return w.applyComment(ctx, c)
	case normalize.CollectionLike:
		return w.applyLike(ctx, c)
	case normalize.CollectionInteraction:
		return w.applyInteraction(ctx, c)
	default:
		return "", true, nil
	}
}

func (w *Writer) applyOccurrence(ctx context.Context, c jetstream.Commit) (RecordKind, bool, error) {
	if c.Operation == jetstream.OpDelete {
		if err := w.q.DeleteOccurrence(ctx, c.URI()); err != nil {
			return KindOccurrence, false, fmt.Errorf("delete occurrence: %w", err)
		}
		return KindOccurrence, false, nil
	}

	row, ok := normalize.Occurrence(c)
	if !ok {
		return "", true, nil
	}
	if err := w.q.UpsertOccurrence(ctx, row); err != nil {
		return KindOccurrence, false, fmt.Errorf("upsert occurrence: %w", err)
	}
	if err := w.q.ReplaceObservers(ctx, row.URI, normalize.Observers(c)); err != nil {
		return KindOccurrence, false, fmt.Errorf("replace observers: %w", err)
	}
	return KindOccurrence, false, nil
}

func (w *Writer) applyIdentification(ctx context.Context, c jetstream.Commit) (RecordKind, bool, error) {
	if c.Operation == jetstream.OpDelete {
		subjectURI, subjectIndex, err := w.q.GetIdentificationSubject(ctx, c.URI())
		if err != nil {
			return KindIdentification, false, fmt.Errorf("lookup identification subject: %w", err)
		}
		if err := w.q.DeleteIdentification(ctx, c.URI()); err != nil {
			return KindIdentification, false, fmt.Errorf("delete identification: %w", err)
		}
		if subjectURI != "" {
			if err := community.Refresh(ctx, w.q, subjectURI, subjectIndex); err != nil {
				return KindIdentification, false, fmt.Errorf("refresh community id: %w", err)
			}
		}
		return KindIdentification, false, nil
	}

	row, ok := normalize.Identification(c)
	if !ok {
		return "", true, nil
	}
	if err := w.q.UpsertIdentification(ctx, row); err != nil {
		return KindIdentification, false, fmt.Errorf("upsert identification: %w", err)
	}
	if err := community.Refresh(ctx, w.q, row.SubjectURI, row.SubjectIndex); err != nil {
		return KindIdentification, false, fmt.Errorf("refresh community id: %w", err)
	}
	return KindIdentification, false, nil
}

func (w *Writer) applyComment(ctx context.Context, c jetstream.Commit) (RecordKind, bool, error) {
	if c.Operation == jetstream.OpDelete {
		if err := w.q.DeleteComment(ctx, c.URI()); err != nil {
			return KindComment, false, fmt.Errorf("delete comment: %w", err)
		}
		return KindComment, false, nil
	}

	row, ok := normalize.Comment(c)
	if !ok {
		return "", true, nil
	}
	if err := w.q.UpsertComment(ctx, row); err != nil {
		return KindComment, false, fmt.Errorf("upsert comment: %w", err)
	}
	return KindComment, false, nil
}

func (w *Writer) applyLike(ctx context.Context, c jetstream.Commit) (RecordKind, bool, error) {
	if c.Operation == jetstream.OpDelete {
		// Deletes are always processed regardless of subject (§4.3).
		if err := w.q.DeleteLike(ctx, c.URI()); err != nil {
			return KindLike, false, fmt.Errorf("delete like: %w", err)
		}
		return KindLike, false, nil
	}

	row, ok := normalize.Like(c)
	if !ok {
		return "", true, nil
	}
	if !normalize.IsForOccurrence(row.SubjectURI) {
		return "", true, nil
	}
	if err := w.q.InsertLikeIgnoreConflict(ctx, row); err != nil {
		return KindLike, false, fmt.Errorf("insert like: %w", err)
	}
	return KindLike, false, nil
}

func (w *Writer) applyInteraction(ctx context.Context, c jetstream.Commit) (RecordKind, bool, error) {
	if c.Operation == jetstream.OpDelete {
		if err := w.q.DeleteInteraction(ctx, c.URI()); err != nil {
			return KindInteraction, false, fmt.Errorf("delete interaction: %w", err)
		}
		return KindInteraction, false, nil
	}

	row, ok := normalize.Interaction(c)
	if !ok {
		return "", true, nil
	}
	if err := w.q.UpsertInteraction(ctx, row); err != nil {
		return KindInteraction, false, fmt.Errorf("upsert interaction: %w", err)
	}
	return KindInteraction, false, nil
}
