package db

import "context"

// ObserverParams is one row to (re)write into the observers join table.
type ObserverParams struct {
	AuthorDID string
	Role      ObserverRole
}

// UpsertIdentificationParams is the row shape written by the identification
// normalizer. Taxonomy columns are COALESCEd against the existing row on
// conflict (§4.4) so a later identification that omits optional taxonomy
// fields does not erase previously-known ones.
type UpsertIdentificationParams = Identification

// UpsertCommentParams is the row shape written by the comment normalizer.
type UpsertCommentParams = Comment

// InsertLikeParams is the row shape written by the like normalizer.
type InsertLikeParams = Like

// UpsertInteractionParams is the row shape written by the interaction normalizer.
type UpsertInteractionParams = Interaction

// Querier is the narrow persistence interface the derivation pipeline (C4)
// and the community-identification materializer (C5) depend on. Production
// code is backed by Queries (pgx); tests are backed by a hand-rolled
// go.uber.org/mock fake (db/dbmock).
type Querier interface {
	UpsertOccurrence(ctx context.Context, o Occurrence) error
	DeleteOccurrence(ctx context.Context, uri string) error
	ReplaceObservers(ctx context.Context, occurrenceURI string, observers []ObserverParams) error

	UpsertIdentification(ctx context.Context, i Identification) error
	DeleteIdentification(ctx context.Context, uri string) error
	// GetIdentificationSubject returns the (subjectURI, subjectIndex) an
	// identification points at, or ("", 0) if no row exists. The writer calls
	// it before deleting the identification, so it knows which
	// community-identification subject needs a refresh.
	GetIdentificationSubject(ctx context.Context, uri string) (subjectURI string, subjectIndex int32, err error)
	ListIdentificationsForSubject(ctx context.Context, subjectURI string, subjectIndex int32) ([]Identification, error)

	UpsertComment(ctx context.Context, c Comment) error
	DeleteComment(ctx context.Context, uri string) error

	InsertLikeIgnoreConflict(ctx context.Context, l Like) error
	DeleteLike(ctx context.Context, uri string) error

	UpsertInteraction(ctx context.Context, i Interaction) error
	DeleteInteraction(ctx context.Context, uri string) error

	UpsertCommunityIdentification(ctx context.Context, c CommunityIdentification) error
	DeleteCommunityIdentification(ctx context.Context, subjectURI string, subjectIndex int32) error

	GetCursor(ctx context.Context) (*int64, error)
	UpsertCursor(ctx context.Context, seq int64) error
}
