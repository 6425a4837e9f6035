package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/observ-ing/core-sub000/internal/jetstream"
	"github.com/observ-ing/core-sub000/internal/normalize"
	"github.com/observ-ing/core-sub000/internal/store"
	"github.com/observ-ing/core-sub000/internal/store/db"
	"github.com/observ-ing/core-sub000/internal/store/db/dbmock"
)

func occurrenceCommit(lat, lng any) jetstream.Commit {
	return jetstream.Commit{
		Seq:        100,
		AuthorDID:  "did:plc:alice",
		Operation:  jetstream.OpCreate,
		Collection: normalize.CollectionOccurrence,
		RKey:       "abc123",
		CID:        "bafyone",
		Record: map[string]any{
			"eventDate": "2024-05-01T10:00:00Z",
			"location": map[string]any{
				"decimalLatitude":  lat,
				"decimalLongitude": lng,
			},
		},
	}
}

// S5: malformed coordinates drop the record without touching the database;
// Apply reports the drop through its dropped flag, not as an error.
func TestApply_MalformedCoordinates_DropsWithoutDBWrites(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	q := dbmock.NewMockQuerier(ctrl)
	w := store.New(q)

	kind, dropped, err := w.Apply(context.Background(), occurrenceCommit("200", 10.0))
	require.NoError(t, err)
	assert.True(t, dropped)
	assert.Equal(t, store.RecordKind(""), kind)
}

func TestApply_ValidOccurrence_UpsertsAndReplacesObservers(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	q := dbmock.NewMockQuerier(ctrl)
	q.EXPECT().UpsertOccurrence(gomock.Any(), gomock.Any()).Return(nil)
	q.EXPECT().ReplaceObservers(gomock.Any(), "at://did:plc:alice/org.rwell.test.occurrence/abc123", gomock.Any()).Return(nil)

	w := store.New(q)
	kind, dropped, err := w.Apply(context.Background(), occurrenceCommit(10.0, 20.0))
	require.NoError(t, err)
	assert.False(t, dropped)
	assert.Equal(t, store.KindOccurrence, kind)
}

// Re-delivery of an already-processed commit issues the same upsert again;
// the writer itself carries no dedup state, relying on the database's
// idempotent upsert (S6).
func TestApply_RedeliveredCommit_CallsUpsertAgain(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	q := dbmock.NewMockQuerier(ctrl)
	q.EXPECT().UpsertOccurrence(gomock.Any(), gomock.Any()).Return(nil).Times(2)
	q.EXPECT().ReplaceObservers(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(2)

	w := store.New(q)
	c := occurrenceCommit(10.0, 20.0)
	_, _, err := w.Apply(context.Background(), c)
	require.NoError(t, err)
	_, _, err = w.Apply(context.Background(), c)
	require.NoError(t, err)
}

func TestApply_DeleteOccurrence(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	q := dbmock.NewMockQuerier(ctrl)
	q.EXPECT().DeleteOccurrence(gomock.Any(), "at://did:plc:alice/org.rwell.test.occurrence/abc123").Return(nil)

	w := store.New(q)
	c := occurrenceCommit(10.0, 20.0)
	c.Operation = jetstream.OpDelete
	c.Record = nil
	kind, dropped, err := w.Apply(context.Background(), c)
	require.NoError(t, err)
	assert.False(t, dropped)
	assert.Equal(t, store.KindOccurrence, kind)
}

func TestApply_IdentificationCreate_TriggersCommunityRefresh(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	q := dbmock.NewMockQuerier(ctrl)
	q.EXPECT().UpsertIdentification(gomock.Any(), gomock.Any()).Return(nil)
	q.EXPECT().ListIdentificationsForSubject(gomock.Any(), "at://did:plc:alice/org.rwell.test.occurrence/abc123", int32(0)).
		Return([]db.Identification{{AuthorDID: "did:plc:bob", ScientificName: "Quercus alba", DateIdentified: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}}, nil)
	q.EXPECT().UpsertCommunityIdentification(gomock.Any(), gomock.Any()).Return(nil)

	w := store.New(q)
	c := jetstream.Commit{
		Seq:        101,
		AuthorDID:  "did:plc:bob",
		Operation:  jetstream.OpCreate,
		Collection: normalize.CollectionIdentification,
		RKey:       "id1",
		CID:        "bafytwo",
		Record: map[string]any{
			"subject": map[string]any{"uri": "at://did:plc:alice/org.rwell.test.occurrence/abc123", "cid": "bafyone"},
			"taxon":   map[string]any{"scientificName": "Quercus alba"},
		},
	}
	kind, dropped, err := w.Apply(context.Background(), c)
	require.NoError(t, err)
	assert.False(t, dropped)
	assert.Equal(t, store.KindIdentification, kind)
}

func TestApply_LikeForNonOccurrenceSubject_Dropped(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	q := dbmock.NewMockQuerier(ctrl)
	w := store.New(q)

	c := jetstream.Commit{
		Seq:        102,
		AuthorDID:  "did:plc:dan",
		Operation:  jetstream.OpCreate,
		Collection: normalize.CollectionLike,
		RKey:       "lk1",
		CID:        "bafyfour",
		Record: map[string]any{
			"subject": map[string]any{"uri": "at://did:plc:carol/org.rwell.test.comment/cm1", "cid": "bafythree"},
		},
	}
	_, dropped, err := w.Apply(context.Background(), c)
	require.NoError(t, err)
	assert.True(t, dropped)
}
