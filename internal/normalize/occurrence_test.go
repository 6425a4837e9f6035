package normalize_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/observ-ing/core-sub000/internal/jetstream"
	"github.com/observ-ing/core-sub000/internal/normalize"
)

func baseOccurrenceCommit(rec map[string]any) jetstream.Commit {
	return jetstream.Commit{
		Seq:        1,
		AuthorDID:  "did:plc:alice",
		Operation:  jetstream.OpCreate,
		Collection: normalize.CollectionOccurrence,
		RKey:       "abc123",
		CID:        "bafyone",
		Record:     rec,
	}
}

func TestOccurrence_ValidRecord(t *testing.T) {
	rec := map[string]any{
		"eventDate": "2024-05-01T10:00:00Z",
		"location": map[string]any{
			"decimalLatitude":  37.5,
			"decimalLongitude": -122.3,
			"country":          "US",
		},
	}
	row, ok := normalize.Occurrence(baseOccurrenceCommit(rec))
	require.True(t, ok)
	assert.Equal(t, "at://did:plc:alice/org.rwell.test.occurrence/abc123", row.URI)
	assert.Equal(t, 37.5, row.Latitude)
	assert.Equal(t, -122.3, row.Longitude)
	require.NotNil(t, row.Country)
	assert.Equal(t, "US", *row.Country)
}

func TestOccurrence_MissingLocation_Drops(t *testing.T) {
	rec := map[string]any{"eventDate": "2024-05-01T10:00:00Z"}
	_, ok := normalize.Occurrence(baseOccurrenceCommit(rec))
	assert.False(t, ok)
}

func TestOccurrence_OutOfRangeLatitude_Drops(t *testing.T) {
	rec := map[string]any{
		"eventDate": "2024-05-01T10:00:00Z",
		"location": map[string]any{
			"decimalLatitude":  95.0,
			"decimalLongitude": 10.0,
		},
	}
	_, ok := normalize.Occurrence(baseOccurrenceCommit(rec))
	assert.False(t, ok)
}

func TestOccurrence_InvalidEventDate_Drops(t *testing.T) {
	rec := map[string]any{
		"eventDate": "not-a-date",
		"location": map[string]any{
			"decimalLatitude":  1.0,
			"decimalLongitude": 1.0,
		},
	}
	_, ok := normalize.Occurrence(baseOccurrenceCommit(rec))
	assert.False(t, ok)
}

func TestOccurrence_CoordinateAsQuotedString(t *testing.T) {
	rec := map[string]any{
		"eventDate": "2024-05-01T10:00:00Z",
		"location": map[string]any{
			"decimalLatitude":  "12.5",
			"decimalLongitude": "45.25",
		},
	}
	row, ok := normalize.Occurrence(baseOccurrenceCommit(rec))
	require.True(t, ok)
	assert.Equal(t, 12.5, row.Latitude)
	assert.Equal(t, 45.25, row.Longitude)
}

func TestObservers_OwnerAndCoObservers(t *testing.T) {
	rec := map[string]any{
		"recordedBy": []any{"did:plc:alice", "did:plc:bob", "did:plc:bob", ""},
	}
	c := baseOccurrenceCommit(rec)
	rows := normalize.Observers(c)
	require.Len(t, rows, 2)
	assert.Equal(t, "did:plc:alice", rows[0].AuthorDID)
	assert.Equal(t, "did:plc:bob", rows[1].AuthorDID)
}

func TestObservers_NoRecordedBy_OwnerOnly(t *testing.T) {
	c := baseOccurrenceCommit(map[string]any{})
	rows := normalize.Observers(c)
	require.Len(t, rows, 1)
	assert.Equal(t, "did:plc:alice", rows[0].AuthorDID)
}
