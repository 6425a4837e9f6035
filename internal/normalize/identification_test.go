package normalize_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/observ-ing/core-sub000/internal/jetstream"
	"github.com/observ-ing/core-sub000/internal/normalize"
)

func identificationCommit(rec map[string]any) jetstream.Commit {
	return jetstream.Commit{
		Seq:        2,
		AuthorDID:  "did:plc:bob",
		Operation:  jetstream.OpCreate,
		Collection: normalize.CollectionIdentification,
		RKey:       "id1",
		CID:        "bafytwo",
		Record:     rec,
	}
}

func TestIdentification_ValidRecord(t *testing.T) {
	rec := map[string]any{
		"subject": map[string]any{"uri": "at://did:plc:alice/org.rwell.test.occurrence/abc123", "cid": "bafyone"},
		"taxon":   map[string]any{"scientificName": "Turdus migratorius", "kingdom": "Animalia"},
	}
	row, ok := normalize.Identification(identificationCommit(rec))
	require.True(t, ok)
	assert.Equal(t, "Turdus migratorius", row.ScientificName)
	assert.Equal(t, int32(0), row.SubjectIndex)
	require.NotNil(t, row.TaxonKingdom)
	assert.Equal(t, "Animalia", *row.TaxonKingdom)
}

func TestIdentification_MissingScientificName_Drops(t *testing.T) {
	rec := map[string]any{
		"subject": map[string]any{"uri": "at://did:plc:alice/org.rwell.test.occurrence/abc123", "cid": "bafyone"},
		"taxon":   map[string]any{"kingdom": "Animalia"},
	}
	_, ok := normalize.Identification(identificationCommit(rec))
	assert.False(t, ok)
}

func TestIdentification_MissingSubjectCID_Drops(t *testing.T) {
	rec := map[string]any{
		"subject": map[string]any{"uri": "at://did:plc:alice/org.rwell.test.occurrence/abc123"},
		"taxon":   map[string]any{"scientificName": "Turdus migratorius"},
	}
	_, ok := normalize.Identification(identificationCommit(rec))
	assert.False(t, ok)
}

func TestIdentification_ExplicitSubjectIndex(t *testing.T) {
	rec := map[string]any{
		"subject":      map[string]any{"uri": "at://did:plc:alice/org.rwell.test.occurrence/abc123", "cid": "bafyone"},
		"taxon":        map[string]any{"scientificName": "Turdus migratorius"},
		"subjectIndex": 2.0,
	}
	row, ok := normalize.Identification(identificationCommit(rec))
	require.True(t, ok)
	assert.Equal(t, int32(2), row.SubjectIndex)
}
