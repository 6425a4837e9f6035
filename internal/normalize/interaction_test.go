package normalize_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/observ-ing/core-sub000/internal/jetstream"
	"github.com/observ-ing/core-sub000/internal/normalize"
)

func interactionCommit(rec map[string]any) jetstream.Commit {
	return jetstream.Commit{
		Seq:        5,
		AuthorDID:  "did:plc:erin",
		Operation:  jetstream.OpCreate,
		Collection: normalize.CollectionInteraction,
		RKey:       "in1",
		CID:        "bafyfive",
		Record:     rec,
	}
}

func TestInteraction_ValidRecord_DefaultDirection(t *testing.T) {
	rec := map[string]any{
		"subjectA":        map[string]any{"taxonName": "Apis mellifera", "kingdom": "Animalia"},
		"subjectB":        map[string]any{"taxonName": "Trifolium repens", "kingdom": "Plantae"},
		"interactionType": "pollinates",
	}
	row, ok := normalize.Interaction(interactionCommit(rec))
	require.True(t, ok)
	assert.Equal(t, normalize.DirectionAToB, row.Direction)
	require.NotNil(t, row.SubjectA.TaxonName)
	assert.Equal(t, "Apis mellifera", *row.SubjectA.TaxonName)
}

func TestInteraction_MissingType_Drops(t *testing.T) {
	rec := map[string]any{
		"subjectA": map[string]any{"taxonName": "Apis mellifera"},
		"subjectB": map[string]any{"taxonName": "Trifolium repens"},
	}
	_, ok := normalize.Interaction(interactionCommit(rec))
	assert.False(t, ok)
}

func TestInteraction_OccurrenceRefSubject(t *testing.T) {
	rec := map[string]any{
		"subjectA": map[string]any{
			"occurrence":   map[string]any{"uri": "at://did:plc:alice/org.rwell.test.occurrence/abc123", "subjectIndex": 1.0},
			"taxonName":    "Apis mellifera",
		},
		"subjectB":        map[string]any{"taxonName": "Trifolium repens"},
		"interactionType": "pollinates",
		"direction":       "bidirectional",
	}
	row, ok := normalize.Interaction(interactionCommit(rec))
	require.True(t, ok)
	require.NotNil(t, row.SubjectA.OccurrenceURI)
	assert.Equal(t, "at://did:plc:alice/org.rwell.test.occurrence/abc123", *row.SubjectA.OccurrenceURI)
	require.NotNil(t, row.SubjectA.SubjectIndex)
	assert.Equal(t, int32(1), *row.SubjectA.SubjectIndex)
	assert.Equal(t, "bidirectional", row.Direction)
}
