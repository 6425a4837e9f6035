package normalize_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/observ-ing/core-sub000/internal/jetstream"
	"github.com/observ-ing/core-sub000/internal/normalize"
)

func commentCommit(rec map[string]any) jetstream.Commit {
	return jetstream.Commit{
		Seq:        3,
		AuthorDID:  "did:plc:carol",
		Operation:  jetstream.OpCreate,
		Collection: normalize.CollectionComment,
		RKey:       "cm1",
		CID:        "bafythree",
		Record:     rec,
	}
}

func TestComment_ValidRecord(t *testing.T) {
	rec := map[string]any{
		"subject": map[string]any{"uri": "at://did:plc:alice/org.rwell.test.occurrence/abc123", "cid": "bafyone"},
		"body":    "nice find!",
	}
	row, ok := normalize.Comment(commentCommit(rec))
	require.True(t, ok)
	assert.Equal(t, "nice find!", row.Body)
	assert.Nil(t, row.ReplyToURI)
}

func TestComment_MissingBody_Drops(t *testing.T) {
	rec := map[string]any{
		"subject": map[string]any{"uri": "at://did:plc:alice/org.rwell.test.occurrence/abc123", "cid": "bafyone"},
	}
	_, ok := normalize.Comment(commentCommit(rec))
	assert.False(t, ok)
}

func TestComment_WithReplyTo(t *testing.T) {
	rec := map[string]any{
		"subject": map[string]any{"uri": "at://did:plc:alice/org.rwell.test.occurrence/abc123", "cid": "bafyone"},
		"body":    "agreed",
		"replyTo": map[string]any{"uri": "at://did:plc:carol/org.rwell.test.comment/cm0", "cid": "bafyzero"},
	}
	row, ok := normalize.Comment(commentCommit(rec))
	require.True(t, ok)
	require.NotNil(t, row.ReplyToURI)
	assert.Equal(t, "at://did:plc:carol/org.rwell.test.comment/cm0", *row.ReplyToURI)
}
