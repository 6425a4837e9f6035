package jetstream

import (
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/observ-ing/core-sub000/internal/carblock"
)

func emptyCommitFrame(t *testing.T) []byte {
	t.Helper()
	header := carblock.FrameHeader{Op: 1, T: "#commit"}
	body := carblock.CommitBody{Repo: "did:plc:alice", Seq: 1, Time: "2024-05-01T10:00:00Z"}

	headerData, err := cbor.Marshal(header)
	require.NoError(t, err)
	bodyData, err := cbor.Marshal(body)
	require.NoError(t, err)

	return append(headerData, bodyData...)
}

func TestSplitPath(t *testing.T) {
	collection, rkey := splitPath("org.rwell.test.occurrence/abc123")
	assert.Equal(t, "org.rwell.test.occurrence", collection)
	assert.Equal(t, "abc123", rkey)
}

func TestSplitPath_NoSlash(t *testing.T) {
	collection, rkey := splitPath("norke")
	assert.Equal(t, "norke", collection)
	assert.Equal(t, "", rkey)
}

func TestDecodeCBORFrame_EmptyOps_ReturnsNilCommit(t *testing.T) {
	// A header/body pair is constructed via carblock in its own test suite;
	// here we only exercise the ops-empty short-circuit using a minimal
	// hand-built frame through the exported decoder entry point indirectly
	// is covered by carblock tests. This guards the jetstream-level
	// contract: zero ops yields (nil, nil), not an error.
	commits, err := decodeCBORFrame(emptyCommitFrame(t))
	assert.NoError(t, err)
	assert.Empty(t, commits)
}

func fakeOpCID(t *testing.T, id string) cbor.RawTag {
	t.Helper()
	linkBytes := append([]byte{0x00}, []byte(id)...)
	content, err := cbor.Marshal(linkBytes)
	require.NoError(t, err)
	return cbor.RawTag{Number: 42, Content: content}
}

// A commit body may batch more than one op; every op must yield its own
// commit, not just the first.
func TestDecodeCBORFrame_MultipleOps_YieldsOneCommitPerOp(t *testing.T) {
	header := carblock.FrameHeader{Op: 1, T: "#commit"}
	body := carblock.CommitBody{
		Repo: "did:plc:alice",
		Seq:  7,
		Time: "2024-05-01T10:00:00Z",
		Ops: []carblock.FrameOp{
			{Action: "delete", Path: "org.rwell.test.occurrence/abc1", CID: fakeOpCID(t, "fake-cid-bytes-aaaaaa")},
			{Action: "delete", Path: "org.rwell.test.occurrence/abc2", CID: fakeOpCID(t, "fake-cid-bytes-bbbbbb")},
		},
	}

	headerData, err := cbor.Marshal(header)
	require.NoError(t, err)
	bodyData, err := cbor.Marshal(body)
	require.NoError(t, err)

	commits, err := decodeCBORFrame(append(headerData, bodyData...))
	require.NoError(t, err)
	require.Len(t, commits, 2)
	assert.Equal(t, "abc1", commits[0].RKey)
	assert.Equal(t, "abc2", commits[1].RKey)
	assert.Equal(t, OpDelete, commits[0].Operation)
	assert.Equal(t, int64(7), commits[0].Seq)
	assert.Equal(t, int64(7), commits[1].Seq)
}
