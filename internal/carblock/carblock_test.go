package carblock

import (
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeFrame_NonCommitHeader(t *testing.T) {
	header := FrameHeader{Op: 1, T: "#info"}
	data, err := cbor.Marshal(header)
	require.NoError(t, err)

	h, body, err := DecodeFrame(data)
	require.NoError(t, err)
	assert.Nil(t, body)
	assert.Equal(t, "#info", h.T)
}

func TestDecodeFrame_CommitHeaderAndBody(t *testing.T) {
	header := FrameHeader{Op: 1, T: "#commit"}
	body := CommitBody{
		Repo: "did:plc:alice",
		Seq:  42,
		Time: "2024-05-01T10:00:00Z",
		Ops: []FrameOp{
			{Action: "create", Path: "org.rwell.test.occurrence/abc123"},
		},
	}

	headerData, err := cbor.Marshal(header)
	require.NoError(t, err)
	bodyData, err := cbor.Marshal(body)
	require.NoError(t, err)

	frame := append(headerData, bodyData...)

	h, decodedBody, err := DecodeFrame(frame)
	require.NoError(t, err)
	require.NotNil(t, decodedBody)
	assert.Equal(t, "#commit", h.T)
	assert.Equal(t, int64(42), decodedBody.Seq)
	assert.Equal(t, "did:plc:alice", decodedBody.Repo)
	require.Len(t, decodedBody.Ops, 1)
	assert.Equal(t, "create", decodedBody.Ops[0].Action)
}

func TestOpCID_WrongTagNumber_Errors(t *testing.T) {
	_, err := OpCID(cbor.RawTag{Number: 7})
	assert.Error(t, err)
}

func TestOpCID_ValidTag42_Decodes(t *testing.T) {
	linkBytes := append([]byte{0x00}, []byte("fake-cid-bytes-000000")...)
	content, err := cbor.Marshal(linkBytes)
	require.NoError(t, err)

	tag := cbor.RawTag{Number: 42, Content: content}
	out, err := OpCID(tag)
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

func TestDecodeTree_SimpleMap(t *testing.T) {
	data, err := cbor.Marshal(map[string]any{"eventDate": "2024-05-01T10:00:00Z", "count": int64(3)})
	require.NoError(t, err)

	tree, err := DecodeTree(data)
	require.NoError(t, err)
	m, ok := tree.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "2024-05-01T10:00:00Z", m["eventDate"])
}
