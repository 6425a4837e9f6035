// Package carblock supports the binary CBOR wire form (§4.2 form b): opening
// a CAR-encoded block store, decoding the CBOR header/body frame pair, and
// converting an individual IPLD-shaped CBOR block into the generic
// JSON-like tree the normalizer (C3) expects.
package carblock

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"reflect"

	"github.com/fxamacker/cbor/v2"
	"github.com/ipfs/go-cid"
	carv1 "github.com/ipld/go-car"
	"github.com/multiformats/go-multibase"
)

var treeDecMode = func() cbor.DecMode {
	dm, err := cbor.DecOptions{
		DefaultMapType: reflect.TypeOf(map[string]any{}),
	}.DecMode()
	if err != nil {
		panic(err)
	}
	return dm
}()

// FrameHeader is the header map that precedes every binary frame's body.
type FrameHeader struct {
	Op int    `cbor:"op"`
	T  string `cbor:"t"`
}

// CommitBody is the body that follows a header with Op=1, T="#commit".
type CommitBody struct {
	Repo   string    `cbor:"repo"`
	Seq    int64     `cbor:"seq"`
	Time   string    `cbor:"time"`
	Blocks []byte    `cbor:"blocks"`
	Ops    []FrameOp `cbor:"ops"`
}

// FrameOp is one create/update/delete entry inside a commit body.
type FrameOp struct {
	Action string `cbor:"action"`
	Path   string `cbor:"path"`
	CID    cbor.RawTag `cbor:"cid"`
}

// DecodeFrame splits one binary frame into its header and, if the header
// introduces a commit, the decoded commit body. The frame is two
// concatenated CBOR values, so a single streaming Decoder reads the header
// then continues from wherever it left off for the body.
func DecodeFrame(data []byte) (FrameHeader, *CommitBody, error) {
	dec := cbor.NewDecoder(bytes.NewReader(data))

	var header FrameHeader
	if err := dec.Decode(&header); err != nil {
		return FrameHeader{}, nil, fmt.Errorf("decode frame header: %w", err)
	}

	if header.Op != 1 || header.T != "#commit" {
		return header, nil, nil
	}

	var body CommitBody
	if err := dec.Decode(&body); err != nil {
		return header, nil, fmt.Errorf("decode commit body: %w", err)
	}
	return header, &body, nil
}

// OpCID decodes a FrameOp's tag-42 CID byte string into the `b<base32>`
// string form used throughout the rest of the pipeline: skip the one
// multibase-prefix byte the tag wraps, then base32(lowercase)-encode the
// remainder with the standard "b" multibase prefix.
func OpCID(tag cbor.RawTag) (string, error) {
	if tag.Number != 42 {
		return "", fmt.Errorf("unexpected CBOR tag %d for CID link", tag.Number)
	}
	var linkBytes []byte
	if err := cbor.Unmarshal(tag.Content, &linkBytes); err != nil {
		return "", fmt.Errorf("decode tag-42 link bytes: %w", err)
	}
	if len(linkBytes) == 0 {
		return "", fmt.Errorf("empty CID link")
	}
	// byte 0 is the multibase-identity prefix (0x00) the spec used to embed
	// raw binary CID bytes inside CBOR; strip it before re-encoding.
	raw := linkBytes[1:]
	encoded, err := multibase.Encode(multibase.Base32, raw)
	if err != nil {
		return "", fmt.Errorf("multibase encode CID: %w", err)
	}
	return encoded, nil
}

// BlockStore opens the CAR-encoded block store embedded in a commit body
// and exposes lookups by CID string.
type BlockStore struct {
	reader *carv1.CarReader
	blocks map[string][]byte
}

// OpenBlockStore reads every (CID, block) pair out of a CAR byte stream
// eagerly — commit bodies are small enough that streaming isn't warranted.
func OpenBlockStore(data []byte) (*BlockStore, error) {
	cr, err := carv1.NewCarReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open car reader: %w", err)
	}

	blocks := make(map[string][]byte)
	for {
		blk, err := cr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read car block: %w", err)
		}
		blocks[blk.Cid().String()] = blk.RawData()
	}
	return &BlockStore{reader: cr, blocks: blocks}, nil
}

// Get returns the raw CBOR bytes for the block addressed by cidStr (as
// produced by OpCID, or any valid multibase CID string).
func (s *BlockStore) Get(cidStr string) ([]byte, bool, error) {
	c, err := cid.Decode(cidStr)
	if err != nil {
		return nil, false, fmt.Errorf("decode cid %q: %w", cidStr, err)
	}
	data, ok := s.blocks[c.String()]
	return data, ok, nil
}

// DecodeTree decodes one CBOR block into the generic JSON-like value the
// rest of the pipeline understands: nil, bool, uint64/int64/float64, string,
// []any, map[string]any, with tag-42 links rendered as their CID string and
// raw byte strings rendered as base64 (mirroring how the JSON wire form
// would have represented them, per §4.2's conversion rules).
func DecodeTree(block []byte) (any, error) {
	var raw any
	if err := treeDecMode.Unmarshal(block, &raw); err != nil {
		return nil, fmt.Errorf("decode cbor block: %w", err)
	}
	return normalizeCBORValue(raw)
}

func normalizeCBORValue(v any) (any, error) {
	switch t := v.(type) {
	case cbor.Tag:
		if t.Number == 42 {
			linkBytes, ok := t.Content.([]byte)
			if !ok {
				return nil, fmt.Errorf("tag-42 content is not bytes")
			}
			if len(linkBytes) == 0 {
				return nil, fmt.Errorf("empty CID link")
			}
			encoded, err := multibase.Encode(multibase.Base32, linkBytes[1:])
			if err != nil {
				return nil, fmt.Errorf("multibase encode link: %w", err)
			}
			return encoded, nil
		}
		return normalizeCBORValue(t.Content)
	case []byte:
		return base64.StdEncoding.EncodeToString(t), nil
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			nv, err := normalizeCBORValue(e)
			if err != nil {
				return nil, err
			}
			out[i] = nv
		}
		return out, nil
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			nv, err := normalizeCBORValue(e)
			if err != nil {
				return nil, err
			}
			out[k] = nv
		}
		return out, nil
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			ks, ok := k.(string)
			if !ok {
				continue
			}
			nv, err := normalizeCBORValue(e)
			if err != nil {
				return nil, err
			}
			out[ks] = nv
		}
		return out, nil
	default:
		return v, nil
	}
}
