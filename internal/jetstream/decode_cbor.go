package jetstream

import (
	"fmt"
	"time"

	"github.com/observ-ing/core-sub000/internal/carblock"
)

// decodeCBORFrame parses one binary frame (§4.2 form b) into zero or more
// commits. A non-commit header (anything other than op=1, t="#commit")
// yields no commits but no error — the caller still advances timing from
// it using the wall-clock time of receipt, since a binary frame carries no
// standalone timestamp outside a commit body. A commit body batches one
// op per record write; every op in the batch yields its own commit (the
// reference ingester iterates `for op_value in ops`, and a relay is free
// to coalesce more than one record change into a single frame).
func decodeCBORFrame(data []byte) ([]*Commit, error) {
	_, body, err := carblock.DecodeFrame(data)
	if err != nil {
		return nil, fmt.Errorf("decode binary frame: %w", err)
	}
	if body == nil || len(body.Ops) == 0 {
		return nil, nil
	}

	frameTime, err := time.Parse(time.RFC3339, body.Time)
	if err != nil {
		frameTime = time.Now().UTC()
	}

	// The CAR block store is only needed to resolve a create/update op's
	// record bytes; a delete-only batch never dereferences it, so it's
	// opened lazily on the first op that actually needs it.
	var store *carblock.BlockStore
	commits := make([]*Commit, 0, len(body.Ops))
	for _, op := range body.Ops {
		if store == nil && Operation(op.Action) != OpDelete {
			store, err = carblock.OpenBlockStore(body.Blocks)
			if err != nil {
				return nil, fmt.Errorf("open car blocks for repo %s: %w", body.Repo, err)
			}
		}
		c, err := decodeOp(body, op, store, frameTime)
		if err != nil {
			return nil, err
		}
		commits = append(commits, c)
	}
	return commits, nil
}

func decodeOp(body *carblock.CommitBody, op carblock.FrameOp, store *carblock.BlockStore, frameTime time.Time) (*Commit, error) {
	opCID, err := carblock.OpCID(op.CID)
	if err != nil {
		return nil, fmt.Errorf("decode op cid: %w", err)
	}

	collection, rkey := splitPath(op.Path)

	c := &Commit{
		Seq:        body.Seq,
		Time:       frameTime,
		AuthorDID:  body.Repo,
		Operation:  Operation(op.Action),
		Collection: collection,
		RKey:       rkey,
		CID:        opCID,
	}

	if c.Operation != OpDelete {
		blockData, ok, err := store.Get(opCID)
		if err != nil {
			return nil, fmt.Errorf("fetch block for %s: %w", c.URI(), err)
		}
		if ok {
			tree, err := carblock.DecodeTree(blockData)
			if err != nil {
				return nil, fmt.Errorf("decode record tree for %s: %w", c.URI(), err)
			}
			if m, ok := tree.(map[string]any); ok {
				c.Record = m
			}
		}
	}

	return c, nil
}

// splitPath splits an op's "<collection>/<rkey>" path into its two parts.
func splitPath(path string) (collection, rkey string) {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '/' {
			return path[:i], path[i+1:]
		}
	}
	return path, ""
}
