package jetstream

import (
	"encoding/json"
	"fmt"
	"math"
	"time"
)

// rawJSONFrame is the pre-decoded JSON wire form (§4.2 form a).
type rawJSONFrame struct {
	DID    string          `json:"did"`
	TimeUS int64           `json:"time_us"`
	Commit *rawJSONCommit  `json:"commit,omitempty"`
}

type rawJSONCommit struct {
	Rev        string          `json:"rev"`
	Operation  string          `json:"operation"`
	Collection string          `json:"collection"`
	RKey       string          `json:"rkey"`
	CID        string          `json:"cid"`
	Record     json.RawMessage `json:"record,omitempty"`
}

// decodeJSONFrame parses one text frame and returns the commit it carries
// (nil if the frame has no "commit" field — it still advances timing via
// the returned time). Decode errors are the caller's responsibility to log
// at debug and skip; they never count toward the reconnect budget (§4.2).
func decodeJSONFrame(data []byte) (commit *Commit, frameTime time.Time, err error) {
	var raw rawJSONFrame
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, time.Time{}, fmt.Errorf("decode jetstream frame: %w", err)
	}

	frameTime = microsToTime(raw.TimeUS)

	if raw.Commit == nil {
		return nil, frameTime, nil
	}

	c := &Commit{
		Seq:        raw.TimeUS,
		Time:       frameTime,
		AuthorDID:  raw.DID,
		Rev:        raw.Commit.Rev,
		Operation:  Operation(raw.Commit.Operation),
		Collection: raw.Commit.Collection,
		RKey:       raw.Commit.RKey,
		CID:        raw.Commit.CID,
	}

	if len(raw.Commit.Record) > 0 {
		var rec map[string]any
		if err := json.Unmarshal(raw.Commit.Record, &rec); err != nil {
			return nil, frameTime, fmt.Errorf("decode record payload for %s: %w", c.URI(), err)
		}
		c.Record = rec
	}

	return c, frameTime, nil
}

// microsToTime converts microseconds-since-epoch to time.Time, falling back
// to the current wall-time if the value overflows (spec boundary behavior).
func microsToTime(us int64) time.Time {
	const (
		maxSafeMicros = math.MaxInt64 / int64(time.Microsecond)
		minSafeMicros = math.MinInt64 / int64(time.Microsecond)
	)
	if us > maxSafeMicros || us < minSafeMicros {
		return time.Now().UTC()
	}
	return time.UnixMicro(us).UTC()
}
