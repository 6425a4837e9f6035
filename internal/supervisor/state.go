package supervisor

import (
	"sync"
	"time"
)

// RecentEvent is one entry in the bounded FIFO of the 10 most recently
// successfully processed events (§4.7).
type RecentEvent struct {
	Type   string    `json:"type"`
	Action string    `json:"action"`
	URI    string    `json:"uri"`
	Time   time.Time `json:"time"`
}

const recentEventCapacity = 10

// Stats are the monotonic counters of §4.7.
type Stats struct {
	Occurrences     uint64 `json:"occurrences"`
	Identifications uint64 `json:"identifications"`
	Comments        uint64 `json:"comments"`
	Interactions    uint64 `json:"interactions"`
	Likes           uint64 `json:"likes"`
	Errors          uint64 `json:"errors"`
}

// LastProcessed is the (sequence, time) of the most recently processed
// commit, used for both lag display and as the cursor-saver's source.
type LastProcessed struct {
	Seq  int64     `json:"seq"`
	Time time.Time `json:"time"`
}

// State is the supervisor's shared in-memory cell: one writer (the
// subscription consumer), many readers (HTTP handlers, cursor saver).
// Critical sections cover only struct field updates — no I/O runs while
// the lock is held (§5 "No locks cross I/O boundaries").
type State struct {
	mu            sync.RWMutex
	connected     bool
	lastProcessed *LastProcessed
	stats         Stats
	recentEvents  []RecentEvent
	startedAt     time.Time
}

func NewState() *State {
	return &State{startedAt: time.Now()}
}

func (s *State) SetConnected(connected bool) {
	s.mu.Lock()
	s.connected = connected
	s.mu.Unlock()
}

func (s *State) Connected() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.connected
}

func (s *State) RecordSuccess(recordType, action, uri string, seq int64, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastProcessed = &LastProcessed{Seq: seq, Time: at}

	ev := RecentEvent{Type: recordType, Action: action, URI: uri, Time: at}
	s.recentEvents = append([]RecentEvent{ev}, s.recentEvents...)
	if len(s.recentEvents) > recentEventCapacity {
		s.recentEvents = s.recentEvents[:recentEventCapacity]
	}

	switch recordType {
	case "occurrence":
		s.stats.Occurrences++
	case "identification":
		s.stats.Identifications++
	case "comment":
		s.stats.Comments++
	case "interaction":
		s.stats.Interactions++
	case "like":
		s.stats.Likes++
	}
}

func (s *State) RecordError() {
	s.mu.Lock()
	s.stats.Errors++
	s.mu.Unlock()
}

// LastCommittedCursor implements cursor.Source: the cursor checkpoint only
// ever reflects a successfully processed (not merely received) commit.
func (s *State) LastCommittedCursor() (int64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.lastProcessed == nil {
		return 0, false
	}
	return s.lastProcessed.Seq, true
}

// Snapshot is a consistent, read-only copy of the state for JSON responses.
type Snapshot struct {
	Connected     bool
	Cursor        *int64
	UptimeSecs    int64
	Stats         Stats
	RecentEvents  []RecentEvent
	LastProcessed *LastProcessed
}

func (s *State) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var cursor *int64
	if s.lastProcessed != nil {
		c := s.lastProcessed.Seq
		cursor = &c
	}

	events := make([]RecentEvent, len(s.recentEvents))
	copy(events, s.recentEvents)

	return Snapshot{
		Connected:     s.connected,
		Cursor:        cursor,
		UptimeSecs:    int64(time.Since(s.startedAt).Seconds()),
		Stats:         s.stats,
		RecentEvents:  events,
		LastProcessed: s.lastProcessed,
	}
}
