package jetstream

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	maxReconnectAttempts = 10
	baseBackoff          = time.Second
	timingThrottle       = 5 * time.Second
)

// WireFormat selects which frame decoder a connection uses.
type WireFormat int

const (
	WireJSON WireFormat = iota
	WireCBOR
)

// ErrMaxReconnectAttempts is the terminal failure returned after 10
// consecutive failed connection attempts (§4.1 step 5).
var ErrMaxReconnectAttempts = fmt.Errorf("jetstream: exceeded %d consecutive reconnect attempts", maxReconnectAttempts)

// Subscription maintains a WebSocket connection to a relay and yields a
// decoded event stream. It is not safe for concurrent use by more than one
// reader of Events(); Run drives the connection loop from a single
// goroutine, matching the one-channel-one-consumer shape the supervisor
// relies on for in-order dispatch.
type Subscription struct {
	relayURL           string
	wantedCollections  []string
	wireFormat         WireFormat
	logger             *zap.Logger

	events chan Event

	mu              sync.Mutex
	lastCursor      int64
	lastTiming      Timing
	lastTimingEmit  int64 // unix nano, atomic — throttles TimingUpdate emission

	dropped int64 // atomic — commits discarded under consumer backpressure
}

// New constructs a Subscription. The starting position is given later, as
// Run's resumeCursor.
func New(relayURL string, wantedCollections []string, wireFormat WireFormat, logger *zap.Logger) *Subscription {
	return &Subscription{
		relayURL:          relayURL,
		wantedCollections: wantedCollections,
		wireFormat:        wireFormat,
		logger:            logger,
		events:            make(chan Event, 1024),
	}
}

// Events returns the channel of decoded events. It is closed when Run returns.
func (s *Subscription) Events() <-chan Event { return s.events }

// Cursor reports the sequence of the last emitted commit.
func (s *Subscription) Cursor() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastCursor
}

// DroppedCount reports how many commits have been discarded because the
// bounded event channel was full (§5 backpressure contract). The supervisor
// reconciles this into the error counter it exposes to the operator.
func (s *Subscription) DroppedCount() int64 {
	return atomic.LoadInt64(&s.dropped)
}

// Run drives the reconnect loop until ctx is cancelled, a clean close is
// observed (returns nil — spec: "supervisor decides whether to re-run"), or
// 10 consecutive connection attempts fail (returns ErrMaxReconnectAttempts).
// resumeCursor, if non-nil, is appended to the relay URL as the starting
// position; otherwise the relay's current live position is used.
func (s *Subscription) Run(ctx context.Context, resumeCursor *int64) error {
	defer close(s.events)

	cursor := resumeCursor
	attempts := 0

	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		u, err := s.buildURL(cursor)
		if err != nil {
			return fmt.Errorf("build relay url: %w", err)
		}

		dialed, err := s.connectAndRead(ctx, u)
		if err == nil {
			s.emit(Event{Kind: EventDisconnected})
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		// A connection that was established ends the run of consecutive
		// failures; its own transport error then counts as the first.
		if dialed {
			attempts = 0
		}
		attempts++
		s.emit(Event{Kind: EventError, Err: err})
		s.logger.Error("jetstream connection failed",
			zap.Error(err), zap.Int("attempt", attempts))

		if attempts >= maxReconnectAttempts {
			return ErrMaxReconnectAttempts
		}

		// Resume from whatever the connection has processed so far —
		// re-delivery of events at-or-below this cursor is permitted.
		if c := s.Cursor(); c != 0 {
			cursor = &c
		}

		delay := baseBackoff * time.Duration(1<<uint(attempts-1))
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}
}

func (s *Subscription) buildURL(cursor *int64) (string, error) {
	u, err := url.Parse(s.relayURL)
	if err != nil {
		return "", err
	}
	q := u.Query()
	for _, c := range s.wantedCollections {
		q.Add("wantedCollections", c)
	}
	if cursor != nil {
		q.Set("cursor", strconv.FormatInt(*cursor, 10))
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// connectAndRead reports whether the dial succeeded alongside the error that
// ended the connection (nil on a clean close).
func (s *Subscription) connectAndRead(ctx context.Context, wsURL string) (bool, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		return false, fmt.Errorf("dial relay: %w", err)
	}
	defer conn.Close()

	s.emit(Event{Kind: EventConnected})
	s.logger.Info("jetstream connected", zap.String("url", wsURL))

	go func() {
		<-ctx.Done()
		conn.Close()
	}()

	for {
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return true, nil
			}
			return true, fmt.Errorf("read relay frame: %w", err)
		}

		var commits []*Commit
		var frameTime time.Time

		switch s.wireFormat {
		case WireCBOR:
			if msgType != websocket.BinaryMessage {
				continue
			}
			commits, err = decodeCBORFrame(data)
			frameTime = time.Now().UTC()
		default:
			var commit *Commit
			commit, frameTime, err = decodeJSONFrame(data)
			if commit != nil {
				commits = []*Commit{commit}
			}
		}
		if err != nil {
			s.logger.Debug("jetstream frame decode failed", zap.Error(err))
			continue
		}

		if len(commits) > 0 {
			for _, commit := range commits {
				s.emitCommit(commit)
			}
		} else if !frameTime.IsZero() {
			s.mu.Lock()
			s.lastTiming = Timing{Seq: s.lastCursor, Time: frameTime}
			s.mu.Unlock()
			s.maybeEmitTiming()
		}
	}
}

// emitCommit delivers one decoded commit to the event channel. The cursor
// and last-timing state are advanced only on a successful send (§4.1: "the
// cursor maintained inside C1 is updated after emitting each commit"); a
// commit dropped under backpressure (§5) must not advance the cursor past
// it, or it would be skipped forever on reconnect instead of redelivered.
func (s *Subscription) emitCommit(commit *Commit) {
	if s.emit(Event{Kind: EventCommit, Commit: commit}) {
		s.mu.Lock()
		s.lastCursor = commit.Seq
		s.lastTiming = Timing{Seq: commit.Seq, Time: commit.Time}
		s.mu.Unlock()
		s.maybeEmitTiming()
		return
	}

	atomic.AddInt64(&s.dropped, 1)
	s.logger.Warn("dropping commit: consumer backpressure",
		zap.Int64("seq", commit.Seq), zap.String("uri", commit.URI()))
}

func (s *Subscription) maybeEmitTiming() {
	now := time.Now().UnixNano()
	last := atomic.LoadInt64(&s.lastTimingEmit)
	if now-last < int64(timingThrottle) {
		return
	}
	if !atomic.CompareAndSwapInt64(&s.lastTimingEmit, last, now) {
		return
	}
	s.mu.Lock()
	t := s.lastTiming
	s.mu.Unlock()
	s.emit(Event{Kind: EventTiming, Timing: &t})
}

// emit attempts a non-blocking send and reports whether it succeeded.
// Dropping here (rather than blocking the WebSocket reader) matches §5's
// "C1 backs off" contract — the relay eventually disconnects the slow
// client and the reconnect loop resumes from the last checkpoint. Callers
// that emit anything other than a commit (connect/disconnect/error/timing)
// ignore the result: those events are advisory and have no cursor to
// protect.
func (s *Subscription) emit(e Event) bool {
	select {
	case s.events <- e:
		return true
	default:
		return false
	}
}
