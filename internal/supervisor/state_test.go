package supervisor_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/observ-ing/core-sub000/internal/supervisor"
)

func TestState_RecordSuccess_UpdatesStatsAndLastProcessed(t *testing.T) {
	s := supervisor.NewState()
	now := time.Now().UTC()

	s.RecordSuccess("occurrence", "create", "at://did:plc:alice/org.rwell.test.occurrence/abc", 5, now)

	snap := s.Snapshot()
	require.NotNil(t, snap.LastProcessed)
	assert.Equal(t, int64(5), snap.LastProcessed.Seq)
	assert.Equal(t, uint64(1), snap.Stats.Occurrences)
	require.Len(t, snap.RecentEvents, 1)
	assert.Equal(t, "occurrence", snap.RecentEvents[0].Type)
}

func TestState_RecentEvents_BoundedToTen(t *testing.T) {
	s := supervisor.NewState()
	for i := 0; i < 15; i++ {
		s.RecordSuccess("like", "create", "uri", int64(i), time.Now().UTC())
	}
	snap := s.Snapshot()
	assert.Len(t, snap.RecentEvents, 10)
	assert.Equal(t, int64(14), snap.LastProcessed.Seq)
}

func TestState_RecordError_IncrementsCounterOnly(t *testing.T) {
	s := supervisor.NewState()
	s.RecordError()
	s.RecordError()
	snap := s.Snapshot()
	assert.Equal(t, uint64(2), snap.Stats.Errors)
	assert.Nil(t, snap.LastProcessed)
}

func TestState_LastCommittedCursor_NoneYet(t *testing.T) {
	s := supervisor.NewState()
	_, ok := s.LastCommittedCursor()
	assert.False(t, ok)
}

func TestState_LastCommittedCursor_ReflectsLastProcessed(t *testing.T) {
	s := supervisor.NewState()
	s.RecordSuccess("comment", "create", "uri", 99, time.Now().UTC())
	seq, ok := s.LastCommittedCursor()
	require.True(t, ok)
	assert.Equal(t, int64(99), seq)
}

func TestState_Connected_DefaultsFalse(t *testing.T) {
	s := supervisor.NewState()
	assert.False(t, s.Connected())
	s.SetConnected(true)
	assert.True(t, s.Connected())
}
