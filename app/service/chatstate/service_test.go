package chatstate

import (
	"testing"
	"time"

	"heartflow/app/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T, decay, recovery float64) *Service {
	t.Helper()

	cfg := &config.Config{}
	cfg.ApplyDefaults()
	cfg.Heartflow.EnergyDecayRate = decay
	cfg.Heartflow.EnergyRecoveryRate = recovery

	return &Service{
		cfg:    cfg,
		states: make(map[string]*ChatState),
		now:    time.Now,
	}
}

func TestGetOrCreateDefaults(t *testing.T) {
	svc := newTestService(t, 0.1, 0.02)

	state := svc.GetOrCreate("chat-1")

	assert.Equal(t, 1.0, state.Energy)
	assert.Zero(t, state.TotalMessages)
	assert.Zero(t, state.TotalReplies)
	assert.True(t, state.LastReplyTime.IsZero())
}

func TestEnergyStaysBounded(t *testing.T) {
	svc := newTestService(t, 0.1, 0.02)

	for i := 0; i < 200; i++ {
		if i%3 == 0 {
			svc.ApplyActiveUpdate("chat-1")
		} else {
			svc.ApplyPassiveUpdate("chat-1")
		}

		state := svc.GetOrCreate("chat-1")
		require.GreaterOrEqual(t, state.Energy, 0.1)
		require.LessOrEqual(t, state.Energy, 1.0)
	}
}

func TestEnergyClampsAtFloor(t *testing.T) {
	// 1.0 -> 0.15 -> clamped to 0.1 instead of going negative.
	svc := newTestService(t, 0.85, 0.02)

	svc.ApplyActiveUpdate("chat-1")
	assert.InDelta(t, 0.15, svc.GetOrCreate("chat-1").Energy, 1e-9)

	svc.ApplyActiveUpdate("chat-1")
	assert.InDelta(t, 0.1, svc.GetOrCreate("chat-1").Energy, 1e-9)
}

func TestEnergyClampsAtCeiling(t *testing.T) {
	svc := newTestService(t, 0.1, 0.5)

	svc.ApplyPassiveUpdate("chat-1")
	svc.ApplyPassiveUpdate("chat-1")

	assert.Equal(t, 1.0, svc.GetOrCreate("chat-1").Energy)
}

func TestDailyRecoveryIdempotentWithinDate(t *testing.T) {
	svc := newTestService(t, 0.2, 0.02)

	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	for i := 0; i < 3; i++ {
		svc.ApplyActiveUpdate("chat-1")
	}
	require.InDelta(t, 0.4, svc.GetOrCreate("chat-1").Energy, 1e-9)

	// Next calendar day recovers once.
	now = now.Add(24 * time.Hour)
	assert.InDelta(t, 0.6, svc.GetOrCreate("chat-1").Energy, 1e-9)

	// A second read on that date changes nothing.
	assert.InDelta(t, 0.6, svc.GetOrCreate("chat-1").Energy, 1e-9)
}

func TestMinutesSinceLastReply(t *testing.T) {
	svc := newTestService(t, 0.1, 0.02)

	assert.Equal(t, NeverRepliedMinutes, svc.MinutesSinceLastReply("chat-1"))

	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	svc.ApplyActiveUpdate("chat-1")

	now = now.Add(30*time.Minute + 40*time.Second)
	assert.Equal(t, 30, svc.MinutesSinceLastReply("chat-1"))
}

func TestReset(t *testing.T) {
	svc := newTestService(t, 0.3, 0.02)

	svc.ApplyActiveUpdate("chat-1")
	require.NotZero(t, svc.GetOrCreate("chat-1").TotalReplies)

	svc.Reset("chat-1")

	state := svc.GetOrCreate("chat-1")
	assert.Equal(t, 1.0, state.Energy)
	assert.Zero(t, state.TotalMessages)
	assert.Zero(t, state.TotalReplies)
}

func TestChatsAreIndependent(t *testing.T) {
	svc := newTestService(t, 0.1, 0.02)

	svc.ApplyActiveUpdate("chat-1")
	svc.ApplyActiveUpdate("chat-1")

	assert.Equal(t, 1.0, svc.GetOrCreate("chat-2").Energy)
	assert.Zero(t, svc.GetOrCreate("chat-2").TotalMessages)
}
