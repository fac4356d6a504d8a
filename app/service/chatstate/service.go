package chatstate

import (
	"log/slog"
	"sync"
	"time"

	"heartflow/app/config"

	"github.com/samber/do"
)

// NeverRepliedMinutes is reported for chats the bot has not replied to yet.
const NeverRepliedMinutes = 999

// Service owns all per-chat state. Mutations are read-modify-write under a
// single mutex, so concurrent messages for the same chat never lose updates.
type Service struct {
	cfg *config.Config

	mu     sync.Mutex
	states map[string]*ChatState

	now func() time.Time
}

func New(di *do.Injector) (*Service, error) {
	return &Service{
		cfg:    do.MustInvoke[*config.Config](di),
		states: make(map[string]*ChatState),
		now:    time.Now,
	}, nil
}

// locked returns the live state for chatID, creating it on first use and
// applying the daily recovery bump when the calendar date has changed since
// the last access. Caller must hold s.mu.
func (s *Service) locked(chatID string) *ChatState {
	state, ok := s.states[chatID]
	if !ok {
		state = newChatState()
		s.states[chatID] = state
	}

	today := s.now().Format(time.DateOnly)
	if state.LastResetDate != today {
		state.LastResetDate = today
		state.Energy = min(maxEnergy, state.Energy+dailyRecovery)
	}

	return state
}

// GetOrCreate returns a snapshot of the chat's state. New-day detection is
// folded into every access, there is no background timer.
func (s *Service) GetOrCreate(chatID string) ChatState {
	s.mu.Lock()
	defer s.mu.Unlock()

	return *s.locked(chatID)
}

// ApplyActiveUpdate records a proactive reply: energy drains, counters grow.
func (s *Service) ApplyActiveUpdate(chatID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.locked(chatID)

	state.LastReplyTime = s.now()
	state.TotalReplies++
	state.TotalMessages++
	state.Energy = max(minEnergy, state.Energy-s.cfg.Heartflow.EnergyDecayRate)

	slog.Debug("active state update", "chat_id", chatID, "energy", state.Energy)
}

// ApplyPassiveUpdate records a message the bot chose to ignore: energy
// recovers slightly.
func (s *Service) ApplyPassiveUpdate(chatID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.locked(chatID)

	state.TotalMessages++
	state.Energy = min(maxEnergy, state.Energy+s.cfg.Heartflow.EnergyRecoveryRate)

	slog.Debug("passive state update", "chat_id", chatID, "energy", state.Energy)
}

// Reset discards the chat's state, a following access recreates defaults.
func (s *Service) Reset(chatID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.states, chatID)

	slog.Info("chat state reset", "chat_id", chatID)
}

func (s *Service) MinutesSinceLastReply(chatID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.locked(chatID)

	if state.LastReplyTime.IsZero() {
		return NeverRepliedMinutes
	}

	return int(s.now().Sub(state.LastReplyTime).Minutes())
}
