package conversation

import (
	"strings"
	"sync"

	"github.com/samber/do"
)

const maxTurnsPerChat = 100

// Service keeps an in-memory transcript per chat. It stands in for whatever
// history persistence the host provides; the decision engine only ever reads
// the tail of it.
type Service struct {
	mu    sync.RWMutex
	turns map[string][]Turn
}

func New(_ *do.Injector) (*Service, error) {
	return &Service{
		turns: make(map[string][]Turn),
	}, nil
}

func (s *Service) Append(chatID string, turn Turn) {
	s.mu.Lock()
	defer s.mu.Unlock()

	history := append(s.turns[chatID], turn)
	if len(history) > maxTurnsPerChat {
		history = history[len(history)-maxTurnsPerChat:]
	}

	s.turns[chatID] = history
}

// Recent returns up to n most recent turns, oldest first.
func (s *Service) Recent(chatID string, n int) []Turn {
	s.mu.RLock()
	defer s.mu.RUnlock()

	history := s.turns[chatID]
	if len(history) > n {
		history = history[len(history)-n:]
	}

	result := make([]Turn, len(history))
	copy(result, history)

	return result
}

// LastAssistantText returns the text of the most recent assistant turn,
// or false if the bot has not written anything yet.
func (s *Service) LastAssistantText(chatID string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	history := s.turns[chatID]

	for i := len(history) - 1; i >= 0; i-- {
		if history[i].Role != RoleAssistant {
			continue
		}

		if text, ok := history[i].Text(); ok && strings.TrimSpace(text) != "" {
			return text, true
		}
	}

	return "", false
}
