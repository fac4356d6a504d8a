package persona

import (
	"sync"

	"github.com/samber/do"
)

// Service holds named persona definitions and the per-chat selection.
// A persona is a reusable character prompt the host's reply model runs
// under; the decision engine only needs its text to judge fit.
type Service struct {
	mu          sync.RWMutex
	personas    map[string]string
	selections  map[string]selection
	defaultName string
}

// selection distinguishes "never picked" (falls back to the default
// persona) from an explicitly cleared persona (resolves to empty text).
type selection struct {
	name    string
	cleared bool
}

func New(_ *do.Injector) (*Service, error) {
	return &Service{
		personas:   make(map[string]string),
		selections: make(map[string]selection),
	}, nil
}

func (s *Service) Register(name, prompt string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.personas[name] = prompt
}

func (s *Service) SetDefault(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.defaultName = name
}

func (s *Service) Select(chatID, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.selections[chatID] = selection{name: name}
}

// ClearSelection marks the chat as explicitly persona-less.
func (s *Service) ClearSelection(chatID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.selections[chatID] = selection{cleared: true}
}

// ResolvePrompt returns the active persona text for a chat, or "" when the
// persona was explicitly cleared or nothing suitable is registered.
func (s *Service) ResolvePrompt(chatID string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sel, ok := s.selections[chatID]

	switch {
	case ok && sel.cleared:
		return ""
	case ok:
		return s.personas[sel.name]
	default:
		return s.personas[s.defaultName]
	}
}
