package queue

import (
	"log/slog"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/samber/do"
)

const bufferSize = 64

var _ do.Shutdownable = (*Service)(nil)

// Message is the inbound group-chat message envelope. Woken is set by the
// host when the bot was mentioned or triggered by a wake word; such messages
// bypass proactive judging entirely. The decision engine raises the addressed
// flag when it wants the host to run its normal reply path for this message.
type Message struct {
	ID         uuid.UUID
	ChatID     string
	SenderID   string
	SenderName string
	Text       string
	Woken      bool

	addressed atomic.Bool
}

func NewMessage(chatID, senderID, senderName, text string, woken bool) *Message {
	return &Message{
		ID:         uuid.New(),
		ChatID:     chatID,
		SenderID:   senderID,
		SenderName: senderName,
		Text:       text,
		Woken:      woken,
	}
}

// MarkAddressed requests that the host treat this message as if the bot
// was directly addressed.
func (m *Message) MarkAddressed() {
	m.addressed.Store(true)
}

func (m *Message) Addressed() bool {
	return m.addressed.Load()
}

type Service struct {
	queue chan *Message
}

func New(_ *do.Injector) (*Service, error) {
	return &Service{
		queue: make(chan *Message, bufferSize),
	}, nil
}

func (s *Service) Add(msg *Message) {
	defer func() {
		if r := recover(); r != nil {

		}
	}()

	select {
	case s.queue <- msg:
	default:
		slog.Warn("message queue is full", "chat_id", msg.ChatID)
	}
}

func (s *Service) Channel() <-chan *Message {
	return s.queue
}

func (s *Service) Shutdown() error {
	close(s.queue)

	return nil
}
