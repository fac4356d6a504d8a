package heartflow

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"heartflow/app/client/judge"
	"heartflow/app/config"
	"heartflow/app/service/chatstate"
	"heartflow/app/service/conversation"
	"heartflow/app/service/persona"
	"heartflow/app/service/queue"

	"github.com/samber/do"
)

// HistoryReader provides the conversation tail for a chat.
type HistoryReader interface {
	Recent(chatID string, n int) []conversation.Turn
	LastAssistantText(chatID string) (string, bool)
}

// PersonaResolver returns the raw prompt text of a chat's active persona,
// or "" when none is selected.
type PersonaResolver interface {
	ResolvePrompt(chatID string) string
}

// ModelCaller is the outbound judge-model collaborator.
type ModelCaller interface {
	TextChat(ctx context.Context, prompt string, contexts []conversation.Turn) (string, error)
}

// Service is the proactive-reply decision engine. For every eligible group
// message it consults a small judge model, scores the result and decides
// whether the host should treat the message as directly addressed.
type Service struct {
	cfg      *config.Config
	stateSvc *chatstate.Service

	historySvc HistoryReader
	personaSvc PersonaResolver
	summarizer *persona.Summarizer
	judge      ModelCaller

	now func() time.Time
}

func New(di *do.Injector) (*Service, error) {
	return &Service{
		cfg:        do.MustInvoke[*config.Config](di),
		stateSvc:   do.MustInvoke[*chatstate.Service](di),
		historySvc: do.MustInvoke[*conversation.Service](di),
		personaSvc: do.MustInvoke[*persona.Service](di),
		summarizer: do.MustInvoke[*persona.Summarizer](di),
		judge:      do.MustInvoke[*judge.Client](di),
		now:        time.Now,
	}, nil
}

// Process judges one message and updates the chat's state. It never fails:
// any breakage in the judge pipeline is logged and collapses into a reject
// with a passive update, message dispatch must keep flowing regardless.
func (s *Service) Process(ctx context.Context, msg *queue.Message) (decision Decision) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("judge pipeline panicked",
				"chat_id", msg.ChatID,
				"panic", r,
				"telegram", true)

			s.stateSvc.ApplyPassiveUpdate(msg.ChatID)
			decision = Decision{Result: JudgeResult{
				Reasoning:       fmt.Sprintf("judge pipeline panicked: %v", r),
				RelatedMessages: []string{},
			}}
		}
	}()

	result := s.judgeMessage(ctx, msg)

	if result.ShouldReply {
		msg.MarkAddressed()
		s.stateSvc.ApplyActiveUpdate(msg.ChatID)

		slog.Info("proactive reply triggered",
			"chat_id", msg.ChatID,
			"score", result.OverallScore,
			"confidence", result.Confidence)
	} else {
		s.stateSvc.ApplyPassiveUpdate(msg.ChatID)

		slog.Debug("proactive reply withheld",
			"chat_id", msg.ChatID,
			"score", result.OverallScore,
			"reasoning", result.Reasoning)
	}

	return Decision{Accepted: result.ShouldReply, Result: result}
}

func (s *Service) judgeMessage(ctx context.Context, msg *queue.Message) JudgeResult {
	state := s.stateSvc.GetOrCreate(msg.ChatID)
	now := s.now()

	personaText := s.summarizer.Summarize(ctx, s.personaSvc.ResolvePrompt(msg.ChatID))
	lastReply, _ := s.historySvc.LastAssistantText(msg.ChatID)

	prompt := renderJudgePrompt(promptData{
		Persona:           personaText,
		ChatID:            msg.ChatID,
		Energy:            state.Energy,
		MinutesSinceReply: s.stateSvc.MinutesSinceLastReply(msg.ChatID),
		Activity:          activitySummary(state, now),
		ContextCount:      s.cfg.Heartflow.ContextMessagesCount,
		History:           renderHistory(s.historySvc.Recent(msg.ChatID, s.cfg.Heartflow.ContextMessagesCount)),
		LastBotReply:      lastReply,
		SenderName:        msg.SenderName,
		Message:           msg.Text,
		Time:              now.Format("15:04:05"),
		Threshold:         s.cfg.Heartflow.ReplyThreshold,
	})

	// No conversation contexts on purpose: a judge fed the live history
	// drifts into conversational completions instead of JSON.
	raw, err := s.judge.TextChat(ctx, prompt, nil)
	if err != nil {
		slog.Error("judge call failed",
			"chat_id", msg.ChatID,
			"error", err)

		return JudgeResult{
			Reasoning:       fmt.Sprintf("judge call failed: %v", err),
			RelatedMessages: []string{},
		}
	}

	return finalizeScore(parseJudgeResponse(raw), s.cfg.Heartflow.ReplyThreshold)
}

// Status reports the chat's current decision state and configuration.
func (s *Service) Status(chatID string) StatusReport {
	state := s.stateSvc.GetOrCreate(chatID)

	return StatusReport{
		ChatID:            chatID,
		Enabled:           s.cfg.Heartflow.Enabled,
		Energy:            state.Energy,
		MinutesSinceReply: s.stateSvc.MinutesSinceLastReply(chatID),
		TotalMessages:     state.TotalMessages,
		TotalReplies:      state.TotalReplies,
		ReplyRate:         replyRate(state),
		ReplyThreshold:    s.cfg.Heartflow.ReplyThreshold,
		JudgeModel:        s.cfg.Judge.Model,
		WhitelistEnabled:  s.cfg.Heartflow.WhitelistEnabled,
		WhitelistSize:     len(s.cfg.Heartflow.ChatWhitelist),
		Weights:           weightTable(),
	}
}

// Reset clears the chat back to defaults.
func (s *Service) Reset(chatID string) {
	s.stateSvc.Reset(chatID)
}
