package engine

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"heartflow/app/config"
	"heartflow/app/service/heartflow"
	"heartflow/app/service/queue"

	"github.com/elliotchance/pie/v2"
	"github.com/samber/do"
	"golang.org/x/sync/errgroup"
)

const maxConcurrentJudges = 8

// Service is the dispatch loop: it drains the inbound queue, filters out
// messages that must not be judged at all and hands the rest to the
// decision engine. Accepted messages are surfaced on an output channel for
// the host's normal addressed-message reply path.
type Service struct {
	cfg          *config.Config
	queueSvc     *queue.Service
	heartflowSvc *heartflow.Service

	accepted chan *queue.Message
}

func New(di *do.Injector) (*Service, error) {
	return &Service{
		cfg:          do.MustInvoke[*config.Config](di),
		queueSvc:     do.MustInvoke[*queue.Service](di),
		heartflowSvc: do.MustInvoke[*heartflow.Service](di),
		accepted:     make(chan *queue.Message, 16),
	}, nil
}

// Accepted delivers messages the decision engine wants answered.
func (s *Service) Accepted() <-chan *queue.Message {
	return s.accepted
}

func (s *Service) Run(ctx context.Context) {
	var group errgroup.Group
	group.SetLimit(maxConcurrentJudges)

	defer func() {
		_ = group.Wait()
		close(s.accepted)
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-s.queueSvc.Channel():
			if !ok {
				return
			}

			if !s.shouldProcess(msg) {
				continue
			}

			group.Go(func() error {
				s.processMessage(ctx, msg)
				return nil
			})
		}
	}
}

func (s *Service) processMessage(ctx context.Context, msg *queue.Message) {
	start := time.Now()

	decision := s.heartflowSvc.Process(ctx, msg)

	slog.Info("judged message",
		"chat_id", msg.ChatID,
		"sender", msg.SenderName,
		"accepted", decision.Accepted,
		"score", decision.Result.OverallScore,
		"duration", time.Since(start))

	if !decision.Accepted {
		return
	}

	select {
	case s.accepted <- msg:
	case <-ctx.Done():
	}
}

// shouldProcess applies the upstream eligibility gate: only plain group
// messages the bot was not addressed by are ever judged.
func (s *Service) shouldProcess(msg *queue.Message) bool {
	if !s.cfg.Heartflow.Enabled {
		return false
	}

	if msg.Woken {
		slog.Debug("skipping message that already woke the bot", "chat_id", msg.ChatID)
		return false
	}

	if s.cfg.Heartflow.WhitelistEnabled {
		if len(s.cfg.Heartflow.ChatWhitelist) == 0 {
			slog.Debug("whitelist is empty, skipping", "chat_id", msg.ChatID)
			return false
		}

		if !pie.Contains(s.cfg.Heartflow.ChatWhitelist, msg.ChatID) {
			slog.Debug("chat is not whitelisted, skipping", "chat_id", msg.ChatID)
			return false
		}
	}

	if msg.SenderID == s.cfg.Bot.SelfID {
		return false
	}

	if strings.TrimSpace(msg.Text) == "" {
		return false
	}

	return true
}
