package judge

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"heartflow/app/config"
	"heartflow/app/service/conversation"

	"github.com/samber/do"
	"github.com/sashabaranov/go-openai"
)

const (
	maxJudgeDuration    = 30 * time.Second
	maxCompletionTokens = 1000
)

// ErrNotConfigured is returned when no judge model is set up. Callers treat
// it as an automatic reject rather than a fatal condition.
var ErrNotConfigured = errors.New("judge model is not configured")

// Client talks to a small openai-compatible model used purely for scoring.
// It never drafts actual replies.
type Client struct {
	cfg *config.Config
	api *openai.Client
}

func NewClient(di *do.Injector) (*Client, error) {
	cfg := do.MustInvoke[*config.Config](di)

	c := &Client{cfg: cfg}

	if cfg.Judge.Configured() {
		clientConfig := openai.DefaultConfig(cfg.Judge.Token)
		clientConfig.BaseURL = cfg.Judge.BaseURL
		clientConfig.HTTPClient = &http.Client{
			Timeout: maxJudgeDuration,
		}

		c.api = openai.NewClientWithConfig(clientConfig)
	}

	return c, nil
}

// TextChat sends a single prompt and returns the raw completion text.
// Contexts are prepended as prior turns; decision calls deliberately pass
// none so the judge cannot drift into conversational completions.
func (c *Client) TextChat(ctx context.Context, prompt string, contexts []conversation.Turn) (string, error) {
	if c.api == nil {
		return "", ErrNotConfigured
	}

	messages := make([]openai.ChatCompletionMessage, 0, len(contexts)+1)

	for _, turn := range contexts {
		text, ok := turn.Text()
		if !ok {
			continue
		}

		role := openai.ChatMessageRoleUser
		if turn.Role == conversation.RoleAssistant {
			role = openai.ChatMessageRoleAssistant
		}

		messages = append(messages, openai.ChatCompletionMessage{
			Role:    role,
			Content: text,
		})
	}

	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: prompt,
	})

	ctx, cancel := context.WithTimeout(ctx, maxJudgeDuration)
	defer cancel()

	aiResponse, err := c.api.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model:               c.cfg.Judge.Model,
			Messages:            messages,
			MaxCompletionTokens: maxCompletionTokens,
			Temperature:         1,
			ResponseFormat: &openai.ChatCompletionResponseFormat{
				Type: openai.ChatCompletionResponseFormatTypeJSONObject,
			},
		},
	)
	if err != nil {
		return "", fmt.Errorf("failed to create chat completion: %w", err)
	}

	if len(aiResponse.Choices) == 0 {
		return "", fmt.Errorf("no chat completion found")
	}

	return strings.TrimSpace(aiResponse.Choices[0].Message.Content), nil
}
