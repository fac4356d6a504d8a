package config

import (
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/samber/oops"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Log       Log       `yaml:"log"`
	Bot       Bot       `yaml:"bot"`
	Judge     Judge     `yaml:"judge"`
	Heartflow Heartflow `yaml:"heartflow"`
	Server    Server    `yaml:"server"`
}

type Judge struct {
	// OpenAI-compatible base url
	BaseURL string `yaml:"base_url" example:"https://openrouter.ai/api/v1"`
	// API token
	Token string `yaml:"token" example:"sk-proj-abc123456789DEF789ghi012JKL345mno678PQR901stu234VWX"`
	// Model used for reply decisions, a small cheap one is enough
	Model string `yaml:"model" example:"deepseek/deepseek-chat-v3-0324:free"`
}

// Configured reports whether a judge model is set up at all.
// An unconfigured judge means every proactive-reply decision is a reject.
func (j Judge) Configured() bool {
	return j.BaseURL != "" && j.Model != ""
}

type Bot struct {
	// Sender id the bot posts under, used to skip its own messages
	SelfID string `yaml:"self_id" example:"bot-42" validate:"required"`
	// Display name of the bot account
	SelfName string `yaml:"self_name" example:"Heartflow" validate:"required"`
}

type Heartflow struct {
	// Master switch, nothing is judged while disabled
	Enabled bool `yaml:"enabled" example:"false"`
	// Minimum weighted score required to reply
	ReplyThreshold float64 `yaml:"reply_threshold" example:"0.6" validate:"gte=0,lte=1"`
	// Energy lost on each proactive reply
	EnergyDecayRate float64 `yaml:"energy_decay_rate" example:"0.1" validate:"gt=0,lte=1"`
	// Energy regained on each message left unanswered
	EnergyRecoveryRate float64 `yaml:"energy_recovery_rate" example:"0.02" validate:"gt=0,lte=1"`
	// How many recent turns are shown to the judge
	ContextMessagesCount int `yaml:"context_messages_count" example:"5" validate:"gte=1"`
	// Restrict judging to whitelisted chats
	WhitelistEnabled bool `yaml:"whitelist_enabled" example:"false"`
	// Chat ids eligible for proactive replies when the whitelist is on
	ChatWhitelist []string `yaml:"chat_whitelist"`
}

type Server struct {
	// Address of the admin HTTP server
	Addr string `yaml:"addr" example:":8080" validate:"required"`
}

type Log struct {
	// Log decision details at debug level on the console
	Debug bool `yaml:"debug" example:"false"`
	// Telegram logging config
	Telegram TelegramLog `yaml:"telegram"`
}

type TelegramLog struct {
	// Chat bot token, obtain it via BotFather
	Token string `yaml:"token" example:"1234567890:ABCdefGHIjklMNopQRstUVwxyZ-123456789"`
	// Chat ID to send messages to
	ChatID string `yaml:"chat_id" example:"1001234567890"`
}

func Load() (*Config, error) {
	var result Config

	data, err := os.ReadFile("config.yaml")
	if err != nil {
		return nil, oops.Errorf("failed to read config file: %w", err)
	}

	if err = yaml.Unmarshal(data, &result); err != nil {
		return nil, oops.Errorf("failed to parse YAML config: %w", err)
	}

	result.ApplyDefaults()

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(result); err != nil {
		return nil, oops.Errorf("failed to validate config: %w", err)
	}

	return &result, nil
}

func (c *Config) ApplyDefaults() {
	if c.Heartflow.ReplyThreshold == 0 {
		c.Heartflow.ReplyThreshold = 0.6
	}
	if c.Heartflow.EnergyDecayRate == 0 {
		c.Heartflow.EnergyDecayRate = 0.1
	}
	if c.Heartflow.EnergyRecoveryRate == 0 {
		c.Heartflow.EnergyRecoveryRate = 0.02
	}
	if c.Heartflow.ContextMessagesCount == 0 {
		c.Heartflow.ContextMessagesCount = 5
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
}
