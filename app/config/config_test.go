package config

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyDefaults(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()

	assert.Equal(t, 0.6, cfg.Heartflow.ReplyThreshold)
	assert.Equal(t, 0.1, cfg.Heartflow.EnergyDecayRate)
	assert.Equal(t, 0.02, cfg.Heartflow.EnergyRecoveryRate)
	assert.Equal(t, 5, cfg.Heartflow.ContextMessagesCount)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.False(t, cfg.Heartflow.Enabled)
}

func TestApplyDefaultsKeepsExplicitValues(t *testing.T) {
	cfg := Config{}
	cfg.Heartflow.ReplyThreshold = 0.8
	cfg.Heartflow.ContextMessagesCount = 10

	cfg.ApplyDefaults()

	assert.Equal(t, 0.8, cfg.Heartflow.ReplyThreshold)
	assert.Equal(t, 10, cfg.Heartflow.ContextMessagesCount)
}

func TestValidation(t *testing.T) {
	validate := validator.New(validator.WithRequiredStructEnabled())

	valid := Config{}
	valid.ApplyDefaults()
	valid.Bot.SelfID = "bot-1"
	valid.Bot.SelfName = "Heartflow"
	require.NoError(t, validate.Struct(valid))

	badThreshold := valid
	badThreshold.Heartflow.ReplyThreshold = 1.5
	assert.Error(t, validate.Struct(badThreshold))

	missingBot := valid
	missingBot.Bot.SelfID = ""
	assert.Error(t, validate.Struct(missingBot))
}

func TestJudgeConfigured(t *testing.T) {
	assert.False(t, Judge{}.Configured())
	assert.False(t, Judge{BaseURL: "https://example.com/v1"}.Configured())
	assert.True(t, Judge{BaseURL: "https://example.com/v1", Model: "small-model"}.Configured())
}
