package heartflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseJudgeResponseFull(t *testing.T) {
	raw := `{
		"relevance": 8,
		"willingness": 7,
		"social": 6,
		"timing": 5,
		"continuity": 9,
		"reasoning": "direct follow-up to my last reply",
		"should_reply": true,
		"confidence": 0.85,
		"related_messages": ["user: what about the game?", "assistant: it starts at nine"]
	}`

	result := parseJudgeResponse(raw)

	assert.Equal(t, 8.0, result.Relevance)
	assert.Equal(t, 7.0, result.Willingness)
	assert.Equal(t, 6.0, result.Social)
	assert.Equal(t, 5.0, result.Timing)
	assert.Equal(t, 9.0, result.Continuity)
	assert.Equal(t, "direct follow-up to my last reply", result.Reasoning)
	assert.True(t, result.ShouldReply)
	assert.Equal(t, 0.85, result.Confidence)
	assert.Len(t, result.RelatedMessages, 2)
}

func TestParseJudgeResponseCodeFences(t *testing.T) {
	raw := "```json\n{\"relevance\": 5, \"should_reply\": true}\n```"

	result := parseJudgeResponse(raw)

	assert.Equal(t, 5.0, result.Relevance)
	assert.True(t, result.ShouldReply)
}

func TestParseJudgeResponseBareFences(t *testing.T) {
	raw := "```\n{\"relevance\": 5}\n```"

	result := parseJudgeResponse(raw)

	assert.Equal(t, 5.0, result.Relevance)
}

func TestParseJudgeResponseMalformed(t *testing.T) {
	result := parseJudgeResponse("sure, I think the bot should reply here!")

	assert.False(t, result.ShouldReply)
	assert.Contains(t, result.Reasoning, "not valid JSON")
	assert.NotNil(t, result.RelatedMessages)
	assert.Empty(t, result.RelatedMessages)
}

func TestParseJudgeResponseMissingFields(t *testing.T) {
	result := parseJudgeResponse(`{"reasoning": "nothing to say"}`)

	assert.Zero(t, result.Relevance)
	assert.Zero(t, result.Willingness)
	assert.Zero(t, result.Social)
	assert.Zero(t, result.Timing)
	assert.Zero(t, result.Continuity)
	assert.Zero(t, result.Confidence)
	assert.False(t, result.ShouldReply)
	assert.Empty(t, result.RelatedMessages)
}

func TestParseJudgeResponseMistypedFields(t *testing.T) {
	raw := `{
		"relevance": "7",
		"willingness": "not a number",
		"should_reply": "yes",
		"confidence": null,
		"related_messages": [1, "kept", null, {"x": 1}]
	}`

	result := parseJudgeResponse(raw)

	assert.Equal(t, 7.0, result.Relevance)
	assert.Zero(t, result.Willingness)
	assert.False(t, result.ShouldReply)
	assert.Zero(t, result.Confidence)
	assert.Equal(t, []string{"kept"}, result.RelatedMessages)
}

func TestParseJudgeResponseMalformedRelatedMessages(t *testing.T) {
	result := parseJudgeResponse(`{"relevance": 5, "related_messages": "oops"}`)

	assert.NotNil(t, result.RelatedMessages)
	assert.Empty(t, result.RelatedMessages)
}
