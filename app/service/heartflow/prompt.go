package heartflow

import (
	"fmt"
	"strings"

	_ "embed"
)

//go:embed judge_prompt_template.txt
var judgePromptTemplate string

const (
	defaultPersonaText = "Default persona: a helpful assistant"
	noLastReplyText    = "No previous reply on record"
	noHistoryText      = "No conversation history yet"
)

type promptData struct {
	Persona           string
	ChatID            string
	Energy            float64
	MinutesSinceReply int
	Activity          string
	ContextCount      int
	History           string
	LastBotReply      string
	SenderName        string
	Message           string
	Time              string
	Threshold         float64
}

// renderJudgePrompt fills the embedded template. The rendered text is the
// judge's entire world: the call deliberately carries no conversation
// contexts, so everything the judge may consider has to be in here.
func renderJudgePrompt(d promptData) string {
	persona := d.Persona
	if persona == "" {
		persona = defaultPersonaText
	}

	lastReply := d.LastBotReply
	if lastReply == "" {
		lastReply = noLastReplyText
	}

	history := d.History
	if history == "" {
		history = noHistoryText
	}

	templateValues := map[string]any{
		"persona":             persona,
		"chat_id":             d.ChatID,
		"energy":              fmt.Sprintf("%.1f", d.Energy),
		"minutes_since_reply": d.MinutesSinceReply,
		"activity":            d.Activity,
		"context_count":       d.ContextCount,
		"history":             history,
		"last_bot_reply":      lastReply,
		"sender_name":         d.SenderName,
		"message":             d.Message,
		"time":                d.Time,
		"threshold":           d.Threshold,
	}

	prompt := judgePromptTemplate
	for key, value := range templateValues {
		prompt = strings.ReplaceAll(prompt, "{"+key+"}", fmt.Sprint(value))
	}

	return prompt
}
