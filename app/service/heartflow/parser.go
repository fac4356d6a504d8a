package heartflow

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
)

// parseJudgeResponse turns the judge model's raw completion into a
// JudgeResult. This is the only place untrusted model output is read, so
// nothing about its shape is assumed: missing or mistyped fields fall back
// to safe defaults and a broken payload becomes a plain reject, never an
// error to the caller.
func parseJudgeResponse(raw string) JudgeResult {
	content := stripCodeFences(raw)

	var fields map[string]any
	if err := json.Unmarshal([]byte(content), &fields); err != nil {
		slog.Error("judge returned invalid JSON", "raw", raw)

		return JudgeResult{
			ShouldReply:     false,
			Reasoning:       fmt.Sprintf("judge output is not valid JSON: %v", err),
			RelatedMessages: []string{},
		}
	}

	return JudgeResult{
		Relevance:       numberField(fields, "relevance"),
		Willingness:     numberField(fields, "willingness"),
		Social:          numberField(fields, "social"),
		Timing:          numberField(fields, "timing"),
		Continuity:      numberField(fields, "continuity"),
		Reasoning:       stringField(fields, "reasoning"),
		ShouldReply:     boolField(fields, "should_reply"),
		Confidence:      numberField(fields, "confidence"),
		RelatedMessages: stringSliceField(fields, "related_messages"),
	}
}

func stripCodeFences(raw string) string {
	content := strings.TrimSpace(raw)
	content = strings.Trim(content, "`")
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "json")

	return strings.TrimSpace(content)
}

func numberField(fields map[string]any, key string) float64 {
	switch value := fields[key].(type) {
	case float64:
		return value
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return 0
		}
		return parsed
	default:
		return 0
	}
}

func stringField(fields map[string]any, key string) string {
	value, _ := fields[key].(string)
	return value
}

func boolField(fields map[string]any, key string) bool {
	value, _ := fields[key].(bool)
	return value
}

func stringSliceField(fields map[string]any, key string) []string {
	result := []string{}

	items, ok := fields[key].([]any)
	if !ok {
		return result
	}

	for _, item := range items {
		if text, ok := item.(string); ok {
			result = append(result, text)
		}
	}

	return result
}
