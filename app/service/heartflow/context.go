package heartflow

import (
	"fmt"
	"strings"
	"time"

	"heartflow/app/service/chatstate"
	"heartflow/app/service/conversation"

	"github.com/elliotchance/pie/v2"
)

// Activity buckets by process-lifetime message count.
const (
	mediumActivityFloor = 20
	highActivityFloor   = 100
)

// activitySummary renders the qualitative chat overview shown to the judge:
// an activity bucket, the historical reply rate and the current clock time.
func activitySummary(state chatstate.ChatState, now time.Time) string {
	bucket := "low"
	switch {
	case state.TotalMessages > highActivityFloor:
		bucket = "high"
	case state.TotalMessages >= mediumActivityFloor:
		bucket = "medium"
	}

	return fmt.Sprintf("Recent activity: %s\nHistorical reply rate: %.1f%%\nCurrent time: %s",
		bucket, replyRate(state), now.Format("15:04"))
}

// replyRate returns total_replies/total_messages as a percentage,
// 0 for a chat with no recorded messages.
func replyRate(state chatstate.ChatState) float64 {
	if state.TotalMessages == 0 {
		return 0
	}

	return float64(state.TotalReplies) / float64(state.TotalMessages) * 100
}

// renderHistory formats recent turns as speaker-labeled lines for the judge.
// Only plain text user/assistant turns survive: tool-call records and other
// structured content would corrupt the judge's view of the conversation.
func renderHistory(turns []conversation.Turn) string {
	textTurns := pie.Filter(turns, func(turn conversation.Turn) bool {
		if turn.Role != conversation.RoleUser && turn.Role != conversation.RoleAssistant {
			return false
		}

		_, ok := turn.Text()
		return ok
	})

	lines := pie.Map(textTurns, func(turn conversation.Turn) string {
		text, _ := turn.Text()
		return fmt.Sprintf("%s: %s", turn.Role, text)
	})

	return strings.Join(lines, "\n---\n")
}
