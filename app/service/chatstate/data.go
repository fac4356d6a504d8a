package chatstate

import "time"

// ChatState tracks how willing the bot is to speak up in one chat.
// Energy stays within [0.1, 1.0]: it drains on every proactive reply and
// creeps back while the bot keeps quiet. Counters live for the process
// lifetime only.
type ChatState struct {
	Energy        float64
	LastReplyTime time.Time
	LastResetDate string
	TotalMessages int64
	TotalReplies  int64
}

const (
	minEnergy     = 0.1
	maxEnergy     = 1.0
	dailyRecovery = 0.2
)

func newChatState() *ChatState {
	return &ChatState{
		Energy: maxEnergy,
	}
}
