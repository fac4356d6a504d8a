package heartflow

// JudgeResult is the structured form of one judge-model evaluation. It is
// produced once per judged message and discarded right after the decision.
type JudgeResult struct {
	Relevance   float64 `json:"relevance"`
	Willingness float64 `json:"willingness"`
	Social      float64 `json:"social"`
	Timing      float64 `json:"timing"`
	Continuity  float64 `json:"continuity"`

	Reasoning       string   `json:"reasoning"`
	ShouldReply     bool     `json:"should_reply"`
	Confidence      float64  `json:"confidence"`
	OverallScore    float64  `json:"overall_score"`
	RelatedMessages []string `json:"related_messages"`
}

// Decision is what the dispatcher gets back for every judged message.
// Accepted means the host should run its normal addressed-message reply path.
type Decision struct {
	Accepted bool
	Result   JudgeResult
}

// StatusReport is the admin-facing snapshot of one chat's decision state.
type StatusReport struct {
	ChatID            string             `json:"chat_id"`
	Enabled           bool               `json:"enabled"`
	Energy            float64            `json:"energy"`
	MinutesSinceReply int                `json:"minutes_since_reply"`
	TotalMessages     int64              `json:"total_messages"`
	TotalReplies      int64              `json:"total_replies"`
	ReplyRate         float64            `json:"reply_rate"`
	ReplyThreshold    float64            `json:"reply_threshold"`
	JudgeModel        string             `json:"judge_model"`
	WhitelistEnabled  bool               `json:"whitelist_enabled"`
	WhitelistSize     int                `json:"whitelist_size"`
	Weights           map[string]float64 `json:"weights"`
}
