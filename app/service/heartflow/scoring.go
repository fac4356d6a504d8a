package heartflow

// Dimension weights, fixed and summing to 1.0. Dimensions come in on a
// 0-10 scale, the overall score is normalized to [0, 1].
const (
	weightRelevance   = 0.25
	weightWillingness = 0.20
	weightSocial      = 0.20
	weightTiming      = 0.15
	weightContinuity  = 0.20
)

func overallScore(r JudgeResult) float64 {
	return (r.Relevance*weightRelevance +
		r.Willingness*weightWillingness +
		r.Social*weightSocial +
		r.Timing*weightTiming +
		r.Continuity*weightContinuity) / 10.0
}

// finalizeScore fills in the weighted score and applies the reply gate:
// the judge's own verdict AND the score threshold, the threshold vetoes
// even an affirmative judge.
func finalizeScore(r JudgeResult, threshold float64) JudgeResult {
	r.OverallScore = overallScore(r)
	r.ShouldReply = r.ShouldReply && r.OverallScore >= threshold

	return r
}

func weightTable() map[string]float64 {
	return map[string]float64{
		"relevance":   weightRelevance,
		"willingness": weightWillingness,
		"social":      weightSocial,
		"timing":      weightTiming,
		"continuity":  weightContinuity,
	}
}
