package domain

// Insights is the structured analysis returned by the AI insight provider.
type Insights struct {
	Analysis        Analysis         `json:"analysis"`
	Recommendations []Recommendation `json:"recommendations"`
	Tips            []string         `json:"tips"`
	Tricks          []string         `json:"tricks,omitempty"`
	Summary         InsightSummary   `json:"summary"`
}

// Analysis describes how the game plays and who it is for.
type Analysis struct {
	Sentiment      string `json:"sentiment"`
	Difficulty     string `json:"difficulty"`
	Replayability  string `json:"replayability"`
	TargetAudience string `json:"targetAudience"`
}

// Recommendation groups related games under a reason.
type Recommendation struct {
	Name   string   `json:"name"`
	Games  []string `json:"games"`
	Reason string   `json:"reason"`
}

// InsightSummary is the verdict section of Insights.
type InsightSummary struct {
	Pros    []string `json:"pros"`
	Cons    []string `json:"cons"`
	Verdict string   `json:"verdict"`
}
