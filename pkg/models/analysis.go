package models

import "time"

// Analysis is the result of fetching a batch of articles for a query
// and scoring each one. It is the payload of the analyze endpoint, the
// input to report generation, and the event broadcast to websocket
// subscribers.
type Analysis struct {
	Query      string           `json:"query"`
	Window     string           `json:"window"`
	Provider   string           `json:"provider"`
	Mode       string           `json:"mode"` // "shallow" or "deep"
	Articles   []ScoredArticle  `json:"articles"`
	Summary    SentimentSummary `json:"summary"`
	AnalyzedAt time.Time        `json:"analyzed_at"`
	ElapsedMS  int64            `json:"elapsed_ms"`
}

// AnalysisModeShallow scores the description (or headline) that came
// with the listing. AnalysisModeDeep fetches each article page and
// scores its extracted body text.
const (
	AnalysisModeShallow = "shallow"
	AnalysisModeDeep    = "deep"
)
