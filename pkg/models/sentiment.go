package models

// SentimentLabel classifies the tone of a piece of text.
type SentimentLabel string

const (
	SentimentPositive SentimentLabel = "positive"
	SentimentNeutral  SentimentLabel = "neutral"
	SentimentNegative SentimentLabel = "negative"
)

// BadgeColor returns the hex color used for sentiment badges in the
// dashboard and in generated reports.
func (l SentimentLabel) BadgeColor() string {
	switch l {
	case SentimentPositive:
		return "#10b981"
	case SentimentNegative:
		return "#ef4444"
	default:
		return "#6b7280"
	}
}

// SentimentSummary aggregates the sentiment of a batch of scored
// articles.
type SentimentSummary struct {
	Positive     int            `json:"positive"`
	Neutral      int            `json:"neutral"`
	Negative     int            `json:"negative"`
	Total        int            `json:"total"`
	AverageScore float64        `json:"average_score"`
	Overall      SentimentLabel `json:"overall"`
}
