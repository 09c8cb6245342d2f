// Package sentiment labels news text as positive, neutral, or negative.
// The primary scorer wraps the VADER lexicon model; a small keyword
// scorer backs it so every non-empty text still gets one of the three
// labels when VADER cannot be constructed.
package sentiment

import (
	"github.com/rs/zerolog"

	"github.com/newspulse/newspulse/pkg/models"
)

// Engine names accepted by New.
const (
	EngineAuto    = "auto"
	EngineVader   = "vader"
	EngineKeyword = "keyword"
)

// Result is the sentiment of a single piece of text.
type Result struct {
	Label      models.SentimentLabel `json:"label"`
	Score      float64               `json:"score"`      // -1..+1 for VADER, (pos-neg)/10 for keyword
	Confidence float64               `json:"confidence"` // 0..1
}

// Scorer assigns a sentiment label and score to text.
// Implementations must return a labelled Result for any input;
// empty or whitespace-only text is neutral with score 0.
type Scorer interface {
	Name() string
	Score(text string) Result
}

// New builds the configured scorer. Engines "vader" and "auto" select
// the VADER scorer and fall back to the keyword scorer when it cannot
// be constructed; "keyword" selects the fallback directly.
func New(engine string, log zerolog.Logger) Scorer {
	switch engine {
	case EngineKeyword:
		return NewKeyword()
	case EngineVader, EngineAuto, "":
		v, err := NewVader()
		if err != nil {
			log.Warn().Err(err).Msg("vader scorer unavailable, using keyword fallback")
			return NewKeyword()
		}
		return v
	default:
		log.Warn().Str("engine", engine).Msg("unknown sentiment engine, using keyword fallback")
		return NewKeyword()
	}
}

// ScoreArticles scores each article's display text and attaches the result.
func ScoreArticles(s Scorer, articles []models.Article) []models.ScoredArticle {
	scored := make([]models.ScoredArticle, 0, len(articles))
	for _, a := range articles {
		r := s.Score(a.Text())
		scored = append(scored, models.ScoredArticle{
			Article:    a,
			Sentiment:  r.Label,
			Score:      r.Score,
			Confidence: r.Confidence,
		})
	}
	return scored
}

// Summarize aggregates scored articles into per-label counts, an average
// score, and an overall label. The overall label is the strict plurality
// winner; any tie resolves to neutral.
func Summarize(scored []models.ScoredArticle) models.SentimentSummary {
	sum := models.SentimentSummary{Overall: models.SentimentNeutral}
	var totalScore float64
	for _, sa := range scored {
		sum.Total++
		totalScore += sa.Score
		switch sa.Sentiment {
		case models.SentimentPositive:
			sum.Positive++
		case models.SentimentNegative:
			sum.Negative++
		default:
			sum.Neutral++
		}
	}
	if sum.Total == 0 {
		return sum
	}
	sum.AverageScore = totalScore / float64(sum.Total)
	switch {
	case sum.Positive > sum.Neutral && sum.Positive > sum.Negative:
		sum.Overall = models.SentimentPositive
	case sum.Negative > sum.Neutral && sum.Negative > sum.Positive:
		sum.Overall = models.SentimentNegative
	}
	return sum
}
