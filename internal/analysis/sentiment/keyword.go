package sentiment

import (
	"math"
	"strings"

	"github.com/newspulse/newspulse/pkg/models"
)

// Fixed word lists for the offline fallback scorer. Matching is
// case-insensitive substring containment, each list word counted at
// most once.
var positiveWords = []string{
	"good", "great", "excellent", "positive", "growth", "win",
	"success", "benefit", "surge", "record", "best", "strong",
}

var negativeWords = []string{
	"bad", "poor", "terrible", "negative", "loss", "fail",
	"decline", "drop", "worst", "weak", "fraud", "lawsuit",
}

// Keyword is the deterministic fallback scorer. It needs no external
// model, so it is always available.
type Keyword struct{}

// NewKeyword returns the keyword scorer.
func NewKeyword() *Keyword { return &Keyword{} }

func (k *Keyword) Name() string { return EngineKeyword }

// Score counts positive and negative word matches; whichever count wins
// sets the label, with the score scaled by the margin: (pos-neg)/10.
// A tie (including no matches) is neutral with score 0.
func (k *Keyword) Score(text string) Result {
	text = strings.TrimSpace(text)
	if text == "" {
		return Result{Label: models.SentimentNeutral}
	}

	lower := strings.ToLower(text)
	pos := 0
	for _, w := range positiveWords {
		if strings.Contains(lower, w) {
			pos++
		}
	}
	neg := 0
	for _, w := range negativeWords {
		if strings.Contains(lower, w) {
			neg++
		}
	}

	conf := keywordConfidence(pos + neg)
	switch {
	case pos > neg:
		return Result{Label: models.SentimentPositive, Score: float64(pos-neg) / 10.0, Confidence: conf}
	case neg > pos:
		return Result{Label: models.SentimentNegative, Score: -float64(neg-pos) / 10.0, Confidence: conf}
	default:
		return Result{Label: models.SentimentNeutral, Confidence: conf}
	}
}

// keywordConfidence grows with the number of keyword matches, capped
// well below certainty since the lexicon is tiny.
func keywordConfidence(matches int) float64 {
	if matches == 0 {
		return 0.1
	}
	return math.Min(float64(matches)*0.15+0.2, 0.85)
}
