package sentiment

import (
	"fmt"
	"strings"

	"github.com/jonreiter/govader"

	"github.com/newspulse/newspulse/pkg/models"
)

// Compound score thresholds VADER uses to bucket text into labels.
const (
	positiveThreshold = 0.05
	negativeThreshold = -0.05
)

// Vader scores text with the VADER lexicon model.
type Vader struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

// NewVader constructs the VADER scorer. govader builds its lexicon at
// construction time; a panic there surfaces as an error so callers can
// fall back to the keyword scorer.
func NewVader() (v *Vader, err error) {
	defer func() {
		if r := recover(); r != nil {
			v = nil
			err = fmt.Errorf("construct vader analyzer: %v", r)
		}
	}()
	return &Vader{analyzer: govader.NewSentimentIntensityAnalyzer()}, nil
}

func (v *Vader) Name() string { return EngineVader }

// Score labels text by VADER's compound score: >= 0.05 positive,
// <= -0.05 negative, neutral in between.
func (v *Vader) Score(text string) Result {
	text = strings.TrimSpace(text)
	if text == "" {
		return Result{Label: models.SentimentNeutral}
	}

	scores := v.analyzer.PolarityScores(text)

	label := models.SentimentNeutral
	switch {
	case scores.Compound >= positiveThreshold:
		label = models.SentimentPositive
	case scores.Compound <= negativeThreshold:
		label = models.SentimentNegative
	}

	// Non-neutral mass of the text as a confidence measure.
	conf := scores.Positive + scores.Negative
	if conf > 1 {
		conf = 1
	}

	return Result{Label: label, Score: scores.Compound, Confidence: conf}
}
