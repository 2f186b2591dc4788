package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScoreCandidate_DateOnly(t *testing.T) {
	c := Candidate{DateParsed: true, KeywordDistance: -1, RepeatCount: 1}
	assert.InDelta(t, 0.40, ScoreCandidate(c, DefaultConfidenceWeights()), 1e-9)
}

func TestScoreCandidate_AllSignals(t *testing.T) {
	c := Candidate{
		DateParsed:      true,
		KeywordDistance: 0,
		HeadingMatch:    true,
		RepeatCount:     2,
	}
	// 0.40 + 0.30 + 0.15 + 0.15*(1-1/2)
	assert.InDelta(t, 0.925, ScoreCandidate(c, DefaultConfidenceWeights()), 1e-9)
}

func TestScoreCandidate_KeywordDecaysWithDistance(t *testing.T) {
	w := DefaultConfidenceWeights()
	near := ScoreCandidate(Candidate{DateParsed: true, KeywordDistance: 1, RepeatCount: 1}, w)
	far := ScoreCandidate(Candidate{DateParsed: true, KeywordDistance: 40, RepeatCount: 1}, w)
	assert.Greater(t, near, far)
	assert.Greater(t, far, 0.40, "distant keyword still contributes")
}

func TestScoreCandidate_RepeatSaturates(t *testing.T) {
	w := DefaultConfidenceWeights()
	base := Candidate{DateParsed: true, KeywordDistance: -1}

	twice := base
	twice.RepeatCount = 2
	many := base
	many.RepeatCount = 50

	assert.Greater(t, ScoreCandidate(many, w), ScoreCandidate(twice, w))
	assert.Less(t, ScoreCandidate(many, w), 0.40+w.Repeat, "repeat bonus never exceeds its weight")
}

func TestScoreCandidate_ClampedToUnitInterval(t *testing.T) {
	w := ConfidenceWeights{DateParsed: 2.0, Keyword: 2.0, Heading: 2.0, Repeat: 2.0, KeywordDecay: 0.02}
	c := Candidate{DateParsed: true, KeywordDistance: 0, HeadingMatch: true, RepeatCount: 10}
	assert.Equal(t, 1.0, ScoreCandidate(c, w))

	assert.Equal(t, 0.0, ScoreCandidate(Candidate{KeywordDistance: -1, RepeatCount: 1}, DefaultConfidenceWeights()))
}

func TestScoreCandidate_Deterministic(t *testing.T) {
	c := Candidate{DateParsed: true, KeywordDistance: 3, HeadingMatch: true, RepeatCount: 3}
	w := DefaultConfidenceWeights()
	first := ScoreCandidate(c, w)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, ScoreCandidate(c, w))
	}
}
