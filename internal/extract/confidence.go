package extract

import "math"

// ConfidenceWeights tune the candidate confidence score. They are
// configuration, not constants, so extraction quality can be adjusted
// without code changes.
type ConfidenceWeights struct {
	DateParsed   float64 // binary: the date token parsed to a real date
	Keyword      float64 // distance-decayed keyword proximity
	Heading      float64 // binary: found under a schedule-like heading
	Repeat       float64 // saturating bonus for multi-page repeats
	KeywordDecay float64 // per-character decay of the keyword signal
}

func DefaultConfidenceWeights() ConfidenceWeights {
	return ConfidenceWeights{
		DateParsed:   0.40,
		Keyword:      0.30,
		Heading:      0.15,
		Repeat:       0.15,
		KeywordDecay: 0.02,
	}
}

// ScoreCandidate computes a confidence in [0,1] for one candidate.
// Pure and deterministic: identical input always yields identical output.
func ScoreCandidate(c Candidate, w ConfidenceWeights) float64 {
	var score float64

	if c.DateParsed {
		score += w.DateParsed
	}

	if c.KeywordDistance >= 0 {
		decay := 1.0 / (1.0 + w.KeywordDecay*float64(c.KeywordDistance))
		score += w.Keyword * decay
	}

	if c.HeadingMatch {
		score += w.Heading
	}

	if c.RepeatCount > 1 {
		// Saturates toward the full repeat weight as occurrences grow.
		score += w.Repeat * (1.0 - 1.0/float64(c.RepeatCount))
	}

	return math.Min(1.0, math.Max(0.0, score))
}
