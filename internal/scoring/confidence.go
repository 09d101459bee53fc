package scoring

import "math"

// Confidence bounds and fallbacks.
const (
	MinConfidence     = 0.3
	MaxConfidence     = 1.0
	NeutralConfidence = 0.5
	// ErrorConfidence is what callers report when selection itself failed.
	ErrorConfidence = 0.3
)

// Confidence estimates how much the best window stands out from its
// peers: the z-score of the best rolling score against the candidate
// distribution (population stddev), mapped onto [MinConfidence,
// MaxConfidence]. Fewer than two candidates, or a flat distribution,
// yields the neutral value.
func (s *Service) Confidence(allScores []float64, best float64) float64 {
	if len(allScores) < 2 {
		return NeutralConfidence
	}

	mean := 0.0
	for _, v := range allScores {
		mean += v
	}
	mean /= float64(len(allScores))

	variance := 0.0
	for _, v := range allScores {
		d := v - mean
		variance += d * d
	}
	variance /= float64(len(allScores))

	std := math.Sqrt(variance)
	if std < 1e-12 {
		return NeutralConfidence
	}

	z := (best - mean) / std
	return clamp(NeutralConfidence+0.2*z, MinConfidence, MaxConfidence)
}
