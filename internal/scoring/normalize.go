package scoring

import "math"

// degenerateRange is the spread below which a series is treated as flat
// and every point scores the neutral 50.
const degenerateRange = 0.01

// maxPrecipPenalty is the largest deduction precipitation can apply to a
// weather score.
const maxPrecipPenalty = 20.0

// MinMaxInvert maps a series onto [0, 100] where the lowest raw value
// scores 100 and the highest scores 0. Used for cost-like signals (price,
// crowd) where less is better. A flat series scores 50 everywhere.
func MinMaxInvert(values []float64) []float64 {
	scores := make([]float64, len(values))
	if len(values) == 0 {
		return scores
	}

	min, max := values[0], values[0]
	for _, v := range values[1:] {
		min = math.Min(min, v)
		max = math.Max(max, v)
	}

	spread := max - min
	if spread <= degenerateRange {
		for i := range scores {
			scores[i] = 50.0
		}
		return scores
	}

	for i, v := range values {
		scores[i] = 100 * (1 - (v-min)/spread)
	}
	return scores
}

// TargetDistance scores each value by its distance from an ideal: the
// ideal itself scores 100, anything tolerance or further away scores 0.
func TargetDistance(values []float64, ideal, tolerance float64) []float64 {
	scores := make([]float64, len(values))
	for i, v := range values {
		frac := 1 - math.Abs(v-ideal)/tolerance
		scores[i] = 100 * clamp(frac, 0, 1)
	}
	return scores
}

// WeatherScores combines temperature comfort with a precipitation penalty:
// up to maxPrecipPenalty points are subtracted in proportion to each
// week's share of the series' precipitation maximum. A dry series applies
// no penalty. The result is clipped back to [0, 100].
func WeatherScores(temps, precips []float64, ideal, tolerance float64) []float64 {
	scores := TargetDistance(temps, ideal, tolerance)

	maxPrecip := 0.0
	for _, p := range precips {
		maxPrecip = math.Max(maxPrecip, p)
	}
	if maxPrecip <= 0 {
		return scores
	}

	for i := range scores {
		penalty := maxPrecipPenalty * precips[i] / maxPrecip
		scores[i] = clamp(scores[i]-penalty, 0, 100)
	}
	return scores
}

func clamp(v, min, max float64) float64 {
	return math.Min(math.Max(v, min), max)
}
