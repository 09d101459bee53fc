package allocation

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/skytrail/tripcast/pkg/common"
	"github.com/skytrail/tripcast/pkg/logger"
)

// Allocate distributes totalDays across the given stops. Every city starts
// at its MinDays; the remainder is split proportionally to PreferredDays
// (integer-truncated, capped at MaxDays), and truncation leftovers are
// handed out one day at a time in input order until the total matches or
// every city is at its cap.
func Allocate(stops []Stop, totalDays int) (map[string]int, error) {
	stops = normalized(stops)

	minTotal := 0
	for _, s := range stops {
		minTotal += s.MinDays
	}
	if totalDays < minTotal {
		return nil, &common.InfeasibleConstraintError{
			Constraint: "total_days",
			Minimum:    float64(minTotal),
			Message: fmt.Sprintf(
				"total trip days (%d) is less than minimum required (%d) for all cities",
				totalDays, minTotal,
			),
		}
	}

	days := make(map[string]int, len(stops))
	for _, s := range stops {
		days[s.City] = s.MinDays
	}

	remaining := totalDays - minTotal
	if remaining <= 0 {
		return days, nil
	}

	totalPreferred := 0
	for _, s := range stops {
		totalPreferred += s.PreferredDays
	}

	if totalPreferred > 0 {
		for _, s := range stops {
			share := float64(s.PreferredDays) / float64(totalPreferred)
			extra := int(float64(remaining) * share)
			if headroom := s.MaxDays - days[s.City]; extra > headroom {
				extra = headroom
			}
			days[s.City] += extra
		}
	}

	leftover := totalDays
	for _, s := range stops {
		leftover -= days[s.City]
	}

	for leftover > 0 {
		assigned := false
		for _, s := range stops {
			if leftover == 0 {
				break
			}
			if days[s.City] < s.MaxDays {
				days[s.City]++
				leftover--
				assigned = true
			}
		}
		if !assigned {
			logger.Warn("every city at maximum stay, days left unassigned",
				zap.Int("unassigned_days", leftover),
				zap.Int("total_days", totalDays),
			)
			break
		}
	}

	return days, nil
}

func normalized(stops []Stop) []Stop {
	out := make([]Stop, len(stops))
	copy(out, stops)
	for i := range out {
		if out[i].PreferredDays <= 0 {
			out[i].PreferredDays = out[i].MinDays
		}
		if out[i].MaxDays < out[i].MinDays {
			out[i].MaxDays = out[i].MinDays
		}
	}
	return out
}
