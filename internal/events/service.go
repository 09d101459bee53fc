package events

import (
	"fmt"
	"strings"
	"time"
)

const maxSuggestions = 3

// majorKeywords mark an event as significant enough to move prices and
// crowds on its own.
var majorKeywords = []string{
	"fashion week", "festival", "olympics", "world cup",
	"championship", "expo", "marathon", "conference",
	"summit", "awards", "carnival", "pride",
}

// warningKeywords select the single event called out in the trip warning.
var warningKeywords = []string{"fashion week", "festival", "olympics", "world cup"}

// Service looks up scheduled events for a city and trip window and
// classifies their impact on the visit.
type Service struct {
	catalog map[string][]catalogEvent
}

func NewService() *Service {
	return &Service{catalog: catalog}
}

// ForTrip returns the events overlapping a stay in city starting at start.
// Recurrence is matched on the start month. Cities without a month match
// still get a taste of their year-round calendar, and unknown cities get
// generic local suggestions so callers never handle an empty result.
func (s *Service) ForTrip(city string, start, end time.Time) Assessment {
	cityEvents := s.catalog[strings.ToLower(strings.TrimSpace(city))]

	var relevant []Event
	for _, ce := range cityEvents {
		if monthMatches(ce.Months, start.Month()) {
			relevant = append(relevant, ce.Event)
		}
	}

	if len(relevant) > 0 {
		impact := classifyImpact(relevant)
		return Assessment{
			Events:          relevant,
			HasMajorEvents:  true,
			Impact:          impact,
			Warning:         buildWarning(city, relevant),
			CrowdMultiplier: CrowdMultiplier(impact),
			Suggestions:     buildSuggestions(relevant),
		}
	}

	if len(cityEvents) > 0 {
		sample := cityEvents
		if len(sample) > 2 {
			sample = sample[:2]
		}
		out := Assessment{
			HasMajorEvents:  false,
			Impact:          ImpactLow,
			Warning:         fmt.Sprintf("No major events during your exact dates, but %s hosts great events throughout the year!", city),
			CrowdMultiplier: 1.0,
		}
		for _, ce := range sample {
			out.Events = append(out.Events, ce.Event)
			out.Suggestions = append(out.Suggestions, fmt.Sprintf("Consider attending %s", ce.Name))
		}
		return out
	}

	dates := start.Format("2006-01-02")
	endDates := end.Format("2006-01-02")
	return Assessment{
		Events: []Event{
			{
				Name:        fmt.Sprintf("%s Cultural Festival", city),
				Description: fmt.Sprintf("Experience local culture, cuisine, and traditions in %s.", city),
				StartDate:   dates,
				EndDate:     endDates,
				Category:    "Cultural Event",
				URL:         "#",
				IsFree:      true,
				Venue:       fmt.Sprintf("Various locations, %s", city),
			},
			{
				Name:        fmt.Sprintf("%s Food Market", city),
				Description: fmt.Sprintf("Explore local flavors and culinary delights at %s's vibrant food markets.", city),
				StartDate:   dates,
				EndDate:     endDates,
				Category:    "Food & Drink",
				URL:         "#",
				IsFree:      true,
				Venue:       fmt.Sprintf("City center, %s", city),
			},
		},
		HasMajorEvents:  false,
		Impact:          ImpactLow,
		CrowdMultiplier: 1.0,
		Suggestions: []string{
			fmt.Sprintf("Explore local markets and cultural sites in %s", city),
			"Try authentic local cuisine during your visit",
		},
	}
}

// CrowdMultiplier converts an impact level into the factor applied to
// baseline crowd estimates.
func CrowdMultiplier(impact Impact) float64 {
	switch impact {
	case ImpactMedium:
		return 1.3
	case ImpactHigh:
		return 1.6
	default:
		return 1.0
	}
}

func classifyImpact(evts []Event) Impact {
	if len(evts) == 0 {
		return ImpactLow
	}

	major := 0
	for _, e := range evts {
		if nameHasAny(e.Name, majorKeywords) {
			major++
		}
	}

	switch {
	case major >= 2 || len(evts) >= 4:
		return ImpactHigh
	case major >= 1 || len(evts) >= 2:
		return ImpactMedium
	default:
		return ImpactLow
	}
}

func buildWarning(city string, evts []Event) string {
	if len(evts) == 0 {
		return ""
	}

	for _, e := range evts {
		if nameHasAny(e.Name, warningKeywords) {
			return fmt.Sprintf("Your trip overlaps with %s — expect higher hotel prices and larger crowds.", e.Name)
		}
	}

	if len(evts) >= 3 {
		return fmt.Sprintf("Multiple events are happening in %s during your trip — expect increased prices and crowds.", city)
	}
	return fmt.Sprintf("%d event(s) happening during your trip may affect local crowds.", len(evts))
}

func buildSuggestions(evts []Event) []string {
	out := make([]string, 0, maxSuggestions)
	for _, e := range evts {
		if len(out) == maxSuggestions {
			break
		}
		if e.IsFree {
			out = append(out, fmt.Sprintf("Consider attending %s (Free %s event)", e.Name, e.Category))
		} else {
			out = append(out, fmt.Sprintf("Check out %s (%s event)", e.Name, e.Category))
		}
	}
	return out
}

func nameHasAny(name string, keywords []string) bool {
	lower := strings.ToLower(name)
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

func monthMatches(months []time.Month, m time.Month) bool {
	for _, cm := range months {
		if cm == m {
			return true
		}
	}
	return false
}
