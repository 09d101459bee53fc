package events

import "time"

// Impact classifies how strongly scheduled events affect prices and
// crowds during a stay.
type Impact string

const (
	ImpactLow    Impact = "low"
	ImpactMedium Impact = "medium"
	ImpactHigh   Impact = "high"
)

// Event is one festival, tournament or similar happening that overlaps a
// trip window.
type Event struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Category    string `json:"category"`
	URL         string `json:"url"`
	IsFree      bool   `json:"is_free"`
	Venue       string `json:"venue"`
}

// Assessment summarizes the events found for a trip and their expected
// effect on the visit.
type Assessment struct {
	Events          []Event  `json:"events"`
	HasMajorEvents  bool     `json:"has_major_events"`
	Impact          Impact   `json:"impact"`
	Warning         string   `json:"warning,omitempty"`
	CrowdMultiplier float64  `json:"crowd_multiplier"`
	Suggestions     []string `json:"suggestions"`
}

// catalogEvent is an Event plus the months it recurs in.
type catalogEvent struct {
	Event
	Months []time.Month
}
