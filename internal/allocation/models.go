package allocation

// Stop describes the stay constraints for one city. PreferredDays falls
// back to MinDays when zero, and MaxDays is raised to MinDays when it is
// set below it.
type Stop struct {
	City          string `json:"city"`
	MinDays       int    `json:"min_days"`
	MaxDays       int    `json:"max_days"`
	PreferredDays int    `json:"preferred_days"`
}
