package tips

import (
	"fmt"
	"strings"
	"time"
)

// Context carries the prediction facts a tip is written from.
type Context struct {
	Destination   string
	Start         time.Time
	Temperature   float64
	Precipitation float64
	Crowd         float64
	EventNames    []string
}

// Season names the meteorological season of a month.
func Season(m time.Month) string {
	switch m {
	case time.December, time.January, time.February:
		return "winter"
	case time.March, time.April, time.May:
		return "spring"
	case time.June, time.July, time.August:
		return "summer"
	default:
		return "fall"
	}
}

// DescribeWeather summarizes temperature and rain in plain words.
func DescribeWeather(temp, precip float64) string {
	var tempDesc string
	switch {
	case temp < 10:
		tempDesc = "cold"
	case temp < 20:
		tempDesc = "mild"
	case temp < 28:
		tempDesc = "warm"
	default:
		tempDesc = "hot"
	}

	var rainDesc string
	switch {
	case precip < 2:
		rainDesc = "dry"
	case precip < 5:
		rainDesc = "light rain"
	default:
		rainDesc = "rainy"
	}

	return tempDesc + " and " + rainDesc
}

// DescribeCrowd summarizes a 0-100 crowd index.
func DescribeCrowd(level float64) string {
	switch {
	case level < 30:
		return "low crowds"
	case level < 60:
		return "moderate crowds"
	default:
		return "high crowds"
	}
}

// Compose builds a two to three sentence practical tip from seasonal,
// packing, rain and crowd advice. Event mentions take priority.
func Compose(c Context) string {
	month := c.Start.Format("January")
	season := Season(c.Start.Month())

	var parts []string

	if len(c.EventNames) > 0 && c.EventNames[0] != "" {
		parts = append(parts, fmt.Sprintf("Your trip coincides with %s - consider attending this exciting event", c.EventNames[0]))
	}

	switch season {
	case "spring":
		parts = append(parts, fmt.Sprintf("Visit %s in %s during spring bloom", c.Destination, month))
	case "summer":
		parts = append(parts, fmt.Sprintf("Enjoy %s's summer activities in %s", c.Destination, month))
	case "fall":
		parts = append(parts, fmt.Sprintf("Experience %s's autumn colors in %s", c.Destination, month))
	default:
		parts = append(parts, fmt.Sprintf("Discover %s's winter charm in %s", c.Destination, month))
	}

	switch {
	case c.Temperature < 15:
		parts = append(parts, "Pack warm layers and a good jacket for cool temperatures")
	case c.Temperature < 25:
		parts = append(parts, "Pack light layers for comfortable, mild weather")
	default:
		parts = append(parts, "Pack light, breathable clothing for warm weather")
	}

	if c.Precipitation > 3 {
		parts = append(parts, "Don't forget an umbrella or rain jacket")
	}

	if c.Crowd < 40 {
		parts = append(parts, "Enjoy fewer crowds and more authentic local experiences")
	} else if c.Crowd > 70 {
		if len(c.EventNames) > 0 {
			parts = append(parts, "Book accommodations and attractions early due to major events")
		} else {
			parts = append(parts, "Book attractions in advance to avoid long queues")
		}
	}

	switch {
	case len(parts) >= 3:
		return fmt.Sprintf("%s. %s, and %s.", parts[0], parts[1], strings.ToLower(parts[2]))
	case len(parts) == 2:
		return fmt.Sprintf("%s. %s.", parts[0], parts[1])
	default:
		return parts[0] + "."
	}
}
