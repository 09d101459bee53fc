package weather

// precipitation regimes for the synthetic generator.
const (
	precipMediterranean = "mediterranean"
	precipTropical      = "tropical"
	precipUniform       = "uniform"
)

// climate describes a location's seasonal temperature curve and rain
// regime. phase is the day-of-year offset of the warm peak.
type climate struct {
	baseTemp  float64
	amplitude float64
	phase     float64
	precip    string
}

// climateBox ties a climate to a small lat/lon rectangle around a city.
type climateBox struct {
	latMin, latMax float64
	lonMin, lonMax float64
	climate        climate
}

// cityClimates carries hand-tuned patterns for cities whose climate the
// latitude-generic model gets visibly wrong.
var cityClimates = []climateBox{
	{41.3, 41.5, 2.0, 2.3, climate{baseTemp: 17.5, amplitude: 8.5, phase: 200, precip: precipMediterranean}}, // Barcelona
	{48.7, 48.9, 2.2, 2.5, climate{baseTemp: 12.5, amplitude: 9, phase: 200, precip: precipUniform}},         // Paris
	{35.5, 35.8, 139.5, 139.8, climate{baseTemp: 16.5, amplitude: 12, phase: 200, precip: precipTropical}},   // Tokyo
	{51.4, 51.6, -0.2, 0.1, climate{baseTemp: 11.5, amplitude: 8, phase: 200, precip: precipUniform}},        // London
}

// climateFor resolves the climate for a coordinate. Known city boxes win,
// everywhere else falls back to a latitude-driven pattern with the warm
// peak in the matching hemisphere's summer.
func climateFor(lat, lon float64) climate {
	for _, box := range cityClimates {
		if lat >= box.latMin && lat <= box.latMax && lon >= box.lonMin && lon <= box.lonMax {
			return box.climate
		}
	}

	phase := 80.0
	if lat < 0 {
		phase = 260.0
	}
	base := 25.0 - abs(lat)*0.4
	return climate{baseTemp: base, amplitude: 10, phase: phase, precip: precipUniform}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
