package destinations

// Destination is a supported city in the static catalog.
type Destination struct {
	Name    string  `json:"name"`
	Country string  `json:"country"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

// Location is a resolved place. Cell is the H3 index attached at
// resolution CellResolution and keys the spatial caches, so coordinate
// variants of the same city share cached history.
type Location struct {
	City string  `json:"city"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
	Cell string  `json:"cell,omitempty"`
}

// Catalog lists the destinations the service knows coordinates for.
// Lookups are case-insensitive on Name.
var Catalog = []Destination{
	{Name: "Barcelona", Country: "Spain", Lat: 41.3851, Lon: 2.1734},
	{Name: "Paris", Country: "France", Lat: 48.8566, Lon: 2.3522},
	{Name: "London", Country: "UK", Lat: 51.5074, Lon: -0.1278},
	{Name: "New York", Country: "USA", Lat: 40.7128, Lon: -74.0060},
	{Name: "Tokyo", Country: "Japan", Lat: 35.6762, Lon: 139.6503},
	{Name: "Rome", Country: "Italy", Lat: 41.9028, Lon: 12.4964},
	{Name: "Berlin", Country: "Germany", Lat: 52.5200, Lon: 13.4050},
	{Name: "Madrid", Country: "Spain", Lat: 40.4168, Lon: -3.7038},
	{Name: "Amsterdam", Country: "Netherlands", Lat: 52.3676, Lon: 4.9041},
	{Name: "Vienna", Country: "Austria", Lat: 48.2082, Lon: 16.3738},
	{Name: "Prague", Country: "Czech Republic", Lat: 50.0755, Lon: 14.4378},
	{Name: "Lisbon", Country: "Portugal", Lat: 38.7223, Lon: -9.1393},
	{Name: "Athens", Country: "Greece", Lat: 37.9838, Lon: 23.7275},
	{Name: "Budapest", Country: "Hungary", Lat: 47.4979, Lon: 19.0402},
	{Name: "Stockholm", Country: "Sweden", Lat: 59.3293, Lon: 18.0686},
	{Name: "Copenhagen", Country: "Denmark", Lat: 55.6761, Lon: 12.5683},
	{Name: "Dublin", Country: "Ireland", Lat: 53.3498, Lon: -6.2603},
	{Name: "Edinburgh", Country: "Scotland", Lat: 55.9533, Lon: -3.1883},
	{Name: "Oslo", Country: "Norway", Lat: 59.9139, Lon: 10.7522},
	{Name: "Helsinki", Country: "Finland", Lat: 60.1699, Lon: 24.9384},
	{Name: "Brussels", Country: "Belgium", Lat: 50.8503, Lon: 4.3517},
	{Name: "Zurich", Country: "Switzerland", Lat: 47.3769, Lon: 8.5417},
	{Name: "Munich", Country: "Germany", Lat: 48.1351, Lon: 11.5820},
	{Name: "Florence", Country: "Italy", Lat: 43.7696, Lon: 11.2558},
	{Name: "Venice", Country: "Italy", Lat: 45.4408, Lon: 12.3155},
	{Name: "Milan", Country: "Italy", Lat: 45.4642, Lon: 9.1900},
	{Name: "Nice", Country: "France", Lat: 43.7102, Lon: 7.2620},
	{Name: "Lyon", Country: "France", Lat: 45.7640, Lon: 4.8357},
	{Name: "Marseille", Country: "France", Lat: 43.2965, Lon: 5.3698},
	{Name: "Geneva", Country: "Switzerland", Lat: 46.2044, Lon: 6.1432},
	{Name: "Hamburg", Country: "Germany", Lat: 53.5511, Lon: 9.9937},
	{Name: "Warsaw", Country: "Poland", Lat: 52.2297, Lon: 21.0122},
	{Name: "Krakow", Country: "Poland", Lat: 50.0647, Lon: 19.9450},
	{Name: "Sydney", Country: "Australia", Lat: -33.8688, Lon: 151.2093},
	{Name: "Melbourne", Country: "Australia", Lat: -37.8136, Lon: 144.9631},
	{Name: "Singapore", Country: "Singapore", Lat: 1.3521, Lon: 103.8198},
	{Name: "Hong Kong", Country: "Hong Kong", Lat: 22.3193, Lon: 114.1694},
	{Name: "Bangkok", Country: "Thailand", Lat: 13.7563, Lon: 100.5018},
	{Name: "Dubai", Country: "UAE", Lat: 25.2048, Lon: 55.2708},
	{Name: "Istanbul", Country: "Turkey", Lat: 41.0082, Lon: 28.9784},
	{Name: "Los Angeles", Country: "USA", Lat: 34.0522, Lon: -118.2437},
	{Name: "San Francisco", Country: "USA", Lat: 37.7749, Lon: -122.4194},
}
