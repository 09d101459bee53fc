package events

import "time"

// catalog maps lowercase city names to their recurring headline events.
var catalog = map[string][]catalogEvent{
	"paris": {
		{
			Event: Event{
				Name:        "Paris Fashion Week",
				Description: "The world's premier fashion event showcasing the latest collections from top designers. A must-see for fashion enthusiasts from around the globe.",
				StartDate:   "2026-03-01",
				EndDate:     "2026-03-09",
				Category:    "Fashion",
				URL:         "https://fhcm.paris/en/",
				IsFree:      false,
				Venue:       "Various venues, Paris",
			},
			Months: []time.Month{time.March, time.September},
		},
		{
			Event: Event{
				Name:        "Fête de la Musique",
				Description: "Free music festival held throughout Paris on the summer solstice. Streets filled with live performances from all genres.",
				StartDate:   "2026-06-21",
				EndDate:     "2026-06-21",
				Category:    "Music Festival",
				URL:         "https://fetedelamusique.culture.gouv.fr/",
				IsFree:      true,
				Venue:       "Citywide, Paris",
			},
			Months: []time.Month{time.June},
		},
		{
			Event: Event{
				Name:        "Nuit Blanche",
				Description: "All-night contemporary art festival with installations and performances across the city.",
				StartDate:   "2026-10-03",
				EndDate:     "2026-10-04",
				Category:    "Art Festival",
				URL:         "https://nuitblanche.paris.fr/",
				IsFree:      true,
				Venue:       "Citywide, Paris",
			},
			Months: []time.Month{time.October},
		},
		{
			Event: Event{
				Name:        "Paris Marathon",
				Description: "One of Europe's most iconic marathons, attracting over 60,000 runners through the scenic streets of Paris.",
				StartDate:   "2026-04-05",
				EndDate:     "2026-04-05",
				Category:    "Sports Event",
				URL:         "https://www.schneiderelectricparismarathon.com/",
				IsFree:      true,
				Venue:       "Paris city streets",
			},
			Months: []time.Month{time.April},
		},
	},
	"barcelona": {
		{
			Event: Event{
				Name:        "Primavera Sound Festival",
				Description: "One of Europe's largest music festivals featuring top international acts across multiple stages.",
				StartDate:   "2026-05-28",
				EndDate:     "2026-06-01",
				Category:    "Music Festival",
				URL:         "https://www.primaverasound.com/",
				IsFree:      false,
				Venue:       "Parc del Fòrum, Barcelona",
			},
			Months: []time.Month{time.May, time.June},
		},
		{
			Event: Event{
				Name:        "La Mercè Festival",
				Description: "Barcelona's biggest street festival with parades, concerts, fireworks, and the famous human towers (castells).",
				StartDate:   "2026-09-24",
				EndDate:     "2026-09-27",
				Category:    "Festival",
				URL:         "https://www.barcelona.cat/lamerce/",
				IsFree:      true,
				Venue:       "Citywide, Barcelona",
			},
			Months: []time.Month{time.September},
		},
		{
			Event: Event{
				Name:        "Sónar Festival",
				Description: "International festival of advanced music and new media art, showcasing electronic music and digital culture.",
				StartDate:   "2026-06-18",
				EndDate:     "2026-06-20",
				Category:    "Music Festival",
				URL:         "https://sonar.es/",
				IsFree:      false,
				Venue:       "Fira Barcelona, Barcelona",
			},
			Months: []time.Month{time.June},
		},
		{
			Event: Event{
				Name:        "Sant Jordi Festival",
				Description: "Catalonia's version of Valentine's Day - streets filled with book and rose stalls, street performances.",
				StartDate:   "2026-04-23",
				EndDate:     "2026-04-23",
				Category:    "Cultural Festival",
				URL:         "https://www.barcelona.cat/",
				IsFree:      true,
				Venue:       "Citywide, Barcelona",
			},
			Months: []time.Month{time.April},
		},
	},
	"london": {
		{
			Event: Event{
				Name:        "Notting Hill Carnival",
				Description: "Europe's largest street festival celebrating Caribbean culture with vibrant parades, music, and food.",
				StartDate:   "2026-08-30",
				EndDate:     "2026-08-31",
				Category:    "Festival",
				URL:         "https://nhcarnival.org/",
				IsFree:      true,
				Venue:       "Notting Hill, London",
			},
			Months: []time.Month{time.August},
		},
		{
			Event: Event{
				Name:        "London Fashion Week",
				Description: "One of the 'Big Four' fashion weeks, showcasing British and international designers.",
				StartDate:   "2026-02-20",
				EndDate:     "2026-02-24",
				Category:    "Fashion",
				URL:         "https://londonfashionweek.co.uk/",
				IsFree:      false,
				Venue:       "Various venues, London",
			},
			Months: []time.Month{time.February, time.September},
		},
		{
			Event: Event{
				Name:        "Wimbledon Championships",
				Description: "The world's most prestigious tennis tournament and oldest Grand Slam event.",
				StartDate:   "2026-06-29",
				EndDate:     "2026-07-12",
				Category:    "Sports Event",
				URL:         "https://www.wimbledon.com/",
				IsFree:      false,
				Venue:       "All England Club, London",
			},
			Months: []time.Month{time.June, time.July},
		},
		{
			Event: Event{
				Name:        "New Year's Day Parade",
				Description: "Spectacular parade through central London featuring performers from around the world.",
				StartDate:   "2026-01-01",
				EndDate:     "2026-01-01",
				Category:    "Parade",
				URL:         "https://lnydp.com/",
				IsFree:      true,
				Venue:       "Central London",
			},
			Months: []time.Month{time.January},
		},
	},
	"new york": {
		{
			Event: Event{
				Name:        "New York Fashion Week",
				Description: "Showcasing the latest collections from top American and international designers.",
				StartDate:   "2026-02-10",
				EndDate:     "2026-02-17",
				Category:    "Fashion",
				URL:         "https://nyfw.com/",
				IsFree:      false,
				Venue:       "Various venues, NYC",
			},
			Months: []time.Month{time.February, time.September},
		},
		{
			Event: Event{
				Name:        "Governors Ball Music Festival",
				Description: "NYC's premier music festival featuring rock, hip-hop, electronic, and more.",
				StartDate:   "2026-06-05",
				EndDate:     "2026-06-07",
				Category:    "Music Festival",
				URL:         "https://governorsballmusicfestival.com/",
				IsFree:      false,
				Venue:       "Randall's Island Park, NYC",
			},
			Months: []time.Month{time.June},
		},
		{
			Event: Event{
				Name:        "US Open Tennis",
				Description: "The final Grand Slam tennis tournament of the year, featuring the world's top players.",
				StartDate:   "2026-08-31",
				EndDate:     "2026-09-13",
				Category:    "Sports Event",
				URL:         "https://www.usopen.org/",
				IsFree:      false,
				Venue:       "USTA Billie Jean King National Tennis Center",
			},
			Months: []time.Month{time.August, time.September},
		},
		{
			Event: Event{
				Name:        "Thanksgiving Day Parade",
				Description: "Macy's iconic parade featuring giant balloons, floats, and performances.",
				StartDate:   "2026-11-26",
				EndDate:     "2026-11-26",
				Category:    "Parade",
				URL:         "https://www.macys.com/parade",
				IsFree:      true,
				Venue:       "Manhattan, NYC",
			},
			Months: []time.Month{time.November},
		},
	},
	"tokyo": {
		{
			Event: Event{
				Name:        "Tokyo Marathon",
				Description: "One of the World Marathon Majors, attracting elite runners and thousands of participants.",
				StartDate:   "2026-03-01",
				EndDate:     "2026-03-01",
				Category:    "Sports Event",
				URL:         "https://www.marathon.tokyo/",
				IsFree:      true,
				Venue:       "Tokyo city streets",
			},
			Months: []time.Month{time.March},
		},
		{
			Event: Event{
				Name:        "Cherry Blossom Festival",
				Description: "Celebrate hanami (flower viewing) with traditional performances and food stalls under blooming sakura.",
				StartDate:   "2026-03-25",
				EndDate:     "2026-04-10",
				Category:    "Cultural Festival",
				URL:         "https://www.gotokyo.org/",
				IsFree:      true,
				Venue:       "Various parks, Tokyo",
			},
			Months: []time.Month{time.March, time.April},
		},
		{
			Event: Event{
				Name:        "Sumida River Fireworks Festival",
				Description: "One of Tokyo's largest fireworks displays with over 20,000 fireworks lighting up the night sky.",
				StartDate:   "2026-07-25",
				EndDate:     "2026-07-25",
				Category:    "Festival",
				URL:         "https://www.sumidagawa-hanabi.com/",
				IsFree:      true,
				Venue:       "Sumida River, Tokyo",
			},
			Months: []time.Month{time.July},
		},
		{
			Event: Event{
				Name:        "Tokyo Game Show",
				Description: "Asia's largest video game expo featuring the latest games, consoles, and gaming technology.",
				StartDate:   "2026-09-24",
				EndDate:     "2026-09-27",
				Category:    "Convention",
				URL:         "https://tgs.nikkeibp.co.jp/",
				IsFree:      false,
				Venue:       "Makuhari Messe, Chiba",
			},
			Months: []time.Month{time.September},
		},
	},
	"rome": {
		{
			Event: Event{
				Name:        "Rome Marathon",
				Description: "Run through 2,000 years of history past iconic landmarks like the Colosseum and Vatican.",
				StartDate:   "2026-03-22",
				EndDate:     "2026-03-22",
				Category:    "Sports Event",
				URL:         "https://www.maratonadiroma.it/",
				IsFree:      true,
				Venue:       "Rome city streets",
			},
			Months: []time.Month{time.March},
		},
		{
			Event: Event{
				Name:        "Easter Week Celebrations",
				Description: "Special masses and ceremonies at the Vatican, including the Pope's Easter Sunday address.",
				StartDate:   "2026-04-05",
				EndDate:     "2026-04-12",
				Category:    "Religious Festival",
				URL:         "https://www.vatican.va/",
				IsFree:      true,
				Venue:       "Vatican City & Rome",
			},
			Months: []time.Month{time.March, time.April},
		},
		{
			Event: Event{
				Name:        "Estate Romana",
				Description: "Summer-long cultural festival with concerts, cinema, dance, and theater across the city.",
				StartDate:   "2026-06-15",
				EndDate:     "2026-09-15",
				Category:    "Cultural Festival",
				URL:         "https://www.estateromana.comune.roma.it/",
				IsFree:      true,
				Venue:       "Various locations, Rome",
			},
			Months: []time.Month{time.June, time.July, time.August, time.September},
		},
	},
	"amsterdam": {
		{
			Event: Event{
				Name:        "King's Day",
				Description: "Netherlands' biggest party! Streets turn orange with markets, music, and celebrations.",
				StartDate:   "2026-04-27",
				EndDate:     "2026-04-27",
				Category:    "Festival",
				URL:         "https://www.iamsterdam.com/en/see-and-do/whats-on/kings-day",
				IsFree:      true,
				Venue:       "Citywide, Amsterdam",
			},
			Months: []time.Month{time.April},
		},
		{
			Event: Event{
				Name:        "Amsterdam Dance Event",
				Description: "World's largest electronic music conference and festival with 1,000+ events.",
				StartDate:   "2026-10-14",
				EndDate:     "2026-10-18",
				Category:    "Music Festival",
				URL:         "https://www.amsterdam-dance-event.nl/",
				IsFree:      false,
				Venue:       "Various venues, Amsterdam",
			},
			Months: []time.Month{time.October},
		},
		{
			Event: Event{
				Name:        "Pride Amsterdam",
				Description: "One of the world's most famous Pride celebrations featuring the iconic canal parade.",
				StartDate:   "2026-07-30",
				EndDate:     "2026-08-02",
				Category:    "Festival",
				URL:         "https://pride.amsterdam/",
				IsFree:      true,
				Venue:       "Citywide, Amsterdam",
			},
			Months: []time.Month{time.July, time.August},
		},
	},
	"berlin": {
		{
			Event: Event{
				Name:        "Berlinale Film Festival",
				Description: "One of the world's leading film festivals showcasing international cinema.",
				StartDate:   "2026-02-11",
				EndDate:     "2026-02-21",
				Category:    "Film Festival",
				URL:         "https://www.berlinale.de/",
				IsFree:      false,
				Venue:       "Various venues, Berlin",
			},
			Months: []time.Month{time.February},
		},
		{
			Event: Event{
				Name:        "Berlin Marathon",
				Description: "World record course! The fastest marathon in the world through Berlin's historic streets.",
				StartDate:   "2026-09-27",
				EndDate:     "2026-09-27",
				Category:    "Sports Event",
				URL:         "https://www.bmw-berlin-marathon.com/",
				IsFree:      true,
				Venue:       "Berlin city streets",
			},
			Months: []time.Month{time.September},
		},
		{
			Event: Event{
				Name:        "Festival of Lights",
				Description: "Historic landmarks illuminated with spectacular light installations and projections.",
				StartDate:   "2026-10-09",
				EndDate:     "2026-10-18",
				Category:    "Art Festival",
				URL:         "https://festival-of-lights.de/",
				IsFree:      true,
				Venue:       "Citywide, Berlin",
			},
			Months: []time.Month{time.October},
		},
	},
	"sydney": {
		{
			Event: Event{
				Name:        "Sydney Festival",
				Description: "Summer arts festival featuring theater, music, dance, and circus performances.",
				StartDate:   "2026-01-07",
				EndDate:     "2026-01-26",
				Category:    "Cultural Festival",
				URL:         "https://www.sydneyfestival.org.au/",
				IsFree:      false,
				Venue:       "Various venues, Sydney",
			},
			Months: []time.Month{time.January},
		},
		{
			Event: Event{
				Name:        "Vivid Sydney",
				Description: "World's largest festival of light, music, and ideas with stunning light projections.",
				StartDate:   "2026-05-22",
				EndDate:     "2026-06-13",
				Category:    "Art Festival",
				URL:         "https://www.vividsydney.com/",
				IsFree:      true,
				Venue:       "Sydney Harbour & CBD",
			},
			Months: []time.Month{time.May, time.June},
		},
		{
			Event: Event{
				Name:        "Sydney Gay and Lesbian Mardi Gras",
				Description: "One of the world's largest LGBTQ+ celebrations with a spectacular parade.",
				StartDate:   "2026-02-28",
				EndDate:     "2026-02-28",
				Category:    "Parade",
				URL:         "https://www.mardigras.org.au/",
				IsFree:      true,
				Venue:       "Oxford Street, Sydney",
			},
			Months: []time.Month{time.February, time.March},
		},
	},
	"dubai": {
		{
			Event: Event{
				Name:        "Dubai Shopping Festival",
				Description: "Month-long shopping extravaganza with discounts, entertainment, and fireworks.",
				StartDate:   "2026-01-01",
				EndDate:     "2026-01-31",
				Category:    "Festival",
				URL:         "https://www.mydsf.ae/",
				IsFree:      true,
				Venue:       "Citywide, Dubai",
			},
			Months: []time.Month{time.January},
		},
		{
			Event: Event{
				Name:        "Dubai World Cup",
				Description: "World's richest horse race with over $30 million in prize money.",
				StartDate:   "2026-03-28",
				EndDate:     "2026-03-28",
				Category:    "Sports Event",
				URL:         "https://www.dubairacingclub.com/",
				IsFree:      false,
				Venue:       "Meydan Racecourse, Dubai",
			},
			Months: []time.Month{time.March},
		},
		{
			Event: Event{
				Name:        "Dubai Jazz Festival",
				Description: "International music festival featuring world-renowned jazz and contemporary artists.",
				StartDate:   "2026-02-25",
				EndDate:     "2026-02-27",
				Category:    "Music Festival",
				URL:         "https://dubaijazzfest.com/",
				IsFree:      false,
				Venue:       "Dubai Media City, Dubai",
			},
			Months: []time.Month{time.February},
		},
	},
	"singapore": {
		{
			Event: Event{
				Name:        "Singapore Grand Prix",
				Description: "Formula 1's only night race on the streets of Singapore's Marina Bay.",
				StartDate:   "2026-09-18",
				EndDate:     "2026-09-20",
				Category:    "Sports Event",
				URL:         "https://www.singaporegp.sg/",
				IsFree:      false,
				Venue:       "Marina Bay Street Circuit",
			},
			Months: []time.Month{time.September},
		},
		{
			Event: Event{
				Name:        "Chinese New Year Festival",
				Description: "Vibrant celebrations in Chinatown with street markets, performances, and decorations.",
				StartDate:   "2026-01-29",
				EndDate:     "2026-02-12",
				Category:    "Cultural Festival",
				URL:         "https://www.chinatown.sg/",
				IsFree:      true,
				Venue:       "Chinatown, Singapore",
			},
			Months: []time.Month{time.January, time.February},
		},
		{
			Event: Event{
				Name:        "Singapore Food Festival",
				Description: "Celebrate Singapore's diverse culinary heritage with food trails and dining events.",
				StartDate:   "2026-07-10",
				EndDate:     "2026-07-26",
				Category:    "Food Festival",
				URL:         "https://www.singaporefoodfestival.sg/",
				IsFree:      false,
				Venue:       "Various locations, Singapore",
			},
			Months: []time.Month{time.July},
		},
	},
}
