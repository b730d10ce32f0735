package board

// northAmerica is the Hot Zone: North America board.
var northAmerica = []CityDef{
	// West
	{"Seattle", Red, []City{"Calgary", "Denver", "San Francisco"}},
	{"Calgary", Red, []City{"Seattle", "Denver", "Minneapolis"}},
	{"San Francisco", Red, []City{"Seattle", "Los Angeles", "Denver"}},
	{"Los Angeles", Red, []City{"San Francisco", "Phoenix", "Guadalajara"}},
	{"Denver", Red, []City{"Seattle", "Calgary", "San Francisco", "Phoenix", "Dallas", "Minneapolis"}},
	{"Phoenix", Red, []City{"Los Angeles", "Denver", "Dallas", "Monterrey"}},
	{"Dallas", Red, []City{"Phoenix", "Denver", "Indianapolis", "Atlanta", "Monterrey"}},
	{"Minneapolis", Red, []City{"Calgary", "Denver", "Chicago"}},

	// Northeast / Great Lakes
	{"Chicago", Blue, []City{"Minneapolis", "Indianapolis", "Toronto", "New York", "Washington"}},
	{"Indianapolis", Blue, []City{"Chicago", "Dallas", "Atlanta"}},
	{"Atlanta", Blue, []City{"Indianapolis", "Dallas", "Washington", "Miami", "New Orleans"}},
	{"Washington", Blue, []City{"Atlanta", "New York", "Chicago"}},
	{"New York", Blue, []City{"Washington", "Boston", "Montréal", "Toronto", "Chicago"}},
	{"Boston", Blue, []City{"New York", "Montréal"}},
	{"Montréal", Blue, []City{"Boston", "New York", "Toronto"}},
	{"Toronto", Blue, []City{"Montréal", "New York", "Chicago"}},

	// Mexico / Caribbean
	{"Miami", Yellow, []City{"Atlanta", "New Orleans", "Havana"}},
	{"New Orleans", Yellow, []City{"Atlanta", "Miami", "Ciudad de México", "Havana"}},
	{"Monterrey", Yellow, []City{"Phoenix", "Dallas", "Guadalajara", "Ciudad de México"}},
	{"Guadalajara", Yellow, []City{"Los Angeles", "Monterrey", "Ciudad de México"}},
	{"Ciudad de México", Yellow, []City{"Guadalajara", "Monterrey", "New Orleans", "Tegucigalpa"}},
	{"Tegucigalpa", Yellow, []City{"Ciudad de México", "Havana"}},
	{"Havana", Yellow, []City{"Miami", "New Orleans", "Tegucigalpa", "Santo Domingo"}},
	{"Santo Domingo", Yellow, []City{"Havana"}},
}

// NorthAmerica returns the standard 24-city board.
// It panics if the authored data is invalid, which tests guard against.
func NorthAmerica() *Graph {
	g, err := NewGraph(northAmerica)
	if err != nil {
		panic("board: invalid north america data: " + err.Error())
	}
	return g
}
