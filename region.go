package gazetteer

import "sync"

// Region is a UN M49 continental region.
type Region uint8

// Regions. NoRegion is reported for countries without a continental region
// (Antarctica); it is not a grouping key.
const (
	NoRegion Region = iota
	Africa
	Americas
	Asia
	Europe
	Oceania

	numRegions = int(Oceania) + 1
)

var regionNames = [numRegions]string{
	NoRegion: "",
	Africa:   "Africa",
	Americas: "Americas",
	Asia:     "Asia",
	Europe:   "Europe",
	Oceania:  "Oceania",
}

// String returns the display name of r, or "" for NoRegion.
func (r Region) String() string {
	if int(r) >= numRegions {
		return ""
	}
	return regionNames[r]
}

// SubRegions returns the subregions of r in declaration order.
func (r Region) SubRegions() []SubRegion {
	var subs []SubRegion
	for s := SubRegion(1); int(s) < numSubRegions; s++ {
		if subRegionInfo[s].region == r {
			subs = append(subs, s)
		}
	}
	return subs
}

// SubRegion is a UN M49 subregion. Each subregion belongs to exactly one Region.
type SubRegion uint8

// Subregions.
const (
	NoSubRegion SubRegion = iota
	NorthernAfrica
	EasternAfrica
	MiddleAfrica
	SouthernAfrica
	WesternAfrica
	Caribbean
	CentralAmerica
	SouthAmerica
	NorthernAmerica
	CentralAsia
	EasternAsia
	SouthEasternAsia
	SouthernAsia
	WesternAsia
	EasternEurope
	NorthernEurope
	SouthernEurope
	WesternEurope
	AustraliaAndNewZealand
	Melanesia
	Micronesia
	Polynesia

	numSubRegions = int(Polynesia) + 1
)

var subRegionInfo = [numSubRegions]struct {
	name   string
	region Region
}{
	NoSubRegion:            {"", NoRegion},
	NorthernAfrica:         {"Northern Africa", Africa},
	EasternAfrica:          {"Eastern Africa", Africa},
	MiddleAfrica:           {"Middle Africa", Africa},
	SouthernAfrica:         {"Southern Africa", Africa},
	WesternAfrica:          {"Western Africa", Africa},
	Caribbean:              {"Caribbean", Americas},
	CentralAmerica:         {"Central America", Americas},
	SouthAmerica:           {"South America", Americas},
	NorthernAmerica:        {"Northern America", Americas},
	CentralAsia:            {"Central Asia", Asia},
	EasternAsia:            {"Eastern Asia", Asia},
	SouthEasternAsia:       {"South-eastern Asia", Asia},
	SouthernAsia:           {"Southern Asia", Asia},
	WesternAsia:            {"Western Asia", Asia},
	EasternEurope:          {"Eastern Europe", Europe},
	NorthernEurope:         {"Northern Europe", Europe},
	SouthernEurope:         {"Southern Europe", Europe},
	WesternEurope:          {"Western Europe", Europe},
	AustraliaAndNewZealand: {"Australia and New Zealand", Oceania},
	Melanesia:              {"Melanesia", Oceania},
	Micronesia:             {"Micronesia", Oceania},
	Polynesia:              {"Polynesia", Oceania},
}

// String returns the display name of s, or "" for NoSubRegion.
func (s SubRegion) String() string {
	if int(s) >= numSubRegions {
		return ""
	}
	return subRegionInfo[s].name
}

// Region returns the region s belongs to.
func (s SubRegion) Region() Region {
	if int(s) >= numSubRegions {
		return NoRegion
	}
	return subRegionInfo[s].region
}

var subRegionsByName = sync.OnceValue(func() map[string]SubRegion {
	m := make(map[string]SubRegion, numSubRegions)
	for s := SubRegion(1); int(s) < numSubRegions; s++ {
		m[subRegionInfo[s].name] = s
	}
	return m
})

// ParseSubRegion returns the subregion with the given display name.
func ParseSubRegion(name string) (SubRegion, bool) {
	s, ok := subRegionsByName()[name]
	return s, ok
}

// ParseRegion returns the region with the given display name.
func ParseRegion(name string) (Region, bool) {
	for r := Region(1); int(r) < numRegions; r++ {
		if regionNames[r] == name {
			return r, true
		}
	}
	return NoRegion, false
}
