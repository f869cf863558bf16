package gazetteer

import "testing"

func TestSubRegionRegion(t *testing.T) {
	tests := []struct {
		sub  SubRegion
		want Region
	}{
		{NorthernAmerica, Americas},
		{Caribbean, Americas},
		{NorthernEurope, Europe},
		{WesternAsia, Asia},
		{EasternAfrica, Africa},
		{Polynesia, Oceania},
		{NoSubRegion, NoRegion},
		{SubRegion(250), NoRegion},
	}
	for _, tc := range tests {
		if got := tc.sub.Region(); got != tc.want {
			t.Errorf("%q.Region() = %q, want %q", tc.sub, got, tc.want)
		}
	}
}

func TestRegionSubRegions(t *testing.T) {
	total := 0
	for r := Region(1); int(r) < numRegions; r++ {
		subs := r.SubRegions()
		if len(subs) == 0 {
			t.Errorf("%s has no subregions", r)
		}
		for _, s := range subs {
			if s.Region() != r {
				t.Errorf("%s listed under %s", s, r)
			}
		}
		total += len(subs)
	}
	if total != numSubRegions-1 {
		t.Errorf("subregions cover %d, want %d", total, numSubRegions-1)
	}
	if len(NoRegion.SubRegions()) != 0 {
		t.Error("NoRegion has subregions")
	}
}

func TestParseRegionNames(t *testing.T) {
	for s := SubRegion(1); int(s) < numSubRegions; s++ {
		got, ok := ParseSubRegion(s.String())
		if !ok || got != s {
			t.Errorf("ParseSubRegion(%q) = %v, %v", s.String(), got, ok)
		}
	}
	for r := Region(1); int(r) < numRegions; r++ {
		got, ok := ParseRegion(r.String())
		if !ok || got != r {
			t.Errorf("ParseRegion(%q) = %v, %v", r.String(), got, ok)
		}
	}
	for _, bad := range []string{"", "europe", "Atlantis"} {
		if _, ok := ParseRegion(bad); ok {
			t.Errorf("ParseRegion(%q) succeeded", bad)
		}
		if _, ok := ParseSubRegion(bad); ok {
			t.Errorf("ParseSubRegion(%q) succeeded", bad)
		}
	}
	if Region(99).String() != "" || SubRegion(99).String() != "" {
		t.Error("out-of-range values have names")
	}
}
