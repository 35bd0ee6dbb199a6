package sim

// testDataset builds a minimal compiled dataset with computed totals and an
// empty campus locale.
func testDataset(names []string, locs map[string]LocaleSpec) *CompiledDataset {
	ds := &CompiledDataset{
		Locs:       locs,
		BuildNames: names,
	}
	for _, spec := range locs {
		ds.TotalOcc += spec.Occupancy
		for _, p := range spec.RackPads {
			ds.TotalBikeCap += p.Cap
		}
	}
	return ds
}

// twoLocaleDataset is the scenario-1 topology: locale A (occupancy 10, one
// pad of capacity 5) and locale B (occupancy 0, one pad of capacity 5).
func twoLocaleDataset() *CompiledDataset {
	return testDataset(
		[]string{"A", "B"},
		map[string]LocaleSpec{
			"A": {
				Occupancy: 10,
				RackPads:  []PadSpec{{Lon: -111.050, Lat: 45.670, Racks: 1, Cap: 5}},
			},
			"B": {
				Occupancy: 0,
				RackPads:  []PadSpec{{Lon: -111.055, Lat: 45.668, Racks: 1, Cap: 5}},
			},
		},
	)
}
