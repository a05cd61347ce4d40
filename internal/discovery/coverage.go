package discovery

// Coverage floor applied once the sample is large enough that the
// default catalog alone usually achieves that recall
const coverageFloorThreshold = 40
const coverageFloor = 75.0

// EstimateCoverage estimates what fraction of the (unknown) true site
// the selected sample represents, in [0,100]. It is descriptive only
// and never feeds back into scheduling decisions.
func EstimateCoverage(selectedCount int) float64 {
	if selectedCount <= 0 {
		return 0
	}

	assumedSiteSize := float64(selectedCount) * 1.5
	if assumedSiteSize < 20 {
		assumedSiteSize = 20
	}

	coverage := float64(selectedCount) / assumedSiteSize * 100
	if selectedCount > coverageFloorThreshold && coverage < coverageFloor {
		coverage = coverageFloor
	}
	if coverage > 100 {
		coverage = 100
	}
	return coverage
}
