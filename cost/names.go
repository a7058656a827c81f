package cost

// MetricNames lists the supported fit metrics and signatures.
func MetricNames() []string {
	return []string{"nse", "kge", "kge2", "se", "rmse", "logarithmic",
		"Crc", "Cfp2", "Cfp10", "Cfp50", "Cfp90", "Epf", "Elt", "Erc"}
}

// RegTermNames lists the supported regularization terms.
func RegTermNames() []string {
	return []string{"prior", "smoothing", "hard-smoothing", "distance-correlation"}
}

// KnownMetric reports whether name is a supported metric.
func KnownMetric(name string) bool {
	for _, n := range MetricNames() {
		if n == name {
			return true
		}
	}
	return false
}

// KnownRegTerm reports whether name is a supported regularization term.
func KnownRegTerm(name string) bool {
	for _, n := range RegTermNames() {
		if n == name {
			return true
		}
	}
	return false
}
