package sim

// Covariance computes the lower-triangular candidate x candidate covariance
// matrix of per-voter utilities in a single streaming pass (Welford's
// online algorithm generalized to multiple variables), avoiding a second
// pass over Scores and the numerical error that comes with naive
// sum-of-products formulas.
func (s *Sim) Covariance() [][]float64 {
	ncand := s.Ncand
	mean := make([]float64, ncand)
	cov := make([][]float64, ncand)
	for i := range cov {
		cov[i] = make([]float64, i+1)
	}

	for icit := 0; icit < s.Ncit; icit++ {
		n := float64(icit + 1)
		row := s.Scores[icit]
		for ix := 0; ix < ncand; ix++ {
			dx := row[ix] - mean[ix]
			mean[ix] += dx / n
			for iy := 0; iy <= ix; iy++ {
				cov[ix][iy] += dx * (row[iy] - mean[iy])
			}
		}
	}

	if s.Ncit > 1 {
		denom := float64(s.Ncit - 1)
		for ix := 0; ix < ncand; ix++ {
			for iy := 0; iy <= ix; iy++ {
				cov[ix][iy] /= denom
			}
		}
	}
	return cov
}
