package sim

import "testing"

// referenceCovariance computes the same lower-triangular sample covariance
// matrix with a naive two-pass algorithm, for comparison against the
// streaming Covariance implementation.
func referenceCovariance(s *Sim) [][]float64 {
	ncand := s.Ncand
	mean := make([]float64, ncand)
	for _, row := range s.Scores {
		for j, v := range row {
			mean[j] += v
		}
	}
	for j := range mean {
		mean[j] /= float64(s.Ncit)
	}

	cov := make([][]float64, ncand)
	for ix := range cov {
		cov[ix] = make([]float64, ix+1)
		for iy := 0; iy <= ix; iy++ {
			sum := 0.0
			for _, row := range s.Scores {
				sum += (row[ix] - mean[ix]) * (row[iy] - mean[iy])
			}
			cov[ix][iy] = sum / float64(s.Ncit-1)
		}
	}
	return cov
}

func TestCovarianceMatchesTwoPassReference(t *testing.T) {
	s := New(6, 4)
	s.Scores = [][]float64{
		{4, 3, 2, 1},
		{1, 4, 2, 3},
		{3, 4, 2, 1},
		{3, 2, 1, 4},
		{3, 2, 4, 1},
		{2, 5, 1, 6},
	}

	got := s.Covariance()
	want := referenceCovariance(s)

	const tol = 1e-9
	for ix := range want {
		for iy := range want[ix] {
			diff := got[ix][iy] - want[ix][iy]
			if diff < -tol || diff > tol {
				t.Errorf("cov[%d][%d] = %v, want %v", ix, iy, got[ix][iy], want[ix][iy])
			}
		}
	}
}
