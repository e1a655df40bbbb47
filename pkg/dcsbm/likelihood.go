package dcsbm

import "math"

// LogLikelihood computes the DC-SBM log-likelihood
//
//	L = sum_r sum_s ers[r][s] * ln( ers[r][s] / (kappa[r] * kappa[s]) )
//
// Terms with ers[r][s] < 1 or an empty endpoint group (kappa < 1) contribute 0,
// which covers the 0*ln(0) convention and avoids dividing by an empty group.
// Cells are visited in a fixed order so equal statistics give equal results.
func LogLikelihood(s *Statistics) float64 {
	logL := 0.0
	for r := 0; r < s.Groups; r++ {
		kr := s.Kappa[r]
		if kr < 1 {
			continue
		}
		for t := 0; t < s.Groups; t++ {
			ers := s.Ers.At(r, t)
			kt := s.Kappa[t]
			if ers < 1 || kt < 1 {
				continue
			}
			logL += ers * math.Log(ers/(kr*kt))
		}
	}
	return logL
}

// Score tabulates z and returns its statistics and log-likelihood.
func Score(g GraphView, z []int, c int) (*Statistics, float64, error) {
	stats, err := Tabulate(g, z, c)
	if err != nil {
		return nil, 0, err
	}
	return stats, LogLikelihood(stats), nil
}
