package forecast

import (
	"errors"
	"math"
	"time"
)

// yearlyPeriod is the seasonal period in days.
const yearlyPeriod = 365.25

// ridgeEpsilon stabilizes the normal equations when the observation window
// is short relative to the seasonal period and the Fourier columns become
// nearly collinear.
const ridgeEpsilon = 1e-8

// harmonicModel is a linear trend plus yearly Fourier seasonality fit by
// least squares. Multiplicative models fit in log space and exponentiate
// predictions back.
type harmonicModel struct {
	beta           []float64
	harmonics      int
	origin         time.Time
	multiplicative bool
}

// fitHarmonic fits a harmonic regression to (dates, values). The number of
// harmonics is reduced when there are too few observations to support the
// full parameter count.
func fitHarmonic(dates []time.Time, values []float64, harmonics int, multiplicative bool) (*harmonicModel, error) {
	n := len(dates)
	if n == 0 || n != len(values) {
		return nil, errors.New("harmonic fit requires a non-empty, aligned series")
	}

	h := effectiveHarmonics(harmonics, n)
	origin := dates[0]

	y := make([]float64, n)
	for i, v := range values {
		if multiplicative {
			y[i] = math.Log(math.Max(v, 1))
		} else {
			y[i] = v
		}
	}

	p := 2 + 2*h
	xtx := make([][]float64, p)
	for i := range xtx {
		xtx[i] = make([]float64, p)
	}
	xty := make([]float64, p)

	for i := 0; i < n; i++ {
		row := designRow(daysSince(origin, dates[i]), h)
		for a := 0; a < p; a++ {
			xty[a] += row[a] * y[i]
			for b := 0; b < p; b++ {
				xtx[a][b] += row[a] * row[b]
			}
		}
	}
	for a := 0; a < p; a++ {
		xtx[a][a] += ridgeEpsilon * (1 + xtx[a][a])
	}

	beta, err := solveLinear(xtx, xty)
	if err != nil {
		return nil, err
	}

	return &harmonicModel{
		beta:           beta,
		harmonics:      h,
		origin:         origin,
		multiplicative: multiplicative,
	}, nil
}

// predict evaluates the fit at an arbitrary date.
func (m *harmonicModel) predict(date time.Time) float64 {
	row := designRow(daysSince(m.origin, date), m.harmonics)
	v := 0.0
	for i, b := range m.beta {
		v += b * row[i]
	}
	if m.multiplicative {
		return math.Exp(v)
	}
	return v
}

// effectiveHarmonics caps the Fourier pair count so the parameter count
// (2 + 2h) never exceeds the observation count.
func effectiveHarmonics(requested, n int) int {
	maxPairs := (n - 2) / 2
	if maxPairs < 1 {
		maxPairs = 1
	}
	if requested < 1 {
		requested = 1
	}
	if requested > maxPairs {
		return maxPairs
	}
	return requested
}

func designRow(t float64, harmonics int) []float64 {
	row := make([]float64, 2+2*harmonics)
	row[0] = 1
	row[1] = t
	for k := 1; k <= harmonics; k++ {
		w := 2 * math.Pi * float64(k) * t / yearlyPeriod
		row[2*k] = math.Sin(w)
		row[2*k+1] = math.Cos(w)
	}
	return row
}

func daysSince(origin, t time.Time) float64 {
	return t.Sub(origin).Hours() / 24
}

// solveLinear solves a = A x for x by Gaussian elimination with partial
// pivoting. A is modified in place.
func solveLinear(a [][]float64, b []float64) ([]float64, error) {
	n := len(a)
	x := make([]float64, n)
	rhs := make([]float64, n)
	copy(rhs, b)

	for col := 0; col < n; col++ {
		pivot := col
		for r := col + 1; r < n; r++ {
			if math.Abs(a[r][col]) > math.Abs(a[pivot][col]) {
				pivot = r
			}
		}
		if math.Abs(a[pivot][col]) < 1e-12 {
			return nil, errors.New("singular design matrix")
		}
		a[col], a[pivot] = a[pivot], a[col]
		rhs[col], rhs[pivot] = rhs[pivot], rhs[col]

		for r := col + 1; r < n; r++ {
			f := a[r][col] / a[col][col]
			for c := col; c < n; c++ {
				a[r][c] -= f * a[col][c]
			}
			rhs[r] -= f * rhs[col]
		}
	}

	for r := n - 1; r >= 0; r-- {
		sum := rhs[r]
		for c := r + 1; c < n; c++ {
			sum -= a[r][c] * x[c]
		}
		x[r] = sum / a[r][r]
	}
	return x, nil
}
