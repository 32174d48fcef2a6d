package stats

import (
	"fmt"
	"math"
	"slices"

	"github.com/arloliu/prefpack/pref"
)

// ModelType identifies a candidate size-estimation model.
type ModelType uint8

const (
	// ModelHyperbolic is bits = a + b / rowLen. Per-row fixed costs
	// (headers, the first absolute index) amortize hyperbolically, which
	// makes this the usual best fit.
	ModelHyperbolic ModelType = iota + 1
	// ModelLogarithmic is bits = a + b * ln(rowLen).
	ModelLogarithmic
	// ModelPower is bits = a * rowLen^b.
	ModelPower
)

// String returns the model type name.
func (t ModelType) String() string {
	switch t {
	case ModelHyperbolic:
		return "hyperbolic"
	case ModelLogarithmic:
		return "logarithmic"
	case ModelPower:
		return "power"
	default:
		return "unknown"
	}
}

// Point is one fitting observation: a store's mean row length (preferences
// per occupied user row) against its measured bits per preference.
type Point struct {
	RowLen      float64
	BitsPerPref float64
}

// PointOf derives the observation for one analyzed store.
func PointOf(d pref.Data, r Report) Point {
	users := d.NumUsersWithPreferences()
	if users == 0 {
		return Point{}
	}

	return Point{
		RowLen:      float64(r.Preferences) / float64(users),
		BitsPerPref: r.BitsPerPref,
	}
}

// Model is one fitted size-estimation curve.
type Model struct {
	Type         ModelType
	Coefficients []float64
	RSquared     float64
	RMSE         float64
	Formula      string
}

// Estimate predicts bits per preference for the given mean row length.
func (m *Model) Estimate(rowLen float64) float64 {
	a, b := m.Coefficients[0], m.Coefficients[1]
	switch m.Type {
	case ModelHyperbolic:
		return a + b/rowLen
	case ModelLogarithmic:
		return a + b*math.Log(rowLen)
	case ModelPower:
		return a * math.Pow(rowLen, b)
	default:
		return 0
	}
}

// Fit holds every fitted candidate, ranked by R².
type Fit struct {
	// Best is the candidate with the highest R².
	Best *Model

	// Models lists all candidates, best first.
	Models []*Model
}

// FitModels fits the three candidate models to the observations and ranks
// them by R². It needs at least two points, all with positive coordinates;
// the log-transformed candidates are undefined elsewhere.
func FitModels(points []Point) (*Fit, error) {
	if len(points) < 2 {
		return nil, fmt.Errorf("fitting needs at least 2 points, got %d", len(points))
	}
	xs := make([]float64, len(points))
	ys := make([]float64, len(points))
	for i, p := range points {
		if p.RowLen <= 0 || p.BitsPerPref <= 0 {
			return nil, fmt.Errorf("point %d (%v, %v) not positive", i, p.RowLen, p.BitsPerPref)
		}
		xs[i] = p.RowLen
		ys[i] = p.BitsPerPref
	}

	models := []*Model{
		fitHyperbolic(xs, ys),
		fitLogarithmic(xs, ys),
		fitPower(xs, ys),
	}
	slices.SortStableFunc(models, func(a, b *Model) int {
		switch {
		case a.RSquared > b.RSquared:
			return -1
		case a.RSquared < b.RSquared:
			return 1
		default:
			return 0
		}
	})

	return &Fit{Best: models[0], Models: models}, nil
}

// fitHyperbolic fits bits = a + b/x by least squares over X' = 1/x.
func fitHyperbolic(xs, ys []float64) *Model {
	tx := make([]float64, len(xs))
	for i, x := range xs {
		tx[i] = 1 / x
	}
	a, b := linearFit(tx, ys)

	m := &Model{
		Type:         ModelHyperbolic,
		Coefficients: []float64{a, b},
		Formula:      fmt.Sprintf("bits = %.2f + %.2f / rowLen", a, b),
	}
	m.RSquared, m.RMSE = goodness(m, xs, ys)

	return m
}

// fitLogarithmic fits bits = a + b*ln(x) by least squares over X' = ln x.
func fitLogarithmic(xs, ys []float64) *Model {
	tx := make([]float64, len(xs))
	for i, x := range xs {
		tx[i] = math.Log(x)
	}
	a, b := linearFit(tx, ys)

	m := &Model{
		Type:         ModelLogarithmic,
		Coefficients: []float64{a, b},
		Formula:      fmt.Sprintf("bits = %.2f + %.2f * ln(rowLen)", a, b),
	}
	m.RSquared, m.RMSE = goodness(m, xs, ys)

	return m
}

// fitPower fits bits = a*x^b by least squares in log-log space.
func fitPower(xs, ys []float64) *Model {
	tx := make([]float64, len(xs))
	ty := make([]float64, len(xs))
	for i := range xs {
		tx[i] = math.Log(xs[i])
		ty[i] = math.Log(ys[i])
	}
	logA, b := linearFit(tx, ty)

	m := &Model{
		Type:         ModelPower,
		Coefficients: []float64{math.Exp(logA), b},
		Formula:      fmt.Sprintf("bits = %.2f * rowLen^%.3f", math.Exp(logA), b),
	}
	m.RSquared, m.RMSE = goodness(m, xs, ys)

	return m
}

// linearFit solves y = a + b*x by ordinary least squares. A degenerate
// design (all x equal) collapses to the constant fit b = 0, a = mean(y).
func linearFit(xs, ys []float64) (a, b float64) {
	n := float64(len(xs))
	var sumX, sumY, sumXY, sumX2 float64
	for i := range xs {
		sumX += xs[i]
		sumY += ys[i]
		sumXY += xs[i] * ys[i]
		sumX2 += xs[i] * xs[i]
	}

	meanX := sumX / n
	meanY := sumY / n
	denom := sumX2 - n*meanX*meanX
	if math.Abs(denom) < 1e-12 {
		return meanY, 0
	}
	b = (sumXY - n*meanX*meanY) / denom
	a = meanY - b*meanX

	return a, b
}

// goodness computes R² and RMSE of m against the observations in one pass.
func goodness(m *Model, xs, ys []float64) (r2, rmse float64) {
	var meanY float64
	for _, y := range ys {
		meanY += y
	}
	meanY /= float64(len(ys))

	var ssTot, ssRes float64
	for i := range xs {
		resid := ys[i] - m.Estimate(xs[i])
		ssRes += resid * resid
		ssTot += (ys[i] - meanY) * (ys[i] - meanY)
	}

	rmse = math.Sqrt(ssRes / float64(len(xs)))
	if ssTot == 0 {
		if ssRes == 0 {
			return 1, rmse
		}
		return 0, rmse
	}

	return 1 - ssRes/ssTot, rmse
}
