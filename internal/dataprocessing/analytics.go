package dataprocessing

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	apperrors "github.com/andrew-norris/softwood-lumber-subsidy/internal/errors"
)

// Summary describes a series.
type Summary struct {
	Count  int
	Mean   float64
	StdDev float64
	Min    Point
	Max    Point
	First  Point
	Last   Point
}

// Describe summarizes s. Ties for min or max resolve to the earliest period.
func Describe(s Series) (Summary, error) {
	if s.IsEmpty() {
		return Summary{}, apperrors.EmptySeries(s.name)
	}
	values := s.Values()
	sum := Summary{
		Count: len(values),
		Mean:  stat.Mean(values, nil),
		Min:   s.points[floats.MinIdx(values)],
		Max:   s.points[floats.MaxIdx(values)],
		First: s.First(),
		Last:  s.Last(),
	}
	if len(values) > 1 {
		sum.StdDev = stat.StdDev(values, nil)
	}
	return sum, nil
}

// Change returns the percentage change from first to last.
func (s Summary) Change() float64 {
	if s.First.Value == 0 {
		return math.NaN()
	}
	return (s.Last.Value - s.First.Value) / s.First.Value * 100
}

// Fit is an ordinary least squares fit of y on x.
type Fit struct {
	Slope     float64
	Intercept float64
	R         float64
	RSquared  float64
	PValue    float64
	StdErr    float64
	N         int
}

// Predict evaluates the fitted line at x.
func (f Fit) Predict(x float64) float64 {
	return f.Intercept + f.Slope*x
}

// Significance returns the tightest conventional level (0.001, 0.01, 0.05)
// at which the slope is significant, or 0 when it is not.
func (f Fit) Significance() float64 {
	for _, level := range []float64{0.001, 0.01, 0.05} {
		if f.PValue < level {
			return level
		}
	}
	return 0
}

// LinearFit regresses y on x over the periods both series share. The p-value
// is the two-sided test of a zero slope against Student's t with n-2 degrees
// of freedom; with two points the fit is exact and StdErr and PValue are 0.
// A constant y gives a flat line with PValue 1.
func LinearFit(x, y Series) (Fit, error) {
	aligned := Align(x, y)
	xs, ys := aligned[0].Values(), aligned[1].Values()
	n := len(xs)
	if n < 2 {
		return Fit{}, apperrors.InsufficientData("linear fit needs at least 2 aligned points").
			WithContext("aligned", n)
	}
	if stat.Variance(xs, nil) == 0 {
		return Fit{}, apperrors.InsufficientData("linear fit needs variation in x")
	}

	intercept, slope := stat.LinearRegression(xs, ys, nil, false)
	fit := Fit{
		Slope:     slope,
		Intercept: intercept,
		N:         n,
	}
	if stat.Variance(ys, nil) == 0 {
		// horizontal line: x explains nothing of a constant y
		fit.PValue = 1
		return fit, nil
	}
	fit.R = stat.Correlation(xs, ys, nil)
	fit.RSquared = fit.R * fit.R

	if n > 2 {
		var sse, sxx float64
		mx := stat.Mean(xs, nil)
		for i := range xs {
			r := ys[i] - fit.Predict(xs[i])
			sse += r * r
			sxx += (xs[i] - mx) * (xs[i] - mx)
		}
		dof := float64(n - 2)
		fit.StdErr = math.Sqrt(sse/dof) / math.Sqrt(sxx)
		if fit.StdErr > 0 {
			t := fit.Slope / fit.StdErr
			dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: dof}
			fit.PValue = 2 * dist.Survival(math.Abs(t))
		}
	}
	return fit, nil
}

// Residuals returns y minus the fitted value at x, per common period.
func Residuals(fit Fit, x, y Series) Series {
	aligned := Align(x, y)
	xa, ya := aligned[0], aligned[1]
	points := make([]Point, xa.Len())
	for i := range xa.points {
		points[i] = Point{
			Period: xa.points[i].Period,
			Value:  ya.points[i].Value - fit.Predict(xa.points[i].Value),
		}
	}
	return Series{name: "residuals", points: points}
}

// Correlation returns Pearson's r over the periods both series share.
func Correlation(x, y Series) (float64, error) {
	aligned := Align(x, y)
	if aligned[0].Len() < 2 {
		return 0, apperrors.InsufficientData("correlation needs at least 2 aligned points")
	}
	return stat.Correlation(aligned[0].Values(), aligned[1].Values(), nil), nil
}

// PeriodChanges returns the percentage change of each point over the one
// before it. The first point has no predecessor and is dropped, as are points
// following a zero.
func PeriodChanges(s Series) Series {
	points := make([]Point, 0, s.Len())
	for i := 1; i < len(s.points); i++ {
		prev := s.points[i-1].Value
		if prev == 0 {
			continue
		}
		points = append(points, Point{
			Period: s.points[i].Period,
			Value:  (s.points[i].Value - prev) / prev * 100,
		})
	}
	return Series{name: s.name, points: points}
}

// CAGR returns the compound annual growth rate, in percent, between the first
// and last points of s.
func CAGR(s Series) (float64, error) {
	if s.Len() < 2 {
		return 0, apperrors.InsufficientData("growth rate needs at least 2 points")
	}
	first, last := s.First(), s.Last()
	if first.Value <= 0 || last.Value <= 0 {
		return 0, apperrors.InsufficientData("growth rate needs positive endpoints")
	}
	years := yearsBetween(first.Period, last.Period)
	return (math.Pow(last.Value/first.Value, 1/years) - 1) * 100, nil
}

// YearRangeMean averages the points whose year lies in [from, to].
func YearRangeMean(s Series, from, to int) (float64, bool) {
	var values []float64
	for _, p := range s.points {
		if p.Period.Year >= from && p.Period.Year <= to {
			values = append(values, p.Value)
		}
	}
	if len(values) == 0 {
		return 0, false
	}
	return stat.Mean(values, nil), true
}

func yearsBetween(a, b Period) float64 {
	months := (b.Year-a.Year)*12 + int(b.Month) - int(a.Month)
	return float64(months) / 12
}
