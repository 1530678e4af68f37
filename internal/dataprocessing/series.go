package dataprocessing

import (
	"sort"
)

// Point is a single observation of a series.
type Point struct {
	Period Period
	Value  float64
}

// Series is an ordered sequence of observations with unique periods, sorted
// ascending. A Series is immutable: every transformation returns a new one
// and accessors hand out copies.
type Series struct {
	name   string
	points []Point
}

// NewSeries builds a series from points in any order. When a period appears
// more than once the last occurrence wins.
func NewSeries(name string, points []Point) Series {
	idx := make(map[Period]int, len(points))
	out := make([]Point, 0, len(points))
	for _, p := range points {
		if i, ok := idx[p.Period]; ok {
			out[i].Value = p.Value
			continue
		}
		idx[p.Period] = len(out)
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Period.Before(out[j].Period)
	})
	return Series{name: name, points: out}
}

// Name returns the series name.
func (s Series) Name() string {
	return s.name
}

// WithName returns a copy of s with a different name.
func (s Series) WithName(name string) Series {
	return Series{name: name, points: s.Points()}
}

// Len returns the number of points.
func (s Series) Len() int {
	return len(s.points)
}

// IsEmpty reports whether the series has no points.
func (s Series) IsEmpty() bool {
	return len(s.points) == 0
}

// At returns the i-th point in period order.
func (s Series) At(i int) Point {
	return s.points[i]
}

// Points returns a copy of the points in period order.
func (s Series) Points() []Point {
	out := make([]Point, len(s.points))
	copy(out, s.points)
	return out
}

// Periods returns the periods in order.
func (s Series) Periods() []Period {
	out := make([]Period, len(s.points))
	for i, p := range s.points {
		out[i] = p.Period
	}
	return out
}

// Values returns the values in period order.
func (s Series) Values() []float64 {
	out := make([]float64, len(s.points))
	for i, p := range s.points {
		out[i] = p.Value
	}
	return out
}

// Value looks up the value recorded for period p.
func (s Series) Value(p Period) (float64, bool) {
	i := sort.Search(len(s.points), func(i int) bool {
		return !s.points[i].Period.Before(p)
	})
	if i < len(s.points) && s.points[i].Period == p {
		return s.points[i].Value, true
	}
	return 0, false
}

// First returns the earliest point. It panics on an empty series.
func (s Series) First() Point {
	return s.points[0]
}

// Last returns the latest point. It panics on an empty series.
func (s Series) Last() Point {
	return s.points[len(s.points)-1]
}

// Equal reports whether two series hold the same points. Names are ignored.
func (s Series) Equal(o Series) bool {
	if len(s.points) != len(o.points) {
		return false
	}
	for i := range s.points {
		if s.points[i] != o.points[i] {
			return false
		}
	}
	return true
}

// Map returns a new series with fn applied to every value.
func (s Series) Map(fn func(Point) float64) Series {
	out := make([]Point, len(s.points))
	for i, p := range s.points {
		out[i] = Point{Period: p.Period, Value: fn(p)}
	}
	return Series{name: s.name, points: out}
}

// Filter returns the points for which keep reports true.
func (s Series) Filter(keep func(Point) bool) Series {
	out := make([]Point, 0, len(s.points))
	for _, p := range s.points {
		if keep(p) {
			out = append(out, p)
		}
	}
	return Series{name: s.name, points: out}
}
