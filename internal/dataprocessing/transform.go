package dataprocessing

import (
	"time"

	apperrors "github.com/andrew-norris/softwood-lumber-subsidy/internal/errors"
)

// AggregateOp reduces the values of one year to a single number.
type AggregateOp func(values []float64) float64

// Sum adds the values.
func Sum(values []float64) float64 {
	var total float64
	for _, v := range values {
		total += v
	}
	return total
}

// Mean averages the values.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return Sum(values) / float64(len(values))
}

// Rebase expresses s as an index where the value at base equals 100.
func Rebase(s Series, base Period) (Series, error) {
	bv, ok := s.Value(base)
	if !ok {
		return Series{}, apperrors.BasePeriodNotFound(s.name, base.String())
	}
	if bv == 0 {
		return Series{}, apperrors.InsufficientData("cannot rebase to a zero value at " + base.String())
	}
	return s.Map(func(p Point) float64 {
		if p.Period == base {
			return 100
		}
		return p.Value / bv * 100
	}), nil
}

// RebaseFirst rebases s to its earliest period.
func RebaseFirst(s Series) (Series, error) {
	if s.IsEmpty() {
		return Series{}, apperrors.EmptySeries(s.name)
	}
	return Rebase(s, s.First().Period)
}

// AggregateByYear groups the points of s by calendar year and reduces each
// group with op. Years without points are omitted.
func AggregateByYear(s Series, op AggregateOp) Series {
	var (
		points []Point
		year   int
		group  []float64
	)
	flush := func() {
		if len(group) > 0 {
			points = append(points, Point{Period: Year(year), Value: op(group)})
		}
		group = group[:0]
	}
	for _, p := range s.points {
		if p.Period.Year != year {
			flush()
			year = p.Period.Year
		}
		group = append(group, p.Value)
	}
	flush()
	return Series{name: s.name, points: points}
}

// Between keeps the points whose period lies in [from, to].
func Between(s Series, from, to Period) Series {
	return s.Filter(func(p Point) bool {
		return !p.Period.Before(from) && !p.Period.After(to)
	})
}

// From keeps the points at or after from.
func From(s Series, from Period) Series {
	return s.Filter(func(p Point) bool {
		return !p.Period.Before(from)
	})
}

// Since keeps the points whose period starts at or after t.
func Since(s Series, t time.Time) Series {
	return s.Filter(func(p Point) bool {
		return !p.Period.Time().Before(t)
	})
}

// Align restricts every series to the periods common to all of them.
func Align(series ...Series) []Series {
	if len(series) == 0 {
		return nil
	}
	counts := make(map[Period]int)
	for _, s := range series {
		for _, p := range s.points {
			counts[p.Period]++
		}
	}
	out := make([]Series, len(series))
	for i, s := range series {
		out[i] = s.Filter(func(p Point) bool {
			return counts[p.Period] == len(series)
		})
	}
	return out
}

// Ratio divides a by b on their common periods and multiplies by scale.
// Periods where b is zero are dropped.
func Ratio(name string, a, b Series, scale float64) Series {
	points := make([]Point, 0, a.Len())
	for _, p := range a.points {
		d, ok := b.Value(p.Period)
		if !ok || d == 0 {
			continue
		}
		points = append(points, Point{Period: p.Period, Value: p.Value / d * scale})
	}
	return Series{name: name, points: points}
}

// Scale multiplies every value of s by factor.
func Scale(s Series, factor float64) Series {
	return s.Map(func(p Point) float64 { return p.Value * factor })
}
