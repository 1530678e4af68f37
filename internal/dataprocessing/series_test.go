package dataprocessing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func monthly(name string, year int, start time.Month, values ...float64) Series {
	points := make([]Point, len(values))
	for i, v := range values {
		t := time.Date(year, start+time.Month(i), 1, 0, 0, 0, 0, time.UTC)
		points[i] = Point{Period: Month(t.Year(), t.Month()), Value: v}
	}
	return NewSeries(name, points)
}

func annual(name string, start int, values ...float64) Series {
	points := make([]Point, len(values))
	for i, v := range values {
		points[i] = Point{Period: Year(start + i), Value: v}
	}
	return NewSeries(name, points)
}

func TestNewSeries_SortsAndDeduplicates(t *testing.T) {
	s := NewSeries("x", []Point{
		{Month(2020, time.March), 3},
		{Month(2020, time.January), 1},
		{Month(2020, time.February), 2},
		{Month(2020, time.January), 10},
	})

	assert.Equal(t, "x", s.Name())
	assert.Equal(t, 3, s.Len())
	assert.Equal(t, []float64{10, 2, 3}, s.Values())
	assert.Equal(t, []Period{
		Month(2020, time.January),
		Month(2020, time.February),
		Month(2020, time.March),
	}, s.Periods())
}

func TestSeries_Value(t *testing.T) {
	s := monthly("x", 2020, time.November, 11, 12, 1)

	v, ok := s.Value(Month(2021, time.January))
	assert.True(t, ok)
	assert.Equal(t, 1.0, v)

	_, ok = s.Value(Month(2020, time.October))
	assert.False(t, ok)
	_, ok = s.Value(Year(2020))
	assert.False(t, ok)
}

func TestSeries_Immutability(t *testing.T) {
	s := monthly("x", 2020, time.January, 1, 2, 3)

	pts := s.Points()
	pts[0].Value = 99
	assert.Equal(t, 1.0, s.First().Value)

	doubled := s.Map(func(p Point) float64 { return p.Value * 2 })
	assert.Equal(t, []float64{2, 4, 6}, doubled.Values())
	assert.Equal(t, []float64{1, 2, 3}, s.Values())

	renamed := s.WithName("y")
	assert.Equal(t, "y", renamed.Name())
	assert.Equal(t, "x", s.Name())
	assert.True(t, renamed.Equal(s))
}

func TestSeries_FilterAndEnds(t *testing.T) {
	s := annual("x", 2000, 5, 6, 7, 8)
	odd := s.Filter(func(p Point) bool { return p.Period.Year%2 == 1 })

	assert.Equal(t, 2, odd.Len())
	assert.Equal(t, Year(2001), odd.First().Period)
	assert.Equal(t, Year(2003), odd.Last().Period)
	assert.False(t, odd.IsEmpty())
	assert.True(t, NewSeries("empty", nil).IsEmpty())
}
