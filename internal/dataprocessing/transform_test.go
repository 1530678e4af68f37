package dataprocessing

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/andrew-norris/softwood-lumber-subsidy/internal/errors"
)

func TestMerge_OverrideWins(t *testing.T) {
	old := monthly("old vintage", 2019, time.October, 1, 2, 3, 4)
	revised := monthly("new vintage", 2019, time.December, 30, 40, 50)

	merged := Merge(old, revised)

	assert.Equal(t, "new vintage", merged.Name())
	assert.Equal(t, []float64{1, 2, 30, 40, 50}, merged.Values())
	assert.Equal(t, Month(2019, time.October), merged.First().Period)
	assert.Equal(t, Month(2020, time.February), merged.Last().Period)
}

func TestMerge_Idempotent(t *testing.T) {
	base := monthly("base", 2020, time.January, 1, 2, 3)
	override := monthly("override", 2020, time.February, 20, 30, 40)

	once := Merge(base, override)
	twice := Merge(once, override)
	assert.True(t, once.Equal(twice))
}

func TestMerge_EmptyInputs(t *testing.T) {
	s := monthly("s", 2020, time.January, 1, 2)
	empty := NewSeries("", nil)

	assert.True(t, Merge(empty, s).Equal(s))
	assert.True(t, Merge(s, empty).Equal(s))
	assert.Equal(t, "s", Merge(s, empty).Name())
}

func TestRebase(t *testing.T) {
	s := monthly("price", 2020, time.January, 50, 75, 3)

	idx, err := Rebase(s, Month(2020, time.February))
	require.NoError(t, err)
	v, ok := idx.Value(Month(2020, time.February))
	require.True(t, ok)
	assert.Equal(t, 100.0, v)
	assert.InDelta(t, 66.6667, idx.First().Value, 1e-4)
	assert.InDelta(t, 4.0, idx.Last().Value, 1e-9)

	// exact 100 for awkward base values
	for _, base := range []float64{3, 0.1, 1e-7, 123456.789} {
		s := annual("s", 2000, base*2, base)
		idx, err := Rebase(s, Year(2001))
		require.NoError(t, err)
		assert.Equal(t, 100.0, idx.Last().Value)
	}
}

func TestRebase_Failures(t *testing.T) {
	s := annual("s", 2000, 0, 1)

	_, err := Rebase(s, Year(1999))
	assert.True(t, errors.Is(err, apperrors.ErrBasePeriodNotFound))

	_, err = Rebase(s, Year(2000))
	assert.True(t, errors.Is(err, apperrors.ErrInsufficientData))

	_, err = RebaseFirst(NewSeries("empty", nil))
	assert.True(t, errors.Is(err, apperrors.ErrEmptySeries))
}

func TestRebaseFirst(t *testing.T) {
	s := annual("s", 2003, 200, 300, 100)
	idx, err := RebaseFirst(s)
	require.NoError(t, err)
	assert.Equal(t, []float64{100, 150, 50}, idx.Values())
}

func TestAggregateByYear(t *testing.T) {
	s := NewSeries("s", []Point{
		{Month(2020, time.January), 10},
		{Month(2020, time.February), 20},
	})
	assert.Equal(t, []Point{{Year(2020), 30}}, AggregateByYear(s, Sum).Points())

	gappy := NewSeries("s", []Point{
		{Month(2019, time.December), 4},
		{Month(2021, time.January), 1},
		{Month(2021, time.March), 3},
	})
	means := AggregateByYear(gappy, Mean)
	assert.Equal(t, []Period{Year(2019), Year(2021)}, means.Periods(), "empty years are omitted")
	assert.Equal(t, []float64{4, 2}, means.Values())

	assert.True(t, AggregateByYear(NewSeries("e", nil), Sum).IsEmpty())
}

func TestRangeFilters(t *testing.T) {
	s := monthly("s", 2002, time.November, 1, 2, 3, 4, 5)

	from := From(s, Month(2003, time.January))
	assert.Equal(t, []float64{3, 4, 5}, from.Values())

	between := Between(s, Month(2002, time.December), Month(2003, time.February))
	assert.Equal(t, []float64{2, 3, 4}, between.Values())

	since := Since(s, time.Date(2003, time.February, 1, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, []float64{4, 5}, since.Values())
}

func TestAlignRatioScale(t *testing.T) {
	production := annual("production", 2003, 100, 200, 300)
	employment := annual("employment", 2004, 10, 20, 30)

	aligned := Align(production, employment)
	require.Len(t, aligned, 2)
	assert.Equal(t, []Period{Year(2004), Year(2005)}, aligned[0].Periods())
	assert.Equal(t, aligned[0].Periods(), aligned[1].Periods())

	per := Ratio("per worker", production, employment, 1000)
	assert.Equal(t, "per worker", per.Name())
	assert.Equal(t, []float64{20000, 15000}, per.Values())

	billions := Scale(annual("rev", 2020, 2.5e9), 1e-9)
	assert.InDelta(t, 2.5, billions.First().Value, 1e-12)

	assert.Nil(t, Align())
}
