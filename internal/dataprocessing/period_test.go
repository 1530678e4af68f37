package dataprocessing

import (
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/andrew-norris/softwood-lumber-subsidy/internal/errors"
)

func TestParsePeriod(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Period
	}{
		{"full month name", "March 2021", Month(2021, time.March)},
		{"lowercase month name", "march 2021", Month(2021, time.March)},
		{"abbreviated month", "Mar-21", Month(2021, time.March)},
		{"abbreviated upper case", "DEC-05", Month(2005, time.December)},
		{"bare year", "2021", Year(2021)},
		{"iso month", "2021-03", Month(2021, time.March)},
		{"iso date", "2021-03-01", Month(2021, time.March)},
		{"surrounding whitespace", "  January 2006 ", Month(2006, time.January)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePeriod(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParsePeriod_Failures(t *testing.T) {
	inputs := []string{
		"",
		"Geography",
		"Unnamed: 2",
		"Marchy 2021",
		"March 21",
		"Foo-21",
		"Mar-2021",
		"21",
		"2021-13",
		"2021-3",
		"2021-03-45",
		"Reference period",
	}

	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			_, err := ParsePeriod(in)
			require.Error(t, err)
			assert.True(t, errors.Is(err, apperrors.ErrParseFailure))
		})
	}
}

func TestParsePeriod_Deterministic(t *testing.T) {
	for _, in := range []string{"March 2021", "Mar-21", "2021"} {
		first, err := ParsePeriod(in)
		require.NoError(t, err)
		for i := 0; i < 5; i++ {
			again, err := ParsePeriod(in)
			require.NoError(t, err)
			assert.Equal(t, first, again)
		}
	}
}

func TestPeriod_Ordering(t *testing.T) {
	periods := []Period{
		Month(2021, time.February),
		Year(2021),
		Month(2020, time.December),
		Month(2021, time.January),
		Year(2019),
	}
	sort.Slice(periods, func(i, j int) bool { return periods[i].Before(periods[j]) })

	assert.Equal(t, []Period{
		Year(2019),
		Month(2020, time.December),
		Year(2021),
		Month(2021, time.January),
		Month(2021, time.February),
	}, periods)

	assert.Equal(t, 0, Month(2021, time.March).Compare(MustParsePeriod("Mar-21")))
	assert.True(t, Year(2020).After(Month(2019, time.December)))
}

func TestPeriod_Formatting(t *testing.T) {
	assert.Equal(t, "2021-03", Month(2021, time.March).String())
	assert.Equal(t, "2021", Year(2021).String())
	assert.Equal(t, "March 2021", Month(2021, time.March).Label())
	assert.Equal(t, "2021", Year(2021).Label())
	assert.Equal(t, time.Date(2021, time.March, 1, 0, 0, 0, 0, time.UTC), Month(2021, time.March).Time())
	assert.Equal(t, time.Date(2021, time.January, 1, 0, 0, 0, 0, time.UTC), Year(2021).Time())
	assert.True(t, Period{}.IsZero())
	assert.True(t, Year(2021).IsAnnual())
}

func TestMustParsePeriod_Panics(t *testing.T) {
	assert.Panics(t, func() { MustParsePeriod("not a period") })
}
