package graphs

import (
	"regexp"
	"time"

	"github.com/andrew-norris/softwood-lumber-subsidy/internal/charts"
	dp "github.com/andrew-norris/softwood-lumber-subsidy/internal/dataprocessing"
)

// Statistics Canada tables and the other inputs, with the number of preamble
// lines above each header row.
var (
	employmentData    = dataset{Path: "employment/1410020201-eng.csv", Skip: 10}
	rawExportsData    = dataset{Path: "exports/raw-exports.csv", Skip: 3}
	valueExportsData  = dataset{Path: "exports/value-exports.csv", Skip: 4}
	volumeExportsData = dataset{Path: "exports/volume-exports.csv", Skip: 5}
	exportsByModeData = dataset{Path: "exports/1610001801-eng.csv", Skip: 11, MaxRows: 1}
	usHousingData     = dataset{Path: "housing-starts/HOUST.csv"}
	gdpData           = dataset{Path: "gdp/3610043403-eng.csv", Skip: 11}
	outputOldData     = dataset{Path: "lumber-output/1610004501-eng.csv", Skip: 9}
	outputNewData     = dataset{Path: "lumber-output/1610001701-eng.csv", Skip: 9}
	priceData         = dataset{Path: "prices/1810026601-eng.csv", Skip: 9}
	revenueData       = dataset{Path: "sawmill-revenue/1610011701-eng.csv", Skip: 10}
	tariffData        = dataset{Path: "tariffs/tariff-weights.csv"}
	canadaHousingData = dataset{Path: "canada-housing-starts/3410015801-eng.csv", Skip: 7}
)

// Row labels. Statistics Canada pads the NAICS code with two spaces.
var (
	sawmillRow       = dp.ExactLabel("Sawmills and wood preservation  [3211]")
	allIndustries    = dp.MatchLabel(regexp.MustCompile(`^All industries\s+\[T001\]`))
	forestryRow      = dp.MatchLabel(regexp.MustCompile(`^Agriculture, forestry, fishing and hunting\s+\[11\]`))
	constructionRow  = dp.MatchLabel(regexp.MustCompile(`^Construction\s+\[23\]`))
	productionRow    = dp.ContainsLabel("Total softwood and hardwood, production")
	lumberPriceRow   = dp.ContainsLabel("Softwood lumber (except tongue and groove and other edge worked lumber)")
	steelPriceRow    = dp.ContainsLabel("Fabricated steel plate")
	concretePriceRow = dp.ContainsLabel("Ready-mixed concrete")
	revenueRow       = dp.ContainsLabel("Revenue from goods manufactured")
	canadaRow        = dp.MatchLabel(regexp.MustCompile(`^Canada\b`))
)

// Analysis windows.
var (
	seriesStart       = dp.Month(2003, time.January)
	productivityStart = dp.Year(2004)
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Policy and market events marked on the time-axis charts.
var (
	slaStart = charts.Marker{
		Label: "SLA Start (Oct 2006)",
		X:     charts.TimeX(date(2006, time.October, 1)),
		Style: charts.Style{Color: charts.Charcoal, Dashes: charts.Dashed, Alpha: 0.8},
	}
	slaEnd = charts.Marker{
		Label: "SLA End (Oct 2015)",
		X:     charts.TimeX(date(2015, time.October, 1)),
		Style: charts.Style{Color: charts.Slate, Dashes: charts.Dotted, Alpha: 0.8},
	}
	trumpElected = charts.Marker{
		Label: "Trump Elected (Nov 2016)",
		X:     charts.TimeX(date(2016, time.November, 1)),
		Style: charts.Style{Color: charts.Silver, Dashes: charts.DashDot, Alpha: 0.8},
	}
	trumpReelected = charts.Marker{
		Label: "Trump Reelected (Nov 2024)",
		X:     charts.TimeX(date(2024, time.November, 1)),
		Style: charts.Style{Color: charts.Mist, Dashes: charts.DashDot, Alpha: 0.8},
	}
	financialCrisis = charts.Span{
		Label: "Financial Crisis (2007-2009)",
		From:  charts.TimeX(date(2007, time.January, 1)),
		To:    charts.TimeX(date(2009, time.December, 31)),
		Color: charts.Slate,
	}
)

// indexBase is the reference line drawn at 100 on rebased charts.
func indexBase(style charts.Style) charts.Reference {
	return charts.Reference{Y: 100, Style: style}
}
