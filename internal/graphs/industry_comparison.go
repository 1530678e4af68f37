package graphs

import (
	"context"
	"fmt"
	"sort"

	"github.com/andrew-norris/softwood-lumber-subsidy/internal/charts"
	dp "github.com/andrew-norris/softwood-lumber-subsidy/internal/dataprocessing"
	apperrors "github.com/andrew-norris/softwood-lumber-subsidy/internal/errors"
	"github.com/andrew-norris/softwood-lumber-subsidy/internal/exporter"
)

// comparisonYear is the most recent complete year of the GDP table.
var comparisonYear = dp.Year(2024)

const (
	construction = "Construction"
	agriculture  = "Agriculture, forestry, fishing and hunting"
)

// NewIndustryComparison compares construction GDP with agriculture and
// forestry GDP for a single year.
func NewIndustryComparison(env *Env) *Unit {
	return newUnit(env, "industry-comparison", "Industry Comparison Graph",
		[]dataset{gdpData}, runIndustryComparison)
}

type industryValue struct {
	name  string
	value float64
}

// valueIn returns the value of s at p or an InsufficientData error naming
// the industry.
func valueIn(s dp.Series, p dp.Period, industry string) (float64, error) {
	v, ok := s.Value(p)
	if !ok {
		return 0, apperrors.InsufficientData(fmt.Sprintf("no %s GDP for %s", industry, p.Label()))
	}
	return v, nil
}

func runIndustryComparison(ctx context.Context, u *Unit, out *exporter.Summary) error {
	rows, err := industryGDP(ctx, u, constructionRow, forestryRow, allIndustries)
	if err != nil {
		return err
	}

	industries := make([]industryValue, 0, 2)
	for i, name := range []string{construction, agriculture} {
		v, err := valueIn(rows[i], comparisonYear, name)
		if err != nil {
			return err
		}
		industries = append(industries, industryValue{name: name, value: v})
	}
	totalGDP, err := valueIn(rows[2], comparisonYear, "total")
	if err != nil {
		return err
	}
	sort.SliceStable(industries, func(i, j int) bool {
		return industries[i].value > industries[j].value
	})

	names := make([]string, len(industries))
	values := make([]float64, len(industries))
	for i, ind := range industries {
		names[i], values[i] = ind.name, ind.value
	}

	year := comparisonYear.Label()
	chart := charts.Bar{
		Title:       fmt.Sprintf("Canadian Industry GDP Comparison (%s)", year),
		XLabel:      "GDP (millions of chained 2017 dollars)",
		YLabel:      "Industry",
		Categories:  names,
		Values:      values,
		ValueFormat: func(v float64) string { return out.Money(v, 0) + "M" },
		XTickFormat: func(v float64) string { return fmt.Sprintf("$%.0fB", v/1000) },
	}
	if err := u.saveWith(ctx, u.env.Renderer.Sized(14, 8), chart, "industry_comparison.png"); err != nil {
		return err
	}

	out.Section(fmt.Sprintf("Canadian Industry GDP Comparison (%s)", year))
	out.Heading("GDP by Industry (millions of chained 2017 dollars):")
	for _, ind := range industries {
		out.Linef("  %s: %sM ($%.1fB)", ind.name, out.Money(ind.value, 0), ind.value/1000)
	}
	selected := dp.Sum(values)
	out.Linef("\nTotal GDP of selected industries: %sM ($%.1fB)", out.Money(selected, 0), selected/1000)
	out.Linef("Total Canadian GDP (%s): %sM ($%.1fB)", year, out.Money(totalGDP, 0), totalGDP/1000)

	out.Heading("Share of Total GDP:")
	for _, ind := range industries {
		out.Linef("  %s: %.2f%%", ind.name, ind.value/totalGDP*100)
	}

	out.Section("Key Comparisons")
	var constructionGDP, agricultureGDP float64
	for _, ind := range industries {
		switch ind.name {
		case construction:
			constructionGDP = ind.value
		case agriculture:
			agricultureGDP = ind.value
		}
	}
	if agricultureGDP != 0 {
		out.Linef("Construction is %.1fx larger than Agriculture/Forestry/Fishing/Hunting",
			constructionGDP/agricultureGDP)
	}

	if u.env.ExportCSV {
		records := make([][]string, len(industries))
		for i, ind := range industries {
			records[i] = []string{ind.name, formatValue(ind.value), formatValue(ind.value / totalGDP * 100)}
		}
		path := u.env.Paths.ReportPath(u.ID() + ".csv")
		if err := u.env.CSV.WriteSimpleCSV(path, []string{"industry", "gdp_millions", "share_pct"}, records); err != nil {
			return fmt.Errorf("export %s: %w", u.ID(), err)
		}
	}
	return nil
}
