package graphs

import (
	"github.com/andrew-norris/softwood-lumber-subsidy/internal/operations"
)

// Units returns every chart unit in batch order.
func Units(env *Env) []operations.Step {
	return []operations.Step{
		NewEmployment(env),
		NewExportShare(env),
		NewExportValue(env),
		NewHousingExports(env),
		NewForestryGDP(env),
		NewIndustryComparison(env),
		NewLumberOutput(env),
		NewProductivity(env),
		NewLumberPrice(env),
		NewMaterialComparison(env),
		NewSawmillRevenue(env),
		NewTariffTimeline(env),
		NewHousingStarts(env),
	}
}

// Register adds every chart unit to reg in batch order.
func Register(reg *operations.Registry, env *Env) error {
	for _, u := range Units(env) {
		if err := reg.Register(u); err != nil {
			return err
		}
	}
	return nil
}
