package views

import "github.com/JonMunkholm/salaries/internal/core"

func init() {
	registerExperienceCounts()
	registerResidenceCounts()
	registerResidenceMap()
	registerJobTitleCounts()
}

func registerExperienceCounts() {
	dim, measure := core.DimExperienceLevel, core.MeasureSalaryUSD
	core.RegisterView(core.ViewDefinition{
		Info: info("experience_counts", GroupDistribution, "Employees by experience",
			"Number of employees per experience level, Junior to Director.",
			dim, measure, core.StatCount),
		Build: aggregate(dim, measure, core.StatCount, core.ExperienceOrder),
	})
}

func registerResidenceCounts() {
	dim, measure := core.DimResidenceGrouped, core.MeasureSalaryUSD
	core.RegisterView(core.ViewDefinition{
		Info: info("residence_counts", GroupDistribution, "Employees by residence",
			"Number of employees per residence country; small countries share one bucket.",
			dim, measure, core.StatCount),
		Build: func(t *core.CleanTable) ([]core.Group, error) {
			return core.ValueCounts(t, dim), nil
		},
	})
}

// residence_map feeds a choropleth, which has no area for the sentinel bucket.
func registerResidenceMap() {
	dim, measure := core.DimResidenceISO3, core.MeasureSalaryUSD
	core.RegisterView(core.ViewDefinition{
		Info: info("residence_map", GroupDistribution, "Residence map",
			"Employees per ISO-3166 alpha-3 country, excluding the grouped bucket.",
			dim, measure, core.StatCount),
		Build: func(t *core.CleanTable) ([]core.Group, error) {
			named := t.Filter(func(r core.CleanRecord) bool { return r.ResidenceGrouped != t.OtherLabel })
			return core.Aggregate(named, dim, measure, core.StatCount)
		},
	})
}

func registerJobTitleCounts() {
	dim, measure := core.DimJobTitle, core.MeasureSalaryUSD
	core.RegisterView(core.ViewDefinition{
		Info: info("job_title_counts", GroupDistribution, "Employees by job title",
			"Number of employees per job title, most common first.",
			dim, measure, core.StatCount),
		Build: func(t *core.CleanTable) ([]core.Group, error) {
			return core.ValueCounts(t, dim), nil
		},
	})
}
