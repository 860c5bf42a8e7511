package views

import (
	"github.com/JonMunkholm/salaries/internal/core"
	"github.com/JonMunkholm/salaries/internal/schema"
)

func init() {
	register := func(key, label, description string, dim core.Dimension, s core.Stat, order []string) {
		core.RegisterView(core.ViewDefinition{
			Info:  info(key, GroupSalary, label, description, dim, core.MeasureSalaryUSD, s),
			Build: aggregate(dim, core.MeasureSalaryUSD, s, order),
		})
	}

	register("salary_by_residence", "Salary by residence",
		"Mean salary in USD per residence country.",
		core.DimResidenceGrouped, core.StatMean, nil)
	register("salary_by_year", "Salary by year",
		"Mean salary in USD per work year.",
		core.DimWorkYear, core.StatMean, nil)
	register("salary_by_company_size", "Salary by company size",
		"Median salary in USD per company size, small to large.",
		core.DimCompanySize, core.StatMedian, schema.CompanySizes)
	register("salary_by_experience", "Salary by experience",
		"Mean salary in USD per experience level, Junior to Director.",
		core.DimExperienceLevel, core.StatMean, core.ExperienceOrder)
	register("salary_by_remote_ratio", "Salary by remote ratio",
		"Mean salary in USD by share of remote work.",
		core.DimRemoteRatio, core.StatMean, nil)
	register("salary_by_employment_type", "Salary by employment type",
		"Mean salary in USD per employment type.",
		core.DimEmploymentType, core.StatMean, nil)
	register("salary_by_job_title", "Salary by job title",
		"Mean salary in USD per job title.",
		core.DimJobTitle, core.StatMean, nil)
	register("salary_by_company_location", "Salary by company location",
		"Mean salary in USD per company country.",
		core.DimCompanyLocation, core.StatMean, nil)
}
