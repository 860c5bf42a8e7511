package views

import (
	"github.com/JonMunkholm/salaries/internal/core"
	"github.com/JonMunkholm/salaries/internal/schema"
)

// Remote views average remote_ratio, so 100 means every record is fully remote.
func init() {
	measure := core.MeasureRemoteRatio

	core.RegisterView(core.ViewDefinition{
		Info: info("remote_ratio_by_experience", GroupRemote, "Remote work by experience",
			"Mean remote ratio per experience level, Junior to Director.",
			core.DimExperienceLevel, measure, core.StatMean),
		Build: aggregate(core.DimExperienceLevel, measure, core.StatMean, core.ExperienceOrder),
	})
	core.RegisterView(core.ViewDefinition{
		Info: info("remote_ratio_by_company_size", GroupRemote, "Remote work by company size",
			"Mean remote ratio per company size, small to large.",
			core.DimCompanySize, measure, core.StatMean),
		Build: aggregate(core.DimCompanySize, measure, core.StatMean, schema.CompanySizes),
	})
}
