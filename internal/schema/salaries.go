package schema

import "strings"

// Column names of the raw salaries file.
const (
	ColWorkYear          = "work_year"
	ColExperienceLevel   = "experience_level"
	ColEmploymentType    = "employment_type"
	ColJobTitle          = "job_title"
	ColSalary            = "salary"
	ColSalaryCurrency    = "salary_currency"
	ColSalaryInUSD       = "salary_in_usd"
	ColEmployeeResidence = "employee_residence"
	ColRemoteRatio       = "remote_ratio"
	ColCompanyLocation   = "company_location"
	ColCompanySize       = "company_size"
)

// Columns added by cleaning.
const (
	ColResidenceISO3    = "employee_residence_iso_3"
	ColResidenceGrouped = "employee_residence_grouped"
)

// Company size buckets.
const (
	CompanySmall  = "S"
	CompanyMedium = "M"
	CompanyLarge  = "L"
)

// RemoteRatios lists the accepted remote_ratio values.
var RemoteRatios = []string{"0", "50", "100"}

// CompanySizes lists company_size buckets in display order.
var CompanySizes = []string{CompanySmall, CompanyMedium, CompanyLarge}

// NormalizeCode trims and upper-cases short coded values such as "se" or " us".
func NormalizeCode(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// SalaryFieldSpecs defines the expected CSV columns for the salaries dataset.
// Experience level and employment type stay free text here and keep their
// case; decoding them is the cleaner's job so that an unknown code, "se"
// included, surfaces as a data-quality error.
var SalaryFieldSpecs = []FieldSpec{
	{Name: ColWorkYear, Type: FieldInteger, Required: true},
	{Name: ColExperienceLevel, Type: FieldText, Required: true},
	{Name: ColEmploymentType, Type: FieldText, Required: true},
	{Name: ColJobTitle, Type: FieldText, Required: true},
	{Name: ColSalary, Type: FieldNumeric, Required: true},
	{Name: ColSalaryCurrency, Type: FieldText, Required: true, Normalizer: NormalizeCode},
	{Name: ColSalaryInUSD, Type: FieldNumeric, Required: true},
	{Name: ColEmployeeResidence, Type: FieldText, Required: true, Normalizer: NormalizeCode},
	{Name: ColRemoteRatio, Type: FieldEnum, Required: true, EnumValues: RemoteRatios},
	{Name: ColCompanyLocation, Type: FieldText, Required: true, Normalizer: NormalizeCode},
	{Name: ColCompanySize, Type: FieldEnum, Required: true, EnumValues: CompanySizes, Normalizer: NormalizeCode},
}

// CleanColumns lists the columns of a cleaned table in output order.
var CleanColumns = []string{
	ColWorkYear,
	ColExperienceLevel,
	ColEmploymentType,
	ColJobTitle,
	ColSalaryInUSD,
	ColEmployeeResidence,
	ColRemoteRatio,
	ColCompanyLocation,
	ColCompanySize,
	ColResidenceISO3,
	ColResidenceGrouped,
}
