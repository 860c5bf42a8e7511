package core

// cleaner.go turns a RawTable into a CleanTable.
//
// Cleaning runs in two phases:
//  1. Row-wise: decode experience level and employment type, translate the
//     residence alpha-2 code to alpha-3, and drop salary/salary_currency.
//  2. Dataset-wide: count residents per alpha-3 code over the whole table,
//     then replace every code below the threshold with the sentinel label.
//
// Phase 2 needs the final tally, so it only starts once phase 1 has seen
// every record.

import (
	"sort"
	"strings"
	"sync"

	"github.com/biter777/countries"

	"github.com/JonMunkholm/salaries/internal/schema"
)

// Experience tiers in display order.
const (
	LevelJunior   = "Junior"
	LevelMiddle   = "Middle"
	LevelSenior   = "Senior"
	LevelDirector = "Director"
)

// DefaultOtherThreshold is the minimum residence frequency that keeps its own bucket.
const DefaultOtherThreshold = 5

// DefaultOtherLabel replaces residence codes below the threshold.
const DefaultOtherLabel = "Less than 5 employees per country"

// ExperienceLevelLabels decodes experience_level codes.
var ExperienceLevelLabels = map[string]string{
	"EN": LevelJunior,
	"MI": LevelMiddle,
	"SE": LevelSenior,
	"EX": LevelDirector,
}

// EmploymentTypeLabels decodes employment_type codes.
var EmploymentTypeLabels = map[string]string{
	"PT": "Part-time",
	"FT": "Full-time",
	"CT": "Contract",
	"FL": "Freelance",
}

// ExperienceOrder lists experience labels from least to most senior.
var ExperienceOrder = []string{LevelJunior, LevelMiddle, LevelSenior, LevelDirector}

// CleanOptions configures the frequency-based residence grouping.
type CleanOptions struct {
	OtherThreshold int
	OtherLabel     string
}

// DefaultCleanOptions returns the standard threshold and sentinel label.
func DefaultCleanOptions() CleanOptions {
	return CleanOptions{
		OtherThreshold: DefaultOtherThreshold,
		OtherLabel:     DefaultOtherLabel,
	}
}

// DecodeExperienceLevel maps EN/MI/SE/EX to its label.
func DecodeExperienceLevel(code string) (string, error) {
	return decode(schema.ColExperienceLevel, code, ExperienceLevelLabels)
}

// DecodeEmploymentType maps PT/FT/CT/FL to its label.
func DecodeEmploymentType(code string) (string, error) {
	return decode(schema.ColEmploymentType, code, EmploymentTypeLabels)
}

func decode(field, code string, labels map[string]string) (string, error) {
	if label, ok := labels[code]; ok {
		return label, nil
	}
	return "", newDataError(KindUnknownCategory, field, code, "expected one of "+strings.Join(sortedKeys(labels), ", "))
}

// alpha2Index maps every assigned ISO-3166 alpha-2 code to its alpha-3 code.
var alpha2Index = sync.OnceValue(func() map[string]string {
	idx := make(map[string]string)
	for _, c := range countries.All() {
		if a2, a3 := c.Alpha2(), c.Alpha3(); len(a2) == 2 && len(a3) == 3 {
			idx[a2] = a3
		}
	}
	return idx
})

// CountryISO3 translates an ISO-3166 alpha-2 code to alpha-3.
// There is no fallback: anything that is not an assigned alpha-2 code is an error.
func CountryISO3(alpha2 string) (string, error) {
	code := strings.ToUpper(strings.TrimSpace(alpha2))
	if iso3, ok := alpha2Index()[code]; ok {
		return iso3, nil
	}
	return "", newDataError(KindUnknownCountry, schema.ColEmployeeResidence, alpha2, "no ISO-3166 alpha-3 equivalent")
}

// ResidenceFrequencies counts records per alpha-3 residence code.
func ResidenceFrequencies(records []CleanRecord) map[string]int {
	freq := make(map[string]int)
	for _, rec := range records {
		freq[rec.ResidenceISO3]++
	}
	return freq
}

// GroupResidence returns iso3 unless its frequency is below the threshold,
// in which case it returns the sentinel label.
func GroupResidence(iso3 string, freq map[string]int, opts CleanOptions) string {
	if freq[iso3] < opts.OtherThreshold {
		return opts.OtherLabel
	}
	return iso3
}

// Clean produces a new CleanTable from raw. raw is not modified. The first
// unknown code aborts cleaning; no partial table is returned.
func Clean(raw *RawTable, opts CleanOptions) (*CleanTable, error) {
	if opts.OtherLabel == "" {
		opts.OtherLabel = DefaultOtherLabel
	}

	out := &CleanTable{
		Records:        make([]CleanRecord, 0, raw.Len()),
		OtherLabel:     opts.OtherLabel,
		OtherThreshold: opts.OtherThreshold,
	}

	iso3Cache := make(map[string]string)

	// Phase 1: per-record decoding.
	for _, rec := range raw.Records {
		level, err := DecodeExperienceLevel(rec.ExperienceLevel)
		if err != nil {
			return nil, atLine(err, rec.Line)
		}
		employment, err := DecodeEmploymentType(rec.EmploymentType)
		if err != nil {
			return nil, atLine(err, rec.Line)
		}

		iso3, ok := iso3Cache[rec.EmployeeResidence]
		if !ok {
			iso3, err = CountryISO3(rec.EmployeeResidence)
			if err != nil {
				return nil, atLine(err, rec.Line)
			}
			iso3Cache[rec.EmployeeResidence] = iso3
		}

		out.Records = append(out.Records, CleanRecord{
			WorkYear:          rec.WorkYear,
			ExperienceLevel:   level,
			EmploymentType:    employment,
			JobTitle:          rec.JobTitle,
			SalaryInUSD:       rec.SalaryInUSD,
			EmployeeResidence: rec.EmployeeResidence,
			RemoteRatio:       rec.RemoteRatio,
			CompanyLocation:   rec.CompanyLocation,
			CompanySize:       rec.CompanySize,
			ResidenceISO3:     iso3,
		})
	}

	// Phase 2: dataset-wide frequency grouping.
	freq := ResidenceFrequencies(out.Records)
	for i := range out.Records {
		out.Records[i].ResidenceGrouped = GroupResidence(out.Records[i].ResidenceISO3, freq, opts)
	}

	return out, nil
}

func atLine(err error, line int) error {
	if de, ok := AsDataError(err); ok {
		de.Line = line
	}
	return err
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
