package core

import (
	"time"

	"github.com/JonMunkholm/salaries/internal/schema"
)

// HeaderIndex maps column names (lowercase) to their position in the CSV row.
type HeaderIndex map[string]int

// Record is one row of the raw salaries file.
type Record struct {
	Line              int // 1-indexed CSV line, for error reporting
	WorkYear          int
	ExperienceLevel   string // EN, MI, SE, EX
	EmploymentType    string // PT, FT, CT, FL
	JobTitle          string
	Salary            float64 // original currency
	SalaryCurrency    string
	SalaryInUSD       float64
	EmployeeResidence string // ISO-3166 alpha-2
	RemoteRatio       int    // 0, 50 or 100
	CompanyLocation   string
	CompanySize       string // S, M, L
}

// RawTable is the dataset exactly as loaded.
type RawTable struct {
	Source   string
	LoadedAt time.Time
	Records  []Record
}

// Len returns the number of records.
func (t *RawTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Records)
}

// Head returns at most n leading records.
func (t *RawTable) Head(n int) []Record {
	if n > len(t.Records) {
		n = len(t.Records)
	}
	if n < 0 {
		n = 0
	}
	return t.Records[:n]
}

// CleanRecord is a Record after cleaning: salary and salary_currency are
// gone, coded enumerations are decoded, and the residence columns are added.
type CleanRecord struct {
	WorkYear          int     `json:"work_year"`
	ExperienceLevel   string  `json:"experience_level"`
	EmploymentType    string  `json:"employment_type"`
	JobTitle          string  `json:"job_title"`
	SalaryInUSD       float64 `json:"salary_in_usd"`
	EmployeeResidence string  `json:"employee_residence"`
	RemoteRatio       int     `json:"remote_ratio"`
	CompanyLocation   string  `json:"company_location"`
	CompanySize       string  `json:"company_size"`
	ResidenceISO3     string  `json:"employee_residence_iso_3"`
	ResidenceGrouped  string  `json:"employee_residence_grouped"`
}

// CleanTable is the read-only output of Clean. It has no raw columns, so it
// cannot be fed back into Clean.
type CleanTable struct {
	Records        []CleanRecord
	OtherLabel     string // sentinel used in ResidenceGrouped
	OtherThreshold int
}

// Len returns the number of records.
func (t *CleanTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Records)
}

// Head returns at most n leading records.
func (t *CleanTable) Head(n int) []CleanRecord {
	if n > len(t.Records) {
		n = len(t.Records)
	}
	if n < 0 {
		n = 0
	}
	return t.Records[:n]
}

// Filter returns a new table holding the records for which keep is true.
func (t *CleanTable) Filter(keep func(CleanRecord) bool) *CleanTable {
	out := &CleanTable{OtherLabel: t.OtherLabel, OtherThreshold: t.OtherThreshold}
	for _, rec := range t.Records {
		if keep(rec) {
			out.Records = append(out.Records, rec)
		}
	}
	return out
}

// Columns returns the column names of a cleaned table in output order.
func (t *CleanTable) Columns() []string {
	return schema.CleanColumns
}
