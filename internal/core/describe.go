package core

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/JonMunkholm/salaries/internal/schema"
)

// ColumnSummary holds the descriptive statistics of one numeric column.
type ColumnSummary struct {
	Column string  `json:"column"`
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Std    float64 `json:"std"`
	Min    float64 `json:"min"`
	Q25    float64 `json:"q25"`
	Median float64 `json:"median"`
	Q75    float64 `json:"q75"`
	Max    float64 `json:"max"`
}

// Describe summarizes the numeric columns of the raw table.
func Describe(t *RawTable) []ColumnSummary {
	columns := []struct {
		name  string
		value func(Record) float64
	}{
		{schema.ColWorkYear, func(r Record) float64 { return float64(r.WorkYear) }},
		{schema.ColSalary, func(r Record) float64 { return r.Salary }},
		{schema.ColSalaryInUSD, func(r Record) float64 { return r.SalaryInUSD }},
		{schema.ColRemoteRatio, func(r Record) float64 { return float64(r.RemoteRatio) }},
	}

	out := make([]ColumnSummary, 0, len(columns))
	for _, col := range columns {
		values := make([]float64, len(t.Records))
		for i, rec := range t.Records {
			values[i] = col.value(rec)
		}
		out = append(out, Summarize(col.name, values))
	}
	return out
}

// Summarize computes count, mean, sample standard deviation, min, quartiles
// and max. Std is 0 for fewer than two values and every field is 0 for none,
// so the summary always encodes as JSON.
func Summarize(name string, values []float64) ColumnSummary {
	s := ColumnSummary{Column: name, Count: len(values)}
	if len(values) == 0 {
		return s
	}
	s.Mean = stat.Mean(values, nil)
	if len(values) > 1 {
		s.Std = stat.StdDev(values, nil)
	}
	s.Min = floats.Min(values)
	s.Max = floats.Max(values)
	s.Q25 = Quantile(values, 0.25)
	s.Median = Quantile(values, 0.5)
	s.Q75 = Quantile(values, 0.75)
	return s
}

// ValueCounts counts records per category of dim, most frequent first.
func ValueCounts(t *CleanTable, dim Dimension) []Group {
	groups, _ := Aggregate(t, dim, MeasureSalaryUSD, StatCount)
	return SortByValueDesc(groups)
}

// SalaryValues returns salary_in_usd of every record, optionally restricted
// to records for which keep is true.
func SalaryValues(t *CleanTable, keep func(CleanRecord) bool) []float64 {
	var out []float64
	for _, rec := range t.Records {
		if keep == nil || keep(rec) {
			out = append(out, rec.SalaryInUSD)
		}
	}
	return out
}
