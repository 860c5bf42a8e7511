package core

import (
	"fmt"
	"math"
	"sort"
	"strconv"

	"gonum.org/v1/gonum/stat"
)

// Stat is the reduction applied to a measure within each group.
type Stat string

const (
	StatMean   Stat = "mean"
	StatMedian Stat = "median"
	StatCount  Stat = "count"
)

// Dimension is a categorical column of a cleaned table.
type Dimension struct {
	Name    string
	Numeric bool // categories are integers and sort numerically
	Key     func(CleanRecord) string
}

// Measure is a numeric column of a cleaned table.
type Measure struct {
	Name  string
	Value func(CleanRecord) float64
}

// Dimensions over CleanRecord.
var (
	DimResidenceGrouped = Dimension{Name: "employee_residence_grouped", Key: func(r CleanRecord) string { return r.ResidenceGrouped }}
	DimResidenceISO3    = Dimension{Name: "employee_residence_iso_3", Key: func(r CleanRecord) string { return r.ResidenceISO3 }}
	DimWorkYear         = Dimension{Name: "work_year", Numeric: true, Key: func(r CleanRecord) string { return strconv.Itoa(r.WorkYear) }}
	DimCompanySize      = Dimension{Name: "company_size", Key: func(r CleanRecord) string { return r.CompanySize }}
	DimExperienceLevel  = Dimension{Name: "experience_level", Key: func(r CleanRecord) string { return r.ExperienceLevel }}
	DimEmploymentType   = Dimension{Name: "employment_type", Key: func(r CleanRecord) string { return r.EmploymentType }}
	DimRemoteRatio      = Dimension{Name: "remote_ratio", Numeric: true, Key: func(r CleanRecord) string { return strconv.Itoa(r.RemoteRatio) }}
	DimJobTitle         = Dimension{Name: "job_title", Key: func(r CleanRecord) string { return r.JobTitle }}
	DimCompanyLocation  = Dimension{Name: "company_location", Key: func(r CleanRecord) string { return r.CompanyLocation }}
)

// Measures over CleanRecord.
var (
	MeasureSalaryUSD   = Measure{Name: "salary_in_usd", Value: func(r CleanRecord) float64 { return r.SalaryInUSD }}
	MeasureRemoteRatio = Measure{Name: "remote_ratio", Value: func(r CleanRecord) float64 { return float64(r.RemoteRatio) }}
)

// Group is one output row of Aggregate.
type Group struct {
	Category string  `json:"category"`
	Value    float64 `json:"value"`
	Count    int     `json:"count"`
}

// Aggregate groups t by dim and reduces measure with s. It returns one Group
// per distinct category, sorted by category (numerically for numeric
// dimensions). An empty table yields no groups.
func Aggregate(t *CleanTable, dim Dimension, measure Measure, s Stat) ([]Group, error) {
	switch s {
	case StatMean, StatMedian, StatCount:
	default:
		return nil, fmt.Errorf("unknown statistic %q", s)
	}

	buckets := make(map[string][]float64)
	var order []string
	for _, rec := range t.Records {
		key := dim.Key(rec)
		if _, seen := buckets[key]; !seen {
			order = append(order, key)
		}
		buckets[key] = append(buckets[key], measure.Value(rec))
	}

	groups := make([]Group, 0, len(order))
	for _, key := range order {
		values := buckets[key]
		g := Group{Category: key, Count: len(values)}
		switch s {
		case StatMean:
			g.Value = stat.Mean(values, nil)
		case StatMedian:
			g.Value = Median(values)
		case StatCount:
			g.Value = float64(len(values))
		}
		groups = append(groups, g)
	}

	sortGroups(groups, dim.Numeric)
	return groups, nil
}

func sortGroups(groups []Group, numeric bool) {
	sort.SliceStable(groups, func(i, j int) bool {
		if numeric {
			a, errA := strconv.Atoi(groups[i].Category)
			b, errB := strconv.Atoi(groups[j].Category)
			if errA == nil && errB == nil {
				return a < b
			}
		}
		return groups[i].Category < groups[j].Category
	})
}

// OrderBy returns groups rearranged so that categories listed in order come
// first, in that order; remaining groups follow in their existing order.
func OrderBy(groups []Group, order []string) []Group {
	rank := make(map[string]int, len(order))
	for i, c := range order {
		rank[c] = i
	}
	out := make([]Group, len(groups))
	copy(out, groups)
	sort.SliceStable(out, func(i, j int) bool {
		ri, okI := rank[out[i].Category]
		rj, okJ := rank[out[j].Category]
		switch {
		case okI && okJ:
			return ri < rj
		case okI != okJ:
			return okI
		default:
			return false
		}
	})
	return out
}

// SortByValueDesc orders groups by value, largest first; ties by category.
func SortByValueDesc(groups []Group) []Group {
	out := make([]Group, len(groups))
	copy(out, groups)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Value != out[j].Value {
			return out[i].Value > out[j].Value
		}
		return out[i].Category < out[j].Category
	})
	return out
}

// Median returns the median of values, averaging the middle pair for even
// lengths. values is not modified. Returns NaN for no values.
func Median(values []float64) float64 {
	return Quantile(values, 0.5)
}

// Quantile returns the p-quantile of values using linear interpolation
// between closest ranks (the convention of pandas and R type 7).
// values is not modified. Returns NaN for no values.
func Quantile(values []float64, p float64) float64 {
	n := len(values)
	if n == 0 {
		return math.NaN()
	}
	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	pos := p * float64(n-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo] + (sorted[hi]-sorted[lo])*frac
}
