package core

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func cleanRecord(level, size string, remote int, salary float64) CleanRecord {
	return CleanRecord{
		WorkYear:         2021,
		ExperienceLevel:  level,
		EmploymentType:   "Full-time",
		JobTitle:         "Data Scientist",
		SalaryInUSD:      salary,
		RemoteRatio:      remote,
		CompanySize:      size,
		ResidenceISO3:    "USA",
		ResidenceGrouped: "USA",
	}
}

func TestAggregate(t *testing.T) {
	table := &CleanTable{Records: []CleanRecord{
		cleanRecord(LevelSenior, "L", 100, 100),
		cleanRecord(LevelSenior, "S", 100, 300),
		cleanRecord(LevelJunior, "L", 0, 50),
		cleanRecord(LevelDirector, "M", 50, 1000),
		cleanRecord(LevelSenior, "M", 0, 200),
	}}

	tests := []struct {
		name string
		dim  Dimension
		stat Stat
		want []Group
	}{
		{
			name: "mean by experience",
			dim:  DimExperienceLevel,
			stat: StatMean,
			want: []Group{
				{Category: LevelDirector, Value: 1000, Count: 1},
				{Category: LevelJunior, Value: 50, Count: 1},
				{Category: LevelSenior, Value: 200, Count: 3},
			},
		},
		{
			name: "median by company size",
			dim:  DimCompanySize,
			stat: StatMedian,
			want: []Group{
				{Category: "L", Value: 75, Count: 2},
				{Category: "M", Value: 600, Count: 2},
				{Category: "S", Value: 300, Count: 1},
			},
		},
		{
			name: "count by remote ratio sorts numerically",
			dim:  DimRemoteRatio,
			stat: StatCount,
			want: []Group{
				{Category: "0", Value: 2, Count: 2},
				{Category: "50", Value: 1, Count: 1},
				{Category: "100", Value: 2, Count: 2},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Aggregate(table, tt.dim, MeasureSalaryUSD, tt.stat)
			if err != nil {
				t.Fatalf("Aggregate() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Aggregate() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestAggregate_OneRowPerCategory(t *testing.T) {
	var records []CleanRecord
	for i := 0; i < 50; i++ {
		size := []string{"S", "M", "L"}[i%3]
		records = append(records, cleanRecord(LevelMiddle, size, 0, float64(1000+i)))
	}
	table := &CleanTable{Records: records}

	groups, err := Aggregate(table, DimCompanySize, MeasureSalaryUSD, StatMean)
	if err != nil {
		t.Fatalf("Aggregate() error = %v", err)
	}
	if len(groups) != 3 {
		t.Fatalf("len(groups) = %d, want 3", len(groups))
	}
	total := 0
	for _, g := range groups {
		total += g.Count
	}
	if total != len(records) {
		t.Errorf("group counts sum to %d, want %d", total, len(records))
	}
}

func TestAggregate_SingleRecordGroup(t *testing.T) {
	table := &CleanTable{Records: []CleanRecord{cleanRecord(LevelDirector, "L", 100, 412000)}}

	for _, s := range []Stat{StatMean, StatMedian} {
		groups, err := Aggregate(table, DimExperienceLevel, MeasureSalaryUSD, s)
		if err != nil {
			t.Fatalf("Aggregate(%s) error = %v", s, err)
		}
		if len(groups) != 1 || groups[0].Value != 412000 {
			t.Errorf("Aggregate(%s) = %+v, want one group of 412000", s, groups)
		}
	}
}

func TestAggregate_EmptyTableAndUnknownStat(t *testing.T) {
	groups, err := Aggregate(&CleanTable{}, DimCompanySize, MeasureSalaryUSD, StatMean)
	if err != nil || len(groups) != 0 {
		t.Errorf("Aggregate(empty) = %v, %v, want no groups", groups, err)
	}

	if _, err := Aggregate(&CleanTable{}, DimCompanySize, MeasureSalaryUSD, Stat("mode")); err == nil {
		t.Error("Aggregate(mode) error = nil, want unknown statistic")
	}
}

func TestOrderBy(t *testing.T) {
	groups := []Group{
		{Category: LevelDirector}, {Category: LevelJunior}, {Category: "Intern"},
		{Category: LevelSenior}, {Category: LevelMiddle},
	}

	got := OrderBy(groups, ExperienceOrder)
	want := []string{LevelJunior, LevelMiddle, LevelSenior, LevelDirector, "Intern"}

	var cats []string
	for _, g := range got {
		cats = append(cats, g.Category)
	}
	if diff := cmp.Diff(want, cats); diff != "" {
		t.Errorf("OrderBy() mismatch (-want +got):\n%s", diff)
	}
	if groups[0].Category != LevelDirector {
		t.Error("OrderBy() modified its input")
	}
}

func TestSortByValueDesc(t *testing.T) {
	got := SortByValueDesc([]Group{
		{Category: "b", Value: 1}, {Category: "a", Value: 1}, {Category: "c", Value: 5},
	})
	want := []Group{{Category: "c", Value: 5}, {Category: "a", Value: 1}, {Category: "b", Value: 1}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("SortByValueDesc() mismatch (-want +got):\n%s", diff)
	}
}

func TestQuantile(t *testing.T) {
	values := []float64{4, 1, 3, 2}

	tests := []struct {
		p    float64
		want float64
	}{
		{p: 0, want: 1},
		{p: 0.25, want: 1.75},
		{p: 0.5, want: 2.5},
		{p: 0.75, want: 3.25},
		{p: 1, want: 4},
	}
	for _, tt := range tests {
		if got := Quantile(values, tt.p); !cmp.Equal(got, tt.want, cmpopts.EquateApprox(0, 1e-9)) {
			t.Errorf("Quantile(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}

	if values[0] != 4 {
		t.Error("Quantile() sorted its input in place")
	}
	if got := Median(nil); !math.IsNaN(got) {
		t.Errorf("Median(nil) = %v, want NaN", got)
	}
	if got := Median([]float64{1, 2, 3}); got != 2 {
		t.Errorf("Median(1,2,3) = %v, want 2", got)
	}
}
