package core

import (
	"errors"
	"math"
	"testing"
)

func TestPercentageDifference(t *testing.T) {
	tests := []struct {
		name string
		a, b float64
		want int
	}{
		{name: "double", a: 100, b: 50, want: 100},
		{name: "half again", a: 150, b: 100, want: 50},
		{name: "argument order ignored", a: 50, b: 100, want: 100},
		{name: "equal means", a: 80000, b: 80000, want: 0},
		{name: "rounds to nearest", a: 80000, b: 50000, want: 60},
		{name: "rounds down", a: 100.4, b: 100, want: 0},
		{name: "rounds up", a: 100.6, b: 100, want: 1},
		{name: "fractional means", a: 0.75, b: 0.5, want: 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := PercentageDifference(tt.a, tt.b)
			if err != nil {
				t.Fatalf("PercentageDifference(%v, %v) error = %v", tt.a, tt.b, err)
			}
			if got != tt.want {
				t.Errorf("PercentageDifference(%v, %v) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestPercentageDifference_Symmetric(t *testing.T) {
	pairs := [][2]float64{{1, 3}, {123456, 98765}, {0.5, 0.25}, {7, 7}}
	for _, p := range pairs {
		ab, errAB := PercentageDifference(p[0], p[1])
		ba, errBA := PercentageDifference(p[1], p[0])
		if errAB != nil || errBA != nil {
			t.Fatalf("PercentageDifference(%v) errors = %v, %v", p, errAB, errBA)
		}
		if ab != ba {
			t.Errorf("PercentageDifference(%v, %v) = %d but reversed = %d", p[0], p[1], ab, ba)
		}
		if ab < 0 {
			t.Errorf("PercentageDifference(%v, %v) = %d, want non-negative", p[0], p[1], ab)
		}
	}
}

func TestPercentageDifference_Errors(t *testing.T) {
	if _, err := PercentageDifference(100, 0); !errors.Is(err, ErrDivisionByZero) {
		t.Errorf("PercentageDifference(100, 0) error = %v, want ErrDivisionByZero", err)
	}
	if _, err := PercentageDifference(0, 0); !errors.Is(err, ErrDivisionByZero) {
		t.Errorf("PercentageDifference(0, 0) error = %v, want ErrDivisionByZero", err)
	}
	if _, err := PercentageDifference(math.NaN(), 1); !errors.Is(err, ErrInsufficientData) {
		t.Errorf("PercentageDifference(NaN, 1) error = %v, want ErrInsufficientData", err)
	}
	for _, pair := range [][2]float64{{100000, -50000}, {-50000, 100000}, {-1, -2}} {
		got, err := PercentageDifference(pair[0], pair[1])
		if !errors.Is(err, ErrMalformedInput) {
			t.Errorf("PercentageDifference(%v, %v) = %d, %v, want ErrMalformedInput", pair[0], pair[1], got, err)
		}
	}
}

// hypothesisTable builds the reference scenario: fully remote Senior/Director
// earn 200000 at L and 100000 at S, Junior/Middle earn 80000 at L and 50000
// at S. Non-remote and M records are noise that must be excluded.
func hypothesisTable() *CleanTable {
	return &CleanTable{Records: []CleanRecord{
		cleanRecord(LevelSenior, "L", 100, 150000),
		cleanRecord(LevelDirector, "L", 100, 250000),
		cleanRecord(LevelSenior, "S", 100, 100000),
		cleanRecord(LevelJunior, "L", 100, 80000),
		cleanRecord(LevelMiddle, "S", 100, 40000),
		cleanRecord(LevelJunior, "S", 100, 60000),

		cleanRecord(LevelSenior, "M", 100, 999999),
		cleanRecord(LevelSenior, "S", 50, 1),
		cleanRecord(LevelJunior, "L", 0, 999999),
	}}
}

func TestCompareCohorts(t *testing.T) {
	result, err := CompareCohorts(hypothesisTable())
	if err != nil {
		t.Fatalf("CompareCohorts() error = %v", err)
	}

	if result.RemoteRecords != 7 {
		t.Errorf("RemoteRecords = %d, want 7", result.RemoteRecords)
	}

	tests := []struct {
		name      string
		got       CohortComparison
		cohort    Cohort
		large     float64
		small     float64
		largeN    int
		smallN    int
		wantDiff  int
		wantLarge bool
	}{
		{
			name: "senior/director", got: result.SeniorDirector, cohort: CohortSeniorDirector,
			large: 200000, small: 100000, largeN: 2, smallN: 1, wantDiff: 100, wantLarge: true,
		},
		{
			name: "junior/middle", got: result.JuniorMiddle, cohort: CohortJuniorMiddle,
			large: 80000, small: 50000, largeN: 1, smallN: 2, wantDiff: 60, wantLarge: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := tt.got
			if c.Cohort != tt.cohort {
				t.Errorf("Cohort = %q, want %q", c.Cohort, tt.cohort)
			}
			if c.Large.MeanSalary != tt.large || c.Large.Count != tt.largeN {
				t.Errorf("Large = %+v, want mean %v over %d", c.Large, tt.large, tt.largeN)
			}
			if c.Small.MeanSalary != tt.small || c.Small.Count != tt.smallN {
				t.Errorf("Small = %+v, want mean %v over %d", c.Small, tt.small, tt.smallN)
			}
			if c.PercentDifference != tt.wantDiff {
				t.Errorf("PercentDifference = %d, want %d", c.PercentDifference, tt.wantDiff)
			}
			if c.LargeEarnsMore != tt.wantLarge {
				t.Errorf("LargeEarnsMore = %v, want %v", c.LargeEarnsMore, tt.wantLarge)
			}
		})
	}

	if !result.Supported() {
		t.Error("Supported() = false, want true")
	}
}

func TestCompareCohorts_SmallEarnsMore(t *testing.T) {
	table := &CleanTable{Records: []CleanRecord{
		cleanRecord(LevelSenior, "L", 100, 100000),
		cleanRecord(LevelSenior, "S", 100, 150000),
		cleanRecord(LevelJunior, "L", 100, 60000),
		cleanRecord(LevelJunior, "S", 100, 50000),
	}}

	result, err := CompareCohorts(table)
	if err != nil {
		t.Fatalf("CompareCohorts() error = %v", err)
	}
	if result.SeniorDirector.LargeEarnsMore {
		t.Error("SeniorDirector.LargeEarnsMore = true, want false")
	}
	if result.SeniorDirector.PercentDifference != 50 {
		t.Errorf("SeniorDirector.PercentDifference = %d, want 50", result.SeniorDirector.PercentDifference)
	}
	if result.Supported() {
		t.Error("Supported() = true, want false")
	}
}

func TestCompareCohorts_InsufficientData(t *testing.T) {
	tests := []struct {
		name    string
		records []CleanRecord
	}{
		{
			name: "no small junior/middle",
			records: []CleanRecord{
				cleanRecord(LevelSenior, "L", 100, 1),
				cleanRecord(LevelSenior, "S", 100, 1),
				cleanRecord(LevelJunior, "L", 100, 1),
			},
		},
		{
			name: "large only present when not fully remote",
			records: []CleanRecord{
				cleanRecord(LevelSenior, "L", 50, 1),
				cleanRecord(LevelSenior, "S", 100, 1),
				cleanRecord(LevelJunior, "L", 100, 1),
				cleanRecord(LevelJunior, "S", 100, 1),
			},
		},
		{
			name:    "empty table",
			records: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CompareCohorts(&CleanTable{Records: tt.records})
			if !errors.Is(err, ErrInsufficientData) {
				t.Errorf("CompareCohorts() error = %v, want ErrInsufficientData", err)
			}
		})
	}
}

func TestCompareCohorts_ZeroMean(t *testing.T) {
	table := &CleanTable{Records: []CleanRecord{
		cleanRecord(LevelSenior, "L", 100, 100),
		cleanRecord(LevelSenior, "S", 100, 0),
		cleanRecord(LevelJunior, "L", 100, 1),
		cleanRecord(LevelJunior, "S", 100, 1),
	}}

	if _, err := CompareCohorts(table); !errors.Is(err, ErrDivisionByZero) {
		t.Errorf("CompareCohorts() error = %v, want ErrDivisionByZero", err)
	}
}

func TestCohortContains(t *testing.T) {
	for _, level := range ExperienceOrder {
		inSenior := CohortSeniorDirector.Contains(level)
		inJunior := CohortJuniorMiddle.Contains(level)
		if inSenior == inJunior {
			t.Errorf("%s belongs to both or neither cohort", level)
		}
	}
}

func TestCohortComparisonSummary(t *testing.T) {
	tests := []struct {
		name string
		c    CohortComparison
		want string
	}{
		{
			name: "large earns more",
			c: CohortComparison{Cohort: CohortSeniorDirector, PercentDifference: 47, LargeEarnsMore: true,
				Large: Leaf{MeanSalary: 147}, Small: Leaf{MeanSalary: 100}},
			want: "Senior/Director in large companies earn 47% more than in small companies.",
		},
		{
			name: "small earns more",
			c: CohortComparison{Cohort: CohortJuniorMiddle, PercentDifference: 10,
				Large: Leaf{MeanSalary: 100}, Small: Leaf{MeanSalary: 110}},
			want: "Junior/Middle in small companies earn 10% more than in large companies.",
		},
		{
			name: "equal",
			c: CohortComparison{Cohort: CohortJuniorMiddle,
				Large: Leaf{MeanSalary: 100}, Small: Leaf{MeanSalary: 100}},
			want: "Junior/Middle in large and small companies earn the same on average.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.c.Summary(); got != tt.want {
				t.Errorf("Summary() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestHypothesisConclusion(t *testing.T) {
	result, err := CompareCohorts(hypothesisTable())
	if err != nil {
		t.Fatalf("CompareCohorts() error = %v", err)
	}
	want := "The hypothesis holds: large companies pay fully remote Seniors and Directors 100% more " +
		"and Juniors and Middles 60% more than small companies."
	if got := result.Conclusion(); got != want {
		t.Errorf("Conclusion() = %q, want %q", got, want)
	}
}
