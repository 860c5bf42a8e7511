package core

// hypothesis.go checks whether fully remote employees of large companies
// earn more than those of small companies, within two experience cohorts.
//
// The pipeline is filter -> partition -> reduce:
//  1. keep records with remote_ratio == 100
//  2. split into Senior/Director and Junior/Middle cohorts
//  3. within each cohort keep company_size L and S (M is excluded)
//  4. average salary_in_usd per leaf and compare L against S

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/JonMunkholm/salaries/internal/schema"
)

// FullyRemote is the remote_ratio of fully remote positions.
const FullyRemote = 100

// HypothesisStatement is the claim CompareCohorts tests.
const HypothesisStatement = "Seniors and Directors working fully remotely (remote_ratio = 100) in large " +
	"companies earn more than those with similar experience in small companies, " +
	"and the same holds for Juniors and Middles."

// Cohort is a disjoint set of experience tiers.
type Cohort string

const (
	CohortSeniorDirector Cohort = "Senior/Director"
	CohortJuniorMiddle   Cohort = "Junior/Middle"
)

// Cohorts lists the compared cohorts in report order.
var Cohorts = []Cohort{CohortSeniorDirector, CohortJuniorMiddle}

// Levels returns the experience labels that make up the cohort.
func (c Cohort) Levels() []string {
	switch c {
	case CohortSeniorDirector:
		return []string{LevelSenior, LevelDirector}
	case CohortJuniorMiddle:
		return []string{LevelJunior, LevelMiddle}
	default:
		return nil
	}
}

// Contains reports whether the experience label belongs to the cohort.
func (c Cohort) Contains(level string) bool {
	for _, l := range c.Levels() {
		if l == level {
			return true
		}
	}
	return false
}

// Leaf is a cohort restricted to one company size.
type Leaf struct {
	Cohort      Cohort  `json:"cohort"`
	CompanySize string  `json:"company_size"`
	Count       int     `json:"count"`
	MeanSalary  float64 `json:"mean_salary"`
}

// CohortComparison holds the L and S leaves of one cohort and how far apart
// their means are.
type CohortComparison struct {
	Cohort            Cohort `json:"cohort"`
	Large             Leaf   `json:"large"`
	Small             Leaf   `json:"small"`
	PercentDifference int    `json:"percent_difference"`
	LargeEarnsMore    bool   `json:"large_earns_more"`
}

// HypothesisResult is the outcome of CompareCohorts.
type HypothesisResult struct {
	RemoteRatio    int              `json:"remote_ratio"`
	RemoteRecords  int              `json:"remote_records"`
	SeniorDirector CohortComparison `json:"senior_director"`
	JuniorMiddle   CohortComparison `json:"junior_middle"`
}

// Supported reports whether large companies pay more in both cohorts.
func (h *HypothesisResult) Supported() bool {
	return h.SeniorDirector.LargeEarnsMore && h.JuniorMiddle.LargeEarnsMore
}

// Conclusion summarizes the outcome in one sentence.
func (h *HypothesisResult) Conclusion() string {
	if h.Supported() {
		return fmt.Sprintf("The hypothesis holds: large companies pay fully remote Seniors and Directors %d%% more "+
			"and Juniors and Middles %d%% more than small companies.",
			h.SeniorDirector.PercentDifference, h.JuniorMiddle.PercentDifference)
	}
	return "The hypothesis does not hold: " + h.SeniorDirector.Summary() + " " + h.JuniorMiddle.Summary()
}

// Summary describes the comparison in one sentence.
func (c CohortComparison) Summary() string {
	if c.Large.MeanSalary == c.Small.MeanSalary {
		return fmt.Sprintf("%s in large and small companies earn the same on average.", c.Cohort)
	}
	more, less := "large", "small"
	if !c.LargeEarnsMore {
		more, less = less, more
	}
	return fmt.Sprintf("%s in %s companies earn %d%% more than in %s companies.", c.Cohort, more, c.PercentDifference, less)
}

// Comparisons returns both cohort comparisons in report order.
func (h *HypothesisResult) Comparisons() []CohortComparison {
	return []CohortComparison{h.SeniorDirector, h.JuniorMiddle}
}

// CompareCohorts runs the remote-work comparison over a cleaned table.
// An empty leaf is reported as ErrInsufficientData.
func CompareCohorts(t *CleanTable) (*HypothesisResult, error) {
	remote := t.Filter(func(r CleanRecord) bool { return r.RemoteRatio == FullyRemote })

	result := &HypothesisResult{
		RemoteRatio:   FullyRemote,
		RemoteRecords: remote.Len(),
	}

	var err error
	if result.SeniorDirector, err = compareCohort(remote, CohortSeniorDirector); err != nil {
		return nil, err
	}
	if result.JuniorMiddle, err = compareCohort(remote, CohortJuniorMiddle); err != nil {
		return nil, err
	}
	return result, nil
}

func compareCohort(remote *CleanTable, cohort Cohort) (CohortComparison, error) {
	members := remote.Filter(func(r CleanRecord) bool { return cohort.Contains(r.ExperienceLevel) })

	large, err := leafMean(members, cohort, schema.CompanyLarge)
	if err != nil {
		return CohortComparison{}, err
	}
	small, err := leafMean(members, cohort, schema.CompanySmall)
	if err != nil {
		return CohortComparison{}, err
	}

	diff, err := PercentageDifference(large.MeanSalary, small.MeanSalary)
	if err != nil {
		return CohortComparison{}, fmt.Errorf("%s cohort: %w", cohort, err)
	}

	return CohortComparison{
		Cohort:            cohort,
		Large:             large,
		Small:             small,
		PercentDifference: diff,
		LargeEarnsMore:    large.MeanSalary > small.MeanSalary,
	}, nil
}

func leafMean(members *CleanTable, cohort Cohort, size string) (Leaf, error) {
	salaries := SalaryValues(members, func(r CleanRecord) bool { return r.CompanySize == size })
	if len(salaries) == 0 {
		return Leaf{}, newDataError(KindInsufficientData, string(cohort)+" "+size, "",
			"no fully remote records for this cohort and company size")
	}
	return Leaf{
		Cohort:      cohort,
		CompanySize: size,
		Count:       len(salaries),
		MeanSalary:  stat.Mean(salaries, nil),
	}, nil
}

// PercentageDifference returns round(hi/lo*100 - 100) where hi and lo are the
// larger and smaller of a and b, so the result does not depend on argument
// order. Halves round to even. lo == 0 is reported as ErrDivisionByZero and
// a negative mean as ErrMalformedInput.
func PercentageDifference(a, b float64) (int, error) {
	if math.IsNaN(a) || math.IsNaN(b) || math.IsInf(a, 0) || math.IsInf(b, 0) {
		return 0, newDataError(KindInsufficientData, "percentage difference", fmt.Sprintf("%v, %v", a, b), "means must be finite")
	}
	hi, lo := math.Max(a, b), math.Min(a, b)
	if lo == 0 {
		return 0, newDataError(KindDivisionByZero, "percentage difference", "", "smaller mean is zero")
	}
	if lo < 0 {
		return 0, newDataError(KindMalformedInput, "percentage difference", fmt.Sprintf("%v", lo), "negative amount")
	}
	return int(math.RoundToEven(hi/lo*100 - 100)), nil
}
