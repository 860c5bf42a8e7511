package views_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/JonMunkholm/salaries/internal/core"
	"github.com/JonMunkholm/salaries/internal/core/views"
)

func table() *core.CleanTable {
	rec := func(level, title, size, location, iso3, grouped string, remote int, salary float64) core.CleanRecord {
		return core.CleanRecord{
			WorkYear: 2022, ExperienceLevel: level, EmploymentType: "Full-time", JobTitle: title,
			SalaryInUSD: salary, EmployeeResidence: iso3[:2], RemoteRatio: remote,
			CompanyLocation: location, CompanySize: size, ResidenceISO3: iso3, ResidenceGrouped: grouped,
		}
	}
	return &core.CleanTable{
		OtherLabel:     "other",
		OtherThreshold: 2,
		Records: []core.CleanRecord{
			rec("Senior", "Data Scientist", "L", "US", "USA", "USA", 100, 200000),
			rec("Senior", "Data Scientist", "S", "US", "USA", "USA", 100, 100000),
			rec("Junior", "Data Analyst", "S", "DE", "DEU", "other", 0, 40000),
			rec("Director", "Head of Data", "M", "GB", "GBR", "other", 50, 160000),
		},
	}
}

type row struct {
	Category string
	Value    float64
}

func rows(groups []core.Group) []row {
	out := make([]row, len(groups))
	for i, g := range groups {
		out[i] = row{g.Category, g.Value}
	}
	return out
}

func TestViews(t *testing.T) {
	tests := []struct {
		key   string
		group string
		want  []row
	}{
		{
			key:   "job_title_counts",
			group: views.GroupDistribution,
			want:  []row{{"Data Scientist", 2}, {"Data Analyst", 1}, {"Head of Data", 1}},
		},
		{
			key:   "residence_map",
			group: views.GroupDistribution,
			want:  []row{{"USA", 2}},
		},
		{
			key:   "salary_by_job_title",
			group: views.GroupSalary,
			want:  []row{{"Data Analyst", 40000}, {"Data Scientist", 150000}, {"Head of Data", 160000}},
		},
		{
			key:   "salary_by_company_location",
			group: views.GroupSalary,
			want:  []row{{"DE", 40000}, {"GB", 160000}, {"US", 150000}},
		},
		{
			key:   "remote_ratio_by_experience",
			group: views.GroupRemote,
			want:  []row{{"Junior", 0}, {"Senior", 100}, {"Director", 50}},
		},
		{
			key:   "remote_ratio_by_company_size",
			group: views.GroupRemote,
			want:  []row{{"S", 50}, {"M", 50}, {"L", 100}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			v, err := core.BuildView(tt.key, table())
			if err != nil {
				t.Fatalf("BuildView(%q) error = %v", tt.key, err)
			}
			if v.Info.Group != tt.group {
				t.Errorf("Group = %q, want %q", v.Info.Group, tt.group)
			}
			if diff := cmp.Diff(tt.want, rows(v.Groups)); diff != "" {
				t.Errorf("BuildView(%q) mismatch (-want +got):\n%s", tt.key, diff)
			}
		})
	}
}

func TestViewsByGroup(t *testing.T) {
	total := 0
	for _, g := range core.ViewGroups() {
		defs := core.ViewsByGroup(g)
		if len(defs) == 0 {
			t.Errorf("ViewsByGroup(%q) is empty", g)
		}
		total += len(defs)
	}
	if total != core.ViewCount() {
		t.Errorf("views across groups = %d, want %d", total, core.ViewCount())
	}
	if diff := cmp.Diff([]string{views.GroupDistribution, views.GroupRemote, views.GroupSalary}, core.ViewGroups()); diff != "" {
		t.Errorf("ViewGroups() mismatch (-want +got):\n%s", diff)
	}
}
