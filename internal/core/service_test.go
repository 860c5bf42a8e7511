package core_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/JonMunkholm/salaries/internal/core"
	_ "github.com/JonMunkholm/salaries/internal/core/views"
)

const serviceHeader = "work_year;experience_level;employment_type;job_title;salary;salary_currency;salary_in_usd;employee_residence;remote_ratio;company_location;company_size"

// serviceFixture holds fully remote L and S records for both cohorts plus
// enough US residents to keep their own residence bucket.
var serviceFixture = []string{
	"2021;SE;FT;Data Scientist;200000;USD;200000;US;100;US;L",
	"2021;EX;FT;Director of Data;200000;USD;200000;US;100;US;L",
	"2021;SE;FT;Data Scientist;100000;USD;100000;US;100;US;S",
	"2022;EN;FT;Data Analyst;80000;USD;80000;US;100;US;L",
	"2022;MI;FT;Data Analyst;50000;USD;50000;US;100;US;S",
	"2020;MI;CT;ML Engineer;60000;EUR;70000;DE;0;DE;M",
}

func writeFixture(t *testing.T, rows ...string) string {
	t.Helper()
	content := strings.Join(append([]string{serviceHeader}, rows...), "\n") + "\n"
	path := filepath.Join(t.TempDir(), "ds_salaries.csv")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestServiceRun(t *testing.T) {
	svc := core.NewService(core.DefaultOptions())
	path := writeFixture(t, serviceFixture...)

	report, err := svc.Run(context.Background(), path)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if report.RunID == "" {
		t.Error("RunID is empty")
	}
	if report.Source != "ds_salaries.csv" {
		t.Errorf("Source = %q, want ds_salaries.csv", report.Source)
	}
	if report.Raw.Len() != 6 || report.Clean.Len() != 6 {
		t.Errorf("Raw/Clean lengths = %d/%d, want 6/6", report.Raw.Len(), report.Clean.Len())
	}
	if len(report.Describe) != 4 {
		t.Errorf("len(Describe) = %d, want 4", len(report.Describe))
	}
	if len(report.Views) != core.ViewCount() {
		t.Errorf("len(Views) = %d, want %d", len(report.Views), core.ViewCount())
	}
	if report.HypothesisErr != nil {
		t.Fatalf("HypothesisErr = %v", report.HypothesisErr)
	}
	if got := report.Hypothesis.SeniorDirector.PercentDifference; got != 100 {
		t.Errorf("SeniorDirector.PercentDifference = %d, want 100", got)
	}
	if got := report.Hypothesis.JuniorMiddle.PercentDifference; got != 60 {
		t.Errorf("JuniorMiddle.PercentDifference = %d, want 60", got)
	}

	view, ok := report.View("salary_by_company_size")
	if !ok {
		t.Fatal("View(salary_by_company_size) not found")
	}
	var order []string
	for _, g := range view.Groups {
		order = append(order, g.Category)
	}
	if strings.Join(order, ",") != "S,M,L" {
		t.Errorf("salary_by_company_size order = %v, want S,M,L", order)
	}

	if svc.Latest() != report {
		t.Error("Latest() is not the report just produced")
	}
}

func TestServiceRun_HypothesisUnavailable(t *testing.T) {
	svc := core.NewService(core.DefaultOptions())
	// No small company records.
	path := writeFixture(t, serviceFixture[0], serviceFixture[1], serviceFixture[3])

	report, err := svc.Run(context.Background(), path)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !errors.Is(report.HypothesisErr, core.ErrInsufficientData) {
		t.Errorf("HypothesisErr = %v, want ErrInsufficientData", report.HypothesisErr)
	}
	if report.Hypothesis != nil {
		t.Errorf("Hypothesis = %+v, want nil", report.Hypothesis)
	}
	if len(report.Views) == 0 {
		t.Error("views were not built")
	}
}

func TestServiceRun_Errors(t *testing.T) {
	tests := []struct {
		name     string
		rows     []string
		wantErr  error
		wantCode string
	}{
		{
			name:     "unknown experience code",
			rows:     []string{"2021;ZZ;FT;Data Scientist;1;USD;1;US;100;US;L"},
			wantErr:  core.ErrUnknownCategory,
			wantCode: "DQ001",
		},
		{
			name:     "unknown country code",
			rows:     []string{"2021;SE;FT;Data Scientist;1;USD;1;Q1;100;US;L"},
			wantErr:  core.ErrUnknownCountry,
			wantCode: "DQ002",
		},
		{
			name:     "malformed year",
			rows:     []string{"year;SE;FT;Data Scientist;1;USD;1;US;100;US;L"},
			wantErr:  core.ErrMalformedInput,
			wantCode: "VAL001",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := core.NewService(core.DefaultOptions())
			report, err := svc.Run(context.Background(), writeFixture(t, tt.rows...))
			if report != nil {
				t.Error("Run() returned a report alongside an error")
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Run() error = %v, want %v", err, tt.wantErr)
			}
			if got := core.MapError(err).Code; got != tt.wantCode {
				t.Errorf("MapError().Code = %q, want %q", got, tt.wantCode)
			}
			if svc.Latest() != nil {
				t.Error("Latest() set after a failed run")
			}
		})
	}
}

func TestServiceAnalyze_Cancelled(t *testing.T) {
	svc := core.NewService(core.DefaultOptions())
	raw, err := core.LoadFile(writeFixture(t, serviceFixture...), core.LoadOptions{})
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := svc.Analyze(ctx, raw); !errors.Is(err, context.Canceled) {
		t.Errorf("Analyze() error = %v, want context.Canceled", err)
	}
}
