package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/JonMunkholm/salaries/internal/core"
	_ "github.com/JonMunkholm/salaries/internal/core/views"
)

func rec(level, size string, remote int, salary float64) core.Record {
	return core.Record{
		WorkYear: 2021, ExperienceLevel: level, EmploymentType: "FT",
		JobTitle: "Data Scientist", Salary: salary, SalaryCurrency: "USD",
		SalaryInUSD: salary, EmployeeResidence: "US", RemoteRatio: remote,
		CompanyLocation: "US", CompanySize: size,
	}
}

func testReport(t *testing.T, records ...core.Record) *core.Report {
	t.Helper()
	if records == nil {
		records = []core.Record{
			rec("SE", "L", 100, 200000),
			rec("SE", "S", 100, 100000),
			rec("EN", "L", 100, 80000),
			rec("MI", "S", 100, 50000),
		}
	}
	report, err := core.NewService(core.DefaultOptions()).Analyze(context.Background(), &core.RawTable{Source: "test", Records: records})
	require.NoError(t, err)
	return report
}

func TestWriteCleanedCSV(t *testing.T) {
	report := testReport(t)

	var buf bytes.Buffer
	require.NoError(t, WriteCleanedCSV(&buf, report.Clean, ';'))

	r := csv.NewReader(&buf)
	r.Comma = ';'
	rows, err := r.ReadAll()
	require.NoError(t, err)

	require.Len(t, rows, 5)
	require.Equal(t, report.Clean.Columns(), rows[0])
	require.NotContains(t, rows[0], "salary")
	require.NotContains(t, rows[0], "salary_currency")
	require.Equal(t, []string{
		"2021", "Senior", "Full-time", "Data Scientist", "200000", "US", "100", "US", "L",
		"USA", core.DefaultOtherLabel,
	}, rows[1])
}

func TestWriteWorkbook(t *testing.T) {
	report := testReport(t)

	var buf bytes.Buffer
	require.NoError(t, WriteWorkbook(&buf, report))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	sheets := f.GetSheetList()
	require.Equal(t, SheetCleaned, sheets[0])
	require.Contains(t, sheets, SheetDescribe)
	require.Contains(t, sheets, SheetHypothesis)
	for _, v := range report.Views {
		require.Contains(t, sheets, v.Info.Key)
	}

	rows, err := f.GetRows(SheetCleaned)
	require.NoError(t, err)
	require.Len(t, rows, 1+report.Clean.Len())

	hyp, err := f.GetRows(SheetHypothesis)
	require.NoError(t, err)
	require.Len(t, hyp, 3)
	require.Equal(t, "Senior/Director", hyp[1][0])
	require.Equal(t, "100", hyp[1][5])
	require.Equal(t, "60", hyp[2][5])
}

func TestWriteWorkbook_HypothesisError(t *testing.T) {
	report := testReport(t, rec("SE", "L", 100, 1))
	require.Error(t, report.HypothesisErr)

	var buf bytes.Buffer
	require.NoError(t, WriteWorkbook(&buf, report))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetHypothesis)
	require.NoError(t, err)
	require.Equal(t, "error", rows[0][0])
	require.True(t, strings.Contains(rows[1][0], "insufficient data"))
}

func TestSaveAll(t *testing.T) {
	report := testReport(t)
	dir := filepath.Join(t.TempDir(), "out")

	paths, err := SaveAll(context.Background(), report, dir, Options{Delimiter: ';', Workbook: true})
	require.NoError(t, err)
	require.Equal(t, []string{filepath.Join(dir, CleanedCSVName), filepath.Join(dir, WorkbookName)}, paths)

	for _, p := range paths {
		info, err := os.Stat(p)
		require.NoError(t, err)
		require.Positive(t, info.Size())
	}

	t.Run("csv only", func(t *testing.T) {
		paths, err := SaveAll(context.Background(), report, t.TempDir(), Options{})
		require.NoError(t, err)
		require.Len(t, paths, 1)
	})
}

func TestSheetName(t *testing.T) {
	require.Equal(t, "salary_by_year", sheetName("salary_by_year"))
	require.Len(t, sheetName(strings.Repeat("x", 40)), 31)
}
