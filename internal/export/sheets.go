package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/JonMunkholm/salaries/internal/core"
)

type sheetBuilder struct {
	f      *excelize.File
	header int // style ID for header rows
}

// table writes header and rows starting at A1 of sheet, creating the sheet
// when it does not exist yet.
func (b *sheetBuilder) table(sheet string, header []string, rows [][]any) error {
	if idx, err := b.f.GetSheetIndex(sheet); err != nil {
		return err
	} else if idx < 0 {
		if _, err := b.f.NewSheet(sheet); err != nil {
			return fmt.Errorf("new sheet %s: %w", sheet, err)
		}
	}

	headerRow := make([]any, len(header))
	for i, h := range header {
		headerRow[i] = h
	}
	if err := b.f.SetSheetRow(sheet, "A1", &headerRow); err != nil {
		return err
	}

	last, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return err
	}
	if err := b.f.SetCellStyle(sheet, "A1", last, b.header); err != nil {
		return err
	}
	lastCol, _, err := excelize.SplitCellName(last)
	if err != nil {
		return err
	}
	if err := b.f.SetColWidth(sheet, "A", lastCol, 18); err != nil {
		return err
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := row
		if err := b.f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("%s row %d: %w", sheet, i+2, err)
		}
	}
	return nil
}

func (b *sheetBuilder) cleaned(report *core.Report) error {
	rows := make([][]any, len(report.Clean.Records))
	for i, r := range report.Clean.Records {
		rows[i] = []any{
			r.WorkYear, r.ExperienceLevel, r.EmploymentType, r.JobTitle,
			r.SalaryInUSD, r.EmployeeResidence, r.RemoteRatio, r.CompanyLocation,
			r.CompanySize, r.ResidenceISO3, r.ResidenceGrouped,
		}
	}
	return b.table(SheetCleaned, report.Clean.Columns(), rows)
}

func (b *sheetBuilder) describe(report *core.Report) error {
	header := []string{"column", "count", "mean", "std", "min", "25%", "50%", "75%", "max"}
	rows := make([][]any, len(report.Describe))
	for i, s := range report.Describe {
		rows[i] = []any{s.Column, s.Count, s.Mean, s.Std, s.Min, s.Q25, s.Median, s.Q75, s.Max}
	}
	return b.table(SheetDescribe, header, rows)
}

func (b *sheetBuilder) views(report *core.Report) error {
	for _, v := range report.Views {
		header := []string{v.Info.Dimension, string(v.Info.Stat) + " " + v.Info.Measure, "count"}
		rows := make([][]any, len(v.Groups))
		for i, g := range v.Groups {
			rows[i] = []any{g.Category, g.Value, g.Count}
		}
		if err := b.table(sheetName(v.Info.Key), header, rows); err != nil {
			return err
		}
	}
	return nil
}

func (b *sheetBuilder) hypothesis(report *core.Report) error {
	header := []string{"cohort", "large_count", "large_mean", "small_count", "small_mean", "percent_difference", "large_earns_more"}
	if report.Hypothesis == nil {
		msg := "not evaluated"
		if report.HypothesisErr != nil {
			msg = report.HypothesisErr.Error()
		}
		return b.table(SheetHypothesis, []string{"error"}, [][]any{{msg}})
	}

	var rows [][]any
	for _, c := range report.Hypothesis.Comparisons() {
		rows = append(rows, []any{
			string(c.Cohort), c.Large.Count, c.Large.MeanSalary,
			c.Small.Count, c.Small.MeanSalary, c.PercentDifference, c.LargeEarnsMore,
		})
	}
	return b.table(SheetHypothesis, header, rows)
}

// maxSheetName is the longest sheet name Excel accepts.
const maxSheetName = 31

func sheetName(key string) string {
	if len(key) > maxSheetName {
		return key[:maxSheetName]
	}
	return key
}
