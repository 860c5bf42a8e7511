// Package export writes the cleaned table and the report tables to files.
package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/JonMunkholm/salaries/internal/core"
)

// File names written by SaveAll.
const (
	CleanedCSVName = "cleaned.csv"
	WorkbookName   = "report.xlsx"
)

// Workbook sheet names.
const (
	SheetCleaned    = "Cleaned"
	SheetDescribe   = "Describe"
	SheetHypothesis = "Hypothesis"
)

// cleanedRow renders a cleaned record in core.CleanTable.Columns order.
func cleanedRow(r core.CleanRecord) []string {
	return []string{
		strconv.Itoa(r.WorkYear),
		r.ExperienceLevel,
		r.EmploymentType,
		r.JobTitle,
		strconv.FormatFloat(r.SalaryInUSD, 'f', -1, 64),
		r.EmployeeResidence,
		strconv.Itoa(r.RemoteRatio),
		r.CompanyLocation,
		r.CompanySize,
		r.ResidenceISO3,
		r.ResidenceGrouped,
	}
}

// WriteCleanedCSV writes t as delimited text with a header row.
func WriteCleanedCSV(w io.Writer, t *core.CleanTable, delimiter rune) error {
	if delimiter == 0 {
		delimiter = ';'
	}
	cw := csv.NewWriter(w)
	cw.Comma = delimiter

	if err := cw.Write(t.Columns()); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, rec := range t.Records {
		if err := cw.Write(cleanedRow(rec)); err != nil {
			return fmt.Errorf("write record: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Workbook builds an xlsx workbook with the cleaned table, the descriptive
// statistics, one sheet per view and the hypothesis result. The caller must
// Close the returned file.
func Workbook(report *core.Report) (*excelize.File, error) {
	f := excelize.NewFile()

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		f.Close()
		return nil, err
	}
	b := &sheetBuilder{f: f, header: bold}

	if err := f.SetSheetName("Sheet1", SheetCleaned); err != nil {
		f.Close()
		return nil, err
	}
	steps := []func(*core.Report) error{
		b.cleaned,
		b.describe,
		b.views,
		b.hypothesis,
	}
	for _, step := range steps {
		if err := step(report); err != nil {
			f.Close()
			return nil, err
		}
	}
	return f, nil
}

// WriteWorkbook writes the workbook for report to w.
func WriteWorkbook(w io.Writer, report *core.Report) error {
	f, err := Workbook(report)
	if err != nil {
		return fmt.Errorf("build workbook: %w", err)
	}
	defer f.Close()

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// Options selects what SaveAll writes.
type Options struct {
	Delimiter rune
	Workbook  bool
}

// SaveAll writes the cleaned CSV and, when enabled, the workbook into dir.
// It returns the paths written.
func SaveAll(ctx context.Context, report *core.Report, dir string, opts Options) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create export dir: %w", err)
	}

	var paths []string
	csvPath := filepath.Join(dir, CleanedCSVName)
	if err := writeFile(csvPath, func(w io.Writer) error {
		return WriteCleanedCSV(w, report.Clean, opts.Delimiter)
	}); err != nil {
		return nil, err
	}
	paths = append(paths, csvPath)

	if !opts.Workbook {
		return paths, nil
	}
	if err := ctx.Err(); err != nil {
		return paths, err
	}

	xlsxPath := filepath.Join(dir, WorkbookName)
	if err := writeFile(xlsxPath, func(w io.Writer) error {
		return WriteWorkbook(w, report)
	}); err != nil {
		return paths, err
	}
	return append(paths, xlsxPath), nil
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
