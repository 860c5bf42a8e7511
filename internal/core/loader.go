package core

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/JonMunkholm/salaries/internal/schema"
)

// DefaultMaxFileSize bounds how many bytes Load will read (100MB).
const DefaultMaxFileSize int64 = 100 * 1024 * 1024

// LoadOptions controls how the salaries file is parsed.
type LoadOptions struct {
	Delimiter   rune  // field separator, ';' when zero
	MaxFileSize int64 // DefaultMaxFileSize when zero
}

func (o LoadOptions) withDefaults() LoadOptions {
	if o.Delimiter == 0 {
		o.Delimiter = ';'
	}
	if o.MaxFileSize <= 0 {
		o.MaxFileSize = DefaultMaxFileSize
	}
	return o
}

// LoadFile reads the salaries file at path. The file handle is released
// before parsing starts.
func LoadFile(path string, opts LoadOptions) (*RawTable, error) {
	opts = opts.withDefaults()

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("open input: %s is a directory", path)
	}
	if info.Size() > opts.MaxFileSize {
		return nil, fmt.Errorf("file too large: %d bytes exceeds limit of %d", info.Size(), opts.MaxFileSize)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}

	table, err := parse(data, opts)
	if err != nil {
		return nil, err
	}
	table.Source = filepath.Base(path)
	return table, nil
}

// Load reads a salaries table from r. Any problem aborts the load; no
// partial table is returned.
func Load(r io.Reader, opts LoadOptions) (*RawTable, error) {
	opts = opts.withDefaults()

	data, err := io.ReadAll(io.LimitReader(r, opts.MaxFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	if int64(len(data)) > opts.MaxFileSize {
		return nil, fmt.Errorf("file too large: exceeds limit of %d bytes", opts.MaxFileSize)
	}

	return parse(data, opts)
}

func parse(data []byte, opts LoadOptions) (*RawTable, error) {
	data = sanitizeInput(data)
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("empty file: no header row")
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = opts.Delimiter
	reader.FieldsPerRecord = 0 // every row must match the header width

	rows, err := reader.ReadAll()
	if err != nil {
		var pe *csv.ParseError
		if errors.As(err, &pe) {
			return nil, malformed(pe.Line, "", "", "invalid csv: "+pe.Err.Error())
		}
		return nil, wrapMalformed("invalid csv", err)
	}

	headerIdx, err := ValidateHeaders(rows[0], schema.SalaryFieldSpecs)
	if err != nil {
		return nil, err
	}

	validator := NewRowValidator(schema.SalaryFieldSpecs, headerIdx)
	table := &RawTable{LoadedAt: time.Now()}

	for i, row := range rows[1:] {
		line := i + 2 // 1-indexed, after header

		if isEmptyRow(row) {
			continue
		}

		values, err := validator.ValidateRow(row, line)
		if err != nil {
			return nil, err
		}

		rec, err := buildRecord(values, line)
		if err != nil {
			return nil, err
		}
		table.Records = append(table.Records, rec)
	}

	if len(table.Records) == 0 {
		return nil, fmt.Errorf("empty file: no data rows after header")
	}

	return table, nil
}

// buildRecord converts a validated row into a typed Record.
func buildRecord(v ValidatedRow, line int) (Record, error) {
	rec := Record{
		Line:              line,
		ExperienceLevel:   v[schema.ColExperienceLevel],
		EmploymentType:    v[schema.ColEmploymentType],
		JobTitle:          v[schema.ColJobTitle],
		SalaryCurrency:    v[schema.ColSalaryCurrency],
		EmployeeResidence: v[schema.ColEmployeeResidence],
		CompanyLocation:   v[schema.ColCompanyLocation],
		CompanySize:       v[schema.ColCompanySize],
	}

	var err error
	if rec.WorkYear, err = ParseInteger(v[schema.ColWorkYear]); err != nil {
		return Record{}, malformed(line, schema.ColWorkYear, v[schema.ColWorkYear], err.Error())
	}
	if rec.RemoteRatio, err = ParseInteger(v[schema.ColRemoteRatio]); err != nil {
		return Record{}, malformed(line, schema.ColRemoteRatio, v[schema.ColRemoteRatio], err.Error())
	}
	if rec.Salary, err = ParseNumeric(v[schema.ColSalary]); err != nil {
		return Record{}, malformed(line, schema.ColSalary, v[schema.ColSalary], err.Error())
	}
	if rec.SalaryInUSD, err = ParseNumeric(v[schema.ColSalaryInUSD]); err != nil {
		return Record{}, malformed(line, schema.ColSalaryInUSD, v[schema.ColSalaryInUSD], err.Error())
	}
	if rec.Salary < 0 {
		return Record{}, malformed(line, schema.ColSalary, v[schema.ColSalary], "negative amount")
	}
	if rec.SalaryInUSD < 0 {
		return Record{}, malformed(line, schema.ColSalaryInUSD, v[schema.ColSalaryInUSD], "negative amount")
	}

	return rec, nil
}
