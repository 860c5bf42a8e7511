// Package report prints an analysis report to a terminal.
package report

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/JonMunkholm/salaries/internal/core"
)

// PreviewRows is how many raw records the report shows.
const PreviewRows = 5

// Printer writes a report as headed tables.
type Printer struct {
	w       io.Writer
	heading *color.Color
	good    *color.Color
	bad     *color.Color
}

// NewPrinter returns a Printer writing to w. Colour follows color.NoColor,
// which is off when w is not a terminal.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{
		w:       w,
		heading: color.New(color.FgYellow, color.Bold),
		good:    color.New(color.FgGreen),
		bad:     color.New(color.FgRed),
	}
}

// Print writes every section of report.
func (p *Printer) Print(report *core.Report) {
	p.Summary(report)
	p.Preview(report.Raw)
	p.Describe(report.Describe)
	for _, v := range report.Views {
		p.View(v)
	}
	p.Hypothesis(report)
}

// Summary writes the run header.
func (p *Printer) Summary(report *core.Report) {
	p.heading.Fprintf(p.w, "\n=== Data Science Salaries: %s ===\n", report.Source)
	fmt.Fprintf(p.w, "run %s, %d records, %d views, %s\n",
		report.RunID, report.Clean.Len(), len(report.Views), report.Duration.Round(time.Millisecond))
}

// Preview writes the first raw records.
func (p *Printer) Preview(raw *core.RawTable) {
	p.heading.Fprintf(p.w, "\nFirst %d records\n", PreviewRows)
	table := p.table([]string{"Year", "Level", "Type", "Title", "Salary (USD)", "Residence", "Remote", "Size"})
	for _, r := range raw.Head(PreviewRows) {
		table.Append([]string{
			strconv.Itoa(r.WorkYear),
			r.ExperienceLevel,
			r.EmploymentType,
			r.JobTitle,
			money(r.SalaryInUSD),
			r.EmployeeResidence,
			strconv.Itoa(r.RemoteRatio),
			r.CompanySize,
		})
	}
	table.Render()
}

// Describe writes the descriptive statistics table.
func (p *Printer) Describe(summaries []core.ColumnSummary) {
	p.heading.Fprintln(p.w, "\nDescriptive statistics")
	table := p.table([]string{"Column", "Count", "Mean", "Std", "Min", "25%", "50%", "75%", "Max"})
	for _, s := range summaries {
		table.Append([]string{
			s.Column,
			strconv.Itoa(s.Count),
			number(s.Mean),
			number(s.Std),
			number(s.Min),
			number(s.Q25),
			number(s.Median),
			number(s.Q75),
			number(s.Max),
		})
	}
	table.Render()
}

// View writes one named view.
func (p *Printer) View(v core.ViewResult) {
	p.heading.Fprintf(p.w, "\n%s\n", v.Info.Label)
	valueHeader := string(v.Info.Stat) + " " + v.Info.Measure
	if v.Info.Stat == core.StatCount {
		valueHeader = "employees"
	}
	table := p.table([]string{v.Info.Dimension, valueHeader, "records"})
	for _, g := range v.Groups {
		value := number(g.Value)
		if v.Info.Stat == core.StatCount {
			value = strconv.Itoa(g.Count)
		}
		table.Append([]string{g.Category, value, strconv.Itoa(g.Count)})
	}
	table.Render()
}

// Hypothesis writes the statement, the leaf means and the conclusion.
func (p *Printer) Hypothesis(report *core.Report) {
	p.heading.Fprintln(p.w, "\nHypothesis")
	fmt.Fprintln(p.w, core.HypothesisStatement)

	if report.Hypothesis == nil {
		p.bad.Fprintf(p.w, "Not evaluated: %s\n", core.FormatUserError(report.HypothesisErr))
		return
	}

	h := report.Hypothesis
	fmt.Fprintf(p.w, "%d fully remote records\n", h.RemoteRecords)
	table := p.table([]string{"Cohort", "L records", "L mean", "S records", "S mean", "Difference"})
	for _, c := range h.Comparisons() {
		table.Append([]string{
			string(c.Cohort),
			strconv.Itoa(c.Large.Count),
			money(c.Large.MeanSalary),
			strconv.Itoa(c.Small.Count),
			money(c.Small.MeanSalary),
			strconv.Itoa(c.PercentDifference) + "%",
		})
	}
	table.Render()

	for _, c := range h.Comparisons() {
		fmt.Fprintln(p.w, c.Summary())
	}
	if h.Supported() {
		p.good.Fprintln(p.w, h.Conclusion())
	} else {
		p.bad.Fprintln(p.w, h.Conclusion())
	}
}

func (p *Printer) table(header []string) *tablewriter.Table {
	table := tablewriter.NewWriter(p.w)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	return table
}

func number(f float64) string {
	return strconv.FormatFloat(f, 'f', 2, 64)
}

func money(f float64) string {
	return strconv.FormatFloat(f, 'f', 0, 64)
}
