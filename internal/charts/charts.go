// Package charts renders report figures as PNG images with gonum/plot.
package charts

import (
	"context"
	"fmt"
	"image/color"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/JonMunkholm/salaries/internal/core"
	"github.com/JonMunkholm/salaries/internal/schema"
)

// Figures that are not a plain bar chart of a single view.
const (
	ChartSalaryDistribution = "salary_distribution"
	ChartCompanySizeBoxes   = "salary_by_company_size_box"
	ChartSalaryTrend        = "salary_trend"
	ChartHypothesis         = "hypothesis"
	ChartCohortBoxes        = "hypothesis_distribution"
)

var (
	barColor   = color.RGBA{R: 70, G: 130, B: 180, A: 255}
	trendColor = color.RGBA{R: 139, G: 0, B: 0, A: 255}
)

// Renderer draws figures at a fixed size.
type Renderer struct {
	Width  vg.Length
	Height vg.Length
}

// NewRenderer returns a Renderer producing images of the given size in inches.
func NewRenderer(widthIn, heightIn float64) *Renderer {
	if widthIn <= 0 {
		widthIn = 8
	}
	if heightIn <= 0 {
		heightIn = 5
	}
	return &Renderer{
		Width:  vg.Length(widthIn) * vg.Inch,
		Height: vg.Length(heightIn) * vg.Inch,
	}
}

// Names lists the figures available for report, in display order. The
// hypothesis chart is only listed when the comparison succeeded and empty
// views are skipped.
func Names(report *core.Report) []string {
	names := []string{ChartSalaryDistribution, ChartCompanySizeBoxes}
	if _, ok := report.View("salary_by_year"); ok {
		names = append(names, ChartSalaryTrend)
	}
	if report.Hypothesis != nil {
		names = append(names, ChartHypothesis, ChartCohortBoxes)
	}
	for _, v := range report.Views {
		if len(v.Groups) > 0 {
			names = append(names, v.Info.Key)
		}
	}
	return names
}

// Plot builds the named figure.
func (r *Renderer) Plot(report *core.Report, name string) (*plot.Plot, error) {
	switch name {
	case ChartSalaryDistribution:
		return salaryDistribution(report.Clean)
	case ChartCompanySizeBoxes:
		return companySizeBoxes(report.Clean)
	case ChartSalaryTrend:
		if v, ok := report.View("salary_by_year"); ok {
			return salaryTrend(v)
		}
	case ChartHypothesis:
		if report.Hypothesis != nil {
			return hypothesisBars(report.Hypothesis)
		}
	case ChartCohortBoxes:
		if report.Hypothesis != nil {
			return cohortBoxes(report.Clean)
		}
	default:
		if v, ok := report.View(name); ok {
			return viewBars(v)
		}
	}
	return nil, fmt.Errorf("chart not found: %s", name)
}

// WritePNG renders the named figure to w.
func (r *Renderer) WritePNG(w io.Writer, report *core.Report, name string) error {
	p, err := r.Plot(report, name)
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(r.Width, r.Height, "png")
	if err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

// SaveAll writes every figure of report into dir as <name>.png and returns
// the paths written.
func (r *Renderer) SaveAll(ctx context.Context, report *core.Report, dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create chart dir: %w", err)
	}

	var paths []string
	for _, name := range Names(report) {
		if err := ctx.Err(); err != nil {
			return paths, err
		}
		path := filepath.Join(dir, name+".png")
		if err := r.saveOne(report, name, path); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func (r *Renderer) saveOne(report *core.Report, name, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := r.WritePNG(f, report, name); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func salaryDistribution(t *core.CleanTable) (*plot.Plot, error) {
	values := core.SalaryValues(t, nil)
	if len(values) == 0 {
		return nil, fmt.Errorf("%s: no salaries to plot", ChartSalaryDistribution)
	}

	p := plot.New()
	p.Title.Text = "Salary in USD"
	p.Y.Label.Text = "salary_in_usd"

	box, err := plotter.NewBoxPlot(vg.Points(60), 0, plotter.Values(values))
	if err != nil {
		return nil, err
	}
	box.FillColor = barColor
	p.Add(box)
	p.NominalX("All employees")
	return p, nil
}

func companySizeBoxes(t *core.CleanTable) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Salary in USD by company size"
	p.X.Label.Text = "company_size"
	p.Y.Label.Text = "salary_in_usd"

	var labels []string
	for _, size := range schema.CompanySizes {
		values := core.SalaryValues(t, func(r core.CleanRecord) bool { return r.CompanySize == size })
		if len(values) == 0 {
			continue
		}
		box, err := plotter.NewBoxPlot(vg.Points(40), float64(len(labels)), plotter.Values(values))
		if err != nil {
			return nil, err
		}
		box.FillColor = plotutil.Color(len(labels))
		p.Add(box)
		labels = append(labels, size)
	}
	if len(labels) == 0 {
		return nil, fmt.Errorf("%s: no salaries to plot", ChartCompanySizeBoxes)
	}
	p.NominalX(labels...)
	return p, nil
}

func salaryTrend(v core.ViewResult) (*plot.Plot, error) {
	points := make(plotter.XYs, 0, len(v.Groups))
	for _, g := range v.Groups {
		year, err := strconv.Atoi(g.Category)
		if err != nil {
			return nil, fmt.Errorf("%s: work year %q: %w", ChartSalaryTrend, g.Category, err)
		}
		points = append(points, plotter.XY{X: float64(year), Y: g.Value})
	}
	if len(points) == 0 {
		return nil, fmt.Errorf("%s: no years to plot", ChartSalaryTrend)
	}

	p := plot.New()
	p.Title.Text = "Mean salary in USD by work year"
	p.X.Label.Text = "work_year"
	p.Y.Label.Text = "salary_in_usd"
	p.X.Tick.Marker = yearTicks{}

	line, err := plotter.NewLine(points)
	if err != nil {
		return nil, err
	}
	line.Color = trendColor
	line.Width = vg.Points(2)

	scatter, err := plotter.NewScatter(points)
	if err != nil {
		return nil, err
	}
	scatter.GlyphStyle.Color = trendColor
	scatter.GlyphStyle.Radius = vg.Points(3)

	p.Add(plotter.NewGrid(), line, scatter)
	return p, nil
}

// yearTicks places one tick on every whole year.
type yearTicks struct{}

func (yearTicks) Ticks(min, max float64) []plot.Tick {
	var ticks []plot.Tick
	for y := math.Ceil(min); y <= max; y++ {
		ticks = append(ticks, plot.Tick{Value: y, Label: strconv.Itoa(int(y))})
	}
	return ticks
}

func viewBars(v core.ViewResult) (*plot.Plot, error) {
	if len(v.Groups) == 0 {
		return nil, fmt.Errorf("%s: view has no groups", v.Info.Key)
	}

	p := plot.New()
	p.Title.Text = v.Info.Label
	p.X.Label.Text = v.Info.Dimension
	p.Y.Label.Text = axisLabel(v.Info)

	values := make(plotter.Values, len(v.Groups))
	labels := make([]string, len(v.Groups))
	for i, g := range v.Groups {
		values[i] = g.Value
		labels[i] = g.Category
	}

	bars, err := plotter.NewBarChart(values, vg.Points(20))
	if err != nil {
		return nil, err
	}
	bars.Color = barColor
	bars.LineStyle.Width = vg.Length(0)
	p.Add(bars)

	p.NominalX(labels...)
	if len(labels) > 6 {
		p.X.Tick.Label.Rotation = math.Pi / 3
		p.X.Tick.Label.YAlign = draw.YCenter
		p.X.Tick.Label.XAlign = draw.XRight
	}
	p.Y.Min = 0
	return p, nil
}

func axisLabel(info core.ViewInfo) string {
	if info.Stat == core.StatCount {
		return "employees"
	}
	return string(info.Stat) + " " + info.Measure
}

func hypothesisBars(h *core.HypothesisResult) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Fully remote mean salary: large vs small companies"
	p.Y.Label.Text = "mean salary_in_usd"

	comparisons := h.Comparisons()
	large := make(plotter.Values, len(comparisons))
	small := make(plotter.Values, len(comparisons))
	labels := make([]string, len(comparisons))
	for i, c := range comparisons {
		large[i] = c.Large.MeanSalary
		small[i] = c.Small.MeanSalary
		labels[i] = fmt.Sprintf("%s (%d%%)", c.Cohort, c.PercentDifference)
	}

	w := vg.Points(30)
	largeBars, err := plotter.NewBarChart(large, w)
	if err != nil {
		return nil, err
	}
	largeBars.Color = plotutil.Color(0)
	largeBars.Offset = -w / 2

	smallBars, err := plotter.NewBarChart(small, w)
	if err != nil {
		return nil, err
	}
	smallBars.Color = plotutil.Color(1)
	smallBars.Offset = w / 2

	p.Add(largeBars, smallBars)
	p.Legend.Add("L", largeBars)
	p.Legend.Add("S", smallBars)
	p.Legend.Top = true
	p.NominalX(labels...)
	p.Y.Min = 0
	return p, nil
}

// cohortBoxes shows the fully remote salary spread behind each hypothesis leaf.
func cohortBoxes(t *core.CleanTable) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Fully remote salary in USD by cohort and company size"
	p.Y.Label.Text = "salary_in_usd"

	remote := t.Filter(func(r core.CleanRecord) bool { return r.RemoteRatio == core.FullyRemote })

	var labels []string
	for _, cohort := range core.Cohorts {
		for i, size := range []string{schema.CompanySmall, schema.CompanyLarge} {
			values := core.SalaryValues(remote, func(r core.CleanRecord) bool {
				return r.CompanySize == size && cohort.Contains(r.ExperienceLevel)
			})
			if len(values) == 0 {
				continue
			}
			box, err := plotter.NewBoxPlot(vg.Points(40), float64(len(labels)), plotter.Values(values))
			if err != nil {
				return nil, err
			}
			box.FillColor = plotutil.Color(i)
			p.Add(box)
			labels = append(labels, string(cohort)+" "+size)
		}
	}
	if len(labels) == 0 {
		return nil, fmt.Errorf("%s: no fully remote salaries to plot", ChartCohortBoxes)
	}
	p.NominalX(labels...)
	return p, nil
}
