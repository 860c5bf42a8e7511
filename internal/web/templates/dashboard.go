package templates

import (
	"context"
	"io"
	"strconv"
	"time"

	"github.com/a-h/templ"

	"github.com/JonMunkholm/salaries/internal/core"
)

// DashboardParams is the data shown on the report page.
type DashboardParams struct {
	Report *core.Report
	Charts []string
}

// Dashboard renders the whole report as one page.
func Dashboard(p DashboardParams) templ.Component {
	return Layout("Data Science Salaries", templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		r := p.Report

		h.raw("<section>")
		h.raw(`<p class="muted">`)
		h.textf("Source %s, run %s, generated %s in %s.",
			r.Source, r.RunID, r.GeneratedAt.Format(time.RFC3339), r.Duration.Round(time.Millisecond))
		h.raw("</p><p>")
		h.textf("%d records, %d views.", r.Clean.Len(), len(r.Views))
		h.raw(`</p><p><a href="/export/cleaned.csv">Cleaned CSV</a> · <a href="/export/report.xlsx">Workbook</a></p>`)
		h.raw("</section>")

		hypothesis(h, r)
		describe(h, r.Describe)

		if len(p.Charts) > 0 {
			h.raw(`<section><h2>Charts</h2><div class="charts">`)
			for _, name := range p.Charts {
				h.raw(`<figure><img loading="lazy" src="/charts/`)
				h.text(name)
				h.raw(`.png" alt="`)
				h.text(name)
				h.raw(`"><figcaption class="muted">`)
				h.text(name)
				h.raw("</figcaption></figure>")
			}
			h.raw("</div></section>")
		}

		for _, v := range r.Views {
			view(h, v)
		}
		return h.err
	}))
}

func hypothesis(h *htmlWriter, r *core.Report) {
	h.raw("<section><h2>Hypothesis</h2>")
	h.element("p", core.HypothesisStatement)
	defer h.raw("</section>")

	if r.Hypothesis == nil {
		msg := core.MapError(r.HypothesisErr)
		h.raw(`<p class="fails">`)
		h.textf("Not evaluated: %s (%s)", msg.Message, msg.Code)
		h.raw("</p>")
		return
	}

	res := r.Hypothesis
	h.raw(`<p class="muted">`)
	h.textf("%d fully remote records", res.RemoteRecords)
	h.raw("</p><table>")
	h.header("Cohort", "L records", "L mean", "S records", "S mean", "Difference")
	h.raw("<tbody>")
	for _, c := range res.Comparisons() {
		h.row([]string{
			string(c.Cohort),
			strconv.Itoa(c.Large.Count),
			money(c.Large.MeanSalary),
			strconv.Itoa(c.Small.Count),
			money(c.Small.MeanSalary),
			strconv.Itoa(c.PercentDifference) + "%",
		}, func(i int) bool { return i > 0 })
	}
	h.raw("</tbody></table>")

	for _, c := range res.Comparisons() {
		h.element("p", c.Summary())
	}
	if res.Supported() {
		h.raw(`<p class="holds">`)
	} else {
		h.raw(`<p class="fails">`)
	}
	h.text(res.Conclusion())
	h.raw("</p>")
}

func describe(h *htmlWriter, summaries []core.ColumnSummary) {
	h.raw("<section><h2>Summary statistics</h2><table>")
	h.header("Column", "Count", "Mean", "Std", "Min", "25%", "50%", "75%", "Max")
	h.raw("<tbody>")
	for _, s := range summaries {
		h.row([]string{
			s.Column,
			strconv.Itoa(s.Count),
			number(s.Mean), number(s.Std), number(s.Min),
			number(s.Q25), number(s.Median), number(s.Q75), number(s.Max),
		}, func(i int) bool { return i > 0 })
	}
	h.raw("</tbody></table></section>")
}

func view(h *htmlWriter, v core.ViewResult) {
	h.raw(`<section id="`)
	h.text(v.Info.Key)
	h.raw(`">`)
	h.element("h2", v.Info.Label)
	if v.Info.Description != "" {
		h.raw(`<p class="muted">`)
		h.text(v.Info.Description)
		h.raw("</p>")
	}
	h.raw("<table>")
	h.header(v.Info.Dimension, string(v.Info.Stat), "Records")
	h.raw("<tbody>")
	for _, g := range v.Groups {
		value := number(g.Value)
		if v.Info.Stat == core.StatCount {
			value = strconv.Itoa(int(g.Value))
		}
		h.row([]string{g.Category, value, strconv.Itoa(g.Count)}, func(i int) bool { return i > 0 })
	}
	h.raw("</tbody></table></section>")
}

func number(f float64) string {
	return strconv.FormatFloat(f, 'f', 2, 64)
}

func money(f float64) string {
	return strconv.FormatFloat(f, 'f', 0, 64)
}
