package web

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/JonMunkholm/salaries/internal/charts"
	"github.com/JonMunkholm/salaries/internal/core"
	"github.com/JonMunkholm/salaries/internal/export"
	"github.com/JonMunkholm/salaries/internal/logging"
	"github.com/JonMunkholm/salaries/internal/web/templates"
)

const (
	// DefaultPageSize is the number of records /api/records returns per page.
	DefaultPageSize = 50
	// MaxPageSize caps the limit query parameter.
	MaxPageSize = 500

	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// report returns the latest report, or writes a 503 and returns nil.
func (s *Server) report(w http.ResponseWriter, r *http.Request) *core.Report {
	rep := s.service.Latest()
	if rep == nil {
		s.respondError(w, r, errNoReport, http.StatusServiceUnavailable)
	}
	return rep
}

// handleDashboard renders the report page.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	rep := s.report(w, r)
	if rep == nil {
		return
	}

	var buf bytes.Buffer
	params := templates.DashboardParams{Report: rep, Charts: charts.Names(rep)}
	if err := templates.Dashboard(params).Render(r.Context(), &buf); err != nil {
		s.respondError(w, r, fmt.Errorf("render dashboard: %w", err), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	buf.WriteTo(w)
}

type healthResponse struct {
	Status  string                   `json:"status"`
	RunID   string                   `json:"run_id,omitempty"`
	Renders core.RenderLimiterStatus `json:"renders"`
}

// handleHealth reports liveness. It answers 200 even before the first
// report so that process supervisors do not restart a loading server.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{Status: "loading", Renders: s.renders.Status()}
	if rep := s.service.Latest(); rep != nil {
		resp.Status = "ok"
		resp.RunID = rep.RunID
	}
	writeJSON(w, r, resp)
}

type summaryResponse struct {
	RunID       string               `json:"run_id"`
	Source      string               `json:"source"`
	GeneratedAt time.Time            `json:"generated_at"`
	DurationMS  int64                `json:"duration_ms"`
	RawRecords  int                  `json:"raw_records"`
	Records     int                  `json:"records"`
	Columns     []string             `json:"columns"`
	Describe    []core.ColumnSummary `json:"describe"`
	Views       []core.ViewInfo      `json:"views"`
	Charts      []string             `json:"charts"`
	Hypothesis  string               `json:"hypothesis"`
}

// handleSummary returns the run metadata and descriptive statistics.
func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	rep := s.report(w, r)
	if rep == nil {
		return
	}

	conclusion := "not evaluated: " + core.FormatUserError(rep.HypothesisErr)
	if rep.Hypothesis != nil {
		conclusion = rep.Hypothesis.Conclusion()
	}

	writeJSON(w, r, summaryResponse{
		RunID:       rep.RunID,
		Source:      rep.Source,
		GeneratedAt: rep.GeneratedAt,
		DurationMS:  rep.Duration.Milliseconds(),
		RawRecords:  rep.Raw.Len(),
		Records:     rep.Clean.Len(),
		Columns:     rep.Clean.Columns(),
		Describe:    rep.Describe,
		Views:       viewInfos(rep.Views),
		Charts:      charts.Names(rep),
		Hypothesis:  conclusion,
	})
}

type recordsResponse struct {
	Total   int                `json:"total"`
	Page    int                `json:"page"`
	Limit   int                `json:"limit"`
	Records []core.CleanRecord `json:"records"`
}

// handleRecords pages through the cleaned table.
func (s *Server) handleRecords(w http.ResponseWriter, r *http.Request) {
	rep := s.report(w, r)
	if rep == nil {
		return
	}

	page := parseIntParam(r, "page", 1)
	limit := min(parseIntParam(r, "limit", DefaultPageSize), MaxPageSize)

	total := rep.Clean.Len()
	start, end := total, total
	if page-1 < (total+limit-1)/limit {
		start = (page - 1) * limit
		end = min(start+limit, total)
	}

	writeJSON(w, r, recordsResponse{
		Total:   total,
		Page:    page,
		Limit:   limit,
		Records: rep.Clean.Records[start:end],
	})
}

// viewGroup is one section of the view listing.
type viewGroup struct {
	Group string          `json:"group"`
	Views []core.ViewInfo `json:"views"`
}

// handleListViews lists the built views by group.
func (s *Server) handleListViews(w http.ResponseWriter, r *http.Request) {
	rep := s.report(w, r)
	if rep == nil {
		return
	}

	groups := make([]viewGroup, 0)
	for _, name := range core.ViewGroups() {
		g := viewGroup{Group: name}
		for _, def := range core.ViewsByGroup(name) {
			if v, ok := rep.View(def.Info.Key); ok {
				g.Views = append(g.Views, v.Info)
			}
		}
		if len(g.Views) > 0 {
			groups = append(groups, g)
		}
	}
	writeJSON(w, r, groups)
}

// handleView returns one built view.
func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	rep := s.report(w, r)
	if rep == nil {
		return
	}

	key := chi.URLParam(r, "key")
	v, ok := rep.View(key)
	if !ok {
		s.respondError(w, r, fmt.Errorf("view not found: %s", key), http.StatusNotFound)
		return
	}
	writeJSON(w, r, v)
}

type hypothesisResponse struct {
	Statement  string                 `json:"statement"`
	Supported  bool                   `json:"supported"`
	Conclusion string                 `json:"conclusion"`
	Result     *core.HypothesisResult `json:"result"`
}

// handleHypothesis returns the cohort comparison, or 422 when it could not
// be made.
func (s *Server) handleHypothesis(w http.ResponseWriter, r *http.Request) {
	rep := s.report(w, r)
	if rep == nil {
		return
	}
	if rep.Hypothesis == nil {
		s.respondError(w, r, rep.HypothesisErr, statusFor(rep.HypothesisErr))
		return
	}
	writeJSON(w, r, hypothesisResponse{
		Statement:  core.HypothesisStatement,
		Supported:  rep.Hypothesis.Supported(),
		Conclusion: rep.Hypothesis.Conclusion(),
		Result:     rep.Hypothesis,
	})
}

// handleChart renders one figure as PNG.
func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	rep := s.report(w, r)
	if rep == nil {
		return
	}
	name := chi.URLParam(r, "name")

	s.render(w, r, "image/png", "", func(buf *bytes.Buffer) error {
		return s.renderer.WritePNG(buf, rep, name)
	})
}

// handleExportCSV downloads the cleaned table.
func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	rep := s.report(w, r)
	if rep == nil {
		return
	}

	var buf bytes.Buffer
	if err := export.WriteCleanedCSV(&buf, rep.Clean, s.delimiter); err != nil {
		s.respondError(w, r, fmt.Errorf("export csv: %w", err), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", attachment(export.CleanedCSVName))
	buf.WriteTo(w)
}

// handleExportWorkbook downloads the xlsx workbook.
func (s *Server) handleExportWorkbook(w http.ResponseWriter, r *http.Request) {
	rep := s.report(w, r)
	if rep == nil {
		return
	}

	s.render(w, r, xlsxContentType, export.WorkbookName, func(buf *bytes.Buffer) error {
		return export.WriteWorkbook(buf, rep)
	})
}

// render runs fn inside a render slot and writes its output. Nothing is
// written to w until fn succeeds, so failures still get a proper error
// response.
func (s *Server) render(w http.ResponseWriter, r *http.Request, contentType, filename string, fn func(*bytes.Buffer) error) {
	if !s.renders.TryAcquire() {
		logging.FromContext(r.Context()).Debug("render slots full, waiting",
			"path", r.URL.Path,
			"max_renders", s.renders.MaxConcurrent(),
		)
		if err := s.renders.Acquire(r.Context()); err != nil {
			s.respondError(w, r, err, statusFor(err))
			return
		}
	}
	defer s.renders.Release()

	start := time.Now()
	var buf bytes.Buffer
	if err := fn(&buf); err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}
	logging.FromContext(r.Context()).Debug("rendered",
		"path", r.URL.Path,
		"bytes", buf.Len(),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	w.Header().Set("Content-Type", contentType)
	if filename != "" {
		w.Header().Set("Content-Disposition", attachment(filename))
	}
	w.Header().Set("Cache-Control", "no-cache")
	buf.WriteTo(w)
}

func attachment(filename string) string {
	return `attachment; filename="` + filename + `"`
}

func viewInfos(views []core.ViewResult) []core.ViewInfo {
	infos := make([]core.ViewInfo, len(views))
	for i, v := range views {
		infos[i] = v.Info
	}
	return infos
}

// parseIntParam parses a positive integer query parameter with a default.
func parseIntParam(r *http.Request, name string, defaultVal int) int {
	val := r.URL.Query().Get(name)
	if val == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(val)
	if err != nil || i < 1 {
		return defaultVal
	}
	return i
}
