package core

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/JonMunkholm/salaries/internal/logging"
)

// RunTimeout is the maximum duration for one analysis run.
var RunTimeout = 2 * time.Minute

// Options configures a Service.
type Options struct {
	Load  LoadOptions
	Clean CleanOptions
}

// DefaultOptions returns the loader and cleaner defaults.
func DefaultOptions() Options {
	return Options{Clean: DefaultCleanOptions()}
}

// Service runs the load, clean, aggregate and compare pipeline and keeps the
// most recent report for readers such as the web server.
type Service struct {
	opts Options

	mu     sync.RWMutex
	latest *Report
}

// Report is everything one run produced.
type Report struct {
	RunID       string        `json:"run_id"`
	Source      string        `json:"source"`
	GeneratedAt time.Time     `json:"generated_at"`
	Duration    time.Duration `json:"duration"`

	Raw        *RawTable         `json:"-"`
	Describe   []ColumnSummary   `json:"describe"`
	Clean      *CleanTable       `json:"-"`
	Views      []ViewResult      `json:"views"`
	Hypothesis *HypothesisResult `json:"hypothesis,omitempty"`

	// HypothesisErr is set when the comparison could not be made, for
	// example because a cohort has no large or small company records.
	// The rest of the report is still valid.
	HypothesisErr error `json:"-"`
}

// View returns the built view with the given key.
func (r *Report) View(key string) (ViewResult, bool) {
	for _, v := range r.Views {
		if v.Info.Key == key {
			return v, true
		}
	}
	return ViewResult{}, false
}

// NewService creates a new Service instance.
func NewService(opts Options) *Service {
	if opts.Clean.OtherLabel == "" {
		opts.Clean.OtherLabel = DefaultOtherLabel
	}
	if opts.Clean.OtherThreshold <= 0 {
		opts.Clean.OtherThreshold = DefaultOtherThreshold
	}
	return &Service{opts: opts}
}

// Latest returns the report of the last successful run, or nil.
func (s *Service) Latest() *Report {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.latest
}

// Run loads path and analyzes it.
func (s *Service) Run(ctx context.Context, path string) (*Report, error) {
	ctx, cancel := context.WithTimeout(ctx, RunTimeout)
	defer cancel()

	runID := uuid.New().String()
	ctx = logging.ContextWithRunID(ctx, runID)
	log := logging.WithFields(ctx, "path", path)

	start := time.Now()
	raw, err := LoadFile(path, s.opts.Load)
	if err != nil {
		log.Error("load failed", "error", err)
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	log.Info("file loaded",
		"records", raw.Len(),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return s.analyze(ctx, runID, raw)
}

// Analyze runs every stage after loading over an already loaded table.
func (s *Service) Analyze(ctx context.Context, raw *RawTable) (*Report, error) {
	runID := logging.RunIDFromContext(ctx)
	if runID == "" {
		runID = uuid.New().String()
		ctx = logging.ContextWithRunID(ctx, runID)
	}
	return s.analyze(ctx, runID, raw)
}

func (s *Service) analyze(ctx context.Context, runID string, raw *RawTable) (*Report, error) {
	log := logging.WithFields(ctx, "source", raw.Source)
	start := time.Now()

	report := &Report{
		RunID:       runID,
		Source:      raw.Source,
		GeneratedAt: start.UTC(),
		Raw:         raw,
		Describe:    Describe(raw),
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	clean, err := Clean(raw, s.opts.Clean)
	if err != nil {
		log.Error("clean failed", "error", err)
		return nil, fmt.Errorf("clean: %w", err)
	}
	report.Clean = clean
	log.Debug("table cleaned", "records", clean.Len())

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	views, err := BuildAllViews(clean)
	if err != nil {
		log.Error("views failed", "error", err)
		return nil, err
	}
	report.Views = views

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	report.Hypothesis, report.HypothesisErr = CompareCohorts(clean)
	if report.HypothesisErr != nil {
		log.Warn("hypothesis not evaluated", "error", report.HypothesisErr)
	} else {
		logHypothesis(log, report.Hypothesis)
	}

	report.Duration = time.Since(start)
	log.Info("analysis complete",
		"records", clean.Len(),
		"views", len(views),
		"duration_ms", report.Duration.Milliseconds(),
	)

	s.mu.Lock()
	s.latest = report
	s.mu.Unlock()

	return report, nil
}

func logHypothesis(log *slog.Logger, h *HypothesisResult) {
	for _, c := range h.Comparisons() {
		log.Info("cohort compared",
			"cohort", c.Cohort,
			"large_mean", c.Large.MeanSalary,
			"small_mean", c.Small.MeanSalary,
			"percent_difference", c.PercentDifference,
			"large_earns_more", c.LargeEarnsMore,
		)
	}
}
