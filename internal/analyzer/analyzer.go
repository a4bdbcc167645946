package analyzer

import (
	"log/slog"
	"time"

	"github.com/atikulmunna/logscan/internal/classifier"
	"github.com/atikulmunna/logscan/internal/config"
	"github.com/atikulmunna/logscan/internal/locator"
	"github.com/atikulmunna/logscan/internal/model"
)

// Analyzer runs one locate-classify pass per call.
type Analyzer struct {
	dir     string
	pattern string
	now     func() time.Time
}

// New creates an Analyzer for the configured directory and pattern.
func New(cfg config.Config) *Analyzer {
	return &Analyzer{
		dir:     cfg.LogDirectory,
		pattern: cfg.Pattern,
		now:     time.Now,
	}
}

// Run locates the newest log and classifies it. When no log matches, the
// returned Analysis has Found() == false and an empty report.
func (a *Analyzer) Run() (model.Analysis, error) {
	result := model.Analysis{
		AnalyzedAt: a.now(),
		Report:     model.NewReport(),
	}

	lf, err := locator.Latest(a.dir, a.pattern)
	if err != nil {
		return model.Analysis{}, err
	}
	if lf == nil {
		slog.Debug("no log file matched", "dir", a.dir, "pattern", a.pattern)
		return result, nil
	}

	lines := classifier.Lines(lf.Content)
	result.Path = lf.Path
	result.Created = lf.Created
	result.Modified = lf.Modified
	result.Report = classifier.ClassifyLines(lines)
	result.Summary = classifier.Summarize(lines, result.Report)

	slog.Debug("analyzed log file",
		"path", lf.Path,
		"created", lf.Created,
		"lines", result.Summary.Lines,
		"errors", result.Summary.Errors,
		"warnings", result.Summary.Warnings)
	return result, nil
}
