package classifier

import (
	"strings"

	"github.com/atikulmunna/logscan/internal/model"
)

// Markers searched for in each line, in priority order.
const (
	ErrorMarker       = "ERROR"
	WarningMarker     = "WARNING"
	PerformanceMarker = "Performance Metrics"
	CriticalMarker    = "CRITICAL"
)

// PerformanceWindow is the number of lines captured per performance block,
// the marker line included.
const PerformanceWindow = 4

// Kind is the category a single line falls into.
type Kind int

const (
	KindOther Kind = iota
	KindError
	KindWarning
	KindPerformance
)

func (k Kind) String() string {
	switch k {
	case KindError:
		return "error"
	case KindWarning:
		return "warning"
	case KindPerformance:
		return "performance"
	default:
		return "other"
	}
}

// KindOf classifies a line by substring. ERROR wins over WARNING, which wins
// over the performance marker.
func KindOf(line string) Kind {
	switch {
	case strings.Contains(line, ErrorMarker):
		return KindError
	case strings.Contains(line, WarningMarker):
		return KindWarning
	case strings.Contains(line, PerformanceMarker):
		return KindPerformance
	default:
		return KindOther
	}
}

// Lines splits text on '\n' only. A trailing newline yields a final empty
// line and "" yields a single empty line.
func Lines(text string) []string {
	return strings.Split(text, "\n")
}

// Classify partitions text into a Report. Any input is valid.
func Classify(text string) model.Report {
	return ClassifyLines(Lines(text))
}

// ClassifyLines builds a Report from already split lines.
//
// Every performance marker starts its own window, so overlapping blocks
// record the shared lines more than once.
func ClassifyLines(lines []string) model.Report {
	report := model.NewReport()

	for i, line := range lines {
		switch KindOf(line) {
		case KindError:
			report.Errors = append(report.Errors, line)
		case KindWarning:
			report.Warnings = append(report.Warnings, line)
		case KindPerformance:
			end := min(i+PerformanceWindow, len(lines))
			report.Performance = append(report.Performance, lines[i:end]...)
		}
	}

	return report
}

// Summarize counts what ClassifyLines found in lines. CRITICAL lines are
// counted on their own and do not affect the report.
func Summarize(lines []string, report model.Report) model.Summary {
	s := model.Summary{
		Lines:    len(lines),
		Errors:   len(report.Errors),
		Warnings: len(report.Warnings),
	}
	for _, line := range lines {
		if KindOf(line) == KindPerformance {
			s.PerformanceBlocks++
		}
		if strings.Contains(line, CriticalMarker) {
			s.Critical++
		}
	}
	return s
}
