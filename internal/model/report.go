package model

import "time"

// Report is the three-way classification of one log file.
// Entries are verbatim source lines in order of appearance.
type Report struct {
	Errors      []string `json:"errors"`
	Warnings    []string `json:"warnings"`
	Performance []string `json:"performance"`
}

// NewReport returns a Report with empty, non-nil sequences.
func NewReport() Report {
	return Report{
		Errors:      []string{},
		Warnings:    []string{},
		Performance: []string{},
	}
}

// Summary holds line counts gathered alongside a Report.
type Summary struct {
	Lines             int `json:"lines"`
	Errors            int `json:"errors"`
	Warnings          int `json:"warnings"`
	PerformanceBlocks int `json:"performance_blocks"`
	Critical          int `json:"critical"`
}

// Analysis is the result of one locate-classify pass.
// An empty Path means no log file matched.
type Analysis struct {
	Path       string    `json:"path,omitempty"`
	Created    time.Time `json:"created,omitempty"`
	Modified   time.Time `json:"modified,omitempty"`
	AnalyzedAt time.Time `json:"analyzed_at"`
	Report     Report    `json:"report"`
	Summary    Summary   `json:"summary"`
}

// Found reports whether a log file was located.
func (a Analysis) Found() bool {
	return a.Path != ""
}
