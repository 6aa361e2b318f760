package logging

import (
	"log/slog"
	"strings"
)

// ReportWriter is an io.Writer implementation that forwards validation report
// output to slog, one entry per line.
type ReportWriter struct {
	logger *slog.Logger
}

// NewReportWriter constructs a ReportWriter bound to the provided logger.
func NewReportWriter(logger *slog.Logger) *ReportWriter {
	return &ReportWriter{logger: logger}
}

// Write logs the given bytes as individual report lines at info level.
func (w *ReportWriter) Write(p []byte) (int, error) {
	if w.logger != nil {
		for _, line := range strings.Split(strings.TrimRight(string(p), "\n"), "\n") {
			if line != "" {
				w.logger.Info("report", "line", line)
			}
		}
	}
	return len(p), nil
}
