package logging

import (
	"github.com/google/uuid"
)

// NewRunID returns a short identifier for one invocation of the tool.
func NewRunID() string {
	id := uuid.NewString()
	return "run-" + id[:8]
}

// WithRunID tags every line with run_id. Runs appending to the same debug log
// stay distinguishable this way.
func (l *SlogLogger) WithRunID(runID string) *SlogLogger {
	if l == nil || runID == "" {
		return l
	}
	return l.With("run_id", runID)
}
