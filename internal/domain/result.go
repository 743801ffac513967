package domain

import "time"

// ProbeResult is the outcome of executing one probe.
type ProbeResult struct {
	Name       string    `json:"name"`
	Success    bool      `json:"success"`
	Detail     string    `json:"detail"`
	Severity   Severity  `json:"severity"`
	Kind       ErrorKind `json:"kind,omitempty"`
	HTTPStatus int       `json:"http_status,omitempty"` // 0 when no response was received
	LatencyMS  float64   `json:"latency_ms"`
	Skipped    bool      `json:"skipped,omitempty"`
	PageTitle  string    `json:"page_title,omitempty"`
	BodyMMH3   string    `json:"body_mmh3,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

// IsError reports a failure that should fail the run.
func (r ProbeResult) IsError() bool {
	return !r.Success && r.Severity != SeverityWarning
}

// IsWarning reports a failure that is only reported.
func (r ProbeResult) IsWarning() bool {
	return !r.Success && r.Severity == SeverityWarning
}

// Issue renders the result the way the issue list prints it,
// e.g. "ERROR: Weekly Bookings: no token available".
func (r ProbeResult) Issue() string {
	sev := SeverityError
	if r.Severity == SeverityWarning {
		sev = SeverityWarning
	}
	return string(sev) + ": " + r.Name + ": " + r.Detail
}
