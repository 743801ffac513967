package domain

import "strings"

// Severity decides whether a failed probe fails the whole run.
type Severity string

const (
	SeverityError   Severity = "ERROR"
	SeverityWarning Severity = "WARNING"
)

// ParseSeverity accepts "error"/"warning" in any case; empty means ERROR.
func ParseSeverity(s string) (Severity, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", string(SeverityError):
		return SeverityError, true
	case string(SeverityWarning), "WARN":
		return SeverityWarning, true
	}
	return "", false
}

// ErrorKind classifies why a probe failed. Empty on success.
type ErrorKind string

const (
	KindNetwork          ErrorKind = "NETWORK"
	KindUnexpectedStatus ErrorKind = "UNEXPECTED_STATUS"
	KindMissingData      ErrorKind = "MISSING_DATA"
	KindAuthUnavailable  ErrorKind = "AUTH_UNAVAILABLE"
)
