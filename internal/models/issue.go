package models

import (
	"encoding/json"
	"strings"
)

// Severity classifies how serious a validation finding is.
type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

// Issue is a single human-readable finding from a validation stage.
// Severity is carried as structured data; downstream decisions inspect it
// instead of scanning message text.
type Issue struct {
	Message  string
	Severity Severity
}

// Info creates an info-severity issue.
func Info(message string) Issue {
	return Issue{Message: message, Severity: SeverityInfo}
}

// Warning creates a warning-severity issue.
func Warning(message string) Issue {
	return Issue{Message: message, Severity: SeverityWarning}
}

// Critical creates a critical-severity issue.
func Critical(message string) Issue {
	return Issue{Message: message, Severity: SeverityCritical}
}

// MarshalJSON serializes an issue as its plain message string, keeping the
// wire contract of the verdict document unchanged.
func (i Issue) MarshalJSON() ([]byte, error) {
	return json.Marshal(i.Message)
}

// UnmarshalJSON rehydrates an issue from its message string, deriving the
// severity from the message conventions used by the validators.
func (i *Issue) UnmarshalJSON(data []byte) error {
	var msg string
	if err := json.Unmarshal(data, &msg); err != nil {
		return err
	}
	i.Message = msg
	switch {
	case strings.Contains(strings.ToLower(msg), "critical"):
		i.Severity = SeverityCritical
	case strings.HasPrefix(msg, "WARNING"), strings.HasPrefix(msg, "FRAUD ALERT"):
		i.Severity = SeverityWarning
	default:
		i.Severity = SeverityInfo
	}
	return nil
}

// Messages flattens a list of issues to their message strings.
func Messages(issues []Issue) []string {
	out := make([]string, 0, len(issues))
	for _, issue := range issues {
		out = append(out, issue.Message)
	}
	return out
}

// HasCritical reports whether any issue in the list carries critical severity.
func HasCritical(issues []Issue) bool {
	for _, issue := range issues {
		if issue.Severity == SeverityCritical {
			return true
		}
	}
	return false
}
