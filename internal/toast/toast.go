// Package toast defines the single user-facing notification value used by
// the wizard status area and the CLI commands.
package toast

import "fmt"

// Severity tags a notification.
type Severity string

const (
	Success Severity = "success"
	Error   Severity = "error"
	Info    Severity = "info"
)

// Toast is one human-readable notification: title, message, severity.
type Toast struct {
	Title    string
	Message  string
	Severity Severity
}

// Successf builds a success toast with a formatted message.
func Successf(title, format string, args ...any) Toast {
	return Toast{Title: title, Message: fmt.Sprintf(format, args...), Severity: Success}
}

// Errorf builds an error toast with a formatted message.
func Errorf(title, format string, args ...any) Toast {
	return Toast{Title: title, Message: fmt.Sprintf(format, args...), Severity: Error}
}

func (t Toast) String() string {
	if t.Title == "" {
		return t.Message
	}
	return t.Title + ": " + t.Message
}

// Zero reports whether the toast is empty.
func (t Toast) Zero() bool {
	return t.Title == "" && t.Message == ""
}
