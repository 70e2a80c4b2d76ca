package controller

import (
	"context"

	"github.com/dmitrijs2005/usersadmin/internal/client/journal"
)

// Severity classifies a notification.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Notifier shows a transient message to the operator.
type Notifier interface {
	Notify(message string, severity Severity)
}

// Confirmer asks the operator a yes/no question and blocks until answered.
// Declining is a normal answer (false, nil), not an error.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) (bool, error)
}

// Recorder receives one entry per confirmed mutating action.
type Recorder interface {
	Append(ctx context.Context, e journal.Entry) error
}
