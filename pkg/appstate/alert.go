package appstate

import "github.com/google/uuid"

// Alert kinds.
const (
	AlertSuccess = "success"
	AlertDanger  = "danger"
)

// NewAlert builds an alert with a fresh id.
func NewAlert(message, kind string) Alert {
	return Alert{
		ID:      uuid.New().String(),
		Message: message,
		Kind:    kind,
	}
}
