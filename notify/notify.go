package notify

import (
	"context"
	"time"
)

// =============================================================================
// Notification Types
// =============================================================================

// EventType represents the type of resolution event.
type EventType string

// Event type constants.
const (
	EventResolutionStarted   EventType = "resolution_started"
	EventResolutionCompleted EventType = "resolution_completed"
	EventResolutionFailed    EventType = "resolution_failed"
	EventFileLoaded          EventType = "file_loaded"
	EventPropertyMissing     EventType = "property_missing"
	EventPropertyRecommended EventType = "property_recommended"
)

// Severity constants for notifications.
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
	SeverityInfo    = "info"
)

// Event describes a resolution or validation event.
type Event struct {
	Type      EventType      `json:"type"`
	RunID     string         `json:"run_id"`
	Unit      string         `json:"unit,omitempty"`
	Path      string         `json:"path,omitempty"`
	Property  string         `json:"property,omitempty"`
	Message   string         `json:"message"`
	Severity  string         `json:"severity"` // SeverityInfo, SeverityWarning, SeverityError
	Timestamp time.Time      `json:"timestamp"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

// =============================================================================
// Notifier Interface
// =============================================================================

// Notifier sends notifications about resolution events.
type Notifier interface {
	// Notify sends a notification. Implementations should handle errors
	// gracefully; a failed notification never fails a resolution.
	Notify(ctx context.Context, event Event) error
}

// =============================================================================
// Context Injection
// =============================================================================

type serviceContextKey string

const notifierServiceKey serviceContextKey = "propflow.notifier"

// WithNotifier adds a Notifier to the context.
func WithNotifier(ctx context.Context, n Notifier) context.Context {
	return context.WithValue(ctx, notifierServiceKey, n)
}

// NotifierFromContext extracts the Notifier from context.
// Returns nil if no notifier is configured.
func NotifierFromContext(ctx context.Context) Notifier {
	if n, ok := ctx.Value(notifierServiceKey).(Notifier); ok {
		return n
	}
	return nil
}

// MustNotifierFromContext extracts the Notifier or panics.
func MustNotifierFromContext(ctx context.Context) Notifier {
	n := NotifierFromContext(ctx)
	if n == nil {
		panic("propflow: Notifier not found in context")
	}
	return n
}
