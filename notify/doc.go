// Package notify delivers property resolution and validation events.
//
// Core types:
//   - Notifier: Interface for sending notifications
//   - Event: Notification event with type, message, and metadata
//   - EventType: Type of event (resolution started, file loaded, property missing, etc.)
//
// Implementations:
//   - LogNotifier: Logs events through slog
//   - WebhookNotifier: Posts events as JSON to an HTTP endpoint
//   - MultiNotifier: Combines multiple notifiers
//   - Recorder: Keeps events in memory (for tests and reports)
//   - NopNotifier: No-op notifier
//
// Example usage:
//
//	notifier := notify.NewMultiNotifier(
//	    notify.NewLogNotifier(logger),
//	    notify.NewWebhookNotifier(url, nil),
//	)
//	err := notifier.Notify(ctx, notify.Event{
//	    Type:     notify.EventPropertyRecommended,
//	    Property: "dbUrl",
//	    Severity: notify.SeverityWarning,
//	})
package notify
