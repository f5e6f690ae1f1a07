package notify

import (
	"context"

	phttp "github.com/randalmurphal/propflow/http"
)

// =============================================================================
// WebhookNotifier
// =============================================================================

// WebhookNotifier posts events as JSON to an HTTP endpoint.
type WebhookNotifier struct {
	URL     string
	Headers map[string]string
	Client  *phttp.Client

	// MinSeverity drops events less severe than it. Empty sends everything.
	MinSeverity string
}

// NewWebhookNotifier creates a webhook notifier.
func NewWebhookNotifier(url string, headers map[string]string) *WebhookNotifier {
	return &WebhookNotifier{
		URL:     url,
		Headers: headers,
		Client:  phttp.NewClient(phttp.ClientConfig{ServiceName: "webhook"}),
	}
}

// Notify implements Notifier.
func (n *WebhookNotifier) Notify(ctx context.Context, event Event) error {
	if severityRank(event.Severity) < severityRank(n.MinSeverity) {
		return nil
	}

	headers := map[string]string{"X-Propflow-Event": string(event.Type)}
	if event.RunID != "" {
		headers["X-Propflow-Run"] = event.RunID
	}
	for k, v := range n.Headers {
		headers[k] = v
	}
	return n.Client.PostJSON(ctx, n.URL, event, headers)
}

func severityRank(s string) int {
	switch s {
	case SeverityError:
		return 2
	case SeverityWarning:
		return 1
	default:
		return 0
	}
}
