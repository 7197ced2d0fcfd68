package recommendations

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"ecofootprint-backend/internal/shared/telemetry"
)

const forwardTimeout = 10 * time.Second

// Forwarder submits generated results to an external collector. Delivery is
// fire-and-forget: no failure here may affect the returned result.
type Forwarder struct {
	URL        string
	HTTPClient *http.Client
}

// NewForwarder constructs a Forwarder with a bounded-wait HTTP client.
func NewForwarder(url string) *Forwarder {
	return &Forwarder{
		URL:        url,
		HTTPClient: &http.Client{Timeout: forwardTimeout},
	}
}

// Forward POSTs the result JSON to the collector. All failures are logged
// and swallowed.
func (f *Forwarder) Forward(ctx context.Context, result RecommendationResult) {
	if f == nil || strings.TrimSpace(f.URL) == "" {
		return
	}

	payload, err := json.Marshal(result)
	if err != nil {
		telemetry.Error("forward.marshal_failed", map[string]any{"error": err.Error()})
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.URL, bytes.NewReader(payload))
	if err != nil {
		telemetry.Error("forward.request_failed", map[string]any{"error": err.Error(), "url": f.URL})
		return
	}
	req.Header.Set("Content-Type", "application/json")

	client := f.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: forwardTimeout}
	}
	resp, err := client.Do(req)
	if err != nil {
		telemetry.Error("forward.send_failed", map[string]any{"error": err.Error(), "url": f.URL})
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		telemetry.Error("forward.bad_status", map[string]any{"status": resp.StatusCode, "url": f.URL})
		return
	}
	telemetry.Info("forward.sent", map[string]any{"status": resp.StatusCode, "url": f.URL})
}
