package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Client abstracts generative model providers.
type Client interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// ErrBlocked signals that the model refused the prompt via content filtering.
var ErrBlocked = errors.New("generation blocked by content filter")

// ErrEmpty signals that the model returned no generated content.
var ErrEmpty = errors.New("model returned no content")

// UnavailableClient stands in when no provider is configured. Every call
// fails with the configured reason, so downstream layers see a normal
// generation failure instead of probing a nil client.
type UnavailableClient struct {
	Reason string
}

// GenerateText always fails.
func (c UnavailableClient) GenerateText(ctx context.Context, prompt string) (string, error) {
	_ = ctx
	_ = prompt
	reason := strings.TrimSpace(c.Reason)
	if reason == "" {
		reason = "model client not configured"
	}
	return "", errors.New(reason)
}

// Generation is the outcome of one model call. Failures are carried as data:
// the gateway never returns a Go error, because the normalizer treats a
// refused model and a garbage response the same way.
type Generation struct {
	Text   string
	Failed bool
	Reason string
}

// Gateway wraps a Client and converts every failure mode into a Generation.
// One call per request; retries belong to infrastructure, not here.
type Gateway struct {
	Client  Client
	Timeout time.Duration
}

const defaultCallTimeout = 60 * time.Second

// Generate invokes the model once with a bounded wait.
func (g *Gateway) Generate(ctx context.Context, prompt string) Generation {
	timeout := g.Timeout
	if timeout <= 0 {
		timeout = defaultCallTimeout
	}
	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	text, err := g.Client.GenerateText(callCtx, prompt)
	switch {
	case err == nil && strings.TrimSpace(text) != "":
		return Generation{Text: text}
	case err == nil || errors.Is(err, ErrEmpty):
		return Generation{Failed: true, Reason: "Could not generate recommendations due to an empty model response."}
	case errors.Is(err, ErrBlocked):
		return Generation{Failed: true, Reason: fmt.Sprintf("Blocked: %v", err)}
	default:
		return Generation{Failed: true, Reason: fmt.Sprintf("Error communicating with model: %v", err)}
	}
}
