package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
)

type stubClient struct {
	text string
	err  error
}

func (s stubClient) GenerateText(ctx context.Context, prompt string) (string, error) {
	return s.text, s.err
}

func TestGatewaySuccessPassesTextThrough(t *testing.T) {
	g := &Gateway{Client: stubClient{text: `{"ok":true}`}}

	gen := g.Generate(context.Background(), "prompt")
	if gen.Failed {
		t.Fatalf("expected success, got failure: %s", gen.Reason)
	}
	if gen.Text != `{"ok":true}` {
		t.Fatalf("unexpected text: %q", gen.Text)
	}
}

func TestGatewayTransportErrorBecomesData(t *testing.T) {
	g := &Gateway{Client: stubClient{err: errors.New("connection refused")}}

	gen := g.Generate(context.Background(), "prompt")
	if !gen.Failed {
		t.Fatalf("expected failure")
	}
	if !strings.HasPrefix(gen.Reason, "Error communicating with model:") {
		t.Fatalf("unexpected reason: %q", gen.Reason)
	}
	if !strings.Contains(gen.Reason, "connection refused") {
		t.Fatalf("reason should carry the cause: %q", gen.Reason)
	}
}

func TestGatewayBlockedResponse(t *testing.T) {
	g := &Gateway{Client: stubClient{err: fmt.Errorf("%w: SAFETY", ErrBlocked)}}

	gen := g.Generate(context.Background(), "prompt")
	if !gen.Failed {
		t.Fatalf("expected failure")
	}
	if !strings.HasPrefix(gen.Reason, "Blocked:") {
		t.Fatalf("unexpected reason: %q", gen.Reason)
	}
}

func TestGatewayEmptyResponse(t *testing.T) {
	for _, client := range []Client{
		stubClient{text: "   "},
		stubClient{err: ErrEmpty},
	} {
		g := &Gateway{Client: client}
		gen := g.Generate(context.Background(), "prompt")
		if !gen.Failed {
			t.Fatalf("expected failure for empty response")
		}
		if !strings.Contains(gen.Reason, "empty model response") {
			t.Fatalf("unexpected reason: %q", gen.Reason)
		}
	}
}

func TestUnavailableClientAlwaysFails(t *testing.T) {
	g := &Gateway{Client: UnavailableClient{Reason: "model client not configured: missing GEMINI_API_KEY"}}

	gen := g.Generate(context.Background(), "prompt")
	if !gen.Failed {
		t.Fatalf("expected failure")
	}
	if !strings.Contains(gen.Reason, "missing GEMINI_API_KEY") {
		t.Fatalf("unexpected reason: %q", gen.Reason)
	}
}
