package recommendations

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"ecofootprint-backend/internal/llm"
)

type stubModel struct {
	text string
	err  error
}

func (s stubModel) GenerateText(ctx context.Context, prompt string) (string, error) {
	return s.text, s.err
}

type recordingRepo struct {
	mu      sync.Mutex
	records []Record
	err     error
}

func (r *recordingRepo) Insert(ctx context.Context, rec Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.records = append(r.records, rec)
	return nil
}

func newService(client llm.Client, repo Repo) *Service {
	return &Service{
		Gateway: &llm.Gateway{Client: client},
		Repo:    repo,
	}
}

func TestGeneratePersistsSuccessfulOutcome(t *testing.T) {
	repo := &recordingRepo{}
	svc := newService(stubModel{text: promptExampleJSON}, repo)

	outcome := svc.Generate(context.Background(), testInput(), "user-1")

	if outcome.Failed() {
		t.Fatalf("unexpected failure: %q", outcome.Message)
	}
	if outcome.Result.Notes != nil {
		t.Fatalf("expected nil notes, got %q", *outcome.Result.Notes)
	}
	if len(repo.records) != 1 {
		t.Fatalf("expected 1 persisted record, got %d", len(repo.records))
	}
	rec := repo.records[0]
	if rec.UserID != "user-1" {
		t.Fatalf("UserID = %q, want user-1", rec.UserID)
	}
	if rec.ID == "" {
		t.Fatalf("expected generated record ID")
	}
	if got := rec.CalculationDate.Format("2006-01-02"); got != "2026-01-15" {
		t.Fatalf("CalculationDate = %q, want 2026-01-15", got)
	}
	if rec.Result.GlobalRecommendation.Suggestion != outcome.Result.GlobalRecommendation.Suggestion {
		t.Fatalf("persisted result differs from returned result")
	}
}

func TestGenerateBlankUserBecomesAnonymous(t *testing.T) {
	repo := &recordingRepo{}
	svc := newService(stubModel{text: promptExampleJSON}, repo)

	outcome := svc.Generate(context.Background(), testInput(), "   ")

	if outcome.Failed() {
		t.Fatalf("unexpected failure: %q", outcome.Message)
	}
	if len(repo.records) != 1 {
		t.Fatalf("expected 1 persisted record, got %d", len(repo.records))
	}
	if repo.records[0].UserID != AnonymousUser {
		t.Fatalf("UserID = %q, want %q", repo.records[0].UserID, AnonymousUser)
	}
}

func TestGenerateFailedOutcomeIsNotPersisted(t *testing.T) {
	repo := &recordingRepo{}
	svc := newService(stubModel{err: errors.New("connection refused")}, repo)

	outcome := svc.Generate(context.Background(), testInput(), "user-1")

	if outcome.Kind != FailureModel {
		t.Fatalf("Kind = %v, want FailureModel", outcome.Kind)
	}
	if len(repo.records) != 0 {
		t.Fatalf("failed outcome must not be persisted, got %d records", len(repo.records))
	}
}

func TestGenerateInvalidDateSkipsPersistWithWarning(t *testing.T) {
	repo := &recordingRepo{}
	svc := newService(stubModel{text: promptExampleJSON}, repo)

	input := testInput()
	input.Date = "15/01/2026"
	outcome := svc.Generate(context.Background(), input, "user-1")

	if outcome.Failed() {
		t.Fatalf("bad date must not fail the outcome: %q", outcome.Message)
	}
	if len(repo.records) != 0 {
		t.Fatalf("record with invalid date must not be persisted")
	}
	if outcome.Result.Notes == nil || !strings.Contains(*outcome.Result.Notes, "not a valid YYYY-MM-DD date") {
		t.Fatalf("expected date warning in notes, got %v", outcome.Result.Notes)
	}
}

func TestGenerateRepoFailureDegradesToWarning(t *testing.T) {
	repo := &recordingRepo{err: errors.New("insert failed")}
	svc := newService(stubModel{text: promptExampleJSON}, repo)

	outcome := svc.Generate(context.Background(), testInput(), "user-1")

	if outcome.Failed() {
		t.Fatalf("storage failure must not fail the outcome: %q", outcome.Message)
	}
	if outcome.Result.Notes == nil || *outcome.Result.Notes != "Warning: the recommendations could not be stored." {
		t.Fatalf("expected storage warning in notes, got %v", outcome.Result.Notes)
	}
}

func TestGenerateForwardsSuccessfulOutcome(t *testing.T) {
	var mu sync.Mutex
	var forwarded []byte
	collector := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		mu.Lock()
		forwarded = body
		mu.Unlock()
		w.WriteHeader(http.StatusNoContent)
	}))
	defer collector.Close()

	svc := newService(stubModel{text: promptExampleJSON}, &recordingRepo{})
	svc.Forwarder = NewForwarder(collector.URL)

	outcome := svc.Generate(context.Background(), testInput(), "user-1")
	if outcome.Failed() {
		t.Fatalf("unexpected failure: %q", outcome.Message)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(forwarded) == 0 {
		t.Fatalf("expected forwarded payload")
	}
	var payload RecommendationResult
	if err := json.Unmarshal(forwarded, &payload); err != nil {
		t.Fatalf("forwarded payload not valid JSON: %v", err)
	}
	if payload.GlobalRecommendation.Category != "General" {
		t.Fatalf("unexpected forwarded payload: %+v", payload)
	}
}

func TestGenerateForwardFailureIsSwallowed(t *testing.T) {
	collector := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer collector.Close()

	svc := newService(stubModel{text: promptExampleJSON}, &recordingRepo{})
	svc.Forwarder = NewForwarder(collector.URL)

	outcome := svc.Generate(context.Background(), testInput(), "user-1")
	if outcome.Failed() {
		t.Fatalf("forward failure must not fail the outcome: %q", outcome.Message)
	}
	if outcome.Result.Notes != nil {
		t.Fatalf("forward failure must not touch notes, got %q", *outcome.Result.Notes)
	}
}

func TestGenerateFailedOutcomeIsNotForwarded(t *testing.T) {
	var called bool
	collector := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusNoContent)
	}))
	defer collector.Close()

	svc := newService(stubModel{text: "not json at all"}, &recordingRepo{})
	svc.Forwarder = NewForwarder(collector.URL)

	outcome := svc.Generate(context.Background(), testInput(), "user-1")
	if outcome.Kind != FailureFormat {
		t.Fatalf("Kind = %v, want FailureFormat", outcome.Kind)
	}
	if called {
		t.Fatalf("failed outcome must not be forwarded")
	}
}
