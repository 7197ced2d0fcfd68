package recommendations

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"ecofootprint-backend/internal/llm"
	"ecofootprint-backend/internal/shared/metrics"
	"ecofootprint-backend/internal/shared/telemetry"
)

// AnonymousUser is the identity of an unauthenticated caller. It is a valid,
// expected principal, not an error.
const AnonymousUser = "No Login"

const dateLayout = "2006-01-02"

// Service orchestrates one recommendation request: prompt, model call,
// normalization, best-effort persistence, and external forwarding.
type Service struct {
	Gateway   *llm.Gateway
	Repo      Repo
	Forwarder *Forwarder
}

// Generate runs the full pipeline for one footprint. It always returns a
// structurally valid outcome; persistence and forwarding are skipped for
// failed outcomes, and their own failures degrade to warnings in notes.
func (s *Service) Generate(ctx context.Context, input FootprintInput, userID string) Outcome {
	metrics.IncRecommendationStarted()
	start := time.Now()
	defer func() {
		metrics.ObserveRecommendationDurationMs(metrics.DurationMillis(time.Since(start)))
	}()

	if strings.TrimSpace(userID) == "" {
		userID = AnonymousUser
	}

	telemetry.Info("recommendation.start", map[string]any{
		"user_id": userID,
		"date":    input.Date,
		"result":  input.Result,
	})

	prompt := BuildPrompt(input)
	gen := s.Gateway.Generate(ctx, prompt)
	outcome := normalizeResponse(gen)
	if outcome.Failed() {
		metrics.IncRecommendationFailed()
		telemetry.Error("recommendation.degraded", map[string]any{
			"user_id": userID,
			"kind":    int(outcome.Kind),
			"message": outcome.Message,
		})
		return outcome
	}

	calcDate, err := time.Parse(dateLayout, input.Date)
	if err != nil {
		telemetry.Warn("recommendation.bad_date", map[string]any{"user_id": userID, "date": input.Date})
		appendNote(&outcome.Result, "Warning: footprint date "+input.Date+" is not a valid YYYY-MM-DD date; the result was not stored.")
	} else if s.Repo != nil {
		rec := Record{
			ID:              uuid.NewString(),
			UserID:          userID,
			CalculationDate: calcDate,
			Result:          outcome.Result,
			CreatedAt:       time.Now().UTC(),
		}
		if err := s.Repo.Insert(ctx, rec); err != nil {
			telemetry.Error("recommendation.persist_failed", map[string]any{"user_id": userID, "error": err.Error()})
			appendNote(&outcome.Result, "Warning: the recommendations could not be stored.")
		} else {
			telemetry.Info("recommendation.persisted", map[string]any{"user_id": userID, "record_id": rec.ID})
		}
	}

	// Delivery failures are logged inside the forwarder and never reach
	// the result or its notes.
	s.Forwarder.Forward(ctx, outcome.Result)

	metrics.IncRecommendationCompleted()
	return outcome
}

// appendNote adds a warning to the result without flipping the outcome to a
// failure. Multiple warnings accumulate separated by a space.
func appendNote(result *RecommendationResult, note string) {
	if result.Notes == nil || strings.TrimSpace(*result.Notes) == "" {
		result.Notes = &note
		return
	}
	combined := *result.Notes + " " + note
	result.Notes = &combined
}
