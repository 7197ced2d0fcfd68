package recommendations

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"ecofootprint-backend/internal/llm"
	"ecofootprint-backend/internal/shared/telemetry"
	"ecofootprint-backend/internal/shared/util"
)

const (
	errorCategory        = "Error"
	defaultModelFailure  = "Failed to get recommendations from AI model."
	errorPlaceholderText = "No specific suggestion due to previous error."
	rawExcerptLimit      = 200
	bucketSize           = 2
)

var categoryKeys = [4]string{"transport", "food", "energy", "waste"}

// normalizeResponse turns one model generation into an Outcome. It never
// fails: every branch converges on a structurally valid RecommendationResult,
// with the failure tagged on the Outcome and mirrored in-band for the wire.
func normalizeResponse(gen llm.Generation) (outcome Outcome) {
	// Anything unexpected below degrades to a generic error result rather
	// than escaping to the caller.
	defer func() {
		if rec := recover(); rec != nil {
			telemetry.Error("normalize.panic", map[string]any{"error": fmt.Sprint(rec)})
			outcome = errorOutcome(FailureInternal, fmt.Sprintf("Unexpected error processing AI response: %v", rec))
		}
	}()

	if gen.Failed || strings.TrimSpace(gen.Text) == "" {
		reason := strings.TrimSpace(gen.Reason)
		if reason == "" {
			reason = defaultModelFailure
		}
		return errorOutcome(FailureModel, reason)
	}

	// Models frequently wrap JSON in markdown fences despite instructions.
	cleaned := strings.TrimSpace(gen.Text)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	var decoded any
	if err := json.Unmarshal([]byte(cleaned), &decoded); err != nil {
		msg := fmt.Sprintf("AI response format error (%v). Raw response: %s...", err, util.Excerpt(gen.Text, rawExcerptLimit))
		return errorOutcome(FailureFormat, msg)
	}

	top, ok := decoded.(map[string]any)
	if !ok {
		return structureError("response is not a JSON object", gen.Text)
	}
	rawGlobal, hasGlobal := top["global_recommendation"]
	rawCategories, hasCategories := top["category_recommendations"]
	if !hasGlobal || !hasCategories {
		return structureError("main keys 'global_recommendation' or 'category_recommendations' missing", gen.Text)
	}

	global, err := extractGlobal(rawGlobal)
	if err != nil {
		return structureError(err.Error(), gen.Text)
	}

	catMap, ok := rawCategories.(map[string]any)
	if !ok {
		return structureError("invalid structure for 'category_recommendations'", gen.Text)
	}
	buckets := map[string][]CategorySuggestion{}
	for _, key := range categoryKeys {
		buckets[key] = extractBucket(key, catMap[key])
	}

	return Outcome{
		Result: RecommendationResult{
			GlobalRecommendation: global,
			CategoryRecommendations: CategoryRecommendations{
				Transport: buckets["transport"],
				Food:      buckets["food"],
				Energy:    buckets["energy"],
				Waste:     buckets["waste"],
			},
		},
	}
}

// extractGlobal validates and coerces the global_recommendation object.
// Both sub-keys must be present; a null category defaults to "General".
func extractGlobal(raw any) (Suggestion, error) {
	obj, ok := raw.(map[string]any)
	if !ok {
		return Suggestion{}, fmt.Errorf("invalid structure for 'global_recommendation'")
	}
	rawCategory, hasCategory := obj["category"]
	rawSuggestion, hasSuggestion := obj["suggestion"]
	if !hasCategory || !hasSuggestion {
		return Suggestion{}, fmt.Errorf("invalid structure for 'global_recommendation'")
	}
	category := coerceString(rawCategory)
	if category == "" {
		category = "General"
	}
	suggestion := coerceString(rawSuggestion)
	if suggestion == "" {
		suggestion = "No global suggestion provided."
	}
	return Suggestion{Category: category, Suggestion: suggestion}, nil
}

// extractBucket collects valid items for one category and forces the bucket
// to exactly two entries. Malformed items are skipped so a partially bad
// response keeps its well-formed siblings; short buckets are padded and long
// ones truncated in model-emitted order.
func extractBucket(key string, raw any) []CategorySuggestion {
	items, ok := raw.([]any)
	if !ok {
		if raw != nil {
			telemetry.Warn("normalize.bucket_not_a_list", map[string]any{"category": key})
		}
		items = nil
	}

	collected := make([]CategorySuggestion, 0, bucketSize)
	for _, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			telemetry.Warn("normalize.item_skipped", map[string]any{"category": key})
			continue
		}
		rawSuggestion, has := obj["suggestion"]
		if !has {
			telemetry.Warn("normalize.item_skipped", map[string]any{"category": key})
			continue
		}
		text := coerceString(rawSuggestion)
		if text == "" {
			telemetry.Warn("normalize.item_skipped", map[string]any{"category": key})
			continue
		}
		collected = append(collected, CategorySuggestion{Suggestion: text})
		if len(collected) == bucketSize {
			break
		}
	}

	for i := len(collected); i < bucketSize; i++ {
		collected = append(collected, CategorySuggestion{
			Suggestion: fmt.Sprintf("No suggestion available for this category (slot %d).", i+1),
		})
	}
	return collected
}

func structureError(detail, raw string) Outcome {
	msg := fmt.Sprintf("AI response structure error: %s. Raw response: %s...", detail, util.Excerpt(raw, rawExcerptLimit))
	return errorOutcome(FailureStructure, msg)
}

// errorOutcome builds the degraded-but-valid result: an error-labeled global
// suggestion, four fully padded buckets, and the message in notes.
func errorOutcome(kind FailureKind, message string) Outcome {
	notes := message
	return Outcome{
		Result: RecommendationResult{
			GlobalRecommendation: Suggestion{Category: errorCategory, Suggestion: message},
			CategoryRecommendations: CategoryRecommendations{
				Transport: placeholderBucket(),
				Food:      placeholderBucket(),
				Energy:    placeholderBucket(),
				Waste:     placeholderBucket(),
			},
			Notes: &notes,
		},
		Kind:    kind,
		Message: message,
	}
}

func placeholderBucket() []CategorySuggestion {
	bucket := make([]CategorySuggestion, bucketSize)
	for i := range bucket {
		bucket[i] = CategorySuggestion{Suggestion: errorPlaceholderText}
	}
	return bucket
}

// coerceString mirrors the loose coercion the prompt contract tolerates:
// once the schema is satisfied, the model's own wording is trusted.
func coerceString(raw any) string {
	switch v := raw.(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	case nil:
		return ""
	default:
		return ""
	}
}
