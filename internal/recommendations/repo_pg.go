package recommendations

import (
	"context"
	"database/sql"
	"encoding/json"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Insert writes one recommendation set: the full JSON payload plus the nine
// suggestion texts broken out into flat columns for query convenience.
func (r *PGRepo) Insert(ctx context.Context, rec Record) error {
	const query = `
INSERT INTO user_recommendations (
	id, user_id, calculation_date, recommendations_payload,
	global_rec_suggestion,
	transport_rec1_suggestion, transport_rec2_suggestion,
	food_rec1_suggestion, food_rec2_suggestion,
	energy_rec1_suggestion, energy_rec2_suggestion,
	waste_rec1_suggestion, waste_rec2_suggestion,
	created_at
)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	payload, err := json.Marshal(rec.Result)
	if err != nil {
		return err
	}

	cats := rec.Result.CategoryRecommendations
	_, err = r.DB.ExecContext(ctx, query,
		rec.ID,
		rec.UserID,
		rec.CalculationDate,
		payload,
		rec.Result.GlobalRecommendation.Suggestion,
		suggestionAt(cats.Transport, 0),
		suggestionAt(cats.Transport, 1),
		suggestionAt(cats.Food, 0),
		suggestionAt(cats.Food, 1),
		suggestionAt(cats.Energy, 0),
		suggestionAt(cats.Energy, 1),
		suggestionAt(cats.Waste, 0),
		suggestionAt(cats.Waste, 1),
		rec.CreatedAt,
	)
	return err
}

// suggestionAt is defensive: buckets are normalized to two items, but a short
// bucket must not panic the write path.
func suggestionAt(bucket []CategorySuggestion, index int) *string {
	if index >= len(bucket) {
		return nil
	}
	return &bucket[index].Suggestion
}

var _ Repo = (*PGRepo)(nil)
