package recommendations

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func persistedResult() RecommendationResult {
	return RecommendationResult{
		GlobalRecommendation: Suggestion{Category: "General", Suggestion: "global"},
		CategoryRecommendations: CategoryRecommendations{
			Transport: []CategorySuggestion{{Suggestion: "t1"}, {Suggestion: "t2"}},
			Food:      []CategorySuggestion{{Suggestion: "f1"}, {Suggestion: "f2"}},
			Energy:    []CategorySuggestion{{Suggestion: "e1"}, {Suggestion: "e2"}},
			Waste:     []CategorySuggestion{{Suggestion: "w1"}, {Suggestion: "w2"}},
		},
	}
}

func TestPGRepoInsert(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	rec := Record{
		ID:              "rec-1",
		UserID:          "user-1",
		CalculationDate: time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC),
		Result:          persistedResult(),
		CreatedAt:       time.Date(2026, time.January, 15, 12, 0, 0, 0, time.UTC),
	}

	mock.ExpectExec("INSERT INTO user_recommendations").
		WithArgs(
			rec.ID,
			rec.UserID,
			rec.CalculationDate,
			sqlmock.AnyArg(),
			"global",
			"t1", "t2",
			"f1", "f2",
			"e1", "e2",
			"w1", "w2",
			rec.CreatedAt,
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := &PGRepo{DB: db}
	if err := repo.Insert(context.Background(), rec); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPGRepoInsertShortBucket(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	result := persistedResult()
	result.CategoryRecommendations.Waste = result.CategoryRecommendations.Waste[:1]

	rec := Record{
		ID:              "rec-2",
		UserID:          "user-1",
		CalculationDate: time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC),
		Result:          result,
		CreatedAt:       time.Date(2026, time.January, 15, 12, 0, 0, 0, time.UTC),
	}

	mock.ExpectExec("INSERT INTO user_recommendations").
		WithArgs(
			rec.ID,
			rec.UserID,
			rec.CalculationDate,
			sqlmock.AnyArg(),
			"global",
			"t1", "t2",
			"f1", "f2",
			"e1", "e2",
			"w1", nil,
			rec.CreatedAt,
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := &PGRepo{DB: db}
	if err := repo.Insert(context.Background(), rec); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
