package service

import (
	"math"

	"github.com/aremaru/backend/internal/models"
)

// StoreStats is the derived summary shown on listing and detail views.
type StoreStats struct {
	ReviewCount          int     `json:"review_count"`
	AverageUnderstanding float64 `json:"average_understanding"`
	CanEatCount          int     `json:"can_eat_count"`
}

// AverageUnderstanding returns the arithmetic mean of the
// staff-understanding ratings, rounded to one decimal place. An empty
// collection yields 0.0 — a display default, not a sentinel; callers that
// must distinguish "no reviews" from a zero rating check the review count.
func AverageUnderstanding(reviews []models.Review) float64 {
	if len(reviews) == 0 {
		return 0.0
	}
	sum := 0
	for _, r := range reviews {
		sum += r.StaffUnderstanding
	}
	return math.Round(float64(sum)/float64(len(reviews))*10) / 10
}

// CountCanEat returns how many reviews report a successful "could eat"
// outcome.
func CountCanEat(reviews []models.Review) int {
	count := 0
	for _, r := range reviews {
		if r.CanEat {
			count++
		}
	}
	return count
}

// ComputeStoreStats derives the full summary from a store's fetched
// reviews. Total and order-independent.
func ComputeStoreStats(reviews []models.Review) StoreStats {
	return StoreStats{
		ReviewCount:          len(reviews),
		AverageUnderstanding: AverageUnderstanding(reviews),
		CanEatCount:          CountCanEat(reviews),
	}
}
