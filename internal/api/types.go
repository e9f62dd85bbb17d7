package api

import (
	"time"

	"github.com/google/uuid"
)

// UpdateProfileRequest is the body of PUT /profile.
type UpdateProfileRequest struct {
	DisplayName string `json:"display_name"`
}

// AddChildRequest is the body of POST /profile/children.
type AddChildRequest struct {
	Nickname   string `json:"nickname" binding:"required"`
	BirthYear  *int   `json:"birth_year"`
	BirthMonth *int   `json:"birth_month"`
}

// AddAllergyRequest is the body of POST /profile/children/:id/allergies.
// Allergen is a catalog entry or the catalog "other" sentinel; CustomName
// carries the free-text name in the latter case.
type AddAllergyRequest struct {
	Allergen   string `json:"allergen" binding:"required"`
	CustomName string `json:"custom_name"`
	Severity   string `json:"severity"`
}

// CreateStoreRequest is the body of POST /stores.
type CreateStoreRequest struct {
	Name    string `json:"name" binding:"required"`
	Address string `json:"address" binding:"required"`
}

// AddReviewRequest is the body of POST /stores/:id/reviews.
type AddReviewRequest struct {
	ChildID            string `json:"child_id"`
	Comment            string `json:"comment"`
	CanEat             bool   `json:"can_eat"`
	StaffUnderstanding int    `json:"staff_understanding"`
}

// ReviewChild is the reviewed child as shown in the review feed.
type ReviewChild struct {
	Nickname  string   `json:"nickname"`
	Allergens []string `json:"allergens"`
}

// ReviewResponse is one entry of the review feed, joined with the
// author's display name and the reviewed child.
type ReviewResponse struct {
	ID                 uuid.UUID   `json:"id"`
	Comment            string      `json:"comment"`
	CanEat             bool        `json:"can_eat"`
	StaffUnderstanding int         `json:"staff_understanding"`
	CreatedAt          time.Time   `json:"created_at"`
	AuthorDisplayName  *string     `json:"author_display_name"`
	Child              ReviewChild `json:"child"`
}
