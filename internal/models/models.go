package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Profile represents one authenticated family account. UserID is the
// opaque subject issued by the external identity provider; at most one
// profile exists per subject.
type Profile struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      string    `gorm:"size:255;not null;uniqueIndex" json:"user_id"`
	DisplayName *string   `gorm:"size:100" json:"display_name"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Profile) TableName() string {
	return "profiles"
}

func (p *Profile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// Child is a profile's registered dependent. Birth year and month are
// optional; when present the month is 1..12.
type Child struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ProfileID  uuid.UUID `gorm:"type:uuid;not null;index" json:"profile_id"`
	Nickname   string    `gorm:"size:100;not null" json:"nickname"`
	BirthYear  *int      `json:"birth_year"`
	BirthMonth *int      `json:"birth_month"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	Allergies  []Allergy `gorm:"foreignKey:ChildID;constraint:OnDelete:CASCADE" json:"allergies"`
}

func (Child) TableName() string {
	return "children"
}

func (c *Child) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// Severity grades how serious an allergy is.
type Severity string

const (
	SeverityMild        Severity = "mild"
	SeverityModerate    Severity = "moderate"
	SeveritySevere      Severity = "severe"
	SeverityAnaphylaxis Severity = "anaphylaxis"
)

// Valid reports whether s is one of the four defined grades.
func (s Severity) Valid() bool {
	switch s {
	case SeverityMild, SeverityModerate, SeveritySevere, SeverityAnaphylaxis:
		return true
	}
	return false
}

// Allergy is one allergen + severity pairing attached to a child.
type Allergy struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ChildID      uuid.UUID `gorm:"type:uuid;not null;index" json:"child_id"`
	AllergenName string    `gorm:"size:100;not null" json:"allergen_name"`
	Severity     Severity  `gorm:"size:20;not null" json:"severity"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (Allergy) TableName() string {
	return "allergies"
}

func (a *Allergy) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// Store is a reviewable venue. Lat/Lng are nil until the address has been
// geocoded; that is a normal state, not an error.
type Store struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Address   string    `gorm:"size:255;not null" json:"address"`
	Lat       *float64  `json:"lat"`
	Lng       *float64  `json:"lng"`
	PhotoURL  *string   `gorm:"size:255" json:"photo_url"`
	CreatedBy uuid.UUID `gorm:"type:uuid;not null;index" json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Reviews   []Review  `gorm:"foreignKey:StoreID" json:"reviews,omitempty"`
}

func (Store) TableName() string {
	return "stores"
}

func (s *Store) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// Review is one family's account of a store visit for a specific child.
// StaffUnderstanding is a 1..5 score of how well the staff accommodated
// the allergy.
type Review struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	StoreID            uuid.UUID `gorm:"type:uuid;not null;index" json:"store_id"`
	ProfileID          uuid.UUID `gorm:"type:uuid;not null;index" json:"profile_id"`
	ChildID            uuid.UUID `gorm:"type:uuid;not null;index" json:"child_id"`
	Comment            string    `gorm:"type:text;not null" json:"comment"`
	CanEat             bool      `gorm:"not null" json:"can_eat"`
	StaffUnderstanding int       `gorm:"not null;check:staff_understanding >= 1 AND staff_understanding <= 5" json:"staff_understanding"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
	Profile            Profile   `gorm:"foreignKey:ProfileID" json:"profile,omitempty"`
	Child              Child     `gorm:"foreignKey:ChildID;constraint:OnDelete:CASCADE" json:"child,omitempty"`
}

func (Review) TableName() string {
	return "reviews"
}

func (r *Review) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
