package models

import "time"

// Difficulty tiers of a destination.
const (
	DifficultyEasy      = "easy"
	DifficultyModerate  = "moderate"
	DifficultyDifficult = "difficult"
)

// Availability statuses of a destination.
const (
	DestinationAvailable    = "available"
	DestinationNotAvailable = "not_available"
	DestinationComingSoon   = "coming_soon"
)

// Destination is a catalog entry referenced by plans and by membership
// custom overrides.
type Destination struct {
	ID           int64    `json:"id"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	DurationDays int      `json:"durationDays"`
	BestMonths   []string `json:"bestMonths"`
	Difficulty   string   `json:"difficulty"`
	Status       string   `json:"status"`
	ImageURL     *string  `json:"imageUrl"`
}

// TableName returns the name of the database table
// associated with the Destination model.
func (d Destination) TableName() string {
	return "destinations"
}

// IsBestMonth reports whether the month of t is among the destination's
// best months.
func (d Destination) IsBestMonth(t time.Time) bool {
	month := t.Month().String()
	for _, m := range d.BestMonths {
		if m == month {
			return true
		}
	}
	return false
}

// DestinationCreate is the operator payload for a new destination.
type DestinationCreate struct {
	Name         string   `json:"name" validate:"required"`
	Description  string   `json:"description" validate:"required"`
	DurationDays int      `json:"durationDays" validate:"required,min=1"`
	BestMonths   []string `json:"bestMonths" validate:"dive,month"`
	Difficulty   string   `json:"difficulty" validate:"required,oneof=easy moderate difficult"`
	Status       string   `json:"status" validate:"omitempty,oneof=available not_available coming_soon"`
	ImageURL     *string  `json:"imageUrl,omitempty"`
}

// DestinationUpdate is the operator payload for a partial destination update.
// Only non-nil fields are written.
type DestinationUpdate struct {
	Name         *string   `json:"name,omitempty" validate:"omitempty,min=1"`
	Description  *string   `json:"description,omitempty"`
	DurationDays *int      `json:"durationDays,omitempty" validate:"omitempty,min=1"`
	BestMonths   *[]string `json:"bestMonths,omitempty" validate:"omitempty,dive,month"`
	Difficulty   *string   `json:"difficulty,omitempty" validate:"omitempty,oneof=easy moderate difficult"`
	Status       *string   `json:"status,omitempty" validate:"omitempty,oneof=available not_available coming_soon"`
	ImageURL     *string   `json:"imageUrl,omitempty"`
}

// IsEmpty reports whether the update carries no fields.
func (u DestinationUpdate) IsEmpty() bool {
	return u.Name == nil && u.Description == nil && u.DurationDays == nil &&
		u.BestMonths == nil && u.Difficulty == nil && u.Status == nil && u.ImageURL == nil
}
