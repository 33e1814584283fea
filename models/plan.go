package models

// PlanConfig is a catalog entry describing the economics of a plan tier.
type PlanConfig struct {
	ID          int64    `json:"id"`
	PlanType    PlanType `json:"planType"`
	Name        string   `json:"name"`
	Description string   `json:"description"`

	// Days is the day allotment stamped onto new memberships.
	Days int `json:"days"`

	// Price is stamped onto new memberships as PaymentAmount.
	Price int64 `json:"price"`

	// IsActive retires a tier without deleting it.
	IsActive bool `json:"isActive"`

	// Destinations is the default destination set included with the plan.
	Destinations []Destination `json:"destinations"`
}

// TableName returns the name of the database table
// associated with the PlanConfig model.
func (p PlanConfig) TableName() string {
	return "plan_configs"
}

// PlanConfigUpdate describes a partial operator update of a plan.
// Only non-nil fields are written.
type PlanConfigUpdate struct {
	Name           *string  `json:"name,omitempty" validate:"omitempty,min=1"`
	Description    *string  `json:"description,omitempty"`
	Days           *int     `json:"days,omitempty" validate:"omitempty,min=1"`
	Price          *int64   `json:"price,omitempty" validate:"omitempty,min=0"`
	IsActive       *bool    `json:"isActive,omitempty"`
	DestinationIDs *[]int64 `json:"destinationIds,omitempty"`
}

// HasColumns reports whether the update touches the plan row itself.
func (u PlanConfigUpdate) HasColumns() bool {
	return u.Name != nil || u.Description != nil || u.Days != nil || u.Price != nil || u.IsActive != nil
}

// DefaultPlans is the catalog seeded lazily when no plan exists.
func DefaultPlans() []PlanConfig {
	return []PlanConfig{
		{
			PlanType:    PlanOneYear,
			Name:        "1-Year Membership",
			Description: "Perfect for first-time travelers",
			Days:        6,
			Price:       9999,
			IsActive:    true,
		},
		{
			PlanType:    PlanThreeYear,
			Name:        "3-Year Membership",
			Description: "Most popular choice for regular travelers",
			Days:        18,
			Price:       24999,
			IsActive:    true,
		},
		{
			PlanType:    PlanFiveYear,
			Name:        "5-Year Membership",
			Description: "Best value for travel enthusiasts",
			Days:        30,
			Price:       39999,
			IsActive:    true,
		},
	}
}
