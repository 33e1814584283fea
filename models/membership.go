// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"fmt"
	"time"
)

// PlanType identifies a membership tier.
type PlanType string

const (
	PlanOneYear   PlanType = "1Y"
	PlanThreeYear PlanType = "3Y"
	PlanFiveYear  PlanType = "5Y"
)

// Years returns the validity period of the plan in calendar years,
// or 0 for an unknown plan type.
func (p PlanType) Years() int {
	switch p {
	case PlanOneYear:
		return 1
	case PlanThreeYear:
		return 3
	case PlanFiveYear:
		return 5
	default:
		return 0
	}
}

// DisplayName is the human-readable name of the plan tier.
func (p PlanType) DisplayName() string {
	if years := p.Years(); years > 0 {
		return fmt.Sprintf("%d-Year Membership", years)
	}
	return string(p) + " Membership"
}

// Valid reports whether p is one of the known plan types.
func (p PlanType) Valid() bool {
	return p.Years() > 0
}

// MembershipStatus is the lifecycle state of a membership.
// StatusNone is never persisted; it describes the absence of a record.
type MembershipStatus string

const (
	StatusNone    MembershipStatus = "NONE"
	StatusPending MembershipStatus = "PENDING"
	StatusActive  MembershipStatus = "ACTIVE"
	StatusExpired MembershipStatus = "EXPIRED"
)

// PaymentStatus tracks the manual payment rail of a membership.
type PaymentStatus string

const (
	PaymentUnpaid PaymentStatus = "UNPAID"
	PaymentPaid   PaymentStatus = "PAID"
	PaymentFailed PaymentStatus = "FAILED"
)

// Membership is the lifecycle-bearing entity owned by exactly one user.
//
// Invariants kept by the lifecycle manager:
//   - Status == StatusActive implies non-nil StartDate and EndDate.
//   - Status == StatusPending implies nil StartDate, EndDate and MembershipID.
//   - UsedDays never decreases.
type Membership struct {
	// ID is the internal primary key.
	ID int64 `json:"id"`

	// UserID references the owning user. Unique across memberships.
	UserID int64 `json:"userId"`

	PlanType PlanType `json:"planType"`

	// MembershipID is the human-presentable identifier allocated on activation
	// (four-digit year followed by a six-digit counter).
	MembershipID *string `json:"membershipId"`

	Status        MembershipStatus `json:"status"`
	PaymentStatus PaymentStatus    `json:"paymentStatus"`

	// TotalDays is the entitled day allotment snapshotted from the plan
	// and increased by operator extensions.
	TotalDays int `json:"totalDays"`

	// UsedDays is the number of consumed days.
	UsedDays int `json:"usedDays"`

	// CustomDaysAdded is an operator override added on top of TotalDays.
	CustomDaysAdded int `json:"customDaysAdded"`

	// CustomDestinationIDs is the operator-curated set of extra destinations.
	CustomDestinationIDs []int64 `json:"customDestinationIds"`

	StartDate   *time.Time `json:"startDate"`
	EndDate     *time.Time `json:"endDate"`
	ActivatedAt *time.Time `json:"activatedAt"`

	// State is the optional geographic region given at enrollment.
	State *string `json:"state"`

	// PaymentAmount is the plan price snapshotted at selection time.
	PaymentAmount int64 `json:"paymentAmount"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName returns the name of the database table
// associated with the Membership model.
func (m Membership) TableName() string {
	return "memberships"
}

// EntitledDays is the total allotment including operator-added days.
func (m Membership) EntitledDays() int {
	return m.TotalDays + m.CustomDaysAdded
}

// RemainingDays is EntitledDays minus UsedDays. The value is not clamped
// and may be negative for legacy records.
func (m Membership) RemainingDays() int {
	return m.EntitledDays() - m.UsedDays
}

// Summary returns the subset of fields shown in operator user listings.
func (m Membership) Summary() *MembershipSummary {
	return &MembershipSummary{
		ID:           m.ID,
		PlanType:     m.PlanType,
		Status:       m.Status,
		MembershipID: m.MembershipID,
		EndDate:      m.EndDate,
	}
}

// MembershipView is the member-facing read model with derived fields.
type MembershipView struct {
	Membership
	RemainingDays      int      `json:"remainingDays"`
	CustomDestinations []string `json:"customDestinations"`
}

// MembershipWithUser is a row of the operator membership listing.
type MembershipWithUser struct {
	Membership
	User UserSummary `json:"user"`
}

// MembershipExtension describes an additive operator extension.
// Both adjustments are optional and independent.
type MembershipExtension struct {
	// AdditionalDays is added to TotalDays.
	AdditionalDays *int `json:"additionalDays,omitempty" validate:"omitempty,min=1"`

	// ExtendEndDateDays is added to EndDate when it is set.
	ExtendEndDateDays *int `json:"extendEndDate,omitempty" validate:"omitempty,min=1"`
}

// MembershipOverride describes a replacing operator override.
// Absent fields are left untouched; a present empty destination list
// clears the custom set.
type MembershipOverride struct {
	CustomDaysAdded      *int     `json:"customDaysAdded,omitempty" validate:"omitempty,min=0"`
	CustomDestinationIDs *[]int64 `json:"customDestinationIds,omitempty"`
}

// IsEmpty reports whether the override carries no fields.
func (o MembershipOverride) IsEmpty() bool {
	return o.CustomDaysAdded == nil && o.CustomDestinationIDs == nil
}

// MembershipUsage records consumed days on an active membership.
type MembershipUsage struct {
	Days int `json:"days" validate:"required,min=1"`
}

// ActivationResult is returned to the operator after a successful activation.
type ActivationResult struct {
	MembershipID string     `json:"membershipId"`
	Membership   Membership `json:"membership"`
}

// RejectionResult echoes the reason an operator gave for a rejection.
type RejectionResult struct {
	MembershipID int64  `json:"id"`
	Reason       string `json:"reason"`
}

// Rejection is the audit record written when a pending membership is declined.
type Rejection struct {
	ID           int64     `json:"id"`
	MembershipID int64     `json:"membershipId"`
	UserID       int64     `json:"userId"`
	PlanType     PlanType  `json:"planType"`
	Reason       string    `json:"reason"`
	RejectedAt   time.Time `json:"rejectedAt"`
}
