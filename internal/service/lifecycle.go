// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"fmt"
	"time"

	"github.com/MKhiriev/traveltrek/models"
)

// activationAttempts bounds the retries of an activation transaction that
// lost an identifier race or hit a transient database error.
const activationAttempts = 3

// DeriveStatus returns the effective status of m at now. A stored ACTIVE
// membership whose end date has passed is EXPIRED; every other status is
// returned unchanged.
func DeriveStatus(m models.Membership, now time.Time) models.MembershipStatus {
	if m.Status == models.StatusActive && m.EndDate != nil && now.After(*m.EndDate) {
		return models.StatusExpired
	}
	return m.Status
}

// FormatMembershipID renders the human-presentable identifier: the four
// digit year followed by the counter zero-padded to six digits.
func FormatMembershipID(year int, counter int64) string {
	return fmt.Sprintf("%04d%06d", year, counter)
}

// activate moves m to ACTIVE with the allocated identifier. Dates start at
// now and run for the number of years of the plan.
func activate(m models.Membership, membershipID string, now time.Time) models.Membership {
	end := now.AddDate(m.PlanType.Years(), 0, 0)
	m.MembershipID = &membershipID
	m.Status = models.StatusActive
	m.PaymentStatus = models.PaymentPaid
	m.StartDate = &now
	m.EndDate = &end
	m.ActivatedAt = &now
	return m
}

// resetToPending stamps plan onto m and clears everything an earlier
// activation left behind.
func resetToPending(m models.Membership, plan models.PlanConfig) models.Membership {
	m.PlanType = plan.PlanType
	m.TotalDays = plan.Days
	m.PaymentAmount = plan.Price
	m.Status = models.StatusPending
	m.PaymentStatus = models.PaymentUnpaid
	m.MembershipID = nil
	m.StartDate = nil
	m.EndDate = nil
	m.ActivatedAt = nil
	m.UsedDays = 0
	return m
}
