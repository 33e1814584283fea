// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/traveltrek/internal/logger"
	"github.com/MKhiriev/traveltrek/internal/metrics"
	"github.com/MKhiriev/traveltrek/internal/store"
	"github.com/MKhiriev/traveltrek/models"
)

const noMembershipMessage = "No membership found. Choose a plan to get started."

// membershipService is the lifecycle manager of memberships.
//
// Every mutation runs inside a transaction and locks the membership row
// first, so operations on the same membership are serialized by the
// database. Notifications are handed to the notifier only after commit and
// their failures are logged, never returned.
type membershipService struct {
	transactor            store.Transactor
	userRepository        store.UserRepository
	membershipRepository  store.MembershipRepository
	counterRepository     store.CounterRepository
	destinationRepository store.DestinationRepository
	paymentRepository     store.PaymentRepository
	rejectionRepository   store.RejectionRepository

	plans    *planService
	notifier Notifier

	now    func() time.Time
	logger *logger.Logger
}

func NewMembershipService(storages *store.Storages, plans *planService, notifier Notifier, logger *logger.Logger) MembershipService {
	return &membershipService{
		transactor:            storages.Transactor,
		userRepository:        storages.UserRepository,
		membershipRepository:  storages.MembershipRepository,
		counterRepository:     storages.CounterRepository,
		destinationRepository: storages.DestinationRepository,
		paymentRepository:     storages.PaymentRepository,
		rejectionRepository:   storages.RejectionRepository,
		plans:                 plans,
		notifier:              notifier,
		now:                   time.Now,
		logger:                logger,
	}
}

// Enroll creates a password-less user and a PENDING membership stamped
// from the active plan, both in one transaction.
//
// Returns store.ErrEmailAlreadyExists when the email is taken and
// ErrInvalidPlan when no active plan of the requested type exists.
func (s *membershipService) Enroll(ctx context.Context, req models.EnrollRequest) (models.EnrollResult, error) {
	log := logger.FromContext(ctx)

	email := models.NormalizeEmail(req.Email)
	if email == "" || strings.TrimSpace(req.Name) == "" {
		return models.EnrollResult{}, ErrInvalidDataProvided
	}

	plan, err := s.plans.activePlan(ctx, req.PlanType)
	if err != nil {
		return models.EnrollResult{}, err
	}

	var (
		user       models.User
		membership models.Membership
	)
	err = s.transactor.WithinTx(ctx, func(ctx context.Context) error {
		var txErr error
		if _, txErr = s.userRepository.GetByEmail(ctx, email); txErr == nil {
			return store.ErrEmailAlreadyExists
		} else if !errors.Is(txErr, store.ErrUserNotFound) {
			return txErr
		}

		user, txErr = s.userRepository.Create(ctx, models.User{
			Name:  strings.TrimSpace(req.Name),
			Email: email,
			Phone: strings.TrimSpace(req.Phone),
			Role:  models.RoleUser,
		})
		if txErr != nil {
			return txErr
		}

		membership, txErr = s.membershipRepository.Create(ctx, models.Membership{
			UserID:        user.ID,
			PlanType:      plan.PlanType,
			Status:        models.StatusPending,
			PaymentStatus: models.PaymentUnpaid,
			TotalDays:     plan.Days,
			PaymentAmount: plan.Price,
			State:         req.State,
		})
		return txErr
	})
	if err != nil {
		if !errors.Is(err, store.ErrEmailAlreadyExists) {
			log.Err(err).Str("func", "*membershipService.Enroll").Msg("enrollment failed")
		}
		return models.EnrollResult{}, fmt.Errorf("enrollment failed: %w", err)
	}

	metrics.RecordTransition(metrics.TransitionEnrolled)
	log.Info().
		Str("func", "*membershipService.Enroll").
		Int64("user_id", user.ID).
		Int64("membership_id", membership.ID).
		Str("plan", string(plan.PlanType)).
		Msg("enrollment created")

	return models.EnrollResult{
		UserID:       user.ID,
		MembershipID: membership.ID,
		Name:         user.Name,
		Email:        user.Email,
		PlanType:     membership.PlanType,
		State:        membership.State,
		Status:       membership.Status,
	}, nil
}

// ChoosePlan creates a PENDING membership for userID or resets an expired
// one. An active membership yields ErrMembershipAlreadyActive; a pending
// one yields an *AlreadyPendingError carrying the existing record.
func (s *membershipService) ChoosePlan(ctx context.Context, userID int64, planType models.PlanType) (models.ChoosePlanResult, error) {
	plan, err := s.plans.activePlan(ctx, planType)
	if err != nil {
		return models.ChoosePlanResult{}, err
	}

	var membership models.Membership
	err = s.transactor.WithinTx(ctx, func(ctx context.Context) error {
		existing, txErr := s.membershipRepository.GetByUserIDForUpdate(ctx, userID)
		switch {
		case errors.Is(txErr, store.ErrMembershipNotFound):
			membership, txErr = s.membershipRepository.Create(ctx, models.Membership{
				UserID:        userID,
				PlanType:      plan.PlanType,
				Status:        models.StatusPending,
				PaymentStatus: models.PaymentUnpaid,
				TotalDays:     plan.Days,
				PaymentAmount: plan.Price,
			})
			return txErr
		case txErr != nil:
			return txErr
		}

		switch DeriveStatus(existing, s.now()) {
		case models.StatusActive:
			return ErrMembershipAlreadyActive
		case models.StatusPending:
			return &AlreadyPendingError{Membership: existing}
		}

		membership, txErr = s.membershipRepository.Update(ctx, resetToPending(existing, plan))
		return txErr
	})
	if err != nil {
		return models.ChoosePlanResult{}, err
	}

	metrics.RecordTransition(metrics.TransitionSelected)

	return models.ChoosePlanResult{
		Membership: membership,
		PlanName:   plan.Name,
		Price:      plan.Price,
	}, nil
}

// Get returns the member's view of their membership. A stored ACTIVE
// membership past its end date is persisted as EXPIRED before returning.
// Without a membership the active plans are returned instead.
func (s *membershipService) Get(ctx context.Context, userID int64) (models.MembershipState, error) {
	log := logger.FromContext(ctx)

	membership, err := s.membershipRepository.GetByUserID(ctx, userID)
	if errors.Is(err, store.ErrMembershipNotFound) {
		plans, plansErr := s.plans.ListActive(ctx)
		if plansErr != nil {
			return models.MembershipState{}, plansErr
		}
		return models.MembershipState{
			Status:  models.StatusNone,
			Message: noMembershipMessage,
			Plans:   plans,
		}, nil
	}
	if err != nil {
		return models.MembershipState{}, fmt.Errorf("error getting membership: %w", err)
	}

	if membership, err = s.expireIfDue(ctx, membership); err != nil {
		return models.MembershipState{}, err
	}

	names := make([]string, 0, len(membership.CustomDestinationIDs))
	if len(membership.CustomDestinationIDs) > 0 {
		destinations, listErr := s.destinationRepository.ListByIDs(ctx, membership.CustomDestinationIDs)
		if listErr != nil {
			log.Err(listErr).Str("func", "*membershipService.Get").Msg("failed to load custom destinations")
			return models.MembershipState{}, fmt.Errorf("error loading custom destinations: %w", listErr)
		}
		for _, d := range destinations {
			names = append(names, d.Name)
		}
	}

	return models.MembershipState{
		Membership: &models.MembershipView{
			Membership:         membership,
			RemainingDays:      membership.RemainingDays(),
			CustomDestinations: names,
		},
		Status: membership.Status,
	}, nil
}

// expireIfDue persists a derived expiry and returns m with its effective
// status.
func (s *membershipService) expireIfDue(ctx context.Context, m models.Membership) (models.Membership, error) {
	status := DeriveStatus(m, s.now())
	if status == m.Status {
		return m, nil
	}

	if err := s.membershipRepository.MarkExpired(ctx, m.ID); err != nil {
		return models.Membership{}, fmt.Errorf("error expiring membership: %w", err)
	}
	metrics.RecordTransition(metrics.TransitionExpired)
	logger.FromContext(ctx).Info().
		Str("func", "*membershipService.expireIfDue").
		Int64("membership_id", m.ID).
		Msg("membership expired")

	m.Status = status
	return m, nil
}

// Cancel deletes the caller's membership while it is PENDING.
func (s *membershipService) Cancel(ctx context.Context, userID int64) error {
	err := s.transactor.WithinTx(ctx, func(ctx context.Context) error {
		membership, err := s.membershipRepository.GetByUserIDForUpdate(ctx, userID)
		if err != nil {
			return err
		}
		if DeriveStatus(membership, s.now()) != models.StatusPending {
			return ErrInvalidMembershipState
		}
		return s.membershipRepository.Delete(ctx, membership.ID)
	})
	if err != nil {
		return err
	}

	metrics.RecordTransition(metrics.TransitionCancelled)
	return nil
}

// MarkPaymentDone records a manual payment and flips the payment status to
// PAID. The membership stays PENDING until an operator activates it.
func (s *membershipService) MarkPaymentDone(ctx context.Context, userID int64, req models.PaymentDoneRequest) error {
	method := strings.TrimSpace(req.PaymentMethod)
	if method == "" {
		method = "manual"
	}

	return s.transactor.WithinTx(ctx, func(ctx context.Context) error {
		membership, err := s.membershipRepository.GetByUserIDForUpdate(ctx, userID)
		if err != nil {
			return err
		}
		if DeriveStatus(membership, s.now()) != models.StatusPending {
			return ErrInvalidMembershipState
		}

		if _, err = s.paymentRepository.Create(ctx, models.Payment{
			UserID:           userID,
			MembershipID:     membership.ID,
			Amount:           membership.PaymentAmount,
			Method:           method,
			GatewayReference: req.TransactionID,
			Notes:            req.Notes,
			Status:           models.PaymentAttemptSuccess,
		}); err != nil {
			return err
		}

		membership.PaymentStatus = models.PaymentPaid
		_, err = s.membershipRepository.Update(ctx, membership)
		return err
	})
}

// Activate allocates an identifier for the current year and moves the
// membership to ACTIVE/PAID with dates running for the plan's years.
//
// The allocation and the status change commit together. A lost race on the
// identifier or a transient database error reruns the whole transaction.
// A membership that has expired may be activated again.
func (s *membershipService) Activate(ctx context.Context, id int64) (models.ActivationResult, error) {
	log := logger.FromContext(ctx)

	var activated models.Membership
	err := s.transactor.WithinRetryableTx(ctx, activationAttempts, func(ctx context.Context) error {
		membership, err := s.membershipRepository.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}

		now := s.now()
		if DeriveStatus(membership, now) == models.StatusActive {
			return ErrMembershipAlreadyActive
		}

		counter, err := s.counterRepository.Next(ctx, now.Year())
		if err != nil {
			return err
		}

		activated, err = s.membershipRepository.Update(ctx,
			activate(membership, FormatMembershipID(now.Year(), counter), now))
		return err
	})
	if err != nil {
		return models.ActivationResult{}, err
	}

	metrics.RecordTransition(metrics.TransitionActivated)
	membershipID := *activated.MembershipID
	log.Info().
		Str("func", "*membershipService.Activate").
		Int64("id", id).
		Str("membership_id", membershipID).
		Msg("membership activated")

	if user, userErr := s.userRepository.GetByID(ctx, activated.UserID); userErr != nil {
		log.Err(userErr).Str("func", "*membershipService.Activate").Msg("activation notice skipped, user lookup failed")
	} else if notifyErr := s.notifier.NotifyActivation(ctx, user, membershipID, activated.PlanType); notifyErr != nil {
		log.Err(notifyErr).Str("func", "*membershipService.Activate").Msg("failed to enqueue activation notice")
	}

	return models.ActivationResult{MembershipID: membershipID, Membership: activated}, nil
}

// Reject deletes a PENDING membership and writes an audit record with the
// operator's reason in the same transaction. The member is notified by
// email after commit.
func (s *membershipService) Reject(ctx context.Context, id int64, reason string) (models.RejectionResult, error) {
	log := logger.FromContext(ctx)
	reason = strings.TrimSpace(reason)

	var rejected models.Membership
	err := s.transactor.WithinTx(ctx, func(ctx context.Context) error {
		membership, err := s.membershipRepository.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if DeriveStatus(membership, s.now()) != models.StatusPending {
			return ErrInvalidMembershipState
		}

		if err = s.rejectionRepository.Create(ctx, models.Rejection{
			MembershipID: membership.ID,
			UserID:       membership.UserID,
			PlanType:     membership.PlanType,
			Reason:       reason,
			RejectedAt:   s.now(),
		}); err != nil {
			return err
		}

		rejected = membership
		return s.membershipRepository.Delete(ctx, membership.ID)
	})
	if err != nil {
		return models.RejectionResult{}, err
	}

	metrics.RecordTransition(metrics.TransitionRejected)

	if user, userErr := s.userRepository.GetByID(ctx, rejected.UserID); userErr != nil {
		log.Err(userErr).Str("func", "*membershipService.Reject").Msg("rejection notice skipped, user lookup failed")
	} else if notifyErr := s.notifier.NotifyRejection(ctx, user, rejected.PlanType, reason); notifyErr != nil {
		log.Err(notifyErr).Str("func", "*membershipService.Reject").Msg("failed to enqueue rejection notice")
	}

	return models.RejectionResult{MembershipID: id, Reason: reason}, nil
}

// Extend adds days to the allotment and/or to the end date. The end date
// is only moved when it is set.
func (s *membershipService) Extend(ctx context.Context, id int64, ext models.MembershipExtension) (models.Membership, error) {
	if ext.AdditionalDays == nil && ext.ExtendEndDateDays == nil {
		return models.Membership{}, ErrNoFieldsToUpdate
	}
	if (ext.AdditionalDays != nil && *ext.AdditionalDays <= 0) ||
		(ext.ExtendEndDateDays != nil && *ext.ExtendEndDateDays <= 0) {
		return models.Membership{}, ErrInvalidDataProvided
	}

	var updated models.Membership
	err := s.transactor.WithinTx(ctx, func(ctx context.Context) error {
		membership, err := s.membershipRepository.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}

		if ext.AdditionalDays != nil {
			membership.TotalDays += *ext.AdditionalDays
		}
		if ext.ExtendEndDateDays != nil && membership.EndDate != nil {
			end := membership.EndDate.AddDate(0, 0, *ext.ExtendEndDateDays)
			membership.EndDate = &end
		}

		updated, err = s.membershipRepository.Update(ctx, membership)
		return err
	})
	if err != nil {
		return models.Membership{}, err
	}

	metrics.RecordTransition(metrics.TransitionExtended)
	return updated, nil
}

// ApplyOverride replaces the custom days and/or the custom destination set.
// Absent fields are left untouched.
func (s *membershipService) ApplyOverride(ctx context.Context, id int64, override models.MembershipOverride) (models.Membership, error) {
	if override.IsEmpty() {
		return models.Membership{}, ErrNoFieldsToUpdate
	}
	if override.CustomDaysAdded != nil && *override.CustomDaysAdded < 0 {
		return models.Membership{}, ErrInvalidDataProvided
	}

	var updated models.Membership
	err := s.transactor.WithinTx(ctx, func(ctx context.Context) error {
		membership, err := s.membershipRepository.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}

		if override.CustomDaysAdded != nil {
			membership.CustomDaysAdded = *override.CustomDaysAdded
			if membership, err = s.membershipRepository.Update(ctx, membership); err != nil {
				return err
			}
		}

		if override.CustomDestinationIDs != nil {
			ids := dedupeIDs(*override.CustomDestinationIDs)
			if err = s.membershipRepository.ReplaceCustomDestinations(ctx, id, ids); err != nil {
				return err
			}
			membership.CustomDestinationIDs = ids
		}

		updated = membership
		return nil
	})
	if err != nil {
		return models.Membership{}, err
	}

	return updated, nil
}

// RecordUsage adds consumed days to an ACTIVE membership. Usage beyond the
// entitled days is refused with ErrInsufficientDays.
func (s *membershipService) RecordUsage(ctx context.Context, id int64, days int) (models.Membership, error) {
	if days <= 0 {
		return models.Membership{}, ErrInvalidDataProvided
	}

	var updated models.Membership
	err := s.transactor.WithinTx(ctx, func(ctx context.Context) error {
		membership, err := s.membershipRepository.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if DeriveStatus(membership, s.now()) != models.StatusActive {
			return ErrInvalidMembershipState
		}
		if membership.UsedDays+days > membership.EntitledDays() {
			return ErrInsufficientDays
		}

		membership.UsedDays += days
		updated, err = s.membershipRepository.Update(ctx, membership)
		return err
	})
	if err != nil {
		return models.Membership{}, err
	}

	return updated, nil
}

// List returns memberships with their owners, newest first, with derived
// statuses. The status filter applies to the derived status. Expiry is
// not persisted from listings.
func (s *membershipService) List(ctx context.Context, status *models.MembershipStatus) ([]models.MembershipWithUser, error) {
	now := s.now()
	memberships, err := s.membershipRepository.List(ctx, status, now)
	if err != nil {
		return nil, fmt.Errorf("error listing memberships: %w", err)
	}

	result := memberships[:0]
	for _, m := range memberships {
		m.Status = DeriveStatus(m.Membership, now)
		if status != nil && m.Status != *status {
			continue
		}
		result = append(result, m)
	}
	return result, nil
}

func dedupeIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	result := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}
	return result
}
