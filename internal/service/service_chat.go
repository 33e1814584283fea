// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/MKhiriev/traveltrek/internal/ephemeral"
	"github.com/MKhiriev/traveltrek/internal/logger"
	"github.com/MKhiriev/traveltrek/internal/metrics"
	"github.com/MKhiriev/traveltrek/internal/store"
	"github.com/MKhiriev/traveltrek/models"
)

const (
	historyLimit = 50
	// contextLimit is the number of latest messages passed to the model.
	contextLimit = 50
	chatLimiter  = "chat"
)

// chatService runs the travel concierge conversation of a member.
type chatService struct {
	userRepository        store.UserRepository
	membershipRepository  store.MembershipRepository
	destinationRepository store.DestinationRepository
	chatRepository        store.ChatRepository

	limiter   ephemeral.RateLimiter
	responder ChatResponder

	now    func() time.Time
	logger *logger.Logger
}

func NewChatService(storages *store.Storages, limiter ephemeral.RateLimiter, responder ChatResponder, logger *logger.Logger) ChatService {
	return &chatService{
		userRepository:        storages.UserRepository,
		membershipRepository:  storages.MembershipRepository,
		destinationRepository: storages.DestinationRepository,
		chatRepository:        storages.ChatRepository,
		limiter:               limiter,
		responder:             responder,
		now:                   time.Now,
		logger:                logger,
	}
}

// Send answers message through sink.
//
// The rate limit is checked before anything else; a denial returns a
// *RateLimitError and nothing is written to sink. The member's message is
// stored before the reply is generated and the reply is stored before
// sink.Done is called.
func (s *chatService) Send(ctx context.Context, userID int64, message string, sink ChatSink) error {
	log := logger.FromContext(ctx)

	limit, err := s.limiter.Check(ctx, strconv.FormatInt(userID, 10))
	if err != nil {
		return err
	}
	if !limit.Allowed {
		metrics.RecordRateLimitDenial(chatLimiter)
		log.Warn().Str("func", "*chatService.Send").Int64("user_id", userID).Time("reset_at", limit.ResetAt).Msg("chat rate limit exceeded")
		return &RateLimitError{Result: limit}
	}

	message = strings.TrimSpace(message)
	if message == "" {
		return ErrInvalidDataProvided
	}

	history, err := s.chatRepository.Recent(ctx, userID, contextLimit)
	if err != nil {
		return fmt.Errorf("error loading chat history: %w", err)
	}

	if _, err = s.chatRepository.Save(ctx, models.ChatMessage{UserID: userID, Role: models.ChatRoleUser, Content: message}); err != nil {
		return fmt.Errorf("error saving chat message: %w", err)
	}

	cc, err := s.buildContext(ctx, userID)
	if err != nil {
		return err
	}

	reply, source, err := s.responder.Reply(ctx, cc, history, message, sink.Chunk)
	if err != nil {
		log.Err(err).Str("func", "*chatService.Send").Int64("user_id", userID).Msg("chat reply aborted")
		return err
	}
	metrics.RecordChatReply(source)

	saved, err := s.chatRepository.Save(ctx, models.ChatMessage{UserID: userID, Role: models.ChatRoleAssistant, Content: reply})
	if err != nil {
		return fmt.Errorf("error saving chat reply: %w", err)
	}

	return sink.Done(saved.ID)
}

func (s *chatService) buildContext(ctx context.Context, userID int64) (models.ChatContext, error) {
	now := s.now()

	user, err := s.userRepository.GetByID(ctx, userID)
	if err != nil {
		return models.ChatContext{}, fmt.Errorf("error loading user: %w", err)
	}

	cc := models.ChatContext{UserName: user.Name, Status: models.StatusNone, Now: now}

	membership, err := s.membershipRepository.GetByUserID(ctx, userID)
	switch {
	case err == nil:
		cc.Membership = &membership
		cc.Status = DeriveStatus(membership, now)
	case !errors.Is(err, store.ErrMembershipNotFound):
		return models.ChatContext{}, fmt.Errorf("error loading membership: %w", err)
	}

	if cc.Destinations, err = s.destinationRepository.ListAvailable(ctx); err != nil {
		return models.ChatContext{}, fmt.Errorf("error loading destinations: %w", err)
	}

	return cc, nil
}

// History returns the oldest messages of the conversation, oldest first.
func (s *chatService) History(ctx context.Context, userID int64) ([]models.ChatMessage, error) {
	return s.chatRepository.History(ctx, userID, historyLimit)
}

func (s *chatService) ClearHistory(ctx context.Context, userID int64) error {
	return s.chatRepository.Clear(ctx, userID)
}
