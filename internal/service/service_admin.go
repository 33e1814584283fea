package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/traveltrek/internal/logger"
	"github.com/MKhiriev/traveltrek/internal/store"
	"github.com/MKhiriev/traveltrek/models"
)

type adminService struct {
	statsRepository store.StatsRepository
	userRepository  store.UserRepository

	now    func() time.Time
	logger *logger.Logger
}

func NewAdminService(statsRepository store.StatsRepository, userRepository store.UserRepository, logger *logger.Logger) AdminService {
	return &adminService{
		statsRepository: statsRepository,
		userRepository:  userRepository,
		now:             time.Now,
		logger:          logger,
	}
}

func (s *adminService) Stats(ctx context.Context) (models.DashboardStats, error) {
	stats, err := s.statsRepository.Dashboard(ctx)
	if err != nil {
		return models.DashboardStats{}, fmt.Errorf("error loading dashboard stats: %w", err)
	}
	return stats, nil
}

// ListUsers returns every user with a summary of their membership, newest
// first. Membership statuses are derived, not persisted.
func (s *adminService) ListUsers(ctx context.Context) ([]models.UserWithMembership, error) {
	users, err := s.userRepository.ListWithMemberships(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing users: %w", err)
	}

	now := s.now()
	for _, u := range users {
		if m := u.Membership; m != nil && m.Status == models.StatusActive && m.EndDate != nil && now.After(*m.EndDate) {
			m.Status = models.StatusExpired
		}
	}
	return users, nil
}
