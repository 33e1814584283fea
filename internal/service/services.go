package service

import (
	"github.com/MKhiriev/traveltrek/internal/config"
	"github.com/MKhiriev/traveltrek/internal/ephemeral"
	"github.com/MKhiriev/traveltrek/internal/logger"
	"github.com/MKhiriev/traveltrek/internal/objstore"
	"github.com/MKhiriev/traveltrek/internal/store"
	"github.com/MKhiriev/traveltrek/models"
)

// Collaborators are the non-database dependencies of the service layer.
type Collaborators struct {
	Notifier    Notifier
	Google      IdentityVerifier
	OTPStore    ephemeral.OTPStore
	ChatLimiter ephemeral.RateLimiter
	Responder   ChatResponder
	Objects     objstore.Store
	Build       models.AppBuildInfo
}

type Services struct {
	AuthService        AuthService
	UserService        UserService
	MembershipService  MembershipService
	PlanService        PlanService
	DestinationService DestinationService
	ChatService        ChatService
	AdminService       AdminService
	BrochureService    BrochureService
	UploadService      UploadService
	AppInfoService     AppInfoService

	// HealthChecker reports database reachability to the health endpoints.
	HealthChecker store.HealthChecker
}

func NewServices(storages *store.Storages, deps Collaborators, cfg config.StructuredConfig, logger *logger.Logger) (*Services, error) {
	appInfo, err := NewAppInfoService(deps.Build, cfg.App, logger)
	if err != nil {
		return nil, err
	}

	plans := NewPlanService(storages.Transactor, storages.PlanRepository, logger).(*planService)

	return &Services{
		AuthService:        NewAuthService(storages, deps.OTPStore, deps.Notifier, deps.Google, cfg.App, logger),
		UserService:        NewUserService(storages.UserRepository, deps.OTPStore, deps.Notifier, logger),
		MembershipService:  NewMembershipService(storages, plans, deps.Notifier, logger),
		PlanService:        plans,
		DestinationService: NewDestinationService(storages.DestinationRepository, logger),
		ChatService:        NewChatService(storages, deps.ChatLimiter, deps.Responder, logger),
		AdminService:       NewAdminService(storages.StatsRepository, storages.UserRepository, logger),
		BrochureService:    NewBrochureService(storages.BrochureRepository, logger),
		UploadService:      NewUploadService(deps.Objects, logger),
		AppInfoService:     appInfo,
		HealthChecker:      storages.HealthChecker,
	}, nil
}
