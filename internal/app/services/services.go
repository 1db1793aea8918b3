package services

import (
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/collegesocial/internal/app/repositories"
	"github.com/yigit/collegesocial/internal/pkg/auth"
	"github.com/yigit/collegesocial/internal/pkg/email"
	"github.com/yigit/collegesocial/internal/pkg/filestorage"
	"github.com/yigit/collegesocial/internal/pkg/metrics"
	"github.com/yigit/collegesocial/internal/pkg/websocket"
)

// Dependencies are the collaborators shared by the services.
type Dependencies struct {
	Repositories  *repositories.Repositories
	JWT           *auth.JWTService
	Hasher        *auth.PasswordHasher
	Storage       filestorage.ObjectStore
	Notifier      email.Notifier
	Publisher     websocket.Publisher
	Metrics       *metrics.Metrics
	UploadTimeout time.Duration
	Logger        zerolog.Logger
}

// Services holds all the service instances
type Services struct {
	Auth       *AuthService
	Posts      *PostService
	Onboarding *OnboardingService
	Messaging  *MessagingService
	Profiles   *ProfileService
	Interests  *InterestService
	Uploads    *UploadService
}

// NewServices wires every service to its repositories
func NewServices(d Dependencies) *Services {
	repos := d.Repositories
	named := func(name string) zerolog.Logger {
		return d.Logger.With().Str("service", name).Logger()
	}

	interests := NewInterestService(repos.Interests)
	return &Services{
		Auth:       NewAuthService(repos.Students, d.Hasher, d.JWT, named("auth")),
		Posts:      NewPostService(repos.Posts, NewAuthorJoinService(repos.Students), d.Storage, named("posts")),
		Onboarding: NewOnboardingService(repos.Tx, d.Hasher, d.Notifier, repos.AuditLog, d.Metrics, named("onboarding")),
		Messaging:  NewMessagingService(repos.Tx, repos.Messaging, d.Publisher, repos.AuditLog, d.Metrics, named("messaging")),
		Profiles:   NewProfileService(repos.Students, repos.Tx, interests, d.Storage, named("profile")),
		Interests:  interests,
		Uploads:    NewUploadService(d.Storage, repos.AuditLog, d.Metrics, d.UploadTimeout, named("upload")),
	}
}
