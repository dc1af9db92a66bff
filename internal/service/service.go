package service

import (
	"context"
	"time"

	"settingshub/internal/gateway"
	"settingshub/internal/models"
	"settingshub/internal/repository"
)

// Sessions owns the token lifecycle: capture from the one-time login
// URL, resolution from the session cookie, identity decode, teardown.
type Sessions interface {
	Establish(ctx context.Context, token string) (models.Session, error)
	Resolve(ctx context.Context, sessionID string) (models.Session, error)
	Identity(token string) (models.Identity, bool)
	Clear(ctx context.Context, sessionID string) error
	Run(ctx context.Context, tick time.Duration)
}

// Profile holds the per-identity profile draft and its edit operations.
type Profile interface {
	Load(ctx context.Context, token, did string) (ProfileView, error)
	View(ctx context.Context, token, did string) (ProfileView, error)
	SetBio(did, bio string) (Draft, error)
	ToggleTag(did, tag string) (Draft, error)
	AddCustomTag(did, raw string) (Draft, error)
	RemoveTag(did, tag string) (Draft, error)
	Submit(ctx context.Context, token, did string) (ProfileView, error)
}

// Projects exposes the membership-management operations.
type Projects interface {
	List(ctx context.Context, token string) ([]models.ProjectSummary, error)
	Detail(ctx context.Context, token, projectID string) (models.Project, error)
	Rename(ctx context.Context, token, projectID, name string) (models.Project, error)
	Search(ctx context.Context, token, query string) ([]models.UserSummary, error)
	AddMember(ctx context.Context, token, projectID, userDID, role string) (models.Project, error)
	RemoveMember(ctx context.Context, token, projectID, userDID string) (models.Project, error)
	ChangeRole(ctx context.Context, token, projectID, userDID, role string) (models.Project, error)
}

// Starfield builds decorative frame generators for the background
// animation stream.
type Starfield interface {
	NewField(width, height int) *Field
}

// Config carries service-level tuning.
type Config struct {
	// SessionTTL bounds how long a captured token stays resolvable.
	// Zero means sessions never expire locally (the remote API still
	// rejects expired tokens).
	SessionTTL time.Duration
}

type Service struct {
	Sessions
	Profile
	Projects
	Starfield
}

// NewService wires the session store and the remote gateway into the
// concrete services.
func NewService(repos *repository.Repository, gw *gateway.Gateway, cfg Config) *Service {
	return &Service{
		Sessions:  NewSessionService(repos.Sessions, cfg.SessionTTL),
		Profile:   NewProfileService(gw.Users),
		Projects:  NewProjectsService(gw.Projects, gw.Users),
		Starfield: NewStarfieldService(),
	}
}
