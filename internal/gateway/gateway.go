package gateway

import (
	"context"
	"net/http"

	"settingshub/internal/models"
)

// Users covers the profile and user-search operations of the remote API.
type Users interface {
	GetProfile(ctx context.Context, token string) (models.Profile, error)
	UpdateProfile(ctx context.Context, token string, p ProfileUpdate) (models.Profile, error)
	SearchUsers(ctx context.Context, token, query string) ([]models.UserSummary, error)
}

// Projects covers the project and membership operations of the remote API.
type Projects interface {
	ListProjects(ctx context.Context, token string) ([]models.ProjectSummary, error)
	GetProject(ctx context.Context, token, projectID string) (models.Project, error)
	UpdateProject(ctx context.Context, token, projectID, name string) error
	AddMember(ctx context.Context, token, projectID, userDID, role string) error
	RemoveMember(ctx context.Context, token, projectID, userDID string) error
	UpdateMemberRole(ctx context.Context, token, projectID, userDID, role string) error
}

// ProfileUpdate is the partial-update payload for the profile resource.
type ProfileUpdate struct {
	Bio            string   `json:"bio"`
	ProfessionTags []string `json:"profession_tags"`
}

// Gateway aggregates the remote API surfaces behind one value.
type Gateway struct {
	Users
	Projects
}

// New builds a gateway backed by the HTTP client. A nil httpClient gets
// a default with a transport-level timeout.
func New(baseURL string, httpClient *http.Client) *Gateway {
	c := newClient(baseURL, httpClient)
	return &Gateway{
		Users:    &userGateway{c: c},
		Projects: &projectGateway{c: c},
	}
}
