package service

import (
	"context"
	"strings"
	"sync"

	"settingshub/internal/gateway"
	"settingshub/internal/models"
)

// ProjectsService mediates membership management. It keeps the last
// loaded detail per project so local guards (duplicate member, creator
// immutability, admin gating) can run without touching the network, and
// refetches the detail after every successful mutation instead of
// patching it optimistically.
type ProjectsService struct {
	projects gateway.Projects
	users    gateway.Users

	mu      sync.Mutex
	details map[string]models.Project
}

func NewProjectsService(projects gateway.Projects, users gateway.Users) *ProjectsService {
	return &ProjectsService{projects: projects, users: users, details: make(map[string]models.Project)}
}

var _ Projects = (*ProjectsService)(nil)

func (s *ProjectsService) List(ctx context.Context, token string) ([]models.ProjectSummary, error) {
	list, err := s.projects.ListProjects(ctx, token)
	if err != nil {
		return nil, &RemoteError{Kind: KindFetch, Fallback: "failed to load projects", Err: err}
	}
	return list, nil
}

// Detail fetches a project and replaces the cached copy wholesale.
func (s *ProjectsService) Detail(ctx context.Context, token, projectID string) (models.Project, error) {
	p, err := s.projects.GetProject(ctx, token, projectID)
	if err != nil {
		return models.Project{}, &RemoteError{Kind: KindFetch, Fallback: "failed to load project", Err: err}
	}
	s.mu.Lock()
	s.details[projectID] = p
	s.mu.Unlock()
	return p, nil
}

// current returns the cached detail, fetching it on a cold cache.
func (s *ProjectsService) current(ctx context.Context, token, projectID string) (models.Project, error) {
	s.mu.Lock()
	p, ok := s.details[projectID]
	s.mu.Unlock()
	if ok {
		return p, nil
	}
	return s.Detail(ctx, token, projectID)
}

// Rename updates the project name. The empty-name check never reaches
// the network; the admin check mirrors what the server enforces anyway.
func (s *ProjectsService) Rename(ctx context.Context, token, projectID, name string) (models.Project, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Project{}, &ValidationError{Reason: ReasonEmpty}
	}
	p, err := s.current(ctx, token, projectID)
	if err != nil {
		return models.Project{}, err
	}
	if !p.CanManage() {
		return models.Project{}, ErrNotAllowed
	}
	if err := s.projects.UpdateProject(ctx, token, projectID, name); err != nil {
		return models.Project{}, &RemoteError{Kind: KindSubmit, Fallback: "failed to update project name", Err: err}
	}
	return s.Detail(ctx, token, projectID)
}

// Search looks up member candidates. An empty query is a no-op, not an
// error.
func (s *ProjectsService) Search(ctx context.Context, token, query string) ([]models.UserSummary, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}
	users, err := s.users.SearchUsers(ctx, token, query)
	if err != nil {
		return nil, &RemoteError{Kind: KindSearch, Fallback: "failed to search users", Err: err}
	}
	return users, nil
}

func (s *ProjectsService) AddMember(ctx context.Context, token, projectID, userDID, role string) (models.Project, error) {
	if role == "" {
		role = models.RoleMember
	}
	if !models.ValidRole(role) {
		return models.Project{}, ErrInvalidRole
	}
	p, err := s.current(ctx, token, projectID)
	if err != nil {
		return models.Project{}, err
	}
	if p.HasMember(userDID) {
		return models.Project{}, &ValidationError{Reason: ReasonDuplicate}
	}
	if err := s.projects.AddMember(ctx, token, projectID, userDID, role); err != nil {
		return models.Project{}, &RemoteError{Kind: KindMemberOp, Fallback: "failed to add member", Err: err}
	}
	return s.Detail(ctx, token, projectID)
}

// RemoveMember deletes a membership. Removing the creator is blocked
// outright; the request is never issued.
func (s *ProjectsService) RemoveMember(ctx context.Context, token, projectID, userDID string) (models.Project, error) {
	p, err := s.current(ctx, token, projectID)
	if err != nil {
		return models.Project{}, err
	}
	if p.IsCreator(userDID) {
		return models.Project{}, ErrCreatorImmutable
	}
	if err := s.projects.RemoveMember(ctx, token, projectID, userDID); err != nil {
		return models.Project{}, &RemoteError{Kind: KindMemberOp, Fallback: "failed to remove member", Err: err}
	}
	return s.Detail(ctx, token, projectID)
}

// ChangeRole toggles a member between the two roles. The creator's
// entry is immutable.
func (s *ProjectsService) ChangeRole(ctx context.Context, token, projectID, userDID, role string) (models.Project, error) {
	if !models.ValidRole(role) {
		return models.Project{}, ErrInvalidRole
	}
	p, err := s.current(ctx, token, projectID)
	if err != nil {
		return models.Project{}, err
	}
	if p.IsCreator(userDID) {
		return models.Project{}, ErrCreatorImmutable
	}
	if err := s.projects.UpdateMemberRole(ctx, token, projectID, userDID, role); err != nil {
		return models.Project{}, &RemoteError{Kind: KindMemberOp, Fallback: "failed to update member role", Err: err}
	}
	return s.Detail(ctx, token, projectID)
}
