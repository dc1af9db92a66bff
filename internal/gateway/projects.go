package gateway

import (
	"context"
	"net/http"
	"net/url"

	"settingshub/internal/models"
)

type projectGateway struct {
	c *client
}

var _ Projects = (*projectGateway)(nil)

func projectPath(projectID string) string {
	return "/api/projects/" + url.PathEscape(projectID)
}

func memberPath(projectID, userDID string) string {
	return projectPath(projectID) + "/members/" + url.PathEscape(userDID)
}

func (g *projectGateway) ListProjects(ctx context.Context, token string) ([]models.ProjectSummary, error) {
	var list []models.ProjectSummary
	err := g.c.do(ctx, token, http.MethodGet, "/api/projects", nil, nil, &list)
	return list, err
}

func (g *projectGateway) GetProject(ctx context.Context, token, projectID string) (models.Project, error) {
	var p models.Project
	err := g.c.do(ctx, token, http.MethodGet, projectPath(projectID), nil, nil, &p)
	return p, err
}

func (g *projectGateway) UpdateProject(ctx context.Context, token, projectID, name string) error {
	body := map[string]string{"project_name": name}
	return g.c.do(ctx, token, http.MethodPatch, projectPath(projectID), nil, body, nil)
}

func (g *projectGateway) AddMember(ctx context.Context, token, projectID, userDID, role string) error {
	body := map[string]string{"user_did": userDID, "role": role}
	return g.c.do(ctx, token, http.MethodPost, projectPath(projectID)+"/members", nil, body, nil)
}

func (g *projectGateway) RemoveMember(ctx context.Context, token, projectID, userDID string) error {
	return g.c.do(ctx, token, http.MethodDelete, memberPath(projectID, userDID), nil, nil, nil)
}

func (g *projectGateway) UpdateMemberRole(ctx context.Context, token, projectID, userDID, role string) error {
	body := map[string]string{"role": role}
	return g.c.do(ctx, token, http.MethodPatch, memberPath(projectID, userDID), nil, body, nil)
}
