package gateway

import (
	"context"
	"net/http"
	"net/url"

	"settingshub/internal/models"
)

type userGateway struct {
	c *client
}

var _ Users = (*userGateway)(nil)

func (g *userGateway) GetProfile(ctx context.Context, token string) (models.Profile, error) {
	var p models.Profile
	err := g.c.do(ctx, token, http.MethodGet, "/api/user/profile", nil, nil, &p)
	return p, err
}

func (g *userGateway) UpdateProfile(ctx context.Context, token string, u ProfileUpdate) (models.Profile, error) {
	var p models.Profile
	err := g.c.do(ctx, token, http.MethodPatch, "/api/user/profile", nil, u, &p)
	return p, err
}

func (g *userGateway) SearchUsers(ctx context.Context, token, query string) ([]models.UserSummary, error) {
	q := url.Values{"q": {query}}
	var users []models.UserSummary
	err := g.c.do(ctx, token, http.MethodGet, "/api/users/search", q, nil, &users)
	return users, err
}
