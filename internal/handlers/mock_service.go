package handlers

import (
	"context"
	"time"

	"settingshub/internal/models"
	"settingshub/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockSessions struct {
	establishSession models.Session
	establishErr     error
	establishCalls   int
	lastToken        string

	resolveSession models.Session
	resolveErr     error

	identity   models.Identity
	identityOK bool

	clearErr   error
	clearCalls []string
}

func (m *mockSessions) Establish(ctx context.Context, token string) (models.Session, error) {
	m.establishCalls++
	m.lastToken = token
	return m.establishSession, m.establishErr
}
func (m *mockSessions) Resolve(ctx context.Context, sessionID string) (models.Session, error) {
	return m.resolveSession, m.resolveErr
}
func (m *mockSessions) Identity(token string) (models.Identity, bool) {
	return m.identity, m.identityOK
}
func (m *mockSessions) Clear(ctx context.Context, sessionID string) error {
	m.clearCalls = append(m.clearCalls, sessionID)
	return m.clearErr
}
func (m *mockSessions) Run(ctx context.Context, tick time.Duration) {}

type mockProfile struct {
	view    service.ProfileView
	viewErr error

	draft    service.Draft
	draftErr error

	submitCalls int
	lastBio     string
	lastTag     string
}

func (m *mockProfile) Load(ctx context.Context, token, did string) (service.ProfileView, error) {
	return m.view, m.viewErr
}
func (m *mockProfile) View(ctx context.Context, token, did string) (service.ProfileView, error) {
	return m.view, m.viewErr
}
func (m *mockProfile) SetBio(did, bio string) (service.Draft, error) {
	m.lastBio = bio
	return m.draft, m.draftErr
}
func (m *mockProfile) ToggleTag(did, tag string) (service.Draft, error) {
	m.lastTag = tag
	return m.draft, m.draftErr
}
func (m *mockProfile) AddCustomTag(did, raw string) (service.Draft, error) {
	m.lastTag = raw
	return m.draft, m.draftErr
}
func (m *mockProfile) RemoveTag(did, tag string) (service.Draft, error) {
	m.lastTag = tag
	return m.draft, m.draftErr
}
func (m *mockProfile) Submit(ctx context.Context, token, did string) (service.ProfileView, error) {
	m.submitCalls++
	return m.view, m.viewErr
}

type mockProjects struct {
	list    []models.ProjectSummary
	detail  models.Project
	users   []models.UserSummary
	err     error
	lastQ   string
	renames int
	adds    int
	removes int
	roles   int
}

func (m *mockProjects) List(ctx context.Context, token string) ([]models.ProjectSummary, error) {
	return m.list, m.err
}
func (m *mockProjects) Detail(ctx context.Context, token, projectID string) (models.Project, error) {
	return m.detail, m.err
}
func (m *mockProjects) Rename(ctx context.Context, token, projectID, name string) (models.Project, error) {
	m.renames++
	return m.detail, m.err
}
func (m *mockProjects) Search(ctx context.Context, token, query string) ([]models.UserSummary, error) {
	m.lastQ = query
	return m.users, m.err
}
func (m *mockProjects) AddMember(ctx context.Context, token, projectID, userDID, role string) (models.Project, error) {
	m.adds++
	return m.detail, m.err
}
func (m *mockProjects) RemoveMember(ctx context.Context, token, projectID, userDID string) (models.Project, error) {
	m.removes++
	return m.detail, m.err
}
func (m *mockProjects) ChangeRole(ctx context.Context, token, projectID, userDID, role string) (models.Project, error) {
	m.roles++
	return m.detail, m.err
}

// ---- Shared Test Helpers ----

const (
	testLoginURL = "https://login.example.test"
	testCookie   = "session_id"
)

// authedSessions is a mock with a valid resolvable session.
func authedSessions() *mockSessions {
	return &mockSessions{
		resolveSession: models.Session{ID: "sid-1", Token: "tok-1"},
		identity:       models.Identity{DID: "did:web:alice", Username: "alice"},
		identityOK:     true,
	}
}

func newTestRouter(s *service.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(s, nil, Options{LoginURL: testLoginURL, CookieName: testCookie})
	return h.InitRoutes()
}

func withServices(sessions service.Sessions, profile service.Profile, projects service.Projects) *service.Service {
	return &service.Service{
		Sessions:  sessions,
		Profile:   profile,
		Projects:  projects,
		Starfield: service.NewStarfieldService(),
	}
}
