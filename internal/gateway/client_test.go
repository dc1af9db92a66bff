package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClient_AttachesBearerToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{"data":{"username":"alice"}}`))
	}))
	defer srv.Close()

	gw := New(srv.URL, srv.Client())
	if _, err := gw.GetProfile(context.Background(), "tok-123"); err != nil {
		t.Fatalf("get profile: %v", err)
	}
	if gotAuth != "Bearer tok-123" {
		t.Fatalf("authorization header: %q", gotAuth)
	}
}

func TestClient_NoTokenNoHeader(t *testing.T) {
	var hasAuth bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, hasAuth = r.Header["Authorization"]
		_, _ = w.Write([]byte(`{"data":{}}`))
	}))
	defer srv.Close()

	gw := New(srv.URL, srv.Client())
	if _, err := gw.GetProfile(context.Background(), ""); err != nil {
		t.Fatalf("get profile: %v", err)
	}
	if hasAuth {
		t.Fatalf("authorization header sent without a token")
	}
}

func TestClient_UnwrapsDataEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":{"username":"alice","bio":"hi","profession_tags":["writer"]}}`))
	}))
	defer srv.Close()

	gw := New(srv.URL, srv.Client())
	p, err := gw.GetProfile(context.Background(), "tok")
	if err != nil {
		t.Fatalf("get profile: %v", err)
	}
	if p.Username != "alice" || p.Bio != "hi" || len(p.ProfessionTags) != 1 {
		t.Fatalf("unexpected profile: %+v", p)
	}
}

func TestClient_AcceptsBareBody(t *testing.T) {
	// some deployments answer without the envelope
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"username":"alice","bio":"hi"}`))
	}))
	defer srv.Close()

	gw := New(srv.URL, srv.Client())
	p, err := gw.GetProfile(context.Background(), "tok")
	if err != nil {
		t.Fatalf("get profile: %v", err)
	}
	if p.Username != "alice" {
		t.Fatalf("unexpected profile: %+v", p)
	}
}

func TestClient_AuthFailureIsErrUnauthorized(t *testing.T) {
	for _, status := range []int{http.StatusUnauthorized, http.StatusForbidden} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
			_, _ = w.Write([]byte(`{"error":"token expired"}`))
		}))

		gw := New(srv.URL, srv.Client())
		_, err := gw.GetProfile(context.Background(), "tok")
		if !errors.Is(err, ErrUnauthorized) {
			t.Fatalf("status %d: expected ErrUnauthorized, got %v", status, err)
		}
		srv.Close()
	}
}

func TestClient_ErrorEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"error":"bio too long"}`))
	}))
	defer srv.Close()

	gw := New(srv.URL, srv.Client())
	_, err := gw.UpdateProfile(context.Background(), "tok", ProfileUpdate{Bio: "x"})

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Status != http.StatusUnprocessableEntity || apiErr.Message != "bio too long" {
		t.Fatalf("unexpected APIError: %+v", apiErr)
	}
}

func TestClient_NetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	gw := New(srv.URL, nil)
	if _, err := gw.GetProfile(context.Background(), "tok"); err == nil {
		t.Fatalf("expected transport error")
	}
}

func TestUserGateway_SearchQueryEncoding(t *testing.T) {
	var gotPath, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query().Get("q")
		_, _ = w.Write([]byte(`{"data":[{"did":"did:web:bob","username":"bob"}]}`))
	}))
	defer srv.Close()

	gw := New(srv.URL, srv.Client())
	users, err := gw.SearchUsers(context.Background(), "tok", "bob smith")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if gotPath != "/api/users/search" || gotQuery != "bob smith" {
		t.Fatalf("bad request: path=%q q=%q", gotPath, gotQuery)
	}
	if len(users) != 1 || users[0].DID != "did:web:bob" {
		t.Fatalf("unexpected results: %+v", users)
	}
}

func TestProjectGateway_MemberOps(t *testing.T) {
	type call struct {
		method string
		path   string
		body   map[string]string
	}
	var calls []call
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		raw, _ := io.ReadAll(r.Body)
		if len(raw) > 0 {
			_ = json.Unmarshal(raw, &body)
		}
		calls = append(calls, call{method: r.Method, path: r.URL.Path, body: body})
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	gw := New(srv.URL, srv.Client())
	ctx := context.Background()

	if err := gw.AddMember(ctx, "tok", "p1", "did:web:bob", "member"); err != nil {
		t.Fatalf("add member: %v", err)
	}
	if err := gw.RemoveMember(ctx, "tok", "p1", "did:web:bob"); err != nil {
		t.Fatalf("remove member: %v", err)
	}
	if err := gw.UpdateMemberRole(ctx, "tok", "p1", "did:web:bob", "admin"); err != nil {
		t.Fatalf("update role: %v", err)
	}

	want := []call{
		{method: http.MethodPost, path: "/api/projects/p1/members", body: map[string]string{"user_did": "did:web:bob", "role": "member"}},
		{method: http.MethodDelete, path: "/api/projects/p1/members/did:web:bob", body: nil},
		{method: http.MethodPatch, path: "/api/projects/p1/members/did:web:bob", body: map[string]string{"role": "admin"}},
	}
	if len(calls) != len(want) {
		t.Fatalf("calls: got %d, want %d", len(calls), len(want))
	}
	for i, c := range calls {
		if c.method != want[i].method || c.path != want[i].path {
			t.Fatalf("call %d: got %s %s, want %s %s", i, c.method, c.path, want[i].method, want[i].path)
		}
		for k, v := range want[i].body {
			if c.body[k] != v {
				t.Fatalf("call %d body[%s]: got %q, want %q", i, k, c.body[k], v)
			}
		}
	}
}

func TestProjectGateway_GetProjectCallerRole(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":{"project_id":"p1","project_name":"demo","creator_did":"did:web:c","user_role":"admin","members":[{"did":"did:web:c","username":"c","role":"admin"}]}}`))
	}))
	defer srv.Close()

	gw := New(srv.URL, srv.Client())
	p, err := gw.GetProject(context.Background(), "tok", "p1")
	if err != nil {
		t.Fatalf("get project: %v", err)
	}
	if p.CallerRole != "admin" || !p.CanManage() {
		t.Fatalf("user_role not mapped to CallerRole: %+v", p)
	}
}

func TestProjectGateway_ListCallerRole(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":[{"project_id":"p1","project_name":"demo","role":"member","creator_did":"did:web:c"}]}`))
	}))
	defer srv.Close()

	gw := New(srv.URL, srv.Client())
	list, err := gw.ListProjects(context.Background(), "tok")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 || list[0].CallerRole != "member" {
		t.Fatalf("role not mapped to CallerRole: %+v", list)
	}
}
