package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"project-manager/internal/repository/sqlstore"
	"project-manager/internal/service"
)

type testServer struct {
	router *gin.Engine
	hook   *test.Hook
}

func newTestServer(t *testing.T) testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctx := context.Background()

	db, err := sqlstore.Open(ctx, sqlstore.Options{
		Driver: "sqlite",
		Path:   filepath.Join(t.TempDir(), "manager.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	userRepo := sqlstore.NewUserRepository(db)
	projectRepo := sqlstore.NewProjectRepository(db)
	require.NoError(t, userRepo.Init(ctx))
	require.NoError(t, projectRepo.Init(ctx))

	logger, hook := test.NewNullLogger()
	users := service.NewUserService(userRepo, db, 100, logger)
	projects := service.NewProjectService(projectRepo, users, db, 100, logger)

	router, err := NewRouter(NewHandler(users, projects, db, logger), RouterOptions{AllowOrigins: []string{"*"}})
	require.NoError(t, err)
	return testServer{router: router, hook: hook}
}

func (s testServer) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func (s testServer) createUser(t *testing.T, name, email string) UserResponse {
	t.Helper()
	w := s.do(t, http.MethodPost, "/api/v1/users", fmt.Sprintf(`{"name":%q,"email":%q}`, name, email))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[UserResponse](t, w)
}

func TestMembershipScenario(t *testing.T) {
	s := newTestServer(t)
	user := s.createUser(t, "Ada", "ada@example.com")

	w := s.do(t, http.MethodPost, "/api/v1/projects", `{"name":"P1"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	project := decode[map[string]any](t, w)
	assert.NotContains(t, project, "users", "create returns a plain project")
	assert.Equal(t, "", project["description"])
	projectID := int64(project["id"].(float64))

	membershipPath := fmt.Sprintf("/api/v1/projects/%d/users/%d", projectID, user.ID)

	w = s.do(t, http.MethodPost, membershipPath+"/add", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	withUser := decode[ProjectResponse](t, w)
	require.Len(t, withUser.Users, 1)
	assert.Equal(t, user.ID, withUser.Users[0].ID)

	w = s.do(t, http.MethodPost, membershipPath+"/add", "")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t,
		fmt.Sprintf("user id=%d is already assigned to project id=%d", user.ID, projectID),
		decode[map[string]string](t, w)["error"])

	w = s.do(t, http.MethodDelete, membershipPath+"/remove", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Empty(t, decode[ProjectResponse](t, w).Users)
	assert.Contains(t, w.Body.String(), `"users":[]`)

	w = s.do(t, http.MethodDelete, membershipPath+"/remove", "")
	assert.Equal(t, http.StatusConflict, w.Code)

	w = s.do(t, http.MethodGet, fmt.Sprintf("/api/v1/projects/%d", projectID), "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode[ProjectResponse](t, w).Users)
}

func TestCreateUserValidation(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name    string
		body    string
		wantMsg string
	}{
		{name: "bad email", body: `{"name":"Ada","email":"not-an-email"}`, wantMsg: "invalid email"},
		{name: "missing name", body: `{"email":"ada@example.com"}`, wantMsg: "name is a required field"},
		{name: "missing email", body: `{"name":"Ada"}`, wantMsg: "email is a required field"},
		{name: "malformed json", body: `{"name":`, wantMsg: "invalid request body"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := s.do(t, http.MethodPost, "/api/v1/users", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tt.wantMsg, decode[map[string]string](t, w)["error"])
		})
	}
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	s := newTestServer(t)
	s.createUser(t, "Ada", "ada@example.com")

	w := s.do(t, http.MethodPost, "/api/v1/users", `{"name":"Other","email":"ada@example.com"}`)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "the email ada@example.com is already registered", decode[map[string]string](t, w)["error"])
}

func TestUserUpdate(t *testing.T) {
	s := newTestServer(t)
	user := s.createUser(t, "Ada", "ada@example.com")
	path := fmt.Sprintf("/api/v1/users/%d", user.ID)

	w := s.do(t, http.MethodPut, path, `{"name":"Ada Lovelace","email":""}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	got := decode[UserResponse](t, w)
	assert.Equal(t, "Ada Lovelace", got.Name)
	assert.Equal(t, "ada@example.com", got.Email)

	w = s.do(t, http.MethodPut, path, `{"email":"broken"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodPut, "/api/v1/users/999", `{"name":"x"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "user id=999 was not found", decode[map[string]string](t, w)["error"])
}

func TestNotFoundAndInvalidIDs(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		method string
		path   string
		want   int
	}{
		{http.MethodGet, "/api/v1/users/42", http.StatusNotFound},
		{http.MethodDelete, "/api/v1/users/42", http.StatusNotFound},
		{http.MethodGet, "/api/v1/users/42/projects", http.StatusNotFound},
		{http.MethodGet, "/api/v1/projects/42", http.StatusNotFound},
		{http.MethodDelete, "/api/v1/projects/42", http.StatusNotFound},
		{http.MethodPost, "/api/v1/projects/42/users/1/add", http.StatusNotFound},
		{http.MethodGet, "/api/v1/users/abc", http.StatusBadRequest},
		{http.MethodGet, "/api/v1/projects/-1", http.StatusBadRequest},
		{http.MethodPost, "/api/v1/projects/1/users/x/add", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			w := s.do(t, tt.method, tt.path, "")
			assert.Equal(t, tt.want, w.Code, w.Body.String())
		})
	}
}

func TestListUsersEnvelope(t *testing.T) {
	s := newTestServer(t)
	for i := 1; i <= 12; i++ {
		s.createUser(t, fmt.Sprintf("User %d", i), fmt.Sprintf("user%d@example.com", i))
	}

	w := s.do(t, http.MethodGet, "/api/v1/users", "")
	require.Equal(t, http.StatusOK, w.Code)
	page := decode[ListResponse[UserResponse]](t, w)
	require.Len(t, page.Data, 10)
	assert.Equal(t, "User 12", page.Data[0].Name, "default sort is id desc")
	assert.Equal(t, PagingResponse{CurrentPage: 1, TotalElements: 10, TotalPages: 2}, page.Paging)

	w = s.do(t, http.MethodGet, "/api/v1/users?page=2&limit=5&sort=name&sort=asc", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	page = decode[ListResponse[UserResponse]](t, w)
	require.Len(t, page.Data, 5)
	assert.Equal(t, 2, page.Paging.CurrentPage)
	assert.Equal(t, 3, page.Paging.TotalPages)

	w = s.do(t, http.MethodGet, "/api/v1/users?search=USER1", "")
	require.Equal(t, http.StatusOK, w.Code)
	page = decode[ListResponse[UserResponse]](t, w)
	assert.Len(t, page.Data, 4, "user1, user10, user11, user12 match on email")

	w = s.do(t, http.MethodGet, "/api/v1/users?search=nobody", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"data":[],"paging":{"currentPage":1,"totalElements":0,"totalPages":0}}`, w.Body.String())
}

func TestListRejectsBadQuery(t *testing.T) {
	s := newTestServer(t)

	for _, q := range []string{"page=0", "limit=0", "page=x", "sort=secret,desc", "page=9223372036854775807"} {
		w := s.do(t, http.MethodGet, "/api/v1/projects?"+q, "")
		assert.Equal(t, http.StatusBadRequest, w.Code, q)
	}
}

func TestUserProjects(t *testing.T) {
	s := newTestServer(t)
	user := s.createUser(t, "Ada", "ada@example.com")

	w := s.do(t, http.MethodPost, "/api/v1/projects", `{"name":"P1","description":"first"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	project := decode[PlainProjectResponse](t, w)

	w = s.do(t, http.MethodPost, fmt.Sprintf("/api/v1/projects/%d/users/%d/add", project.ID, user.ID), "")
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodGet, fmt.Sprintf("/api/v1/users/%d/projects", user.ID), "")
	require.Equal(t, http.StatusOK, w.Code)
	projects := decode[[]PlainProjectResponse](t, w)
	require.Len(t, projects, 1)
	assert.Equal(t, "first", projects[0].Description)
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/api/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

type failingPinger struct{}

func (failingPinger) PingContext(context.Context) error { return errors.New("down") }

func TestHealthStoreDown(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger, _ := test.NewNullLogger()
	router, err := NewRouter(NewHandler(nil, nil, failingPinger{}, logger), RouterOptions{})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestRequestIDHeader(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/api/health", "")
	assert.Len(t, w.Header().Get(requestIDHeader), 36)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set(requestIDHeader, "trace-123")
	w = httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	assert.Equal(t, "trace-123", w.Header().Get(requestIDHeader))

	entry := s.hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, "request completed", entry.Message)
	assert.Equal(t, "trace-123", entry.Data["request_id"])
	assert.Equal(t, http.StatusOK, entry.Data["status"])
}

func TestPublicMessage(t *testing.T) {
	err := fmt.Errorf("wrap: %w", errors.New("boom"))
	assert.Equal(t, "wrap: boom", publicMessage(err))
	assert.Equal(t, http.StatusInternalServerError, statusFor(err))
}
