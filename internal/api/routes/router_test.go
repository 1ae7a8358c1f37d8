package routes_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/komunitech/komunitech/internal/api/handlers"
	"github.com/komunitech/komunitech/internal/api/middleware"
	"github.com/komunitech/komunitech/internal/api/routes"
	"github.com/komunitech/komunitech/internal/application"
	"github.com/komunitech/komunitech/internal/config"
	"github.com/komunitech/komunitech/internal/domain/stats"
	"github.com/komunitech/komunitech/internal/domain/user"
	"github.com/komunitech/komunitech/internal/realtime"
	"github.com/komunitech/komunitech/internal/repository"
	"github.com/komunitech/komunitech/internal/testutils"
	"github.com/komunitech/komunitech/pkg/response"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type server struct {
	router *gin.Engine
	db     *gorm.DB
	world  testutils.World
	svc    *application.Services
}

func newServer(t *testing.T) *server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	config.JwtSecret = "router-test-secret"
	middleware.Init()

	gdb := testutils.NewSQLiteDB(t)
	world := testutils.SeedWorld(t, gdb)
	repos := repository.NewRepositories(gdb)
	hub := realtime.NewHub(nil, "", zerolog.Nop())
	svc := application.New(repos, application.Options{
		Engagement: config.DefaultEngagement(),
		TokenTTL:   time.Hour,
		Publisher:  hub,
		Logger:     zerolog.Nop(),
	})

	r := gin.New()
	routes.RegisterRoutes(r, handlers.New(svc, nil, hub), middleware.NewAuth(repos))
	return &server{router: r, db: gdb, world: world, svc: svc}
}

func (s *server) token(t *testing.T, u user.User) string {
	t.Helper()
	tok, err := middleware.GenerateToken(u.ID, u.Username, u.IsAdmin(), time.Hour)
	require.NoError(t, err)
	return tok
}

func (s *server) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func TestHealthz(t *testing.T) {
	s := newServer(t)
	w := s.do(t, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRegisterLoginFlow(t *testing.T) {
	s := newServer(t)

	w := s.do(t, http.MethodPost, "/register", "", map[string]string{
		"username": "dewi", "email": "dewi@example.com", "name": "Dewi", "password": "rahasia123",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = s.do(t, http.MethodPost, "/login", "", map[string]string{"username": "dewi", "password": "salah"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(t, http.MethodPost, "/login", "", map[string]string{"username": "dewi", "password": "rahasia123"})
	require.Equal(t, http.StatusOK, w.Code)
	var tok response.TokenResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tok))
	assert.NotEmpty(t, tok.Token)

	w = s.do(t, http.MethodGet, "/users/me", tok.Token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodGet, "/notifications", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(t, http.MethodPut, "/users/me/password", tok.Token, map[string]string{
		"current_password": "salah", "new_password": "baru45678",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = s.do(t, http.MethodPut, "/users/me/password", tok.Token, map[string]string{
		"current_password": "rahasia123", "new_password": "abc",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = s.do(t, http.MethodPut, "/users/me/password", tok.Token, map[string]string{
		"current_password": "rahasia123", "new_password": "baru45678",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.do(t, http.MethodPost, "/login", "", map[string]string{"username": "dewi", "password": "baru45678"})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestStatsEndpoints(t *testing.T) {
	s := newServer(t)
	w := s.world

	res := s.do(t, http.MethodGet, "/admin/stats?days=7", s.token(t, w.Submitter), nil)
	assert.Equal(t, http.StatusForbidden, res.Code)

	res = s.do(t, http.MethodGet, "/admin/stats?days=7", s.token(t, w.Admin), nil)
	require.Equal(t, http.StatusOK, res.Code, res.Body.String())
	var dash stats.Dashboard
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &dash))
	assert.Equal(t, int64(4), dash.Users)
	assert.Equal(t, int64(1), dash.Requirements)
	assert.Len(t, dash.Daily, 7)

	res = s.do(t, http.MethodGet, "/users/me/stats", s.token(t, w.Submitter), nil)
	require.Equal(t, http.StatusOK, res.Code, res.Body.String())
	var mine stats.UserStats
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &mine))
	assert.Equal(t, int64(1), mine.Requirements)

	res = s.do(t, http.MethodGet, "/users/me/stats", "", nil)
	assert.Equal(t, http.StatusUnauthorized, res.Code)
}

func TestCommentAndSupportEndpoints(t *testing.T) {
	s := newServer(t)
	w := s.world
	other := s.token(t, w.Other)
	submitter := s.token(t, w.Submitter)
	reqPath := fmt.Sprintf("/requirements/%d", w.Requirement.ID)

	res := s.do(t, http.MethodPost, reqPath+"/comments", other, map[string]interface{}{"body": "Setuju sekali"})
	require.Equal(t, http.StatusCreated, res.Code, res.Body.String())
	var created struct{ ID uint }
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &created))

	parent := created.ID
	for i := 0; i < 3; i++ {
		res = s.do(t, http.MethodPost, reqPath+"/comments", other, map[string]interface{}{"body": "balasan", "parent_id": parent})
		require.Equal(t, http.StatusCreated, res.Code)
		require.NoError(t, json.Unmarshal(res.Body.Bytes(), &created))
		parent = created.ID
	}
	res = s.do(t, http.MethodPost, reqPath+"/comments", other, map[string]interface{}{"body": "terlalu dalam", "parent_id": parent})
	assert.Equal(t, http.StatusBadRequest, res.Code)

	res = s.do(t, http.MethodGet, reqPath+"/comments?threaded=true", "", nil)
	require.Equal(t, http.StatusOK, res.Code)
	var threads []map[string]interface{}
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &threads))
	assert.Len(t, threads, 1)

	res = s.do(t, http.MethodGet, reqPath+"/comments?threaded=false", "", nil)
	require.Equal(t, http.StatusOK, res.Code)
	var flat []map[string]interface{}
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &flat))
	assert.Len(t, flat, 4)

	res = s.do(t, http.MethodPost, reqPath+"/support", submitter, nil)
	assert.Equal(t, http.StatusBadRequest, res.Code)

	res = s.do(t, http.MethodPost, reqPath+"/support", other, nil)
	assert.Equal(t, http.StatusCreated, res.Code)
	res = s.do(t, http.MethodPost, reqPath+"/support", other, nil)
	assert.Equal(t, http.StatusConflict, res.Code)

	res = s.do(t, http.MethodPost, reqPath+"/support/toggle", other, nil)
	require.Equal(t, http.StatusOK, res.Code)
	assert.Contains(t, res.Body.String(), `"unsupported"`)

	res = s.do(t, http.MethodGet, "/notifications/unread-count", submitter, nil)
	require.Equal(t, http.StatusOK, res.Code)
	var count response.CountResponse
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &count))
	assert.Equal(t, int64(5), count.Count)

	res = s.do(t, http.MethodPut, "/notifications/read-all", submitter, nil)
	require.Equal(t, http.StatusOK, res.Code)
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &count))
	assert.Equal(t, int64(5), count.Count)

	res = s.do(t, http.MethodGet, "/requirements/9999/comments", "", nil)
	assert.Equal(t, http.StatusNotFound, res.Code)
}

func TestAdminRoutes(t *testing.T) {
	s := newServer(t)
	w := s.world
	admin := s.token(t, w.Admin)
	other := s.token(t, w.Other)

	res := s.do(t, http.MethodGet, "/admin/users", other, nil)
	assert.Equal(t, http.StatusForbidden, res.Code)

	res = s.do(t, http.MethodGet, "/admin/users", admin, nil)
	require.Equal(t, http.StatusOK, res.Code)
	var page response.Page[user.User]
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &page))
	assert.Equal(t, int64(4), page.Total)

	res = s.do(t, http.MethodPut, "/admin/requirements/bulk/status", admin, map[string]interface{}{
		"ids": []uint{w.Requirement.ID, 9999}, "status": "Done",
	})
	assert.Equal(t, http.StatusNotFound, res.Code)

	res = s.do(t, http.MethodGet, fmt.Sprintf("/requirements/%d", w.Requirement.ID), "", nil)
	require.Equal(t, http.StatusOK, res.Code)
	assert.Contains(t, res.Body.String(), `"status":"Submitted"`)

	res = s.do(t, http.MethodDelete, fmt.Sprintf("/admin/categories/%d", w.Category.ID), admin, nil)
	assert.Equal(t, http.StatusForbidden, res.Code)

	res = s.do(t, http.MethodGet, "/admin/audit-logs", admin, nil)
	assert.Equal(t, http.StatusOK, res.Code)

	res = s.do(t, http.MethodPost, "/uploads/images", other, nil)
	assert.Equal(t, http.StatusServiceUnavailable, res.Code)
}

func TestStoredRoleOverridesTokenClaims(t *testing.T) {
	s := newServer(t)
	w := s.world
	staleAdmin := s.token(t, w.Admin)

	cm, err := s.svc.Comment.CreateComment(application.CreateCommentInput{
		Body: "punya orang lain", RequirementID: w.Requirement.ID, AuthorID: w.Other.ID,
	})
	require.NoError(t, err)

	require.NoError(t, s.db.Model(&user.User{}).Where("id = ?", w.Admin.ID).Update("role", user.RoleRegular).Error)

	res := s.do(t, http.MethodDelete, fmt.Sprintf("/comments/%d", cm.ID), staleAdmin, nil)
	assert.Equal(t, http.StatusForbidden, res.Code)
	res = s.do(t, http.MethodGet, "/admin/users", staleAdmin, nil)
	assert.Equal(t, http.StatusForbidden, res.Code)

	require.NoError(t, s.db.Model(&user.User{}).Where("id = ?", w.Other.ID).Update("is_active", false).Error)
	res = s.do(t, http.MethodGet, "/notifications", s.token(t, w.Other), nil)
	assert.Equal(t, http.StatusForbidden, res.Code)
}
