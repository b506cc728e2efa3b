package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hitbridge/traffic-exchange/internal/application"
	"github.com/hitbridge/traffic-exchange/internal/domain/entity"
	"github.com/hitbridge/traffic-exchange/internal/infrastructure/memstore"
	"github.com/hitbridge/traffic-exchange/internal/interface/middleware"
	"github.com/hitbridge/traffic-exchange/pkg/helpers"
	"github.com/hitbridge/traffic-exchange/pkg/validation"
)

type testEnv struct {
	router  *gin.Engine
	store   *memstore.Store
	authSvc *application.AuthService
	svc     *application.ExchangeService

	// userID injected by the stub auth middleware
	userID int
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	validation.Init()

	store := memstore.New()
	jwt := helpers.NewJWTManager("access", "refresh", time.Minute, time.Hour)
	authSvc := application.NewAuthService(store.Users(), jwt, nil, nil)
	svc := application.NewExchangeService(store.Users(), store.Sessions(), store.Urls(), application.DefaultHitReward, nil, nil)

	env := &testEnv{store: store, authSvc: authSvc, svc: svc}

	authHandler := NewAuthHandler(authSvc, nil, "localhost", false)
	sessionHandler := NewSessionHandler(svc, nil)
	urlHandler := NewUrlHandler(svc, nil)
	exchangeHandler := NewExchangeHandler(svc, nil)

	r := gin.New()
	api := r.Group("/api")
	api.POST("/register", authHandler.Register)
	api.POST("/login", authHandler.Login)

	// Stub auth: injects the env's current user like middleware.Auth would.
	auth := api.Group("/")
	auth.Use(func(c *gin.Context) {
		if env.userID == 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "not authenticated"})
			return
		}
		c.Set(middleware.CtxUserIDKey, env.userID)
		c.Next()
	})
	auth.GET("/user", authHandler.Me)
	auth.GET("/sessions", sessionHandler.List)
	auth.POST("/sessions", sessionHandler.Create)
	auth.PUT("/sessions/:id/status", sessionHandler.SetStatus)
	auth.PUT("/sessions/:id/active", sessionHandler.SetActive)
	auth.POST("/sessions/:id/restart", sessionHandler.Restart)
	auth.GET("/urls", urlHandler.List)
	auth.POST("/urls", urlHandler.Create)
	auth.PUT("/urls/:id/active", urlHandler.SetActive)
	auth.DELETE("/urls/:id", urlHandler.Delete)
	auth.GET("/stats", exchangeHandler.Stats)
	auth.POST("/exchange/register-hit", exchangeHandler.RegisterHit)

	env.router = r
	return env
}

func (e *testEnv) request(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

type envelope struct {
	Status  int             `json:"status"`
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func (e *testEnv) createUser(t *testing.T, username string) *entity.User {
	t.Helper()
	u := &entity.User{Username: username, Password: "hash"}
	require.NoError(t, e.store.Users().Create(u))
	return u
}

func TestRegisterEndpoint(t *testing.T) {
	env := newTestEnv(t)

	w := env.request(t, http.MethodPost, "/api/register", gin.H{"username": "alice", "password": "secret123"})
	assert.Equal(t, http.StatusCreated, w.Code)

	resp := decodeEnvelope(t, w)
	assert.True(t, resp.Success)

	var u entity.User
	require.NoError(t, json.Unmarshal(resp.Data, &u))
	assert.Equal(t, "alice", u.Username)
	assert.Len(t, u.ClientID, helpers.ClientIDLength)

	// Password hash must never leak.
	assert.NotContains(t, w.Body.String(), "password")

	cookies := w.Result().Cookies()
	names := make([]string, 0, len(cookies))
	for _, c := range cookies {
		names = append(names, c.Name)
	}
	assert.Contains(t, names, "access_token")
	assert.Contains(t, names, "refresh_token")
}

func TestRegisterValidation(t *testing.T) {
	env := newTestEnv(t)

	w := env.request(t, http.MethodPost, "/api/register", gin.H{"username": "al", "password": "secret123"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.request(t, http.MethodPost, "/api/register", gin.H{"username": "alice", "password": "short"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegisterDuplicate(t *testing.T) {
	env := newTestEnv(t)

	w := env.request(t, http.MethodPost, "/api/register", gin.H{"username": "alice", "password": "secret123"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = env.request(t, http.MethodPost, "/api/register", gin.H{"username": "alice", "password": "secret123"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoginEndpoint(t *testing.T) {
	env := newTestEnv(t)
	w := env.request(t, http.MethodPost, "/api/register", gin.H{"username": "alice", "password": "secret123"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = env.request(t, http.MethodPost, "/api/login", gin.H{"username": "alice", "password": "secret123"})
	assert.Equal(t, http.StatusOK, w.Code)

	w = env.request(t, http.MethodPost, "/api/login", gin.H{"username": "alice", "password": "wrong1234"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUnauthenticatedRequestsRejected(t *testing.T) {
	env := newTestEnv(t)
	w := env.request(t, http.MethodGet, "/api/sessions", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSessionLifecycle(t *testing.T) {
	env := newTestEnv(t)
	u := env.createUser(t, "alice")
	env.userID = u.ID

	w := env.request(t, http.MethodPost, "/api/sessions", gin.H{"note": "first", "proxy": "SOCKS5"})
	require.Equal(t, http.StatusCreated, w.Code)

	var sess entity.Session
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &sess))
	assert.Equal(t, u.ClientID, sess.ClientID)
	assert.Equal(t, "SOCKS5", sess.Proxy)

	w = env.request(t, http.MethodPut, fmt.Sprintf("/api/sessions/%d/active", sess.ID), gin.H{"active": false})
	assert.Equal(t, http.StatusOK, w.Code)

	got, err := env.store.Sessions().GetByID(sess.ID)
	require.NoError(t, err)
	assert.False(t, got.Active)
	assert.Equal(t, entity.StatusPaused, got.Status)

	w = env.request(t, http.MethodPut, fmt.Sprintf("/api/sessions/%d/status", sess.ID), gin.H{"status": "Ready"})
	assert.Equal(t, http.StatusOK, w.Code)

	w = env.request(t, http.MethodGet, "/api/sessions", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var sessions []entity.Session
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &sessions))
	assert.Len(t, sessions, 1)
}

func TestSessionForbiddenVsNotFound(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, "alice")
	intruder := env.createUser(t, "mallory")

	env.userID = owner.ID
	w := env.request(t, http.MethodPost, "/api/sessions", gin.H{})
	require.Equal(t, http.StatusCreated, w.Code)
	var sess entity.Session
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &sess))

	env.userID = intruder.ID
	w = env.request(t, http.MethodPut, fmt.Sprintf("/api/sessions/%d/active", sess.ID), gin.H{"active": false})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = env.request(t, http.MethodPut, "/api/sessions/999/active", gin.H{"active": false})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSetActiveRequiresBooleanField(t *testing.T) {
	env := newTestEnv(t)
	u := env.createUser(t, "alice")
	env.userID = u.ID

	w := env.request(t, http.MethodPost, "/api/sessions", gin.H{})
	require.Equal(t, http.StatusCreated, w.Code)
	var sess entity.Session
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &sess))

	w = env.request(t, http.MethodPut, fmt.Sprintf("/api/sessions/%d/active", sess.ID), gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateUrlValidation(t *testing.T) {
	env := newTestEnv(t)
	u := env.createUser(t, "alice")
	env.userID = u.ID

	// Too-short visit time
	w := env.request(t, http.MethodPost, "/api/urls", gin.H{"url": "https://example.com", "minVisitTime": 4})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Malformed URL
	w = env.request(t, http.MethodPost, "/api/urls", gin.H{"url": "not a url", "minVisitTime": 30})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Rejection must not create records
	w = env.request(t, http.MethodGet, "/api/urls", nil)
	var urls []entity.Url
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &urls))
	assert.Empty(t, urls)
}

func TestCreateUrlDefaultsVisitTime(t *testing.T) {
	env := newTestEnv(t)
	u := env.createUser(t, "alice")
	env.userID = u.ID

	w := env.request(t, http.MethodPost, "/api/urls", gin.H{"url": "https://example.com"})
	require.Equal(t, http.StatusCreated, w.Code)

	var created entity.Url
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &created))
	assert.Equal(t, entity.DefaultMinVisitTime, created.MinVisitTime)
}

func TestDeleteUrl(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, "alice")
	intruder := env.createUser(t, "mallory")

	env.userID = owner.ID
	w := env.request(t, http.MethodPost, "/api/urls", gin.H{"url": "https://example.com", "minVisitTime": 10})
	require.Equal(t, http.StatusCreated, w.Code)
	var created entity.Url
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &created))

	env.userID = intruder.ID
	w = env.request(t, http.MethodDelete, fmt.Sprintf("/api/urls/%d", created.ID), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	env.userID = owner.ID
	w = env.request(t, http.MethodDelete, fmt.Sprintf("/api/urls/%d", created.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = env.request(t, http.MethodGet, "/api/urls", nil)
	var urls []entity.Url
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &urls))
	assert.Empty(t, urls)
}

func TestRegisterHitEndpoint(t *testing.T) {
	env := newTestEnv(t)
	u := env.createUser(t, "alice")
	env.userID = u.ID

	w := env.request(t, http.MethodPost, "/api/sessions", gin.H{})
	require.Equal(t, http.StatusCreated, w.Code)
	var sess entity.Session
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &sess))

	w = env.request(t, http.MethodPost, "/api/urls", gin.H{"url": "https://example.com", "minVisitTime": 20})
	require.Equal(t, http.StatusCreated, w.Code)
	var url entity.Url
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &url))

	w = env.request(t, http.MethodPost, "/api/exchange/register-hit", gin.H{"sessionId": sess.ID, "urlId": url.ID})
	assert.Equal(t, http.StatusOK, w.Code)

	var result struct {
		Success      bool `json:"success"`
		PointsEarned int  `json:"pointsEarned"`
	}
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &result))
	assert.True(t, result.Success)
	assert.Equal(t, application.DefaultHitReward, result.PointsEarned)

	// Missing fields are a client error
	w = env.request(t, http.MethodPost, "/api/exchange/register-hit", gin.H{"sessionId": sess.ID})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Unknown references
	w = env.request(t, http.MethodPost, "/api/exchange/register-hit", gin.H{"sessionId": 999, "urlId": url.ID})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestStatsEndpoint(t *testing.T) {
	env := newTestEnv(t)
	u := env.createUser(t, "alice")
	env.userID = u.ID

	w := env.request(t, http.MethodPost, "/api/sessions", gin.H{})
	require.Equal(t, http.StatusCreated, w.Code)
	var sess entity.Session
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &sess))

	w = env.request(t, http.MethodPost, "/api/urls", gin.H{"url": "https://example.com", "minVisitTime": 10})
	require.Equal(t, http.StatusCreated, w.Code)
	var url entity.Url
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &url))

	for i := 0; i < 3; i++ {
		w = env.request(t, http.MethodPost, "/api/exchange/register-hit", gin.H{"sessionId": sess.ID, "urlId": url.ID})
		require.Equal(t, http.StatusOK, w.Code)
	}

	w = env.request(t, http.MethodGet, "/api/stats", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var stats application.Stats
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &stats))
	assert.Equal(t, 3, stats.TotalHits)
	assert.Equal(t, 6, stats.AvailablePoints)
	assert.Equal(t, 1, stats.ActiveSessions)
	assert.Equal(t, 1, stats.ActiveUrls)
}

func TestMeEndpoint(t *testing.T) {
	env := newTestEnv(t)
	u := env.createUser(t, "alice")
	env.userID = u.ID

	w := env.request(t, http.MethodGet, "/api/user", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var got entity.User
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &got))
	assert.Equal(t, u.ID, got.ID)
	assert.Equal(t, "alice", got.Username)
}

func TestRestartEndpoint(t *testing.T) {
	env := newTestEnv(t)
	u := env.createUser(t, "alice")
	env.userID = u.ID

	restarter := application.NewRestarter(env.store.Sessions(), 10*time.Millisecond, nil)
	defer restarter.Close()
	env.svc.Restarter = restarter

	w := env.request(t, http.MethodPost, "/api/sessions", gin.H{})
	require.Equal(t, http.StatusCreated, w.Code)
	var sess entity.Session
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &sess))

	w = env.request(t, http.MethodPost, fmt.Sprintf("/api/sessions/%d/restart", sess.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	got, err := env.store.Sessions().GetByID(sess.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusRestarting, got.Status)

	assert.Eventually(t, func() bool {
		got, _ := env.store.Sessions().GetByID(sess.ID)
		return got.Status == entity.StatusReady
	}, time.Second, 5*time.Millisecond)
}
