package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"streamvault/internal/core/domain"
	"streamvault/internal/core/ports"
	"streamvault/internal/core/services"
	"streamvault/internal/infrastructure/middleware"
	"streamvault/internal/infrastructure/repositories/memory"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type testServer struct {
	router      *gin.Engine
	authService services.AuthService
}

// newTestServer wires the full HTTP surface against memory repositories,
// mirroring the production router.
func newTestServer(t *testing.T) *testServer {
	return newTestServerWith(t, memory.NewMemoryStreamRepository())
}

func newTestServerWith(t *testing.T, streamRepo ports.StreamRepository) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	userRepo := memory.NewMemoryUserRepository()

	streamService := services.NewStreamService(streamRepo)
	authService := services.NewAuthService(userRepo, "test-secret", 24*time.Hour)

	// Seed the admin account the way the bootstrap path does.
	hash, err := authService.HashPassword("pw123")
	require.NoError(t, err)
	admin, err := domain.NewUser("a@x.com", hash)
	require.NoError(t, err)
	require.NoError(t, userRepo.Create(t.Context(), admin))

	log := zaptest.NewLogger(t).Sugar()

	authHandler := NewAuthHandler(authService, nil)
	streamHandler := NewStreamHandler(streamService, nil)

	router := gin.New()
	router.Use(middleware.RecoveryMiddleware(log))
	router.Use(middleware.ErrorHandlerMiddleware(log))
	router.Use(middleware.CORSMiddleware())

	api := router.Group("/api")
	{
		api.GET("/streams", streamHandler.ListStreams)
		api.GET("/streams/:id", streamHandler.GetStream)
		api.POST("/login", authHandler.Login)
	}

	protected := router.Group("/api")
	protected.Use(middleware.AuthMiddleware(authService))
	{
		protected.POST("/streams", streamHandler.CreateStream)
		protected.PUT("/streams/:id", streamHandler.UpdateStream)
		protected.DELETE("/streams/:id", streamHandler.DeleteStream)
	}

	return &testServer{router: router, authService: authService}
}

func (s *testServer) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) login(t *testing.T) string {
	t.Helper()

	w := s.do(t, http.MethodPost, "/api/login", "", gin.H{
		"email":    "a@x.com",
		"password": "pw123",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func TestLogin_Success(t *testing.T) {
	srv := newTestServer(t)

	w := srv.do(t, http.MethodPost, "/api/login", "", gin.H{
		"email":    "a@x.com",
		"password": "pw123",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "a@x.com", resp.User.Email)
	assert.NotEmpty(t, resp.User.ID)

	claims, err := srv.authService.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", claims.Email)
}

func TestLogin_UnknownUser(t *testing.T) {
	srv := newTestServer(t)

	w := srv.do(t, http.MethodPost, "/api/login", "", gin.H{
		"email":    "nobody@x.com",
		"password": "pw123",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"message":"User not found"}`, w.Body.String())
}

func TestLogin_WrongPassword(t *testing.T) {
	srv := newTestServer(t)

	w := srv.do(t, http.MethodPost, "/api/login", "", gin.H{
		"email":    "a@x.com",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"message":"Invalid credentials"}`, w.Body.String())
}

func TestLogin_MalformedBody(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/login", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	srv.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateStream_RequiresAuth(t *testing.T) {
	srv := newTestServer(t)

	w := srv.do(t, http.MethodPost, "/api/streams", "", gin.H{"title": "T"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Empty(t, w.Body.String())

	w = srv.do(t, http.MethodPost, "/api/streams", "garbled", gin.H{"title": "T"})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestCreateAndGetStream(t *testing.T) {
	srv := newTestServer(t)
	token := srv.login(t)

	w := srv.do(t, http.MethodPost, "/api/streams", token, gin.H{
		"title":       "T",
		"description": "D",
		"thumbnail":   "th.png",
		"streamUrl":   "u.m3u8",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var created domain.Stream
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.NotEmpty(t, created.ID)
	assert.False(t, created.IsLive)
	assert.Equal(t, "General", created.Category)
	assert.Equal(t, []string{}, created.Tags)

	w = srv.do(t, http.MethodGet, "/api/streams/"+string(created.ID), "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var fetched domain.Stream
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &fetched))
	assert.Equal(t, created.ID, fetched.ID)
	assert.Equal(t, "T", fetched.Title)
	assert.Equal(t, "D", fetched.Description)
	assert.Equal(t, "th.png", fetched.Thumbnail)
	assert.Equal(t, "u.m3u8", fetched.StreamURL)
}

func TestCreateStream_MissingRequiredField(t *testing.T) {
	srv := newTestServer(t)
	token := srv.login(t)

	w := srv.do(t, http.MethodPost, "/api/streams", token, gin.H{
		"description": "D",
		"thumbnail":   "th.png",
		"streamUrl":   "u.m3u8",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "title is required")
}

func TestGetStream_NotFound(t *testing.T) {
	srv := newTestServer(t)

	w := srv.do(t, http.MethodGet, "/api/streams/does-not-exist", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"message":"Stream not found"}`, w.Body.String())
}

func TestListStreams(t *testing.T) {
	srv := newTestServer(t)
	token := srv.login(t)

	w := srv.do(t, http.MethodGet, "/api/streams", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	for _, title := range []string{"one", "two"} {
		w = srv.do(t, http.MethodPost, "/api/streams", token, gin.H{
			"title":       title,
			"description": "D",
			"thumbnail":   "th.png",
			"streamUrl":   "u.m3u8",
		})
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w = srv.do(t, http.MethodGet, "/api/streams", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var streams []domain.Stream
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &streams))
	require.Len(t, streams, 2)
	assert.Equal(t, "one", streams[0].Title)
	assert.Equal(t, "two", streams[1].Title)
}

func TestUpdateStream_PartialMerge(t *testing.T) {
	srv := newTestServer(t)
	token := srv.login(t)

	w := srv.do(t, http.MethodPost, "/api/streams", token, gin.H{
		"title":       "T",
		"description": "D",
		"thumbnail":   "th.png",
		"streamUrl":   "u.m3u8",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var created domain.Stream
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = srv.do(t, http.MethodPut, "/api/streams/"+string(created.ID), token, gin.H{
		"isLive": true,
		"tags":   []string{"live"},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var updated domain.Stream
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.True(t, updated.IsLive)
	assert.Equal(t, []string{"live"}, updated.Tags)
	// Fields absent from the body keep their stored values.
	assert.Equal(t, "T", updated.Title)
	assert.Equal(t, "D", updated.Description)
}

func TestUpdateStream_NotFound(t *testing.T) {
	srv := newTestServer(t)
	token := srv.login(t)

	w := srv.do(t, http.MethodPut, "/api/streams/missing", token, gin.H{"title": "x"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"message":"Stream not found"}`, w.Body.String())
}

func TestDeleteStream_Idempotence(t *testing.T) {
	srv := newTestServer(t)
	token := srv.login(t)

	w := srv.do(t, http.MethodPost, "/api/streams", token, gin.H{
		"title":       "T",
		"description": "D",
		"thumbnail":   "th.png",
		"streamUrl":   "u.m3u8",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var created domain.Stream
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = srv.do(t, http.MethodDelete, "/api/streams/"+string(created.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Stream deleted"}`, w.Body.String())

	// Repeating the delete reports not-found, not a second success.
	w = srv.do(t, http.MethodDelete, "/api/streams/"+string(created.ID), token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteStream_RequiresAuth(t *testing.T) {
	srv := newTestServer(t)

	w := srv.do(t, http.MethodDelete, "/api/streams/some-id", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

// malformedIDStreamRepository rejects every id the way the document store
// rejects an id that fails to parse.
type malformedIDStreamRepository struct{}

func (r *malformedIDStreamRepository) Create(ctx context.Context, stream *domain.Stream) error {
	return nil
}

func (r *malformedIDStreamRepository) GetByID(ctx context.Context, id domain.StreamID) (*domain.Stream, error) {
	return nil, domain.ErrInvalidStreamID
}

func (r *malformedIDStreamRepository) UpdateByID(ctx context.Context, id domain.StreamID, update domain.StreamUpdate) (*domain.Stream, error) {
	return nil, domain.ErrInvalidStreamID
}

func (r *malformedIDStreamRepository) DeleteByID(ctx context.Context, id domain.StreamID) error {
	return domain.ErrInvalidStreamID
}

func (r *malformedIDStreamRepository) List(ctx context.Context) ([]*domain.Stream, error) {
	return []*domain.Stream{}, nil
}

func TestStreamEndpoints_MalformedID(t *testing.T) {
	srv := newTestServerWith(t, &malformedIDStreamRepository{})
	token := srv.login(t)

	// An id the store cannot parse is a client error, never a 500 and
	// never mistaken for a missing record.
	w := srv.do(t, http.MethodGet, "/api/streams/not-an-object-id", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = srv.do(t, http.MethodPut, "/api/streams/not-an-object-id", token, gin.H{"title": "x"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = srv.do(t, http.MethodDelete, "/api/streams/not-an-object-id", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCORS_PreflightAllowed(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/streams", nil)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Authorization")
	w := httptest.NewRecorder()
	srv.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	allowed := strings.ToLower(w.Header().Get("Access-Control-Allow-Headers"))
	assert.Contains(t, allowed, "authorization")
}

func TestCORS_SimpleRequest(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/streams", nil)
	req.Header.Set("Origin", "http://example.com")
	w := httptest.NewRecorder()
	srv.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

// Mirrors the full admin workflow: login, create with the issued token,
// defaults applied on the stored record.
func TestEndToEnd_LoginThenCreate(t *testing.T) {
	srv := newTestServer(t)

	w := srv.do(t, http.MethodPost, "/api/login", "", gin.H{
		"email":    "a@x.com",
		"password": "pw123",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var login LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &login))

	w = srv.do(t, http.MethodPost, "/api/streams", login.Token, gin.H{
		"title":       "T",
		"description": "D",
		"thumbnail":   "th.png",
		"streamUrl":   "u.m3u8",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var created domain.Stream
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.False(t, created.IsLive)
	assert.Equal(t, "General", created.Category)
	assert.Empty(t, created.Tags)
}
