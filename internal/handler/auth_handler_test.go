package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"taskplanner/internal/auth"
	"taskplanner/internal/model"
	"taskplanner/internal/service"
)

// memoryUserRepository is an in-memory repository.UserRepository for
// end-to-end handler tests.
type memoryUserRepository struct {
	nextID uint
	users  map[string]*model.User
}

func newMemoryUserRepository() *memoryUserRepository {
	return &memoryUserRepository{nextID: 1, users: map[string]*model.User{}}
}

func (r *memoryUserRepository) Create(ctx context.Context, user *model.User) error {
	if _, exists := r.users[user.Email]; exists {
		return gorm.ErrDuplicatedKey
	}
	user.ID = r.nextID
	r.nextID++
	r.users[user.Email] = user
	return nil
}

func (r *memoryUserRepository) Update(ctx context.Context, user *model.User) error {
	r.users[user.Email] = user
	return nil
}

func (r *memoryUserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memoryUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	if u, ok := r.users[email]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

type testValidator struct {
	validator *validator.Validate
}

func (v *testValidator) Validate(i interface{}) error {
	return v.validator.Struct(i)
}

// newAuthTestServer wires the auth routes the same way the router does,
// backed by an in-memory user store.
func newAuthTestServer(t *testing.T) *echo.Echo {
	t.Helper()

	repo := newMemoryUserRepository()
	hasher := auth.NewPasswordHasher(bcrypt.MinCost)
	tokens := auth.NewTokenService("test-secret", "HS256", 30*time.Minute)
	resolver := auth.NewIdentityResolver(tokens, repo)
	authService := service.NewAuthService(repo, hasher, tokens)
	authHandler := NewAuthHandler(authService, nil)

	e := echo.New()
	e.Validator = &testValidator{validator: validator.New()}

	api := e.Group("/api")
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/logout", authHandler.Logout)

	secured := api.Group("", auth.Middleware(resolver))
	secured.GET("/me", authHandler.Me)

	return e
}

func doJSON(e *echo.Echo, method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestAuthFlow_RegisterLoginMe(t *testing.T) {
	e := newAuthTestServer(t)

	rec := doJSON(e, http.MethodPost, "/api/auth/register",
		`{"email":"alice@example.com","password":"secret123","full_name":"Alice"}`, "")
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.NotContains(t, rec.Body.String(), "password_hash")
	assert.NotContains(t, rec.Body.String(), "secret123")

	rec = doJSON(e, http.MethodPost, "/api/auth/login",
		`{"email":"alice@example.com","password":"secret123"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var tokenResp TokenResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tokenResp))
	assert.Equal(t, "bearer", tokenResp.TokenType)
	require.NotEmpty(t, tokenResp.AccessToken)

	rec = doJSON(e, http.MethodGet, "/api/me", "", tokenResp.AccessToken)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "alice@example.com")
	assert.NotContains(t, rec.Body.String(), "password_hash")
}

func TestAuthFlow_DuplicateRegistration(t *testing.T) {
	e := newAuthTestServer(t)

	body := `{"email":"alice@example.com","password":"secret123"}`
	rec := doJSON(e, http.MethodPost, "/api/auth/register", body, "")
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(e, http.MethodPost, "/api/auth/register", body, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "EMAIL_ALREADY_REGISTERED")
}

func TestAuthFlow_LoginRejectsBadCredentials(t *testing.T) {
	e := newAuthTestServer(t)

	rec := doJSON(e, http.MethodPost, "/api/auth/register",
		`{"email":"alice@example.com","password":"secret123"}`, "")
	require.Equal(t, http.StatusCreated, rec.Code)

	tests := []struct {
		name string
		body string
	}{
		{name: "wrong password", body: `{"email":"alice@example.com","password":"nope"}`},
		{name: "unknown email", body: `{"email":"nobody@example.com","password":"secret123"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(e, http.MethodPost, "/api/auth/login", tt.body, "")
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Contains(t, rec.Body.String(), "INVALID_CREDENTIALS")
		})
	}
}

func TestAuthFlow_MeRequiresToken(t *testing.T) {
	e := newAuthTestServer(t)

	rec := doJSON(e, http.MethodGet, "/api/me", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Bearer", rec.Header().Get(echo.HeaderWWWAuthenticate))
}

func TestAuthFlow_ValidationErrors(t *testing.T) {
	e := newAuthTestServer(t)

	tests := []struct {
		name string
		body string
	}{
		{name: "malformed email", body: `{"email":"not-an-email","password":"secret123"}`},
		{name: "short password", body: `{"email":"alice@example.com","password":"abc"}`},
		{name: "missing password", body: `{"email":"alice@example.com"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(e, http.MethodPost, "/api/auth/register", tt.body, "")
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestAuthFlow_LogoutIsStateless(t *testing.T) {
	e := newAuthTestServer(t)

	rec := doJSON(e, http.MethodPost, "/api/auth/logout", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "successfully logged out")
}
