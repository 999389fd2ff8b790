package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskdeck/taskdeck-api/internal/api"
	"github.com/taskdeck/taskdeck-api/internal/api/shared"
	"github.com/taskdeck/taskdeck-api/internal/mocks"
	"github.com/taskdeck/taskdeck-api/internal/service"
	"github.com/taskdeck/taskdeck-api/internal/service/auth"
)

// authTestEnv bundles a router with the services backing it so tests can
// both drive the HTTP surface and inspect state behind it.
type authTestEnv struct {
	router       chi.Router
	userService  service.UserService
	tokenService auth.TokenService
	tokenStore   *mocks.MockTokenStore
}

func newAuthTestEnv(t *testing.T) *authTestEnv {
	t.Helper()

	userStore := mocks.NewMockUserStore()
	tokenStore := mocks.NewMockTokenStore()
	tokenService := auth.NewTokenService(tokenStore, 0, nil)
	userService := service.NewUserService(
		userStore,
		tokenService,
		auth.NewBcryptHasher(4),
		auth.NewBcryptVerifier(),
		mocks.NewMockTxRunner(),
		nil,
	)

	handler := api.NewAuthHandler(userService, nil)

	r := chi.NewRouter()
	r.Post("/register", handler.Register)
	r.Post("/login", handler.Login)
	r.Post("/logout", handler.Logout)
	r.Get("/user", handler.Me)

	return &authTestEnv{
		router:       r,
		userService:  userService,
		tokenService: tokenService,
		tokenStore:   tokenStore,
	}
}

func postJSON(t *testing.T, router http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestRegisterEndpoint(t *testing.T) {
	t.Parallel()

	env := newAuthTestEnv(t)

	w := postJSON(t, env.router, "/register", map[string]string{
		"name":                  "Test User",
		"email":                 "test@example.com",
		"password":              "password123",
		"password_confirmation": "password123",
	})

	require.Equal(t, http.StatusCreated, w.Code)

	body := decodeBody(t, w)
	assert.NotEmpty(t, body["token"])

	user, ok := body["user"].(map[string]any)
	require.True(t, ok, "expected user object in response")
	assert.Equal(t, "Test User", user["name"])
	assert.Equal(t, "test@example.com", user["email"])

	// No password material in the response, under any name.
	assert.NotContains(t, user, "password")
	assert.NotContains(t, user, "password_hash")
	assert.NotContains(t, w.Body.String(), "password123")
}

func TestRegisterEndpointValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		payload   map[string]string
		wantField string
	}{
		{
			name: "missing name",
			payload: map[string]string{
				"email":                 "test@example.com",
				"password":              "password123",
				"password_confirmation": "password123",
			},
			wantField: "name",
		},
		{
			name: "invalid email",
			payload: map[string]string{
				"name":                  "Test User",
				"email":                 "not-an-email",
				"password":              "password123",
				"password_confirmation": "password123",
			},
			wantField: "email",
		},
		{
			name: "password too short",
			payload: map[string]string{
				"name":                  "Test User",
				"email":                 "test@example.com",
				"password":              "short",
				"password_confirmation": "short",
			},
			wantField: "password",
		},
		{
			name: "confirmation mismatch",
			payload: map[string]string{
				"name":                  "Test User",
				"email":                 "test@example.com",
				"password":              "password123",
				"password_confirmation": "different123",
			},
			wantField: "password_confirmation",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			env := newAuthTestEnv(t)
			w := postJSON(t, env.router, "/register", tc.payload)

			require.Equal(t, http.StatusUnprocessableEntity, w.Code)

			body := decodeBody(t, w)
			fields, ok := body["errors"].(map[string]any)
			require.True(t, ok, "expected field-keyed errors, got %s", w.Body.String())
			assert.Contains(t, fields, tc.wantField)
		})
	}
}

func TestRegisterEndpointDuplicateEmail(t *testing.T) {
	t.Parallel()

	env := newAuthTestEnv(t)
	payload := map[string]string{
		"name":                  "Test User",
		"email":                 "dup@example.com",
		"password":              "password123",
		"password_confirmation": "password123",
	}

	w := postJSON(t, env.router, "/register", payload)
	require.Equal(t, http.StatusCreated, w.Code)

	w = postJSON(t, env.router, "/register", payload)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	body := decodeBody(t, w)
	fields := body["errors"].(map[string]any)
	emailErrors := fields["email"].([]any)
	assert.Equal(t, "The email has already been taken.", emailErrors[0])
}

func TestRegisterEndpointMalformedJSON(t *testing.T) {
	t.Parallel()

	env := newAuthTestEnv(t)

	req := httptest.NewRequest(http.MethodPost, "/register", bytes.NewReader([]byte("{not json")))
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoginEndpoint(t *testing.T) {
	t.Parallel()

	env := newAuthTestEnv(t)
	_, err := env.userService.Register(
		context.Background(), "Test User", "login@example.com", "password123")
	require.NoError(t, err)

	w := postJSON(t, env.router, "/login", map[string]string{
		"email":    "login@example.com",
		"password": "password123",
	})

	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.NotEmpty(t, body["token"])
	user := body["user"].(map[string]any)
	assert.Equal(t, "login@example.com", user["email"])
}

func TestLoginEndpointBadCredentials(t *testing.T) {
	t.Parallel()

	env := newAuthTestEnv(t)
	_, err := env.userService.Register(
		context.Background(), "Test User", "known@example.com", "password123")
	require.NoError(t, err)

	// Unknown email and wrong password produce byte-identical responses.
	unknownEmail := postJSON(t, env.router, "/login", map[string]string{
		"email":    "unknown@example.com",
		"password": "password123",
	})
	wrongPassword := postJSON(t, env.router, "/login", map[string]string{
		"email":    "known@example.com",
		"password": "wrongpassword",
	})

	require.Equal(t, http.StatusUnprocessableEntity, unknownEmail.Code)
	require.Equal(t, http.StatusUnprocessableEntity, wrongPassword.Code)

	body := decodeBody(t, unknownEmail)
	fields := body["errors"].(map[string]any)
	emailErrors := fields["email"].([]any)
	assert.Equal(t, "The provided credentials are incorrect.", emailErrors[0])
}

func TestLogoutEndpoint(t *testing.T) {
	t.Parallel()

	env := newAuthTestEnv(t)
	result, err := env.userService.Register(
		context.Background(), "Test User", "logout@example.com", "password123")
	require.NoError(t, err)

	token, err := env.tokenService.Authenticate(context.Background(), result.Token)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	ctx := context.WithValue(req.Context(), shared.UserIDContextKey, token.UserID)
	ctx = context.WithValue(ctx, shared.TokenIDContextKey, token.ID)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req.WithContext(ctx))

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Logged out successfully", body["message"])

	// The presented credential is dead afterwards.
	_, err = env.tokenService.Authenticate(context.Background(), result.Token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestLogoutEndpointWithoutToken(t *testing.T) {
	t.Parallel()

	env := newAuthTestEnv(t)

	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMeEndpoint(t *testing.T) {
	t.Parallel()

	env := newAuthTestEnv(t)
	result, err := env.userService.Register(
		context.Background(), "Test User", "me@example.com", "password123")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/user", nil)
	ctx := context.WithValue(req.Context(), shared.UserIDContextKey, result.User.ID)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req.WithContext(ctx))

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "me@example.com", body["email"])
	assert.Equal(t, "Test User", body["name"])
}
