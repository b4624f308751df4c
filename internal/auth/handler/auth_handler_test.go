package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/romeo-folie/Todo-api/internal/apperrors"
	"github.com/romeo-folie/Todo-api/internal/auth/domain"
	"github.com/romeo-folie/Todo-api/internal/auth/handler"
	"github.com/romeo-folie/Todo-api/internal/auth/service"
)

// fakeUserRepo is a mutex-guarded in-memory UserRepository.
type fakeUserRepo struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[primitive.ObjectID]*domain.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == user.Email {
			return apperrors.ErrEmailAlreadyInUse
		}
	}
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeUserRepo) AddToken(_ context.Context, id primitive.ObjectID, token domain.Token) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	u.Tokens = append(u.Tokens, token)
	return nil
}

func (f *fakeUserRepo) RemoveToken(_ context.Context, id primitive.ObjectID, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	kept := u.Tokens[:0]
	for _, t := range u.Tokens {
		if t.Token != token {
			kept = append(kept, t)
		}
	}
	u.Tokens = kept
	return nil
}

func (f *fakeUserRepo) GetByActiveToken(_ context.Context, token string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.HasToken(token) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func newTestApp(t *testing.T) (*fiber.App, *fakeUserRepo) {
	t.Helper()

	repo := newFakeUserRepo()
	tokens := service.NewTokenService("test-secret")
	users := service.NewUserService(repo, tokens)

	app := fiber.New()
	handler.RegisterRoutes(app, handler.NewAuthHandler(users, tokens))
	return app, repo
}

func jsonRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body))
	return body
}

func TestRegister(t *testing.T) {
	app, repo := newTestApp(t)

	req := jsonRequest(t, http.MethodPost, "/users", map[string]string{
		"email":    "a@b.com",
		"password": "123abc",
	})
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	token := resp.Header.Get("x-auth")
	require.NotEmpty(t, token)

	body := decodeBody(t, resp)
	assert.Equal(t, "a@b.com", body["email"])
	assert.NotEmpty(t, body["_id"])
	// The hash and the token set never appear in a response body.
	assert.NotContains(t, body, "password")
	assert.NotContains(t, body, "tokens")

	stored, err := repo.GetByEmail(context.Background(), "a@b.com")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.NotEqual(t, "123abc", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("123abc")))
	assert.True(t, stored.HasToken(token))
}

func TestRegister_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body map[string]string
	}{
		{name: "short password", body: map[string]string{"email": "a@b.com", "password": "12345"}},
		{name: "missing email", body: map[string]string{"password": "123abc"}},
		{name: "empty body", body: map[string]string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, repo := newTestApp(t)

			resp, err := app.Test(jsonRequest(t, http.MethodPost, "/users", tt.body))
			require.NoError(t, err)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.Empty(t, resp.Header.Get("x-auth"))

			stored, err := repo.GetByEmail(context.Background(), tt.body["email"])
			require.NoError(t, err)
			assert.Nil(t, stored)
		})
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	app, _ := newTestApp(t)

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/users", map[string]string{"email": "a@b.com", "password": "123abc"}))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = app.Test(jsonRequest(t, http.MethodPost, "/users", map[string]string{"email": "a@b.com", "password": "123abc"}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Empty(t, resp.Header.Get("x-auth"))
}

func TestLogin(t *testing.T) {
	app, _ := newTestApp(t)

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/users", map[string]string{"email": "a@b.com", "password": "123abc"}))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = app.Test(jsonRequest(t, http.MethodPost, "/users/login", map[string]string{"email": "a@b.com", "password": "123abc"}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("x-auth"))

	body := decodeBody(t, resp)
	assert.Equal(t, "a@b.com", body["email"])
}

func TestLogin_WrongPassword(t *testing.T) {
	app, repo := newTestApp(t)

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/users", map[string]string{"email": "a@b.com", "password": "123abc"}))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	before, err := repo.GetByEmail(context.Background(), "a@b.com")
	require.NoError(t, err)

	resp, err = app.Test(jsonRequest(t, http.MethodPost, "/users/login", map[string]string{"email": "a@b.com", "password": "wrong!"}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Empty(t, resp.Header.Get("x-auth"))

	// The failure body names no cause beyond bad credentials.
	body := decodeBody(t, resp)
	assert.Equal(t, "invalid credentials", body["error"])

	after, err := repo.GetByEmail(context.Background(), "a@b.com")
	require.NoError(t, err)
	assert.Equal(t, before.Tokens, after.Tokens)
}

func TestLogin_UnknownEmailLooksTheSame(t *testing.T) {
	app, _ := newTestApp(t)

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/users/login", map[string]string{"email": "nobody@b.com", "password": "123abc"}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Empty(t, resp.Header.Get("x-auth"))

	body := decodeBody(t, resp)
	assert.Equal(t, "invalid credentials", body["error"])
}

func TestMe(t *testing.T) {
	app, _ := newTestApp(t)

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/users", map[string]string{"email": "a@b.com", "password": "123abc"}))
	require.NoError(t, err)
	token := resp.Header.Get("x-auth")
	require.NotEmpty(t, token)

	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	req.Header.Set("x-auth", token)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "a@b.com", body["email"])
}

func TestMe_Unauthorized(t *testing.T) {
	app, _ := newTestApp(t)

	foreign := service.NewTokenService("different-secret")
	foreignToken, err := foreign.Issue(primitive.NewObjectID().Hex(), domain.TokenPurposeAuth)
	require.NoError(t, err)

	// A structurally valid token from our own secret, but never persisted.
	ours := service.NewTokenService("test-secret")
	unpersisted, err := ours.Issue(primitive.NewObjectID().Hex(), domain.TokenPurposeAuth)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{name: "missing header", token: ""},
		{name: "garbage token", token: "not-a-token"},
		{name: "wrong signing secret", token: foreignToken},
		{name: "valid signature but no active session", token: unpersisted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
			if tt.token != "" {
				req.Header.Set("x-auth", tt.token)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

			// Every rejection reads the same from the outside.
			body := decodeBody(t, resp)
			assert.Equal(t, map[string]any{"error": "unauthorized"}, body)
		})
	}
}

func TestLogout_RevokesToken(t *testing.T) {
	app, _ := newTestApp(t)

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/users", map[string]string{"email": "a@b.com", "password": "123abc"}))
	require.NoError(t, err)
	token := resp.Header.Get("x-auth")
	require.NotEmpty(t, token)

	req := httptest.NewRequest(http.MethodDelete, "/users/me/token", nil)
	req.Header.Set("x-auth", token)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// The same token no longer authenticates anything.
	req = httptest.NewRequest(http.MethodGet, "/users/me", nil)
	req.Header.Set("x-auth", token)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestLogout_OtherSessionsSurvive(t *testing.T) {
	app, _ := newTestApp(t)

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/users", map[string]string{"email": "a@b.com", "password": "123abc"}))
	require.NoError(t, err)
	firstToken := resp.Header.Get("x-auth")

	resp, err = app.Test(jsonRequest(t, http.MethodPost, "/users/login", map[string]string{"email": "a@b.com", "password": "123abc"}))
	require.NoError(t, err)
	secondToken := resp.Header.Get("x-auth")
	require.NotEqual(t, firstToken, secondToken)

	req := httptest.NewRequest(http.MethodDelete, "/users/me/token", nil)
	req.Header.Set("x-auth", firstToken)
	resp, err = app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Only the token used for logout is gone.
	req = httptest.NewRequest(http.MethodGet, "/users/me", nil)
	req.Header.Set("x-auth", secondToken)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
