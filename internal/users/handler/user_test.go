package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"futsal/pkg/auth"
	apperrors "futsal/pkg/errors"
	"futsal/pkg/logger"
	"futsal/pkg/model"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockUserService struct {
	registerFunc func(ctx context.Context, req *model.RegisterRequest) (*model.User, error)
	getAllFunc   func(ctx context.Context) ([]*model.User, error)
	getByIDFunc  func(ctx context.Context, id string) (*model.User, error)
	deleteFunc   func(ctx context.Context, id string) error
	loginFunc    func(ctx context.Context, req *model.LoginRequest) (*model.LoginResult, error)
}

func (m *mockUserService) Register(ctx context.Context, req *model.RegisterRequest) (*model.User, error) {
	if m.registerFunc != nil {
		return m.registerFunc(ctx, req)
	}
	return &model.User{}, nil
}

func (m *mockUserService) GetAll(ctx context.Context) ([]*model.User, error) {
	if m.getAllFunc != nil {
		return m.getAllFunc(ctx)
	}
	return []*model.User{}, nil
}

func (m *mockUserService) GetByID(ctx context.Context, id string) (*model.User, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return &model.User{ID: id}, nil
}

func (m *mockUserService) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

func (m *mockUserService) Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResult, error) {
	if m.loginFunc != nil {
		return m.loginFunc(ctx, req)
	}
	return &model.LoginResult{}, nil
}

type envelope struct {
	Data      json.RawMessage `json:"data"`
	Message   string          `json:"message"`
	Code      string          `json:"code"`
	Token     string          `json:"token"`
	ExpiresAt time.Time       `json:"expiresAt"`
}

func newRouter(t *testing.T, svc *mockUserService) (*httprouter.Router, string) {
	t.Helper()
	jwt := auth.NewJWTManager("test-secret", time.Hour, "futsal")
	token, _, err := jwt.Issue(auth.Identity{UserID: "u-1", Username: "budi", Role: "admin"})
	require.NoError(t, err)

	router := httprouter.New()
	NewUserHandler(svc, jwt, logger.Discard()).RegisterRoutes(router)
	return router, token
}

func serve(router http.Handler, method, target, body, token string) (*httptest.ResponseRecorder, envelope) {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var env envelope
	_ = json.Unmarshal(rec.Body.Bytes(), &env)
	return rec, env
}

func TestRegister(t *testing.T) {
	var received *model.RegisterRequest
	svc := &mockUserService{
		registerFunc: func(ctx context.Context, req *model.RegisterRequest) (*model.User, error) {
			received = req
			return &model.User{ID: "u-9", Username: req.Username, PasswordHash: "$2a$10$hash"}, nil
		},
	}
	router, _ := newRouter(t, svc)

	body := `{"username":"budi","password":"secret123","wa":"081234567890","namaLapangan":"Garuda","role":"admin"}`
	rec, env := serve(router, http.MethodPost, "/users", body, "")

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "User created successfully", env.Message)
	assert.Contains(t, string(env.Data), `"id":"u-9"`)
	assert.NotContains(t, rec.Body.String(), "hash")
	assert.NotContains(t, rec.Body.String(), "password")

	require.NotNil(t, received)
	assert.Equal(t, "081234567890", received.Phone)
	assert.Equal(t, "Garuda", received.FieldName)

	t.Run("conflict", func(t *testing.T) {
		svc.registerFunc = func(ctx context.Context, req *model.RegisterRequest) (*model.User, error) {
			return nil, apperrors.Conflict("Username already exists")
		}
		rec, env := serve(router, http.MethodPost, "/users", body, "")
		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Equal(t, apperrors.CodeConflict, env.Code)
		assert.Equal(t, "Username already exists", env.Message)
	})

	t.Run("malformed body", func(t *testing.T) {
		rec, env := serve(router, http.MethodPost, "/users", `{"username":`, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, apperrors.CodeInvalidInput, env.Code)
	})
}

func TestGetAllAndGetByID(t *testing.T) {
	router, _ := newRouter(t, &mockUserService{
		getAllFunc: func(ctx context.Context) ([]*model.User, error) {
			return []*model.User{{ID: "a"}, {ID: "b"}}, nil
		},
		getByIDFunc: func(ctx context.Context, id string) (*model.User, error) {
			if id == "missing" {
				return nil, apperrors.NotFound("User")
			}
			return &model.User{ID: id, Username: "budi"}, nil
		},
	})

	rec, env := serve(router, http.MethodGet, "/users", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var users []model.User
	require.NoError(t, json.Unmarshal(env.Data, &users))
	assert.Len(t, users, 2)

	rec, env = serve(router, http.MethodGet, "/users/u-3", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(env.Data), `"id":"u-3"`)

	rec, env = serve(router, http.MethodGet, "/users/missing", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "User not found", env.Message)
}

func TestDelete(t *testing.T) {
	var deleted string
	router, token := newRouter(t, &mockUserService{
		deleteFunc: func(ctx context.Context, id string) error {
			deleted = id
			return nil
		},
	})

	rec, _ := serve(router, http.MethodDelete, "/users/delete/u-2", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, deleted)

	rec, env := serve(router, http.MethodDelete, "/users/delete/u-2", "", token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "User deleted successfully", env.Message)
	assert.Equal(t, "u-2", deleted)
}

func TestLogin(t *testing.T) {
	expires := time.Date(2025, 2, 19, 13, 0, 0, 0, time.UTC)
	router, _ := newRouter(t, &mockUserService{
		loginFunc: func(ctx context.Context, req *model.LoginRequest) (*model.LoginResult, error) {
			if req.Password != "secret123" {
				return nil, apperrors.Unauthorized("Invalid username or password")
			}
			return &model.LoginResult{
				Token:     "signed.jwt.token",
				ExpiresAt: expires,
				User:      &model.User{ID: "u-1", Username: req.Username},
			}, nil
		},
	})

	rec, env := serve(router, http.MethodPost, "/login", `{"username":"budi","password":"secret123"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Login successful", env.Message)
	assert.Equal(t, "signed.jwt.token", env.Token)
	assert.True(t, expires.Equal(env.ExpiresAt))
	assert.Contains(t, string(env.Data), `"username":"budi"`)

	rec, env = serve(router, http.MethodPost, "/login", `{"username":"budi","password":"nope"}`, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid username or password", env.Message)
}
