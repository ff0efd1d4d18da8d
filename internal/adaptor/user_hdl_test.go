package adaptor

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"user-directory/internal/data/entity"
	"user-directory/internal/data/repository"
	"user-directory/internal/dto/request"
	"user-directory/internal/dto/response"
	"user-directory/internal/usecase"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// ---- mock service ----

type mockUserService struct {
	getByIDFn       func(ctx context.Context, id string) (*response.UserResponse, error)
	getAllFn        func(ctx context.Context) ([]response.UserResponse, error)
	createFn        func(ctx context.Context, req *request.CreateUserRequest) (*response.UserResponse, error)
	updateFn        func(ctx context.Context, id string, req *request.UpdateUserRequest) (*response.UserResponse, error)
	deleteFn        func(ctx context.Context, id string) (*response.UserResponse, error)
	resetPasswordFn func(ctx context.Context, id string, req *request.ResetPasswordRequest) (*response.UserResponse, error)
	updateStatusFn  func(ctx context.Context, id string, req *request.UpdateStatusRequest) (*response.UserResponse, error)
	countByRoleFn   func(ctx context.Context, role entity.Role) (int64, error)
	getCountsFn     func(ctx context.Context) (*response.UserCountsResponse, error)
}

func (m *mockUserService) GetUserByID(ctx context.Context, id string) (*response.UserResponse, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, errors.New("not configured")
}

func (m *mockUserService) GetAllUsers(ctx context.Context) ([]response.UserResponse, error) {
	if m.getAllFn != nil {
		return m.getAllFn(ctx)
	}
	return nil, errors.New("not configured")
}

func (m *mockUserService) CreateUser(ctx context.Context, req *request.CreateUserRequest) (*response.UserResponse, error) {
	if m.createFn != nil {
		return m.createFn(ctx, req)
	}
	return nil, errors.New("not configured")
}

func (m *mockUserService) UpdateUser(ctx context.Context, id string, req *request.UpdateUserRequest) (*response.UserResponse, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, id, req)
	}
	return nil, errors.New("not configured")
}

func (m *mockUserService) DeleteUser(ctx context.Context, id string) (*response.UserResponse, error) {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil, errors.New("not configured")
}

func (m *mockUserService) ResetPassword(ctx context.Context, id string, req *request.ResetPasswordRequest) (*response.UserResponse, error) {
	if m.resetPasswordFn != nil {
		return m.resetPasswordFn(ctx, id, req)
	}
	return nil, errors.New("not configured")
}

func (m *mockUserService) UpdateStatus(ctx context.Context, id string, req *request.UpdateStatusRequest) (*response.UserResponse, error) {
	if m.updateStatusFn != nil {
		return m.updateStatusFn(ctx, id, req)
	}
	return nil, errors.New("not configured")
}

func (m *mockUserService) CountUsersByRole(ctx context.Context, role entity.Role) (int64, error) {
	if m.countByRoleFn != nil {
		return m.countByRoleFn(ctx, role)
	}
	return 0, errors.New("not configured")
}

func (m *mockUserService) GetUserCounts(ctx context.Context) (*response.UserCountsResponse, error) {
	if m.getCountsFn != nil {
		return m.getCountsFn(ctx)
	}
	return nil, errors.New("not configured")
}

// ---- helpers ----

func newUserTestRouter(svc usecase.UserService) *chi.Mux {
	h := NewUserHandler(svc, zap.NewNop())

	r := chi.NewRouter()
	r.Route("/api/users", func(r chi.Router) {
		r.Get("/", h.GetAllUsers)
		r.Get("/counts", h.GetUserCounts)
		r.Get("/{id}", h.GetUserByID)
		r.Post("/", h.CreateUser)
		r.Patch("/{id}", h.UpdateUser)
		r.Delete("/{id}", h.DeleteUser)
		r.Patch("/{id}/password", h.ResetPassword)
		r.Patch("/{id}/status", h.UpdateStatus)
	})
	return r
}

func doRequest(router *chi.Mux, method, url string, body any) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, url, nil)
	if body != nil {
		b, _ := json.Marshal(body)
		req = httptest.NewRequest(method, url, strings.NewReader(string(b)))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var envelope map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	return envelope
}

var testUserResp = &response.UserResponse{
	ID:     "64b0c5f2a1b2c3d4e5f60718",
	Name:   "Alice",
	Email:  "alice@example.com",
	Role:   entity.RoleStaff,
	Status: entity.StatusActive,
}

// ---- createUser ----

func TestCreateUserHandler_Success(t *testing.T) {
	svc := &mockUserService{
		createFn: func(ctx context.Context, req *request.CreateUserRequest) (*response.UserResponse, error) {
			assert.Equal(t, "alice@example.com", req.Email)
			return testUserResp, nil
		},
	}
	router := newUserTestRouter(svc)

	w := doRequest(router, http.MethodPost, "/api/users", map[string]string{
		"name":     "Alice",
		"email":    "alice@example.com",
		"password": "secret123",
		"role":     "staff",
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	envelope := decodeEnvelope(t, w)
	assert.Equal(t, true, envelope["status"])

	data := envelope["data"].(map[string]any)
	assert.Equal(t, "alice@example.com", data["email"])
	// the password never appears in any outward representation
	assert.NotContains(t, data, "password")
}

func TestCreateUserHandler_ShapeValidation(t *testing.T) {
	called := false
	svc := &mockUserService{
		createFn: func(ctx context.Context, req *request.CreateUserRequest) (*response.UserResponse, error) {
			called = true
			return testUserResp, nil
		},
	}
	router := newUserTestRouter(svc)

	cases := []struct {
		name string
		body map[string]string
	}{
		{"missing name", map[string]string{"email": "a@x.com", "password": "secret123", "role": "staff"}},
		{"bad email", map[string]string{"name": "A", "email": "not-an-email", "password": "secret123", "role": "staff"}},
		{"short password", map[string]string{"name": "A", "email": "a@x.com", "password": "12345", "role": "staff"}},
		{"missing role", map[string]string{"name": "A", "email": "a@x.com", "password": "secret123"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doRequest(router, http.MethodPost, "/api/users", tc.body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			envelope := decodeEnvelope(t, w)
			assert.Equal(t, false, envelope["status"])
			assert.NotNil(t, envelope["errors"])
		})
	}

	assert.False(t, called, "malformed input must not reach the service")
}

func TestCreateUserHandler_DuplicateEmail(t *testing.T) {
	svc := &mockUserService{
		createFn: func(ctx context.Context, req *request.CreateUserRequest) (*response.UserResponse, error) {
			return nil, repository.ErrDuplicateEmail
		},
	}
	router := newUserTestRouter(svc)

	w := doRequest(router, http.MethodPost, "/api/users", map[string]string{
		"name":     "Bob",
		"email":    "alice@example.com",
		"password": "secret123",
		"role":     "staff",
	})

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestCreateUserHandler_InvalidRole(t *testing.T) {
	svc := &mockUserService{
		createFn: func(ctx context.Context, req *request.CreateUserRequest) (*response.UserResponse, error) {
			return nil, entity.ErrInvalidRole
		},
	}
	router := newUserTestRouter(svc)

	w := doRequest(router, http.MethodPost, "/api/users", map[string]string{
		"name":     "Bob",
		"email":    "bob@example.com",
		"password": "secret123",
		"role":     "manager",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// ---- reads ----

func TestGetUserByIDHandler(t *testing.T) {
	svc := &mockUserService{
		getByIDFn: func(ctx context.Context, id string) (*response.UserResponse, error) {
			if id == testUserResp.ID {
				return testUserResp, nil
			}
			return nil, repository.ErrNotFound
		},
	}
	router := newUserTestRouter(svc)

	w := doRequest(router, http.MethodGet, "/api/users/"+testUserResp.ID, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doRequest(router, http.MethodGet, "/api/users/64b0c5f2a1b2c3d4e5f60000", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetAllUsersHandler(t *testing.T) {
	svc := &mockUserService{
		getAllFn: func(ctx context.Context) ([]response.UserResponse, error) {
			return []response.UserResponse{*testUserResp}, nil
		},
	}
	router := newUserTestRouter(svc)

	w := doRequest(router, http.MethodGet, "/api/users", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	envelope := decodeEnvelope(t, w)
	data := envelope["data"].([]any)
	assert.Len(t, data, 1)
}

func TestGetUserCountsHandler(t *testing.T) {
	svc := &mockUserService{
		getCountsFn: func(ctx context.Context) (*response.UserCountsResponse, error) {
			return &response.UserCountsResponse{
				TotalUsers:    4,
				StaffCount:    1,
				DirectorCount: 1,
				AdminCount:    1,
			}, nil
		},
	}
	router := newUserTestRouter(svc)

	w := doRequest(router, http.MethodGet, "/api/users/counts", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	envelope := decodeEnvelope(t, w)
	data := envelope["data"].(map[string]any)
	assert.Equal(t, float64(4), data["total_users"])
	assert.Equal(t, float64(1), data["staff_count"])
	assert.Equal(t, float64(1), data["director_count"])
	assert.Equal(t, float64(1), data["admin_count"])
}

// ---- mutations ----

func TestUpdateUserHandler_PartialBody(t *testing.T) {
	svc := &mockUserService{
		updateFn: func(ctx context.Context, id string, req *request.UpdateUserRequest) (*response.UserResponse, error) {
			assert.Nil(t, req.Name)
			require.NotNil(t, req.Email)
			assert.Equal(t, "new@example.com", *req.Email)
			return testUserResp, nil
		},
	}
	router := newUserTestRouter(svc)

	w := doRequest(router, http.MethodPatch, "/api/users/"+testUserResp.ID, map[string]string{
		"email": "new@example.com",
	})

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestUpdateUserHandler_BadEmailShape(t *testing.T) {
	called := false
	svc := &mockUserService{
		updateFn: func(ctx context.Context, id string, req *request.UpdateUserRequest) (*response.UserResponse, error) {
			called = true
			return testUserResp, nil
		},
	}
	router := newUserTestRouter(svc)

	w := doRequest(router, http.MethodPatch, "/api/users/"+testUserResp.ID, map[string]string{
		"email": "nope",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, called)
}

func TestDeleteUserHandler(t *testing.T) {
	svc := &mockUserService{
		deleteFn: func(ctx context.Context, id string) (*response.UserResponse, error) {
			return testUserResp, nil
		},
	}
	router := newUserTestRouter(svc)

	w := doRequest(router, http.MethodDelete, "/api/users/"+testUserResp.ID, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	envelope := decodeEnvelope(t, w)
	data := envelope["data"].(map[string]any)
	assert.Equal(t, testUserResp.Email, data["email"])
}

func TestResetPasswordHandler(t *testing.T) {
	svc := &mockUserService{
		resetPasswordFn: func(ctx context.Context, id string, req *request.ResetPasswordRequest) (*response.UserResponse, error) {
			assert.Equal(t, "fresh-password", req.NewPassword)
			return testUserResp, nil
		},
	}
	router := newUserTestRouter(svc)

	w := doRequest(router, http.MethodPatch, "/api/users/"+testUserResp.ID+"/password", map[string]string{
		"new_password": "fresh-password",
	})

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestResetPasswordHandler_MissingPassword(t *testing.T) {
	svc := &mockUserService{}
	router := newUserTestRouter(svc)

	w := doRequest(router, http.MethodPatch, "/api/users/"+testUserResp.ID+"/password", map[string]string{})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestResetPasswordHandler_NotFound(t *testing.T) {
	svc := &mockUserService{
		resetPasswordFn: func(ctx context.Context, id string, req *request.ResetPasswordRequest) (*response.UserResponse, error) {
			return nil, repository.ErrNotFound
		},
	}
	router := newUserTestRouter(svc)

	w := doRequest(router, http.MethodPatch, "/api/users/64b0c5f2a1b2c3d4e5f60000/password", map[string]string{
		"new_password": "whatever",
	})

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateStatusHandler(t *testing.T) {
	svc := &mockUserService{
		updateStatusFn: func(ctx context.Context, id string, req *request.UpdateStatusRequest) (*response.UserResponse, error) {
			assert.Equal(t, "inactive", req.Status)
			return testUserResp, nil
		},
	}
	router := newUserTestRouter(svc)

	w := doRequest(router, http.MethodPatch, "/api/users/"+testUserResp.ID+"/status", map[string]string{
		"status": "inactive",
	})

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestUpdateStatusHandler_InvalidStatus(t *testing.T) {
	svc := &mockUserService{
		updateStatusFn: func(ctx context.Context, id string, req *request.UpdateStatusRequest) (*response.UserResponse, error) {
			return nil, entity.ErrInvalidStatus
		},
	}
	router := newUserTestRouter(svc)

	w := doRequest(router, http.MethodPatch, "/api/users/"+testUserResp.ID+"/status", map[string]string{
		"status": "dormant",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandlerMapsUnknownErrorsToInternal(t *testing.T) {
	svc := &mockUserService{
		getAllFn: func(ctx context.Context) ([]response.UserResponse, error) {
			return nil, errors.New("store unreachable")
		},
	}
	router := newUserTestRouter(svc)

	w := doRequest(router, http.MethodGet, "/api/users", nil)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	envelope := decodeEnvelope(t, w)
	// store failures stay opaque to the caller
	assert.Equal(t, "Internal server error", envelope["message"])
}
