package adaptor

import (
	"encoding/json"
	"errors"
	"net/http"

	"user-directory/internal/data/entity"
	"user-directory/internal/data/repository"
	"user-directory/internal/dto/request"
	"user-directory/internal/usecase"
	"user-directory/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type UserHandler struct {
	service usecase.UserService
	log     *zap.Logger
}

func NewUserHandler(service usecase.UserService, log *zap.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		log:     log,
	}
}

// GetUserByID handles GET /api/users/{id}
func (h *UserHandler) GetUserByID(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")
	if userID == "" {
		utils.ResponseBadRequest(w, "User ID is required", nil)
		return
	}

	user, err := h.service.GetUserByID(r.Context(), userID)
	if err != nil {
		h.handleServiceError(w, err, "get user by id")
		return
	}

	utils.ResponseSuccess(w, "User retrieved successfully", user)
}

// GetAllUsers handles GET /api/users
func (h *UserHandler) GetAllUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.GetAllUsers(r.Context())
	if err != nil {
		h.handleServiceError(w, err, "get all users")
		return
	}

	utils.ResponseSuccess(w, "Users retrieved successfully", users)
}

// GetUserCounts handles GET /api/users/counts
func (h *UserHandler) GetUserCounts(w http.ResponseWriter, r *http.Request) {
	counts, err := h.service.GetUserCounts(r.Context())
	if err != nil {
		h.handleServiceError(w, err, "get user counts")
		return
	}

	utils.ResponseSuccess(w, "User counts retrieved successfully", counts)
}

// CreateUser handles POST /api/users
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req request.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	// Shape validation happens here; the service never sees malformed input
	if errs := utils.ValidateStruct(&req); len(errs) > 0 {
		h.log.Warn("Create user validation failed", zap.Any("errors", errs))
		utils.ResponseBadRequest(w, "Validation failed", errs)
		return
	}

	user, err := h.service.CreateUser(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err, "create user")
		return
	}

	utils.ResponseCreated(w, "User created successfully", user)
}

// UpdateUser handles PATCH /api/users/{id}
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")

	var req request.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if errs := utils.ValidateStruct(&req); len(errs) > 0 {
		h.log.Warn("Update user validation failed", zap.Any("errors", errs))
		utils.ResponseBadRequest(w, "Validation failed", errs)
		return
	}

	user, err := h.service.UpdateUser(r.Context(), userID, &req)
	if err != nil {
		h.handleServiceError(w, err, "update user")
		return
	}

	utils.ResponseSuccess(w, "User updated successfully", user)
}

// DeleteUser handles DELETE /api/users/{id}
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")
	if userID == "" {
		utils.ResponseBadRequest(w, "User ID is required", nil)
		return
	}

	user, err := h.service.DeleteUser(r.Context(), userID)
	if err != nil {
		h.handleServiceError(w, err, "delete user")
		return
	}

	utils.ResponseSuccess(w, "User deleted successfully", user)
}

// ResetPassword handles PATCH /api/users/{id}/password
func (h *UserHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")

	var req request.ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if errs := utils.ValidateStruct(&req); len(errs) > 0 {
		h.log.Warn("Reset password validation failed", zap.Any("errors", errs))
		utils.ResponseBadRequest(w, "Validation failed", errs)
		return
	}

	user, err := h.service.ResetPassword(r.Context(), userID, &req)
	if err != nil {
		h.handleServiceError(w, err, "reset password")
		return
	}

	utils.ResponseSuccess(w, "Password reset successfully", user)
}

// UpdateStatus handles PATCH /api/users/{id}/status
func (h *UserHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")

	var req request.UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if errs := utils.ValidateStruct(&req); len(errs) > 0 {
		h.log.Warn("Update status validation failed", zap.Any("errors", errs))
		utils.ResponseBadRequest(w, "Validation failed", errs)
		return
	}

	user, err := h.service.UpdateStatus(r.Context(), userID, &req)
	if err != nil {
		h.handleServiceError(w, err, "update status")
		return
	}

	utils.ResponseSuccess(w, "Status updated successfully", user)
}

// handleServiceError maps service errors to response codes
func (h *UserHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		h.log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, err.Error())

	case errors.Is(err, repository.ErrDuplicateEmail):
		h.log.Warn(operation+" failed - duplicate email", zap.Error(err))
		utils.ResponseConflict(w, err.Error())

	case errors.Is(err, entity.ErrInvalidRole),
		errors.Is(err, entity.ErrInvalidStatus),
		errors.Is(err, usecase.ErrInvalidID):
		h.log.Warn("Invalid input for "+operation, zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	default:
		h.log.Error("Failed to "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
