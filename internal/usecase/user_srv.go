package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"user-directory/internal/data/entity"
	"user-directory/internal/data/repository"
	"user-directory/internal/dto/request"
	"user-directory/internal/dto/response"
	"user-directory/pkg/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// ErrInvalidID is returned when an id argument is not a valid object id.
var ErrInvalidID = errors.New("invalid user id")

type UserService interface {
	GetUserByID(ctx context.Context, id string) (*response.UserResponse, error)
	GetAllUsers(ctx context.Context) ([]response.UserResponse, error)
	CreateUser(ctx context.Context, req *request.CreateUserRequest) (*response.UserResponse, error)
	UpdateUser(ctx context.Context, id string, req *request.UpdateUserRequest) (*response.UserResponse, error)
	DeleteUser(ctx context.Context, id string) (*response.UserResponse, error)
	ResetPassword(ctx context.Context, id string, req *request.ResetPasswordRequest) (*response.UserResponse, error)
	UpdateStatus(ctx context.Context, id string, req *request.UpdateStatusRequest) (*response.UserResponse, error)
	CountUsersByRole(ctx context.Context, role entity.Role) (int64, error)
	GetUserCounts(ctx context.Context) (*response.UserCountsResponse, error)
}

type userService struct {
	userRepo repository.UserRepository
	log      *zap.Logger
}

func NewUserService(userRepo repository.UserRepository, log *zap.Logger) UserService {
	return &userService{
		userRepo: userRepo,
		log:      log,
	}
}

func (us *userService) GetUserByID(ctx context.Context, id string) (*response.UserResponse, error) {
	oid, err := us.parseID(id)
	if err != nil {
		return nil, err
	}

	user, err := us.userRepo.FindByID(ctx, oid)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if user == nil {
		return nil, repository.ErrNotFound
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (us *userService) GetAllUsers(ctx context.Context) ([]response.UserResponse, error) {
	users, err := us.userRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("get all users: %w", err)
	}

	userResponses := make([]response.UserResponse, len(users))
	for i, user := range users {
		userResponses[i] = response.UserToResponse(user)
	}

	us.log.Info("Users retrieved", zap.Int("count", len(users)))
	return userResponses, nil
}

func (us *userService) CreateUser(ctx context.Context, req *request.CreateUserRequest) (*response.UserResponse, error) {
	// 1. Check email is not registered yet. Not atomic with the insert; the
	// unique index on email is the backstop for concurrent creations.
	existing, err := us.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if existing != nil {
		return nil, repository.ErrDuplicateEmail
	}

	// 2. Hash password
	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		us.log.Error("Failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("hash password: %w", err)
	}

	// 3. Normalize role to its canonical casing
	role, err := entity.ParseRole(req.Role)
	if err != nil {
		us.log.Warn("Invalid role on create", zap.String("role", req.Role))
		return nil, err
	}

	// 4. Persist
	now := time.Now()
	user := &entity.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hashedPassword,
		Role:         role,
		Status:       entity.StatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := us.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, err
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	us.log.Info("User created",
		zap.String("user_id", user.ID.Hex()),
		zap.String("email", user.Email),
		zap.String("role", string(user.Role)),
	)

	resp := response.UserToResponse(user)
	return &resp, nil
}

// UpdateUser applies only the provided fields. Password and email pass
// through verbatim: no re-hash and no uniqueness pre-check on this path.
func (us *userService) UpdateUser(ctx context.Context, id string, req *request.UpdateUserRequest) (*response.UserResponse, error) {
	oid, err := us.parseID(id)
	if err != nil {
		return nil, err
	}

	set := map[string]any{}
	if req.Name != nil {
		set["name"] = *req.Name
	}
	if req.Email != nil {
		set["email"] = *req.Email
	}
	if req.Password != nil {
		set["password"] = *req.Password
	}
	if req.Role != nil {
		role, err := entity.ParseRole(*req.Role)
		if err != nil {
			return nil, err
		}
		set["role"] = role
	}
	set["updated_at"] = time.Now()

	user, err := us.userRepo.Update(ctx, oid, set)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, err
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	if user == nil {
		return nil, repository.ErrNotFound
	}

	us.log.Info("User updated", zap.String("user_id", user.ID.Hex()))

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (us *userService) DeleteUser(ctx context.Context, id string) (*response.UserResponse, error) {
	oid, err := us.parseID(id)
	if err != nil {
		return nil, err
	}

	user, err := us.userRepo.Delete(ctx, oid)
	if err != nil {
		return nil, fmt.Errorf("delete user: %w", err)
	}
	if user == nil {
		return nil, repository.ErrNotFound
	}

	us.log.Info("User deleted",
		zap.String("user_id", user.ID.Hex()),
		zap.String("email", user.Email),
	)

	resp := response.UserToResponse(user)
	return &resp, nil
}

// ResetPassword stores the given value verbatim; hashing happens only at
// account creation.
func (us *userService) ResetPassword(ctx context.Context, id string, req *request.ResetPasswordRequest) (*response.UserResponse, error) {
	oid, err := us.parseID(id)
	if err != nil {
		return nil, err
	}

	user, err := us.userRepo.Update(ctx, oid, map[string]any{"password": req.NewPassword})
	if err != nil {
		return nil, fmt.Errorf("reset password: %w", err)
	}
	if user == nil {
		return nil, repository.ErrNotFound
	}

	us.log.Info("Password reset", zap.String("user_id", user.ID.Hex()))

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (us *userService) UpdateStatus(ctx context.Context, id string, req *request.UpdateStatusRequest) (*response.UserResponse, error) {
	oid, err := us.parseID(id)
	if err != nil {
		return nil, err
	}

	status, err := entity.ParseStatus(req.Status)
	if err != nil {
		us.log.Warn("Invalid status", zap.String("status", req.Status))
		return nil, err
	}

	user, err := us.userRepo.Update(ctx, oid, map[string]any{"status": status})
	if err != nil {
		return nil, fmt.Errorf("update status: %w", err)
	}
	if user == nil {
		return nil, repository.ErrNotFound
	}

	us.log.Info("Status updated",
		zap.String("user_id", user.ID.Hex()),
		zap.String("status", string(status)),
	)

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (us *userService) CountUsersByRole(ctx context.Context, role entity.Role) (int64, error) {
	count, err := us.userRepo.CountByRole(ctx, role)
	if err != nil {
		return 0, fmt.Errorf("count users by role: %w", err)
	}
	return count, nil
}

// GetUserCounts reports the total plus per-role counts for the fixed
// staff/director/admin set.
func (us *userService) GetUserCounts(ctx context.Context) (*response.UserCountsResponse, error) {
	total, err := us.userRepo.CountAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}

	staff, err := us.CountUsersByRole(ctx, entity.RoleStaff)
	if err != nil {
		return nil, err
	}
	director, err := us.CountUsersByRole(ctx, entity.RoleDirector)
	if err != nil {
		return nil, err
	}
	admin, err := us.CountUsersByRole(ctx, entity.RoleAdmin)
	if err != nil {
		return nil, err
	}

	return &response.UserCountsResponse{
		TotalUsers:    total,
		StaffCount:    staff,
		DirectorCount: director,
		AdminCount:    admin,
	}, nil
}

func (us *userService) parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		us.log.Warn("Invalid user ID", zap.String("user_id", id), zap.Error(err))
		return primitive.NilObjectID, ErrInvalidID
	}
	return oid, nil
}
