package response

import (
	"time"

	"user-directory/internal/data/entity"
)

// UserResponse is the outward view of a user. The password hash is never
// part of it.
type UserResponse struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Email     string        `json:"email"`
	Role      entity.Role   `json:"role"`
	Status    entity.Status `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

type UserCountsResponse struct {
	TotalUsers    int64 `json:"total_users"`
	StaffCount    int64 `json:"staff_count"`
	DirectorCount int64 `json:"director_count"`
	AdminCount    int64 `json:"admin_count"`
}

// Helper converter
func UserToResponse(user *entity.User) UserResponse {
	return UserResponse{
		ID:        user.ID.Hex(),
		Name:      user.Name,
		Email:     user.Email,
		Role:      user.Role,
		Status:    user.Status,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}
