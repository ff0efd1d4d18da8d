package entity

import (
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Role string

const (
	RoleStaff    Role = "staff"
	RoleDirector Role = "director"
	RoleAdmin    Role = "admin"
)

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

var (
	ErrInvalidRole   = errors.New("invalid role")
	ErrInvalidStatus = errors.New("invalid status")
)

// ParseRole accepts any casing and returns the canonical lower-case role.
func ParseRole(s string) (Role, error) {
	switch Role(strings.ToLower(s)) {
	case RoleStaff, RoleDirector, RoleAdmin:
		return Role(strings.ToLower(s)), nil
	default:
		return "", ErrInvalidRole
	}
}

// ParseStatus accepts any casing and returns the canonical lower-case status.
func ParseStatus(s string) (Status, error) {
	switch Status(strings.ToLower(s)) {
	case StatusActive, StatusInactive:
		return Status(strings.ToLower(s)), nil
	default:
		return "", ErrInvalidStatus
	}
}

type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Name         string             `bson:"name"`
	Email        string             `bson:"email"`
	PasswordHash string             `bson:"password"`
	Role         Role               `bson:"role"`
	Status       Status             `bson:"status"`
	CreatedAt    time.Time          `bson:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at"`
}
