package user

import (
	"weather-api/internal/domain/entity"
	"weather-api/internal/domain/model"
)

type UseCase interface {
	// FindAll returns a paginated list of users, optionally filtered by username prefix
	FindAll(page int, size int, usernamePrefix string) (*model.Page[entity.User], error)

	// FindByID returns a single user
	FindByID(id string) (*entity.User, error)

	// UpdateRole changes a user's role
	UpdateRole(id string, role entity.Role) (*entity.User, error)

	// SetActive toggles a user's active flag
	SetActive(id string, active bool) (*entity.User, error)
}
