package db

import "weather-api/internal/domain/entity"

// UserGateway is the persistence interface for user records. Find operations
// return (nil, nil) when no record matches.
type UserGateway interface {
	FindAll(page int, size int, usernamePrefix string) ([]entity.User, error)
	CountAll(usernamePrefix string) (int64, error)
	FindByID(id string) (*entity.User, error)
	FindByUsername(username string) (*entity.User, error)
	FindByEmail(email string) (*entity.User, error)

	Create(user entity.User) (*entity.User, error)
	UpdateRole(id string, role entity.Role) (*entity.User, error)
	SetActive(id string, active bool) (*entity.User, error)
}
