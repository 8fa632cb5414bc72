package auth

import (
	"context"

	"weather-api/internal/domain/entity"
	"weather-api/internal/domain/model"
)

type UseCase interface {
	// Register creates a new user with the USER role and a hashed password.
	Register(dto model.RegisterDTO) (*entity.User, error)

	// Login checks credentials and opens a session, returning the opaque token.
	Login(ctx context.Context, dto model.LoginDTO) (*model.LoginResponse, error)

	// Logout closes the session for the given token.
	Logout(ctx context.Context, token string) error

	// Resolve maps a bearer token to its session, if any.
	Resolve(ctx context.Context, token string) (*model.Session, error)
}
