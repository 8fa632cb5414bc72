package model

import "weather-api/internal/domain/entity"

// RegisterDTO is the inbound registration payload.
type RegisterDTO struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginDTO is the inbound login payload.
type LoginDTO struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse carries the opaque session token and the authenticated profile.
type LoginResponse struct {
	Token string      `json:"token"`
	User  entity.User `json:"user"`
}

// Session is the Redis-backed session state resolved from a bearer token.
type Session struct {
	UserID string      `json:"userId"`
	Role   entity.Role `json:"role"`
}

// UpdateRoleDTO is the inbound payload for changing a user's role.
type UpdateRoleDTO struct {
	Role entity.Role `json:"role"`
}

// SetActiveDTO is the inbound payload for toggling a user's active flag. A pointer
// distinguishes an explicit false from a missing field.
type SetActiveDTO struct {
	Active *bool `json:"active"`
}
