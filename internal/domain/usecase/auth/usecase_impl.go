package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"weather-api/internal/domain/gateway/db"
	"weather-api/internal/domain/entity"
	"weather-api/internal/domain/model"
	"weather-api/pkg/log"
	"weather-api/pkg/redis"
)

var (
	// ErrUserExists indicates the email or username is already taken.
	ErrUserExists = errors.New("email or username already registered")
	// ErrInvalidCredentials covers unknown users, wrong passwords and inactive accounts.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrTooManyAttempts indicates the per-user login rate limit was hit.
	ErrTooManyAttempts = errors.New("too many login attempts")
	// ErrInvalidSession indicates the bearer token maps to no live session.
	ErrInvalidSession = errors.New("invalid or expired session")
)

type authUseCase struct {
	sessionTTL  time.Duration
	userGateway db.UserGateway
	sessions    *redis.Cache
	limiter     *redis.RateLimiter
}

func NewAuthUseCase(sessionTTL time.Duration, userGateway db.UserGateway, sessions *redis.Cache, limiter *redis.RateLimiter) UseCase {
	return &authUseCase{
		sessionTTL:  sessionTTL,
		userGateway: userGateway,
		sessions:    sessions,
		limiter:     limiter,
	}
}

// Register creates a new user with the USER role and a hashed password
func (uc *authUseCase) Register(dto model.RegisterDTO) (*entity.User, error) {
	if dto.Email == "" || dto.Username == "" || dto.Password == "" {
		return nil, errors.New("email, username and password are required")
	}

	byEmail, err := uc.userGateway.FindByEmail(dto.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email uniqueness: %w", err)
	}
	byUsername, err := uc.userGateway.FindByUsername(dto.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to check username uniqueness: %w", err)
	}
	if byEmail != nil || byUsername != nil {
		return nil, ErrUserExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(dto.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := uc.userGateway.Create(entity.User{
		Email:    strings.ToLower(dto.Email),
		Username: dto.Username,
		Password: string(hash),
		Role:     entity.RoleUser,
		Active:   true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	log.Infof("User %s registered", user.Username)
	return user, nil
}

// Login checks credentials and opens a Redis-backed session
func (uc *authUseCase) Login(ctx context.Context, dto model.LoginDTO) (*model.LoginResponse, error) {
	allowed, err := uc.limiter.Allow(ctx, strings.ToLower(dto.Username))
	if err != nil {
		// A limiter outage must not lock everyone out
		log.Warnf("Login rate limiter unavailable for %s: %v", dto.Username, err)
	} else if !allowed {
		return nil, ErrTooManyAttempts
	}

	user, err := uc.userGateway.FindByUsername(dto.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to load user for login: %w", err)
	}
	if user == nil || !user.Active {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(dto.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token := uuid.New().String()
	session := model.Session{
		UserID: user.ID,
		Role:   user.Role,
	}

	if err := uc.sessions.SetWithTTL(ctx, token, session, uc.sessionTTL); err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}

	log.Infof("User %s logged in", user.Username)
	return &model.LoginResponse{Token: token, User: *user}, nil
}

// Logout closes the session for the given token
func (uc *authUseCase) Logout(ctx context.Context, token string) error {
	if err := uc.sessions.Delete(ctx, token); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// Resolve maps a bearer token to its session
func (uc *authUseCase) Resolve(ctx context.Context, token string) (*model.Session, error) {
	if token == "" {
		return nil, ErrInvalidSession
	}

	var session model.Session
	found, err := uc.sessions.Get(ctx, token, &session)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if !found {
		return nil, ErrInvalidSession
	}
	return &session, nil
}
