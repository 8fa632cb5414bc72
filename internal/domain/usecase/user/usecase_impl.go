package user

import (
	"errors"
	"fmt"
	"sync"

	"weather-api/internal/domain/entity"
	"weather-api/internal/domain/gateway/db"
	"weather-api/internal/domain/model"
	"weather-api/pkg/log"
)

var (
	// ErrUserNotFound indicates no user matches the given identifier.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidRole indicates a role outside the known enumeration.
	ErrInvalidRole = errors.New("invalid role")
)

type userUseCase struct {
	userGateway db.UserGateway
}

func NewUserUseCase(userGateway db.UserGateway) UseCase {
	return &userUseCase{userGateway: userGateway}
}

// FindAll returns a paginated list of users with an optional username prefix filter
func (uc *userUseCase) FindAll(page int, size int, usernamePrefix string) (*model.Page[entity.User], error) {
	users, totalElements, err := uc.fetchUsersAndCountInParallel(page, size, usernamePrefix)
	if err != nil {
		return nil, err
	}

	return model.NewPage(users, page, size, totalElements), nil
}

// fetchUsersAndCountInParallel fetches users and count in parallel for pagination
func (uc *userUseCase) fetchUsersAndCountInParallel(page int, size int, usernamePrefix string) ([]entity.User, int64, error) {
	var wg sync.WaitGroup
	var users []entity.User
	var totalElements int64
	var listErr, countErr error

	wg.Add(1)
	go func() {
		defer wg.Done()
		users, listErr = uc.userGateway.FindAll(page, size, usernamePrefix)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		totalElements, countErr = uc.userGateway.CountAll(usernamePrefix)
	}()

	wg.Wait()

	if listErr != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", listErr)
	}
	if countErr != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", countErr)
	}

	return users, totalElements, nil
}

// FindByID returns a single user
func (uc *userUseCase) FindByID(id string) (*entity.User, error) {
	user, err := uc.userGateway.FindByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// UpdateRole changes a user's role
func (uc *userUseCase) UpdateRole(id string, role entity.Role) (*entity.User, error) {
	if !role.Valid() {
		return nil, ErrInvalidRole
	}

	user, err := uc.userGateway.UpdateRole(id, role)
	if err != nil {
		return nil, fmt.Errorf("failed to update role: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	log.Infof("User %s role changed to %s", user.Username, role)
	return user, nil
}

// SetActive toggles a user's active flag
func (uc *userUseCase) SetActive(id string, active bool) (*entity.User, error) {
	user, err := uc.userGateway.SetActive(id, active)
	if err != nil {
		return nil, fmt.Errorf("failed to update active flag: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	log.Infof("User %s active flag set to %t", user.Username, active)
	return user, nil
}
