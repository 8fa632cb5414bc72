package auth

import (
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"weather-api/internal/domain/entity"
	"weather-api/internal/domain/model"
)

type fakeUserGateway struct {
	users     []entity.User
	createErr error
}

func (f *fakeUserGateway) FindAll(page int, size int, usernamePrefix string) ([]entity.User, error) {
	return f.users, nil
}

func (f *fakeUserGateway) CountAll(usernamePrefix string) (int64, error) {
	return int64(len(f.users)), nil
}

func (f *fakeUserGateway) FindByID(id string) (*entity.User, error) {
	for i := range f.users {
		if f.users[i].ID == id {
			return &f.users[i], nil
		}
	}
	return nil, nil
}

func (f *fakeUserGateway) FindByUsername(username string) (*entity.User, error) {
	for i := range f.users {
		if f.users[i].Username == username {
			return &f.users[i], nil
		}
	}
	return nil, nil
}

func (f *fakeUserGateway) FindByEmail(email string) (*entity.User, error) {
	for i := range f.users {
		if f.users[i].Email == email {
			return &f.users[i], nil
		}
	}
	return nil, nil
}

func (f *fakeUserGateway) Create(user entity.User) (*entity.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	user.ID = "generated-id"
	f.users = append(f.users, user)
	return &f.users[len(f.users)-1], nil
}

func (f *fakeUserGateway) UpdateRole(id string, role entity.Role) (*entity.User, error) {
	return nil, nil
}

func (f *fakeUserGateway) SetActive(id string, active bool) (*entity.User, error) {
	return nil, nil
}

// TestRegister_Success verifies the created user carries the USER role, an active
// flag, a lowercased email, and a bcrypt hash instead of the raw password.
func TestRegister_Success(t *testing.T) {
	gateway := &fakeUserGateway{}
	uc := NewAuthUseCase(time.Hour, gateway, nil, nil)

	created, err := uc.Register(model.RegisterDTO{
		Email:    "Alice@Example.com",
		Username: "alice",
		Password: "s3cret-pass",
	})
	if err != nil {
		t.Fatalf("Register() error = %v, want nil", err)
	}

	if created.Role != entity.RoleUser {
		t.Errorf("Register().Role = %q, want USER", created.Role)
	}
	if !created.Active {
		t.Error("Register().Active = false, want true")
	}
	if created.Email != "alice@example.com" {
		t.Errorf("Register().Email = %q, want lowercased", created.Email)
	}
	if created.Password == "s3cret-pass" {
		t.Fatal("Register() stored the raw password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(created.Password), []byte("s3cret-pass")); err != nil {
		t.Errorf("stored password is not a valid bcrypt hash of the input: %v", err)
	}
}

// TestRegister_MissingFields verifies incomplete registrations are rejected before
// any persistence.
func TestRegister_MissingFields(t *testing.T) {
	tests := []struct {
		name string
		dto  model.RegisterDTO
	}{
		{name: "no email", dto: model.RegisterDTO{Username: "alice", Password: "pw"}},
		{name: "no username", dto: model.RegisterDTO{Email: "a@b.com", Password: "pw"}},
		{name: "no password", dto: model.RegisterDTO{Email: "a@b.com", Username: "alice"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			gateway := &fakeUserGateway{}
			uc := NewAuthUseCase(time.Hour, gateway, nil, nil)

			if _, err := uc.Register(tc.dto); err == nil {
				t.Fatal("Register() error = nil, want validation error")
			}
			if len(gateway.users) != 0 {
				t.Errorf("user persisted despite validation failure")
			}
		})
	}
}

// TestRegister_Duplicates verifies both email and username uniqueness.
func TestRegister_Duplicates(t *testing.T) {
	existing := entity.User{ID: "1", Email: "alice@example.com", Username: "alice"}

	tests := []struct {
		name string
		dto  model.RegisterDTO
	}{
		{name: "duplicate email", dto: model.RegisterDTO{Email: "alice@example.com", Username: "other", Password: "pw"}},
		{name: "duplicate username", dto: model.RegisterDTO{Email: "other@example.com", Username: "alice", Password: "pw"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			gateway := &fakeUserGateway{users: []entity.User{existing}}
			uc := NewAuthUseCase(time.Hour, gateway, nil, nil)

			if _, err := uc.Register(tc.dto); !errors.Is(err, ErrUserExists) {
				t.Fatalf("Register() error = %v, want ErrUserExists", err)
			}
		})
	}
}
