package user

import (
	"errors"
	"strings"
	"testing"

	"weather-api/internal/domain/entity"
)

type fakeUserGateway struct {
	users   []entity.User
	listErr error
}

func (f *fakeUserGateway) FindAll(page int, size int, usernamePrefix string) ([]entity.User, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var matched []entity.User
	for _, u := range f.users {
		if strings.HasPrefix(u.Username, usernamePrefix) {
			matched = append(matched, u)
		}
	}
	start := page * size
	if start >= len(matched) {
		return nil, nil
	}
	end := start + size
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], nil
}

func (f *fakeUserGateway) CountAll(usernamePrefix string) (int64, error) {
	if f.listErr != nil {
		return 0, f.listErr
	}
	var count int64
	for _, u := range f.users {
		if strings.HasPrefix(u.Username, usernamePrefix) {
			count++
		}
	}
	return count, nil
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
	f.users = append(f.users, user)
	return &f.users[len(f.users)-1], nil
}

func (f *fakeUserGateway) UpdateRole(id string, role entity.Role) (*entity.User, error) {
	for i := range f.users {
		if f.users[i].ID == id {
			f.users[i].Role = role
			return &f.users[i], nil
		}
	}
	return nil, nil
}

func (f *fakeUserGateway) SetActive(id string, active bool) (*entity.User, error) {
	for i := range f.users {
		if f.users[i].ID == id {
			f.users[i].Active = active
			return &f.users[i], nil
		}
	}
	return nil, nil
}

func seededGateway() *fakeUserGateway {
	return &fakeUserGateway{users: []entity.User{
		{ID: "1", Username: "alice", Email: "alice@example.com", Role: entity.RoleAdmin, Active: true},
		{ID: "2", Username: "alan", Email: "alan@example.com", Role: entity.RoleUser, Active: true},
		{ID: "3", Username: "bob", Email: "bob@example.com", Role: entity.RoleUser, Active: true},
	}}
}

// TestFindAll_Pagination verifies page slicing and total element counting.
func TestFindAll_Pagination(t *testing.T) {
	uc := NewUserUseCase(seededGateway())

	page, err := uc.FindAll(0, 2, "")
	if err != nil {
		t.Fatalf("FindAll() error = %v, want nil", err)
	}
	if len(page.Content) != 2 {
		t.Errorf("page content = %d users, want 2", len(page.Content))
	}
	if page.TotalElements != 3 {
		t.Errorf("total elements = %d, want 3", page.TotalElements)
	}
	if page.TotalPages != 2 {
		t.Errorf("total pages = %d, want 2", page.TotalPages)
	}
}

// TestFindAll_PrefixFilter verifies the username prefix narrows both rows and count.
func TestFindAll_PrefixFilter(t *testing.T) {
	uc := NewUserUseCase(seededGateway())

	page, err := uc.FindAll(0, 10, "al")
	if err != nil {
		t.Fatalf("FindAll() error = %v, want nil", err)
	}
	if len(page.Content) != 2 || page.TotalElements != 2 {
		t.Errorf("filtered page = %d rows / %d total, want 2/2", len(page.Content), page.TotalElements)
	}
}

// TestFindByID verifies hit and not-found behaviour.
func TestFindByID(t *testing.T) {
	uc := NewUserUseCase(seededGateway())

	found, err := uc.FindByID("1")
	if err != nil {
		t.Fatalf("FindByID() error = %v, want nil", err)
	}
	if found.Username != "alice" {
		t.Errorf("FindByID().Username = %q, want alice", found.Username)
	}

	_, err = uc.FindByID("missing")
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("FindByID() error = %v, want ErrUserNotFound", err)
	}
}

// TestUpdateRole verifies the role enumeration guard and persistence.
func TestUpdateRole(t *testing.T) {
	gateway := seededGateway()
	uc := NewUserUseCase(gateway)

	updated, err := uc.UpdateRole("3", entity.RoleAdmin)
	if err != nil {
		t.Fatalf("UpdateRole() error = %v, want nil", err)
	}
	if updated.Role != entity.RoleAdmin {
		t.Errorf("UpdateRole().Role = %q, want ADMIN", updated.Role)
	}

	if _, err := uc.UpdateRole("3", entity.Role("SUPERUSER")); !errors.Is(err, ErrInvalidRole) {
		t.Fatalf("UpdateRole() error = %v, want ErrInvalidRole", err)
	}

	if _, err := uc.UpdateRole("missing", entity.RoleUser); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("UpdateRole() error = %v, want ErrUserNotFound", err)
	}
}

// TestSetActive verifies deactivation and not-found behaviour.
func TestSetActive(t *testing.T) {
	uc := NewUserUseCase(seededGateway())

	updated, err := uc.SetActive("2", false)
	if err != nil {
		t.Fatalf("SetActive() error = %v, want nil", err)
	}
	if updated.Active {
		t.Error("SetActive().Active = true, want false")
	}

	if _, err := uc.SetActive("missing", true); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("SetActive() error = %v, want ErrUserNotFound", err)
	}
}
