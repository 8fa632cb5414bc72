package db

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"weather-api/internal/domain/entity"
)

type GormUserGateway struct {
	DB *gorm.DB
}

var _ UserGateway = (*GormUserGateway)(nil)

func NewGormUserGateway(db *gorm.DB) *GormUserGateway {
	return &GormUserGateway{DB: db}
}

func (gateway *GormUserGateway) FindAll(page int, size int, usernamePrefix string) ([]entity.User, error) {
	var users []entity.User

	query := gateway.DB.Order("username asc").Offset(page * size).Limit(size)
	if usernamePrefix != "" {
		query = query.Where("username LIKE ?", usernamePrefix+"%")
	}

	if err := query.Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func (gateway *GormUserGateway) CountAll(usernamePrefix string) (int64, error) {
	var count int64

	query := gateway.DB.Model(&entity.User{})
	if usernamePrefix != "" {
		query = query.Where("username LIKE ?", usernamePrefix+"%")
	}

	if err := query.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}

func (gateway *GormUserGateway) FindByID(id string) (*entity.User, error) {
	return gateway.findOne("id = ?", id)
}

func (gateway *GormUserGateway) FindByUsername(username string) (*entity.User, error) {
	return gateway.findOne("username = ?", username)
}

func (gateway *GormUserGateway) FindByEmail(email string) (*entity.User, error) {
	return gateway.findOne("email = ?", email)
}

func (gateway *GormUserGateway) findOne(condition string, value string) (*entity.User, error) {
	var user entity.User
	err := gateway.DB.Where(condition, value).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return &user, nil
}

func (gateway *GormUserGateway) Create(user entity.User) (*entity.User, error) {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}

	if err := gateway.DB.Create(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return &user, nil
}

func (gateway *GormUserGateway) UpdateRole(id string, role entity.Role) (*entity.User, error) {
	return gateway.updateField(id, "role", role)
}

func (gateway *GormUserGateway) SetActive(id string, active bool) (*entity.User, error) {
	return gateway.updateField(id, "active", active)
}

func (gateway *GormUserGateway) updateField(id string, column string, value any) (*entity.User, error) {
	result := gateway.DB.Model(&entity.User{}).Where("id = ?", id).Update(column, value)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to update user %s: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}
	return gateway.FindByID(id)
}
