package repository

import (
	"github.com/user/silant-service-api/internal/models"
	"gorm.io/gorm"
)

// === Users ===

// GetUserByUsername возвращает пользователя по имени (nil, если не найден)
func (r *Repository) GetUserByUsername(username string) (*models.User, error) {
	var user models.User
	if err := r.db.Preload("Client").Where("username = ?", username).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// GetUserByID возвращает пользователя по ID (nil, если не найден)
func (r *Repository) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	if err := r.db.Preload("Client").First(&user, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// CreateUser создаёт пользователя
func (r *Repository) CreateUser(user *models.User) error {
	return r.db.Create(user).Error
}
