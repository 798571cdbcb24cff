package repository

import (
	"github.com/mindfunnel/mindfunnel-api/internal/model"
	"gorm.io/gorm"
)

type UserRepository interface {
	UpsertByEmail(email string) (*model.User, error)
	FindByEmail(email string) (*model.User, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) UpsertByEmail(email string) (*model.User, error) {
	var user model.User
	if err := r.db.Where(model.User{Email: email}).FirstOrCreate(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(email string) (*model.User, error) {
	var user model.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
