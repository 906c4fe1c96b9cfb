package repository

import (
	"context"

	"transport_manager/internal/models"

	"gorm.io/gorm"
)

type userRepository struct {
	*gormRepository[models.User]
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{newGormRepository[models.User](db)}
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if err != nil {
		return nil, translate(err)
	}
	return &user, nil
}
