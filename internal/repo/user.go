package repo

import (
	"context"
	"errors"

	"github.com/Skotchmaster/marketplace/internal/apperrors"
	"github.com/Skotchmaster/marketplace/internal/models"
	"gorm.io/gorm"
)

func (s *Store) GetUser(ctx context.Context, id uint) (*models.User, error) {
	user := models.User{}
	if err := s.DB.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &apperrors.NotFoundError{Entity: "user", ID: id}
		}
		return nil, err
	}
	return &user, nil
}

func (s *Store) AllUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := s.DB.WithContext(ctx).Model(&models.User{}).Order("id ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (s *Store) ClientsOfSeller(ctx context.Context, sellerID uint) ([]models.User, error) {
	var users []models.User
	if err := s.DB.WithContext(ctx).
		Where("associated_seller_id = ?", sellerID).
		Order("id ASC").
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	return s.DB.WithContext(ctx).Create(user).Error
}
