package repo

import (
	"context"
	"errors"

	"github.com/Skotchmaster/marketplace/internal/apperrors"
	"github.com/Skotchmaster/marketplace/internal/models"
	"gorm.io/gorm"
)

func (s *Store) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	product := models.Product{}
	if err := s.DB.WithContext(ctx).First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &apperrors.NotFoundError{Entity: "product", ID: id}
		}
		return nil, err
	}
	return &product, nil
}

// DecrementStock subtracts qty from the product's stock only if enough stock
// remains. The check and the write are one statement, so two concurrent
// placements can never both pass it for the same units.
func (s *Store) DecrementStock(ctx context.Context, id uint, qty uint) error {
	res := s.DB.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ? AND stock >= ?", id, qty).
		UpdateColumn("stock", gorm.Expr("stock - ?", qty))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 1 {
		return nil
	}

	var product models.Product
	if err := s.DB.WithContext(ctx).First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &apperrors.NotFoundError{Entity: "product", ID: id}
		}
		return err
	}
	return &apperrors.InsufficientStockError{
		ProductID: id,
		Requested: qty,
		Available: product.Stock,
	}
}

func (s *Store) ListProducts(ctx context.Context) ([]models.Product, error) {
	var items []models.Product
	if err := s.DB.WithContext(ctx).Model(&models.Product{}).Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) LastAddedProducts(ctx context.Context, limit int) ([]models.Product, error) {
	var items []models.Product
	if err := s.DB.WithContext(ctx).
		Model(&models.Product{}).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) CreateProduct(ctx context.Context, product *models.Product) error {
	return s.DB.WithContext(ctx).Create(product).Error
}
