package orders

import (
	"context"

	"github.com/Skotchmaster/marketplace/internal/apperrors"
	"github.com/Skotchmaster/marketplace/internal/auth"
	"github.com/Skotchmaster/marketplace/internal/models"
)

func (svc *Coordinator) OrdersByClient(ctx context.Context, caller auth.CallerIdentity) ([]models.Order, error) {
	if !caller.Authenticated() {
		return nil, apperrors.ErrUnauthorized
	}
	orders, err := svc.Store.OrdersByClient(ctx, caller.ID)
	if err != nil {
		return nil, &apperrors.PersistenceError{Op: "orders_by_client", Err: err}
	}
	return orders, nil
}

func (svc *Coordinator) OrdersBySeller(ctx context.Context, caller auth.CallerIdentity) ([]models.Order, error) {
	if !caller.Authenticated() {
		return nil, apperrors.ErrUnauthorized
	}
	orders, err := svc.Store.OrdersBySeller(ctx, caller.ID)
	if err != nil {
		return nil, &apperrors.PersistenceError{Op: "orders_by_seller", Err: err}
	}
	return orders, nil
}

func (svc *Coordinator) ClientsOfSeller(ctx context.Context, caller auth.CallerIdentity) ([]models.User, error) {
	if !caller.Authenticated() {
		return nil, apperrors.ErrUnauthorized
	}
	users, err := svc.Store.ClientsOfSeller(ctx, caller.ID)
	if err != nil {
		return nil, &apperrors.PersistenceError{Op: "clients_of_seller", Err: err}
	}
	return users, nil
}
