package orders

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/Skotchmaster/marketplace/internal/apperrors"
	"github.com/Skotchmaster/marketplace/internal/auth"
	"github.com/Skotchmaster/marketplace/internal/logging"
	"github.com/Skotchmaster/marketplace/internal/models"
	"github.com/Skotchmaster/marketplace/internal/repo"
)

const DefaultPaymentMethod = "CARD"

type LineItem struct {
	ProductID uint    `json:"product_id"`
	Quantity  uint    `json:"quantity"`
	UnitPrice float64 `json:"unit_price,omitempty"`
}

type PlaceOrderRequest struct {
	Items         []LineItem `json:"items"`
	SellerID      uint       `json:"seller_id"`
	ClientID      uint       `json:"client_id"`
	Total         float64    `json:"total"`
	PaymentMethod string     `json:"payment_method"`
}

// Coordinator validates and reserves stock for every line item and persists
// the order. All decrements and the order write commit as one transaction:
// a failing line leaves nothing behind.
type Coordinator struct {
	Store *repo.Store
}

func NewCoordinator(store *repo.Store) *Coordinator {
	return &Coordinator{Store: store}
}

func (svc *Coordinator) PlaceOrder(ctx context.Context, caller auth.CallerIdentity, req PlaceOrderRequest) (*models.Order, error) {
	l := logging.FromContext(ctx).With("svc", "orders.place")

	if !caller.Authenticated() {
		return nil, apperrors.ErrUnauthorized
	}
	if len(req.Items) == 0 {
		return nil, &apperrors.ValidationError{Field: "items", Reason: "at least one line item required"}
	}
	if req.SellerID == 0 {
		return nil, &apperrors.ValidationError{Field: "seller_id", Reason: "required"}
	}
	if req.ClientID == 0 {
		return nil, &apperrors.ValidationError{Field: "client_id", Reason: "required"}
	}
	for _, it := range req.Items {
		if it.ProductID == 0 {
			return nil, &apperrors.ValidationError{Field: "product_id", Reason: "required"}
		}
		if it.Quantity == 0 {
			return nil, &apperrors.ValidationError{Field: "quantity", Reason: "must be > 0"}
		}
	}

	if _, err := svc.Store.GetUser(ctx, req.SellerID); err != nil {
		return nil, storeErr("place_order", err)
	}
	if _, err := svc.Store.GetUser(ctx, req.ClientID); err != nil {
		return nil, storeErr("place_order", err)
	}

	// Validation pass in input order: the first missing or short product is
	// the one reported. Nothing is written yet.
	var total float64
	lines := make([]models.OrderLine, 0, len(req.Items))
	for _, it := range req.Items {
		product, err := svc.Store.GetProduct(ctx, it.ProductID)
		if err != nil {
			return nil, storeErr("place_order", err)
		}
		if int(it.Quantity) > product.Stock {
			return nil, &apperrors.InsufficientStockError{
				ProductID: it.ProductID,
				Requested: it.Quantity,
				Available: product.Stock,
			}
		}
		lines = append(lines, models.OrderLine{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: product.Price,
		})
		total += float64(it.Quantity) * product.Price
	}

	// The caller may omit the total (zero) and let the service compute it; a
	// supplied total must match the live prices.
	if req.Total != 0 && math.Abs(req.Total-total) > 1e-9 {
		return nil, &apperrors.ValidationError{
			Field:  "total",
			Reason: fmt.Sprintf("supplied total %.2f does not match line items total %.2f", req.Total, total),
		}
	}

	paymentMethod := req.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = DefaultPaymentMethod
	}

	order := &models.Order{
		ClientID:      req.ClientID,
		SellerID:      req.SellerID,
		Total:         total,
		Status:        models.OrderStatusPending,
		PaymentMethod: paymentMethod,
		CreatedAt:     time.Now().UTC(),
		Lines:         lines,
	}

	// Apply phase: conditional decrements in ascending product id, so
	// concurrent multi-item placements never deadlock on each other, then the
	// order itself. Any failure rolls the whole transaction back.
	sorted := make([]LineItem, len(req.Items))
	copy(sorted, req.Items)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ProductID < sorted[j].ProductID })

	err := svc.Store.Transact(ctx, func(tx *repo.Store) error {
		for _, it := range sorted {
			if err := tx.DecrementStock(ctx, it.ProductID, it.Quantity); err != nil {
				return err
			}
		}
		return tx.CreateOrder(ctx, order)
	})
	if err != nil {
		l.Warn("order rejected", "client_id", req.ClientID, "seller_id", req.SellerID, "error", err)
		return nil, storeErr("place_order", err)
	}

	l.Info("order_placed", "order_id", order.ID, "client_id", order.ClientID,
		"seller_id", order.SellerID, "total", order.Total, "lines", len(order.Lines))
	return order, nil
}

func storeErr(op string, err error) error {
	if apperrors.IsNotFound(err) || apperrors.IsInsufficientStock(err) || apperrors.IsValidation(err) {
		return err
	}
	return &apperrors.PersistenceError{Op: op, Err: err}
}
