package analytics

import (
	"context"
	"sort"

	"github.com/Skotchmaster/marketplace/internal/apperrors"
	"github.com/Skotchmaster/marketplace/internal/models"
	"github.com/Skotchmaster/marketplace/internal/repo"
)

const (
	// DefaultBestLimit matches the historical top-3 seller report.
	DefaultBestLimit = 3

	TopProductsLimit = 3
)

type ProductSales struct {
	ProductID     uint   `json:"product_id"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	TotalQuantity uint   `json:"total_quantity"`
}

type UserSpend struct {
	ID         uint    `json:"id"`
	Name       string  `json:"name"`
	LastName   string  `json:"last_name"`
	TotalSpent float64 `json:"total_spent"`
}

type SellerClients struct {
	SellerID uint   `json:"seller_id"`
	Name     string `json:"name"`
	LastName string `json:"last_name"`
	Count    int    `json:"count"`
}

// Aggregator computes ranked cross-entity reports by scanning the full
// collections on every call. It never writes. Equal aggregates are ordered by
// ascending entity id so results are reproducible.
type Aggregator struct {
	Store *repo.Store
}

func NewAggregator(store *repo.Store) *Aggregator {
	return &Aggregator{Store: store}
}

// MostSoldProducts flattens every order line, sums quantity per product and
// joins product name and description. Lines whose product no longer exists
// are dropped, like an inner join would.
func (a *Aggregator) MostSoldProducts(ctx context.Context) ([]ProductSales, error) {
	orders, err := a.Store.AllOrders(ctx)
	if err != nil {
		return nil, &apperrors.PersistenceError{Op: "most_sold_products", Err: err}
	}
	products, err := a.Store.ListProducts(ctx)
	if err != nil {
		return nil, &apperrors.PersistenceError{Op: "most_sold_products", Err: err}
	}

	quantities := make(map[uint]uint)
	for _, order := range orders {
		for _, line := range order.Lines {
			quantities[line.ProductID] += line.Quantity
		}
	}

	byID := make(map[uint]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	rows := make([]ProductSales, 0, len(quantities))
	for id, qty := range quantities {
		product, ok := byID[id]
		if !ok {
			continue
		}
		rows = append(rows, ProductSales{
			ProductID:     id,
			Name:          product.Name,
			Description:   product.Description,
			TotalQuantity: qty,
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].TotalQuantity != rows[j].TotalQuantity {
			return rows[i].TotalQuantity > rows[j].TotalQuantity
		}
		return rows[i].ProductID < rows[j].ProductID
	})
	return rows, nil
}

// TopProducts is the bounded variant: always a prefix of MostSoldProducts.
func (a *Aggregator) TopProducts(ctx context.Context) ([]ProductSales, error) {
	rows, err := a.MostSoldProducts(ctx)
	if err != nil {
		return nil, err
	}
	if len(rows) > TopProductsLimit {
		rows = rows[:TopProductsLimit]
	}
	return rows, nil
}

// BestSellers groups orders by seller and sums the order totals. limit <= 0
// falls back to the default of 3.
func (a *Aggregator) BestSellers(ctx context.Context, limit int) ([]UserSpend, error) {
	if limit <= 0 {
		limit = DefaultBestLimit
	}
	rows, err := a.rankSpend(ctx, "best_sellers", func(o models.Order) uint { return o.SellerID })
	if err != nil {
		return nil, err
	}
	if len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}

// BestClients groups orders by client. limit <= 0 returns the full ranking,
// which is what the unbounded report always did.
func (a *Aggregator) BestClients(ctx context.Context, limit int) ([]UserSpend, error) {
	rows, err := a.rankSpend(ctx, "best_clients", func(o models.Order) uint { return o.ClientID })
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}

func (a *Aggregator) rankSpend(ctx context.Context, op string, key func(models.Order) uint) ([]UserSpend, error) {
	orders, err := a.Store.AllOrders(ctx)
	if err != nil {
		return nil, &apperrors.PersistenceError{Op: op, Err: err}
	}
	users, err := a.Store.AllUsers(ctx)
	if err != nil {
		return nil, &apperrors.PersistenceError{Op: op, Err: err}
	}

	totals := make(map[uint]float64)
	for _, order := range orders {
		totals[key(order)] += order.Total
	}

	byID := make(map[uint]models.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	rows := make([]UserSpend, 0, len(totals))
	for id, total := range totals {
		user, ok := byID[id]
		if !ok {
			continue
		}
		rows = append(rows, UserSpend{
			ID:         id,
			Name:       user.Name,
			LastName:   user.LastName,
			TotalSpent: total,
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].TotalSpent != rows[j].TotalSpent {
			return rows[i].TotalSpent > rows[j].TotalSpent
		}
		return rows[i].ID < rows[j].ID
	})
	return rows, nil
}

// ClientsPerSeller counts the clients associated with each seller.
func (a *Aggregator) ClientsPerSeller(ctx context.Context) ([]SellerClients, error) {
	users, err := a.Store.AllUsers(ctx)
	if err != nil {
		return nil, &apperrors.PersistenceError{Op: "clients_per_seller", Err: err}
	}

	counts := make(map[uint]int)
	byID := make(map[uint]models.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
		if u.AssociatedSellerID != nil {
			counts[*u.AssociatedSellerID]++
		}
	}

	rows := make([]SellerClients, 0, len(counts))
	for id, count := range counts {
		seller, ok := byID[id]
		if !ok {
			continue
		}
		rows = append(rows, SellerClients{
			SellerID: id,
			Name:     seller.Name,
			LastName: seller.LastName,
			Count:    count,
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Count != rows[j].Count {
			return rows[i].Count > rows[j].Count
		}
		return rows[i].SellerID < rows[j].SellerID
	})
	return rows, nil
}
