package analytics

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Skotchmaster/marketplace/internal/models"
	"github.com/Skotchmaster/marketplace/internal/repo"
)

func newTestStore(t *testing.T) *repo.Store {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Product{}, &models.Order{}, &models.OrderLine{}))
	return repo.NewStore(db)
}

func mustCreate(t *testing.T, store *repo.Store, rows ...any) {
	t.Helper()
	for _, row := range rows {
		require.NoError(t, store.DB.Create(row).Error)
	}
}

func TestMostSoldProductsOrderingAndTieBreak(t *testing.T) {
	store := newTestStore(t)
	agg := NewAggregator(store)
	ctx := context.Background()

	p1 := &models.Product{Name: "P1", Description: "d1", Stock: 100, Price: 1}
	p2 := &models.Product{Name: "P2", Description: "d2", Stock: 100, Price: 1}
	p3 := &models.Product{Name: "P3", Description: "d3", Stock: 100, Price: 1}
	mustCreate(t, store, p1, p2, p3)

	mustCreate(t, store,
		&models.Order{ClientID: 1, SellerID: 2, Total: 1, Status: models.OrderStatusPending, PaymentMethod: "CARD", Lines: []models.OrderLine{
			{ProductID: p3.ID, Quantity: 7},
			{ProductID: p1.ID, Quantity: 2},
		}},
		&models.Order{ClientID: 1, SellerID: 2, Total: 1, Status: models.OrderStatusPending, PaymentMethod: "CARD", Lines: []models.OrderLine{
			{ProductID: p1.ID, Quantity: 3},
			{ProductID: p2.ID, Quantity: 5},
		}},
	)

	rows, err := agg.MostSoldProducts(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	// p3 leads with 7; p1 and p2 tie at 5 and resolve by ascending id
	require.Equal(t, "P3", rows[0].Name)
	require.Equal(t, uint(7), rows[0].TotalQuantity)
	require.Equal(t, "P1", rows[1].Name)
	require.Equal(t, uint(5), rows[1].TotalQuantity)
	require.Equal(t, "P2", rows[2].Name)
	require.Equal(t, uint(5), rows[2].TotalQuantity)
}

func TestTopProductsIsPrefixOfFullList(t *testing.T) {
	store := newTestStore(t)
	agg := NewAggregator(store)
	ctx := context.Background()

	var lines []models.OrderLine
	for i := 0; i < 5; i++ {
		p := &models.Product{Name: "P", Description: "d", Stock: 100, Price: 1}
		mustCreate(t, store, p)
		lines = append(lines, models.OrderLine{ProductID: p.ID, Quantity: uint(i + 1)})
	}
	mustCreate(t, store, &models.Order{ClientID: 1, SellerID: 2, Total: 1, Status: models.OrderStatusPending, PaymentMethod: "CARD", Lines: lines})

	full, err := agg.MostSoldProducts(ctx)
	require.NoError(t, err)
	require.Len(t, full, 5)

	top, err := agg.TopProducts(ctx)
	require.NoError(t, err)
	require.Len(t, top, TopProductsLimit)
	require.Equal(t, full[:TopProductsLimit], top)
}

func TestBestSellersScenario(t *testing.T) {
	store := newTestStore(t)
	agg := NewAggregator(store)
	ctx := context.Background()

	s1 := &models.User{Name: "S1", LastName: "One", Email: "s1@test.dev", PasswordHash: "x", Role: models.RoleSeller}
	s2 := &models.User{Name: "S2", LastName: "Two", Email: "s2@test.dev", PasswordHash: "x", Role: models.RoleSeller}
	mustCreate(t, store, s1, s2)

	mustCreate(t, store,
		&models.Order{ClientID: 9, SellerID: s1.ID, Total: 100, Status: models.OrderStatusPending, PaymentMethod: "CARD"},
		&models.Order{ClientID: 9, SellerID: s1.ID, Total: 50, Status: models.OrderStatusPending, PaymentMethod: "CARD"},
		&models.Order{ClientID: 9, SellerID: s2.ID, Total: 30, Status: models.OrderStatusPending, PaymentMethod: "CARD"},
	)

	rows, err := agg.BestSellers(ctx, 3)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, s1.ID, rows[0].ID)
	require.Equal(t, float64(150), rows[0].TotalSpent)
	require.Equal(t, s2.ID, rows[1].ID)
	require.Equal(t, float64(30), rows[1].TotalSpent)
}

func TestBestSellersLimit(t *testing.T) {
	store := newTestStore(t)
	agg := NewAggregator(store)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		s := &models.User{Name: "S", LastName: string(rune('A' + i)), Email: string(rune('a'+i)) + "@test.dev", PasswordHash: "x", Role: models.RoleSeller}
		mustCreate(t, store, s)
		mustCreate(t, store, &models.Order{ClientID: 9, SellerID: s.ID, Total: float64(10 * (i + 1)), Status: models.OrderStatusPending, PaymentMethod: "CARD"})
	}

	rows, err := agg.BestSellers(ctx, 2)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, float64(50), rows[0].TotalSpent)
	require.Equal(t, float64(40), rows[1].TotalSpent)

	// limit <= 0 falls back to the default of 3
	rows, err = agg.BestSellers(ctx, 0)
	require.NoError(t, err)
	require.Len(t, rows, DefaultBestLimit)
}

func TestBestClientsCompleteness(t *testing.T) {
	store := newTestStore(t)
	agg := NewAggregator(store)
	ctx := context.Background()

	var clients []*models.User
	for i := 0; i < 4; i++ {
		c := &models.User{Name: "C", LastName: string(rune('A' + i)), Email: string(rune('a'+i)) + "c@test.dev", PasswordHash: "x", Role: models.RoleClient}
		mustCreate(t, store, c)
		clients = append(clients, c)
	}

	var orderSum float64
	totals := []float64{12.5, 40, 7, 25, 40}
	for i, total := range totals {
		mustCreate(t, store, &models.Order{ClientID: clients[i%len(clients)].ID, SellerID: 99, Total: total, Status: models.OrderStatusPending, PaymentMethod: "CARD"})
		orderSum += total
	}

	rows, err := agg.BestClients(ctx, 0)
	require.NoError(t, err)
	require.Len(t, rows, len(clients))

	var reportSum float64
	for i, row := range rows {
		reportSum += row.TotalSpent
		if i > 0 {
			require.GreaterOrEqual(t, rows[i-1].TotalSpent, row.TotalSpent)
		}
	}
	require.InDelta(t, orderSum, reportSum, 1e-9)

	limited, err := agg.BestClients(ctx, 2)
	require.NoError(t, err)
	require.Len(t, limited, 2)
	require.Equal(t, rows[:2], limited)
}

func TestRankSkipsUnknownUsers(t *testing.T) {
	store := newTestStore(t)
	agg := NewAggregator(store)
	ctx := context.Background()

	s1 := &models.User{Name: "S1", LastName: "One", Email: "s1@test.dev", PasswordHash: "x", Role: models.RoleSeller}
	mustCreate(t, store, s1)

	mustCreate(t, store,
		&models.Order{ClientID: 9, SellerID: s1.ID, Total: 10, Status: models.OrderStatusPending, PaymentMethod: "CARD"},
		&models.Order{ClientID: 9, SellerID: 12345, Total: 99, Status: models.OrderStatusPending, PaymentMethod: "CARD"},
	)

	rows, err := agg.BestSellers(ctx, 10)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, s1.ID, rows[0].ID)
}

func TestClientsPerSeller(t *testing.T) {
	store := newTestStore(t)
	agg := NewAggregator(store)
	ctx := context.Background()

	s1 := &models.User{Name: "S1", LastName: "One", Email: "s1@test.dev", PasswordHash: "x", Role: models.RoleSeller}
	s2 := &models.User{Name: "S2", LastName: "Two", Email: "s2@test.dev", PasswordHash: "x", Role: models.RoleSeller}
	mustCreate(t, store, s1, s2)

	for i, sellerID := range []uint{s1.ID, s1.ID, s2.ID} {
		id := sellerID
		mustCreate(t, store, &models.User{
			Name: "C", LastName: string(rune('A' + i)), Email: string(rune('a'+i)) + "cl@test.dev",
			PasswordHash: "x", Role: models.RoleClient, AssociatedSellerID: &id,
		})
	}

	rows, err := agg.ClientsPerSeller(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, s1.ID, rows[0].SellerID)
	require.Equal(t, 2, rows[0].Count)
	require.Equal(t, "S1", rows[0].Name)
	require.Equal(t, s2.ID, rows[1].SellerID)
	require.Equal(t, 1, rows[1].Count)
}
