package main

import (
	"context"
	"log"
	"time"

	"github.com/Skotchmaster/marketplace/internal/auth"
	"github.com/Skotchmaster/marketplace/internal/config"
	"github.com/Skotchmaster/marketplace/internal/es"
	"github.com/Skotchmaster/marketplace/internal/hash"
	"github.com/Skotchmaster/marketplace/internal/models"
	"github.com/Skotchmaster/marketplace/internal/repo"
	"github.com/Skotchmaster/marketplace/internal/service/orders"
	"github.com/Skotchmaster/marketplace/internal/service/search"
)

// Demo dataset for local runs: two sellers, three clients, a product catalog
// and a few orders placed through the real reservation path so stock levels
// and totals stay consistent.
func main() {
	db, err := config.InitDB()
	if err != nil {
		log.Fatalf("Ошибка инициализации БД: %v", err)
	}

	configuration, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	store := repo.NewStore(db)

	if existing, err := store.AllUsers(ctx); err != nil {
		log.Fatal(err)
	} else if len(existing) > 0 {
		log.Println("database already seeded, nothing to do")
		return
	}

	pwHash, err := hash.HashPassword("password")
	if err != nil {
		log.Fatal(err)
	}

	sellers := []*models.User{
		{Name: "Ana", LastName: "Torres", Email: "ana@marketplace.dev", PasswordHash: pwHash, Role: models.RoleSeller},
		{Name: "Boris", LastName: "Ivanov", Email: "boris@marketplace.dev", PasswordHash: pwHash, Role: models.RoleSeller},
	}
	for _, u := range sellers {
		if err := store.CreateUser(ctx, u); err != nil {
			log.Fatal(err)
		}
	}

	clients := []*models.User{
		{Name: "Carla", LastName: "Mendez", Email: "carla@marketplace.dev", PasswordHash: pwHash, Role: models.RoleClient, AssociatedSellerID: &sellers[0].ID},
		{Name: "Diego", LastName: "Ruiz", Email: "diego@marketplace.dev", PasswordHash: pwHash, Role: models.RoleClient, AssociatedSellerID: &sellers[0].ID},
		{Name: "Elena", LastName: "Petrova", Email: "elena@marketplace.dev", PasswordHash: pwHash, Role: models.RoleClient, AssociatedSellerID: &sellers[1].ID},
	}
	for _, u := range clients {
		if err := store.CreateUser(ctx, u); err != nil {
			log.Fatal(err)
		}
	}

	products := []*models.Product{
		{Name: "Laptop", Description: "14-inch ultrabook", Stock: 25, Price: 1200},
		{Name: "Keyboard", Description: "Mechanical, tenkeyless", Stock: 80, Price: 90},
		{Name: "Monitor", Description: "27-inch IPS", Stock: 40, Price: 310},
		{Name: "Mouse", Description: "Wireless", Stock: 150, Price: 35},
	}
	for _, p := range products {
		if err := store.CreateProduct(ctx, p); err != nil {
			log.Fatal(err)
		}
	}

	svc := orders.NewCoordinator(store)
	placements := []struct {
		client *models.User
		seller *models.User
		items  []orders.LineItem
	}{
		{clients[0], sellers[0], []orders.LineItem{{ProductID: products[0].ID, Quantity: 1}, {ProductID: products[3].ID, Quantity: 2}}},
		{clients[1], sellers[0], []orders.LineItem{{ProductID: products[1].ID, Quantity: 3}}},
		{clients[2], sellers[1], []orders.LineItem{{ProductID: products[2].ID, Quantity: 2}}},
	}
	for _, pl := range placements {
		caller := auth.CallerIdentity{ID: pl.client.ID, Role: pl.client.Role, Name: pl.client.Name, LastName: pl.client.LastName}
		if _, err := svc.PlaceOrder(ctx, caller, orders.PlaceOrderRequest{
			Items:    pl.items,
			SellerID: pl.seller.ID,
			ClientID: pl.client.ID,
		}); err != nil {
			log.Fatal(err)
		}
	}

	if configuration.ES_URL != "" {
		esClient, err := es.NewClient(configuration)
		if err != nil {
			log.Fatal(err)
		}
		indexCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
		listed, err := store.ListProducts(indexCtx)
		if err != nil {
			log.Fatal(err)
		}
		for _, p := range listed {
			if err := search.IndexProduct(indexCtx, esClient, search.ProductIndex, p); err != nil {
				log.Fatal(err)
			}
		}
	}

	for _, u := range append(sellers, clients...) {
		token, err := auth.SignToken(u.ID, u.Role, u.Name, u.LastName, []byte(configuration.JWT_SECRET))
		if err != nil {
			log.Fatal(err)
		}
		log.Printf("%s %s (%s): Bearer %s", u.Name, u.LastName, u.Role, token)
	}

	log.Println("seed complete")
}
