package httpserver

import (
	"github.com/Skotchmaster/marketplace/internal/auth"
	"github.com/Skotchmaster/marketplace/internal/handlers"
	"github.com/labstack/echo/v4"
)

type Deps struct {
	OrderHandler     *handlers.OrderHandler
	AnalyticsHandler *handlers.AnalyticsHandler
	CatalogHandler   *handlers.CatalogHandler
	JWTSecret        []byte
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(200) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(200) })

	v1 := e.Group("/api/v1")

	v1.GET("/products/latest", d.CatalogHandler.LatestProducts)
	v1.GET("/products/search", d.CatalogHandler.Search)

	analytics := v1.Group("/analytics")

	analytics.GET("/products/most-sold", d.AnalyticsHandler.MostSoldProducts)
	analytics.GET("/products/top", d.AnalyticsHandler.TopProducts)
	analytics.GET("/sellers/best", d.AnalyticsHandler.BestSellers)
	analytics.GET("/clients/best", d.AnalyticsHandler.BestClients)
	analytics.GET("/sellers/clients", d.AnalyticsHandler.ClientsPerSeller)

	authed := v1.Group("", auth.Middleware(d.JWTSecret))

	authed.POST("/orders", d.OrderHandler.PlaceOrder)
	authed.GET("/orders/client", d.OrderHandler.OrdersByClient)
	authed.GET("/orders/seller", d.OrderHandler.OrdersBySeller)
	authed.GET("/sellers/clients", d.OrderHandler.ClientsOfSeller)
}
