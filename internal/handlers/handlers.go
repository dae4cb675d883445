// Package handlers wires the HTTP surface of the receipt station.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/MySagra/mycassa/internal/catalog"
	"github.com/MySagra/mycassa/internal/config"
	"github.com/MySagra/mycassa/internal/printers"
	"github.com/MySagra/mycassa/internal/validation"
)

// CatalogAPI is the slice of the remote order/catalog client the
// handlers depend on, kept as an interface for mockability.
type CatalogAPI interface {
	Categories() ([]catalog.Category, error)
	FoodsByCategory(categoryID int) (json.RawMessage, error)
	CreateOrder(req catalog.OrderRequest) (int64, error)
	OrderByCode(code string) (json.RawMessage, error)
	TodayOrders() (json.RawMessage, error)
	SearchDailyOrders(value string) (json.RawMessage, error)
}

// Sender dispatches encoded print jobs.
type Sender interface {
	Send(job printers.Job) printers.Result
	SendAll(jobs []printers.Job) []printers.Result
}

// Config groups the handler dependencies.
type Config struct {
	Catalog  CatalogAPI
	Settings *config.Store
	Registry *printers.Registry
	Sender   Sender
}

// RegisterRoutes registers every route of the receipt station.
func RegisterRoutes(r *gin.Engine, cfg Config) {
	v := validation.New()

	r.POST("/genera", checkoutHandler(cfg, v))

	r.GET("/api/printers/config", getPrintersHandler(cfg))
	r.POST("/api/printers/config", savePrintersHandler(cfg))
	r.POST("/api/printers/test", testPrinterHandler(cfg))

	r.GET("/api/categories", categoriesHandler(cfg))
	r.GET("/api/foods/category/:id", foodsByCategoryHandler(cfg))
	r.GET("/api/orders/day/today", todayOrdersHandler(cfg))
	r.GET("/api/orders/search/daily/:value", searchDailyOrdersHandler(cfg))
	r.GET("/api/orders/:code", orderByCodeHandler(cfg))

	r.POST("/api/settings/reload", reloadSettingsHandler(cfg))
}

// upstreamStatus maps catalog client errors to HTTP statuses for the
// proxy endpoints.
func upstreamStatus(err error) int {
	switch {
	case errors.Is(err, catalog.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, catalog.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, catalog.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, catalog.ErrUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
