package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

func categoriesHandler(cfg Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		cats, err := cfg.Catalog.Categories()
		if err != nil {
			c.JSON(upstreamStatus(err), gin.H{"success": false, "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "categories": cats})
	}
}

func foodsByCategoryHandler(cfg Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid category id"})
			return
		}
		raw, err := cfg.Catalog.FoodsByCategory(id)
		if err != nil {
			c.JSON(upstreamStatus(err), gin.H{"success": false, "error": err.Error()})
			return
		}
		c.Data(http.StatusOK, "application/json", raw)
	}
}

func orderByCodeHandler(cfg Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := cfg.Catalog.OrderByCode(c.Param("code"))
		if err != nil {
			c.JSON(upstreamStatus(err), gin.H{"success": false, "error": err.Error()})
			return
		}
		c.Data(http.StatusOK, "application/json", raw)
	}
}

func todayOrdersHandler(cfg Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := cfg.Catalog.TodayOrders()
		if err != nil {
			c.JSON(upstreamStatus(err), gin.H{"success": false, "error": err.Error()})
			return
		}
		c.Data(http.StatusOK, "application/json", raw)
	}
}

func searchDailyOrdersHandler(cfg Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := cfg.Catalog.SearchDailyOrders(c.Param("value"))
		if err != nil {
			c.JSON(upstreamStatus(err), gin.H{"success": false, "error": err.Error()})
			return
		}
		c.Data(http.StatusOK, "application/json", raw)
	}
}

func reloadSettingsHandler(cfg Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		settings := cfg.Settings.Reload()
		c.JSON(http.StatusOK, gin.H{"success": true, "settings": settings})
	}
}
