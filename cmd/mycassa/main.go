package main

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	"github.com/MySagra/mycassa/internal/catalog"
	"github.com/MySagra/mycassa/internal/config"
	"github.com/MySagra/mycassa/internal/handlers"
	"github.com/MySagra/mycassa/internal/metrics"
	"github.com/MySagra/mycassa/internal/printers"
)

func setupRouter(cfg handlers.Config) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(metrics.Middleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	handlers.RegisterRoutes(r, cfg)

	return r
}

func main() {
	log.SetFormatter(&log.JSONFormatter{})
	log.SetLevel(log.InfoLevel)

	settingsPath := getEnv("MYCASSA_SETTINGS", "settings.json")
	printersPath := getEnv("MYCASSA_PRINTERS", "data/printer_config.json")
	apiBaseURL := getEnv("API_BASE_URL", "http://localhost:4300")

	client := catalog.NewClient(apiBaseURL)
	if token := os.Getenv("MYCASSA_API_TOKEN"); token != "" {
		client.SetToken(token)
	}

	cfg := handlers.Config{
		Catalog:  client,
		Settings: config.NewStore(settingsPath),
		Registry: printers.NewRegistry(printersPath),
		Sender:   printers.NewDispatcher(printers.DialTimeout),
	}

	r := setupRouter(cfg)

	addr := getEnv("MYCASSA_ADDR", ":7010")
	log.WithFields(log.Fields{
		"addr":    addr,
		"api_url": apiBaseURL,
	}).Info("mycassa receipt station starting")

	if err := r.Run(addr); err != nil {
		log.Fatalf("failed to run server: %v", err)
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
