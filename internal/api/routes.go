// Package api wires the HTTP surface: term catalogue CRUD and the
// /translate endpoint (spec.md §6), following the teacher's routes.go
// shape (gin.Default(), a CORS middleware from an env var, grouped
// routes under /api, Prometheus middleware ahead of the routes).
package api

import (
	"os"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kurenaio/ayt-dictionary/internal/api/handlers"
	"github.com/kurenaio/ayt-dictionary/internal/api/middleware"
	"github.com/kurenaio/ayt-dictionary/internal/catalogue"
	"github.com/kurenaio/ayt-dictionary/internal/metrics"
	"github.com/kurenaio/ayt-dictionary/internal/translator"
)

// SetupRouter builds the Gin engine for the service: CORS, Prometheus
// middleware, the term CRUD group, /translate, /health and /metrics.
func SetupRouter(store catalogue.Store, backends map[string]translator.Translator) *gin.Engine {
	router := gin.Default()

	corsConfig := cors.DefaultConfig()
	if origins := os.Getenv("CORS_ALLOWED_ORIGINS"); origins != "" {
		corsConfig.AllowOrigins = strings.Split(origins, ",")
	} else {
		corsConfig.AllowOrigins = []string{"http://localhost:5173", "http://localhost:3000"}
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	corsConfig.AllowCredentials = false
	router.Use(cors.New(corsConfig))

	router.Use(metrics.HTTPMetrics())
	router.Use(middleware.ErrorHandler())

	termHandler := handlers.NewTermHandler(store)
	translateHandler := handlers.NewTranslateHandler(store, backends)

	apiGroup := router.Group("/api")
	{
		apiGroup.GET("/terms", termHandler.ListTerms)
		apiGroup.GET("/term/:id", termHandler.GetTerm)
		apiGroup.POST("/term", termHandler.CreateTerm)
		apiGroup.PUT("/term/:id", termHandler.UpdateTerm)
		apiGroup.DELETE("/term/:id", termHandler.DeleteTerm)

		apiGroup.POST("/translate", translateHandler.Translate)
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.NoRoute(middleware.NoRouteHandler)

	return router
}
