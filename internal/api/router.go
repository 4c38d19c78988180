// Package api assembles the gin HTTP surface: routes, middleware and the
// server lifecycle.
package api

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/gestor-financeiro/internal/api/handler"
	"github.com/gestor-financeiro/internal/api/middleware"
)

// setupRouter configures API routes and middleware for the application
func setupRouter(
	logger *slog.Logger,
	r *gin.Engine,
	processingHandler *handler.ProcessingHandler,
	spendingHandler *handler.SpendingHandler,
) {
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CorrelationID())

	api := r.Group("/api")
	{
		// Processing pipeline
		api.POST("/processar-texto", processingHandler.ProcessText)
		api.POST("/processar-audio", processingHandler.ProcessAudio)

		// Spending record CRUD
		gastos := api.Group("/gastos")
		{
			gastos.POST("", spendingHandler.Create)
			gastos.GET("", spendingHandler.List)
			gastos.GET("/:id", spendingHandler.GetByID)
			gastos.PUT("/:id", spendingHandler.Update)
			gastos.DELETE("/:id", spendingHandler.Delete)
		}
	}

	// Health check endpoint reporting the configured model serving modes
	r.GET("/health", processingHandler.Health)
}
