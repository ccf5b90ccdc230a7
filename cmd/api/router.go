package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"gallery-backend/internal/shared/middleware"
	"gallery-backend/pkg/container"
)

// LegacyFunctionPath is where the serverless deployment exposed the handler.
const LegacyFunctionPath = "/.netlify/functions/api"

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
	)

	// *jwt.Manager(nil) must not reach the middleware as a non-nil interface
	var verifier middleware.TokenVerifier
	if c.JWTManager != nil {
		verifier = c.JWTManager
	}

	router.GET("/api/health", healthCheckHandler(c))

	setupAuthorRoutes(router, c, verifier)

	return router
}

// ========================================
// AUTHOR ROUTES
// ========================================
func setupAuthorRoutes(router *gin.Engine, c *container.Container, verifier middleware.TokenVerifier) {
	chain := []gin.HandlerFunc{
		c.AuthorHandler.RequireStore(),
		middleware.RequireSession(verifier),
		c.AuthorHandler.Handle,
	}

	router.Any(c.Config.App.APIPath, chain...)
	if c.Config.App.APIPath != LegacyFunctionPath {
		router.Any(LegacyFunctionPath, chain...)
	}
}

// ========================================
// HEALTH CHECK
// ========================================
func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		health := gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   appCtx.Config.App.Version,
		}

		dbStatus := "ok"
		if appCtx.DB == nil || appCtx.DB.Pool == nil {
			dbStatus = "not configured"
			health["status"] = "degraded"
		} else {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if err := appCtx.DB.HealthCheck(ctx); err != nil {
				dbStatus = fmt.Sprintf("error: %v", err)
				health["status"] = "degraded"
			} else if stats, err := appCtx.DB.Stats(); err == nil {
				health["pool"] = stats
			}
		}

		redisStatus := "disabled"
		if appCtx.Cache != nil {
			redisStatus = "ok"
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if err := appCtx.Cache.Ping(ctx); err != nil {
				redisStatus = fmt.Sprintf("error: %v", err)
			}
		}

		health["services"] = gin.H{
			"database": dbStatus,
			"redis":    redisStatus,
			"session":  appCtx.JWTManager != nil,
		}

		statusCode := http.StatusOK
		if dbStatus != "ok" {
			statusCode = http.StatusServiceUnavailable
		}

		c.JSON(statusCode, health)
	}
}
