package main

import (
	"context"
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

// Handler holds shared dependencies (db pool, LLM agent, cache, config) for
// all route handlers.
type Handler struct {
	db    *pgxpool.Pool
	agent *agent
	cache *cache
	cfg   Config
}

/* ─── Database helpers ────────────────────────────────────────────────── */

// queryOne runs a query and scans the first row into T using RowToStructByName.
// Logs query and scan errors for debugging (e.g. struct/column mismatches).
func queryOne[T any](pool *pgxpool.Pool, c *gin.Context, sql string, args pgx.NamedArgs) (T, error) {
	rows, err := pool.Query(c, sql, args)
	if err != nil {
		log.Error().Err(err).Msg("queryOne: query failed")
		var zero T
		return zero, err
	}
	result, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[T])
	if err != nil {
		log.Error().Err(err).Msg("queryOne: scan failed")
	}
	return result, err
}

// queryMany runs a query and scans all rows into []T using RowToStructByName.
func queryMany[T any](pool *pgxpool.Pool, c *gin.Context, sql string, args pgx.NamedArgs) ([]T, error) {
	rows, err := pool.Query(c, sql, args)
	if err != nil {
		log.Error().Err(err).Msg("queryMany: query failed")
		return nil, err
	}
	results, err := pgx.CollectRows(rows, pgx.RowToStructByName[T])
	if err != nil {
		log.Error().Err(err).Msg("queryMany: scan failed")
	}
	return results, err
}

// apiError returns a consistent JSON error response: {"error": "message"}.
func apiError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

/* ─── Server setup ────────────────────────────────────────────────────── */

// getDBPool creates a connection pool. We use a pool (not a single conn)
// because managed Postgres providers close idle connections after a few
// minutes.
func getDBPool(dbURL string) *pgxpool.Pool {
	config, err := pgxpool.ParseConfig(dbURL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to parse DB URL: %v\n", err)
		os.Exit(1)
	}
	// Use simple query protocol to avoid "cached plan must not change result
	// type" errors from server-side prepared statement caches after schema
	// changes.
	config.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol
	pool, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to connect to database: %v\n", err)
		os.Exit(1)
	}
	log.Info().Msg("DB pool ready")
	return pool
}

// registerRoutes registers all API routes on the router.
func (h *Handler) registerRoutes(router *gin.Engine) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "healthy"})
	})

	// Public routes
	router.POST("/api/auth/register", h.register)
	router.POST("/api/auth/login", h.login)

	// Authenticated routes
	api := router.Group("/api", h.authMiddleware())
	api.POST("/chat", h.chat)
	api.POST("/chat/stream", h.chatStream)
	api.GET("/chat/conversations", h.getConversations)
	api.GET("/chat/conversations/:id", h.getConversation)
	api.GET("/stats/today", h.getTodayStats)
	api.GET("/reports", h.getReports)
	api.POST("/reports/generate", h.generateReport)
	api.GET("/settings", h.getSettings)
	api.PUT("/settings", h.updateSettings)
	api.POST("/diet/record", h.recordDiet)
	api.GET("/diet", h.getDietLogs)
	api.POST("/exercise/record", h.recordExercise)
	api.GET("/exercise/types", h.getExerciseTypes)
	api.POST("/upload/image", h.uploadImage)
	api.POST("/admin/fix-meal-types", h.fixMealTypes)
}
