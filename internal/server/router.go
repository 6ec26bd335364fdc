// Package server wires the REST API and the static client onto a gin router.
package server

import (
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"roombudget/internal/errs"
	"roombudget/internal/middleware"
	"roombudget/internal/service"
)

// Handlers holds the services the HTTP layer dispatches into.
type Handlers struct {
	rooms    *service.RoomService
	expenses *service.ExpenseService
}

// NewHandlers creates a Handlers instance with the given services.
func NewHandlers(rooms *service.RoomService, expenses *service.ExpenseService) *Handlers {
	return &Handlers{rooms: rooms, expenses: expenses}
}

// SetupRouter builds the gin engine: middleware, the /api routes, /metrics,
// and the static client with index.html fallback for everything else.
// staticDir may be empty to disable static serving (tests do this).
func SetupRouter(h *Handlers, staticDir string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(), middleware.Metrics())

	r.Use(cors.New(cors.Config{
		AllowOrigins: parseCorsOrigins(),
		AllowMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept"},
	}))

	api := r.Group("/api")
	{
		api.POST("/rooms", h.CreateRoom)
		api.POST("/rooms/join", h.JoinRoom)
		api.GET("/rooms/:roomId", h.GetRoom)
		api.GET("/rooms/:roomId/balance", h.GetBalance)
		api.POST("/rooms/:roomId/expenses", h.AddExpense)
		api.DELETE("/rooms/:roomId/expenses/:expenseId", h.DeleteExpense)
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if staticDir != "" {
		r.NoRoute(staticHandler(staticDir))
	}

	return r
}

// parseCorsOrigins reads CORS_ORIGINS (comma-separated) from the
// environment, defaulting to allowing any origin.
func parseCorsOrigins() []string {
	raw := strings.TrimSpace(os.Getenv("CORS_ORIGINS"))
	if raw == "" {
		return []string{"*"}
	}

	var origins []string
	for _, part := range strings.Split(raw, ",") {
		if origin := strings.TrimSpace(part); origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

// abortWithError maps a service error onto a status code and the
// `{error: message}` body. Anything outside the closed error-kind set is a
// 500 with a non-leaky message.
func abortWithError(c *gin.Context, err error) {
	if e, ok := errs.As(err); ok {
		c.AbortWithStatusJSON(statusForKind(e.Kind), gin.H{"error": e.Message})
		return
	}

	slog.Error("Unhandled error", "path", c.Request.URL.Path, "error", err)
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}

// statusForKind is the exhaustive kind-to-status mapping for the REST
// surface.
func statusForKind(kind errs.Kind) int {
	switch kind {
	case errs.KindNotFound:
		return http.StatusNotFound
	case errs.KindValidation, errs.KindCapacity, errs.KindConflict:
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
