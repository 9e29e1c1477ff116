package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"chefwho/internal/service/chef"
)

// ReadyStatus is the liveness banner served on GET /.
const ReadyStatus = "Chef Who ready: user-ID-based mode active!"

// Suggester produces a recommendation for one request.
type Suggester interface {
	Suggest(ctx context.Context, req chef.Request) (*chef.Suggestion, error)
}

// Handler wires HTTP routes to the chef service.
type Handler struct {
	chef   Suggester
	logger *slog.Logger
}

// NewHandler constructs a Handler instance.
func NewHandler(service Suggester, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{chef: service, logger: logger}
}

// NewRouter builds a gin engine whose panics are reported as {"detail": ...} with status 500.
func (h *Handler) NewRouter(withRequestLog bool) *gin.Engine {
	router := gin.New()
	if withRequestLog {
		router.Use(gin.Logger())
	}
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		h.logger.Error("request panicked", "path", c.FullPath(), "panic", recovered)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"detail": fmt.Sprint(recovered)})
	}))
	h.RegisterRoutes(router)
	return router
}

// RegisterRoutes attaches all HTTP routes to the router.
func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.GET("/", h.root)
	router.GET("/healthz", h.healthz)
	router.POST("/chefwho", h.chefWho)
}

func (h *Handler) root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": ReadyStatus})
}

func (h *Handler) healthz(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

// promptRequest requires the user_id key; an empty string is a valid id that owns no items.
type promptRequest struct {
	UserID           *string `json:"user_id" binding:"required"`
	AvailableMinutes *int    `json:"available_minutes"`
}

func (h *Handler) chefWho(c *gin.Context) {
	var req promptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "invalid request body: " + err.Error()})
		return
	}

	userID := *req.UserID
	suggestion, err := h.chef.Suggest(c.Request.Context(), chef.Request{
		UserID:           userID,
		AvailableMinutes: req.AvailableMinutes,
	})
	if err != nil {
		h.logger.Error("chefwho request failed", "user_id", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}

	if !suggestion.Found {
		c.JSON(http.StatusOK, gin.H{
			"user_id":      suggestion.UserID,
			"meal_period":  suggestion.MealPeriod,
			"chefwho_says": suggestion.Message,
		})
		return
	}
	item := suggestion.Item
	c.JSON(http.StatusOK, gin.H{
		"meal_period":  suggestion.MealPeriod,
		"user_id":      suggestion.UserID,
		"name_used":    item.Name,
		"days_left":    item.DaysLeft,
		"status":       item.Status,
		"quantity":     item.Quantity(),
		"storage":      item.Storage,
		"updated_at":   item.UpdatedAt,
		"chefwho_says": suggestion.Message,
	})
}
