package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nravichan/finance-manager-server/internal/models"
	"github.com/nravichan/finance-manager-server/internal/service"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handler holds the API handlers and their service dependency
type Handler struct {
	svc service.Service
}

// NewHandler creates a new API handler
func NewHandler(svc service.Service) *Handler {
	return &Handler{svc: svc}
}

// SetupRoutes registers all API routes on the router
func (h *Handler) SetupRoutes(router *gin.Engine) {
	router.Use(RequestLogger(), Metrics())
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")

	users := api.Group("/users")
	{
		users.POST("/register", h.Register)
		users.POST("/login", h.Login)
		users.POST("/refresh", AuthMiddleware(), h.RefreshToken)
		users.GET("/current", AuthMiddleware(), h.CurrentUser)
	}

	transactions := api.Group("/transactions", AuthMiddleware())
	{
		transactions.GET("", h.ListTransactions)
		transactions.POST("", h.AddTransaction)
		transactions.GET("/:id", h.GetTransaction)
		transactions.PUT("/:id", h.UpdateTransaction)
		transactions.DELETE("/:id", h.DeleteTransaction)
	}

	recurring := api.Group("/recurring", AuthMiddleware())
	{
		recurring.GET("", h.ListRecurringRules)
		recurring.POST("", h.AddRecurringRule)
		recurring.GET("/:id", h.GetRecurringRule)
		recurring.PUT("/:id", h.UpdateRecurringRule)
		recurring.DELETE("/:id", h.DeleteRecurringRule)
	}

	budgets := api.Group("/budget", AuthMiddleware())
	{
		budgets.GET("", h.GetBudgets)
		budgets.POST("", h.AddBudget)
		budgets.GET("/:id", h.GetBudget)
		budgets.PUT("/:id", h.UpdateBudget)
		budgets.DELETE("/:id", h.DeleteBudget)
	}

	goals := api.Group("/savings-goals", AuthMiddleware())
	{
		goals.GET("", h.GetGoals)
		goals.POST("", h.CreateGoal)
		goals.GET("/:id", h.GetGoal)
		goals.PUT("/:id", h.UpdateGoal)
		goals.DELETE("/:id", h.DeleteGoal)
		goals.PATCH("/:id/status", h.UpdateGoalStatus)
		goals.POST("/:id/contribute", h.Contribute)
		goals.POST("/:id/withdraw", h.Withdraw)
		goals.GET("/:id/contributions", h.GetContributions)
		goals.DELETE("/:id/contributions/:contributionId", h.DeleteContribution)
	}

	api.GET("/dashboard", AuthMiddleware(), h.GetDashboard)
}

// userID returns the authenticated caller set by AuthMiddleware
func userID(c *gin.Context) string {
	return c.GetString("userId")
}

// respondError maps service errors onto HTTP statuses and the standard
// error envelope.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrEmailExists):
		status = http.StatusConflict
	case errors.Is(err, service.ErrInvalidCredentials):
		status = http.StatusUnauthorized
	case errors.Is(err, service.ErrGoalNotActive),
		errors.Is(err, service.ErrInsufficientSaved),
		errors.Is(err, service.ErrCategorySumExceeds):
		status = http.StatusBadRequest
	}

	if status == http.StatusInternalServerError {
		c.Error(err) //nolint:errcheck // recorded for the request logger
	}

	c.JSON(status, models.ErrorResponse{Success: false, Message: err.Error()})
}

// respondBindError reports request validation failures
func respondBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, models.ErrorResponse{Success: false, Message: err.Error()})
}
