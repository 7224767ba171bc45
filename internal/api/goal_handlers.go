package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nravichan/finance-manager-server/internal/models"
)

// CreateGoal handles POST /api/savings-goals
func (h *Handler) CreateGoal(c *gin.Context) {
	var req models.SavingsGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	goal, err := h.svc.CreateGoal(c.Request.Context(), userID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.DataResponse{Success: true, Data: goal})
}

// GetGoals handles GET /api/savings-goals
func (h *Handler) GetGoals(c *gin.Context) {
	goals, err := h.svc.GetGoals(c.Request.Context(), userID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, goals)
}

// GetGoal handles GET /api/savings-goals/:id
func (h *Handler) GetGoal(c *gin.Context) {
	goal, err := h.svc.GetGoal(c.Request.Context(), userID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.DataResponse{Success: true, Data: goal})
}

// UpdateGoal handles PUT /api/savings-goals/:id
func (h *Handler) UpdateGoal(c *gin.Context) {
	var req models.SavingsGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	goal, err := h.svc.UpdateGoal(c.Request.Context(), userID(c), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.DataResponse{Success: true, Data: goal})
}

// UpdateGoalStatus handles PATCH /api/savings-goals/:id/status
func (h *Handler) UpdateGoalStatus(c *gin.Context) {
	var req models.GoalStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	goal, err := h.svc.UpdateGoalStatus(c.Request.Context(), userID(c), c.Param("id"), models.GoalStatus(req.Status))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.DataResponse{Success: true, Data: goal})
}

// DeleteGoal handles DELETE /api/savings-goals/:id
func (h *Handler) DeleteGoal(c *gin.Context) {
	if err := h.svc.DeleteGoal(c.Request.Context(), userID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.MessageResponse{Success: true, Message: "Savings goal deleted successfully"})
}

// Contribute handles POST /api/savings-goals/:id/contribute
func (h *Handler) Contribute(c *gin.Context) {
	var req models.ContributionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	result, err := h.svc.Contribute(c.Request.Context(), userID(c), c.Param("id"), req, time.Now())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.DataResponse{Success: true, Data: result})
}

// Withdraw handles POST /api/savings-goals/:id/withdraw
func (h *Handler) Withdraw(c *gin.Context) {
	var req models.ContributionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	result, err := h.svc.Withdraw(c.Request.Context(), userID(c), c.Param("id"), req, time.Now())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.DataResponse{Success: true, Data: result})
}

// GetContributions handles GET /api/savings-goals/:id/contributions
func (h *Handler) GetContributions(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	contributions, err := h.svc.GetContributions(c.Request.Context(), userID(c), c.Param("id"), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contributions)
}

// DeleteContribution handles DELETE /api/savings-goals/:id/contributions/:contributionId
func (h *Handler) DeleteContribution(c *gin.Context) {
	goal, err := h.svc.DeleteContribution(c.Request.Context(), userID(c), c.Param("id"), c.Param("contributionId"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.DataResponse{Success: true, Data: goal})
}
