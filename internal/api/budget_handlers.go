package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nravichan/finance-manager-server/internal/models"
)

// GetBudgets handles GET /api/budget. The startDate/endDate query
// parameters bound the utilization window and default to the current
// calendar month.
func (h *Handler) GetBudgets(c *gin.Context) {
	now := time.Now().UTC()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)

	if s := c.Query("startDate"); s != "" {
		parsed, err := time.Parse("2006-01-02", s)
		if err != nil {
			respondBindError(c, err)
			return
		}
		start = parsed
	}
	if s := c.Query("endDate"); s != "" {
		parsed, err := time.Parse("2006-01-02", s)
		if err != nil {
			respondBindError(c, err)
			return
		}
		end = parsed
	}

	budgets, err := h.svc.GetBudgets(c.Request.Context(), userID(c), start, end)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.DataResponse{Success: true, Data: budgets})
}

// AddBudget handles POST /api/budget
func (h *Handler) AddBudget(c *gin.Context) {
	var req models.BudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	budget, err := h.svc.AddBudget(c.Request.Context(), userID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.DataResponse{Success: true, Data: budget})
}

// GetBudget handles GET /api/budget/:id
func (h *Handler) GetBudget(c *gin.Context) {
	budget, err := h.svc.GetBudget(c.Request.Context(), userID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.DataResponse{Success: true, Data: budget})
}

// UpdateBudget handles PUT /api/budget/:id
func (h *Handler) UpdateBudget(c *gin.Context) {
	var req models.BudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	budget, err := h.svc.UpdateBudget(c.Request.Context(), userID(c), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.DataResponse{Success: true, Data: budget})
}

// DeleteBudget handles DELETE /api/budget/:id
func (h *Handler) DeleteBudget(c *gin.Context) {
	if err := h.svc.DeleteBudget(c.Request.Context(), userID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.MessageResponse{Success: true, Message: "Budget deleted successfully"})
}
