package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nravichan/finance-manager-server/internal/models"
)

// AddRecurringRule handles POST /api/recurring
func (h *Handler) AddRecurringRule(c *gin.Context) {
	var req models.RecurringRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	rule, err := h.svc.AddRecurringRule(c.Request.Context(), userID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.DataResponse{Success: true, Data: rule})
}

// ListRecurringRules handles GET /api/recurring
func (h *Handler) ListRecurringRules(c *gin.Context) {
	rules, err := h.svc.ListRecurringRules(c.Request.Context(), userID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.DataResponse{Success: true, Data: rules})
}

// GetRecurringRule handles GET /api/recurring/:id
func (h *Handler) GetRecurringRule(c *gin.Context) {
	rule, err := h.svc.GetRecurringRule(c.Request.Context(), userID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.DataResponse{Success: true, Data: rule})
}

// UpdateRecurringRule handles PUT /api/recurring/:id
func (h *Handler) UpdateRecurringRule(c *gin.Context) {
	var req models.RecurringRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	rule, err := h.svc.UpdateRecurringRule(c.Request.Context(), userID(c), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.DataResponse{Success: true, Data: rule})
}

// DeleteRecurringRule handles DELETE /api/recurring/:id
func (h *Handler) DeleteRecurringRule(c *gin.Context) {
	if err := h.svc.DeleteRecurringRule(c.Request.Context(), userID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.MessageResponse{Success: true, Message: "Recurring rule deleted successfully"})
}
