package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nravichan/finance-manager-server/internal/models"
)

// GetDashboard handles GET /api/dashboard
func (h *Handler) GetDashboard(c *gin.Context) {
	data, err := h.svc.GetDashboard(c.Request.Context(), userID(c), time.Now())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.DataResponse{Success: true, Data: data})
}
