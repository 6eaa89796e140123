package handler

import (
	"net/http"
	"strconv"

	"github.com/fekuna/omnipos-commission-service/internal/activity"
	"github.com/fekuna/omnipos-commission-service/internal/activity/dto"
	"github.com/fekuna/omnipos-commission-service/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ActivityHandler struct {
	uc     activity.UseCase
	logger logger.ZapLogger
}

func NewActivityHandler(uc activity.UseCase, log logger.ZapLogger) *ActivityHandler {
	return &ActivityHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *ActivityHandler) Register(rg *gin.RouterGroup) {
	rg.GET("/activity", h.ListActivity)
}

func (h *ActivityHandler) ListActivity(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "50"))

	filters := &dto.ActivityFilters{
		ActorID:  c.Query("actor_id"),
		Action:   c.Query("action"),
		Page:     page,
		PageSize: pageSize,
	}

	logs, total, err := h.uc.ListActivity(c.Request.Context(), filters)
	if err != nil {
		h.logger.Error("failed to list activity", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"results":  logs,
		"metadata": gin.H{"total": total, "page": filters.Page, "page_size": filters.PageSize},
	})
}
