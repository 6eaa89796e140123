package handler

import (
	"errors"
	"net/http"

	"github.com/fekuna/omnipos-commission-service/internal/auth"
	"github.com/fekuna/omnipos-commission-service/internal/conflict"
	"github.com/fekuna/omnipos-commission-service/internal/conflict/dto"
	"github.com/fekuna/omnipos-commission-service/internal/model"
	"github.com/fekuna/omnipos-commission-service/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ConflictHandler struct {
	uc     conflict.UseCase
	logger logger.ZapLogger
}

func NewConflictHandler(uc conflict.UseCase, log logger.ZapLogger) *ConflictHandler {
	return &ConflictHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *ConflictHandler) Register(rg *gin.RouterGroup) {
	rg.GET("/team/conflicts", h.ListTeamConflicts)
	rg.GET("/conflicts/:stockNumber", h.GetConflict)
	rg.POST("/conflicts/:stockNumber/resolve", h.Resolve)
}

type resolveRequest struct {
	Action     string `json:"action"`
	KeepSaleID string `json:"keep_sale_id"`
	Note       string `json:"note"`
}

// ListTeamConflicts lists the open double claims of the caller's team.
func (h *ConflictHandler) ListTeamConflicts(c *gin.Context) {
	alerts, err := h.uc.ListTeamConflicts(c.Request.Context(), auth.GetUserID(c))
	if err != nil {
		h.respondError(c, "list team conflicts", err)
		return
	}
	if alerts == nil {
		alerts = []conflict.Alert{}
	}
	c.JSON(http.StatusOK, gin.H{"results": alerts})
}

func (h *ConflictHandler) GetConflict(c *gin.Context) {
	alert, err := h.uc.GetConflict(c.Request.Context(), c.Param("stockNumber"))
	if err != nil {
		h.respondError(c, "get conflict", err)
		return
	}
	c.JSON(http.StatusOK, alert)
}

func (h *ConflictHandler) Resolve(c *gin.Context) {
	var req resolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}

	res, err := h.uc.Resolve(c.Request.Context(), &dto.ResolveInput{
		StockNumber: c.Param("stockNumber"),
		Action:      req.Action,
		KeepSaleID:  req.KeepSaleID,
		Note:        req.Note,
		ActorID:     auth.GetUserID(c),
	})
	if err != nil {
		h.respondError(c, "resolve conflict", err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *ConflictHandler) respondError(c *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, conflict.ErrNoteRequired),
		errors.Is(err, conflict.ErrUnknownAction),
		errors.Is(err, conflict.ErrInvalidKeepSale),
		errors.Is(err, conflict.ErrSharedNeedsTwoClaims):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, conflict.ErrAlertNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, conflict.ErrIllegalTransition),
		errors.Is(err, model.ErrVersionConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		h.logger.Error("failed to "+op, zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
