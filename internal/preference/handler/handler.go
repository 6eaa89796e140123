package handler

import (
	"errors"
	"net/http"

	"github.com/fekuna/omnipos-commission-service/internal/auth"
	"github.com/fekuna/omnipos-commission-service/internal/preference"
	"github.com/fekuna/omnipos-commission-service/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type PreferenceHandler struct {
	uc     preference.UseCase
	logger logger.ZapLogger
}

func NewPreferenceHandler(uc preference.UseCase, log logger.ZapLogger) *PreferenceHandler {
	return &PreferenceHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *PreferenceHandler) Register(rg *gin.RouterGroup) {
	rg.GET("/preferences/:name", h.Get)
	rg.PUT("/preferences/:name", h.Save)
}

// Get returns the caller's saved preference, or its zero value.
func (h *PreferenceHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()
	userID := auth.GetUserID(c)

	var (
		value interface{}
		err   error
	)
	switch c.Param("name") {
	case preference.NameGoals:
		value, err = h.uc.GetGoals(ctx, userID)
	case preference.NameFilters:
		value, err = h.uc.GetFilters(ctx, userID)
	default:
		err = preference.ErrUnknownPreference
	}
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, value)
}

func (h *PreferenceHandler) Save(c *gin.Context) {
	ctx := c.Request.Context()
	userID := auth.GetUserID(c)

	var err error
	switch c.Param("name") {
	case preference.NameGoals:
		var goals preference.Goals
		if !h.bind(c, &goals) {
			return
		}
		err = h.uc.SaveGoals(ctx, userID, &goals)
	case preference.NameFilters:
		var filters preference.Filters
		if !h.bind(c, &filters) {
			return
		}
		err = h.uc.SaveFilters(ctx, userID, &filters)
	default:
		err = preference.ErrUnknownPreference
	}
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *PreferenceHandler) bind(c *gin.Context, v interface{}) bool {
	if err := c.ShouldBindJSON(v); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return false
	}
	return true
}

func (h *PreferenceHandler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, preference.ErrUnknownPreference):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, preference.ErrInvalidPreference), errors.Is(err, preference.ErrMissingUser):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		h.logger.Error("failed to handle preference", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
