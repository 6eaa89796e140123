package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/fekuna/omnipos-commission-service/internal/auth"
	"github.com/fekuna/omnipos-commission-service/internal/model"
	"github.com/fekuna/omnipos-commission-service/internal/sale"
	"github.com/fekuna/omnipos-commission-service/internal/sale/dto"
	"github.com/fekuna/omnipos-commission-service/pkg/i18n"
	"github.com/fekuna/omnipos-commission-service/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type SaleHandler struct {
	uc     sale.UseCase
	lang   string
	logger logger.ZapLogger
}

func NewSaleHandler(uc sale.UseCase, lang string, log logger.ZapLogger) *SaleHandler {
	return &SaleHandler{
		uc:     uc,
		lang:   lang,
		logger: log,
	}
}

// Register mounts the sale routes on an authenticated group.
func (h *SaleHandler) Register(rg *gin.RouterGroup) {
	rg.POST("/sales", h.CreateSale)
	rg.GET("/sales", h.ListSales)
	rg.GET("/sales/:id", h.GetSale)
	rg.PUT("/sales/:id", h.UpdateSale)
	rg.PATCH("/sales/:id/status", h.UpdateSaleStatus)
	rg.GET("/claims/check", h.CheckStockNumber)
	rg.GET("/commissions/summary", h.CommissionSummary)
	rg.GET("/team/commissions", h.TeamCommissionSummary)
}

type saleRequest struct {
	Version          int     `json:"version"`
	StockNumber      string  `json:"stock_number"`
	CustomerName     string  `json:"customer_name"`
	VehicleType      string  `json:"vehicle_type"`
	SalePrice        float64 `json:"sale_price"`
	AccessoriesValue float64 `json:"accessories_value"`
	WarrantyPrice    float64 `json:"warranty_price"`
	WarrantyCost     float64 `json:"warranty_cost"`
	ServicePrice     float64 `json:"service_price"`
	ServiceCost      float64 `json:"service_cost"`
	SpiffBonus       float64 `json:"spiff_bonus"`
	IsSharedSale     bool    `json:"is_shared_sale"`
	PartnerID        string  `json:"partner_id"`
	SplitPercentage  int     `json:"split_percentage"`
}

type statusRequest struct {
	Version int    `json:"version"`
	Status  string `json:"status"`
}

func (h *SaleHandler) CreateSale(c *gin.Context) {
	var req saleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}

	s, err := h.uc.CreateSale(c.Request.Context(), &dto.CreateSaleInput{
		SalespersonID:    auth.GetUserID(c),
		StockNumber:      req.StockNumber,
		CustomerName:     req.CustomerName,
		VehicleType:      req.VehicleType,
		SalePrice:        req.SalePrice,
		AccessoriesValue: req.AccessoriesValue,
		WarrantyPrice:    req.WarrantyPrice,
		WarrantyCost:     req.WarrantyCost,
		ServicePrice:     req.ServicePrice,
		ServiceCost:      req.ServiceCost,
		SpiffBonus:       req.SpiffBonus,
		IsSharedSale:     req.IsSharedSale,
		PartnerID:        req.PartnerID,
		SplitPercentage:  req.SplitPercentage,
		Lang:             h.langOf(c),
	})
	if err != nil {
		h.respondError(c, "create sale", err)
		return
	}

	c.JSON(http.StatusCreated, s)
}

func (h *SaleHandler) GetSale(c *gin.Context) {
	s, err := h.uc.GetSale(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, "get sale", err)
		return
	}
	c.JSON(http.StatusOK, s)
}

func (h *SaleHandler) ListSales(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	filters := &dto.SaleFilters{
		SalespersonID: c.Query("salesperson_id"),
		ParticipantID: c.Query("participant_id"),
		StockNumber:   c.Query("stock_number"),
		Status:        c.Query("status"),
		Page:          page,
		PageSize:      pageSize,
	}

	sales, total, err := h.uc.ListSales(c.Request.Context(), filters)
	if err != nil {
		h.respondError(c, "list sales", err)
		return
	}
	if sales == nil {
		sales = []model.Sale{}
	}

	c.JSON(http.StatusOK, gin.H{
		"results":  sales,
		"metadata": gin.H{"total": total, "page": page, "page_size": pageSize},
	})
}

func (h *SaleHandler) UpdateSale(c *gin.Context) {
	var req saleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}

	s, err := h.uc.UpdateSale(c.Request.Context(), &dto.UpdateSaleInput{
		ID:               c.Param("id"),
		Version:          req.Version,
		ActorID:          auth.GetUserID(c),
		StockNumber:      req.StockNumber,
		CustomerName:     req.CustomerName,
		VehicleType:      req.VehicleType,
		SalePrice:        req.SalePrice,
		AccessoriesValue: req.AccessoriesValue,
		WarrantyPrice:    req.WarrantyPrice,
		WarrantyCost:     req.WarrantyCost,
		ServicePrice:     req.ServicePrice,
		ServiceCost:      req.ServiceCost,
		SpiffBonus:       req.SpiffBonus,
		IsSharedSale:     req.IsSharedSale,
		PartnerID:        req.PartnerID,
		SplitPercentage:  req.SplitPercentage,
		Lang:             h.langOf(c),
	})
	if err != nil {
		h.respondError(c, "update sale", err)
		return
	}

	c.JSON(http.StatusOK, s)
}

func (h *SaleHandler) UpdateSaleStatus(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}

	s, err := h.uc.UpdateSaleStatus(c.Request.Context(), &dto.UpdateStatusInput{
		ID:      c.Param("id"),
		Version: req.Version,
		ActorID: auth.GetUserID(c),
		Status:  req.Status,
	})
	if err != nil {
		h.respondError(c, "update sale status", err)
		return
	}

	c.JSON(http.StatusOK, s)
}

func (h *SaleHandler) CheckStockNumber(c *gin.Context) {
	shared, _ := strconv.ParseBool(c.DefaultQuery("is_shared_sale", "false"))

	res, err := h.uc.CheckStockNumber(c.Request.Context(), &dto.CheckStockInput{
		StockNumber:   c.Query("stock_number"),
		SalespersonID: auth.GetUserID(c),
		ExcludeSaleID: c.Query("exclude_sale_id"),
		IsSharedSale:  shared,
		PartnerID:     c.Query("partner_id"),
		Lang:          h.langOf(c),
	})
	if err != nil {
		h.respondError(c, "check stock number", err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *SaleHandler) CommissionSummary(c *gin.Context) {
	salespersonID := c.DefaultQuery("salesperson_id", auth.GetUserID(c))

	sum, err := h.uc.CommissionSummary(c.Request.Context(), salespersonID)
	if err != nil {
		h.respondError(c, "commission summary", err)
		return
	}
	c.JSON(http.StatusOK, sum)
}

func (h *SaleHandler) TeamCommissionSummary(c *gin.Context) {
	team, err := h.uc.TeamCommissionSummary(c.Request.Context(), auth.GetUserID(c))
	if err != nil {
		h.respondError(c, "team commission summary", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": team})
}

func (h *SaleHandler) langOf(c *gin.Context) string {
	return i18n.FromAcceptLanguage(c.GetHeader("Accept-Language"), h.lang)
}

func (h *SaleHandler) respondError(c *gin.Context, op string, err error) {
	var claimErr *sale.ClaimError
	switch {
	case errors.As(err, &claimErr):
		c.JSON(http.StatusConflict, gin.H{
			"error":       claimErr.Error(),
			"warning":     claimErr.Warning,
			"shared_sale": claimErr.Validation,
		})
	case errors.Is(err, sale.ErrInvalidInput), errors.Is(err, sale.ErrPartnerNotFound):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, model.ErrSaleNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "sale not found"})
	case errors.Is(err, model.ErrVersionConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "sale was changed by someone else, reload and retry"})
	case errors.Is(err, model.ErrDuplicateEntry), errors.Is(err, model.ErrSaleCancelled):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, sale.ErrStockBusy):
		c.JSON(http.StatusLocked, gin.H{"error": err.Error()})
	default:
		h.logger.Error("failed to "+op, zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
