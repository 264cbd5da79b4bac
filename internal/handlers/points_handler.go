package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cloudedumatch_backend/internal/middleware"
	"cloudedumatch_backend/internal/services"
)

type PointsHandler struct {
	*BaseHandler
	pointsService services.PointsService
}

func NewPointsHandler(base *BaseHandler, pointsService services.PointsService) *PointsHandler {
	return &PointsHandler{BaseHandler: base, pointsService: pointsService}
}

func (h *PointsHandler) RegisterRoutes(r *gin.RouterGroup) {
	points := r.Group("/points")
	points.Use(middleware.AuthMiddleware())
	{
		points.GET("/balance", h.Balance)
		points.GET("/transactions", h.Transactions)
	}
}

func (h *PointsHandler) Balance(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	resp, err := h.pointsService.Balance(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PointsHandler) Transactions(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	offset, limit := ParsePagination(c)
	items, err := h.pointsService.Transactions(userID, offset, limit)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}
