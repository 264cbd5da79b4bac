package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cloudedumatch_backend/internal/middleware"
	"cloudedumatch_backend/internal/services"
	"cloudedumatch_backend/internal/services/dto"
)

type MatchingHandler struct {
	*BaseHandler
	matchingService services.MatchingService
}

func NewMatchingHandler(base *BaseHandler, matchingService services.MatchingService) *MatchingHandler {
	return &MatchingHandler{BaseHandler: base, matchingService: matchingService}
}

func (h *MatchingHandler) RegisterRoutes(r *gin.RouterGroup) {
	match := r.Group("/match")
	match.Use(middleware.AuthMiddleware())
	{
		match.POST("/requests", h.CreateRequest)
		match.GET("/requests", h.ListMyRequests)
		match.POST("/requests/:requestId/cancel", h.CancelRequest)
		match.GET("/requests/:requestId/candidates", h.Candidates)
		// Alias kept for older clients.
		match.GET("/requests/:requestId/results", h.Candidates)

		match.POST("/requests/:requestId/offers", h.CreateOffer)
		match.GET("/offers/inbox", h.Inbox)
		match.POST("/offers/:offerId/accept", h.AcceptOffer)
		match.POST("/offers/:offerId/decline", h.DeclineOffer)
	}
}

func (h *MatchingHandler) CreateRequest(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateMatchRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.matchingService.CreateRequest(userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *MatchingHandler) ListMyRequests(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	items, err := h.matchingService.ListMyRequests(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *MatchingHandler) CancelRequest(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	resp, err := h.matchingService.CancelRequest(userID, c.Param("requestId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *MatchingHandler) Candidates(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	limit := ParseQueryInt(c, "limit", 10)
	items, err := h.matchingService.Candidates(userID, c.Param("requestId"), limit)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *MatchingHandler) CreateOffer(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateOfferRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.matchingService.CreateOffer(userID, c.Param("requestId"), req.TeacherID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *MatchingHandler) Inbox(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	items, err := h.matchingService.Inbox(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *MatchingHandler) AcceptOffer(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	resp, err := h.matchingService.AcceptOffer(userID, c.Param("offerId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *MatchingHandler) DeclineOffer(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	resp, err := h.matchingService.DeclineOffer(userID, c.Param("offerId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
