package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cloudedumatch_backend/internal/middleware"
	"cloudedumatch_backend/internal/services"
)

type AidHandler struct {
	*BaseHandler
	aidService services.AidService
}

func NewAidHandler(base *BaseHandler, aidService services.AidService) *AidHandler {
	return &AidHandler{BaseHandler: base, aidService: aidService}
}

func (h *AidHandler) RegisterRoutes(r *gin.RouterGroup) {
	aid := r.Group("/aid")
	aid.Use(middleware.AuthMiddleware())
	{
		aid.GET("/students", h.ListStudents)
		aid.POST("/students/:studentId/revoke", h.RevokeStudent)
	}
}

func (h *AidHandler) ListStudents(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	items, err := h.aidService.ListStudents(userID, c.Query("school_id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *AidHandler) RevokeStudent(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	resp, err := h.aidService.RevokeStudent(userID, c.Param("studentId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
