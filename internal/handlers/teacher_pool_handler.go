package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cloudedumatch_backend/internal/middleware"
	"cloudedumatch_backend/internal/services"
	"cloudedumatch_backend/internal/services/dto"
)

type TeacherPoolHandler struct {
	*BaseHandler
	poolService services.TeacherPoolService
}

func NewTeacherPoolHandler(base *BaseHandler, poolService services.TeacherPoolService) *TeacherPoolHandler {
	return &TeacherPoolHandler{BaseHandler: base, poolService: poolService}
}

func (h *TeacherPoolHandler) RegisterRoutes(r *gin.RouterGroup) {
	teachers := r.Group("/teachers")
	teachers.Use(middleware.AuthMiddleware())
	{
		teachers.GET("", h.ListTeachers)
		teachers.POST("/:userId/pool", h.SetInPool)
	}
}

func (h *TeacherPoolHandler) ListTeachers(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	items, err := h.poolService.ListTeachers(userID, c.Query("school_id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *TeacherPoolHandler) SetInPool(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.SetInPoolRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.poolService.SetInPool(userID, c.Param("userId"), *req.InPool)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
