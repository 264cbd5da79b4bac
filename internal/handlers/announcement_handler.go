package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cloudedumatch_backend/internal/middleware"
	"cloudedumatch_backend/internal/models"
	"cloudedumatch_backend/internal/repositories"
	"cloudedumatch_backend/internal/services"
	"cloudedumatch_backend/internal/services/dto"
)

type AnnouncementHandler struct {
	*BaseHandler
	announcementService services.AnnouncementService
}

func NewAnnouncementHandler(base *BaseHandler, announcementService services.AnnouncementService) *AnnouncementHandler {
	return &AnnouncementHandler{BaseHandler: base, announcementService: announcementService}
}

func (h *AnnouncementHandler) RegisterRoutes(r *gin.RouterGroup) {
	announcements := r.Group("/announcements")
	announcements.Use(middleware.AuthMiddleware())
	{
		announcements.POST("", h.Create)
		announcements.GET("", h.List)
		announcements.PATCH("/:announcementId", h.Update)
		announcements.DELETE("/:announcementId", h.Delete)
	}
}

func (h *AnnouncementHandler) Create(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateAnnouncementRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.announcementService.Create(userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *AnnouncementHandler) List(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	filter := repositories.AnnouncementFilter{
		Scope:          models.AnnouncementScope(c.Query("scope")),
		SchoolID:       c.Query("school_id"),
		OrganizationID: c.Query("organization_id"),
	}

	items, err := h.announcementService.List(userID, filter)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *AnnouncementHandler) Update(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateAnnouncementRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.announcementService.Update(userID, c.Param("announcementId"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AnnouncementHandler) Delete(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.announcementService.Delete(userID, c.Param("announcementId")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Announcement deleted"})
}
