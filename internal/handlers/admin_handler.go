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

type AdminHandler struct {
	*BaseHandler
	adminService services.AdminService
}

func NewAdminHandler(base *BaseHandler, adminService services.AdminService) *AdminHandler {
	return &AdminHandler{BaseHandler: base, adminService: adminService}
}

func (h *AdminHandler) RegisterRoutes(r *gin.RouterGroup) {
	admin := r.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.RequireRoles(models.UserRoleGovernance))
	{
		admin.GET("/users", h.ListUsers)
		admin.DELETE("/users/:userId", h.DeleteUser)
		admin.POST("/schools/purge-orphans", h.PurgeOrphanSchools)
		admin.POST("/org-admins", h.CreateOrgAdmin)
		admin.GET("/org-admins", h.ListOrgAdmins)
		admin.GET("/onboarding", h.ListOnboarding)
		admin.POST("/onboarding/:requestId/review", h.ReviewOnboarding)
	}
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var query dto.UserListQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}

	filter := repositories.UserFilter{
		Role:     models.UserRole(query.Role),
		SchoolID: query.SchoolID,
		Search:   query.Search,
		Page:     query.Page,
		PageSize: query.PageSize,
	}

	resp, err := h.adminService.ListUsers(userID, filter)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AdminHandler) DeleteUser(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	hard := ParseQueryBool(c, "hard", false)
	resp, err := h.adminService.DeleteUser(userID, c.Param("userId"), hard)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AdminHandler) PurgeOrphanSchools(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	dryRun := ParseQueryBool(c, "dry_run", true)
	resp, err := h.adminService.PurgeOrphanSchools(userID, dryRun)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AdminHandler) ListOrgAdmins(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	boards, err := h.adminService.ListOrgAdmins(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, boards)
}

func (h *AdminHandler) CreateOrgAdmin(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateOrgAdminRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.adminService.CreateOrgAdmin(userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *AdminHandler) ListOnboarding(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	items, err := h.adminService.ListOnboarding(userID, c.Query("status"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *AdminHandler) ReviewOnboarding(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.ReviewOnboardingRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.adminService.ReviewOnboarding(userID, c.Param("requestId"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
