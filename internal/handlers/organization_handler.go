package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cloudedumatch_backend/internal/middleware"
	"cloudedumatch_backend/internal/services"
	"cloudedumatch_backend/internal/services/dto"
)

type OrganizationHandler struct {
	*BaseHandler
	orgService services.OrganizationService
}

func NewOrganizationHandler(base *BaseHandler, orgService services.OrganizationService) *OrganizationHandler {
	return &OrganizationHandler{BaseHandler: base, orgService: orgService}
}

func (h *OrganizationHandler) RegisterRoutes(r *gin.RouterGroup) {
	orgs := r.Group("/organizations")
	{
		orgs.GET("", h.List)
		orgs.GET("/resolve", h.Resolve)
		orgs.GET("/:orgId", h.Get)

		authed := orgs.Group("")
		authed.Use(middleware.AuthMiddleware())
		{
			authed.POST("", h.Create)
			authed.PATCH("/:orgId", h.Update)
		}
	}

	tags := r.Group("/tags")
	{
		tags.GET("", h.ListTags)

		authed := tags.Group("")
		authed.Use(middleware.AuthMiddleware())
		{
			authed.POST("", h.CreateTag)
			authed.PATCH("/:tagId", h.UpdateTag)
		}
	}
}

func (h *OrganizationHandler) Create(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateOrganizationRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.orgService.Create(userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *OrganizationHandler) Get(c *gin.Context) {
	resp, err := h.orgService.Get(c.Param("orgId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *OrganizationHandler) Resolve(c *gin.Context) {
	resp, err := h.orgService.Resolve(
		c.Query("type"),
		c.Query("school_id"),
		c.Query("aid_school_id"),
	)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *OrganizationHandler) List(c *gin.Context) {
	items, err := h.orgService.List(c.Query("type"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *OrganizationHandler) Update(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateOrganizationRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.orgService.Update(userID, c.Param("orgId"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *OrganizationHandler) CreateTag(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateTagRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.orgService.CreateTag(userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *OrganizationHandler) ListTags(c *gin.Context) {
	enabledOnly := ParseQueryBool(c, "enabled_only", true)
	items, err := h.orgService.ListTags(c.Query("category"), enabledOnly)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *OrganizationHandler) UpdateTag(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateTagRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.orgService.UpdateTag(userID, c.Param("tagId"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
