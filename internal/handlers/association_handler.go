package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cloudedumatch_backend/internal/middleware"
	"cloudedumatch_backend/internal/services"
	"cloudedumatch_backend/internal/services/dto"
)

type AssociationHandler struct {
	*BaseHandler
	associationService services.AssociationService
}

func NewAssociationHandler(base *BaseHandler, associationService services.AssociationService) *AssociationHandler {
	return &AssociationHandler{BaseHandler: base, associationService: associationService}
}

func (h *AssociationHandler) RegisterRoutes(r *gin.RouterGroup) {
	association := r.Group("/association")
	association.Use(middleware.AuthMiddleware())
	{
		association.POST("/tasks", h.CreateTask)
		association.GET("/tasks", h.ListTasks)
		association.PATCH("/tasks/:taskId", h.UpdateTask)

		association.GET("/rules", h.GetRules)
		association.PUT("/rules", h.SaveRules)

		association.POST("/hours", h.GrantHours)
		association.GET("/hours", h.ListHourGrants)
		association.GET("/hours/mine", h.MyHours)
	}
}

func (h *AssociationHandler) CreateTask(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateTaskRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.associationService.CreateTask(userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *AssociationHandler) UpdateTask(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateTaskRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.associationService.UpdateTask(userID, c.Param("taskId"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AssociationHandler) ListTasks(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	items, err := h.associationService.ListTasks(userID, c.Query("school_id"), c.Query("status"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *AssociationHandler) GetRules(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	resp, err := h.associationService.GetRules(userID, c.Query("school_id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AssociationHandler) SaveRules(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.SaveRuleSetRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.associationService.SaveRules(userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AssociationHandler) GrantHours(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.GrantHoursRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.associationService.GrantHours(userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *AssociationHandler) ListHourGrants(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	items, err := h.associationService.ListHourGrants(userID, c.Query("school_id"), c.Query("user_id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *AssociationHandler) MyHours(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	resp, err := h.associationService.MyHours(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
