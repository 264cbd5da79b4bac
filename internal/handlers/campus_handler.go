package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cloudedumatch_backend/internal/middleware"
	"cloudedumatch_backend/internal/services"
	"cloudedumatch_backend/internal/services/dto"
)

type CampusHandler struct {
	*BaseHandler
	campusService services.CampusService
}

func NewCampusHandler(base *BaseHandler, campusService services.CampusService) *CampusHandler {
	return &CampusHandler{BaseHandler: base, campusService: campusService}
}

func (h *CampusHandler) RegisterRoutes(r *gin.RouterGroup) {
	campus := r.Group("/campus")
	campus.Use(middleware.AuthMiddleware())
	{
		campus.POST("/topics", h.CreateTopic)
		campus.GET("/topics", h.ListTopics)
		campus.PATCH("/topics/:topicId", h.SetTopicEnabled)

		campus.POST("/posts", h.CreatePost)
		campus.GET("/posts", h.ListPosts)
		campus.PATCH("/posts/:postId", h.ModeratePost)
		campus.DELETE("/posts/:postId", h.DeletePost)
		campus.POST("/posts/:postId/like", h.LikePost)

		campus.POST("/posts/:postId/comments", h.CreateComment)
		campus.GET("/posts/:postId/comments", h.ListComments)
	}
}

func (h *CampusHandler) CreateTopic(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateCampusTopicRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.campusService.CreateTopic(userID, c.Query("school_id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *CampusHandler) ListTopics(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	enabledOnly := ParseQueryBool(c, "enabled_only", true)
	items, err := h.campusService.ListTopics(userID, c.Query("school_id"), enabledOnly)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *CampusHandler) SetTopicEnabled(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.SetTopicEnabledRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.campusService.SetTopicEnabled(userID, c.Param("topicId"), *req.Enabled)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CampusHandler) CreatePost(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateCampusPostRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.campusService.CreatePost(userID, c.Query("school_id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *CampusHandler) ListPosts(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	offset, limit := ParsePagination(c)
	items, err := h.campusService.ListPosts(userID, c.Query("school_id"), offset, limit)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *CampusHandler) ModeratePost(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.ModerateCampusPostRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.campusService.ModeratePost(userID, c.Param("postId"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CampusHandler) DeletePost(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.campusService.DeletePost(userID, c.Param("postId")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Post deleted"})
}

func (h *CampusHandler) LikePost(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.campusService.LikePost(userID, c.Param("postId")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Post liked"})
}

func (h *CampusHandler) CreateComment(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateCommentRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.campusService.CreateComment(userID, c.Param("postId"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *CampusHandler) ListComments(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	items, err := h.campusService.ListComments(userID, c.Param("postId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}
