package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cloudedumatch_backend/internal/middleware"
	"cloudedumatch_backend/internal/services"
	"cloudedumatch_backend/internal/services/dto"
)

type CommunityHandler struct {
	*BaseHandler
	communityService services.CommunityService
}

func NewCommunityHandler(base *BaseHandler, communityService services.CommunityService) *CommunityHandler {
	return &CommunityHandler{BaseHandler: base, communityService: communityService}
}

func (h *CommunityHandler) RegisterRoutes(r *gin.RouterGroup) {
	community := r.Group("/community")
	community.Use(middleware.AuthMiddleware())
	{
		community.POST("/posts", h.CreatePost)
		community.GET("/posts", h.ListPosts)
		community.GET("/posts/:postId", h.GetPost)
		community.DELETE("/posts/:postId", h.DeletePost)
		community.POST("/posts/:postId/like", h.LikePost)
		community.POST("/posts/:postId/visibility", h.SetPostHidden)

		community.POST("/posts/:postId/comments", h.CreateComment)
		community.GET("/posts/:postId/comments", h.ListComments)
		community.DELETE("/comments/:commentId", h.DeleteComment)
	}
}

func (h *CommunityHandler) CreatePost(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateCommunityPostRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.communityService.CreatePost(userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *CommunityHandler) GetPost(c *gin.Context) {
	resp, err := h.communityService.GetPost(c.Param("postId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CommunityHandler) ListPosts(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	offset, limit := ParsePagination(c)
	items, err := h.communityService.ListPosts(userID, offset, limit)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *CommunityHandler) DeletePost(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.communityService.DeletePost(userID, c.Param("postId")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Post deleted"})
}

func (h *CommunityHandler) LikePost(c *gin.Context) {
	if _, ok := h.GetAndAuthorizeUserID(c); !ok {
		return
	}

	if err := h.communityService.LikePost(c.Param("postId")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Post liked"})
}

func (h *CommunityHandler) SetPostHidden(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.SetPostVisibilityRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.communityService.SetPostHidden(userID, c.Param("postId"), *req.Hidden)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CommunityHandler) CreateComment(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateCommentRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.communityService.CreateComment(userID, c.Param("postId"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *CommunityHandler) ListComments(c *gin.Context) {
	items, err := h.communityService.ListComments(c.Param("postId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *CommunityHandler) DeleteComment(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.communityService.DeleteComment(userID, c.Param("commentId")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Comment deleted"})
}
