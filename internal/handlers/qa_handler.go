package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cloudedumatch_backend/internal/middleware"
	"cloudedumatch_backend/internal/services"
	"cloudedumatch_backend/internal/services/dto"
)

type QaHandler struct {
	*BaseHandler
	qaService services.QaService
}

func NewQaHandler(base *BaseHandler, qaService services.QaService) *QaHandler {
	return &QaHandler{BaseHandler: base, qaService: qaService}
}

func (h *QaHandler) RegisterRoutes(r *gin.RouterGroup) {
	qa := r.Group("/qa")
	{
		qa.GET("/questions", h.ListQuestions)
		qa.GET("/questions/:questionId", h.GetQuestion)
		qa.GET("/questions/:questionId/answers", h.ListAnswers)

		authed := qa.Group("")
		authed.Use(middleware.AuthMiddleware())
		{
			authed.POST("/questions", h.CreateQuestion)
			authed.POST("/questions/:questionId/answers", h.CreateAnswer)
			authed.POST("/questions/:questionId/answers/:answerId/accept", h.AcceptAnswer)
			authed.POST("/questions/:questionId/visibility", h.SetQuestionVisibility)
			authed.DELETE("/questions/:questionId", h.DeleteQuestion)
		}
	}
}

func (h *QaHandler) CreateQuestion(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateQuestionRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.qaService.CreateQuestion(userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *QaHandler) GetQuestion(c *gin.Context) {
	resp, err := h.qaService.GetQuestion(c.Param("questionId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *QaHandler) ListQuestions(c *gin.Context) {
	var solved *bool
	if raw := c.Query("solved"); raw != "" {
		v := raw == "true" || raw == "1"
		solved = &v
	}

	offset, limit := ParsePagination(c)
	items, err := h.qaService.ListQuestions(c.Query("subject"), solved, offset, limit)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *QaHandler) CreateAnswer(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateAnswerRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.qaService.CreateAnswer(userID, c.Param("questionId"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *QaHandler) ListAnswers(c *gin.Context) {
	items, err := h.qaService.ListAnswers(c.Param("questionId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *QaHandler) DeleteQuestion(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.qaService.DeleteQuestion(userID, c.Param("questionId")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *QaHandler) SetQuestionVisibility(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.SetPostVisibilityRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.qaService.SetQuestionHidden(userID, c.Param("questionId"), *req.Hidden)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *QaHandler) AcceptAnswer(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	resp, err := h.qaService.AcceptAnswer(userID, c.Param("questionId"), c.Param("answerId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
