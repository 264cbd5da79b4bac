package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"cloudedumatch_backend/internal/middleware"
	"cloudedumatch_backend/internal/models"
)

func requireRolesRouter(role interface{}) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/restricted",
		func(c *gin.Context) {
			if role != nil {
				c.Set("role", role)
			}
		},
		middleware.RequireRoles(models.UserRoleGovernance),
		func(c *gin.Context) {
			c.Status(http.StatusOK)
		},
	)
	return r
}

func TestRequireRoles(t *testing.T) {
	get := func(r *gin.Engine) int {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/restricted", nil)
		r.ServeHTTP(w, req)
		return w.Code
	}

	t.Run("allowed role passes", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, get(requireRolesRouter(models.UserRoleGovernance)))
	})

	t.Run("token role arrives as a string", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, get(requireRolesRouter("governance")))
	})

	t.Run("other role is refused", func(t *testing.T) {
		assert.Equal(t, http.StatusForbidden, get(requireRolesRouter(models.UserRoleGeneralStudent)))
	})

	t.Run("missing role is refused", func(t *testing.T) {
		assert.Equal(t, http.StatusForbidden, get(requireRolesRouter(nil)))
	})
}
