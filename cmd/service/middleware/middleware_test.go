package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	v1 "github.com/sproutplan/sproutplan/app/logic/v1"
	"github.com/sproutplan/sproutplan/app/response"
	"github.com/sproutplan/sproutplan/cmd/service/middleware"
	"github.com/sproutplan/sproutplan/pkg/types"
)

func newTestEngine(pre ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	e := gin.New()
	e.Use(middleware.I18n(), response.NewResponse())
	e.Use(pre...)
	return e
}

func Test_AdminRequiredRejectsTeacher(t *testing.T) {
	e := newTestEngine(func(c *gin.Context) {
		c.Set(v1.USER_CONTEXT_KEY, types.UserTokenMeta{UserID: "u1", Role: types.USER_ROLE_TEACHER})
	})
	e.GET("/admin", middleware.AdminRequired(), func(c *gin.Context) {
		response.APISuccess(c, nil)
	})

	w := httptest.NewRecorder()
	e.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin", nil))
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func Test_AdminRequiredAllowsAdmin(t *testing.T) {
	e := newTestEngine(func(c *gin.Context) {
		c.Set(v1.USER_CONTEXT_KEY, types.UserTokenMeta{UserID: "u1", Role: types.USER_ROLE_ADMIN})
	})
	e.GET("/admin", middleware.AdminRequired(), func(c *gin.Context) {
		response.APISuccess(c, nil)
	})

	w := httptest.NewRecorder()
	e.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func Test_AdminRequiredRejectsAnonymous(t *testing.T) {
	e := newTestEngine()
	e.GET("/admin", middleware.AdminRequired(), func(c *gin.Context) {
		response.APISuccess(c, nil)
	})

	w := httptest.NewRecorder()
	e.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin", nil))
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func Test_AcceptLanguage(t *testing.T) {
	cases := []struct {
		header string
		want   string
	}{
		{"", types.LANGUAGE_EN_KEY},
		{"en-US,en;q=0.9", types.LANGUAGE_EN_KEY},
		{"zh-CN,zh;q=0.9", types.LANGUAGE_CN_KEY},
		{"en;q=0.5,zh-CN", types.LANGUAGE_CN_KEY},
	}

	for _, tc := range cases {
		var got string
		e := newTestEngine(middleware.AcceptLanguage())
		e.GET("/", func(c *gin.Context) {
			got, _ = v1.InjectLanguage(c)
			response.APISuccess(c, nil)
		})

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if tc.header != "" {
			req.Header.Set("Accept-Language", tc.header)
		}
		w := httptest.NewRecorder()
		e.ServeHTTP(w, req)

		assert.Equal(t, tc.want, got, "header %q", tc.header)
	}
}

func Test_CorsPreflight(t *testing.T) {
	e := newTestEngine(middleware.Cors)
	e.POST("/", func(c *gin.Context) {
		response.APISuccess(c, nil)
	})

	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	w := httptest.NewRecorder()
	e.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
