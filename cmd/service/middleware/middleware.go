package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"

	"github.com/sproutplan/sproutplan/app/core"
	v1 "github.com/sproutplan/sproutplan/app/logic/v1"
	"github.com/sproutplan/sproutplan/app/response"
	"github.com/sproutplan/sproutplan/pkg/errors"
	"github.com/sproutplan/sproutplan/pkg/i18n"
	"github.com/sproutplan/sproutplan/pkg/types"
	"github.com/sproutplan/sproutplan/pkg/utils"
)

func I18n() gin.HandlerFunc {
	var allowList []string
	for k := range i18n.ALLOW_LANG {
		allowList = append(allowList, k)
	}
	l := i18n.NewLocalizer(allowList...)

	return response.ProvideResponseLocalizer(l)
}

func AcceptLanguage() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		lang := ctx.Request.Header.Get("Accept-Language")
		if lang == "" {
			ctx.Set(v1.LANGUAGE_KEY, types.LANGUAGE_EN_KEY)
			return
		}

		res := utils.ParseAcceptLanguage(lang)
		if len(res) == 0 {
			ctx.Set(v1.LANGUAGE_KEY, types.LANGUAGE_EN_KEY)
			return
		}

		ctx.Set(v1.LANGUAGE_KEY, lo.If(strings.Contains(res[0].Tag, "zh"), types.LANGUAGE_CN_KEY).Else(types.LANGUAGE_EN_KEY))
	}
}

const AUTH_TOKEN_HEADER_KEY = "Authorization"

// Authorization resolves the bearer token and stashes the user claims on
// the request context. Requests without a valid token never reach the
// handler.
func Authorization(core *core.Core) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader(AUTH_TOKEN_HEADER_KEY)
		token = strings.TrimPrefix(token, "Bearer ")

		meta, err := v1.NewAuthLogic(c, core).ValidateToken(token)
		if err != nil {
			response.APIError(c, errors.Trace("middleware.Authorization", err))
			return
		}

		c.Set(v1.USER_CONTEXT_KEY, *meta)
		c.Set("user_id", meta.UserID)
	}
}

// AdminRequired gates a route group on the admin role. It must run
// behind Authorization.
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		meta, ok := v1.InjectUserMeta(c)
		if !ok || meta.Role != types.USER_ROLE_ADMIN {
			response.APIError(c, errors.New("middleware.AdminRequired", i18n.ERROR_FORBIDDEN, nil).Code(http.StatusForbidden))
			return
		}
	}
}

// ApiMetrics times every request and counts non-2xx responses, labeled
// by route template rather than raw path to keep cardinality bounded.
func ApiMetrics(core *core.Core) gin.HandlerFunc {
	return func(c *gin.Context) {
		api := c.FullPath()
		if api == "" {
			api = "unmatched"
		}

		timer := core.Metrics().ApiResponseTimer(api)
		c.Next()
		timer.ObserveDuration()

		if status := c.Writer.Status(); status >= http.StatusBadRequest {
			core.Metrics().ApiErrorInc(c.Request.Method, api, status)
		}
	}
}

func Cors(c *gin.Context) {
	method := c.Request.Method
	origin := c.Request.Header.Get("Origin")
	if origin != "" {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, DELETE, UPDATE")
		c.Header("Access-Control-Allow-Headers", "Origin, X-Requested-With, Content-Type, Accept, Authorization, Accept-Language")
		c.Header("Access-Control-Expose-Headers", "Content-Length, Access-Control-Allow-Origin, Access-Control-Allow-Headers, Cache-Control, Content-Language, Content-Type")
		c.Header("Access-Control-Allow-Credentials", "true")
	}
	if method == "OPTIONS" {
		c.AbortWithStatus(http.StatusNoContent)
	}
	c.Next()
}
