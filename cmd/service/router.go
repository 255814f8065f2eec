package service

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sproutplan/sproutplan/app/core"
	"github.com/sproutplan/sproutplan/app/response"
	"github.com/sproutplan/sproutplan/cmd/service/handler"
	"github.com/sproutplan/sproutplan/cmd/service/middleware"
)

func serve(core *core.Core) {
	httpSrv := &handler.HttpSrv{
		Core:   core,
		Engine: core.HttpEngine(),
	}
	setupHttpRouter(httpSrv)

	core.HttpEngine().Run(core.Cfg().Addr)
}

func setupHttpRouter(s *handler.HttpSrv) {
	s.Engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	s.Engine.Use(middleware.I18n(), response.NewResponse())
	s.Engine.Use(middleware.Cors)
	s.Engine.Use(middleware.AcceptLanguage())
	s.Engine.Use(middleware.ApiMetrics(s.Core))

	apiV1 := s.Engine.Group("/api/v1")
	{
		apiV1.POST("/register", s.Register)
		apiV1.POST("/login", s.Login)

		authed := apiV1.Group("")
		authed.Use(middleware.Authorization(s.Core))

		authed.POST("/logout", s.Logout)

		user := authed.Group("/user")
		{
			user.GET("/meta", s.UserMeta)
			user.GET("/profile", s.GetProfile)
			user.PUT("/profile", s.UpdateProfile)
			user.POST("/password", s.ChangePassword)
		}

		guide := authed.Group("/guide")
		{
			guide.GET("/options", s.GuideOptions)
			guide.POST("/generate", s.GenerateGuide)
		}

		plans := authed.Group("/plans")
		{
			plans.POST("", s.SavePlan)
			plans.GET("", s.ListPlans)
			plans.GET("/:id", s.GetPlan)
			plans.DELETE("/:id", s.DeletePlan)
		}

		authed.POST("/feedback", s.SubmitFeedback)

		admin := authed.Group("/admin")
		admin.Use(middleware.AdminRequired())
		{
			admin.POST("/teachers", s.CreateTeacher)
			admin.GET("/users", s.ListUsers)
			admin.DELETE("/users/:id", s.DeleteUser)
			admin.GET("/activity-logs", s.ListActivityLogs)
			admin.GET("/feedback-logs", s.ListFeedbackLogs)

			admin.GET("/age-cohorts", s.ListAgeCohorts)
			admin.POST("/age-cohorts", s.CreateAgeCohort)
			admin.PUT("/age-cohorts/:id", s.UpdateAgeCohort)
			admin.DELETE("/age-cohorts/:id", s.DeleteAgeCohort)

			admin.GET("/domains", s.ListDomains)
			admin.POST("/domains", s.CreateDomain)
			admin.PUT("/domains/:id", s.UpdateDomain)
			admin.DELETE("/domains/:id", s.DeleteDomain)

			admin.GET("/components", s.ListComponents)
			admin.POST("/components", s.CreateComponent)
			admin.PUT("/components/:id", s.UpdateComponent)
			admin.DELETE("/components/:id", s.DeleteComponent)

			admin.GET("/play-types", s.ListPlayTypes)
			admin.POST("/play-types", s.CreatePlayType)
			admin.PUT("/play-types/:id", s.UpdatePlayType)
			admin.DELETE("/play-types/:id", s.DeletePlayType)

			admin.GET("/resources", s.ListResources)
			admin.GET("/resources/:id", s.GetResource)
			admin.GET("/resources/:id/chunks", s.ListResourceChunks)
			admin.POST("/resources", s.CreateResource)
			admin.PUT("/resources/:id", s.UpdateResource)
			admin.DELETE("/resources/:id", s.DeleteResource)
			admin.POST("/resources/:id/ingest", s.IngestResource)
			admin.POST("/resources/reindex", s.ReindexResources)
		}
	}
}
