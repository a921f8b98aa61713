// Package api exposes the HTTP surface: auth, creator-profile CRUD, and the
// audience-analysis / idea-generation endpoints backed by the pipeline.
package api

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/trendulum/trendulum-api-go/internal/auth"
	"github.com/trendulum/trendulum-api-go/internal/config"
	"github.com/trendulum/trendulum-api-go/internal/repository"
	"github.com/trendulum/trendulum-api-go/internal/service/pipeline"
	"go.uber.org/zap"
)

type Dependencies struct {
	Config   *config.Config
	Logger   *zap.Logger
	Users    *repository.UserRepository
	Profiles *repository.ProfileRepository
	Ideas    *repository.IdeaRepository
	Pipeline *pipeline.Pipeline
	Tokens   auth.TokenService
}

func NewRouter(deps *Dependencies) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestID())
	router.Use(RequestLogger(deps.Logger))

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	if len(deps.Config.Server.AllowedOrigins) == 1 && deps.Config.Server.AllowedOrigins[0] == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = deps.Config.Server.AllowedOrigins
	}
	router.Use(cors.New(corsConfig))

	authHandler := &AuthHandler{deps: deps}
	profileHandler := &ProfileHandler{deps: deps}
	pipelineHandler := &PipelineHandler{deps: deps}
	ideaHandler := &IdeaHandler{deps: deps}

	router.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message":     "Welcome to Trendulum API",
			"version":     "1.0.0",
			"description": "Taste Architect for Creators",
		})
	})

	router.POST("/register", authHandler.Register)
	router.POST("/token", authHandler.Login)

	authed := router.Group("/", auth.Middleware(deps.Tokens))
	authed.GET("/me", authHandler.Me)

	authed.POST("/creator-profiles", profileHandler.Create)
	authed.GET("/creator-profiles", profileHandler.List)
	authed.GET("/creator-profiles/:id", profileHandler.Get)
	authed.PUT("/creator-profiles/:id", profileHandler.Update)
	authed.DELETE("/creator-profiles/:id", profileHandler.Delete)

	authed.POST("/analyze-audience", pipelineHandler.AnalyzeAudience)
	authed.POST("/generate-content", pipelineHandler.GenerateContent)
	authed.POST("/generate-monetization", pipelineHandler.GenerateMonetization)

	authed.GET("/content-ideas", ideaHandler.ListContent)
	authed.PUT("/content-ideas/:id/save", ideaHandler.SaveContent)
	authed.DELETE("/content-ideas/:id", ideaHandler.DeleteContent)
	authed.GET("/monetization-ideas", ideaHandler.ListMonetization)
	authed.PUT("/monetization-ideas/:id/save", ideaHandler.SaveMonetization)
	authed.DELETE("/monetization-ideas/:id", ideaHandler.DeleteMonetization)

	return router
}
