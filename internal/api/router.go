package api

import (
	"github.com/gin-gonic/gin"

	"github.com/amiyamandal-dev/bizbrief/internal/api/handlers"
	"github.com/amiyamandal-dev/bizbrief/internal/api/middleware"
	"github.com/amiyamandal-dev/bizbrief/internal/config"
	"github.com/amiyamandal-dev/bizbrief/internal/web"
	"github.com/amiyamandal-dev/bizbrief/pkg/logger"
)

// Router sets up the HTTP router with all routes and middleware
type Router struct {
	engine        *gin.Engine
	healthHandler *handlers.HealthHandler
	webHandler    *web.WebHandler
	cfg           *config.Config
	logger        *logger.Logger
}

// NewRouter creates a new router
func NewRouter(
	healthHandler *handlers.HealthHandler,
	webHandler *web.WebHandler,
	cfg *config.Config,
	logger *logger.Logger,
) *Router {
	return &Router{
		healthHandler: healthHandler,
		webHandler:    webHandler,
		cfg:           cfg,
		logger:        logger,
	}
}

// Setup configures all routes and middleware
func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.cfg.Server.Mode)

	r.engine = gin.New()
	r.engine.Use(gin.Recovery())
	r.engine.Use(middleware.LoggerMiddleware(r.logger))

	// Health check endpoints (no session)
	r.engine.GET("/health", r.healthHandler.Health)
	r.engine.GET("/health/ready", r.healthHandler.Readiness)

	webRoutes := r.engine.Group("")
	webRoutes.Use(web.SessionMiddleware(r.cfg.Session, r.logger))
	{
		webRoutes.GET("/", r.webHandler.HomePage)
		webRoutes.POST("/articles/:id/upvote", r.webHandler.Upvote)
		webRoutes.POST("/articles/:id/save", r.webHandler.Save)
		webRoutes.GET("/articles/:id", r.webHandler.ArticlePage)
		webRoutes.POST("/articles/:id/comments", r.webHandler.PostComment)
		webRoutes.POST("/articles/:id/comments/:commentId", r.webHandler.EditComment)

		webRoutes.GET("/auth", r.webHandler.AuthPage)
		webRoutes.POST("/auth/login", r.webHandler.Login)
		webRoutes.POST("/auth/signup", r.webHandler.Signup)
		webRoutes.POST("/logout", r.webHandler.Logout)
		webRoutes.GET("/profile", r.webHandler.ProfilePage)
	}

	r.engine.NoRoute(web.SessionMiddleware(r.cfg.Session, r.logger), r.webHandler.NotFound)

	return r.engine
}

// GetEngine returns the Gin engine
func (r *Router) GetEngine() *gin.Engine {
	if r.engine == nil {
		return r.Setup()
	}
	return r.engine
}
