package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"

	"user-service/api"
	"user-service/internal/adapter/gin/handler"
	"user-service/internal/adapter/gin/middleware"
	"user-service/internal/adapter/ratelimit"
)

// SwaggerDocPath is where the OpenAPI document is served.
const SwaggerDocPath = "/swagger/user.swagger.json"

// SetupRouter configures and returns a Gin router with all routes and middleware
func SetupRouter(
	userHandler *handler.UserHandler,
	rateLimiter *ratelimit.Limiter,
	log *zap.Logger,
) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(middleware.Recovery(log))
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(log))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "user-service",
		})
	})

	swaggerUI := gin.WrapH(httpSwagger.Handler(httpSwagger.URL(SwaggerDocPath)))
	router.GET("/swagger/*any", func(c *gin.Context) {
		if c.Request.URL.Path == SwaggerDocPath {
			c.Data(http.StatusOK, "application/json; charset=utf-8", api.UserSwagger)
			return
		}
		swaggerUI(c)
	})

	users := router.Group("/users", middleware.RateLimiter(rateLimiter))
	{
		users.POST("", userHandler.CreateUser)
		users.GET("", userHandler.FindAll)
		users.GET("/:id", userHandler.FindOne)
		users.PATCH("/:id", userHandler.Update)
		users.DELETE("/:id", userHandler.Remove)
	}

	return router
}
