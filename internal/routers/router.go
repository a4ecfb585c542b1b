// Package routers 注册 HTTP 路由与中间件管线
package routers

import (
	internalApp "github.com/haierkeys/shared-notes-service/internal/app"
	"github.com/haierkeys/shared-notes-service/internal/middleware"
	"github.com/haierkeys/shared-notes-service/internal/routers/api_router"

	"github.com/gin-gonic/gin"
)

// NewRouter builds the engine with the ordered pipeline
// rate limit -> access log -> recovery, then the route table.
// NewRouter 构建路由引擎，中间件顺序：限流 -> 访问日志 -> 恢复
func NewRouter(container *internalApp.App) *gin.Engine {
	r := gin.New()

	logger := container.Logger()

	r.Use(middleware.RateLimiter(container.Limiter))
	r.Use(middleware.AccessLogWithLogger(logger))
	r.Use(middleware.RecoveryWithLogger(logger))

	auth := api_router.NewAuthHandler(container)
	note := api_router.NewNoteHandler(container)

	api := r.Group("/api")
	{
		api.GET("/version", api_router.ServerVersion)

		api.POST("/auth/signup", auth.Signup)
		api.POST("/auth/login", auth.Login)

		notes := api.Group("/notes")
		notes.Use(middleware.UserAuthToken(container.TokenManager, container.UserRepo))
		{
			notes.GET("", note.List)
			notes.GET("/:noteId", note.Get)
			notes.POST("", note.Create)
			notes.PUT("", note.Update)
			notes.DELETE("/:noteId", note.Delete)
			notes.POST("/share", note.Share)
		}
	}

	return r
}
