package api_router

import (
	"net/http"

	internalApp "github.com/haierkeys/shared-notes-service/internal/app"
	"github.com/haierkeys/shared-notes-service/pkg/app"

	"github.com/gin-gonic/gin"
)

// ServerVersion 返回服务版本信息
func ServerVersion(c *gin.Context) {
	response := app.NewResponse(c)
	response.ToResponse(http.StatusOK, gin.H{
		"name":      internalApp.Name,
		"version":   internalApp.Version,
		"gitTag":    internalApp.GitTag,
		"buildTime": internalApp.BuildTime,
	})
}
