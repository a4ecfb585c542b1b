package app

import (
	"net/http"

	"github.com/haierkeys/shared-notes-service/pkg/code"

	"github.com/gin-gonic/gin"
)

type Response struct {
	Ctx *gin.Context
}

// ErrRes is the uniform error body: name, transport status and message.
// Details are included only outside release mode.
// ErrRes 是统一的错误响应体：名称、传输状态码与消息
// Details 仅在非 release 模式下输出
type ErrRes struct {
	Name    string   `json:"name"`
	Status  int      `json:"status"`
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

func NewResponse(ctx *gin.Context) *Response {
	return &Response{
		Ctx: ctx,
	}
}

// GetRequestIP gets the request IP
// GetRequestIP 获取ip
func GetRequestIP(c *gin.Context) string {
	reqIP := c.ClientIP()
	if reqIP == "::1" {
		reqIP = "127.0.0.1"
	}
	return reqIP
}

// ToResponse writes the resource as plain JSON.
func (r *Response) ToResponse(statusCode int, data any) {
	r.Ctx.JSON(statusCode, data)
}

// ToNoContent writes an empty 204 response.
func (r *Response) ToNoContent() {
	r.Ctx.Status(http.StatusNoContent)
}

// ToErrorResponse translates an error variant into the wire error shape.
// ToErrorResponse 将错误变体转换为线上错误格式
func (r *Response) ToErrorResponse(codeObj *code.Code) {
	content := ErrRes{
		Name:    codeObj.Name(),
		Status:  codeObj.StatusCode(),
		Message: codeObj.Msg(),
	}
	if gin.Mode() != gin.ReleaseMode {
		content.Details = codeObj.Details()
	}
	r.Ctx.JSON(codeObj.StatusCode(), content)
}
