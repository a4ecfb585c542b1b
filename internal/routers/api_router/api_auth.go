package api_router

import (
	"net/http"

	internalApp "github.com/haierkeys/shared-notes-service/internal/app"
	"github.com/haierkeys/shared-notes-service/internal/dto"
	"github.com/haierkeys/shared-notes-service/pkg/app"
	"github.com/haierkeys/shared-notes-service/pkg/code"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Auth 认证 API 路由处理器
type Auth struct {
	container *internalApp.App
}

// NewAuthHandler 创建 Auth 路由处理器实例
func NewAuthHandler(container *internalApp.App) *Auth {
	return &Auth{container: container}
}

// setRefreshCookie delivers the refresh token via an HTTP-only cookie
// scoped to /. It never appears in the response body.
// setRefreshCookie 通过 HTTP-only Cookie 下发刷新 Token
func (h *Auth) setRefreshCookie(c *gin.Context, refreshToken string) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     "refreshToken",
		Value:    refreshToken,
		Path:     "/",
		MaxAge:   h.container.Config().Security.RefreshCookieMaxAge,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})
}

// Signup 用户注册
// 处理用户注册的 HTTP 请求，验证参数后调用 Service 层执行注册逻辑。
func (h *Auth) Signup(c *gin.Context) {
	response := app.NewResponse(c)
	params := &dto.UserSignupRequest{}

	valid, errs := app.BindAndValid(c, params)
	if !valid {
		h.container.Logger().Error("api_router.auth.Signup.BindAndValid errs", zap.Error(errs))
		response.ToErrorResponse(code.ErrorValidation.WithMsg(errs.Error()).WithDetails(errs.Errors()...))
		return
	}

	authUser, err := h.container.UserService.Signup(c.Request.Context(), params)
	if err != nil {
		h.container.Logger().Error("api_router.auth.Signup svc Signup err", zap.Error(err))
		response.ToErrorResponse(code.FromError(err))
		return
	}

	h.setRefreshCookie(c, authUser.RefreshToken)
	response.ToResponse(http.StatusCreated, authUser)
}

// Login 用户登录
// 处理用户登录的 HTTP 请求，返回访问 Token 并下发刷新 Cookie。
func (h *Auth) Login(c *gin.Context) {
	response := app.NewResponse(c)
	params := &dto.UserLoginRequest{}

	valid, errs := app.BindAndValid(c, params)
	if !valid {
		h.container.Logger().Error("api_router.auth.Login.BindAndValid errs", zap.Error(errs))
		response.ToErrorResponse(code.ErrorValidation.WithMsg(errs.Error()).WithDetails(errs.Errors()...))
		return
	}

	authUser, err := h.container.UserService.Login(c.Request.Context(), params)
	if err != nil {
		h.container.Logger().Error("api_router.auth.Login svc Login err", zap.Error(err))
		response.ToErrorResponse(code.FromError(err))
		return
	}

	h.setRefreshCookie(c, authUser.RefreshToken)
	response.ToResponse(http.StatusOK, authUser)
}
