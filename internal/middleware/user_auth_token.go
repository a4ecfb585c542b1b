package middleware

import (
	"errors"
	"strings"

	"github.com/haierkeys/shared-notes-service/internal/domain"
	"github.com/haierkeys/shared-notes-service/pkg/app"
	"github.com/haierkeys/shared-notes-service/pkg/code"

	"github.com/gin-gonic/gin"
)

// UserAuthToken 用户 Token 认证中间件（使用注入的 TokenManager 与用户仓储）
// Verifies the bearer access token, then re-fetches the user so a token
// for a deleted account is no longer valid. Unexpected verification
// failures surface as internal errors, never as unauthenticated.
func UserAuthToken(tokenManager app.TokenManager, userRepo domain.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		response := app.NewResponse(c)

		var token string
		if s := c.GetHeader("Authorization"); len(s) != 0 {
			parts := strings.SplitN(s, " ", 2)
			if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
				token = strings.TrimSpace(parts[1])
			}
		}

		if token == "" {
			response.ToErrorResponse(code.ErrorAuthorization)
			c.Abort()
			return
		}

		user, err := tokenManager.Parse(app.TokenKindAccess, token)
		if err != nil {
			if app.IsTokenInvalid(err) {
				response.ToErrorResponse(code.ErrorAuthorization)
			} else {
				response.ToErrorResponse(code.ErrorServerInternal.WithDetails(err.Error()))
			}
			c.Abort()
			return
		}

		if _, err := userRepo.GetByUID(c.Request.Context(), user.UID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				response.ToErrorResponse(code.ErrorAuthorization)
			} else {
				response.ToErrorResponse(code.ErrorServerInternal.WithDetails(err.Error()))
			}
			c.Abort()
			return
		}

		c.Set("user_token", user)
		c.Next()
	}
}
