package dto

// UserSignupRequest signup parameters. The password policy follows the
// public contract: 8 to 20 characters.
type UserSignupRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=20"`
}

// UserLoginRequest login parameters
type UserLoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthUser is the authenticated-identity payload returned by signup and
// login. The refresh token travels only in the HTTP-only cookie, never in
// the body.
// AuthUser 登录/注册响应，刷新 Token 仅通过 Cookie 下发
type AuthUser struct {
	ID           int64  `json:"id"`
	Email        string `json:"email"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"-"`
}
