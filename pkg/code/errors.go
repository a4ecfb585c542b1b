package code

import "net/http"

// Error variants. Names and statuses are part of the wire contract.
// 错误变体，名称与状态码属于对外契约
var (
	ErrorValidation       = NewError("ValidationError", http.StatusBadRequest, "validation failed")
	ErrorAuthorization    = NewError("AuthorizationError", http.StatusUnauthorized, "invalid credentials")
	ErrorUserExists       = NewError("UserExistsError", http.StatusBadRequest, "user already exists")
	ErrorResourceNotFound = NewError("ResourceNotFound", http.StatusNotFound, "resource not found")
	ErrorUserNotFound     = NewError("UserNotFoundError", http.StatusNotFound, "user not found")
	ErrorDatabase         = NewError("DatabaseError", http.StatusInternalServerError, "something went wrong")
	ErrorServerInternal   = NewError("InternalServerError", http.StatusInternalServerError, "something went wrong")
	ErrorTooManyRequests  = NewError("RateLimitExceededError", http.StatusServiceUnavailable, "rate limit exceeded")
)
