// Package service 实现业务逻辑层
package service

import (
	"context"
	"errors"

	"github.com/haierkeys/shared-notes-service/internal/domain"
	"github.com/haierkeys/shared-notes-service/internal/dto"
	"github.com/haierkeys/shared-notes-service/pkg/app"
	"github.com/haierkeys/shared-notes-service/pkg/code"
	"github.com/haierkeys/shared-notes-service/pkg/util"

	"go.uber.org/zap"
)

// UserService 定义用户业务服务接口
type UserService interface {
	// Signup 用户注册
	Signup(ctx context.Context, params *dto.UserSignupRequest) (*dto.AuthUser, error)

	// Login 用户登录
	Login(ctx context.Context, params *dto.UserLoginRequest) (*dto.AuthUser, error)
}

type userService struct {
	userRepo     domain.UserRepository
	tokenManager app.TokenManager
	logger       *zap.Logger
}

// NewUserService 创建 UserService 实例
func NewUserService(userRepo domain.UserRepository, tokenManager app.TokenManager, logger *zap.Logger) UserService {
	return &userService{
		userRepo:     userRepo,
		tokenManager: tokenManager,
		logger:       logger,
	}
}

// issueTokens mints the access/refresh pair for an authenticated user.
// A missing signing key is a configuration failure, surfaced as internal.
func (s *userService) issueTokens(user *domain.User) (*dto.AuthUser, error) {
	accessToken, err := s.tokenManager.Generate(app.TokenKindAccess, user.UID, user.Email)
	if err != nil {
		return nil, code.ErrorServerInternal.WithDetails(err.Error())
	}
	refreshToken, err := s.tokenManager.Generate(app.TokenKindRefresh, user.UID, user.Email)
	if err != nil {
		return nil, code.ErrorServerInternal.WithDetails(err.Error())
	}
	return &dto.AuthUser{
		ID:           user.UID,
		Email:        user.Email,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// Signup 用户注册
// The pre-check gives the friendly error; the unique index on email is
// the real guarantee and maps to the same UserExistsError on the race.
func (s *userService) Signup(ctx context.Context, params *dto.UserSignupRequest) (*dto.AuthUser, error) {
	existing, err := s.userRepo.GetByEmail(ctx, params.Email)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, code.ErrorDatabase.WithDetails(err.Error())
	}
	if existing != nil {
		return nil, code.ErrorUserExists.WithMsgf("user %q already exists", params.Email)
	}

	password, err := util.GeneratePasswordHash(params.Password)
	if err != nil {
		return nil, code.ErrorServerInternal.WithDetails(err.Error())
	}

	user, err := s.userRepo.Create(ctx, &domain.User{
		Email:    params.Email,
		Password: password,
	})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, code.ErrorUserExists.WithMsgf("user %q already exists", params.Email)
		}
		return nil, code.ErrorDatabase.WithDetails(err.Error())
	}

	return s.issueTokens(user)
}

// Login 用户登录
func (s *userService) Login(ctx context.Context, params *dto.UserLoginRequest) (*dto.AuthUser, error) {
	user, err := s.userRepo.GetByEmail(ctx, params.Email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, code.ErrorUserNotFound
		}
		return nil, code.ErrorDatabase.WithDetails(err.Error())
	}

	if !util.CheckPasswordHash(user.Password, params.Password) {
		return nil, code.ErrorAuthorization
	}

	return s.issueTokens(user)
}
