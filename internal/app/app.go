package app

import (
	"fmt"

	"github.com/haierkeys/shared-notes-service/internal/dao"
	"github.com/haierkeys/shared-notes-service/internal/domain"
	"github.com/haierkeys/shared-notes-service/internal/service"
	pkgapp "github.com/haierkeys/shared-notes-service/pkg/app"
	"github.com/haierkeys/shared-notes-service/pkg/limiter"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// App 应用容器，封装所有依赖和服务
type App struct {
	// 基础设施（注入的依赖）
	config *AppConfig
	logger *zap.Logger
	DB     *gorm.DB
	Dao    *dao.Dao

	// Repository 层
	UserRepo  domain.UserRepository
	NoteRepo  domain.NoteRepository
	GrantRepo domain.GrantRepository

	// Service 层
	UserService service.UserService
	NoteService service.NoteService

	// 基础设施组件
	TokenManager pkgapp.TokenManager
	Limiter      *limiter.Limiter
}

// NewApp 创建应用容器实例
// 初始化所有依赖并进行依赖注入
// cfg: 应用配置（必须）
// logger: zap 日志器（必须）
// db: 数据库连接（必须）
// limiterStore: 限流计数器存储（必须）
func NewApp(cfg *AppConfig, logger *zap.Logger, db *gorm.DB, limiterStore limiter.Store) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if db == nil {
		return nil, fmt.Errorf("database is required")
	}
	if limiterStore == nil {
		return nil, fmt.Errorf("limiter store is required")
	}

	a := &App{
		config: cfg,
		logger: logger,
		DB:     db,
	}

	// 初始化 DAO（使用依赖注入）
	a.Dao = dao.New(db, dao.WithLogger(logger))

	if cfg.Database.AutoMigrate {
		if err := a.Dao.AutoMigrate(); err != nil {
			return nil, fmt.Errorf("auto migrate: %w", err)
		}
	}

	// 初始化 TokenManager
	a.TokenManager = pkgapp.NewTokenManager(pkgapp.TokenConfig{
		AccessSecretKey:  cfg.Security.AccessTokenKey,
		RefreshSecretKey: cfg.Security.RefreshTokenKey,
		AccessExpiry:     cfg.GetAccessTokenExpiry(),
		RefreshExpiry:    cfg.GetRefreshTokenExpiry(),
		Issuer:           pkgapp.DefaultTokenIssuer,
	})

	// 初始化限流器（固定窗口计数存于外部 TTL 存储）
	a.Limiter = limiter.New(limiterStore, cfg.GetLimiterConfig())

	// 初始化 Repository 层
	a.UserRepo = dao.NewUserRepository(a.Dao)
	a.NoteRepo = dao.NewNoteRepository(a.Dao)
	a.GrantRepo = dao.NewGrantRepository(a.Dao)

	// 初始化 Service 层（依赖注入）
	a.UserService = service.NewUserService(a.UserRepo, a.TokenManager, logger)
	a.NoteService = service.NewNoteService(a.NoteRepo, a.GrantRepo, a.UserRepo, logger)

	logger.Info("App container initialized successfully")

	return a, nil
}

// Close 释放应用容器持有的资源
func (a *App) Close() error {
	if a.DB != nil {
		sqlDB, err := a.DB.DB()
		if err != nil {
			return fmt.Errorf("failed to get sql.DB: %w", err)
		}
		if err := sqlDB.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
		a.logger.Info("Database connection closed")
	}
	return nil
}

// Config 获取应用配置
func (a *App) Config() *AppConfig {
	return a.config
}

// Logger 获取日志器
func (a *App) Logger() *zap.Logger {
	return a.logger
}
