package cmd

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	internalApp "github.com/haierkeys/shared-notes-service/internal/app"
	"github.com/haierkeys/shared-notes-service/internal/dao"
	"github.com/haierkeys/shared-notes-service/internal/routers"
	"github.com/haierkeys/shared-notes-service/pkg/limiter"
	"github.com/haierkeys/shared-notes-service/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// defaultSecretKeys defines the list of default secret keys to be detected
// defaultSecretKeys 定义需要检测的默认密钥列表
var defaultSecretKeys = []string{
	"shared-notes-access-key",
	"shared-notes-refresh-key",
	"",
}

// DefaultShutdownTimeout default shutdown timeout duration
// DefaultShutdownTimeout 默认关闭超时时间
const DefaultShutdownTimeout = 30 * time.Second

type Server struct {
	logger      *zap.Logger            // Logger // 日志对象
	config      *internalApp.AppConfig // App configuration (injected dependency) // 应用配置（注入的依赖）
	db          *gorm.DB               // Database connection // 数据库连接
	redisClient *redis.Client          // Rate limit counter store // 限流计数器存储
	httpServer  *http.Server
	app         *internalApp.App // App Container
}

// checkSecurityConfig checks security configuration, outputs warning if using default keys
// checkSecurityConfig 检查安全配置，如果使用默认密钥则输出警告
func checkSecurityConfig(cfg *internalApp.AppConfig, lg *zap.Logger) {
	isDefault := false
	for _, key := range defaultSecretKeys {
		if cfg.Security.AccessTokenKey == key || cfg.Security.RefreshTokenKey == key {
			isDefault = true
			break
		}
	}

	if isDefault {
		// Output to console
		// 输出到控制台
		fmt.Println()
		fmt.Println(strings.Repeat("=", 60))
		fmt.Println("⚠️  SECURITY WARNING: Using default secret key!")
		fmt.Println()
		fmt.Println("Please modify 'security.access-token-key' and")
		fmt.Println("'security.refresh-token-key' in config.yaml")
		fmt.Println("Generate a secure key with:")
		fmt.Println("  openssl rand -base64 32")
		fmt.Println(strings.Repeat("=", 60))
		fmt.Println()

		if lg != nil {
			lg.Warn("Using default secret key - please change security token keys in config.yaml")
		}
	}
}

func NewServer(runEnv *runFlags) (*Server, error) {

	// Use LoadConfig to directly load config into AppConfig
	// 使用 LoadConfig 直接加载配置到 AppConfig
	appConfig, configRealpath, err := internalApp.LoadConfig(runEnv.config)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if len(runEnv.port) > 0 {
		appConfig.Server.HttpPort = runEnv.port
	}

	if len(appConfig.Server.RunMode) > 0 {
		gin.SetMode(appConfig.Server.RunMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		config: appConfig,
	}

	// Initialize logger (using injected config)
	// 初始化日志器（使用注入的配置）
	lg, err := logger.NewLogger(logger.Config{
		Level:      appConfig.Log.Level,
		File:       appConfig.Log.File,
		Production: appConfig.Log.Production,
	})
	if err != nil {
		return nil, fmt.Errorf("initLogger: %w", err)
	}
	s.logger = lg

	// Check security configuration (using injected config)
	// 检查安全配置（使用注入的配置）
	checkSecurityConfig(appConfig, s.logger)

	// Initialize database (using injected config)
	// 初始化数据库（使用注入的配置）
	db, err := dao.NewDBEngine(&dao.DatabaseConfig{
		Type:         appConfig.Database.Type,
		Path:         appConfig.Database.Path,
		UserName:     appConfig.Database.UserName,
		Password:     appConfig.Database.Password,
		Host:         appConfig.Database.Host,
		Name:         appConfig.Database.Name,
		Charset:      appConfig.Database.Charset,
		ParseTime:    appConfig.Database.ParseTime,
		MaxIdleConns: appConfig.Database.MaxIdleConns,
		MaxOpenConns: appConfig.Database.MaxOpenConns,
		AutoMigrate:  appConfig.Database.AutoMigrate,
	})
	if err != nil {
		return nil, fmt.Errorf("initDatabase: %w", err)
	}
	s.db = db

	// Initialize rate limit counter store
	// 初始化限流计数器存储
	s.redisClient = redis.NewClient(&redis.Options{
		Addr:     appConfig.Redis.Addr,
		Password: appConfig.Redis.Password,
		DB:       appConfig.Redis.DB,
	})

	// Initialize App Container (using AppConfig directly)
	// 初始化 App Container（直接使用 AppConfig）
	app, err := internalApp.NewApp(appConfig, s.logger, db, limiter.NewRedisStore(s.redisClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create app container: %w", err)
	}
	s.app = app

	banner := `
   _____ __                        __   _   __      __
  / ___// /_  ____ _________  ____/ /  / | / /___  / /____  _____
  \__ \/ __ \/ __ ` + "`" + `/ ___/ _ \/ __  /  /  |/ / __ \/ __/ _ \/ ___/
 ___/ / / / / /_/ / /  /  __/ /_/ /  / /|  / /_/ / /_/  __(__  )
/____/_/ /_/\__,_/_/   \___/\__,_/  /_/ |_/\____/\__/\___/____/  `
	s.logger.Warn(fmt.Sprintf("%s\n\n%s v%s\nGit: %s\nBuildTime: %s\n", banner, internalApp.Name, internalApp.Version, internalApp.GitTag, internalApp.BuildTime))

	s.logger.Warn("config loaded", zap.String("path", configRealpath))

	// Start HTTP API server
	// 启动 HTTP API 服务器
	s.logger.Warn("api_router", zap.String("config.server.HttpPort", appConfig.Server.HttpPort))
	s.httpServer = &http.Server{
		Addr:           appConfig.Server.HttpPort,
		Handler:        routers.NewRouter(s.app),
		ReadTimeout:    time.Duration(appConfig.Server.ReadTimeout) * time.Second,
		WriteTimeout:   time.Duration(appConfig.Server.WriteTimeout) * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Error("api service err", zap.Error(err))
		}
	}()

	return s, nil
}

// Shutdown stops the HTTP server, then releases the container resources.
// Shutdown 停止 HTTP 服务器并释放容器资源
func (s *Server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), DefaultShutdownTimeout)
	defer cancel()

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			s.logger.Error("api service shutdown error", zap.Error(err))
		}
	}

	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			s.logger.Error("redis client close error", zap.Error(err))
		}
	}

	if s.app != nil {
		if err := s.app.Close(); err != nil {
			return err
		}
	}
	return nil
}

// GetApp gets App Container
// GetApp 获取 App Container
func (s *Server) GetApp() *internalApp.App {
	return s.app
}

// GetConfig gets app configuration
// GetConfig 获取应用配置
func (s *Server) GetConfig() *internalApp.AppConfig {
	return s.config
}
