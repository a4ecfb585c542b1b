package dao

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/haierkeys/shared-notes-service/internal/domain"
	"github.com/haierkeys/shared-notes-service/internal/model"

	"github.com/glebarez/sqlite"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

// DatabaseConfig database connection configuration
// DatabaseConfig 数据库连接配置
type DatabaseConfig struct {
	Type         string
	Path         string
	UserName     string
	Password     string
	Host         string
	Name         string
	Charset      string
	ParseTime    bool
	MaxIdleConns int
	MaxOpenConns int
	AutoMigrate  bool
}

// Dao wraps the gorm connection shared by the repositories.
type Dao struct {
	db     *gorm.DB
	logger *zap.Logger
}

type Option func(*Dao)

func WithLogger(lg *zap.Logger) Option {
	return func(d *Dao) {
		d.logger = lg
	}
}

func New(db *gorm.DB, opts ...Option) *Dao {
	d := &Dao{db: db, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *Dao) DB() *gorm.DB {
	return d.db
}

// AutoMigrate creates or updates every table.
func (d *Dao) AutoMigrate() error {
	return model.AutoMigrate(d.db, "")
}

func userDialector(c *DatabaseConfig) (gorm.Dialector, error) {
	switch c.Type {
	case "sqlite", "":
		if c.Path != ":memory:" && !strings.HasPrefix(c.Path, "file:") {
			if err := os.MkdirAll(filepath.Dir(c.Path), 0o755); err != nil {
				return nil, errors.Wrap(err, "create sqlite database directory")
			}
		}
		return sqlite.Open(c.Path), nil
	case "mysql":
		dsn := fmt.Sprintf("%s:%s@tcp(%s)/%s?charset=%s&parseTime=%t&loc=Local",
			c.UserName, c.Password, c.Host, c.Name, c.Charset, c.ParseTime)
		return mysql.Open(dsn), nil
	case "postgres":
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s",
			c.Host, c.UserName, c.Password, c.Name)
		return postgres.Open(dsn), nil
	}
	return nil, errors.Errorf("unsupported database type: %s", c.Type)
}

// NewDBEngine opens the database connection described by the config.
// TranslateError is enabled so unique-key violations surface as
// gorm.ErrDuplicatedKey on every supported driver.
// NewDBEngine 打开配置描述的数据库连接
func NewDBEngine(c *DatabaseConfig) (*gorm.DB, error) {
	dialector, err := userDialector(c)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		NamingStrategy: schema.NamingStrategy{
			SingularTable: true,
		},
		TranslateError: true,
	})
	if err != nil {
		return nil, errors.Wrap(err, "open database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "get sql.DB")
	}
	if c.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(c.MaxIdleConns)
	}
	if c.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(c.MaxOpenConns)
	}

	return db, nil
}

// mapError translates gorm sentinel errors to the domain vocabulary.
func mapError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return domain.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return domain.ErrDuplicate
	}
	return err
}
