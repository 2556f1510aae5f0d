package db

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/freeboard/configs"
	"github.com/freeboard/internal/logging"
)

var gormDB *gorm.DB

const (
	DriverSQLite = "sqlite"
	DriverMySQL  = "mysql"
)

// InitDB 按 configs.AppConfig 初始化 GORM 数据库连接
// sqlite 文件路径通过 SQLITE_DB_PATH 指定，mysql 连接串通过 MYSQL_DSN 指定
func InitDB() {
	cfg := configs.AppConfig
	log := logging.GetSystemLogger()

	dsn := cfg.MySQLDSN
	if cfg.DBDriver != DriverMySQL {
		dsn = cfg.SQLitePath
		// 确保数据库文件所在的目录存在
		dbDir := filepath.Dir(dsn)
		if _, err := os.Stat(dbDir); os.IsNotExist(err) {
			log.Infof("Database directory %s does not exist, creating it...", dbDir)
			if mkErr := os.MkdirAll(dbDir, 0755); mkErr != nil {
				log.Fatalf("Failed to create database directory %s: %v", dbDir, mkErr)
			}
		}
		dsn += "?_busy_timeout=5000&_foreign_keys=on"
	}

	var err error
	if gormDB, err = Open(cfg.DBDriver, dsn); err != nil {
		log.Fatalf("Failed to connect to %s database: %v", cfg.DBDriver, err)
	}
	log.Infof("Successfully connected to %s database using GORM", cfg.DBDriver)
}

// Open 创建一个 GORM 连接，SQL 日志写入 sql logger
func Open(driver, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case DriverMySQL:
		if dsn == "" {
			return nil, errors.New("mysql dsn is empty")
		}
		dialector = mysql.New(mysql.Config{DSN: dsn, DefaultStringSize: 256})
	case DriverSQLite, "":
		dialector = sqlite.Open(dsn)
	default:
		return nil, errors.Errorf("unsupported db driver: %s", driver)
	}

	newLogger := logger.New(
		logging.GetSqlLogger(),
		logger.Config{
			SlowThreshold:             time.Second, // 慢 SQL 阈值
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true, // 忽略ErrRecordNotFound（记录未找到）错误
			Colorful:                  false,
		},
	)

	client, err := gorm.Open(dialector, &gorm.Config{
		Logger: newLogger,
		// 唯一约束冲突翻译为 gorm.ErrDuplicatedKey
		TranslateError: true,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", driver)
	}

	sqlDB, err := client.DB()
	if err != nil {
		return nil, errors.Wrap(err, "get underlying sql.DB")
	}
	if driver == DriverMySQL {
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(100)
	} else {
		// sqlite 同一时刻只允许一个写事务
		sqlDB.SetMaxIdleConns(1)
		sqlDB.SetMaxOpenConns(1)
	}
	sqlDB.SetConnMaxLifetime(time.Hour)

	return client, nil
}

// GetDB 返回 GORM 数据库实例
func GetDB() *gorm.DB {
	if gormDB == nil {
		logging.GetSystemLogger().Fatal("Database not initialized. Call InitDB first.")
	}
	return gormDB
}

// CloseDB 关闭 GORM 数据库连接 (通常在应用退出时调用)
func CloseDB() {
	if gormDB == nil {
		return
	}
	log := logging.GetSystemLogger()
	sqlDB, err := gormDB.DB()
	if err != nil {
		log.Errorf("Error getting underlying sql.DB for closing: %v", err)
		return
	}
	if err := sqlDB.Close(); err != nil {
		log.Errorf("Error closing database: %v", err)
	}
	log.Info("Database connection closed.")
}

// IsUniqueViolation 判断是否为唯一约束冲突
// 开启 TranslateError 后 sqlite / mysql 驱动都会返回 gorm.ErrDuplicatedKey，保留字符串匹配兜底
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate entry") || strings.Contains(msg, "duplicate key")
}
