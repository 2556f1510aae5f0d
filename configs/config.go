package configs

import (
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// AppConfig holds the application configuration.
// It's populated once by LoadConfig.
var AppConfig Configuration
var once sync.Once

// Configuration defines the structure for application settings.
type Configuration struct {
	JWTSecret       string
	TokenTTL        time.Duration
	ServerPort      string
	GinMode         string
	DBDriver        string // sqlite 或 mysql
	SQLitePath      string
	MySQLDSN        string
	SessionStore    string // memory 或 redis
	RedisAddr       string
	RedisPassword   string
	LogLevel        string
	LogDir          string
	SiteBaseURL     string // 用于生成 Atom 订阅中的链接
	LoginRatePerMin int
}

const (
	defaultJWTSecret       = "freeboard"      // Default JWT secret, used if env var is not set.
	envJWTSecretKey        = "JWT_SECRET_KEY" // Environment variable name for the JWT secret.
	defaultTokenTTLHours   = 24
	envTokenTTLHoursKey    = "TOKEN_TTL_HOURS"
	defaultServerPort      = "8080"        // Default server port.
	envServerPortKey       = "SERVER_PORT" // Environment variable name for the server port.
	defaultGinMode         = "release"
	envGinModeKey          = "GIN_MODE"
	defaultDBDriver        = "sqlite"
	envDBDriverKey         = "DB_DRIVER"
	defaultSQLitePath      = "data/freeboard.db"
	envSQLitePathKey       = "SQLITE_DB_PATH"
	envMySQLDSNKey         = "MYSQL_DSN"
	defaultSessionStore    = "memory"
	envSessionStoreKey     = "SESSION_STORE"
	defaultRedisAddr       = "127.0.0.1:6379"
	envRedisAddrKey        = "REDIS_ADDR"
	envRedisPasswordKey    = "REDIS_PASSWORD"
	defaultLogLevel        = "info"
	envLogLevelKey         = "LOG_LEVEL"
	defaultLogDir          = "logs"
	envLogDirKey           = "LOG_DIR"
	defaultSiteBaseURL     = "http://localhost:8080" // 默认站点基础URL
	envSiteBaseURLKey      = "SITE_BASE_URL"
	defaultLoginRatePerMin = 10
	envLoginRatePerMinKey  = "LOGIN_RATE_PER_MIN"
)

// LoadConfig loads configuration from environment variables or defaults.
// It should be called once at application startup.
func LoadConfig() {
	once.Do(func() {
		jwtSecret := os.Getenv(envJWTSecretKey)
		if jwtSecret == "" {
			jwtSecret = defaultJWTSecret
			logrus.Warnf("%s 环境变量未设置。正在使用默认的JWT密钥。请在生产环境中设置此变量以保证安全。", envJWTSecretKey)
		}

		AppConfig = Configuration{
			JWTSecret:       jwtSecret,
			TokenTTL:        time.Duration(getInt(envTokenTTLHoursKey, defaultTokenTTLHours)) * time.Hour,
			ServerPort:      getString(envServerPortKey, defaultServerPort),
			GinMode:         getString(envGinModeKey, defaultGinMode),
			DBDriver:        getString(envDBDriverKey, defaultDBDriver),
			SQLitePath:      getString(envSQLitePathKey, defaultSQLitePath),
			MySQLDSN:        os.Getenv(envMySQLDSNKey),
			SessionStore:    getString(envSessionStoreKey, defaultSessionStore),
			RedisAddr:       getString(envRedisAddrKey, defaultRedisAddr),
			RedisPassword:   os.Getenv(envRedisPasswordKey),
			LogLevel:        getString(envLogLevelKey, defaultLogLevel),
			LogDir:          getString(envLogDirKey, defaultLogDir),
			SiteBaseURL:     getString(envSiteBaseURLKey, defaultSiteBaseURL),
			LoginRatePerMin: getInt(envLoginRatePerMinKey, defaultLoginRatePerMin),
		}

		logrus.Info("应用配置已加载。")
	})
}

func getString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	logrus.Debugf("%s 环境变量未设置。正在使用默认值 %s。", key, fallback)
	return fallback
}

func getInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		logrus.Warnf("%s 环境变量的值 %q 无效，使用默认值 %d。", key, v, fallback)
		return fallback
	}
	return n
}
