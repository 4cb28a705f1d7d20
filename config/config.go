package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shegacafe/cafe-app/utils"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Config struct {
	Port     string
	GinMode  string
	LogLevel string

	DBDriver string
	DBDSN    string

	JWTSecret string
	JWTTTL    time.Duration

	CORSOrigin string
	SeedData   bool

	RateLimitRPS   float64
	RateLimitBurst int

	KafkaBrokers []string
	KafkaTopic   string

	RabbitURL      string
	RabbitExchange string
}

// Load reads .env (when present) and the process environment.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		utils.InfoLogger.Debug(".env file not found, using environment only")
	}

	return Config{
		Port:           getenv("PORT", "8080"),
		GinMode:        getenv("GIN_MODE", ""),
		LogLevel:       getenv("LOG_LEVEL", "info"),
		DBDriver:       strings.ToLower(getenv("DB_DRIVER", "sqlite")),
		DBDSN:          getenv("DB_DSN", "cafe.db"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		JWTTTL:         getDuration("JWT_TTL", 24*time.Hour),
		CORSOrigin:     getenv("CORS_ORIGIN", "*"),
		SeedData:       getBool("SEED_DATA", true),
		RateLimitRPS:   getFloat("RATE_LIMIT_RPS", 20),
		RateLimitBurst: getInt("RATE_LIMIT_BURST", 40),
		KafkaBrokers:   splitList(os.Getenv("KAFKA_BROKERS")),
		KafkaTopic:     getenv("KAFKA_TOPIC", "cafe.orders"),
		RabbitURL:      os.Getenv("RABBITMQ_URL"),
		RabbitExchange: getenv("RABBITMQ_EXCHANGE", "cafe.orders"),
	}
}

// InitDB opens the database for the configured driver.
func InitDB(cfg Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case "sqlite":
		dialector = sqlite.Open(cfg.DBDSN)
	case "mysql":
		dialector = mysql.Open(cfg.DBDSN)
	case "postgres":
		dialector = postgres.Open(cfg.DBDSN)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}

	logLevel := logger.Warn
	if cfg.GinMode == "release" {
		logLevel = logger.Error
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:  logger.Default.LogMode(logLevel),
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.DBDriver, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}
	if cfg.DBDriver == "sqlite" {
		// sqlite serialises writers anyway
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(20)
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
	}

	utils.InfoLogger.WithField("driver", cfg.DBDriver).Info("database connected")
	return db, nil
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getBool(k string, def bool) bool {
	v, err := strconv.ParseBool(os.Getenv(k))
	if err != nil {
		return def
	}
	return v
}

func getInt(k string, def int) int {
	v, err := strconv.Atoi(os.Getenv(k))
	if err != nil {
		return def
	}
	return v
}

func getFloat(k string, def float64) float64 {
	v, err := strconv.ParseFloat(os.Getenv(k), 64)
	if err != nil {
		return def
	}
	return v
}

func getDuration(k string, def time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(k))
	if err != nil {
		return def
	}
	return v
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
