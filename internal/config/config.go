package config

import (
	"fmt"
	"os"
	"strconv"

	_ "github.com/joho/godotenv/autoload"
	redis "github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Config is loaded from the environment, with a .env file autoloaded when
// present.
type Config struct {
	// DbProvider is "postgres" or "sqlite".
	DbProvider string
	DbHost     string
	DbPort     string
	DbUser     string
	DbPassword string
	DbName     string
	// SqlitePath is the database file used by the sqlite provider.
	SqlitePath string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

func LoadConfig() Config {
	return Config{
		DbProvider: getEnv("DB_PROVIDER", "sqlite"),
		DbHost:     getEnv("DB_HOST", "localhost"),
		DbPort:     getEnv("DB_PORT", "5432"),
		DbUser:     getEnv("DB_USER", "postgres"),
		DbPassword: getEnv("DB_PASSWORD", ""),
		DbName:     getEnv("DB_NAME", "blog"),
		SqlitePath: getEnv("SQLITE_PATH", "blog.db"),

		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvAsInt("REDIS_DB", 0),
	}
}

// GetDb opens the configured database connection.
func GetDb(cnf Config) *gorm.DB {
	var (
		db  *gorm.DB
		err error
	)
	switch cnf.DbProvider {
	case "postgres":
		dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			cnf.DbHost, cnf.DbPort, cnf.DbUser, cnf.DbPassword, cnf.DbName)
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	case "sqlite":
		db, err = gorm.Open(sqlite.Open(cnf.SqlitePath), &gorm.Config{})
	default:
		logrus.Fatalf("unknown db provider: %s", cnf.DbProvider)
	}
	if err != nil {
		logrus.Fatalf("error connecting to the database: %v", err)
	}
	return db
}

// GetRedis opens the configured redis connection.
func GetRedis(cnf Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cnf.RedisAddr,
		Password: cnf.RedisPassword,
		DB:       cnf.RedisDB,
	})
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		logrus.Warnf("invalid value for %s, using default %d", key, fallback)
		return fallback
	}
	return n
}
