package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config 从环境变量读取，启动时构造一次，之后只读
type Config struct {
	SecretKey string
	TokenTTL  time.Duration

	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string

	RedisAddr string // 为空则不启用 Redis
	RedisPwd  string

	AdminUsername string
	AdminPassword string

	WebOrigin string
	Port      string
}

// LoadEnv 读取 .env（若存在），仅补充尚未设置的变量
func LoadEnv() {
	_ = godotenv.Load()
}

func Load() (Config, error) {
	get := func(k, def string) string {
		v := os.Getenv(k)
		if v == "" {
			return def
		}
		return v
	}

	secret := os.Getenv("SECRET_KEY")
	if secret == "" {
		return Config{}, errors.New("SECRET_KEY is required")
	}

	ttlMin := 60
	if v := os.Getenv("ACCESS_TOKEN_EXPIRE_MINUTES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return Config{}, fmt.Errorf("invalid ACCESS_TOKEN_EXPIRE_MINUTES: %q", v)
		}
		ttlMin = n
	}

	return Config{
		SecretKey: secret,
		TokenTTL:  time.Duration(ttlMin) * time.Minute,

		DBHost:     get("DB_HOST", "127.0.0.1"),
		DBUser:     get("DB_USER", "postgres"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     get("DB_NAME", "library"),
		DBPort:     get("DB_PORT", "5432"),

		RedisAddr: os.Getenv("REDIS_ADDR"),
		RedisPwd:  os.Getenv("REDIS_PASSWORD"),

		AdminUsername: get("ADMIN_DEFAULT_USERNAME", "admin"),
		AdminPassword: get("ADMIN_DEFAULT_PASSWORD", "admin1234"),

		WebOrigin: get("WEB_ORIGIN", "http://localhost:3000"),
		Port:      get("PORT", "3001"),
	}, nil
}

// DSN 拼接 Postgres 连接串
func (c Config) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort,
	)
}
