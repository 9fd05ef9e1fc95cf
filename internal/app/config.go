package app

import (
	"strings"

	"github.com/phu024/elearning-rag-platform/internal/platform/envutil"
	"github.com/phu024/elearning-rag-platform/internal/platform/logger"
)

type Config struct {
	ServiceName    string
	Environment    string
	JWTSecretKey   string
	Port           int
	AllowedOrigins []string
	RedisEnabled   bool

	AdminEmail    string
	AdminPassword string
	AdminFullName string
}

func LoadConfig(log *logger.Logger) Config {
	origins := strings.Split(envutil.GetEnv("ALLOWED_ORIGINS", "", log), ",")
	cleaned := origins[:0]
	for _, o := range origins {
		if o = strings.TrimSpace(o); o != "" {
			cleaned = append(cleaned, o)
		}
	}
	return Config{
		ServiceName:    envutil.GetEnv("SERVICE_NAME", "elearning-backend", log),
		Environment:    envutil.GetEnv("ENVIRONMENT", "development", log),
		JWTSecretKey:   envutil.GetEnv("JWT_SECRET_KEY", "defaultsecret", log),
		Port:           envutil.GetEnvAsInt("PORT", 8080, log),
		AllowedOrigins: cleaned,
		RedisEnabled:   envutil.GetEnv("REDIS_ENABLED", "false", log) == "true",
		AdminEmail:     envutil.GetEnv("DEFAULT_ADMIN_EMAIL", "admin@example.com", log),
		AdminPassword:  envutil.GetEnv("DEFAULT_ADMIN_PASSWORD", "Admin@123", log),
		AdminFullName:  envutil.GetEnv("DEFAULT_ADMIN_NAME", "Platform Admin", log),
	}
}
