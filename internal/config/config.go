package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

var (
	Env        string
	LogLevel   string
	ServerPort string

	JwtSecret string
	Issuer    string
	TokenTTL  time.Duration

	DbHost     string
	DbPort     string
	DbUser     string
	DbPassword string
	DbName     string
	DbSSLMode  string

	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioUseSSL    bool
	MinioBucket    string
	MinioPublicURL string
	MaxUploadBytes int64

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisChannel  string

	AllowedOrigins []string

	NotificationRetentionDays int
	AuditRetentionDays        int

	MaxCommentDepth    int
	CommentEditWindow  time.Duration
	MilestoneThreshold int

	ItemsPerPage      int
	ItemsPerPageAdmin int

	KubeConfig       string
	CronNamespace    string
	MaintenanceImage string
)

func LoadConfig() {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("no .env file found, using environment variables")
	}

	Env = getEnv("ENV", "production")
	LogLevel = getEnv("LOG_LEVEL", "info")
	ServerPort = getEnv("SERVER_PORT", "8080")

	JwtSecret = getEnv("JWT_SECRET", "defaultsecret")
	Issuer = getEnv("JWT_ISSUER", "komunitech")
	TokenTTL = getEnvDuration("JWT_TTL", 24*time.Hour)

	DbHost = getEnv("DB_HOST", "localhost")
	DbPort = getEnv("DB_PORT", "5432")
	DbUser = getEnv("DB_USER", "postgres")
	DbPassword = getEnv("DB_PASSWORD", "password")
	DbName = getEnv("DB_NAME", "komunitech")
	DbSSLMode = getEnv("DB_SSLMODE", "disable")

	MinioEndpoint = getEnv("MINIO_ENDPOINT", "localhost:9000")
	MinioAccessKey = getEnv("MINIO_ACCESS_KEY", "minioadmin")
	MinioSecretKey = getEnv("MINIO_SECRET_KEY", "minioadmin")
	MinioBucket = getEnv("MINIO_BUCKET", "komunitech")
	MinioUseSSL = getEnvBool("MINIO_USE_SSL", false)
	MinioPublicURL = getEnv("MINIO_PUBLIC_URL", "")
	MaxUploadBytes = int64(getEnvInt("MAX_UPLOAD_BYTES", 5*1024*1024))

	RedisAddr = getEnv("REDIS_ADDR", "")
	RedisPassword = getEnv("REDIS_PASSWORD", "")
	RedisDB = getEnvInt("REDIS_DB", 0)
	RedisChannel = getEnv("REDIS_CHANNEL", "komunitech:notifications")

	AllowedOrigins = splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000"))

	NotificationRetentionDays = getEnvInt("NOTIFICATION_RETENTION_DAYS", 30)
	AuditRetentionDays = getEnvInt("AUDIT_RETENTION_DAYS", 365)

	def := DefaultEngagement()
	MaxCommentDepth = getEnvInt("MAX_COMMENT_DEPTH", def.MaxCommentDepth)
	CommentEditWindow = getEnvDuration("COMMENT_EDIT_WINDOW", def.CommentEditWindow)
	MilestoneThreshold = getEnvInt("MILESTONE_THRESHOLD", def.MilestoneThreshold)

	ItemsPerPage = getEnvInt("ITEMS_PER_PAGE", 12)
	ItemsPerPageAdmin = getEnvInt("ITEMS_PER_PAGE_ADMIN", 20)

	KubeConfig = getEnv("KUBECONFIG", "")
	CronNamespace = getEnv("CRON_NAMESPACE", "komunitech")
	MaintenanceImage = getEnv("MAINTENANCE_IMAGE", "komunitech/maintenance:latest")
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return fallback
	}
	return v
}

func getEnvBool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(getEnv(key, ""))
	if err != nil {
		return fallback
	}
	return v
}

// getEnvDuration accepts Go durations ("15m") or a plain number of seconds.
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(raw); err == nil {
		return time.Duration(secs) * time.Second
	}
	return fallback
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
