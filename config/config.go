package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config stores the application configuration.
// Pipeline constants (region, generated folder, timezone, language) are fixed
// at deployment time and read from the environment.
type Config struct {
	Region          string
	MinioEndpoint   string
	MinioAccessKey  string
	MinioSecretKey  string
	MinioUseSSL     bool
	Bucket          string // default bucket for commands and the record API
	GeneratedFolder string // name of the derived-data folder inside each source folder
	Timezone        string // IANA zone used to anchor comment dates
	LanguageCode    string // transcription language, e.g. "de-DE"
	MediaFormat     string // media format reported to the transcription service

	// Heuristic extraction tables. SeasonPrefixes is "prefix=season" pairs
	// separated by commas, e.g. "s2=2,s3=3". EpisodeShowToken is the show
	// name the episode number follows in the title.
	SeasonPrefixes   string
	EpisodeShowToken string

	// Transcription service endpoint.
	TranscribeURL   string
	TranscribeToken string

	ListenAddr   string
	WebhookToken string // optional bearer token required on the event webhook

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	JobLogDB   bool // record submitted transcription jobs in MySQL

	// Redis配置
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	EventGuard    bool // best-effort dedup of redelivered events via redis

	LogLevel string
	LogPath  string
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt gets an environment variable as int or returns a default value.
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// getEnvBool gets an environment variable as bool or returns a default value.
func getEnvBool(key string, fallback bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}

// Load loads configuration from environment variables (via .env file) or defaults.
func Load() *Config {
	// Attempt to load .env file. godotenv.Load() will not override existing env vars.
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found or error loading .env, relying on existing environment variables and defaults.")
	}

	return &Config{
		Region:          getEnv("REGION", "eu-central-1"),
		MinioEndpoint:   getEnv("MINIO_ENDPOINT", "127.0.0.1:9000"),
		MinioAccessKey:  getEnv("MINIO_ACCESS_KEY", ""),
		MinioSecretKey:  os.Getenv("MINIO_SECRET_KEY"),
		MinioUseSSL:     getEnvBool("MINIO_USE_SSL", false),
		Bucket:          getEnv("BUCKET", "echometa"),
		GeneratedFolder: getEnv("GENERATED_FOLDER", "generated"),
		Timezone:        getEnv("TIMEZONE", "Europe/Berlin"),
		LanguageCode:    getEnv("LANGUAGE_CODE", "de-DE"),
		MediaFormat:     getEnv("MEDIA_FORMAT", "mp3"),

		SeasonPrefixes:   getEnv("SEASON_PREFIXES", "s2=2"),
		EpisodeShowToken: getEnv("EPISODE_SHOW_TOKEN", "Tagesform"),

		TranscribeURL:   getEnv("TRANSCRIBE_URL", "http://127.0.0.1:8090"),
		TranscribeToken: os.Getenv("TRANSCRIBE_TOKEN"),

		ListenAddr:   getEnv("LISTEN_ADDR", ":8080"),
		WebhookToken: os.Getenv("WEBHOOK_TOKEN"),

		DBHost:     getEnv("DB_HOST", "127.0.0.1"),
		DBPort:     getEnv("DB_PORT", "3306"),
		DBUser:     getEnv("DB_USER", "root"),
		DBPassword: os.Getenv("DB_PASSWORD"), // For password, better not to have a hardcoded default
		DBName:     getEnv("DB_NAME", "echometa"),
		JobLogDB:   getEnvBool("JOB_LOG_DB", false),

		// Redis配置，使用默认值
		RedisHost:     getEnv("REDIS_HOST", "127.0.0.1"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""), // 默认无密码
		RedisDB:       getEnvInt("REDIS_DB", 0),     // 默认使用0号数据库
		EventGuard:    getEnvBool("EVENT_GUARD", false),

		LogLevel: getEnv("LOG_LEVEL", "info"),
		LogPath:  getEnv("LOG_PATH", ""),
	}
}

// SeasonTable parses the SeasonPrefixes option into a prefix → season map.
// Malformed pairs are skipped.
func (c *Config) SeasonTable() map[string]int {
	table := make(map[string]int)
	for _, pair := range strings.Split(c.SeasonPrefixes, ",") {
		prefix, season, ok := strings.Cut(strings.TrimSpace(pair), "=")
		if !ok {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(season))
		if err != nil {
			continue
		}
		table[strings.TrimSpace(prefix)] = n
	}
	return table
}
