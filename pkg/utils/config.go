package utils

import (
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Session   SessionConfig
	OAuth     OAuthConfig
	Mail      MailConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
}

type AppConfig struct {
	Name    string
	Env     string
	Port    string
	Debug   bool
	LogPath string
	BaseURL string
}

func (a AppConfig) IsProduction() bool {
	return a.Env == "production"
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
	MaxConns int32
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type SessionConfig struct {
	CookieName  string
	ExpiryHours int
}

type OAuthConfig struct {
	GoogleClientID     string
	GoogleClientSecret string
	WebCallbackURL     string
	NativeCallbackURL  string
	StateTTLMinutes    int
}

type MailConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

type CORSConfig struct {
	// Comma-separated allow-list, e.g. "https://rythmons.fr,https://app.rythmons.fr"
	Origins []string
}

type RateLimitConfig struct {
	AuthPerMinute int
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("PORT", "3000")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("SESSION_COOKIE_NAME", "rythmons_session")
	viper.SetDefault("SESSION_EXPIRY_HOURS", 24*7)
	viper.SetDefault("OAUTH_STATE_TTL_MINUTES", 10)
	viper.SetDefault("RATE_LIMIT_AUTH_PER_MINUTE", 30)

	if err := viper.ReadInConfig(); err != nil {
		// Missing .env is fine when everything comes from the environment
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && !strings.Contains(err.Error(), "no such file") {
			return nil, err
		}
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:    viper.GetString("APP_NAME"),
			Env:     viper.GetString("APP_ENV"),
			Port:    viper.GetString("PORT"),
			Debug:   viper.GetBool("DEBUG"),
			LogPath: viper.GetString("LOG_PATH"),
			BaseURL: strings.TrimRight(viper.GetString("BASE_URL"), "/"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			SSLMode:  viper.GetString("DB_SSLMODE"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
		},
		Redis: RedisConfig{
			Addr:     viper.GetString("REDIS_ADDR"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Session: SessionConfig{
			CookieName:  viper.GetString("SESSION_COOKIE_NAME"),
			ExpiryHours: viper.GetInt("SESSION_EXPIRY_HOURS"),
		},
		OAuth: OAuthConfig{
			GoogleClientID:     viper.GetString("GOOGLE_CLIENT_ID"),
			GoogleClientSecret: viper.GetString("GOOGLE_CLIENT_SECRET"),
			WebCallbackURL:     viper.GetString("OAUTH_WEB_CALLBACK_URL"),
			NativeCallbackURL:  viper.GetString("OAUTH_NATIVE_CALLBACK_URL"),
			StateTTLMinutes:    viper.GetInt("OAUTH_STATE_TTL_MINUTES"),
		},
		Mail: MailConfig{
			Host:     viper.GetString("SMTP_HOST"),
			Port:     viper.GetInt("SMTP_PORT"),
			User:     viper.GetString("SMTP_USER"),
			Password: viper.GetString("SMTP_PASS"),
			From:     viper.GetString("MAIL_FROM"),
		},
		CORS: CORSConfig{
			Origins: SplitOrigins(viper.GetString("CORS_ORIGIN")),
		},
		RateLimit: RateLimitConfig{
			AuthPerMinute: viper.GetInt("RATE_LIMIT_AUTH_PER_MINUTE"),
		},
	}

	return config, nil
}

// SplitOrigins parses a comma-separated origin list, dropping empty entries.
func SplitOrigins(raw string) []string {
	var origins []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
