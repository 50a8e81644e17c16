package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL       string
	Port              string
	IsProduction      bool
	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string
	// Refresh Token Config
	RefreshTokenExpiryDuration time.Duration
	RefreshTokenCookieName     string
	RefreshTokenCookiePath     string

	// OTP login flow
	OTPLength         int
	OTPExpiryDuration time.Duration
	OTPMaxAttempts    int

	// Rate limiting for the auth endpoints, in ulule/limiter format ("10-M")
	AuthRateLimit string

	// Bootstrap user seeded at startup when the users table is empty
	BootstrapUsername string
	BootstrapEmail    string
	BootstrapPassword string

	CORSAllowedOrigins []string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "1h")
	viper.SetDefault("JWT_ISSUER", "ledger-backend")
	viper.SetDefault("REFRESH_TOKEN_EXPIRY_DURATION", "168h")
	viper.SetDefault("REFRESH_TOKEN_COOKIE_NAME", "rtid")
	viper.SetDefault("REFRESH_TOKEN_COOKIE_PATH", "/auth")
	viper.SetDefault("OTP_LENGTH", 6)
	viper.SetDefault("OTP_EXPIRY_DURATION", "5m")
	viper.SetDefault("OTP_MAX_ATTEMPTS", 5)
	viper.SetDefault("AUTH_RATE_LIMIT", "10-M")
	viper.SetDefault("BOOTSTRAP_USERNAME", "")
	viper.SetDefault("BOOTSTRAP_EMAIL", "")
	viper.SetDefault("BOOTSTRAP_PASSWORD", "")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"})

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiryDuration, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		jwtExpiryDuration = time.Hour
		log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiryDuration.String())
	}
	cfg.JWTExpiryDuration = jwtExpiryDuration
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	refreshTokenExpiryStr := viper.GetString("REFRESH_TOKEN_EXPIRY_DURATION")
	refreshTokenExpiryDuration, err := time.ParseDuration(refreshTokenExpiryStr)
	if err != nil {
		refreshTokenExpiryDuration = time.Hour * 24 * 7
		log.Printf("Warning: Invalid value for REFRESH_TOKEN_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", refreshTokenExpiryStr, refreshTokenExpiryDuration.String())
	}
	cfg.RefreshTokenExpiryDuration = refreshTokenExpiryDuration
	cfg.RefreshTokenCookieName = viper.GetString("REFRESH_TOKEN_COOKIE_NAME")
	cfg.RefreshTokenCookiePath = viper.GetString("REFRESH_TOKEN_COOKIE_PATH")

	cfg.OTPLength = viper.GetInt("OTP_LENGTH")
	if cfg.OTPLength < 4 || cfg.OTPLength > 10 {
		log.Printf("Warning: OTP_LENGTH %d out of range. Defaulting to 6.\n", cfg.OTPLength)
		cfg.OTPLength = 6
	}

	otpExpiryStr := viper.GetString("OTP_EXPIRY_DURATION")
	otpExpiryDuration, err := time.ParseDuration(otpExpiryStr)
	if err != nil {
		otpExpiryDuration = 5 * time.Minute
		log.Printf("Warning: Invalid value for OTP_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", otpExpiryStr, otpExpiryDuration.String())
	}
	cfg.OTPExpiryDuration = otpExpiryDuration

	cfg.OTPMaxAttempts = viper.GetInt("OTP_MAX_ATTEMPTS")
	if cfg.OTPMaxAttempts <= 0 {
		cfg.OTPMaxAttempts = 5
	}

	cfg.AuthRateLimit = viper.GetString("AUTH_RATE_LIMIT")

	cfg.BootstrapUsername = viper.GetString("BOOTSTRAP_USERNAME")
	cfg.BootstrapEmail = viper.GetString("BOOTSTRAP_EMAIL")
	cfg.BootstrapPassword = viper.GetString("BOOTSTRAP_PASSWORD")
	if cfg.BootstrapUsername == "" || cfg.BootstrapPassword == "" {
		log.Println("Warning: BOOTSTRAP_USERNAME/BOOTSTRAP_PASSWORD not set. No bootstrap user will be created.")
	}

	cfg.CORSAllowedOrigins = viper.GetStringSlice("CORS_ALLOWED_ORIGINS")

	return cfg, nil
}
