// Package config loads runtime settings from an optional .env file, an
// optional config file and the environment, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config keys. Each is also read from the environment variable of the same
// name in upper case.
const (
	KeyPort              = "port"
	KeyDatabasePath      = "database_path"
	KeyJWTSecret         = "jwt_secret"
	KeyJWTTTL            = "jwt_ttl"
	KeyCookieSecure      = "cookie_secure"
	KeyTrustProxyHeaders = "trust_proxy_headers"
	KeyEmailHeader       = "email_header"
	KeyNameHeader        = "name_header"
	KeyAvatarHeader      = "avatar_header"
	KeySignInRate        = "signin_rate"
	KeySignInBurst       = "signin_burst"
	KeyLogLevel          = "log_level"
	KeyEnvironment       = "app_env"
	KeyOTLPEndpoint      = "otel_exporter_otlp_endpoint"
)

const minJWTSecretLen = 32

// Config holds all runtime settings.
type Config struct {
	Port         string
	DatabasePath string

	JWTSecret    string
	JWTTTL       time.Duration
	CookieSecure bool

	TrustProxyHeaders bool
	EmailHeader       string
	NameHeader        string
	AvatarHeader      string

	SignInRate  float64
	SignInBurst int

	LogLevel     slog.Level
	Environment  string
	OTLPEndpoint string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyPort, "8080")
	v.SetDefault(KeyDatabasePath, "wish-tracker.db")
	v.SetDefault(KeyJWTTTL, 24*time.Hour)
	// Secure cookies unless explicitly disabled for local development.
	v.SetDefault(KeyCookieSecure, true)
	v.SetDefault(KeyTrustProxyHeaders, false)
	v.SetDefault(KeyEmailHeader, "X-Forwarded-Email")
	v.SetDefault(KeyNameHeader, "X-Forwarded-Preferred-Username")
	v.SetDefault(KeyAvatarHeader, "X-Forwarded-Avatar")
	v.SetDefault(KeySignInRate, 0.5)
	v.SetDefault(KeySignInBurst, 10)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyEnvironment, "dev")
	v.SetDefault(KeyOTLPEndpoint, "")
}

// Load reads configuration. configFile may be empty, in which case
// wishtracker.{yaml,toml,json} in the working directory is used if present.
func Load(configFile string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("wishtracker")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Port:              v.GetString(KeyPort),
		DatabasePath:      v.GetString(KeyDatabasePath),
		JWTSecret:         v.GetString(KeyJWTSecret),
		JWTTTL:            v.GetDuration(KeyJWTTTL),
		CookieSecure:      v.GetBool(KeyCookieSecure),
		TrustProxyHeaders: v.GetBool(KeyTrustProxyHeaders),
		EmailHeader:       v.GetString(KeyEmailHeader),
		NameHeader:        v.GetString(KeyNameHeader),
		AvatarHeader:      v.GetString(KeyAvatarHeader),
		SignInRate:        v.GetFloat64(KeySignInRate),
		SignInBurst:       v.GetInt(KeySignInBurst),
		Environment:       v.GetString(KeyEnvironment),
		OTLPEndpoint:      v.GetString(KeyOTLPEndpoint),
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(v.GetString(KeyLogLevel))); err != nil {
		return nil, fmt.Errorf("%s: %w", KeyLogLevel, err)
	}
	return cfg, nil
}

// Validate checks the settings the server cannot run without.
func (c *Config) Validate() error {
	var errs []error
	if c.Port == "" {
		errs = append(errs, errors.New("PORT must not be empty"))
	}
	if c.DatabasePath == "" {
		errs = append(errs, errors.New("DATABASE_PATH must not be empty"))
	}
	switch {
	case c.JWTSecret == "":
		errs = append(errs, errors.New("JWT_SECRET environment variable is required"))
	case len(c.JWTSecret) < minJWTSecretLen:
		errs = append(errs, fmt.Errorf("JWT_SECRET must be at least %d characters for HMAC-SHA256 security", minJWTSecretLen))
	}
	if c.JWTTTL <= 0 {
		errs = append(errs, errors.New("JWT_TTL must be positive"))
	}
	if c.TrustProxyHeaders && strings.TrimSpace(c.EmailHeader) == "" {
		errs = append(errs, errors.New("EMAIL_HEADER is required when TRUST_PROXY_HEADERS is set"))
	}
	if c.SignInRate < 0 {
		errs = append(errs, errors.New("SIGNIN_RATE must not be negative"))
	}
	if c.SignInBurst < 1 {
		errs = append(errs, errors.New("SIGNIN_BURST must be at least 1"))
	}
	return errors.Join(errs...)
}
