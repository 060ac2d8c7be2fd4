// Package config handles configuration for the authgate server,
// including defaults, environment variables, and command-line flags.
package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"
)

// Environment names recognized by the server.
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Config holds runtime settings for the authgate server.
//
// The struct is built once at process start and passed by reference
// into every component that needs it; nothing reads ambient globals.
//
// Fields:
//   - Address: bind address for the HTTP endpoint.
//   - DatabasePath: path to the SQLite database file.
//   - JWTSecret: HMAC secret for signing session JWTs (HS256).
//   - JWTExpire: session token lifetime.
//   - CookieExpire: session cookie lifetime, independent of JWTExpire.
//   - ResetTokenValidity: password reset token lifetime.
//   - DefaultProfilePicture: URL assigned to new users without an avatar.
//   - Environment: "development" or "production"; production turns on Secure cookies.
type Config struct {
	Address               string
	DatabasePath          string
	JWTSecret             string
	JWTExpire             time.Duration
	CookieExpire          time.Duration
	ResetTokenValidity    time.Duration
	DefaultProfilePicture string
	Environment           string
}

// LoadDefaults populates Config with sensible development defaults.
// NOTE: These values are insecure for production and should be overridden.
func (c *Config) LoadDefaults() {
	c.Address = ":8080"
	c.DatabasePath = "authgate.db"
	c.JWTSecret = "secretKey"
	c.JWTExpire = 24 * time.Hour
	c.CookieExpire = 24 * time.Hour
	c.ResetTokenValidity = 10 * time.Minute
	c.DefaultProfilePicture = "https://i.stack.imgur.com/l60Hf.png"
	c.Environment = EnvDevelopment
}

// Production reports whether the server runs in production mode
func (c *Config) Production() bool {
	return c.Environment == EnvProduction
}

// Validate проверяет согласованность итоговой конфигурации
func (c *Config) Validate() error {
	if c.Address == "" {
		return fmt.Errorf("address cannot be empty")
	}
	if c.DatabasePath == "" {
		return fmt.Errorf("database path cannot be empty")
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("jwt secret cannot be empty")
	}
	if c.Environment != EnvDevelopment && c.Environment != EnvProduction {
		return fmt.Errorf("unknown environment: %q", c.Environment)
	}
	return nil
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from environment variables and finally from command-line flags.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// parseEnv populates selected Config fields from environment variables.
//
// Supported variables:
//
//	ADDRESS                  bind address (e.g. ":8080")
//	DATABASE_PATH            SQLite database file
//	JWT_SECRET               JWT HMAC secret
//	JWT_EXPIRE_HOURS         session token validity, hours
//	COOKIE_EXPIRE_HOURS      session cookie validity, hours
//	RESET_TOKEN_VALIDITY     reset token validity, seconds
//	DEFAULT_PROFILE_PICTURE  avatar URL for new users
//	ENVIRONMENT              "development" | "production"
func parseEnv(cfg *Config) error {
	if v := os.Getenv("ADDRESS"); v != "" {
		cfg.Address = v
	}
	if v := os.Getenv("DATABASE_PATH"); v != "" {
		cfg.DatabasePath = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.JWTSecret = v
	}
	if v := os.Getenv("JWT_EXPIRE_HOURS"); v != "" {
		hours, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid JWT_EXPIRE_HOURS: %w", err)
		}
		cfg.JWTExpire = time.Duration(hours) * time.Hour
	}
	if v := os.Getenv("COOKIE_EXPIRE_HOURS"); v != "" {
		hours, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid COOKIE_EXPIRE_HOURS: %w", err)
		}
		cfg.CookieExpire = time.Duration(hours) * time.Hour
	}
	if v := os.Getenv("RESET_TOKEN_VALIDITY"); v != "" {
		seconds, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid RESET_TOKEN_VALIDITY: %w", err)
		}
		cfg.ResetTokenValidity = time.Duration(seconds) * time.Second
	}
	if v := os.Getenv("DEFAULT_PROFILE_PICTURE"); v != "" {
		cfg.DefaultProfilePicture = v
	}
	if v := os.Getenv("ENVIRONMENT"); v != "" {
		cfg.Environment = v
	}
	return nil
}

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   bind address (e.g. ":8080")
//	-d string   SQLite database path
//	-s string   JWT HMAC secret
//	-t int      session token validity, hours
//	-c int      session cookie validity, hours
//	-r int      reset token validity, seconds
//	-p string   default profile picture URL
//	-e string   environment name
func parseFlags(cfg *Config, args []string) error {
	fs := flag.NewFlagSet("authgate-server", flag.ContinueOnError)

	fs.StringVar(&cfg.Address, "a", cfg.Address, "address and port to run server")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path to SQLite database")
	fs.StringVar(&cfg.JWTSecret, "s", cfg.JWTSecret, "JWT secret key")

	jwtExpireHours := fs.Int("t", int(cfg.JWTExpire.Hours()), "session token validity (in hours)")
	cookieExpireHours := fs.Int("c", int(cfg.CookieExpire.Hours()), "session cookie validity (in hours)")
	resetTokenValidity := fs.Int("r", int(cfg.ResetTokenValidity.Seconds()), "reset token validity (in seconds)")

	fs.StringVar(&cfg.DefaultProfilePicture, "p", cfg.DefaultProfilePicture, "default profile picture URL")
	fs.StringVar(&cfg.Environment, "e", cfg.Environment, "environment (development|production)")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("failed to parse flags: %w", err)
	}

	cfg.JWTExpire = time.Duration(*jwtExpireHours) * time.Hour
	cfg.CookieExpire = time.Duration(*cookieExpireHours) * time.Hour
	cfg.ResetTokenValidity = time.Duration(*resetTokenValidity) * time.Second

	return nil
}
