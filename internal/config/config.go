package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const defaultConfigPath = "config/config.yml"

type AppConfig struct {
	Port            int    `yaml:"port"`
	GinMode         string `yaml:"gin_mode"`
	Debug           bool   `yaml:"debug"`
	ShutdownTimeout string `yaml:"shutdown_timeout"`
	JanitorInterval string `yaml:"janitor_interval"`
	ClientURL       string `yaml:"client_url"`
}

type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type JWTConfig struct {
	Secret        string `yaml:"secret"`
	RefreshSecret string `yaml:"refresh_secret"`
	Issuer        string `yaml:"issuer"`
	AccessTTL     string `yaml:"access_ttl"`
	RefreshTTL    string `yaml:"refresh_ttl"`
}

type OTPConfig struct {
	TTL    string `yaml:"ttl"`
	Length int    `yaml:"length"`
}

type PendingConfig struct {
	Secret string `yaml:"secret"`
}

type PasswordConfig struct {
	BcryptCost int `yaml:"bcrypt_cost"`
}

type EmailConfig struct {
	Provider      string `yaml:"provider"` // "smtp", "postmark" or "log"
	From          string `yaml:"from"`
	Host          string `yaml:"host"`
	Port          int    `yaml:"port"`
	Username      string `yaml:"username"`
	Password      string `yaml:"password"`
	PostmarkToken string `yaml:"postmark_token"`
}

type GoogleConfig struct {
	ClientID     string `yaml:"client_id"`
	ClientSecret string `yaml:"client_secret"`
	CallbackURL  string `yaml:"callback_url"`
	AuthURL      string `yaml:"auth_url"`
	TokenURL     string `yaml:"token_url"`
	UserInfoURL  string `yaml:"userinfo_url"`
}

type CORSConfig struct {
	Origins []string `yaml:"origins"`
}

type LimitConfig struct {
	Max    int    `yaml:"max"`
	Window string `yaml:"window"`
}

type RateLimitConfig struct {
	Enabled bool        `yaml:"enabled"`
	General LimitConfig `yaml:"general"`
	Auth    LimitConfig `yaml:"auth"`
	OTP     LimitConfig `yaml:"otp"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type ConfigFile struct {
	App       AppConfig       `yaml:"app"`
	Database  DatabaseConfig  `yaml:"database"`
	Redis     RedisConfig     `yaml:"redis"`
	JWT       JWTConfig       `yaml:"jwt"`
	OTP       OTPConfig       `yaml:"otp"`
	Pending   PendingConfig   `yaml:"pending"`
	Password  PasswordConfig  `yaml:"password"`
	Email     EmailConfig     `yaml:"email"`
	Google    GoogleConfig    `yaml:"google"`
	CORS      CORSConfig      `yaml:"cors"`
	RateLimit RateLimitConfig `yaml:"ratelimit"`
	Log       LogConfig       `yaml:"log"`
}

// Limit is a parsed rate-limit rule
type Limit struct {
	Max    int
	Window time.Duration
}

type Config struct {
	Port            string
	GinMode         string
	Debug           bool
	ShutdownTimeout time.Duration
	JanitorInterval time.Duration
	ClientURL       string

	DSN           string
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	JWTSecret        string
	JWTRefreshSecret string
	JWTIssuer        string
	AccessTTL        time.Duration
	RefreshTTL       time.Duration

	OTPTTL        time.Duration
	OTPLength     int
	PendingSecret string
	BcryptCost    int

	Email  EmailConfig
	Google GoogleConfig

	CORSOrigins []string

	RateLimitEnabled bool
	GeneralLimit     Limit
	AuthLimit        Limit
	OTPLimit         Limit

	LogLevel  string
	LogFormat string
}

// Defaults returns the file-level defaults applied before the YAML overlay.
func Defaults() *ConfigFile {
	return &ConfigFile{
		App: AppConfig{
			Port:            5000,
			GinMode:         "release",
			ShutdownTimeout: "10s",
			JanitorInterval: "1h",
		},
		Redis: RedisConfig{Addr: "localhost:6379"},
		JWT: JWTConfig{
			Issuer:     "note-maker",
			AccessTTL:  "15m",
			RefreshTTL: "168h",
		},
		OTP:      OTPConfig{TTL: "10m", Length: 6},
		Password: PasswordConfig{BcryptCost: 12},
		Email:    EmailConfig{Provider: "log", Host: "smtp.gmail.com", Port: 587},
		Google: GoogleConfig{
			CallbackURL: "http://localhost:5000/api/auth/google/callback",
		},
		CORS: CORSConfig{Origins: []string{"http://localhost:5173"}},
		RateLimit: RateLimitConfig{
			Enabled: true,
			General: LimitConfig{Max: 100, Window: "15m"},
			Auth:    LimitConfig{Max: 5, Window: "15m"},
			OTP:     LimitConfig{Max: 10, Window: "5m"},
		},
		Log: LogConfig{Level: "info", Format: "text"},
	}
}

// Load reads .env (if present), the YAML file at CONFIG_PATH or
// config/config.yml (if present), then applies environment overrides.
func Load() (*Config, error) {
	_ = godotenv.Load()

	path := env("CONFIG_PATH", defaultConfigPath)
	file, err := loadConfigFile(path)
	if err != nil {
		return nil, err
	}
	applyEnv(file)
	return fromFile(file)
}

func loadConfigFile(path string) (*ConfigFile, error) {
	file := Defaults()
	bytes, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return file, nil
		}
		return nil, fmt.Errorf("could not read config file at %s: %w", path, err)
	}
	if err := yaml.Unmarshal(bytes, file); err != nil {
		return nil, fmt.Errorf("could not parse config yaml: %w", err)
	}
	return file, nil
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func envInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func applyEnv(f *ConfigFile) {
	f.App.Port = envInt("PORT", f.App.Port)
	f.App.GinMode = env("GIN_MODE", f.App.GinMode)
	f.App.ClientURL = env("CLIENT_URL", f.App.ClientURL)
	f.Database.DSN = env("DATABASE_URL", f.Database.DSN)
	f.Redis.Addr = env("REDIS_ADDR", f.Redis.Addr)
	f.Redis.Password = env("REDIS_PASSWORD", f.Redis.Password)
	f.Redis.DB = envInt("REDIS_DB", f.Redis.DB)
	f.JWT.Secret = env("JWT_SECRET", f.JWT.Secret)
	f.JWT.RefreshSecret = env("JWT_REFRESH_SECRET", f.JWT.RefreshSecret)
	f.JWT.AccessTTL = env("JWT_EXPIRES_IN", f.JWT.AccessTTL)
	f.JWT.RefreshTTL = env("JWT_REFRESH_EXPIRES_IN", f.JWT.RefreshTTL)
	f.Pending.Secret = env("PENDING_SECRET", f.Pending.Secret)
	f.Email.Provider = env("EMAIL_PROVIDER", f.Email.Provider)
	f.Email.Host = env("EMAIL_HOST", f.Email.Host)
	f.Email.Port = envInt("EMAIL_PORT", f.Email.Port)
	f.Email.Username = env("EMAIL_USER", f.Email.Username)
	f.Email.Password = env("EMAIL_PASSWORD", f.Email.Password)
	f.Email.PostmarkToken = env("POSTMARK_TOKEN", f.Email.PostmarkToken)
	if f.Email.From == "" {
		f.Email.From = f.Email.Username
	}
	f.Email.From = env("EMAIL_FROM", f.Email.From)
	f.Google.ClientID = env("GOOGLE_CLIENT_ID", f.Google.ClientID)
	f.Google.ClientSecret = env("GOOGLE_CLIENT_SECRET", f.Google.ClientSecret)
	f.Google.CallbackURL = env("GOOGLE_CALLBACK_URL", f.Google.CallbackURL)
	if v := os.Getenv("CORS_ORIGIN"); v != "" {
		f.CORS.Origins = splitList(v)
	}
	f.Log.Level = env("LOG_LEVEL", f.Log.Level)
	f.Log.Format = env("LOG_FORMAT", f.Log.Format)
}

type durationField struct {
	name string
	raw  string
	dst  *time.Duration
}

func fromFile(f *ConfigFile) (*Config, error) {
	cfg := &Config{
		Port:             strconv.Itoa(f.App.Port),
		GinMode:          f.App.GinMode,
		Debug:            f.App.Debug,
		ClientURL:        clientURL(f.App.ClientURL, f.CORS.Origins),
		DSN:              f.Database.DSN,
		RedisAddr:        f.Redis.Addr,
		RedisPassword:    f.Redis.Password,
		RedisDB:          f.Redis.DB,
		JWTSecret:        f.JWT.Secret,
		JWTRefreshSecret: f.JWT.RefreshSecret,
		JWTIssuer:        f.JWT.Issuer,
		OTPLength:        f.OTP.Length,
		PendingSecret:    f.Pending.Secret,
		BcryptCost:       f.Password.BcryptCost,
		Email:            f.Email,
		Google:           f.Google,
		CORSOrigins:      f.CORS.Origins,
		RateLimitEnabled: f.RateLimit.Enabled,
		GeneralLimit:     Limit{Max: f.RateLimit.General.Max},
		AuthLimit:        Limit{Max: f.RateLimit.Auth.Max},
		OTPLimit:         Limit{Max: f.RateLimit.OTP.Max},
		LogLevel:         f.Log.Level,
		LogFormat:        f.Log.Format,
	}

	fields := []durationField{
		{"app.shutdown_timeout", f.App.ShutdownTimeout, &cfg.ShutdownTimeout},
		{"app.janitor_interval", f.App.JanitorInterval, &cfg.JanitorInterval},
		{"jwt.access_ttl", f.JWT.AccessTTL, &cfg.AccessTTL},
		{"jwt.refresh_ttl", f.JWT.RefreshTTL, &cfg.RefreshTTL},
		{"otp.ttl", f.OTP.TTL, &cfg.OTPTTL},
		{"ratelimit.general.window", f.RateLimit.General.Window, &cfg.GeneralLimit.Window},
		{"ratelimit.auth.window", f.RateLimit.Auth.Window, &cfg.AuthLimit.Window},
		{"ratelimit.otp.window", f.RateLimit.OTP.Window, &cfg.OTPLimit.Window},
	}
	for _, d := range fields {
		v, err := time.ParseDuration(d.raw)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", d.name, err)
		}
		*d.dst = v
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects configurations that would weaken token separation.
func (c *Config) Validate() error {
	switch {
	case c.JWTSecret == "":
		return errors.New("config: jwt.secret is required")
	case c.JWTRefreshSecret == "":
		return errors.New("config: jwt.refresh_secret is required")
	case c.JWTSecret == c.JWTRefreshSecret:
		return errors.New("config: jwt.secret and jwt.refresh_secret must differ")
	case c.PendingSecret == "":
		return errors.New("config: pending.secret is required")
	case c.OTPLength <= 0:
		return errors.New("config: otp.length must be positive")
	case c.AccessTTL <= 0 || c.RefreshTTL <= 0 || c.OTPTTL <= 0:
		return errors.New("config: token and otp ttls must be positive")
	}
	return nil
}

// clientURL prefers an explicit client URL, then the first CORS origin.
func clientURL(explicit string, origins []string) string {
	if explicit != "" {
		return strings.TrimRight(explicit, "/")
	}
	if len(origins) > 0 && origins[0] != "" {
		return strings.TrimRight(origins[0], "/")
	}
	return "http://localhost:5173"
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
