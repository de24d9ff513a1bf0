package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/abhinay-x/note-maker/domain"
	"github.com/abhinay-x/note-maker/internal/clock"
	"github.com/abhinay-x/note-maker/internal/config"
	httpx "github.com/abhinay-x/note-maker/internal/http"
	"github.com/abhinay-x/note-maker/internal/http/handlers"
	"github.com/abhinay-x/note-maker/internal/http/middleware"
	"github.com/abhinay-x/note-maker/internal/infrastructure/audit"
	"github.com/abhinay-x/note-maker/internal/infrastructure/auth"
	"github.com/abhinay-x/note-maker/internal/infrastructure/database"
	"github.com/abhinay-x/note-maker/internal/infrastructure/notifications"
	"github.com/abhinay-x/note-maker/internal/infrastructure/oauth"
	"github.com/abhinay-x/note-maker/internal/infrastructure/ratelimit"
	"github.com/abhinay-x/note-maker/internal/infrastructure/repositories"
	"github.com/abhinay-x/note-maker/internal/services"
)

// Container holds all dependencies
type Container struct {
	// Config
	Config *config.Config
	Logger *slog.Logger
	Clock  clock.Clock

	// Infrastructure
	DB          *gorm.DB
	RedisClient *redis.Client

	// Repositories
	UserRepo    domain.UserRepository
	OTPRepo     domain.OTPRepository
	SessionRepo domain.SessionRepository
	NoteRepo    domain.NoteRepository

	// Services
	PasswordSvc     domain.PasswordService
	TokenSvc        domain.TokenService
	Sealer          domain.PendingSealer
	NotificationSvc domain.NotificationService
	OAuthProvider   domain.OAuthProvider
	AuditLogger     domain.AuditLogger
	RateLimiter     domain.RateLimiter
	OTPSvc          domain.OTPService
	AuthSvc         domain.AuthService
	OAuthSvc        domain.OAuthService
	NoteSvc         domain.NoteService

	// HTTP
	AuthHandlers  *handlers.AuthHandlers
	OAuthHandlers *handlers.OAuthHandlers
	NoteHandlers  *handlers.NoteHandlers
	AuthMW        *middleware.AuthMW

	ownsDB bool
}

// Option replaces a piece of infrastructure before the container wires
// itself. Anything left unset is built from the config.
type Option func(*Container)

// WithDB uses an already open database instead of connecting to cfg.DSN
func WithDB(db *gorm.DB) Option {
	return func(c *Container) { c.DB = db }
}

// WithRedis uses the given client for rate limiting
func WithRedis(client *redis.Client) Option {
	return func(c *Container) { c.RedisClient = client }
}

// WithNotifier replaces the configured mail provider
func WithNotifier(n domain.NotificationService) Option {
	return func(c *Container) { c.NotificationSvc = n }
}

// WithOAuthProvider replaces the Google provider
func WithOAuthProvider(p domain.OAuthProvider) Option {
	return func(c *Container) { c.OAuthProvider = p }
}

// WithClock replaces the wall clock
func WithClock(clk clock.Clock) Option {
	return func(c *Container) { c.Clock = clk }
}

// WithLogger replaces the default logger
func WithLogger(logger *slog.Logger) Option {
	return func(c *Container) { c.Logger = logger }
}

// NewContainer creates and initializes all dependencies
func NewContainer(cfg *config.Config, opts ...Option) (*Container, error) {
	container := &Container{Config: cfg}
	for _, opt := range opts {
		opt(container)
	}
	if container.Logger == nil {
		container.Logger = slog.Default()
	}
	if container.Clock == nil {
		container.Clock = clock.Real()
	}

	// Initialize infrastructure
	if err := container.initDatabase(); err != nil {
		return nil, err
	}
	if err := container.initRedis(); err != nil {
		container.Close()
		return nil, err
	}

	// Initialize repositories
	container.initRepositories()

	// Initialize services
	container.initServices()
	container.initHandlers()

	return container, nil
}

func (c *Container) initDatabase() error {
	if c.DB == nil {
		db, err := database.Open(c.Config.DSN, c.Config.Debug)
		if err != nil {
			return err
		}
		c.DB = db
		c.ownsDB = true
	}

	return database.AutoMigrate(c.DB)
}

func (c *Container) initRedis() error {
	if !c.Config.RateLimitEnabled {
		return nil
	}
	if c.RedisClient == nil {
		rdb := database.NewRedis(c.Config.RedisAddr, c.Config.RedisPassword, c.Config.RedisDB)
		if err := rdb.Ping(context.Background()); err != nil {
			_ = rdb.Close()
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		c.RedisClient = rdb.Client
	}
	c.RateLimiter = ratelimit.NewRedisLimiter(c.RedisClient)
	return nil
}

func (c *Container) initRepositories() {
	c.UserRepo = repositories.NewUserRepository(c.DB)
	c.OTPRepo = repositories.NewOTPRepository(c.DB)
	c.SessionRepo = repositories.NewSessionRepository(c.DB)
	c.NoteRepo = repositories.NewNoteRepository(c.DB)
}

func (c *Container) initServices() {
	cfg := c.Config

	c.PasswordSvc = auth.NewPasswordService(cfg.BcryptCost)
	c.TokenSvc = auth.NewJWTService(
		cfg.JWTSecret,
		cfg.JWTRefreshSecret,
		cfg.JWTIssuer,
		cfg.AccessTTL,
		cfg.RefreshTTL,
		c.Clock,
	)
	c.Sealer = auth.NewPendingSealer(cfg.PendingSecret)
	c.AuditLogger = audit.NewSlogLogger(c.Logger)

	if c.NotificationSvc == nil {
		c.NotificationSvc = c.newNotifier()
	}
	if c.OAuthProvider == nil {
		c.OAuthProvider = oauth.NewGoogleProvider(oauth.GoogleConfig{
			ClientID:     cfg.Google.ClientID,
			ClientSecret: cfg.Google.ClientSecret,
			RedirectURL:  cfg.Google.CallbackURL,
			AuthURL:      cfg.Google.AuthURL,
			TokenURL:     cfg.Google.TokenURL,
			UserInfoURL:  cfg.Google.UserInfoURL,
		})
	}

	c.OTPSvc = services.NewOTPService(c.OTPRepo, c.NotificationSvc, services.OTPConfig{
		Length: cfg.OTPLength,
		TTL:    cfg.OTPTTL,
	})

	// Auth service depends on all of the above
	c.AuthSvc = services.NewAuthService(
		c.UserRepo,
		c.SessionRepo,
		c.PasswordSvc,
		c.TokenSvc,
		c.OTPSvc,
		c.Sealer,
		c.AuditLogger,
		c.Clock,
		services.AuthConfig{RefreshTTL: cfg.RefreshTTL},
	)
	c.OAuthSvc = services.NewOAuthService(
		c.OAuthProvider,
		c.UserRepo,
		c.PasswordSvc,
		c.AuthSvc,
		c.AuditLogger,
		c.Clock,
		cfg.ClientURL,
	)
	c.NoteSvc = services.NewNoteService(c.NoteRepo, c.Clock)
}

// newNotifier picks the mail provider named in config. A postmark provider
// without a token falls back to logging codes.
func (c *Container) newNotifier() domain.NotificationService {
	email := c.Config.Email
	switch email.Provider {
	case "smtp":
		return notifications.NewSMTPService(email.Host, email.Port, email.Username, email.Password, email.From, c.Config.OTPTTL)
	case "postmark":
		pm := notifications.NewPostmarkService(email.PostmarkToken, email.From, c.Config.OTPTTL)
		if pm.Configured() {
			return pm
		}
		c.Logger.Warn("postmark token not set, OTP codes will be logged")
	}
	return notifications.NewLogService(c.Logger)
}

func (c *Container) initHandlers() {
	c.AuthHandlers = handlers.NewAuthHandlers(c.AuthSvc)
	c.OAuthHandlers = handlers.NewOAuthHandlers(c.OAuthSvc, c.Config.ClientURL)
	c.NoteHandlers = handlers.NewNoteHandlers(c.NoteSvc)
	c.AuthMW = middleware.NewAuthMW(c.TokenSvc)
}

// Router builds the HTTP handler for the service
func (c *Container) Router() *gin.Engine {
	cfg := c.Config
	return httpx.BuildRouter(c.AuthHandlers, c.OAuthHandlers, c.NoteHandlers, c.AuthMW, httpx.RouterConfig{
		Logger:      c.Logger,
		CORSOrigins: cfg.CORSOrigins,
		Limiter:     c.RateLimiter,
		General:     rule("general", cfg.GeneralLimit, middleware.GeneralLimitMessage),
		Auth:        rule("auth", cfg.AuthLimit, middleware.AuthLimitMessage),
		OTP:         rule("otp", cfg.OTPLimit, middleware.OTPLimitMessage),
	})
}

func rule(name string, limit config.Limit, message string) middleware.RateLimitRule {
	return middleware.RateLimitRule{Name: name, Max: limit.Max, Window: limit.Window, Message: message}
}

// Close closes all connections the container opened
func (c *Container) Close() error {
	if c.RedisClient != nil {
		c.RedisClient.Close()
	}

	if c.DB != nil && c.ownsDB {
		return database.Close(c.DB)
	}

	return nil
}
