package httpx

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/abhinay-x/note-maker/domain"
	"github.com/abhinay-x/note-maker/internal/http/handlers"
	"github.com/abhinay-x/note-maker/internal/http/middleware"
)

// RouterConfig carries the router's cross-cutting settings. A nil Limiter
// turns the rate-limit gates off.
type RouterConfig struct {
	Logger      *slog.Logger
	CORSOrigins []string
	Limiter     domain.RateLimiter
	General     middleware.RateLimitRule
	Auth        middleware.RateLimitRule
	OTP         middleware.RateLimitRule
}

func BuildRouter(ah *handlers.AuthHandlers, oh *handlers.OAuthHandlers, nh *handlers.NoteHandlers, jwtmw *middleware.AuthMW, cfg RouterConfig) *gin.Engine {
	handlers.RegisterValidators()

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := gin.New()
	r.Use(middleware.RequestLogger(logger), middleware.Recovery(logger))
	corsCfg := cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.CORSOrigins) == 0 {
		corsCfg.AllowAllOrigins = true
		corsCfg.AllowCredentials = false
	}
	r.Use(cors.New(corsCfg))
	r.Use(middleware.ClientContext())

	limit := func(rule middleware.RateLimitRule) gin.HandlerFunc {
		if cfg.Limiter == nil {
			return func(c *gin.Context) { c.Next() }
		}
		return middleware.RateLimit(cfg.Limiter, rule)
	}

	started := time.Now()
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, handlers.Response{
			Success: true,
			Message: "Server is running",
			Data: gin.H{
				"timestamp": time.Now().UTC().Format(time.RFC3339),
				"uptime":    time.Since(started).Seconds(),
			},
		})
	})

	api := r.Group("/api", limit(cfg.General))

	auth := api.Group("/auth")
	auth.POST("/signup/email", limit(cfg.Auth), ah.SignupEmail)
	auth.POST("/verify-otp", limit(cfg.OTP), ah.VerifyOTP)
	auth.POST("/login/email", limit(cfg.Auth), ah.LoginEmail)
	auth.GET("/google", oh.Start)
	auth.GET("/google/callback", oh.Callback)
	auth.POST("/refresh", ah.Refresh)
	auth.POST("/logout", ah.Logout)
	auth.POST("/forgot-password", limit(cfg.Auth), ah.ForgotPassword)
	auth.POST("/reset-password", limit(cfg.Auth), ah.ResetPassword)

	notes := api.Group("/notes", jwtmw.WithJWT())
	notes.GET("", nh.List)
	notes.POST("", nh.Create)
	notes.GET("/:id", nh.Get)
	notes.PUT("/:id", nh.Update)
	notes.DELETE("/:id", nh.Delete)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, handlers.Response{Success: false, Message: "Route not found"})
	})

	return r
}
