package e2e

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhinay-x/note-maker/internal/config"
)

func TestRateLimits(t *testing.T) {
	env := newTestEnv(t, func(cfg *config.Config) {
		cfg.AuthLimit = config.Limit{Max: 3, Window: time.Minute}
		cfg.OTPLimit = config.Limit{Max: 2, Window: time.Minute}
	})

	t.Run("auth limiter", func(t *testing.T) {
		for i := 0; i < 3; i++ {
			resp := env.Login(t, "ghost@example.com", "Wrong123!")
			require.Equal(t, http.StatusUnauthorized, resp.Status)
		}

		resp := env.Login(t, "ghost@example.com", "Wrong123!")
		assert.Equal(t, http.StatusTooManyRequests, resp.Status)
		assert.Equal(t, "Too many authentication attempts, please try again later.", resp.Message)
		assert.NotEmpty(t, resp.Header.Get("Retry-After"))

		// forgot-password shares the auth counter
		assert.Equal(t, http.StatusTooManyRequests,
			env.Post(t, "/api/auth/forgot-password", map[string]string{"email": "ghost@example.com"}).Status)
	})

	t.Run("otp limiter is separate", func(t *testing.T) {
		body := map[string]interface{}{
			"email":    "ghost@example.com",
			"otp":      "123456",
			"tempData": map[string]string{"hashedPassword": "x"},
		}
		for i := 0; i < 2; i++ {
			assert.Equal(t, http.StatusBadRequest, env.Post(t, "/api/auth/verify-otp", body).Status)
		}
		resp := env.Post(t, "/api/auth/verify-otp", body)
		assert.Equal(t, http.StatusTooManyRequests, resp.Status)
		assert.Equal(t, "Too many OTP requests, please try again later.", resp.Message)
	})

	t.Run("window expiry resets the counter", func(t *testing.T) {
		env.Redis.FastForward(time.Minute + time.Second)
		resp := env.Login(t, "ghost@example.com", "Wrong123!")
		assert.Equal(t, http.StatusUnauthorized, resp.Status)
	})

	t.Run("unlimited routes stay open", func(t *testing.T) {
		resp := env.Post(t, "/api/auth/refresh", map[string]string{"refreshToken": "x"})
		assert.Equal(t, http.StatusForbidden, resp.Status)
	})
}
