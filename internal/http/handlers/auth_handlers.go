package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/abhinay-x/note-maker/domain"
)

// AuthHandlers handles authentication HTTP requests
type AuthHandlers struct {
	authSvc domain.AuthService
}

// NewAuthHandlers creates new auth handlers
func NewAuthHandlers(authSvc domain.AuthService) *AuthHandlers {
	return &AuthHandlers{authSvc: authSvc}
}

// SignupRequest starts an email signup
type SignupRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8,strongpassword"`
	FirstName string `json:"firstName" binding:"required,min=2,max=50"`
	LastName  string `json:"lastName" binding:"required,min=2,max=50"`
}

// TempData is the pending registration handed to the client. HashedPassword
// carries the sealed ticket, never a bare hash; the names are for display
// and are ignored on verification.
type TempData struct {
	HashedPassword string `json:"hashedPassword"`
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
}

// VerifyOTPRequest completes an email signup
type VerifyOTPRequest struct {
	Email    string    `json:"email" binding:"required,email"`
	OTP      string    `json:"otp" binding:"required,len=6,numeric"`
	TempData *TempData `json:"tempData"`
}

// LoginRequest represents login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest carries a refresh token for refresh and logout
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// ForgotPasswordRequest starts a password reset
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ResetPasswordRequest completes a password reset
type ResetPasswordRequest struct {
	Email       string `json:"email" binding:"required,email"`
	OTP         string `json:"otp" binding:"required,len=6,numeric"`
	NewPassword string `json:"newPassword" binding:"required,min=8"`
}

type userView struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

func authPayload(result *domain.AuthResult) gin.H {
	return gin.H{
		"user": userView{
			ID:        result.User.ID,
			Email:     result.User.Email,
			FirstName: result.User.FirstName,
			LastName:  result.User.LastName,
		},
		"tokens": result.Tokens,
	}
}

// SignupEmail handles the OTP request step of signup
func (h *AuthHandlers) SignupEmail(c *gin.Context) {
	var req SignupRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.authSvc.RequestSignup(c.Request.Context(), domain.SignupInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, "OTP sent to your email address", gin.H{
		"email": result.Email,
		"tempData": TempData{
			HashedPassword: result.Ticket,
			FirstName:      result.FirstName,
			LastName:       result.LastName,
		},
	})
}

// VerifyOTP handles the verification step of signup
func (h *AuthHandlers) VerifyOTP(c *gin.Context) {
	var req VerifyOTPRequest
	if !bindJSON(c, &req) {
		return
	}

	var ticket string
	if req.TempData != nil {
		ticket = req.TempData.HashedPassword
	}

	result, err := h.authSvc.VerifySignupOTP(c.Request.Context(), req.Email, req.OTP, ticket)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusCreated, "Account created successfully", authPayload(result))
}

// LoginEmail handles password login
func (h *AuthHandlers) LoginEmail(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.authSvc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, "Login successful", authPayload(result))
}

// Refresh handles token refresh. A missing or unreadable body is treated as
// a missing token.
func (h *AuthHandlers) Refresh(c *gin.Context) {
	var req RefreshRequest
	_ = c.ShouldBindJSON(&req)

	tokens, err := h.authSvc.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, "Tokens refreshed successfully", gin.H{"tokens": tokens})
}

// Logout handles logout. It always succeeds.
func (h *AuthHandlers) Logout(c *gin.Context) {
	var req RefreshRequest
	_ = c.ShouldBindJSON(&req)

	_ = h.authSvc.Logout(c.Request.Context(), req.RefreshToken)
	respond(c, http.StatusOK, "Logged out successfully", nil)
}

// ForgotPassword handles the reset request step. The reply does not reveal
// whether the account exists.
func (h *AuthHandlers) ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if !bindJSON(c, &req) {
		return
	}

	message, _ := h.authSvc.ForgotPassword(c.Request.Context(), req.Email)
	respond(c, http.StatusOK, message, nil)
}

// ResetPassword handles the reset completion step
func (h *AuthHandlers) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if !bindJSON(c, &req) {
		return
	}

	err := h.authSvc.ResetPassword(c.Request.Context(), req.Email, req.OTP, req.NewPassword)
	if err != nil {
		if isOTPFailure(err) {
			fail(c, http.StatusBadRequest, "Invalid or expired OTP")
			return
		}
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, "Password has been reset successfully", nil)
}
