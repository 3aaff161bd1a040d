package v1

import (
	"net/http"
	"strings"

	"elitefit-backend/internal/delivery/http/response"
	"elitefit-backend/internal/domain"
	"elitefit-backend/pkg/apperror"
	"elitefit-backend/pkg/token"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	sessionUC domain.SessionUsecase
	tokens    *token.Manager
}

func NewAuthHandler(public *gin.RouterGroup, protected *gin.RouterGroup, sessionUC domain.SessionUsecase, tokens *token.Manager) {
	handler := &AuthHandler{
		sessionUC: sessionUC,
		tokens:    tokens,
	}

	// Public Routes
	publicAuth := public.Group("/auth")
	{
		publicAuth.POST("/register", handler.Register)
		publicAuth.POST("/login", handler.Login)
		publicAuth.POST("/forgot-password", handler.ForgotPassword)
		publicAuth.POST("/reset-password", handler.ResetPassword)
	}

	// Protected Routes
	protectedAuth := protected.Group("/auth")
	{
		protectedAuth.POST("/logout", handler.Logout)
		protectedAuth.GET("/me", handler.Me)
	}
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Register godoc
// @Summary      User Registration
// @Description  Create an account with the identity provider, establish a session, and create the profile document. Optionally consumes a completed onboarding wizard.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        register  body      domain.RegisterRequest  true  "Registration Details"
// @Success      201    {object}  response.Response
// @Failure      400    {object}  response.Response
// @Failure      409    {object}  response.Response
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req domain.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	profile, session, err := h.sessionUC.Register(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}

	apiToken, err := h.tokens.Issue(session.AccountID, session.Secret)
	if err != nil {
		c.Error(apperror.Internal(err))
		return
	}

	response.Success(c, http.StatusCreated, "Account created successfully!", gin.H{
		"token": apiToken,
		"user":  profile,
	})
}

// Login godoc
// @Summary      User Login
// @Description  Sign in with email and password. Reuses the active session when the request carries a still-valid token.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        login  body      LoginRequest  true  "Login Credentials"
// @Success      200    {object}  response.Response
// @Failure      400    {object}  response.Response
// @Failure      401    {object}  response.Response
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	// A still-valid token on a login request means the app re-submitted
	// credentials with a session active; its secret lets the usecase reuse
	// the session instead of tripping the provider's conflict.
	var priorSecret string
	if authHeader := c.GetHeader("Authorization"); authHeader != "" {
		if claims, err := h.tokens.Parse(strings.TrimPrefix(authHeader, "Bearer ")); err == nil {
			priorSecret = claims.SessionSecret
		}
	}

	session, reused, err := h.sessionUC.SignIn(c.Request.Context(), priorSecret, req.Email, req.Password)
	if err != nil {
		c.Error(err)
		return
	}

	apiToken, err := h.tokens.Issue(session.AccountID, session.Secret)
	if err != nil {
		c.Error(apperror.Internal(err))
		return
	}

	// Identity resolution never fails outward; user may be nil here only if
	// the session died between the two calls
	user, _ := h.sessionUC.CurrentUser(c.Request.Context(), session.Secret)

	response.Success(c, http.StatusOK, "Login successful", gin.H{
		"token":          apiToken,
		"user":           user,
		"session_reused": reused,
	})
}

// Me godoc
// @Summary      Current User
// @Description  Resolve the current identity (profile document, or bare account fallback) plus onboarding status.
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	sessionSecret := c.GetString(string(domain.KeySessionSecret))
	accountID := c.GetString(string(domain.KeyAccountID))

	identity, _ := h.sessionUC.CurrentUser(c.Request.Context(), sessionSecret)
	if identity == nil {
		response.Error(c, http.StatusUnauthorized, "Session expired. Please log in again.", nil)
		return
	}

	fitness, err := h.sessionUC.FitnessProfile(c.Request.Context(), accountID)
	onboardingCompleted := err == nil && fitness != nil

	response.Success(c, http.StatusOK, "User details", gin.H{
		"user":                 identity,
		"onboarding_completed": onboardingCompleted,
		"fitness_profile":      fitness,
	})
}

// Logout godoc
// @Summary      Sign Out
// @Description  Delete the active provider session. Failure is surfaced, not swallowed.
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	sessionSecret := c.GetString(string(domain.KeySessionSecret))

	if err := h.sessionUC.SignOut(c.Request.Context(), sessionSecret); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Logged out successfully", nil)
}

// ForgotPasswordRequest for requesting password reset email
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ForgotPassword godoc
// @Summary      Request Password Reset
// @Description  Ask the identity provider to email a recovery link. Always reports success.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      ForgotPasswordRequest  true  "Email address"
// @Success      200      {object}  response.Response
// @Router       /auth/forgot-password [post]
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	// Same response whether the email exists or not, so responses cannot be
	// used to enumerate registered emails
	_ = h.sessionUC.RequestPasswordReset(c.Request.Context(), req.Email)

	response.Success(c, http.StatusOK, "If an account with that email exists, a password reset link has been sent.", nil)
}

// ResetPasswordRequest for setting new password
type ResetPasswordRequest struct {
	UserID      string `json:"user_id" binding:"required"`
	Secret      string `json:"secret" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=6"`
}

// ResetPassword godoc
// @Summary      Reset Password
// @Description  Set a new password using the recovery secret from the email link.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      ResetPasswordRequest  true  "Reset password details"
// @Success      200      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Router       /auth/reset-password [post]
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	if err := h.sessionUC.ResetPassword(c.Request.Context(), req.UserID, req.Secret, req.NewPassword); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Password has been reset successfully. You can now log in with your new password.", nil)
}
