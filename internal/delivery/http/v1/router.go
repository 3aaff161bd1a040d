package v1

import (
	"net/http"
	"time"

	"elitefit-backend/config"
	"elitefit-backend/internal/delivery/http/middleware"
	"elitefit-backend/internal/delivery/http/response"
	"elitefit-backend/internal/domain"
	"elitefit-backend/pkg/token"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	SessionUC domain.SessionUsecase
	WizardUC  domain.WizardUsecase
	PlanUC    domain.PlanUsecase
	Tokens    *token.Manager
	Config    *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	// Global Middlewares
	r.Use(middleware.CORSMiddleware()) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(gin.Logger()) // Use standard Gin logger
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.RequestID())
	r.Use(middleware.ErrorHandler())

	window := time.Duration(deps.Config.RateLimitWindowSeconds) * time.Second

	v1 := r.Group("/v1")
	v1.Use(middleware.RateLimit(middleware.GlobalRateLimitConfig(deps.Config.RateLimitGlobalThreshold, window)))

	// Health Check
	v1.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, "System operational", nil)
	})

	// Swagger
	v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Public routes without auth
	NewOnboardingHandler(v1, deps.WizardUC)
	NewAvatarHandler(v1)

	// Credential endpoints get the stricter per-identifier limit on top of
	// the global one
	credentialed := v1.Group("")
	credentialed.Use(middleware.RateLimit(middleware.LoginRateLimitConfig(deps.Config.RateLimitLoginThreshold, window)))

	// Protected routes
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(deps.Tokens))
	{
		NewAuthHandler(credentialed, protected, deps.SessionUC, deps.Tokens)
		NewPlanHandler(protected, deps.PlanUC)
	}

	return r
}
