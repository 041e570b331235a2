package v1

import (
	"time"

	"link1t-backend/config"
	"link1t-backend/internal/delivery/http/middleware"
	"link1t-backend/internal/domain"
	"link1t-backend/internal/render"
	"link1t-backend/internal/usecase"
	"link1t-backend/pkg/auth"
	"link1t-backend/pkg/security"
	"link1t-backend/pkg/validation"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	goredis "github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	PortfolioUC domain.PortfolioUsecase
	AssetUC     domain.AssetUsecase
	ResumeUC    domain.ResumeUsecase
	ContactUC   domain.ContactUsecase
	HealthUC    usecase.HealthUsecase

	Verifier      *auth.Verifier
	Audit         *security.SecurityLogger
	Redis         *goredis.Client // optional
	UploadLimiter *security.UploadLimiter
	Renderer      *render.Renderer
	Config        *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		validation.RegisterValidators(v)
	}

	cfg := deps.Config
	window := time.Duration(cfg.RateLimitWindowSeconds) * time.Second
	limiter := middleware.NewRateLimiter(deps.Redis, deps.Audit)
	resumeLimit := limiter.Middleware(middleware.ResumeRateLimitConfig(cfg.RateLimitResumeThreshold, window))

	r := gin.New()

	// Global Middlewares
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger())
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins, cfg.IsProduction()))
	r.Use(middleware.SecurityHeadersMiddleware(cfg.IsProduction()))
	r.Use(middleware.ErrorHandler())

	// Asset proxy and public pages live outside /v1
	NewAssetHandler(r, deps.AssetUC)
	NewPublicHandler(r, deps.PortfolioUC, deps.Renderer)

	v1 := r.Group("/v1")
	v1.Use(limiter.Middleware(middleware.GlobalRateLimitConfig(cfg.RateLimitGlobalThreshold, window)))

	// Swagger
	v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Public routes
	NewHealthHandler(v1, deps.HealthUC)
	NewContactHandler(v1, deps.ContactUC)
	NewResumeHandler(v1, deps.ResumeUC, resumeLimit)

	optional := v1.Group("")
	optional.Use(middleware.OptionalAuthMiddleware(deps.Verifier))
	NewUploadHandler(optional, deps.AssetUC, deps.UploadLimiter, deps.Audit)

	// Protected routes
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(deps.Verifier, deps.Audit))
	{
		NewPortfolioHandler(v1, protected, deps.PortfolioUC)
		NewBuilderHandler(v1, protected, deps.PortfolioUC, deps.ResumeUC, cfg.PublicBaseURL, resumeLimit)
	}

	return r
}
