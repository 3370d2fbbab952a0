package handlers

import (
	"net/http"

	"github.com/SscSPs/mof_report_service/cmd/docs"
	portssvc "github.com/SscSPs/mof_report_service/internal/core/ports/services"
	"github.com/SscSPs/mof_report_service/internal/dto"
	"github.com/SscSPs/mof_report_service/internal/middleware"
	"github.com/SscSPs/mof_report_service/internal/platform/config"
	"github.com/SscSPs/mof_report_service/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	posthog *utils.PosthogClientWrapper,
	rateLimiter *limiter.Limiter,
) {
	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	var chain []gin.HandlerFunc
	if cfg.AuthEnabled {
		chain = append(chain, middleware.AuthMiddleware(cfg.JWTSecret))
	}
	if rateLimiter != nil {
		chain = append(chain, middleware.RateLimit(rateLimiter))
	}
	RegisterMOFReportRoutes(r.Group("/mof-report", chain...), services, posthog)

	// Swagger routes (typically public or conditionally available)
	setupSwaggerRoutes(r, cfg)
}

// RegisterMOFReportRoutes registers the upload and statement routes on rg.
func RegisterMOFReportRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer, posthog *utils.PosthogClientWrapper) {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := dto.RegisterValidators(v); err != nil {
			panic(err)
		}
	}
	registerDataImportRoutes(rg, services.DataImport)
	registerPNT11Routes(rg, services.PNT11)
	registerFinancialReportRoutes(rg, services.FinancialReport, posthog)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
