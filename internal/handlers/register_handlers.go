package handlers

import (
	"github.com/bloxedu/blox_backend/cmd/docs"
	"github.com/bloxedu/blox_backend/internal/adapters/news"
	portsrepo "github.com/bloxedu/blox_backend/internal/core/ports/repositories"
	portssvc "github.com/bloxedu/blox_backend/internal/core/ports/services"
	"github.com/bloxedu/blox_backend/internal/middleware"
	"github.com/bloxedu/blox_backend/pkg/config"
	"github.com/gin-gonic/gin"
	"github.com/posthog/posthog-go"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up all application routes, injecting dependencies
// through the service and repository containers.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	repos *portsrepo.RepositoryProvider,
	newsClient *news.Client,
	analytics posthog.Client,
) {
	registerHomeRoutes(r)

	// Public authentication routes
	registerAuthRoutes(r, services)

	setupAPIV1Routes(r, cfg, services, repos, newsClient, analytics)

	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group behind JWT auth and
// delegates to per-entity route registrations.
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	repos *portsrepo.RepositoryProvider,
	newsClient *news.Client,
	analytics posthog.Client,
) {
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))

	registerUserRoutes(v1, services.User)
	RegisterCryptoRoutes(v1, services.Trade, services.Blockchain, services.Wallet, analytics)
	registerWalletRoutes(v1, services.Wallet, repos.TransactionRepo)
	registerClassroomRoutes(v1, services.Classroom)
	registerLeaderboardRoutes(v1, services.Leaderboard)
	registerNewsRoutes(v1, newsClient)
}

// setupSwaggerRoutes configures the swagger documentation routes.
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		// no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
