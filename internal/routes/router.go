package routes

import (
	"net/http"

	"shipment-tracker/internal/config"
	"shipment-tracker/internal/delivery/http/handler"
	domainOrder "shipment-tracker/internal/domain/order"
	domainShipment "shipment-tracker/internal/domain/shipment"
	"shipment-tracker/internal/infrastructure/database/postgres"
	"shipment-tracker/internal/logger"
	"shipment-tracker/internal/middleware"
	"shipment-tracker/internal/notification"
	"shipment-tracker/internal/usecase/rider"
	"shipment-tracker/internal/usecase/shipment"

	"github.com/gin-gonic/gin"
)

// SetupRoutes wires repositories, services, and handlers onto a gin engine.
// The returned importer is shared with the background sync job.
func SetupRoutes(
	cfg *config.Config,
	db *postgres.DB,
	gateway domainOrder.Gateway,
	notifier notification.Notifier,
	publisher shipment.EventPublisher,
) (*gin.Engine, *shipment.Importer) {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.CORSMiddleware(&cfg.CORS))
	router.Use(middleware.RequestSizeLimitMiddleware(middleware.DefaultMaxRequestSize))
	router.Use(middleware.RateLimitMiddleware(cfg.RateLimit.GeneralRPS, cfg.RateLimit.GeneralBurst))

	router.GET("/health", func(c *gin.Context) {
		if err := db.Health(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":  "unhealthy",
				"message": "Database connection failed",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"message": "Service is running",
		})
	})

	shipmentRepository := postgres.NewShipmentRepository(db)
	riderRepository := postgres.NewRiderRepository(db)

	shipmentService := shipment.NewService(
		shipmentRepository,
		riderRepository,
		domainShipment.PermissivePolicy{},
		notifier,
		publisher,
	)
	importer := shipment.NewImporter(shipmentRepository, gateway, shipmentService)
	riderService := rider.NewService(riderRepository)

	shipmentHandler := handler.NewShipmentHandler(shipmentService, importer)
	trackingHandler := handler.NewTrackingHandler(shipmentService)
	importHandler := handler.NewImportHandler(importer)
	riderHandler := handler.NewRiderHandler(riderService)

	v1 := router.Group("/api/v1")
	{
		// Public storefront lookup
		trackingHandler.RegisterRoutes(v1)

		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(cfg))
		{
			shipmentHandler.RegisterRoutes(protected)
			importHandler.RegisterRoutes(protected)
			riderHandler.RegisterRoutes(protected)
		}
	}

	logger.Info("All routes initialized")
	return router, importer
}
