// api/routes/router.go
package routes

import (
	"net/http"
	"time"

	"seatflow/internal/auctions"
	"seatflow/internal/auth"
	"seatflow/internal/events"
	"seatflow/internal/notifications"
	"seatflow/internal/reports"
	"seatflow/internal/reservations"
	"seatflow/internal/seats"
	"seatflow/internal/shared/config"
	"seatflow/internal/shared/database"
	"seatflow/internal/shared/identity"
	"seatflow/pkg/cache"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Router holds all route dependencies
type Router struct {
	config     *config.Config
	db         *database.DB
	cache      cache.Service
	issuer     *identity.TokenIssuer
	dispatcher notifications.Dispatcher

	authService  auth.Service
	eventService events.Service
}

// NewRouter creates a new router instance
func NewRouter(cfg *config.Config, db *database.DB, cacheService cache.Service, dispatcher notifications.Dispatcher) *Router {
	return &Router{
		config:     cfg,
		db:         db,
		cache:      cacheService,
		issuer:     identity.NewTokenIssuer(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.JWTExpiresIn, cfg.JWT.RefreshExpiresIn),
		dispatcher: dispatcher,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	// Health check and basic info endpoints
	r.setupHealthRoutes(engine)

	if r.config.SwaggerEnabled {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := engine.Group(r.config.GetAPIBasePath())
	r.setupDomainRoutes(api)
}

// EventService is available once SetupRoutes has run
func (r *Router) EventService() events.Service {
	return r.eventService
}

// AuthService is available once SetupRoutes has run
func (r *Router) AuthService() auth.Service {
	return r.authService
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "seatflow",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "seatflow",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})

	engine.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":              "operational",
			"api_version":         r.config.APIVersion,
			"notification_broker": r.config.Notifications.Broker,
			"auction_minimum_bid": r.config.Auction.MinimumBid,
			"timestamp":           time.Now(),
		})
	})
}

// setupDomainRoutes builds every module bottom-up. Ports between modules
// are satisfied by adapters so no package imports its caller.
func (r *Router) setupDomainRoutes(api *gin.RouterGroup) {
	pg := r.db.PostgreSQL

	// Auth
	authRepo := auth.NewRepository(pg)
	r.authService = auth.NewService(authRepo, r.issuer)
	auth.NewRouter(auth.NewController(r.authService), r.issuer).SetupRoutes(api)

	// Seats read event layouts and reservation occupancy through adapters
	eventRepo := events.NewRepository(pg)
	reservationRepo := reservations.NewRepository(pg)
	seatService := seats.NewService(
		seats.NewRepository(pg),
		events.NewSeatLookupAdapter(eventRepo, r.config.Auction.DefaultVIPSeatNum),
		reservations.NewOccupancyAdapter(reservationRepo),
		r.cache,
		r.config,
	)
	seats.SetupSeatRoutes(api, seats.NewController(seatService))

	// Events
	r.eventService = events.NewService(eventRepo, seatService, r.authService, r.cache, r.config)
	eventController := events.NewController(r.eventService, r.config.Auction.DefaultVIPSeatNum, r.config.Auction.MinimumBid)
	events.SetupEventRoutes(api, eventController, r.issuer)

	// Reservations
	reservationService := reservations.NewService(reservationRepo, r.eventService, seatService, r.dispatcher, r.config)
	reservations.SetupReservationRoutes(api, reservations.NewController(reservationService, r.eventService), r.issuer)

	// Auctions
	auctionService := auctions.NewService(auctions.NewRepository(pg), r.eventService, seatService, reservationService, r.dispatcher, r.config)
	auctions.SetupAuctionRoutes(api, auctions.NewController(auctionService, r.eventService), r.issuer)

	// Reports
	reportService := reports.NewService(r.eventService, reservationService, auctionService, r.cache)
	reports.SetupReportRoutes(api, reports.NewController(reportService), r.issuer)
}
