package api

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/parishtools/equipment-booking-backend/internal/asset"
	assetHttp "github.com/parishtools/equipment-booking-backend/internal/asset/http"
	"github.com/parishtools/equipment-booking-backend/internal/auth"
	"github.com/parishtools/equipment-booking-backend/internal/booking"
	bookingHttp "github.com/parishtools/equipment-booking-backend/internal/booking/http"
	"github.com/parishtools/equipment-booking-backend/internal/config"
	"github.com/parishtools/equipment-booking-backend/internal/kit"
	kitHttp "github.com/parishtools/equipment-booking-backend/internal/kit/http"
	"github.com/parishtools/equipment-booking-backend/internal/location"
	locationHttp "github.com/parishtools/equipment-booking-backend/internal/location/http"
	"github.com/parishtools/equipment-booking-backend/internal/maintenance"
	maintenanceHttp "github.com/parishtools/equipment-booking-backend/internal/maintenance/http"
	"github.com/parishtools/equipment-booking-backend/internal/user"
	userHttp "github.com/parishtools/equipment-booking-backend/internal/user/http"
)

// NewRouter initializes the HTTP router engine.
// It is responsible for assembling middleware (CORS, Logger, Auth) and registering routes for various modules.
func NewRouter(
	cfg *config.Config,
	userService user.Service,
	locationService location.Service,
	assetService asset.Service,
	kitService kit.Service,
	maintenanceService maintenance.Service,
	bookingService booking.Service,
	jwtManager *auth.JWTManager,
) *gin.Engine {

	r := gin.New()

	// Global Middleware:
	// - Logger: Logs request information to the console.
	// - Recovery: Captures panics to prevent server crashes and returns a 500 error.
	r.Use(gin.Logger(), gin.Recovery())

	// Configure CORS (Cross-Origin Resource Sharing).
	corsConfig := cors.DefaultConfig()
	if cfg.IsProduction {
		corsConfig.AllowOrigins = splitOrigins(cfg.ProdOrigins)
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	// authMiddleware: Validates if the request contains a valid JWT.
	authMiddleware := auth.AuthRequired(jwtManager)
	// userMiddleware: Resolves the account and stores its flags for permission checks.
	userMiddleware := LoadUserFlags(userService)
	// sysAdminMiddleware: Further checks if the authenticated user has System Admin privileges.
	sysAdminMiddleware := RequireSystemAdmin(userService)

	// Initialize HTTP Handlers for each module (injecting Service dependencies).
	authHandler := NewAuthHandler(userService, jwtManager)
	userHandler := userHttp.NewHandler(userService)
	locationHandler := locationHttp.NewHandler(locationService)
	assetHandler := assetHttp.NewHandler(assetService)
	kitHandler := kitHttp.NewHandler(kitService)
	maintenanceHandler := maintenanceHttp.NewHandler(maintenanceService)
	bookingHandler := bookingHttp.NewHandler(bookingService)

	// Register API routes under /v1
	v1 := r.Group("/v1")
	{
		v1.POST("/auth/register", authHandler.Register)
		v1.POST("/auth/login", authHandler.Login)
		v1.GET("/me", authMiddleware, authHandler.Me)

		userHttp.RegisterRoutes(v1, userHandler, authMiddleware, sysAdminMiddleware)
		locationHttp.RegisterRoutes(v1, locationHandler, authMiddleware, sysAdminMiddleware)
		assetHttp.RegisterRoutes(v1, assetHandler, authMiddleware, sysAdminMiddleware)
		kitHttp.RegisterRoutes(v1, kitHandler, authMiddleware, sysAdminMiddleware)
		maintenanceHttp.RegisterRoutes(v1, maintenanceHandler, authMiddleware, sysAdminMiddleware)
		bookingHttp.RegisterRoutes(v1, bookingHandler, authMiddleware, userMiddleware)
	}

	return r
}

// splitOrigins parses the comma-separated PROD_ORIGINS value.
func splitOrigins(origins string) []string {
	var out []string
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
