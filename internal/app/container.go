package app

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/parishtools/equipment-booking-backend/internal/api"
	"github.com/parishtools/equipment-booking-backend/internal/asset"
	"github.com/parishtools/equipment-booking-backend/internal/auth"
	"github.com/parishtools/equipment-booking-backend/internal/booking"
	"github.com/parishtools/equipment-booking-backend/internal/config"
	"github.com/parishtools/equipment-booking-backend/internal/kit"
	"github.com/parishtools/equipment-booking-backend/internal/location"
	"github.com/parishtools/equipment-booking-backend/internal/maintenance"
	"github.com/parishtools/equipment-booking-backend/internal/pkg/storage"
	"github.com/parishtools/equipment-booking-backend/internal/user"
)

// Container holds the initialized components that are needed externally.
type Container struct {
	Router         *gin.Engine
	JWTManager     *auth.JWTManager
	BookingService booking.Service
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg *config.Config, pool *pgxpool.Pool) (*Container, error) {
	// Init Components
	passwordHasher := auth.NewBcryptPasswordHasherWithCost(cfg.BcryptCost)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTAccessTokenTTL)

	files, err := storage.NewLocalStorage(cfg.UploadDir)
	if err != nil {
		return nil, fmt.Errorf("init upload storage: %w", err)
	}
	images := storage.NewImageProcessor()

	// User Module
	userRepo := user.NewPgxRepository(pool)
	userService := user.NewService(userRepo, passwordHasher)

	// Location Module
	locRepo := location.NewPgxRepository(pool)
	locService := location.NewService(locRepo)

	// Asset Module
	assetRepo := asset.NewPgxRepository(pool)
	assetService := asset.NewService(assetRepo, locService, files, images)

	// Kit Module
	kitRepo := kit.NewPgxRepository(pool)
	kitService := kit.NewService(kitRepo, assetService)

	// Maintenance Module
	maintRepo := maintenance.NewPgxRepository(pool)
	maintService := maintenance.NewService(maintRepo, assetService)

	// Booking Module
	bookingRepo := booking.NewPgxRepository(pool)
	bookingService := booking.NewService(bookingRepo, assetService, kitService, userService)

	// Router
	router := api.NewRouter(
		cfg,
		userService,
		locService,
		assetService,
		kitService,
		maintService,
		bookingService,
		jwtManager,
	)

	return &Container{
		Router:         router,
		JWTManager:     jwtManager,
		BookingService: bookingService,
	}, nil
}
