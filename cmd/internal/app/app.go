package app

import (
	"agendamento/cmd/internal/config"
	"agendamento/cmd/internal/domain/database"
	"agendamento/cmd/internal/domain/database/repository"
	"agendamento/cmd/internal/middleware"
	"agendamento/cmd/internal/routes"
	"agendamento/cmd/internal/service"
	"agendamento/cmd/internal/utils/validators"
	"net"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

type App struct {
	Echo         *echo.Echo
	LoginLimiter *middleware.RateLimiter
}

// New wires repositories, services and routes on top of db.
func New(cfg *config.Config, db *gorm.DB) (*App, error) {
	validate := validators.New()

	// Getting repositories
	userRepo := repository.NewUserRepository(db)
	apptRepo := repository.NewAppointmentRepository(db)

	// Getting services
	authService, err := service.NewAuthService(userRepo, cfg.Auth)
	if err != nil {
		return nil, err
	}
	userService := service.NewUserService(userRepo, validate, authService)
	apptService := service.NewAppointmentService(apptRepo, validate)
	adminService := service.NewAdminService(userRepo, apptRepo, validate)

	limiter := middleware.NewRateLimiter(cfg.RateLimit.PerSecond, cfg.RateLimit.Burst)

	// Getting routes
	router := &routes.Router{
		Root:         routes.NewRootDefault(func() error { return database.Ping(db) }),
		Users:        routes.NewUserDefault(userService),
		Appointment:  routes.NewAppointmentDefault(apptService),
		Admin:        routes.NewAdminDefault(adminService),
		Auth:         authService,
		LoginLimiter: limiter,
		CORSOrigins:  cfg.CORSOrigins,
		IPExtractor:  ipExtractor(cfg.TrustedProxies),
	}

	return &App{Echo: router.NewEcho(), LoginLimiter: limiter}, nil
}

// ipExtractor reads X-Forwarded-For only when the request comes through one
// of the configured proxies.
func ipExtractor(trusted []*net.IPNet) echo.IPExtractor {
	if len(trusted) == 0 {
		return echo.ExtractIPDirect()
	}
	opts := []echo.TrustOption{
		echo.TrustLoopback(false),
		echo.TrustLinkLocal(false),
		echo.TrustPrivateNet(false),
	}
	for _, ipnet := range trusted {
		opts = append(opts, echo.TrustIPRange(ipnet))
	}
	return echo.ExtractIPFromXFFHeader(opts...)
}
