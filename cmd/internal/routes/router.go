package routes

import (
	"agendamento/cmd/internal/middleware"
	"agendamento/cmd/internal/utils/apierror"
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
)

type Router struct {
	Root        *DefaultRootRoute
	Users       *DefaultUserRoute
	Appointment *DefaultAppointmentRoute
	Admin       *DefaultAdminRoute

	Auth         middleware.UserResolver
	LoginLimiter *middleware.RateLimiter
	CORSOrigins  []string
	// IPExtractor decides the client IP seen by the rate limiter. Nil means
	// the peer address, ignoring forwarding headers.
	IPExtractor echo.IPExtractor
}

// NewEcho builds the HTTP application with every route and middleware attached.
func (r *Router) NewEcho() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = ErrorHandler
	e.IPExtractor = r.IPExtractor
	if e.IPExtractor == nil {
		e.IPExtractor = echo.ExtractIPDirect()
	}
	e.Pre(echomw.RemoveTrailingSlash())

	e.Use(echomw.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.RequestLogger())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     r.CORSOrigins,
		AllowCredentials: true,
		AllowHeaders:     []string{"*"},
	}))

	e.GET("/", r.Root.GetRoot)
	e.GET("/health", r.Root.GetHealth)

	// Registration and login
	var limited []echo.MiddlewareFunc
	if r.LoginLimiter != nil {
		limited = append(limited, middleware.RateLimit(r.LoginLimiter))
	}
	e.POST("/registrar", r.Users.Register, limited...)
	e.POST("/login", r.Users.Login, limited...)

	// Any authenticated user
	requireUser := middleware.RequireUser(r.Auth)
	e.GET("/horarios-disponiveis/:date", r.Appointment.GetAvailableSlots, requireUser)
	e.POST("/agendar", r.Appointment.CreateAppointment, requireUser)
	e.GET("/meus-agendamentos", r.Appointment.GetOwnAppointments, requireUser)
	e.DELETE("/cancelar-agendamento/:id", r.Appointment.CancelAppointment, requireUser)

	// Admins only
	admin := e.Group("/admin", requireUser, middleware.RequireAdmin())
	admin.GET("/usuarios", r.Admin.GetUsers)
	admin.POST("/usuarios", r.Admin.CreateUser)
	admin.PUT("/usuarios/:id", r.Admin.UpdateUser)
	admin.DELETE("/usuarios/:id", r.Admin.DeleteUser)
	admin.GET("/agendamentos", r.Admin.GetAppointments)
	admin.DELETE("/agendamentos/:id", r.Admin.DeleteAppointment)

	return e
}

// ErrorHandler renders framework errors (unknown route, wrong method, panics)
// with the same {"detail"} body the services use.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	resp := apierror.InternalServerError
	var he *echo.HTTPError
	if errors.As(err, &he) {
		resp = apierror.NewSimple(he.Code, fmt.Sprint(he.Message))
	} else {
		log.Errorf("unhandled error on %s %s: %v", c.Request().Method, c.Path(), err)
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(resp.Code())
	} else {
		err = c.JSON(resp.Code(), resp)
	}
	if err != nil {
		log.Errorf("failed to write error response: %v", err)
	}
}
