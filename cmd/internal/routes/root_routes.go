package routes

import (
	"agendamento/cmd/internal/service"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
)

// Pinger reports whether the store is reachable.
type Pinger func() error

type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

type DefaultRootRoute struct {
	Ping Pinger
}

func NewRootDefault(ping Pinger) *DefaultRootRoute {
	return &DefaultRootRoute{Ping: ping}
}

func (r *DefaultRootRoute) GetRoot(c echo.Context) error {
	return c.JSON(http.StatusOK, &service.MessageResponse{Message: "Olá Mundo!"})
}

func (r *DefaultRootRoute) GetHealth(c echo.Context) error {
	if err := r.Ping(); err != nil {
		log.Errorf("health check: database unreachable: %v", err)
		return c.JSON(http.StatusServiceUnavailable, &HealthResponse{Status: "degraded", Database: "down"})
	}
	return c.JSON(http.StatusOK, &HealthResponse{Status: "ok", Database: "up"})
}
