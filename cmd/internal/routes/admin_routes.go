package routes

import (
	"agendamento/cmd/internal/domain/entity"
	"agendamento/cmd/internal/middleware"
	"agendamento/cmd/internal/service"
	"agendamento/cmd/internal/utils/apierror"
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
)

type AdminService interface {
	ListUsers(ctx context.Context) (*service.UserListResponse, apierror.ErrorResponse)
	CreateUser(ctx context.Context, req *service.AdminCreateUserRequest) (*service.UserResponse, apierror.ErrorResponse)
	UpdateUser(ctx context.Context, id int, req *service.UpdateUserRequest) (*service.UserResponse, apierror.ErrorResponse)
	DeleteUser(ctx context.Context, admin *entity.User, id int) (*service.MessageResponse, apierror.ErrorResponse)
	ListAllAppointments(ctx context.Context) ([]*service.AppointmentResponse, apierror.ErrorResponse)
	DeleteAppointment(ctx context.Context, id int) (*service.MessageResponse, apierror.ErrorResponse)
}

type DefaultAdminRoute struct {
	AdminService AdminService
}

func NewAdminDefault(adminService AdminService) *DefaultAdminRoute {
	return &DefaultAdminRoute{AdminService: adminService}
}

func (r *DefaultAdminRoute) GetUsers(c echo.Context) error {
	users, apierr := r.AdminService.ListUsers(c.Request().Context())
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, users)
}

func (r *DefaultAdminRoute) CreateUser(c echo.Context) error {
	var req service.AdminCreateUserRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	user, apierr := r.AdminService.CreateUser(c.Request().Context(), &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusCreated, user)
}

func (r *DefaultAdminRoute) UpdateUser(c echo.Context) error {
	id, apierr := intParam(c, "id")
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	var req service.UpdateUserRequest
	if err := (&echo.DefaultBinder{}).BindBody(c, &req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	user, apierr := r.AdminService.UpdateUser(c.Request().Context(), id, &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, user)
}

func (r *DefaultAdminRoute) DeleteUser(c echo.Context) error {
	id, apierr := intParam(c, "id")
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	admin, err := middleware.CurrentUser(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, apierror.InvalidAuthTokenError)
	}

	msg, apierr := r.AdminService.DeleteUser(c.Request().Context(), admin, id)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, msg)
}

func (r *DefaultAdminRoute) GetAppointments(c echo.Context) error {
	appts, apierr := r.AdminService.ListAllAppointments(c.Request().Context())
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, appts)
}

func (r *DefaultAdminRoute) DeleteAppointment(c echo.Context) error {
	id, apierr := intParam(c, "id")
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	msg, apierr := r.AdminService.DeleteAppointment(c.Request().Context(), id)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, msg)
}
