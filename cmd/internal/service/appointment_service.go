package service

import (
	"agendamento/cmd/internal/domain/database/repository"
	"agendamento/cmd/internal/domain/entity"
	"agendamento/cmd/internal/utils"
	"agendamento/cmd/internal/utils/apierror"
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"
)

type AppointmentRepository interface {
	FindByID(ctx context.Context, id int) (*entity.Appointment, error)
	FindAll(ctx context.Context) ([]*entity.Appointment, error)
	FindByUserID(ctx context.Context, userID int) ([]*entity.Appointment, error)
	FindBookedTimes(ctx context.Context, date string) ([]string, error)
	Book(ctx context.Context, appt *entity.Appointment) error
	Delete(ctx context.Context, appt *entity.Appointment) error
}

type AppointmentRequest struct {
	Date string `json:"date" validate:"required,isodate"`
	Time string `json:"time" validate:"required,slot"`
}

type AppointmentResponse struct {
	ID       int    `json:"id"`
	UserID   int    `json:"user_id"`
	Date     string `json:"date"`
	Time     string `json:"time"`
	UserName string `json:"user_name"`
}

type AvailableSlotsResponse struct {
	Date           string   `json:"date"`
	AvailableSlots []string `json:"available_slots"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type DefaultAppointmentService struct {
	AppointmentRepo AppointmentRepository
	Validate        *validator.Validate
}

func NewAppointmentService(apptRepo AppointmentRepository, validate *validator.Validate) *DefaultAppointmentService {
	return &DefaultAppointmentService{AppointmentRepo: apptRepo, Validate: validate}
}

// AvailableSlots lists the catalog times not yet booked on date, ascending.
func (a *DefaultAppointmentService) AvailableSlots(ctx context.Context, date string) (*AvailableSlotsResponse, apierror.ErrorResponse) {
	if err := a.Validate.Var(date, "required,isodate"); err != nil {
		return nil, apierror.NewInvalidParamTypeError("date", "YYYY-MM-DD")
	}

	booked, err := a.AppointmentRepo.FindBookedTimes(ctx, date)
	if err != nil {
		log.Errorf("failed to fetch booked times for %s: %v", date, err)
		return nil, apierror.InternalServerError
	}

	taken := make(map[string]struct{}, len(booked))
	for _, t := range booked {
		taken[t] = struct{}{}
	}

	free := make([]string, 0, len(entity.Slots()))
	for _, slot := range entity.Slots() {
		if _, ok := taken[slot]; !ok {
			free = append(free, utils.ShortTime(slot))
		}
	}

	return &AvailableSlotsResponse{Date: date, AvailableSlots: free}, nil
}

func (a *DefaultAppointmentService) CreateAppointment(ctx context.Context, caller *entity.User, req *AppointmentRequest) (*AppointmentResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if valerr := a.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	slot, _ := utils.NormalizeTime(req.Time)
	appointment := &entity.Appointment{
		UserID:    caller.ID,
		Date:      req.Date,
		Time:      slot,
		CreatedAt: utils.NowUTC(),
	}

	err := a.AppointmentRepo.Book(ctx, appointment)
	if errors.Is(err, repository.ErrSlotTaken) {
		return nil, apierror.SlotUnavailableError
	}
	if err != nil {
		log.Errorf("failed to save appointment: %v", err)
		return nil, apierror.InternalServerError
	}

	log.Infof("user %d booked %s %s", caller.ID, appointment.Date, appointment.Time)
	return toAppointmentResponse(appointment, caller.Name), nil
}

func (a *DefaultAppointmentService) ListOwnAppointments(ctx context.Context, caller *entity.User) ([]*AppointmentResponse, apierror.ErrorResponse) {
	appts, err := a.AppointmentRepo.FindByUserID(ctx, caller.ID)
	if err != nil {
		log.Errorf("failed to find appointments for user %d: %v", caller.ID, err)
		return nil, apierror.InternalServerError
	}

	response := make([]*AppointmentResponse, len(appts))
	for i, appt := range appts {
		response[i] = toAppointmentResponse(appt, caller.Name)
	}
	return response, nil
}

// CancelAppointment deletes one of the caller's own appointments. Someone
// else's appointment is reported as not found.
func (a *DefaultAppointmentService) CancelAppointment(ctx context.Context, caller *entity.User, id int) (*MessageResponse, apierror.ErrorResponse) {
	appt, err := a.AppointmentRepo.FindByID(ctx, id)
	if err != nil {
		log.Errorf("failed to fetch appointment by id %d: %v", id, err)
		return nil, apierror.InternalServerError
	}

	if appt == nil || appt.UserID != caller.ID {
		return nil, apierror.AppointmentNotFoundError
	}

	err = a.AppointmentRepo.Delete(ctx, appt)
	if err != nil {
		log.Errorf("failed to delete appointment by id %d: %v", id, err)
		return nil, apierror.InternalServerError
	}
	return &MessageResponse{Message: "Agendamento cancelado com sucesso"}, nil
}

func toAppointmentResponse(appt *entity.Appointment, ownerName string) *AppointmentResponse {
	return &AppointmentResponse{
		ID:       appt.ID,
		UserID:   appt.UserID,
		Date:     appt.Date,
		Time:     appt.Time,
		UserName: ownerName,
	}
}
