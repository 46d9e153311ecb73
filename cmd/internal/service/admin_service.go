package service

import (
	"agendamento/cmd/internal/domain/database/repository"
	"agendamento/cmd/internal/domain/entity"
	"agendamento/cmd/internal/utils"
	"agendamento/cmd/internal/utils/apierror"
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"
	"golang.org/x/crypto/bcrypt"
)

type AdminCreateUserRequest struct {
	CreateUserRequest
	IsAdmin bool `json:"is_admin"`
}

// UpdateUserRequest changes only the fields that are present.
type UpdateUserRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=1,max=120"`
	Email    *string `json:"email" validate:"omitempty,email,max=254"`
	Password *string `json:"password" validate:"omitempty,min=6,maxbytes=72"`
}

type DefaultAdminService struct {
	UserRepo        UserRepository
	AppointmentRepo AppointmentRepository
	Validate        *validator.Validate
}

func NewAdminService(userRepo UserRepository, apptRepo AppointmentRepository, validate *validator.Validate) *DefaultAdminService {
	return &DefaultAdminService{UserRepo: userRepo, AppointmentRepo: apptRepo, Validate: validate}
}

func (s *DefaultAdminService) ListUsers(ctx context.Context) (*UserListResponse, apierror.ErrorResponse) {
	users, err := s.UserRepo.FindAll(ctx)
	if err != nil {
		log.Errorf("failed to fetch all users: %v", err)
		return nil, apierror.InternalServerError
	}

	resp := make([]*UserResponse, len(users))
	for i, user := range users {
		resp[i] = toUserResponse(user)
	}
	return &UserListResponse{Users: resp}, nil
}

func (s *DefaultAdminService) CreateUser(ctx context.Context, req *AdminCreateUserRequest) (*UserResponse, apierror.ErrorResponse) {
	user, apierr := createUser(ctx, s.UserRepo, s.Validate, &req.CreateUserRequest, req.IsAdmin)
	if apierr != nil {
		return nil, apierr
	}
	log.Infof("user %d created by admin (is_admin=%t)", user.ID, user.IsAdmin)
	return toUserResponse(user), nil
}

func (s *DefaultAdminService) UpdateUser(ctx context.Context, id int, req *UpdateUserRequest) (*UserResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if err := s.Validate.Struct(req); err != nil {
		return nil, apierror.FromValidationError(err)
	}

	user, err := s.UserRepo.FindByID(ctx, id)
	if err != nil {
		log.Errorf("failed to find user %d: %v", id, err)
		return nil, apierror.InternalServerError
	}
	if user == nil {
		return nil, apierror.UserMissingError
	}

	if req.Name != nil {
		user.Name = *req.Name
	}

	if req.Email != nil {
		email := strings.ToLower(*req.Email)
		if email != user.Email {
			other, err := s.UserRepo.FindByEmail(ctx, email)
			if err != nil {
				log.Errorf("failed to check email for user %d: %v", id, err)
				return nil, apierror.InternalServerError
			}
			if other != nil {
				return nil, apierror.UserAlreadyExistsError
			}
			user.Email = email
		}
	}

	if req.Password != nil {
		hash, err := HashPassword(*req.Password)
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, PasswordTooLongError
		}
		if err != nil {
			log.Errorf("failed to hash password: %v", err)
			return nil, apierror.InternalServerError
		}
		user.Password = hash
	}

	user.UpdatedAt = utils.NowUTC()
	err = s.UserRepo.Save(ctx, user)
	if errors.Is(err, repository.ErrDuplicateKey) {
		return nil, apierror.UserAlreadyExistsError
	}
	if err != nil {
		log.Errorf("failed to update user %d: %v", id, err)
		return nil, apierror.InternalServerError
	}
	return toUserResponse(user), nil
}

// DeleteUser removes the user row only. Their appointments stay and show up
// with an unknown owner.
func (s *DefaultAdminService) DeleteUser(ctx context.Context, admin *entity.User, id int) (*MessageResponse, apierror.ErrorResponse) {
	if id == admin.ID {
		return nil, apierror.SelfDeleteError
	}

	user, err := s.UserRepo.FindByID(ctx, id)
	if err != nil {
		log.Errorf("failed to find user %d: %v", id, err)
		return nil, apierror.InternalServerError
	}
	if user == nil {
		return nil, apierror.UserMissingError
	}

	if err = s.UserRepo.Delete(ctx, user); err != nil {
		log.Errorf("failed to delete user %d: %v", id, err)
		return nil, apierror.InternalServerError
	}

	log.Infof("user %d removed by admin %d", id, admin.ID)
	return &MessageResponse{Message: "Usuário removido com sucesso"}, nil
}

func (s *DefaultAdminService) ListAllAppointments(ctx context.Context) ([]*AppointmentResponse, apierror.ErrorResponse) {
	appts, err := s.AppointmentRepo.FindAll(ctx)
	if err != nil {
		log.Errorf("failed to fetch all appointments: %v", err)
		return nil, apierror.InternalServerError
	}

	ids := make([]int, 0, len(appts))
	seen := make(map[int]struct{}, len(appts))
	for _, appt := range appts {
		if _, ok := seen[appt.UserID]; !ok {
			seen[appt.UserID] = struct{}{}
			ids = append(ids, appt.UserID)
		}
	}

	owners, err := s.UserRepo.FindByIDs(ctx, ids)
	if err != nil {
		log.Errorf("failed to fetch appointment owners: %v", err)
		return nil, apierror.InternalServerError
	}

	response := make([]*AppointmentResponse, len(appts))
	for i, appt := range appts {
		name := entity.UnknownOwner
		if owner, ok := owners[appt.UserID]; ok {
			name = owner.Name
		}
		response[i] = toAppointmentResponse(appt, name)
	}
	return response, nil
}

func (s *DefaultAdminService) DeleteAppointment(ctx context.Context, id int) (*MessageResponse, apierror.ErrorResponse) {
	appt, err := s.AppointmentRepo.FindByID(ctx, id)
	if err != nil {
		log.Errorf("failed to fetch appointment by id %d: %v", id, err)
		return nil, apierror.InternalServerError
	}
	if appt == nil {
		return nil, apierror.AppointmentNotFoundError
	}

	if err = s.AppointmentRepo.Delete(ctx, appt); err != nil {
		log.Errorf("failed to delete appointment by id %d: %v", id, err)
		return nil, apierror.InternalServerError
	}
	return &MessageResponse{Message: "Agendamento removido com sucesso"}, nil
}
