package service

import (
	"agendamento/cmd/internal/config"
	"agendamento/cmd/internal/domain/database"
	"agendamento/cmd/internal/domain/database/repository"
	"agendamento/cmd/internal/domain/entity"
	"agendamento/cmd/internal/utils/validators"
	"context"
	"testing"

	"gorm.io/gorm"
)

type fixture struct {
	db       *gorm.DB
	users    *repository.DefaultUserRepository
	appts    *repository.DefaultAppointmentRepository
	auth     *DefaultAuthService
	userSvc  *DefaultUserService
	apptSvc  *DefaultAppointmentService
	adminSvc *DefaultAdminService
}

var testAuthConfig = config.AuthConfig{
	SecretKey:        "test-secret",
	Algorithm:        "HS256",
	TokenExpireHours: 24,
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := database.Init("sqlite:///:memory:")
	if err != nil {
		t.Fatalf("init test db: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	validate := validators.New()
	users := repository.NewUserRepository(db)
	appts := repository.NewAppointmentRepository(db)

	auth, err := NewAuthService(users, testAuthConfig)
	if err != nil {
		t.Fatalf("NewAuthService() error = %v", err)
	}

	return &fixture{
		db:       db,
		users:    users,
		appts:    appts,
		auth:     auth,
		userSvc:  NewUserService(users, validate, auth),
		apptSvc:  NewAppointmentService(appts, validate),
		adminSvc: NewAdminService(users, appts, validate),
	}
}

func (f *fixture) register(t *testing.T, name, email string) *entity.User {
	t.Helper()
	resp, apierr := f.userSvc.Register(context.Background(), &CreateUserRequest{Name: name, Email: email, Password: "secret123"})
	if apierr != nil {
		t.Fatalf("Register(%s) error = %v", email, apierr)
	}
	user, err := f.users.FindByID(context.Background(), resp.ID)
	if err != nil || user == nil {
		t.Fatalf("FindByID(%d) = %v, %v", resp.ID, user, err)
	}
	return user
}

func (f *fixture) admin(t *testing.T) *entity.User {
	t.Helper()
	if _, err := EnsureAdmin(context.Background(), f.users, DefaultAdminName, DefaultAdminEmail, DefaultAdminPassword); err != nil {
		t.Fatalf("EnsureAdmin() error = %v", err)
	}
	user, err := f.users.FindByEmail(context.Background(), DefaultAdminEmail)
	if err != nil || user == nil {
		t.Fatalf("admin lookup = %v, %v", user, err)
	}
	return user
}

func (f *fixture) book(t *testing.T, user *entity.User, date, time string) *AppointmentResponse {
	t.Helper()
	resp, apierr := f.apptSvc.CreateAppointment(context.Background(), user, &AppointmentRequest{Date: date, Time: time})
	if apierr != nil {
		t.Fatalf("CreateAppointment(%s %s) error = %v", date, time, apierr)
	}
	return resp
}

func wantCode(t *testing.T, apierr interface{ Code() int }, code int) {
	t.Helper()
	if apierr == nil {
		t.Fatalf("expected error with status %d, got none", code)
	}
	if apierr.Code() != code {
		t.Fatalf("status = %d, want %d (%v)", apierr.Code(), code, apierr)
	}
}
