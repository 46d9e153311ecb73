package service

import (
	"agendamento/cmd/internal/domain/entity"
	"agendamento/cmd/internal/utils/apierror"
	"context"
	"net/http"
	"strings"
	"testing"
)

func strPtr(s string) *string { return &s }

func TestAdminService_ListUsers(t *testing.T) {
	f := newFixture(t)
	admin := f.admin(t)
	f.register(t, "alice", "alice@example.com")

	resp, apierr := f.adminSvc.ListUsers(context.Background())
	if apierr != nil {
		t.Fatalf("ListUsers() error = %v", apierr)
	}
	if len(resp.Users) != 2 {
		t.Fatalf("got %d users, want 2", len(resp.Users))
	}
	if resp.Users[0].ID != admin.ID || !resp.Users[0].IsAdmin {
		t.Errorf("first user = %+v, want the admin", resp.Users[0])
	}
}

func TestAdminService_CreateUser(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.register(t, "alice", "alice@example.com")

	resp, apierr := f.adminSvc.CreateUser(ctx, &AdminCreateUserRequest{
		CreateUserRequest: CreateUserRequest{Name: "carol", Email: "carol@example.com", Password: "secret123"},
		IsAdmin:           true,
	})
	if apierr != nil {
		t.Fatalf("CreateUser() error = %v", apierr)
	}
	if !resp.IsAdmin || resp.Name != "carol" {
		t.Errorf("CreateUser() = %+v", resp)
	}

	_, apierr = f.adminSvc.CreateUser(ctx, &AdminCreateUserRequest{
		CreateUserRequest: CreateUserRequest{Name: "dup", Email: "alice@example.com", Password: "secret123"},
	})
	if apierr != apierror.UserAlreadyExistsError {
		t.Errorf("duplicate CreateUser() = %v, want UserAlreadyExistsError", apierr)
	}
}

func TestAdminService_UpdateUser(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.register(t, "alice", "alice@example.com")
	f.register(t, "bob", "bob@example.com")

	resp, apierr := f.adminSvc.UpdateUser(ctx, alice.ID, &UpdateUserRequest{
		Name:     strPtr("Alice Liddell"),
		Password: strPtr("new-secret"),
	})
	if apierr != nil {
		t.Fatalf("UpdateUser() error = %v", apierr)
	}
	if resp.Name != "Alice Liddell" || resp.Email != "alice@example.com" {
		t.Errorf("UpdateUser() = %+v", resp)
	}

	if _, apierr := f.userSvc.Login(ctx, &UserLoginRequest{Email: "alice@example.com", Password: "new-secret"}); apierr != nil {
		t.Errorf("login with the new password failed: %v", apierr)
	}

	_, apierr = f.adminSvc.UpdateUser(ctx, alice.ID, &UpdateUserRequest{Email: strPtr("bob@example.com")})
	if apierr != apierror.UserAlreadyExistsError {
		t.Errorf("update to taken email = %v, want UserAlreadyExistsError", apierr)
	}

	_, apierr = f.adminSvc.UpdateUser(ctx, 999, &UpdateUserRequest{Name: strPtr("ghost")})
	wantCode(t, apierr, http.StatusNotFound)

	_, apierr = f.adminSvc.UpdateUser(ctx, alice.ID, &UpdateUserRequest{Email: strPtr("nope")})
	wantCode(t, apierr, http.StatusUnprocessableEntity)

	_, apierr = f.adminSvc.UpdateUser(ctx, alice.ID, &UpdateUserRequest{Password: strPtr(strings.Repeat("é", 40))})
	wantCode(t, apierr, http.StatusUnprocessableEntity)
}

func TestAdminService_DeleteUser(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	admin := f.admin(t)
	alice := f.register(t, "alice", "alice@example.com")

	_, apierr := f.adminSvc.DeleteUser(ctx, admin, admin.ID)
	if apierr != apierror.SelfDeleteError {
		t.Fatalf("self delete = %v, want SelfDeleteError", apierr)
	}

	_, apierr = f.adminSvc.DeleteUser(ctx, admin, 999)
	wantCode(t, apierr, http.StatusNotFound)

	msg, apierr := f.adminSvc.DeleteUser(ctx, admin, alice.ID)
	if apierr != nil {
		t.Fatalf("DeleteUser() error = %v", apierr)
	}
	if msg.Message != "Usuário removido com sucesso" {
		t.Errorf("message = %q", msg.Message)
	}

	gone, _ := f.users.FindByID(ctx, alice.ID)
	if gone != nil {
		t.Error("user still present after delete")
	}
}

func TestAdminService_AppointmentsOfDeletedUser(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	admin := f.admin(t)
	alice := f.register(t, "alice", "alice@example.com")
	bob := f.register(t, "bob", "bob@example.com")

	f.book(t, alice, "2025-11-01", "10:00")
	f.book(t, bob, "2025-11-01", "09:00")

	if _, apierr := f.adminSvc.DeleteUser(ctx, admin, alice.ID); apierr != nil {
		t.Fatalf("DeleteUser() error = %v", apierr)
	}

	appts, apierr := f.adminSvc.ListAllAppointments(ctx)
	if apierr != nil {
		t.Fatalf("ListAllAppointments() error = %v", apierr)
	}
	if len(appts) != 2 {
		t.Fatalf("got %d appointments, want 2", len(appts))
	}

	if appts[0].Time != "09:00:00" || appts[0].UserName != "bob" {
		t.Errorf("first = %+v, want bob at 09:00", appts[0])
	}
	if appts[1].UserID != alice.ID || appts[1].UserName != entity.UnknownOwner {
		t.Errorf("second = %+v, want alice's appointment with unknown owner", appts[1])
	}
}

func TestAdminService_DeleteAppointment(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.register(t, "alice", "alice@example.com")
	appt := f.book(t, alice, "2025-11-01", "10:00")

	if _, apierr := f.adminSvc.DeleteAppointment(ctx, appt.ID); apierr != nil {
		t.Fatalf("DeleteAppointment() error = %v", apierr)
	}

	_, apierr := f.adminSvc.DeleteAppointment(ctx, appt.ID)
	if apierr != apierror.AppointmentNotFoundError {
		t.Errorf("second delete = %v, want AppointmentNotFoundError", apierr)
	}
}
