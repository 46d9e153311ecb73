package service

import (
	"agendamento/cmd/internal/domain/entity"
	"agendamento/cmd/internal/utils"
	"context"
	"fmt"
	"strings"
)

const (
	DefaultAdminName     = "Admin"
	DefaultAdminEmail    = "admin@email.com"
	DefaultAdminPassword = "admin123"
)

// EnsureAdmin creates an admin account with the given credentials unless a
// user with that email already exists. It reports whether a user was created.
func EnsureAdmin(ctx context.Context, repo UserRepository, name, email, password string) (bool, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	existing, err := repo.FindByEmail(ctx, email)
	if err != nil {
		return false, fmt.Errorf("look up %s: %w", email, err)
	}
	if existing != nil {
		return false, nil
	}

	hash, err := HashPassword(password)
	if err != nil {
		return false, fmt.Errorf("hash password: %w", err)
	}

	now := utils.NowUTC()
	admin := &entity.User{
		Name:      name,
		Email:     email,
		Password:  hash,
		IsAdmin:   true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := repo.Save(ctx, admin); err != nil {
		return false, fmt.Errorf("create admin: %w", err)
	}
	return true, nil
}

// PromoteUser grants admin rights to the user owning email.
func PromoteUser(ctx context.Context, repo UserRepository, email string) (*entity.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("look up %s: %w", email, err)
	}
	if user == nil {
		return nil, fmt.Errorf("no user with email %s", email)
	}
	if user.IsAdmin {
		return user, nil
	}

	user.IsAdmin = true
	user.UpdatedAt = utils.NowUTC()
	if err := repo.Save(ctx, user); err != nil {
		return nil, fmt.Errorf("promote %s: %w", email, err)
	}
	return user, nil
}
