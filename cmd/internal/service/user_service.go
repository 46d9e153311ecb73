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

type UserRepository interface {
	FindByID(ctx context.Context, id int) (*entity.User, error)
	FindByIDs(ctx context.Context, ids []int) (map[int]*entity.User, error)
	FindAll(ctx context.Context) ([]*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Save(ctx context.Context, user *entity.User) error
	Delete(ctx context.Context, user *entity.User) error
}

// TokenIssuer signs access tokens for authenticated users.
type TokenIssuer interface {
	IssueToken(user *entity.User) (string, error)
}

type CreateUserRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=120"`
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,min=6,maxbytes=72"`
}

type UserLoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UserResponse struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"is_admin"`
}

type UserListResponse struct {
	Users []*UserResponse `json:"users"`
}

type DefaultUserService struct {
	UserRepo UserRepository
	Validate *validator.Validate
	Tokens   TokenIssuer

	// compared against when the email is unknown, so both failure paths cost a bcrypt run
	dummyHash string
}

func NewUserService(userRepo UserRepository, validate *validator.Validate, tokens TokenIssuer) *DefaultUserService {
	dummy, err := HashPassword("agendamento-dummy-password")
	if err != nil {
		log.Warnf("failed to prepare dummy password hash: %v", err)
	}
	return &DefaultUserService{UserRepo: userRepo, Validate: validate, Tokens: tokens, dummyHash: dummy}
}

// Register creates a regular (non admin) account.
func (u *DefaultUserService) Register(ctx context.Context, req *CreateUserRequest) (*UserResponse, apierror.ErrorResponse) {
	user, apierr := createUser(ctx, u.UserRepo, u.Validate, req, false)
	if apierr != nil {
		return nil, apierr
	}
	log.Infof("user %d registered", user.ID)
	return toUserResponse(user), nil
}

func (u *DefaultUserService) Login(ctx context.Context, req *UserLoginRequest) (*TokenResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	req.Email = strings.ToLower(req.Email)
	if err := u.Validate.Struct(req); err != nil {
		return nil, apierror.FromValidationError(err)
	}

	user, err := u.UserRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		log.Errorf("failed to fetch user from database: %v", err)
		return nil, apierror.InternalServerError
	}

	if user == nil {
		CheckPassword(u.dummyHash, req.Password)
		return nil, apierror.CredentialsMismatchError
	}

	if !CheckPassword(user.Password, req.Password) {
		return nil, apierror.CredentialsMismatchError
	}

	token, err := u.Tokens.IssueToken(user)
	if err != nil {
		log.Errorf("failed to sign token for user %d: %v", user.ID, err)
		return nil, apierror.InternalServerError
	}
	return &TokenResponse{AccessToken: token, TokenType: "bearer"}, nil
}

// createUser is shared by self registration and the admin route. The email
// pre-check gives the common case a clean answer; the unique index settles
// concurrent registrations.
func createUser(ctx context.Context, repo UserRepository, validate *validator.Validate, req *CreateUserRequest, isAdmin bool) (*entity.User, apierror.ErrorResponse) {
	utils.Sanitize(req)
	req.Email = strings.ToLower(req.Email)
	if err := validate.Struct(req); err != nil {
		return nil, apierror.FromValidationError(err)
	}

	found, err := repo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		log.Errorf("failed to check if user already exists: %v", err)
		return nil, apierror.InternalServerError
	}

	if found {
		return nil, apierror.UserAlreadyExistsError
	}

	hash, err := HashPassword(req.Password)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return nil, PasswordTooLongError
	}
	if err != nil {
		log.Errorf("failed to hash password: %v", err)
		return nil, apierror.InternalServerError
	}

	now := utils.NowUTC()
	user := &entity.User{
		Name:      req.Name,
		Email:     req.Email,
		Password:  hash,
		IsAdmin:   isAdmin,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err = repo.Save(ctx, user)
	if errors.Is(err, repository.ErrDuplicateKey) {
		return nil, apierror.UserAlreadyExistsError
	}
	if err != nil {
		log.Errorf("failed to create user: %v", err)
		return nil, apierror.InternalServerError
	}
	return user, nil
}

func toUserResponse(user *entity.User) *UserResponse {
	return &UserResponse{
		ID:      user.ID,
		Name:    user.Name,
		Email:   user.Email,
		IsAdmin: user.IsAdmin,
	}
}
