package service

import (
	"agendamento/cmd/internal/config"
	"agendamento/cmd/internal/domain/entity"
	"agendamento/cmd/internal/utils/apierror"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/gommon/log"
	"golang.org/x/crypto/bcrypt"
)

// TokenClaims is the payload of an access token.
type TokenClaims struct {
	UserID  int    `json:"user_id"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"is_admin"`
	jwt.RegisteredClaims
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type DefaultAuthService struct {
	UserRepo UserRepository

	secret []byte
	method jwt.SigningMethod
	ttl    time.Duration
	now    func() time.Time
}

func NewAuthService(userRepo UserRepository, cfg config.AuthConfig) (*DefaultAuthService, error) {
	method, ok := jwt.GetSigningMethod(strings.ToUpper(cfg.Algorithm)).(*jwt.SigningMethodHMAC)
	if !ok {
		return nil, fmt.Errorf("unsupported token algorithm %q, expected HS256, HS384 or HS512", cfg.Algorithm)
	}
	if cfg.SecretKey == "" {
		return nil, errors.New("token secret must not be empty")
	}
	if cfg.TokenExpireHours <= 0 {
		return nil, errors.New("token ttl must be positive")
	}

	return &DefaultAuthService{
		UserRepo: userRepo,
		secret:   []byte(cfg.SecretKey),
		method:   method,
		ttl:      time.Duration(cfg.TokenExpireHours) * time.Hour,
		now:      time.Now,
	}, nil
}

// IssueToken signs the identity claims with an expiry of now + ttl.
func (a *DefaultAuthService) IssueToken(user *entity.User) (string, error) {
	now := a.now()
	claims := TokenClaims{
		UserID:  user.ID,
		Email:   user.Email,
		IsAdmin: user.IsAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(a.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	return jwt.NewWithClaims(a.method, claims).SignedString(a.secret)
}

func (a *DefaultAuthService) VerifyToken(raw string) (*TokenClaims, apierror.ErrorResponse) {
	claims := &TokenClaims{}
	tok, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		return a.secret, nil
	},
		jwt.WithValidMethods([]string{a.method.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(a.now),
	)

	if errors.Is(err, jwt.ErrTokenExpired) {
		return nil, apierror.ExpiredAuthTokenError
	}
	if err != nil || !tok.Valid || claims.UserID == 0 {
		return nil, apierror.InvalidAuthTokenError
	}
	return claims, nil
}

// ResolveCurrentUser verifies raw and loads the user it names. The returned
// row, not the token, is what role checks look at.
func (a *DefaultAuthService) ResolveCurrentUser(ctx context.Context, raw string) (*entity.User, apierror.ErrorResponse) {
	claims, apierr := a.VerifyToken(raw)
	if apierr != nil {
		return nil, apierr
	}

	user, err := a.UserRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		log.Errorf("failed to fetch user %d from token: %v", claims.UserID, err)
		return nil, apierror.InternalServerError
	}
	if user == nil {
		return nil, apierror.UserNotFoundError
	}
	return user, nil
}

func RequireAdmin(user *entity.User) (*entity.User, apierror.ErrorResponse) {
	if user == nil || !user.IsAdmin {
		return nil, apierror.ForbiddenError
	}
	return user, nil
}

// PasswordTooLongError is what a password over bcrypt's 72 byte input limit maps to.
var PasswordTooLongError = apierror.NewFieldValidationError("password", "maxbytes", "72")

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(hash), err
}

func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
