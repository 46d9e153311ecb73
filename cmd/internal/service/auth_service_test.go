package service

import (
	"agendamento/cmd/internal/config"
	"agendamento/cmd/internal/domain/entity"
	"agendamento/cmd/internal/utils/apierror"
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

func TestNewAuthService_RejectsBadConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.AuthConfig
	}{
		{"asymmetric alg", config.AuthConfig{SecretKey: "s", Algorithm: "RS256", TokenExpireHours: 1}},
		{"unknown alg", config.AuthConfig{SecretKey: "s", Algorithm: "nope", TokenExpireHours: 1}},
		{"empty secret", config.AuthConfig{SecretKey: "", Algorithm: "HS256", TokenExpireHours: 1}},
		{"zero ttl", config.AuthConfig{SecretKey: "s", Algorithm: "HS256", TokenExpireHours: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewAuthService(nil, tt.cfg); err == nil {
				t.Error("NewAuthService() expected error")
			}
		})
	}
}

func TestAuthService_IssueAndVerify(t *testing.T) {
	f := newFixture(t)
	user := &entity.User{ID: 7, Email: "alice@example.com", IsAdmin: true}

	token, err := f.auth.IssueToken(user)
	if err != nil {
		t.Fatalf("IssueToken() error = %v", err)
	}

	claims, apierr := f.auth.VerifyToken(token)
	if apierr != nil {
		t.Fatalf("VerifyToken() error = %v", apierr)
	}
	if claims.UserID != 7 || claims.Email != "alice@example.com" || !claims.IsAdmin {
		t.Errorf("claims = %+v", claims)
	}

	ttl := claims.ExpiresAt.Sub(claims.IssuedAt.Time)
	if ttl != 24*time.Hour {
		t.Errorf("token ttl = %v, want 24h", ttl)
	}
}

func TestAuthService_VerifyExpired(t *testing.T) {
	f := newFixture(t)
	issuedAt := time.Now().Add(-25 * time.Hour)
	f.auth.now = func() time.Time { return issuedAt }

	token, err := f.auth.IssueToken(&entity.User{ID: 1, Email: "a@b.com"})
	if err != nil {
		t.Fatalf("IssueToken() error = %v", err)
	}

	f.auth.now = time.Now
	_, apierr := f.auth.VerifyToken(token)
	if apierr != apierror.ExpiredAuthTokenError {
		t.Fatalf("VerifyToken() = %v, want ExpiredAuthTokenError", apierr)
	}
}

func TestAuthService_VerifyInvalid(t *testing.T) {
	f := newFixture(t)
	valid, _ := f.auth.IssueToken(&entity.User{ID: 1, Email: "a@b.com"})

	otherKey := jwt.NewWithClaims(jwt.SigningMethodHS256, TokenClaims{
		UserID:           1,
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	})
	forged, _ := otherKey.SignedString([]byte("another-secret"))

	otherAlg := jwt.NewWithClaims(jwt.SigningMethodHS512, TokenClaims{
		UserID:           1,
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	})
	wrongAlg, _ := otherAlg.SignedString([]byte(testAuthConfig.SecretKey))

	noExpiry := jwt.NewWithClaims(jwt.SigningMethodHS256, TokenClaims{UserID: 1})
	unbounded, _ := noExpiry.SignedString([]byte(testAuthConfig.SecretKey))

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, TokenClaims{
		UserID:           1,
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	})
	none, _ := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)

	tests := map[string]string{
		"garbage":          "not-a-token",
		"tampered payload": valid[:strings.LastIndex(valid, ".")] + "x" + valid[strings.LastIndex(valid, "."):],
		"other secret":     forged,
		"other algorithm":  wrongAlg,
		"no expiry":        unbounded,
		"alg none":         none,
	}

	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			_, apierr := f.auth.VerifyToken(token)
			if apierr != apierror.InvalidAuthTokenError {
				t.Errorf("VerifyToken() = %v, want InvalidAuthTokenError", apierr)
			}
		})
	}
}

func TestAuthService_ResolveCurrentUser(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.register(t, "alice", "alice@example.com")

	token, _ := f.auth.IssueToken(alice)
	user, apierr := f.auth.ResolveCurrentUser(ctx, token)
	if apierr != nil {
		t.Fatalf("ResolveCurrentUser() error = %v", apierr)
	}
	if user.ID != alice.ID {
		t.Errorf("resolved user %d, want %d", user.ID, alice.ID)
	}

	if err := f.users.Delete(ctx, alice); err != nil {
		t.Fatalf("delete: %v", err)
	}
	_, apierr = f.auth.ResolveCurrentUser(ctx, token)
	wantCode(t, apierr, http.StatusUnauthorized)
}

// Role checks read the stored row, so demoting an admin takes effect before
// their token expires.
func TestAuthService_RoleComesFromStoredUser(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	admin := f.admin(t)
	token, _ := f.auth.IssueToken(admin)

	admin.IsAdmin = false
	if err := f.users.Save(ctx, admin); err != nil {
		t.Fatalf("save: %v", err)
	}

	user, apierr := f.auth.ResolveCurrentUser(ctx, token)
	if apierr != nil {
		t.Fatalf("ResolveCurrentUser() error = %v", apierr)
	}
	_, apierr = RequireAdmin(user)
	wantCode(t, apierr, http.StatusForbidden)
}

func TestRequireAdmin(t *testing.T) {
	if _, apierr := RequireAdmin(&entity.User{IsAdmin: true}); apierr != nil {
		t.Errorf("admin rejected: %v", apierr)
	}
	_, apierr := RequireAdmin(&entity.User{IsAdmin: false})
	wantCode(t, apierr, http.StatusForbidden)
	_, apierr = RequireAdmin(nil)
	wantCode(t, apierr, http.StatusForbidden)
}

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("secret123")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if hash == "secret123" {
		t.Fatal("HashPassword() returned plain password")
	}
	if _, err := bcrypt.Cost([]byte(hash)); err != nil {
		t.Errorf("hash is not bcrypt: %v", err)
	}
	if !CheckPassword(hash, "secret123") {
		t.Error("CheckPassword() rejected the right password")
	}
	if CheckPassword(hash, "wrong") {
		t.Error("CheckPassword() accepted a wrong password")
	}
}
