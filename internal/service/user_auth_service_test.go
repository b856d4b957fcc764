package service

import (
	"context"
	"errors"
	"testing"

	"github.com/kasuwa-shop/internal/config"
	"github.com/kasuwa-shop/internal/constants"
)

func newUserAuthServiceForTest(t *testing.T) (*UserAuthService, *serviceFixture) {
	t.Helper()
	f := setupServiceTest(t)
	cfg := &config.Config{
		UserJWT: config.JWTConfig{SecretKey: "test-secret", ExpireHours: 2},
		Security: config.SecurityConfig{
			PasswordPolicy: config.PasswordPolicyConfig{MinLength: 8, RequireLower: true, RequireNumber: true},
		},
	}
	return NewUserAuthService(cfg, f.userRepo), f
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := newUserAuthServiceForTest(t)

	user, token, _, err := svc.Register(RegisterInput{Email: " Ada@Example.com ", Password: "secret123"})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if user.Email != "ada@example.com" || user.Username != "ada" {
		t.Fatalf("unexpected user: %s %s", user.Email, user.Username)
	}
	if user.PasswordHash == "secret123" {
		t.Fatalf("password must be hashed")
	}
	claims, err := svc.ParseUserJWT(token)
	if err != nil {
		t.Fatalf("parse token failed: %v", err)
	}
	if claims.UserID != user.ID || claims.TokenVersion != 0 {
		t.Fatalf("unexpected claims: %+v", claims)
	}

	if _, _, _, err := svc.Register(RegisterInput{Email: "ADA@example.com", Password: "secret123"}); !errors.Is(err, ErrEmailExists) {
		t.Fatalf("expected ErrEmailExists, got %v", err)
	}
	if _, _, _, err := svc.Register(RegisterInput{Email: "not-an-email", Password: "secret123"}); !errors.Is(err, ErrInvalidEmail) {
		t.Fatalf("expected ErrInvalidEmail, got %v", err)
	}
	if _, _, _, err := svc.Register(RegisterInput{Email: "bob@example.com", Password: "short1"}); !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("expected ErrWeakPassword, got %v", err)
	}

	logged, _, _, err := svc.Login("ada@example.com", "secret123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if logged.LastLoginAt == nil {
		t.Fatalf("last login should be recorded")
	}
	if _, _, _, err := svc.Login("ada@example.com", "wrong-pass1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, _, _, err := svc.Login("nobody@example.com", "secret123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown user, got %v", err)
	}
}

func TestLoginRejectsDisabledUser(t *testing.T) {
	svc, f := newUserAuthServiceForTest(t)
	user, _, _, err := svc.Register(RegisterInput{Email: "ada@example.com", Password: "secret123"})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	admin := NewUserAdminService(f.userRepo)
	disabled, err := admin.SetStatus(user.ID, "DISABLED")
	if err != nil {
		t.Fatalf("disable user failed: %v", err)
	}
	if disabled.TokenVersion != 1 {
		t.Fatalf("disabling should bump token version, got %d", disabled.TokenVersion)
	}
	if _, _, _, err := svc.Login("ada@example.com", "secret123"); !errors.Is(err, ErrUserDisabled) {
		t.Fatalf("expected ErrUserDisabled, got %v", err)
	}
	if _, err := admin.SetStatus(user.ID, "banned"); !errors.Is(err, ErrInvalidUserStatus) {
		t.Fatalf("expected ErrInvalidUserStatus, got %v", err)
	}

	state, err := svc.ResolveAuthState(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("resolve auth state failed: %v", err)
	}
	if state.Status != constants.UserStatusDisabled || state.TokenVersion != 1 {
		t.Fatalf("unexpected auth state: %+v", state)
	}
}

func TestParseUserJWTRejectsForeignSignature(t *testing.T) {
	svc, f := newUserAuthServiceForTest(t)
	user := f.mustUser(t, "ada@example.com")
	other := NewUserAuthService(&config.Config{UserJWT: config.JWTConfig{SecretKey: "other-secret"}}, f.userRepo)

	token, _, err := other.GenerateUserJWT(user)
	if err != nil {
		t.Fatalf("generate token failed: %v", err)
	}
	if _, err := svc.ParseUserJWT(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
	if _, err := svc.ParseUserJWT("garbage"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for garbage, got %v", err)
	}
}

func TestChangePasswordBumpsTokenVersion(t *testing.T) {
	svc, _ := newUserAuthServiceForTest(t)
	user, _, _, err := svc.Register(RegisterInput{Email: "ada@example.com", Password: "secret123"})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if err := svc.ChangePassword(user.ID, "wrong", "newsecret1"); !errors.Is(err, ErrInvalidPassword) {
		t.Fatalf("expected ErrInvalidPassword, got %v", err)
	}
	if err := svc.ChangePassword(user.ID, "secret123", "nodigits"); !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("expected ErrWeakPassword, got %v", err)
	}
	if err := svc.ChangePassword(user.ID, "secret123", "newsecret1"); err != nil {
		t.Fatalf("change password failed: %v", err)
	}

	reloaded, err := svc.GetUserByID(user.ID)
	if err != nil {
		t.Fatalf("reload user failed: %v", err)
	}
	if reloaded.TokenVersion != 1 {
		t.Fatalf("token version want 1 got %d", reloaded.TokenVersion)
	}
	if _, _, _, err := svc.Login("ada@example.com", "newsecret1"); err != nil {
		t.Fatalf("login with new password failed: %v", err)
	}
}

func TestUpdateProfileKeepsIdentityFields(t *testing.T) {
	svc, f := newUserAuthServiceForTest(t)
	user := f.mustUser(t, "ada@example.com")

	phone := " +2348012345678 "
	first := "Ada"
	blank := "  "
	updated, err := svc.UpdateProfile(user.ID, ProfileInput{PhoneNumber: &phone, FirstName: &first, Username: &blank})
	if err != nil {
		t.Fatalf("update profile failed: %v", err)
	}
	if updated.PhoneNumber != "+2348012345678" || updated.FirstName != "Ada" {
		t.Fatalf("unexpected profile: %+v", updated)
	}
	if updated.Email != "ada@example.com" || updated.IsVerified {
		t.Fatalf("identity fields must not change")
	}
	if _, err := svc.UpdateProfile(9999, ProfileInput{}); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestSetStaffKeepsSuperuserStaff(t *testing.T) {
	_, f := newUserAuthServiceForTest(t)
	admin := NewUserAdminService(f.userRepo)
	user := f.mustUser(t, "root@example.com")
	if err := f.db.Model(user).Updates(map[string]interface{}{"is_superuser": true, "is_staff": true}).Error; err != nil {
		t.Fatalf("promote superuser failed: %v", err)
	}

	updated, err := admin.SetStaff(user.ID, false)
	if err != nil {
		t.Fatalf("set staff failed: %v", err)
	}
	if !updated.IsStaff {
		t.Fatalf("superuser must stay staff")
	}

	plain := f.mustUser(t, "clerk@example.com")
	updated, err = admin.SetStaff(plain.ID, true)
	if err != nil {
		t.Fatalf("set staff failed: %v", err)
	}
	if !updated.IsStaff {
		t.Fatalf("user should be staff")
	}
}
