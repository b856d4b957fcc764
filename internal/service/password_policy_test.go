package service

import (
	"errors"
	"testing"

	"github.com/kasuwa-shop/internal/config"
)

func TestValidatePassword(t *testing.T) {
	policy := config.PasswordPolicyConfig{
		MinLength:      8,
		RequireUpper:   true,
		RequireLower:   true,
		RequireNumber:  true,
		RequireSpecial: true,
	}
	cases := []struct {
		password string
		key      string
	}{
		{"", "error.password_required"},
		{"Ab1!", "error.password_min_length"},
		{"abcdefg1!", "error.password_require_upper"},
		{"ABCDEFG1!", "error.password_require_lower"},
		{"Abcdefgh!", "error.password_require_number"},
		{"Abcdefgh1", "error.password_require_special"},
		{"Abcdefg1!", ""},
	}
	for _, tc := range cases {
		err := validatePassword(policy, tc.password)
		if tc.key == "" {
			if err != nil {
				t.Fatalf("password %q should pass, got %v", tc.password, err)
			}
			continue
		}
		if !errors.Is(err, ErrWeakPassword) {
			t.Fatalf("password %q: expected ErrWeakPassword, got %v", tc.password, err)
		}
		var policyErr passwordPolicyError
		if !errors.As(err, &policyErr) || policyErr.Key() != tc.key {
			t.Fatalf("password %q: key want %s got %v", tc.password, tc.key, err)
		}
	}
}

func TestValidatePasswordMinLengthArgs(t *testing.T) {
	err := validatePassword(config.PasswordPolicyConfig{MinLength: 12}, "short")
	var policyErr passwordPolicyError
	if !errors.As(err, &policyErr) {
		t.Fatalf("expected passwordPolicyError, got %v", err)
	}
	if len(policyErr.Args()) != 1 || policyErr.Args()[0] != 12 {
		t.Fatalf("unexpected args: %v", policyErr.Args())
	}
	// 长度按字符计算
	if err := validatePassword(config.PasswordPolicyConfig{MinLength: 4}, "密码密码"); err != nil {
		t.Fatalf("multibyte password should pass: %v", err)
	}
}
