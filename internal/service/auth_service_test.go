package service

import (
	"errors"
	"testing"
	"time"

	"github.com/nardos-mesfin/exam-grader-api/internal/config"
	"golang.org/x/crypto/bcrypt"
)

func authConfig() *config.Config {
	return &config.Config{
		JWTSecret:  "test-secret",
		JWTExpiry:  time.Hour,
		BcryptCost: bcrypt.MinCost,
	}
}

func TestPasswordHashing(t *testing.T) {
	svc := NewAuthService(authConfig(), nil)

	hash, err := svc.HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "correct horse battery staple" {
		t.Fatal("hash must not equal the plaintext")
	}

	if err := svc.CheckPassword(hash, "correct horse battery staple"); err != nil {
		t.Errorf("CheckPassword with correct password: %v", err)
	}
	if err := svc.CheckPassword(hash, "wrong password"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("CheckPassword with wrong password: %v, want ErrInvalidCredentials", err)
	}
}

func TestTokenRoundTrip(t *testing.T) {
	svc := NewAuthService(authConfig(), nil)

	signed, err := svc.signToken("jti-1", 42, "teacher@school.edu")
	if err != nil {
		t.Fatalf("signToken: %v", err)
	}

	claims, err := svc.ValidateToken(signed)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("UserID = %d, want 42", claims.UserID)
	}
	if claims.Email != "teacher@school.edu" {
		t.Errorf("Email = %q", claims.Email)
	}
	if claims.ID != "jti-1" {
		t.Errorf("JTI = %q", claims.ID)
	}
	if claims.Subject != "42" {
		t.Errorf("Subject = %q", claims.Subject)
	}
}

func TestValidateTokenRejections(t *testing.T) {
	svc := NewAuthService(authConfig(), nil)

	t.Run("garbage token", func(t *testing.T) {
		if _, err := svc.ValidateToken("not.a.token"); err == nil {
			t.Error("garbage token validated")
		}
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewAuthService(&config.Config{JWTSecret: "different-secret", JWTExpiry: time.Hour}, nil)
		signed, err := other.signToken("jti-2", 1, "a@b.c")
		if err != nil {
			t.Fatalf("signToken: %v", err)
		}
		if _, err := svc.ValidateToken(signed); err == nil {
			t.Error("token signed with a different secret validated")
		}
	})

	t.Run("expired token", func(t *testing.T) {
		expired := NewAuthService(&config.Config{JWTSecret: "test-secret", JWTExpiry: -time.Hour}, nil)
		signed, err := expired.signToken("jti-3", 1, "a@b.c")
		if err != nil {
			t.Fatalf("signToken: %v", err)
		}
		if _, err := svc.ValidateToken(signed); err == nil {
			t.Error("expired token validated")
		}
	})
}
