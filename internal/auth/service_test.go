package auth

import (
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestRegister_HashesPasswordAndNormalizesEmail(t *testing.T) {
	svc := NewService(NewInMemoryUserRepository())

	user, err := svc.Register("  Chef@Example.COM ", "secret123", "user")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if user.Email != "chef@example.com" {
		t.Errorf("email = %q, want lowercased trimmed form", user.Email)
	}
	if user.PasswordHash == "secret123" {
		t.Errorf("password must not be stored in plain text")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("secret123")); err != nil {
		t.Errorf("stored hash does not match password: %v", err)
	}
	if user.ID == "" {
		t.Errorf("expected generated user id")
	}
}

func TestRegister_RejectsDuplicateEmail(t *testing.T) {
	svc := NewService(NewInMemoryUserRepository())

	if _, err := svc.Register("chef@example.com", "secret123", "user"); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if _, err := svc.Register("CHEF@example.com", "other", "user"); !errors.Is(err, ErrEmailExists) {
		t.Errorf("expected ErrEmailExists, got %v", err)
	}
}

func TestRegister_RejectsInvalidInput(t *testing.T) {
	svc := NewService(NewInMemoryUserRepository())

	if _, err := svc.Register("", "secret", "user"); err == nil {
		t.Errorf("expected error for missing email")
	}
	if _, err := svc.Register("a@b.com", "", "user"); err == nil {
		t.Errorf("expected error for missing password")
	}
	if _, err := svc.Register("a@b.com", "secret", "superadmin"); err == nil {
		t.Errorf("expected error for unknown role")
	}
}

func TestLogin(t *testing.T) {
	svc := NewService(NewInMemoryUserRepository())

	if _, err := svc.Register("chef@example.com", "secret123", "admin"); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	user, err := svc.Login("Chef@Example.com", "secret123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if user.Role != "admin" {
		t.Errorf("role = %q, want admin", user.Role)
	}

	if _, err := svc.Login("chef@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials for wrong password, got %v", err)
	}
	if _, err := svc.Login("ghost@example.com", "secret123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials for unknown user, got %v", err)
	}
}
