package auth

import (
	"errors"
	"strings"
	"testing"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword(testPassword, 4)
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if err := CheckPassword(testPassword, hash); err != nil {
		t.Errorf("CheckPassword rejected the right password: %v", err)
	}
	if err := CheckPassword("something-else-entirely", hash); !errors.Is(err, ErrInvalidPassword) {
		t.Errorf("CheckPassword error = %v, want ErrInvalidPassword", err)
	}
}

func TestHashPassword_Length(t *testing.T) {
	if _, err := HashPassword("elevenchars", 4); !errors.Is(err, ErrPasswordTooShort) {
		t.Errorf("11 chars: error = %v, want ErrPasswordTooShort", err)
	}
	if _, err := HashPassword(strings.Repeat("a", 73), 4); !errors.Is(err, ErrPasswordTooLong) {
		t.Errorf("73 bytes: error = %v, want ErrPasswordTooLong", err)
	}
	if _, err := HashPassword(strings.Repeat("a", 72), 4); err != nil {
		t.Errorf("72 bytes: unexpected error %v", err)
	}
}

func TestGenerateSessionSecret(t *testing.T) {
	a, err := GenerateSessionSecret()
	if err != nil {
		t.Fatalf("GenerateSessionSecret failed: %v", err)
	}
	b, _ := GenerateSessionSecret()

	if len(a) != 64 {
		t.Errorf("secret length = %d, want 64 hex chars", len(a))
	}
	if a == b {
		t.Error("two secrets are identical")
	}
}
