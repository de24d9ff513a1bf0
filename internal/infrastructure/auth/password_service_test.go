package auth

import (
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestPasswordService_HashAndVerify(t *testing.T) {
	svc := NewPasswordService(bcrypt.MinCost)

	hash, err := svc.Hash("Abcdef1!")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	if !strings.HasPrefix(string(hash), "$2") {
		t.Errorf("expected bcrypt format, got %q", hash)
	}
	if !svc.Verify(hash, "Abcdef1!") {
		t.Error("Verify() should accept the original password")
	}
	if svc.Verify(hash, "abcdef1!") {
		t.Error("Verify() should reject a different password")
	}
}

func TestPasswordService_DefaultCost(t *testing.T) {
	svc := NewPasswordService(0).(*PasswordServiceImpl)
	if svc.cost != 12 {
		t.Errorf("cost = %d, want 12", svc.cost)
	}
}

func TestUnusablePasswordHash(t *testing.T) {
	svc := NewPasswordService(bcrypt.MinCost)

	a, err := UnusablePasswordHash()
	if err != nil {
		t.Fatal(err)
	}
	b, err := UnusablePasswordHash()
	if err != nil {
		t.Fatal(err)
	}
	if a == b {
		t.Error("placeholders should be random")
	}
	if strings.HasPrefix(string(a), "$2") {
		t.Error("placeholder must not look like a bcrypt hash")
	}
	for _, candidate := range []string{"", string(a), "password"} {
		if svc.Verify(a, candidate) {
			t.Errorf("Verify() matched placeholder with %q", candidate)
		}
	}
}
