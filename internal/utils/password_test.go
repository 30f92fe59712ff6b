package utils

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("pw123", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if !VerifyPassword(hash, "pw123") {
		t.Error("correct password did not verify")
	}
	if VerifyPassword(hash, "wrong") {
		t.Error("wrong password verified")
	}
}

func TestHashPasswordSaltsPerCall(t *testing.T) {
	h1, err := HashPassword("same", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	h2, err := HashPassword("same", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if h1 == h2 {
		t.Error("two hashes of the same password are identical; salt not applied")
	}
	if !VerifyPassword(h1, "same") || !VerifyPassword(h2, "same") {
		t.Error("both hashes should verify the original password")
	}
}

func TestHashRefreshRawIsStable(t *testing.T) {
	if HashRefreshRaw("tok") != HashRefreshRaw("tok") {
		t.Error("refresh token hash must be deterministic")
	}
	if HashRefreshRaw("tok") == HashRefreshRaw("tok2") {
		t.Error("different tokens must hash differently")
	}
}

func TestNewRefreshTokenIsRandom(t *testing.T) {
	t1, err := NewRefreshToken(7)
	if err != nil {
		t.Fatalf("NewRefreshToken: %v", err)
	}
	t2, err := NewRefreshToken(7)
	if err != nil {
		t.Fatalf("NewRefreshToken: %v", err)
	}
	if t1.Raw == t2.Raw {
		t.Error("refresh tokens must be unique")
	}
	if len(t1.Raw) != 96 {
		t.Errorf("unexpected token length %d, want 96 hex chars", len(t1.Raw))
	}
}
