package utils

import (
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasherRoundTrip(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)
	hash, err := h.Hash("s3cret-pass")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !h.Verify("s3cret-pass", hash) {
		t.Fatalf("expected password to verify")
	}
	if h.Verify("wrong", hash) {
		t.Fatalf("wrong password verified")
	}
}

func TestBcryptHasherLongPasswords(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)
	long := strings.Repeat("a", 100)
	hash, err := h.Hash(long)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if h.Verify(long[:80]+strings.Repeat("b", 20), hash) {
		t.Fatalf("passwords differing after byte 72 must not verify")
	}
}

func TestNewBcryptHasherClampsCost(t *testing.T) {
	if h := NewBcryptHasher(1); h.Cost != bcrypt.DefaultCost {
		t.Fatalf("expected default cost, got %d", h.Cost)
	}
}
