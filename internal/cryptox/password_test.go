package cryptox

import (
	"strings"
	"testing"
)

func TestHashVerify_RoundTrip(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}

	if hash == "correct horse battery staple" {
		t.Fatalf("hash must not equal plaintext")
	}
	if !strings.HasPrefix(hash, "$2") {
		t.Fatalf("expected a bcrypt hash, got %q", hash)
	}

	if !VerifyPassword("correct horse battery staple", hash) {
		t.Fatalf("verify failed for matching password")
	}
	if VerifyPassword("wrong password", hash) {
		t.Fatalf("verify succeeded for non-matching password")
	}
}

func TestHashPassword_SaltedPerCall(t *testing.T) {
	a, err := HashPassword("pw")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	b, err := HashPassword("pw")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if a == b {
		t.Fatalf("two hashes of the same password are identical, salt missing")
	}
}

func TestVerifyPassword_MalformedHash(t *testing.T) {
	if VerifyPassword("pw", "not-a-bcrypt-hash") {
		t.Fatalf("verify must fail on malformed hash")
	}
}
