package auth

import (
	"testing"
)

func TestHashPassword_Verify(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple", 4)
	if err != nil {
		t.Fatalf("HashPassword() unexpected error = %v", err)
	}
	if hash == "" {
		t.Fatal("HashPassword() returned empty hash")
	}
	if hash == "correct horse battery staple" {
		t.Fatal("HashPassword() returned the plaintext")
	}

	if !CheckPassword("correct horse battery staple", hash) {
		t.Error("CheckPassword() = false for the original password")
	}
	if CheckPassword("wrong password", hash) {
		t.Error("CheckPassword() = true for a different password")
	}
}

func TestHashPassword_SaltedPerCall(t *testing.T) {
	first, err := HashPassword("pw1234", 4)
	if err != nil {
		t.Fatalf("HashPassword() unexpected error = %v", err)
	}
	second, err := HashPassword("pw1234", 4)
	if err != nil {
		t.Fatalf("HashPassword() unexpected error = %v", err)
	}
	if first == second {
		t.Error("two hashes of the same password are identical, salt is not random")
	}
	if !CheckPassword("pw1234", first) || !CheckPassword("pw1234", second) {
		t.Error("CheckPassword() failed against a freshly generated hash")
	}
}

func TestHashPassword_CostOutOfRange(t *testing.T) {
	// Out-of-range cost falls back to the default rather than failing.
	hash, err := HashPassword("pw1234", 99)
	if err != nil {
		t.Fatalf("HashPassword() unexpected error = %v", err)
	}
	if !CheckPassword("pw1234", hash) {
		t.Error("CheckPassword() = false after cost fallback")
	}
}

func TestCheckPassword_MalformedHash(t *testing.T) {
	// A malformed stored hash reads as a mismatch, never a panic or error.
	if CheckPassword("pw1234", "not-a-bcrypt-hash") {
		t.Error("CheckPassword() = true for malformed hash")
	}
	if CheckPassword("pw1234", "") {
		t.Error("CheckPassword() = true for empty hash")
	}
}
