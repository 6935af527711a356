package utils

import "testing"

func TestHashPassword_RoundTrip(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("pw123")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if hash == "pw123" || hash == "" {
		t.Fatalf("digest must not be empty or equal to the plaintext")
	}

	if !CheckPasswordHash("pw123", hash) {
		t.Fatalf("correct password rejected")
	}
	if CheckPasswordHash("wrong", hash) {
		t.Fatalf("wrong password accepted")
	}
}

func TestHashPassword_FreshSaltPerCall(t *testing.T) {
	t.Parallel()

	h1, err := HashPassword("pw123")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	h2, err := HashPassword("pw123")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if h1 == h2 {
		t.Fatalf("two digests of the same password should differ (random salt)")
	}
}

func TestCheckPasswordHash_GarbageDigest(t *testing.T) {
	t.Parallel()

	if CheckPasswordHash("pw123", "not-a-bcrypt-digest") {
		t.Fatalf("garbage digest accepted")
	}
}
