package utils

import "testing"

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("Polonium1898")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "Polonium1898" {
		t.Fatalf("hash must not equal the plaintext")
	}

	if !CheckPasswordHash("Polonium1898", hash) {
		t.Fatalf("expected matching password to verify")
	}
	if CheckPasswordHash("wrong", hash) {
		t.Fatalf("expected mismatching password to fail")
	}
}

func TestPasswordHashesAreSalted(t *testing.T) {
	first, err := HashPassword("Polonium1898")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	second, err := HashPassword("Polonium1898")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if first == second {
		t.Fatalf("expected distinct salted hashes")
	}
}
