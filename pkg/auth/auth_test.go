package auth

import (
	"testing"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken(42, "chef", "chef@example.com")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	claims, err := ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}

	if claims.UserID != 42 {
		t.Errorf("UserID = %d, want 42", claims.UserID)
	}
	if claims.Username != "chef" {
		t.Errorf("Username = %q, want chef", claims.Username)
	}
	if claims.Email != "chef@example.com" {
		t.Errorf("Email = %q", claims.Email)
	}
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	for _, token := range []string{"", "not-a-jwt", "a.b.c"} {
		if _, err := ValidateToken(token); err == nil {
			t.Errorf("ValidateToken(%q) should fail", token)
		}
	}
}

func TestValidateTokenRejectsTampered(t *testing.T) {
	token, err := GenerateToken(42, "chef", "chef@example.com")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	tampered := token[:len(token)-2] + "xx"
	if _, err := ValidateToken(tampered); err == nil {
		t.Error("tampered token should not validate")
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "s3cret-pass" {
		t.Fatal("hash must not equal the plaintext")
	}

	if !CheckPassword("s3cret-pass", hash) {
		t.Error("correct password should verify")
	}
	if CheckPassword("wrong", hash) {
		t.Error("wrong password should not verify")
	}
}
