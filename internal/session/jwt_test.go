package session

import (
	"testing"
	"time"
)

const testSecret = "test-secret"

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken("alice", testSecret)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	claims, err := ParseToken(token, testSecret)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.Username != "alice" {
		t.Errorf("username = %q, want alice", claims.Username)
	}
	if claims.ExpiresAt == nil {
		t.Fatal("token carries no expiry")
	}
	until := time.Until(claims.ExpiresAt.Time)
	if until <= 0 || until > Lifetime {
		t.Errorf("expiry %v out of the expected window", until)
	}
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	token, err := GenerateToken("alice", testSecret)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := ParseToken(token, "other-secret"); err == nil {
		t.Error("token signed with another secret was accepted")
	}
}

func TestParseTokenRejectsTampering(t *testing.T) {
	token, err := GenerateToken("alice", testSecret)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := ParseToken(token+"x", testSecret); err == nil {
		t.Error("tampered token was accepted")
	}
	if _, err := ParseToken("not-a-token", testSecret); err == nil {
		t.Error("garbage token was accepted")
	}
}
