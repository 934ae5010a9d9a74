package server

import (
	"testing"
	"time"

	"github.com/bookhub/bookhub/internal/model"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	key := []byte("k1")
	tok, err := issueAccessToken(key, "u-1", model.RoleStoreManager, time.Minute)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	userID, role, err := parseAccessToken(key, tok)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if userID != "u-1" || role != model.RoleStoreManager {
		t.Fatalf("got %q %q", userID, role)
	}
}

func TestAccessTokenWrongKey(t *testing.T) {
	tok, err := issueAccessToken([]byte("k1"), "u-1", model.RoleClient, time.Minute)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, _, err := parseAccessToken([]byte("k2"), tok); err == nil {
		t.Fatal("expected rejection with the wrong key")
	}
}

func TestAccessTokenExpired(t *testing.T) {
	key := []byte("k1")
	tok, err := issueAccessToken(key, "u-1", model.RoleClient, -time.Minute)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, _, err := parseAccessToken(key, tok); err == nil {
		t.Fatal("expected expired token to be rejected")
	}
}
