package account

import (
	"testing"
	"time"

	"cafe-system/internal/models"
)

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)
	sess := models.Session{Login: "alice", Role: models.RoleCustomer}

	token, err := tm.Issue(sess)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	parsed, err := tm.Parse(token)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if parsed != sess {
		t.Errorf("parsed session = %+v, want %+v", parsed, sess)
	}
}

func TestTokenWrongSecret(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)
	token, err := tm.Issue(models.Session{Login: "alice", Role: models.RoleCustomer})
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	other := NewTokenManager("other-secret", time.Hour)
	if _, err := other.Parse(token); err == nil {
		t.Fatal("expected error for token signed with a different secret")
	}
}

func TestTokenExpired(t *testing.T) {
	tm := NewTokenManager("test-secret", -time.Minute)
	token, err := tm.Issue(models.Session{Login: "alice", Role: models.RoleCustomer})
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	if _, err := tm.Parse(token); err == nil {
		t.Fatal("expected error for expired token")
	}
}

func TestTokenGarbage(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)
	if _, err := tm.Parse("not-a-token"); err == nil {
		t.Fatal("expected error for malformed token")
	}
}
