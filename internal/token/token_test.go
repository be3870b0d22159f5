package token

import (
	"testing"
	"time"
)

func newTestManager() *Manager {
	return NewManager("access-secret", "refresh-secret", 15*time.Minute, 7*24*time.Hour)
}

func TestIssueAccess(t *testing.T) {
	m := newTestManager()

	tok, err := m.IssueAccess("user-1", "test@example.com")
	if err != nil {
		t.Fatalf("IssueAccess() unexpected error: %v", err)
	}
	if tok == "" {
		t.Fatal("IssueAccess() returned empty string")
	}
}

func TestVerifyAccessRoundTrip(t *testing.T) {
	m := newTestManager()

	tok, err := m.IssueAccess("user-1", "test@example.com")
	if err != nil {
		t.Fatalf("IssueAccess() unexpected error: %v", err)
	}

	claims, err := m.VerifyAccess(tok)
	if err != nil {
		t.Fatalf("VerifyAccess() unexpected error: %v", err)
	}
	if claims.UserID != "user-1" {
		t.Errorf("VerifyAccess() UserID = %q, want %q", claims.UserID, "user-1")
	}
	if claims.Email != "test@example.com" {
		t.Errorf("VerifyAccess() Email = %q, want %q", claims.Email, "test@example.com")
	}
}

func TestVerifyRefreshRoundTrip(t *testing.T) {
	m := newTestManager()

	tok, err := m.IssueRefresh("user-1", "test@example.com")
	if err != nil {
		t.Fatalf("IssueRefresh() unexpected error: %v", err)
	}

	claims, err := m.VerifyRefresh(tok)
	if err != nil {
		t.Fatalf("VerifyRefresh() unexpected error: %v", err)
	}
	if claims.UserID != "user-1" {
		t.Errorf("VerifyRefresh() UserID = %q, want %q", claims.UserID, "user-1")
	}
}

func TestSecretsAreNotInterchangeable(t *testing.T) {
	m := newTestManager()

	access, err := m.IssueAccess("user-1", "test@example.com")
	if err != nil {
		t.Fatalf("IssueAccess() unexpected error: %v", err)
	}
	if _, err := m.VerifyRefresh(access); err == nil {
		t.Error("VerifyRefresh() accepted an access token")
	}

	refresh, err := m.IssueRefresh("user-1", "test@example.com")
	if err != nil {
		t.Fatalf("IssueRefresh() unexpected error: %v", err)
	}
	if _, err := m.VerifyAccess(refresh); err == nil {
		t.Error("VerifyAccess() accepted a refresh token")
	}
}

func TestVerifyAccessInvalid(t *testing.T) {
	m := newTestManager()

	if _, err := m.VerifyAccess("not-a-valid-token"); err == nil {
		t.Error("VerifyAccess() expected error for garbage token")
	}
}

func TestVerifyAccessWrongSecret(t *testing.T) {
	m := newTestManager()
	other := NewManager("other-access", "other-refresh", 15*time.Minute, time.Hour)

	tok, err := m.IssueAccess("user-1", "test@example.com")
	if err != nil {
		t.Fatalf("IssueAccess() unexpected error: %v", err)
	}

	if _, err := other.VerifyAccess(tok); err == nil {
		t.Error("VerifyAccess() expected error for wrong secret")
	}
}

func TestVerifyAccessExpired(t *testing.T) {
	m := NewManager("access-secret", "refresh-secret", time.Millisecond, time.Millisecond)

	tok, err := m.IssueAccess("user-1", "test@example.com")
	if err != nil {
		t.Fatalf("IssueAccess() unexpected error: %v", err)
	}

	time.Sleep(10 * time.Millisecond)

	if _, err := m.VerifyAccess(tok); err == nil {
		t.Error("VerifyAccess() expected error for expired token")
	}
}

func TestVerifyRefreshExpired(t *testing.T) {
	m := NewManager("access-secret", "refresh-secret", time.Hour, time.Millisecond)

	tok, err := m.IssueRefresh("user-1", "test@example.com")
	if err != nil {
		t.Fatalf("IssueRefresh() unexpected error: %v", err)
	}

	time.Sleep(10 * time.Millisecond)

	if _, err := m.VerifyRefresh(tok); err == nil {
		t.Error("VerifyRefresh() expected error for expired token")
	}
}
