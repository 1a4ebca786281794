package server

import (
	"encoding/json"
	"net/http"
	"testing"
)

func TestAdminVerify(t *testing.T) {
	r := testRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/admin/verify", AdminSecretRequest{Secret: "letmein"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp AdminVerifyResponse
	json.NewDecoder(w.Body).Decode(&resp)
	if !resp.Valid {
		t.Error("expected valid=true for the configured secret")
	}

	w = doJSON(t, r, http.MethodPost, "/api/admin/verify", AdminSecretRequest{Secret: "wrong"})
	json.NewDecoder(w.Body).Decode(&resp)
	if resp.Valid {
		t.Error("expected valid=false for a wrong secret")
	}
}

func TestAdminPurge(t *testing.T) {
	r := testRouter(t)
	createTestGame(t, r, "PURGE1")
	createTestGame(t, r, "PURGE2")

	// Wrong secret is rejected before anything is touched.
	w := doJSON(t, r, http.MethodDelete, "/api/admin/games", AdminSecretRequest{Secret: "wrong"})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}

	w = doJSON(t, r, http.MethodDelete, "/api/admin/games", AdminSecretRequest{Secret: "letmein"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp AdminPurgeResponse
	json.NewDecoder(w.Body).Decode(&resp)
	if resp.DeletedCount != 2 {
		t.Errorf("expected 2 deleted games, got %d", resp.DeletedCount)
	}

	w = doJSON(t, r, http.MethodGet, "/api/games/PURGE1", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected purged game gone, got %d", w.Code)
	}
}

func TestAdminAuthFromHash(t *testing.T) {
	plain, err := NewAdminAuth("s3cret", "")
	if err != nil {
		t.Fatalf("new admin auth: %v", err)
	}
	if !plain.Verify("s3cret") {
		t.Error("expected plain secret to verify")
	}
	if plain.Verify("other") {
		t.Error("expected wrong secret to fail")
	}

	// A pre-computed hash is used as-is.
	hashed, err := NewAdminAuth("", "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy")
	if err != nil {
		t.Fatalf("new admin auth from hash: %v", err)
	}
	if !hashed.Verify("password") {
		t.Error("expected known bcrypt hash to verify its password")
	}
}
