package server

import (
	"fmt"
	"log/slog"
	"net/http"

	"golang.org/x/crypto/bcrypt"
)

// AdminAuth verifies the shared admin secret. Only the bcrypt hash is kept in
// memory; a plain secret from the environment is hashed once at startup.
type AdminAuth struct {
	hash []byte
}

func NewAdminAuth(secret, secretHash string) (*AdminAuth, error) {
	if secretHash != "" {
		return &AdminAuth{hash: []byte(secretHash)}, nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing admin secret: %w", err)
	}
	return &AdminAuth{hash: hash}, nil
}

// Verify reports whether the presented secret matches.
func (a *AdminAuth) Verify(secret string) bool {
	return bcrypt.CompareHashAndPassword(a.hash, []byte(secret)) == nil
}

// AdminSecretRequest carries the shared secret for admin operations.
type AdminSecretRequest struct {
	Secret string `json:"secret"`
}

// AdminVerifyResponse reports whether the secret was accepted.
type AdminVerifyResponse struct {
	Valid bool `json:"valid"`
}

// AdminPurgeResponse reports how many games a purge removed.
type AdminPurgeResponse struct {
	DeletedCount int `json:"deletedCount"`
}

func handleAdminVerify(admin *AdminAuth) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req AdminSecretRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		writeJSON(w, http.StatusOK, AdminVerifyResponse{Valid: admin.Verify(req.Secret)})
	}
}

// handleAdminPurge deletes every game and notifies each game's subscribers,
// the nuclear cleanup between semesters.
func handleAdminPurge(logger *slog.Logger, store Store, broker *Broker, admin *AdminAuth) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req AdminSecretRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if !admin.Verify(req.Secret) {
			writeError(w, http.StatusUnauthorized, "invalid admin secret")
			return
		}

		ids, err := store.DeleteAll(r.Context())
		if err != nil {
			logger.Error("purging games", "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		for _, id := range ids {
			broker.PublishDeleted(id)
		}
		logger.Info("purged all games", "count", len(ids))
		writeJSON(w, http.StatusOK, AdminPurgeResponse{DeletedCount: len(ids)})
	}
}
