package api

import (
	"net/http"
	"strings"

	"github.com/Barty-sim/foodgram-project-react/internal/auth"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	AuthToken string `json:"auth_token"`
}

// handleLogin exchanges email/password for an API token. Attempts are
// rate-limited per client IP; failures are indistinguishable between
// unknown email and wrong password.
func (s *Server) handleLogin() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.limiter.Allow(clientIP(r)); err != nil {
			writeError(w, http.StatusTooManyRequests, "too many login attempts")
			return
		}

		var req loginRequest
		if !decodeJSON(w, r, &req) {
			return
		}

		user, err := s.store.UserByEmail(r.Context(), req.Email)
		if err != nil {
			writeError(w, http.StatusBadRequest, "unable to log in with provided credentials")
			return
		}
		if err := auth.CheckPassword(user.PasswordHash, req.Password); err != nil {
			writeError(w, http.StatusBadRequest, "unable to log in with provided credentials")
			return
		}

		plain, digest := auth.NewToken()
		if err := s.store.InsertToken(r.Context(), digest, user.ID); err != nil {
			s.writeStoreError(w, err)
			return
		}

		s.metrics.RecordLogin()
		s.logger.Info("login", "user", user.Username)
		writeJSON(w, http.StatusCreated, loginResponse{AuthToken: plain})
	}
}

// handleLogout invalidates the presented token.
func (s *Server) handleLogout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if requireAuth(w, r) == nil {
			return
		}

		plain, _ := strings.CutPrefix(r.Header.Get("Authorization"), "Token ")
		if err := s.store.DeleteToken(r.Context(), auth.Digest(plain)); err != nil {
			s.writeStoreError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
