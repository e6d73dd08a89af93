package api

import (
	"net/http"
	"net/mail"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Barty-sim/foodgram-project-react/internal/auth"
	"github.com/Barty-sim/foodgram-project-react/internal/model"
)

const (
	maxNameLength     = 150
	maxEmailLength    = 254
	minPasswordLength = 8
)

type registerRequest struct {
	Email     string `json:"email"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Password  string `json:"password"`
}

func (req registerRequest) validate() fieldErrors {
	errs := fieldErrors{}
	if _, err := mail.ParseAddress(req.Email); err != nil || len(req.Email) > maxEmailLength {
		errs.add("email", "enter a valid email address")
	}
	if req.Username == "" || len(req.Username) > maxNameLength {
		errs.add("username", "required, at most 150 characters")
	}
	if req.FirstName == "" || len(req.FirstName) > maxNameLength {
		errs.add("first_name", "required, at most 150 characters")
	}
	if req.LastName == "" || len(req.LastName) > maxNameLength {
		errs.add("last_name", "required, at most 150 characters")
	}
	if len(req.Password) < minPasswordLength {
		errs.add("password", "at least 8 characters")
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// handleRegister creates a new account.
func (s *Server) handleRegister() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		if errs := req.validate(); errs != nil {
			writeFieldErrors(w, errs)
			return
		}

		hash, err := auth.HashPassword(req.Password)
		if err != nil {
			s.writeStoreError(w, err)
			return
		}

		user, err := s.store.CreateUser(r.Context(), model.User{
			Email:        req.Email,
			Username:     req.Username,
			FirstName:    req.FirstName,
			LastName:     req.LastName,
			PasswordHash: hash,
		})
		if err != nil {
			s.writeStoreError(w, err)
			return
		}

		s.logger.Info("user registered", "user", user.Username)
		writeJSON(w, http.StatusCreated, toRegisteredJSON(user))
	}
}

// handleListUsers returns a paginated user list.
func (s *Server) handleListUsers() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page := s.parsePage(r)
		users, total, err := s.store.Users(r.Context(), page)
		if err != nil {
			s.writeStoreError(w, err)
			return
		}

		results := make([]userJSON, 0, len(users))
		for _, u := range users {
			results = append(results, toUserJSON(u))
		}
		writeJSON(w, http.StatusOK, envelope(r, page, total, results))
	}
}

// handleUserDetail returns a single profile with is_subscribed resolved
// against the caller.
func (s *Server) handleUserDetail() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		user, err := s.store.UserByID(r.Context(), id)
		if err != nil {
			s.writeStoreError(w, err)
			return
		}

		user.IsSubscribed, err = s.store.IsSubscribed(r.Context(), viewerID(r), user.ID)
		if err != nil {
			s.writeStoreError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toUserJSON(user))
	}
}

// handleMe returns the authenticated user's own profile.
func (s *Server) handleMe() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := requireAuth(w, r)
		if user == nil {
			return
		}
		writeJSON(w, http.StatusOK, toUserJSON(*user))
	}
}

type setPasswordRequest struct {
	NewPassword     string `json:"new_password"`
	CurrentPassword string `json:"current_password"`
}

// handleSetPassword changes the caller's password after verifying the
// current one.
func (s *Server) handleSetPassword() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := requireAuth(w, r)
		if user == nil {
			return
		}

		var req setPasswordRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		if len(req.NewPassword) < minPasswordLength {
			writeFieldErrors(w, fieldErrors{"new_password": {"at least 8 characters"}})
			return
		}
		if err := auth.CheckPassword(user.PasswordHash, req.CurrentPassword); err != nil {
			writeFieldErrors(w, fieldErrors{"current_password": {"wrong password"}})
			return
		}

		hash, err := auth.HashPassword(req.NewPassword)
		if err != nil {
			s.writeStoreError(w, err)
			return
		}
		if err := s.store.UpdatePassword(r.Context(), user.ID, hash); err != nil {
			s.writeStoreError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// pathID parses the {id} route parameter, writing 404 on garbage to match
// the original API (unknown resource identifiers are not found).
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusNotFound, "not found")
		return 0, false
	}
	return id, true
}
