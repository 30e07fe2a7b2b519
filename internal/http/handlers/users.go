package handlers

import (
	"context"
	"errors"
	"net/http"

	"fundtrack/internal/domain"
	"fundtrack/internal/middleware"
)

type authUserKey struct{}

// LoadUser resolves the token subject to a profile. Requests from accounts
// without a profile are rejected so role checks never see a partial user.
func (a *App) LoadUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := middleware.UserIDFromContext(r.Context())
		if id == "" {
			a.error(w, http.StatusUnauthorized, "unauthorized", "missing user")
			return
		}
		user, err := a.Interns.GetUser(r.Context(), id)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				a.error(w, http.StatusForbidden, "profile_missing", "profile not found")
				return
			}
			a.fail(w, r, err, "failed to load user")
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), authUserKey{}, *user)))
	})
}

// RequireAdmin lets only administrators through.
func (a *App) RequireAdmin(next http.Handler) http.Handler {
	return a.requireRole(domain.AuthUser.IsAdmin, next)
}

// RequireIntern lets only interns through.
func (a *App) RequireIntern(next http.Handler) http.Handler {
	return a.requireRole(domain.AuthUser.IsIntern, next)
}

func (a *App) requireRole(allowed func(domain.AuthUser) bool, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := currentUser(r)
		if !ok {
			a.error(w, http.StatusUnauthorized, "unauthorized", "missing user")
			return
		}
		if !allowed(user) {
			a.error(w, http.StatusForbidden, "forbidden", "forbidden")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func currentUser(r *http.Request) (domain.AuthUser, bool) {
	u, ok := r.Context().Value(authUserKey{}).(domain.AuthUser)
	return u, ok
}

// WithUser is used by tests to skip LoadUser.
func WithUser(ctx context.Context, user domain.AuthUser) context.Context {
	return context.WithValue(ctx, authUserKey{}, user)
}

type meResponse struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}

func (a *App) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(r)
	if !ok {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user")
		return
	}
	a.json(w, http.StatusOK, meResponse{
		ID:       user.ID,
		Email:    user.Email,
		FullName: user.FullName,
		Role:     string(user.Role),
	})
}

type createProfileRequest struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	FullName string `json:"full_name" validate:"required,max=200"`
	Role     string `json:"role" validate:"required,oneof=intern admin"`
}

// CreateProfile stores the profile row for the token's subject right after
// sign-up. Interns start at the configured default goal. A second call for
// the same subject answers 409 and leaves the stored role alone.
func (a *App) CreateProfile(w http.ResponseWriter, r *http.Request) {
	id := middleware.UserIDFromContext(r.Context())
	if id == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user")
		return
	}
	var req createProfileRequest
	if err := a.decode(w, r, &req); err != nil {
		a.fail(w, r, err, "invalid payload")
		return
	}
	role, err := domain.ParseUserRole(req.Role)
	if err != nil {
		a.fail(w, r, err, "invalid role")
		return
	}
	profile := domain.NewProfile{ID: id, Email: req.Email, FullName: req.FullName, Role: role}
	if err := a.Interns.CreateProfile(r.Context(), profile, a.DefaultGoal); err != nil {
		a.fail(w, r, err, "failed to create profile")
		return
	}
	a.json(w, http.StatusCreated, meResponse{
		ID:       id,
		Email:    req.Email,
		FullName: req.FullName,
		Role:     string(role),
	})
}

func (a *App) Health(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, map[string]string{"status": "ok"})
}
