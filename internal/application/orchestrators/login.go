package orchestrators

import (
	"context"
	"errors"
	"log/slog"

	userStore "hotelchain/internal/adapters/storage/user"
	"hotelchain/internal/application/formutil"
	"hotelchain/internal/domain/user"
	"hotelchain/internal/metrics"
)

// UserStoreForLogin defines the store interface needed by Login.
type UserStoreForLogin interface {
	GetByEmail(ctx context.Context, email string) (user.User, error)
}

// LoginInput carries input for the login orchestrator.
// Password is used exactly as submitted.
type LoginInput struct {
	Email    string
	Password string
}

// LoginResult carries the result of a successful login.
type LoginResult struct {
	UserID     int64
	Email      string
	Role       string
	RedirectTo string
}

// LoginDeps holds dependencies for Login.
type LoginDeps struct {
	UserStore UserStoreForLogin
}

// Login errors. The messages are shown to the user verbatim.
var (
	ErrInvalidEmailFormat = errors.New("Invalid email format.")
	ErrInvalidCredentials = errors.New("Invalid email or password.")
	ErrInvalidRole        = errors.New("Invalid user role.")
	ErrLoginUnavailable   = errors.New("Database error: Unable to process login.")
)

// ExecuteLogin validates credentials and returns the principal and landing page for session creation.
// PRE: input comes from a login form submission
// POST: On success the result carries a known role and its landing path; no session is created here
// INVARIANT: Unknown email and wrong password are indistinguishable to the caller
func ExecuteLogin(ctx context.Context, input LoginInput, deps LoginDeps) (LoginResult, error) {
	email := formutil.Sanitize(input.Email)
	if !formutil.ValidEmail(email) {
		metrics.LoginAttemptsTotal.WithLabelValues("invalid_email").Inc()
		return LoginResult{}, ErrInvalidEmailFormat
	}
	if input.Password == "" {
		metrics.LoginAttemptsTotal.WithLabelValues("invalid_credentials").Inc()
		return LoginResult{}, ErrInvalidCredentials
	}

	u, err := deps.UserStore.GetByEmail(ctx, email)
	if errors.Is(err, userStore.ErrNotFound) {
		metrics.LoginAttemptsTotal.WithLabelValues("invalid_credentials").Inc()
		slog.Info("auth_event", "event", "login_failed", "email", email, "reason", "not_found")
		return LoginResult{}, ErrInvalidCredentials
	}
	if err != nil {
		metrics.LoginAttemptsTotal.WithLabelValues("store_error").Inc()
		slog.Error("auth_event", "event", "login_error", "email", email, "error", err.Error())
		return LoginResult{}, ErrLoginUnavailable
	}

	if err := u.CheckPassword(input.Password); err != nil {
		metrics.LoginAttemptsTotal.WithLabelValues("invalid_credentials").Inc()
		slog.Info("auth_event", "event", "login_failed", "email", email, "reason", "wrong_password")
		return LoginResult{}, ErrInvalidCredentials
	}

	redirect, ok := user.LandingPath(u.Role)
	if !ok {
		metrics.LoginAttemptsTotal.WithLabelValues("invalid_role").Inc()
		slog.Warn("auth_event", "event", "login_rejected", "email", email, "user_id", u.ID, "role", u.Role, "reason", "unknown_role")
		return LoginResult{}, ErrInvalidRole
	}

	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	slog.Info("auth_event", "event", "login_success", "email", email, "user_id", u.ID, "role", u.Role)

	return LoginResult{
		UserID:     u.ID,
		Email:      u.Email,
		Role:       u.Role,
		RedirectTo: redirect,
	}, nil
}
