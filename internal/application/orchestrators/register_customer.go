package orchestrators

import (
	"context"
	"errors"
	"log/slog"

	userStore "hotelchain/internal/adapters/storage/user"
	"hotelchain/internal/application/formutil"
	"hotelchain/internal/domain/user"
)

// UserStoreForRegister defines the store interface needed by RegisterCustomer.
type UserStoreForRegister interface {
	Create(ctx context.Context, u user.User) (int64, error)
}

// RegisterCustomerInput carries input for the registration orchestrator.
type RegisterCustomerInput struct {
	Name     string
	Email    string
	Password string
}

// RegisterCustomerDeps holds dependencies for RegisterCustomer.
type RegisterCustomerDeps struct {
	UserStore UserStoreForRegister
}

var (
	ErrEmailTaken              = errors.New("Email is already registered.")
	ErrRegistrationUnavailable = errors.New("Database error: Unable to complete registration.")
)

// ValidationError reports form input that failed server-side validation.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ExecuteRegisterCustomer creates a customer account from the public registration form.
// PRE: none; all input is re-validated here
// POST: Customer user created with a bcrypt password hash
// INVARIANT: Email must be unique
func ExecuteRegisterCustomer(ctx context.Context, input RegisterCustomerInput, deps RegisterCustomerDeps) (int64, error) {
	form := formutil.RegistrationForm{
		Name:     formutil.Sanitize(input.Name),
		Email:    formutil.Sanitize(input.Email),
		Password: input.Password,
	}
	if err := formutil.Validate(&form); err != nil {
		return 0, &ValidationError{Message: err.Error()}
	}

	u := user.User{
		Name:  form.Name,
		Email: form.Email,
		Role:  user.RoleCustomer,
	}
	if err := u.SetPassword(form.Password); err != nil {
		return 0, &ValidationError{Message: err.Error()}
	}
	if err := u.Validate(); err != nil {
		return 0, &ValidationError{Message: err.Error()}
	}

	id, err := deps.UserStore.Create(ctx, u)
	if errors.Is(err, userStore.ErrDuplicateEmail) {
		return 0, ErrEmailTaken
	}
	if err != nil {
		slog.Error("auth_event", "event", "register_error", "email", u.Email, "error", err.Error())
		return 0, ErrRegistrationUnavailable
	}

	slog.Info("auth_event", "event", "register_success", "email", u.Email, "user_id", id)
	return id, nil
}
