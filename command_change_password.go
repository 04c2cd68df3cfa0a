package crm

import (
	"context"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	goerrors "github.com/goliatone/go-errors"
)

// ChangePasswordMessage carries a password change request. It drives both the
// forced first-login change and the voluntary one; the backend decides which
// applies.
type ChangePasswordMessage struct {
	CurrentPassword string `json:"currentPassword" form:"current_password"`
	NewPassword     string `json:"newPassword" form:"new_password"`
	ConfirmPassword string `json:"-" form:"confirm_password"`
}

func (m ChangePasswordMessage) Type() string { return "session.change_password" }

// Validate will run validation rules
func (m ChangePasswordMessage) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.CurrentPassword, validation.Required),
		validation.Field(&m.NewPassword, validation.Required, validation.Length(8, 100)),
		validation.Field(
			&m.ConfirmPassword,
			validation.Required,
			validation.By(ValidateStringEquals(m.NewPassword)),
		),
	)
}

// ChangePasswordHandler executes the change against the backend and then
// refreshes the session so the mustChangePassword flag reflects server state.
type ChangePasswordHandler struct {
	session *SessionStore
	client  *Client
	cfg     Config
}

// NewChangePasswordHandler wires the handler to the session's client
func NewChangePasswordHandler(session *SessionStore, client *Client, cfg Config) *ChangePasswordHandler {
	if session == nil || client == nil {
		panic("Missing session or client in change password handler...")
	}
	return &ChangePasswordHandler{session: session, client: client, cfg: cfg}
}

func (h *ChangePasswordHandler) Execute(ctx context.Context, msg ChangePasswordMessage) error {
	select {
	case <-ctx.Done():
		return goerrors.Wrap(
			ctx.Err(),
			goerrors.CategoryOperation,
			"context cancelled during password change",
		)
	default:
		return h.execute(ctx, msg)
	}
}

func (h *ChangePasswordHandler) execute(ctx context.Context, msg ChangePasswordMessage) error {
	if err := msg.Validate(); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryValidation, "invalid password change payload")
	}

	if _, ok := h.session.CurrentUser(); !ok {
		return ErrNoSession
	}

	ctx, cancel := context.WithTimeout(ctx, time.Second*10)
	defer cancel()

	if err := h.client.Post(ctx, h.cfg.GetChangePasswordPath(), msg, nil); err != nil {
		var richErr *goerrors.Error
		if goerrors.As(err, &richErr) {
			return richErr
		}
		return goerrors.Wrap(err, goerrors.CategoryInternal, "password change failed")
	}

	// The flag flip only matters once the server confirms it
	h.session.Refresh(ctx)

	return nil
}

// ValidateStringEquals builds an ozzo rule asserting equality with expected
func ValidateStringEquals(expected string) validation.RuleFunc {
	return func(value any) error {
		s, _ := value.(string)
		if s != expected {
			return goerrors.New("values do not match", goerrors.CategoryValidation)
		}
		return nil
	}
}
