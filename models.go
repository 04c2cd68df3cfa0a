package crm

import (
	"encoding/json"
	"strconv"
)

// Permission is a single capability grant. Checks are exact matches on the
// (module, action) pair; there is no wildcard or hierarchy expansion.
type Permission struct {
	Module  string `json:"modulo"`
	Action  string `json:"accion"`
	Granted bool   `json:"granted"`
}

// User is the identity record the identity endpoint returns. The backend is
// inconsistent about field spellings across deployments, so the decoder
// accepts every variant it is known to emit.
type User struct {
	ID                 string       `json:"id"`
	Name               string       `json:"name"`
	Email              string       `json:"email,omitempty"`
	RoleName           string       `json:"roleName"`
	MustChangePassword bool         `json:"mustChangePassword"`
	Permissions        []Permission `json:"permisos,omitempty"`
}

var _ Identity = (*User)(nil)

type userWire struct {
	ID                 json.RawMessage `json:"id"`
	Name               string          `json:"name"`
	UserName           string          `json:"userName"`
	DisplayName        string          `json:"displayName"`
	Email              string          `json:"email"`
	RoleName           string          `json:"roleName"`
	UserRole           string          `json:"userRole"`
	MustChangePassword bool            `json:"mustChangePassword"`
	PrimerAcceso       bool            `json:"primerAcceso"`
	Permissions        []Permission    `json:"permissions"`
	Permisos           []Permission    `json:"permisos"`
}

// UnmarshalJSON folds the backend's alternate key spellings into one record
func (u *User) UnmarshalJSON(data []byte) error {
	var wire userWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	u.ID = decodeScalarID(wire.ID)
	u.Name = firstNonEmpty(wire.Name, wire.UserName, wire.DisplayName)
	u.Email = wire.Email
	u.RoleName = firstNonEmpty(wire.RoleName, wire.UserRole)
	u.MustChangePassword = wire.MustChangePassword || wire.PrimerAcceso
	u.Permissions = wire.Permisos
	if len(u.Permissions) == 0 {
		u.Permissions = wire.Permissions
	}

	return nil
}

// DisplayName implements Identity
func (u *User) DisplayName() string {
	return u.Name
}

// Role implements Identity
func (u *User) Role() string {
	return u.RoleName
}

// ForcePasswordChange implements Identity
func (u *User) ForcePasswordChange() bool {
	return u.MustChangePassword
}

// Can reports whether the user holds a granted (module, action) pair
func (u *User) Can(module, action string) bool {
	for _, p := range u.Permissions {
		if p.Module == module && p.Action == action && p.Granted {
			return true
		}
	}
	return false
}

// GetID implements Identity
func (u *User) GetID() string {
	return u.ID
}

// LoginResult is the raw login response. It is returned to the caller for
// navigation purposes only; the session user always comes from a follow-up
// identity fetch, never from this body.
type LoginResult struct {
	Token      string `json:"token,omitempty"`
	RedirectTo string `json:"redirectTo,omitempty"`
	RoleName   string `json:"roleName,omitempty"`
	Name       string `json:"name,omitempty"`
}

// apiError is the structured error body the backend returns on failures
type apiError struct {
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
	Code    string `json:"code,omitempty"`
}

func (e apiError) text() string {
	if e.Error != "" {
		return e.Error
	}
	return e.Message
}

func decodeScalarID(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}

	var n int64
	if err := json.Unmarshal(raw, &n); err == nil {
		return strconv.FormatInt(n, 10)
	}

	return string(raw)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
