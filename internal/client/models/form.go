package models

// Mode tells the dialog whether it creates a record or edits an existing one.
type Mode string

const (
	ModeCreate Mode = "create"
	ModeEdit   Mode = "edit"
)

// Form field names, as used in FieldErrors and in backend error bodies.
const (
	FieldUsername        = "username"
	FieldPassword        = "password"
	FieldConfirmPassword = "confirmPassword"
)

// FormFields is the raw, unvalidated dialog input.
type FormFields struct {
	Username        string `json:"username"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// FieldErrors maps a field name to its message. Empty means valid.
type FieldErrors map[string]string

// Clone returns an independent copy; nil stays nil.
func (fe FieldErrors) Clone() FieldErrors {
	if fe == nil {
		return nil
	}
	out := make(FieldErrors, len(fe))
	for k, v := range fe {
		out[k] = v
	}
	return out
}
