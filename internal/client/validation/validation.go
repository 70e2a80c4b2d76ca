// Package validation holds the local field rules of the create/edit dialog.
// They run before any network call; a non-empty FieldErrors result means the
// submission never reaches the server.
package validation

import (
	"errors"
	"reflect"
	"strings"

	"github.com/dmitrijs2005/usersadmin/internal/client/models"
	"github.com/go-playground/validator/v10"
)

// Messages shown next to the offending field.
const (
	MsgUsernameRequired        = "username is required"
	MsgPasswordRequired        = "password is required"
	MsgConfirmPasswordRequired = "please confirm the password"
	MsgPasswordsDoNotMatch     = "passwords do not match"
)

// Payload is a validated submission. IncludesPassword is false only for an
// edit that leaves the password unchanged.
type Payload struct {
	Username         string
	Password         string
	ConfirmPassword  string
	IncludesPassword bool
}

// CreateRequest converts p into a POST body.
func (p Payload) CreateRequest() models.CreateUserRequest {
	return models.CreateUserRequest{
		Username:        p.Username,
		Password:        p.Password,
		ConfirmPassword: p.ConfirmPassword,
	}
}

// UpdateRequest converts p into a PUT body; password fields are dropped when
// the password is not being changed.
func (p Payload) UpdateRequest() models.UpdateUserRequest {
	req := models.UpdateUserRequest{Username: p.Username}
	if p.IncludesPassword {
		req.Password = p.Password
		req.ConfirmPassword = p.ConfirmPassword
	}
	return req
}

type usernameOnly struct {
	Username string `json:"username" validate:"required"`
}

type withPassword struct {
	Username        string `json:"username" validate:"required"`
	Password        string `json:"password" validate:"required"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate applies the rules for mode to the raw fields.
//
// Username is required (after trimming) in both modes. Password and its
// confirmation are required in create mode, and in edit mode whenever a new
// password was typed; the confirmation must match byte for byte. An edit with
// an empty password validates the username only, whatever the confirmation holds.
func Validate(mode models.Mode, fields models.FormFields) (Payload, models.FieldErrors) {
	username := strings.TrimSpace(fields.Username)

	if mode == models.ModeEdit && fields.Password == "" {
		if errs := translate(validate.Struct(usernameOnly{Username: username})); len(errs) > 0 {
			return Payload{}, errs
		}
		return Payload{Username: username}, nil
	}

	in := withPassword{
		Username:        username,
		Password:        fields.Password,
		ConfirmPassword: fields.ConfirmPassword,
	}
	if errs := translate(validate.Struct(in)); len(errs) > 0 {
		return Payload{}, errs
	}
	return Payload{
		Username:         username,
		Password:         fields.Password,
		ConfirmPassword:  fields.ConfirmPassword,
		IncludesPassword: true,
	}, nil
}

func translate(err error) models.FieldErrors {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return models.FieldErrors{models.FieldUsername: err.Error()}
	}

	out := make(models.FieldErrors, len(verrs))
	for _, fe := range verrs {
		field := fe.Field()
		if _, seen := out[field]; seen {
			continue
		}
		out[field] = message(field, fe.Tag())
	}
	return out
}

func message(field, tag string) string {
	switch {
	case tag == "eqfield":
		return MsgPasswordsDoNotMatch
	case field == models.FieldUsername:
		return MsgUsernameRequired
	case field == models.FieldPassword:
		return MsgPasswordRequired
	case field == models.FieldConfirmPassword:
		return MsgConfirmPasswordRequired
	default:
		return field + " is invalid"
	}
}
