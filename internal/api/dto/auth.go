package dto

import (
	"errors"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
)

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r RegisterRequest) Validate() map[string]string {
	return fieldErrors(validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required),
		validation.Field(&r.Email, validation.Required),
		validation.Field(&r.Password, validation.Required),
	))
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate rejects whitespace-only values as well as empty ones.
func (r LoginRequest) Validate() map[string]string {
	trimmed := LoginRequest{
		Email:    strings.TrimSpace(r.Email),
		Password: strings.TrimSpace(r.Password),
	}
	return fieldErrors(validation.ValidateStruct(&trimmed,
		validation.Field(&trimmed.Email, validation.Required),
		validation.Field(&trimmed.Password, validation.Required),
	))
}

type VerifyEmailRequest struct {
	OTP string `json:"otp"`
}

func (r VerifyEmailRequest) Validate() map[string]string {
	return fieldErrors(validation.ValidateStruct(&r,
		validation.Field(&r.OTP, validation.Required),
	))
}

type SendResetOTPRequest struct {
	Email string `json:"email"`
}

func (r SendResetOTPRequest) Validate() map[string]string {
	return fieldErrors(validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required),
	))
}

type ResetPasswordRequest struct {
	Email       string `json:"email"`
	OTP         string `json:"otp"`
	NewPassword string `json:"newPassword"`
}

func (r ResetPasswordRequest) Validate() map[string]string {
	return fieldErrors(validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required),
		validation.Field(&r.OTP, validation.Required),
		validation.Field(&r.NewPassword, validation.Required),
	))
}

type UserDataResponse struct {
	Success  bool     `json:"success"`
	UserData UserData `json:"userData"`
}

type UserData struct {
	Name              string `json:"name"`
	IsAccountVerified bool   `json:"isAccountVerified"`
}

// fieldErrors flattens ozzo's per-field errors, keyed by JSON name.
func fieldErrors(err error) map[string]string {
	errs := make(map[string]string)
	if err == nil {
		return errs
	}

	var verrs validation.Errors
	if errors.As(err, &verrs) {
		for field, ferr := range verrs {
			errs[field] = ferr.Error()
		}
		return errs
	}

	errs["_"] = err.Error()
	return errs
}
