package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/hugh/otp-auth/internal/api/dto"
	"github.com/hugh/otp-auth/internal/api/middleware"
	"github.com/hugh/otp-auth/internal/auth"
)

type AuthHandler struct {
	authService auth.Authenticator
	production  bool
}

// NewAuthHandler builds the auth endpoints. production switches the session
// cookie to Secure with SameSite=None for cross-site frontends.
func NewAuthHandler(authService auth.Authenticator, production bool) *AuthHandler {
	return &AuthHandler{authService: authService, production: production}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.Fail("Invalid request body"))
		return
	}

	if errs := req.Validate(); len(errs) > 0 {
		writeJSON(w, http.StatusOK, dto.Fail("Missing Details"))
		return
	}

	resp, err := h.authService.Register(r.Context(), auth.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})

	// The account exists once a token comes back, even if the welcome
	// e-mail failed afterwards.
	if resp != nil {
		h.setSessionCookie(w, resp.Token)
	}

	if err != nil {
		switch {
		case errors.Is(err, auth.ErrValidation):
			writeJSON(w, http.StatusOK, dto.Fail("Missing Details"))
		case errors.Is(err, auth.ErrUserExists):
			writeJSON(w, http.StatusOK, dto.Fail("User already exists"))
		default:
			writeError(w, err)
		}
		return
	}

	writeJSON(w, http.StatusOK, dto.OK("User registered successfully"))
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.Fail("Invalid request body"))
		return
	}

	if errs := req.Validate(); len(errs) > 0 {
		writeJSON(w, http.StatusUnauthorized, dto.Fail("Email and password are required."))
		return
	}

	resp, err := h.authService.Login(r.Context(), auth.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})

	if err != nil {
		switch {
		case errors.Is(err, auth.ErrValidation):
			writeJSON(w, http.StatusUnauthorized, dto.Fail("Email and password are required."))
		case errors.Is(err, auth.ErrUserNotFound):
			writeJSON(w, http.StatusUnauthorized, dto.Fail("User not found"))
		case errors.Is(err, auth.ErrInvalidCredentials):
			writeJSON(w, http.StatusUnauthorized, dto.Fail("Invalid credentials"))
		default:
			writeError(w, err)
		}
		return
	}

	h.setSessionCookie(w, resp.Token)
	writeJSON(w, http.StatusOK, dto.OK("Login successful"))
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.clearSessionCookie(w)
	writeJSON(w, http.StatusOK, dto.OK("Logged Out"))
}

func (h *AuthHandler) SendVerifyOTP(w http.ResponseWriter, r *http.Request) {
	err := h.authService.SendVerifyOTP(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrUserNotFound):
			writeJSON(w, http.StatusOK, dto.Fail("User Not Found"))
		case errors.Is(err, auth.ErrAlreadyVerified):
			writeJSON(w, http.StatusOK, dto.Fail("Account already verified"))
		default:
			writeError(w, err)
		}
		return
	}

	writeJSON(w, http.StatusOK, dto.OK("Verification OTP Sent on Email"))
}

func (h *AuthHandler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	var req dto.VerifyEmailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.Fail("Invalid request body"))
		return
	}

	userID := middleware.GetUserID(r.Context())
	if errs := req.Validate(); len(errs) > 0 || userID == "" {
		writeJSON(w, http.StatusOK, dto.Fail("Missing Details"))
		return
	}

	if err := h.authService.VerifyEmail(r.Context(), userID, req.OTP); err != nil {
		switch {
		case errors.Is(err, auth.ErrValidation):
			writeJSON(w, http.StatusOK, dto.Fail("Missing Details"))
		case errors.Is(err, auth.ErrUserNotFound):
			writeJSON(w, http.StatusOK, dto.Fail("User Not Found"))
		default:
			writeOTPError(w, err)
		}
		return
	}

	writeJSON(w, http.StatusOK, dto.OK("Email Verified successfully."))
}

// IsAuthenticated only runs behind the auth middleware, so reaching it means
// the session is valid.
func (h *AuthHandler) IsAuthenticated(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, dto.Response{Success: true})
}

func (h *AuthHandler) SendResetOTP(w http.ResponseWriter, r *http.Request) {
	var req dto.SendResetOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.Fail("Invalid request body"))
		return
	}

	if errs := req.Validate(); len(errs) > 0 {
		writeJSON(w, http.StatusOK, dto.Fail("Email is required"))
		return
	}

	if err := h.authService.SendResetOTP(r.Context(), req.Email); err != nil {
		switch {
		case errors.Is(err, auth.ErrValidation):
			writeJSON(w, http.StatusOK, dto.Fail("Email is required"))
		case errors.Is(err, auth.ErrUserNotFound):
			writeJSON(w, http.StatusOK, dto.Fail("User not found"))
		default:
			writeError(w, err)
		}
		return
	}

	writeJSON(w, http.StatusOK, dto.OK("Password Reset OTP Sent on Email"))
}

func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req dto.ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.Fail("Invalid request body"))
		return
	}

	if errs := req.Validate(); len(errs) > 0 {
		writeJSON(w, http.StatusOK, dto.Fail("Email, OTP and New Password are required"))
		return
	}

	err := h.authService.ResetPassword(r.Context(), auth.ResetPasswordInput{
		Email:       req.Email,
		OTP:         req.OTP,
		NewPassword: req.NewPassword,
	})
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrValidation):
			writeJSON(w, http.StatusOK, dto.Fail("Email, OTP and New Password are required"))
		case errors.Is(err, auth.ErrUserNotFound):
			writeJSON(w, http.StatusOK, dto.Fail("User not found"))
		default:
			writeOTPError(w, err)
		}
		return
	}

	writeJSON(w, http.StatusOK, dto.OK("Password has been reset successfully."))
}

func (h *AuthHandler) setSessionCookie(w http.ResponseWriter, token string) {
	cookie := h.sessionCookie()
	cookie.Value = token
	cookie.MaxAge = int(auth.SessionTTL.Seconds())
	http.SetCookie(w, cookie)
}

func (h *AuthHandler) clearSessionCookie(w http.ResponseWriter) {
	cookie := h.sessionCookie()
	cookie.MaxAge = -1
	http.SetCookie(w, cookie)
}

func (h *AuthHandler) sessionCookie() *http.Cookie {
	cookie := &http.Cookie{
		Name:     middleware.SessionCookie,
		Path:     "/",
		HttpOnly: true,
		Secure:   false,
		SameSite: http.SameSiteStrictMode,
	}
	if h.production {
		cookie.Secure = true
		cookie.SameSite = http.SameSiteNoneMode
	}
	return cookie
}

func writeOTPError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, auth.ErrInvalidOTP):
		writeJSON(w, http.StatusOK, dto.Fail("Invalid OTP"))
	case errors.Is(err, auth.ErrOTPExpired):
		writeJSON(w, http.StatusOK, dto.Fail("OTP Expired"))
	default:
		writeError(w, err)
	}
}
