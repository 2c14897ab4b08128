package handlers

import (
	"errors"
	"net/http"

	"github.com/hugh/otp-auth/internal/api/dto"
	"github.com/hugh/otp-auth/internal/api/middleware"
	"github.com/hugh/otp-auth/internal/auth"
)

type UserHandler struct {
	authService auth.Authenticator
}

func NewUserHandler(authService auth.Authenticator) *UserHandler {
	return &UserHandler{authService: authService}
}

// GetUserData returns the public profile of the logged-in user.
func (h *UserHandler) GetUserData(w http.ResponseWriter, r *http.Request) {
	user, err := h.authService.GetUserByID(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			writeJSON(w, http.StatusOK, dto.Fail("User not found"))
			return
		}
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.UserDataResponse{
		Success: true,
		UserData: dto.UserData{
			Name:              user.Name,
			IsAccountVerified: user.IsAccountVerified,
		},
	})
}
