package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/hugh/otp-auth/internal/api/dto"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError reports an unmapped failure (store or mail) with the error
// text as the message.
func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, http.StatusOK, dto.Fail(err.Error()))
}
