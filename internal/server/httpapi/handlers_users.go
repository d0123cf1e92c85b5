package httpapi

import (
	"encoding/json"
	"net/http"
)

type preferencesRequest struct {
	PreferredTheme *string `json:"preferred_theme"`
	PreferredFont  *string `json:"preferred_font"`
}

// handleUpdatePreferences applies the provided preference fields. Absent
// fields are left untouched, so a preference cannot be cleared here.
func (s *Server) handleUpdatePreferences(w http.ResponseWriter, r *http.Request) {
	var req preferencesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := s.users.UpdatePreferences(r.Context(), currentUser(r).ID, req.PreferredTheme, req.PreferredFont)
	if err != nil {
		s.logger.Error(r.Context(), "preference update failed", "error", err.Error())
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(user))
}
