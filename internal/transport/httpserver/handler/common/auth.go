package common

import (
	"net/http"

	"trip-planner-go/internal/transport/httpserver/middleware"
)

type authMeResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url"`
}

func (h *Handlers) AuthMe(w http.ResponseWriter, r *http.Request) {
	user, ok := RequireUser(w, r)
	if !ok {
		return
	}

	response := authMeResponse{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		AvatarURL: user.AvatarURL,
	}
	if h.Users != nil {
		profile, err := h.Users.GetProfile(r.Context(), user.ID)
		if err == nil {
			if response.Email == "" && profile.Email != nil {
				response.Email = *profile.Email
			}
			if response.AvatarURL == "" && profile.AvatarURL != nil {
				response.AvatarURL = *profile.AvatarURL
			}
		}
	}

	writeJSON(w, http.StatusOK, response)
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// RequireUser writes 401 and returns false when the request carries no
// authenticated user.
func RequireUser(w http.ResponseWriter, r *http.Request) (middleware.User, bool) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return middleware.User{}, false
	}
	return user, true
}
