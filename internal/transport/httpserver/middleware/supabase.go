package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const defaultAuthTimeout = 5 * time.Second

type supabaseClient struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// supabaseUser covers both the flat /auth/v1/user payload and the nested
// {"user": {...}} shape some proxies return.
type supabaseUser struct {
	ID       string       `json:"id"`
	Sub      string       `json:"sub"`
	Email    string       `json:"email"`
	Metadata userMetadata `json:"user_metadata"`
	User     *struct {
		ID  string `json:"id"`
		Sub string `json:"sub"`
	} `json:"user"`
}

type userMetadata struct {
	Name      string `json:"name"`
	FullName  string `json:"full_name"`
	AvatarURL string `json:"avatar_url"`
}

func (c *supabaseClient) identify(r *http.Request) (User, error) {
	if c.baseURL == "" || c.apiKey == "" {
		return User{}, fmt.Errorf("%w: SUPABASE_URL and SUPABASE_PUBLISHABLE_KEY are required", errNotConfigured)
	}
	token, ok := bearerToken(r.Header.Get("Authorization"))
	if !ok {
		return User{}, errNoToken
	}

	req, err := http.NewRequestWithContext(r.Context(), http.MethodGet, c.baseURL+"/auth/v1/user", nil)
	if err != nil {
		return User{}, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("apikey", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return User{}, fmt.Errorf("call identity provider: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized, resp.StatusCode == http.StatusForbidden:
		return User{}, errTokenRejected
	case resp.StatusCode != http.StatusOK:
		return User{}, fmt.Errorf("identity provider returned %d", resp.StatusCode)
	}

	var payload supabaseUser
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return User{}, fmt.Errorf("decode identity: %w", err)
	}
	return payload.toUser()
}

func (p supabaseUser) toUser() (User, error) {
	ids := []string{p.ID, p.Sub}
	if p.User != nil {
		ids = append(ids, p.User.ID, p.User.Sub)
	}
	user := User{
		ID:        firstNonEmpty(ids...),
		Email:     p.Email,
		Name:      firstNonEmpty(p.Metadata.Name, p.Metadata.FullName),
		AvatarURL: p.Metadata.AvatarURL,
	}
	if user.ID == "" {
		return User{}, errTokenRejected
	}
	return user, nil
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}
	return ""
}
