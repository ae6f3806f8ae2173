package models

import "time"

// Identity is the staff profile the backend returns on login.
type Identity struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone_number,omitempty"`
	Role  string `json:"role,omitempty"`
}

// Session is the console's server-side session record: the staff identity
// and the backend credential, stored together and always replaced as one
// value.
type Session struct {
	Identity   Identity  `json:"identity"`
	Credential string    `json:"credential"`
	ExpiresAt  time.Time `json:"expires_at"`
}

// Active reports whether the session is still usable at the given instant.
func (s *Session) Active(now time.Time) bool {
	return s.Credential != "" && now.Before(s.ExpiresAt)
}

// LoginUpstream is the backend's login response.
type LoginUpstream struct {
	User      Identity  `json:"user"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// LoginResult is what the console hands back to the browser: the identity
// plus the signed console token (never the backend credential).
type LoginResult struct {
	User      Identity  `json:"user"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}
