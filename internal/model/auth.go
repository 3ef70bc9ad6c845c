package model

// AuthResponse is returned by POST /token/ and POST /auth/google/callback/.
// Token fields are named access/refresh on the wire.
type AuthResponse struct {
	AccessToken  string `json:"access"`
	RefreshToken string `json:"refresh,omitempty"`
	User         *User  `json:"user"`
	RedirectURI  string `json:"redirect_uri,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RefreshRequest struct {
	Refresh string `json:"refresh"`
}

type RefreshResponse struct {
	Access string `json:"access"`
}

type AuthURLResponse struct {
	AuthURL string `json:"auth_url"`
}

type CallbackRequest struct {
	Code  string `json:"code"`
	State string `json:"state"`
}
