package models

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthUser struct {
	Email string `json:"email"`
}

// Session is the server-side session object stored in the session cache,
// keyed by the cookie token.
type Session struct {
	Token string   `json:"token"`
	User  AuthUser `json:"user"`
}
