package models

// Credentials are submitted to the identity provider on login.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Profile is the registration payload.
type Profile struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
}

// AuthResponse is what the identity provider returns for a successful login.
// User is optional; when present it is cached next to the token.
type AuthResponse struct {
	Token string    `json:"token"`
	User  *Identity `json:"user,omitempty"`
}
