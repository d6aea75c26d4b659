package domain

// User is the viewer profile returned by /users/me
type User struct {
	ID       string `json:"id,omitempty"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
}

// LoginRequest is the login form payload. Identifier is a username or email.
type LoginRequest struct {
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

// SignupRequest is the signup form payload
type SignupRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// AuthResult is the backend answer to login or signup. An empty Token after
// signup means the account is waiting for email verification.
type AuthResult struct {
	Token   string `json:"token"`
	Message string `json:"message,omitempty"`
}

// Pending reports whether signup succeeded without issuing a credential
func (r *AuthResult) Pending() bool {
	return r.Token == ""
}
