package dto

// LoginRequest represents login credentials
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserProfile represents the user data returned on a successful login
type UserProfile struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

// LoginResult carries the profile plus the issued access token. The token
// travels in the access-token response header, not the body.
type LoginResult struct {
	Profile     UserProfile
	AccessToken string
}
