package dto

// SignupRequest asks for a confirmation code. Username defaults to the email.
type SignupRequest struct {
	Email    string `json:"email" binding:"required,email,max=254"`
	Username string `json:"username" binding:"omitempty,username"`
}

// SignupResponse echoes the registration data back to the client.
type SignupResponse struct {
	Email    string `json:"email"`
	Username string `json:"username"`
}

// TokenRequest exchanges a confirmation code for a bearer token.
type TokenRequest struct {
	Email            string `json:"email" binding:"required,email"`
	ConfirmationCode string `json:"confirmation_code" binding:"required"`
}

// TokenResponse carries either the signed token or, on a code mismatch,
// the error message in the same field.
type TokenResponse struct {
	Token string `json:"token"`
}

const MsgInvalidConfirmationCode = "Invalid confirmation code!"
