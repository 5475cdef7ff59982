package dto

// LoginRequest authenticates an account for API access.
type LoginRequest struct {
	AccountID string `json:"accountID" binding:"required"`
}

// LoginResponse carries the issued bearer token.
type LoginResponse struct {
	Token     string `json:"token"`
	AccountID string `json:"accountID"`
	Name      string `json:"name"`
}
