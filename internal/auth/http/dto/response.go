// Package dto provides data transfer objects for HTTP request and response handling.
package dto

// LoginResponse contains the issued access token.
// The token is only returned once; the server never stores it.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// MessageResponse carries a human-readable confirmation message.
type MessageResponse struct {
	Message string `json:"message"`
}
