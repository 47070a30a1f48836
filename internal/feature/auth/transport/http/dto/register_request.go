// Package dto defines data transfer objects for the auth feature's HTTP transport layer.
package dto

// RegisterReq represents the request body for the /register endpoint.
// It uses Gin's binding tags for validation (required fields, username and
// password length).
type RegisterReq struct {
	Username  string `json:"username" binding:"required,min=1,max=50"`
	Password  string `json:"password" binding:"required,min=1"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Phone     string `json:"phone" binding:"required"`
}

// TokenResponse is the success body for /register and /login.
type TokenResponse struct {
	Token string `json:"token"`
}
