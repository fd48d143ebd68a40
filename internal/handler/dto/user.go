// Package dto provides Data Transfer Objects for API requests and responses.
package dto

// CreateUserRequest represents the request body for creating a user.
type CreateUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ServiceInfo is returned by the root endpoint.
type ServiceInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}
