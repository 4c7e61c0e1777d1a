package httpserver

import "github.com/dmitrijs2005/userkeeper/internal/server/models"

// RegisterRequest is the body of register-user.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Mobile   string `json:"mobile"`
	Password string `json:"password"`
}

// UpdateRequest is the body of update-user.
type UpdateRequest = RegisterRequest

// LoginRequest is the body of login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// StatusRequest is the body of active-Deactive-User-by-id. Status is decoded
// loosely so that only the JSON numbers 0 and 1 are accepted.
type StatusRequest struct {
	ID     string `json:"id"`
	Status any    `json:"status"`
}

// statusValue returns 0 or 1 for a numeric status and -1 for anything else.
func (r StatusRequest) statusValue() int {
	f, ok := r.Status.(float64)
	if !ok {
		return -1
	}
	switch f {
	case 0:
		return 0
	case 1:
		return 1
	default:
		return -1
	}
}

// Response is the envelope for bodiless success replies.
type Response struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
}

// ErrorResponse is returned on failures. Error carries the raw cause of
// internal failures.
type ErrorResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

type UserSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Token string `json:"token,omitempty"`
}

type UserResponse struct {
	Status  bool        `json:"status"`
	Message string      `json:"message"`
	User    UserSummary `json:"user"`
}

type UserViewResponse struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	User    models.UserView `json:"user"`
}

type UsersResponse struct {
	Status  bool              `json:"status"`
	Message string            `json:"message"`
	Users   []models.UserView `json:"users"`
}

type ExportResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Key     string `json:"key"`
	URL     string `json:"url"`
	Count   int    `json:"count"`
}
