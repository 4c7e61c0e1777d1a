// Package models holds the client-side view of userkeeper resources.
package models

import "time"

// User is an account as returned by the read endpoints.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Mobile    string    `json:"mobile"`
	Status    bool      `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// StatusLabel returns "Active" or "Inactive".
func (u User) StatusLabel() string {
	if u.Status {
		return "Active"
	}
	return "Inactive"
}

// Session is the result of a successful login.
type Session struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Token string `json:"token"`
}
