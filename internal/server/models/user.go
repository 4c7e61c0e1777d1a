// Package models defines server-side data models persisted in the user store.
package models

import "time"

// User is an account record. Password holds a bcrypt hash, never plaintext.
// Token is the most recently issued session token; it is overwritten on every
// login and never cleared.
type User struct {
	ID        string
	Name      string
	Email     string
	Mobile    string
	Password  string
	Token     string
	Status    bool
	CreatedAt time.Time
}

// StatusLabel maps an active flag to "Active" or "Inactive".
func StatusLabel(active bool) string {
	if active {
		return "Active"
	}
	return "Inactive"
}

// UserView is the redacted form of User returned by read paths.
// It carries neither the password hash nor the session token.
type UserView struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Mobile    string    `json:"mobile"`
	Status    bool      `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// View returns the redacted representation of u.
func (u *User) View() UserView {
	return UserView{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Mobile:    u.Mobile,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
	}
}

// Views redacts a slice of users preserving order.
func Views(users []*User) []UserView {
	out := make([]UserView, 0, len(users))
	for _, u := range users {
		out = append(out, u.View())
	}
	return out
}
