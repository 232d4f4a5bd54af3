package models

import "time"

// User represents a registered author.
type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Not serialized
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// UserBrief is the minimal author projection embedded in posts and comments.
type UserBrief struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Brief returns the minimal projection of the user.
func (u *User) Brief() *UserBrief {
	return &UserBrief{ID: u.ID, Name: u.Name, Email: u.Email}
}
