// Package entity defines the read-side entities for the users feature.
package entity

import "time"

// Profile is the public view of a user: the fields other users are allowed
// to see. It never carries the password hash.
type Profile struct {
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
}

// ProfileDetail is the owner-facing view of a user, including the
// registration and last-login timestamps.
type ProfileDetail struct {
	Username    string     `json:"username"`
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	Phone       string     `json:"phone"`
	JoinAt      time.Time  `json:"join_at"`
	LastLoginAt *time.Time `json:"last_login_at"`
}
