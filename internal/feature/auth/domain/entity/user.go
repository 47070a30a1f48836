// Package entity defines the domain entities for the auth feature.
package entity

import "time"

// User represents a registered user of the messaging service.
// It contains authentication credentials and profile metadata.
type User struct {
	// Username is the unique, immutable identifier for the user.
	Username string `gorm:"primaryKey;size:50"`

	// Password is the hashed password for the user.
	// This should never store plaintext passwords and is never serialized.
	Password string `gorm:"size:255;not null" json:"-"`

	// FirstName is the user's given name.
	FirstName string `gorm:"size:100;not null"`

	// LastName is the user's family name.
	LastName string `gorm:"size:100;not null"`

	// Phone is the user's contact phone number.
	Phone string `gorm:"size:30;not null"`

	// JoinAt is the timestamp when the user registered. Set once at creation.
	JoinAt time.Time `gorm:"autoCreateTime"`

	// LastLoginAt is the timestamp of the most recent successful login.
	// Nil until the user has logged in at least once.
	LastLoginAt *time.Time
}

// TableName maps the entity to the users relation.
func (User) TableName() string {
	return "users"
}
