// Package entity defines the domain entities for the messages feature.
package entity

import "time"

// Message is a directed, immutable communication unit between two users.
// Rows are written by the message send path; this service only projects them.
type Message struct {
	// ID is the unique, system-assigned message identifier.
	ID uint `gorm:"primaryKey"`

	// FromUsername references the sending user's username.
	FromUsername string `gorm:"size:50;not null;index"`

	// ToUsername references the receiving user's username.
	ToUsername string `gorm:"size:50;not null;index"`

	// Body is the message text.
	Body string `gorm:"not null"`

	// SentAt is the timestamp when the message was sent. Immutable.
	SentAt time.Time `gorm:"autoCreateTime"`

	// ReadAt is the timestamp when the recipient read the message.
	// Nil until read; once set it is never cleared or changed.
	ReadAt *time.Time
}

// TableName maps the entity to the messages relation.
func (Message) TableName() string {
	return "messages"
}
