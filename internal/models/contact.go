// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// MessageState is the triage state of a contact message.
type MessageState string

const (
	MessageNew     MessageState = "new"
	MessageRead    MessageState = "read"
	MessageReplied MessageState = "replied"
)

// ContactMessage is a submission from the public contact form.
type ContactMessage struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Subject   string     `json:"subject"`
	Message   string     `json:"message"`
	Phone     string     `json:"phone"`
	IPAddress *string    `json:"ip_address,omitempty"`
	IsRead    bool       `json:"is_read"`
	RepliedAt *time.Time `json:"replied_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// State derives the triage state. A replied message is always read.
func (m *ContactMessage) State() MessageState {
	switch {
	case m.RepliedAt != nil:
		return MessageReplied
	case m.IsRead:
		return MessageRead
	default:
		return MessageNew
	}
}
