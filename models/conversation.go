// models/conversation.go
package models

import (
	"strconv"
	"time"
)

const (
	MessageRoleUser      = "user"
	MessageRoleAssistant = "assistant"
	MessageRoleLawyer    = "lawyer"
)

// Conversation is a session-scoped chat thread owned by one account.
type Conversation struct {
	ID        int64     `json:"id"`
	UserID    string    `json:"userId"`
	Title     string    `json:"title,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (c Conversation) RowID() int64     { return c.ID }
func (c Conversation) OwnerKey() string { return c.UserID }

func (c Conversation) Assign(id int64, at time.Time) Conversation {
	c.ID = id
	c.CreatedAt = at
	c.UpdatedAt = at
	return c
}

// Message is one turn inside a conversation.
type Message struct {
	ID             int64     `json:"id"`
	ConversationID int64     `json:"conversationId"`
	Role           string    `json:"role"`
	Content        string    `json:"content"`
	CreatedAt      time.Time `json:"createdAt"`
}

func (m Message) RowID() int64     { return m.ID }
func (m Message) OwnerKey() string { return strconv.FormatInt(m.ConversationID, 10) }

func (m Message) Assign(id int64, at time.Time) Message {
	m.ID = id
	m.CreatedAt = at
	return m
}

// HistoryLine renders the message the way prompt history expects it.
func (m Message) HistoryLine() string {
	return m.Role + ": " + m.Content
}

// Exchange pairs a stored user message with the assistant reply it produced.
type Exchange struct {
	UserMessage      Message `json:"userMessage"`
	AssistantMessage Message `json:"assistantMessage"`
}

type CreateConversationRequest struct {
	Title string `json:"title"`
}

type PostMessageRequest struct {
	Content string `json:"content" binding:"required"`
}
