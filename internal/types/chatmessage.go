package types

import (
  "time"

  "github.com/google/uuid"
)

const (
  RoleUser      = "user"
  RoleAssistant = "assistant"
)

// ChatMessage is one turn within a chat. Within a chat, messages are
// totally ordered by CreatedAt and that order is the conversational
// order.
type ChatMessage struct {
  ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
  ChatID    uuid.UUID `gorm:"index;not null" json:"chatId"`
  Role      string    `gorm:"column:role;not null" json:"role"`
  Content   string    `gorm:"column:content;type:text;not null" json:"content"`
  CreatedAt time.Time `gorm:"not null" json:"createdAt"`
  UpdatedAt time.Time `gorm:"not null" json:"updatedAt"`
}

func (ChatMessage) TableName() string {
  return "chat_message"
}
