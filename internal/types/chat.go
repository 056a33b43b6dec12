package types

import (
  "time"

  "github.com/google/uuid"
)

// Chat is one conversation session with a bot. UserID is nil for
// anonymous sessions created through the public embed surface.
type Chat struct {
  ID         uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
  BotID      uuid.UUID     `gorm:"index;not null" json:"botId"`
  Bot        *Bot          `gorm:"constraint:OnDelete:CASCADE;foreignKey:BotID;references:ID" json:"bot,omitempty"`
  UserID     *string       `gorm:"column:user_id;index" json:"userId"`
  IsEmbedded bool          `gorm:"column:is_embedded;not null;default:false" json:"isEmbedded"`
  Messages   []ChatMessage `gorm:"foreignKey:ChatID;constraint:OnDelete:CASCADE" json:"messages,omitempty"`
  CreatedAt  time.Time     `gorm:"not null" json:"createdAt"`
  UpdatedAt  time.Time     `gorm:"not null" json:"updatedAt"`
}

func (Chat) TableName() string {
  return "chat"
}
