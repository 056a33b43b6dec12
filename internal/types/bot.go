package types

import (
  "time"

  "github.com/google/uuid"
)

type Bot struct {
  ID          uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
  Name        string      `gorm:"column:name;not null" json:"name"`
  Description string      `gorm:"column:description" json:"description"`
  Model       string      `gorm:"column:model" json:"model"`
  OwnerID     string      `gorm:"column:owner_id;index;not null" json:"ownerId"`
  Sources     []Source    `gorm:"foreignKey:BotID;constraint:OnDelete:CASCADE" json:"sources,omitempty"`
  CreatedAt   time.Time   `gorm:"not null" json:"createdAt"`
  UpdatedAt   time.Time   `gorm:"not null" json:"updatedAt"`
}

func (Bot) TableName() string {
  return "bot"
}
