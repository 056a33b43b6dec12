package types

import (
  "time"
)

// UserUsage holds the monotonic per-user counters. Keyed by the
// external identity provider's user id; never decremented.
type UserUsage struct {
  UserID        string    `gorm:"column:user_id;primaryKey" json:"userId"`
  ResponsesUsed int       `gorm:"column:responses_used;not null;default:0" json:"responsesUsed"`
  BotCount      int       `gorm:"column:bot_count;not null;default:0" json:"botCount"`
  SourcesCount  int       `gorm:"column:sources_count;not null;default:0" json:"sourcesCount"`
  CreatedAt     time.Time `gorm:"not null" json:"createdAt"`
  UpdatedAt     time.Time `gorm:"not null" json:"updatedAt"`
}

func (UserUsage) TableName() string {
  return "user_usage"
}
