package types

import (
  "time"

  "github.com/google/uuid"
)

// SourceType is the closed set of knowledge source kinds a bot can be
// trained on. "docs" is the wire name for DOCX uploads.
type SourceType string

const (
  SourceTypePDF     SourceType = "pdf"
  SourceTypeTXT     SourceType = "txt"
  SourceTypeDocs    SourceType = "docs"
  SourceTypeText    SourceType = "text"
  SourceTypeURL     SourceType = "url"
  SourceTypeYouTube SourceType = "youtube"
  SourceTypeNotion  SourceType = "notion"
)

func (st SourceType) Valid() bool {
  switch st {
  case SourceTypePDF, SourceTypeTXT, SourceTypeDocs, SourceTypeText, SourceTypeURL, SourceTypeYouTube, SourceTypeNotion:
    return true
  }
  return false
}

// RequiresFile reports whether the type is backed by an uploaded file
// rather than inline content.
func (st SourceType) RequiresFile() bool {
  switch st {
  case SourceTypePDF, SourceTypeTXT, SourceTypeDocs:
    return true
  }
  return false
}

// Source is one ingested unit of knowledge. Content always holds the
// fully extracted text for the source at ingestion time.
type Source struct {
  ID        uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
  BotID     uuid.UUID   `gorm:"index;not null" json:"botId"`
  Bot       *Bot        `gorm:"constraint:OnDelete:CASCADE;foreignKey:BotID;references:ID" json:"-"`
  Type      SourceType  `gorm:"column:type;not null" json:"type"`
  Title     string      `gorm:"column:title" json:"title"`
  Content   string      `gorm:"column:content;type:text" json:"content"`
  CreatedAt time.Time   `gorm:"not null" json:"createdAt"`
  UpdatedAt time.Time   `gorm:"not null" json:"updatedAt"`
}

func (Source) TableName() string {
  return "source"
}
