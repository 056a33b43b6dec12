package repos

import (
  "context"
  "errors"

  "gorm.io/gorm"
  "gorm.io/gorm/clause"

  "github.com/0CyberGhost0/BotIo/internal/logger"
  "github.com/0CyberGhost0/BotIo/internal/types"
)

// UsageField names one of the monotonic per-user counters by column.
type UsageField string

const (
  UsageResponsesUsed UsageField = "responses_used"
  UsageBotCount      UsageField = "bot_count"
  UsageSourcesCount  UsageField = "sources_count"
)

type UserUsageRepo interface {
  Increment(ctx context.Context, tx *gorm.DB, userID string, field UsageField, amount int) error
  GetByUserID(ctx context.Context, tx *gorm.DB, userID string) (*types.UserUsage, error)
}

type userUsageRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewUserUsageRepo(db *gorm.DB, baseLog *logger.Logger) UserUsageRepo {
  return &userUsageRepo{
    db:  db,
    log: baseLog.With("repo", "UserUsageRepo"),
  }
}

// Increment upserts the user's usage row and bumps one counter. The
// insert path seeds only the incremented field; the conflict path adds
// amount to the existing value.
func (uur *userUsageRepo) Increment(ctx context.Context, tx *gorm.DB, userID string, field UsageField, amount int) error {
  if tx == nil {
    tx = uur.db
  }
  usage := types.UserUsage{UserID: userID}
  switch field {
  case UsageResponsesUsed:
    usage.ResponsesUsed = amount
  case UsageBotCount:
    usage.BotCount = amount
  case UsageSourcesCount:
    usage.SourcesCount = amount
  default:
    return errors.New("unknown usage field: " + string(field))
  }
  if err := tx.WithContext(ctx).
    Clauses(clause.OnConflict{
      Columns: []clause.Column{{Name: "user_id"}},
      DoUpdates: clause.Assignments(map[string]interface{}{
        string(field): gorm.Expr(string(field)+" + ?", amount),
      }),
    }).
    Create(&usage).Error; err != nil {
    uur.log.Error("failed to increment usage", "field", string(field), "error", err)
    return err
  }
  return nil
}

func (uur *userUsageRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID string) (*types.UserUsage, error) {
  if tx == nil {
    tx = uur.db
  }
  var usage types.UserUsage
  if err := tx.WithContext(ctx).
    Where("user_id = ?", userID).
    First(&usage).Error; err != nil {
    return nil, err
  }
  return &usage, nil
}
