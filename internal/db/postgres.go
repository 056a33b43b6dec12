package db

import (
  "fmt"

  "gorm.io/driver/postgres"
  "gorm.io/gorm"

  "github.com/0CyberGhost0/BotIo/internal/logger"
  "github.com/0CyberGhost0/BotIo/internal/types"
  "github.com/0CyberGhost0/BotIo/internal/utils"
)

type PostgresService struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewPostgresService(log *logger.Logger) (*PostgresService, error) {
  serviceLog := log.With("service", "PostgresService")

  //1) Get and Set Environment Variables
  postgresHost := utils.GetEnv("POSTGRES_HOST", "localhost", log)
  postgresPort := utils.GetEnv("POSTGRES_PORT", "5432", log)
  postgresUser := utils.GetEnv("POSTGRES_USER", "postgres", log)
  postgresPassword := utils.GetEnv("POSTGRES_PASSWORD", "", log)
  postgresName := utils.GetEnv("POSTGRES_NAME", "botio", log)

  //2) Construct DSN From Environment Variables
  dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", postgresUser, postgresPassword, postgresHost, postgresPort, postgresName)

  //3) Attempt DB Connection
  log.Info("Attempting to connect to Postgres DB now...")
  gormDB, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
  if err != nil {
    log.Error("Failed to connect to Postgres DB", "error", err)
    return nil, fmt.Errorf("failed to connect to Postgres DB: %w", err)
  }
  log.Info("Successfully Connected to Postgres DB :)")

  return &PostgresService{db: gormDB, log: serviceLog}, nil
}

func (s *PostgresService) DB() *gorm.DB {
  return s.db
}

func (s *PostgresService) AutoMigrateAll() error {
  s.log.Info("Starting AutoMigrateAll for all GORM models now...")
  err := s.db.AutoMigrate(
    &types.Bot{},
    &types.Source{},
    &types.Chat{},
    &types.ChatMessage{},
    &types.UserUsage{},
  )
  if err != nil {
    s.log.Error("AutoMigrateAll failed :(", "error", err)
    return err
  }
  s.log.Info("AutoMigrateAll completed successfully :)")
  return nil
}
