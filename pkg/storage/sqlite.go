package storage

import (
	"context"
	"fmt"

	"github.com/devbelt/toolbox-mcp/pkg/models"
	"github.com/devbelt/toolbox-mcp/pkg/types"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type SQLiteStorage struct {
	db       *gorm.DB
	capacity int
}

type Config struct {
	DatabasePath string
	Debug        bool
	// Capacity is the per-tool row cap. Zero means types.HistoryCapacity.
	Capacity int
}

func NewSQLiteStorage(cfg Config) (*SQLiteStorage, error) {
	logLevel := logger.Silent
	if cfg.Debug {
		logLevel = logger.Info
	}

	database, err := gorm.Open(sqlite.Open(cfg.DatabasePath), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	// Auto-migrate schema
	if err := database.AutoMigrate(&models.HistoryEntry{}); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	capacity := cfg.Capacity
	if capacity <= 0 {
		capacity = types.HistoryCapacity
	}

	return &SQLiteStorage{db: database, capacity: capacity}, nil
}

func (s *SQLiteStorage) AppendEntry(ctx context.Context, entry *models.HistoryEntry) error {
	if err := s.db.WithContext(ctx).Create(entry).Error; err != nil {
		return err
	}

	// Evict rows beyond capacity, oldest first. Autoincrement id orders
	// same-millisecond inserts reliably where created_at cannot.
	keep := s.db.Model(&models.HistoryEntry{}).
		Select("id").
		Where("tool_id = ?", entry.ToolID).
		Order("id DESC").
		Limit(s.capacity)

	return s.db.WithContext(ctx).
		Where("tool_id = ? AND id NOT IN (?)", entry.ToolID, keep).
		Delete(&models.HistoryEntry{}).Error
}

func (s *SQLiteStorage) ListEntries(ctx context.Context, toolID string, limit int) ([]models.HistoryEntry, error) {
	var entries []models.HistoryEntry
	query := s.db.WithContext(ctx).
		Where("tool_id = ?", toolID).
		Order("id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&entries).Error
	return entries, err
}

func (s *SQLiteStorage) ListToolIDs(ctx context.Context) ([]string, error) {
	var ids []string
	err := s.db.WithContext(ctx).
		Model(&models.HistoryEntry{}).
		Distinct("tool_id").
		Order("tool_id").
		Pluck("tool_id", &ids).Error
	return ids, err
}

func (s *SQLiteStorage) ClearTool(ctx context.Context, toolID string) error {
	return s.db.WithContext(ctx).Where("tool_id = ?", toolID).Delete(&models.HistoryEntry{}).Error
}

func (s *SQLiteStorage) ClearAll(ctx context.Context) error {
	return s.db.WithContext(ctx).Where("1 = 1").Delete(&models.HistoryEntry{}).Error
}

func (s *SQLiteStorage) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
