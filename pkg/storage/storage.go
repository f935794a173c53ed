package storage

import (
	"context"

	"github.com/devbelt/toolbox-mcp/pkg/models"
)

type Storage interface {
	// History entry operations. AppendEntry also trims the tool's rows down
	// to the configured capacity, oldest first.
	AppendEntry(ctx context.Context, entry *models.HistoryEntry) error
	ListEntries(ctx context.Context, toolID string, limit int) ([]models.HistoryEntry, error)
	ListToolIDs(ctx context.Context) ([]string, error)
	ClearTool(ctx context.Context, toolID string) error
	ClearAll(ctx context.Context) error

	// Lifecycle
	Close() error
}
