package models

import (
	"time"
)

// HistoryEntry is one recorded tool invocation. Rows are hard-deleted on
// clear so that the privacy control actually removes data.
type HistoryEntry struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	ToolID       string    `gorm:"type:varchar(255);index;not null" json:"tool_id"`
	Input        string    `gorm:"type:text" json:"input"`
	Output       string    `gorm:"type:text" json:"output,omitempty"`
	ErrorMessage string    `gorm:"type:text" json:"error_message,omitempty"`
	DurationMs   int64     `json:"duration_ms"`
	Success      bool      `gorm:"index" json:"success"`
}
