package models

import "time"

// File audit action labels shown to users, matching the platform locale.
const (
	FileActionCreated = "Criação"
	FileActionEdited  = "Edição"
	FileActionDeleted = "Remoção"
)

// FileAudit rows are append-only snapshots; title and folder name are
// captured at write time and never resolved again.
type FileAudit struct {
	ID              uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Timestamp       time.Time `gorm:"not null;index" json:"timestamp"`
	UserID          uint      `gorm:"not null;index" json:"user_id"`
	ActionType      string    `gorm:"type:varchar(20);not null;index" json:"action_type"`
	FileID          uint      `gorm:"not null;index" json:"file_id"`
	StoredFileTitle string    `gorm:"type:varchar(255);not null" json:"stored_file_title"`
	FolderName      string    `gorm:"type:varchar(255);not null" json:"folder_name"`
}
