package models

import "time"

// FolderAudit rows are append-only. FolderName is a snapshot taken at
// action time, so the trail stays readable after renames and deletes;
// FolderID is a weak back-reference with no FK and no cascade.
type FolderAudit struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID     uint      `gorm:"not null;index" json:"user_id"`
	ActionType string    `gorm:"type:varchar(20);not null;index" json:"action_type"`
	Timestamp  time.Time `gorm:"not null;index" json:"timestamp"`
	FolderID   uint      `gorm:"not null;index" json:"folder_id"`
	FolderName string    `gorm:"type:varchar(255);not null" json:"folder_name"`
}
