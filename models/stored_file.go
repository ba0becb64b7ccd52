package models

import "time"

type StoredFile struct {
	ID            uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	StoredName    string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"stored_name"`
	Title         string    `gorm:"type:varchar(255);not null" json:"title"`
	FolderID      uint      `gorm:"not null;index" json:"folder_id"`
	UserID        uint      `gorm:"not null;index" json:"user_id"`
	FileSize      int64     `json:"file_size"`
	MimeType      string    `gorm:"type:varchar(100)" json:"mime_type"`
	IsImage       bool      `gorm:"default:false" json:"is_image"`
	ThumbnailPath string    `gorm:"type:varchar(1000)" json:"thumbnail_path,omitempty"`
	UploadDate    time.Time `gorm:"index" json:"upload_date"`
	UpdatedAt     time.Time `json:"updated_at"`
}
