package models

import "time"

// FolderLike is pure set membership: the row existing means the user
// currently favorites the folder. There is no liked=false state.
type FolderLike struct {
	UserID    uint      `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	FolderID  uint      `gorm:"primaryKey;autoIncrement:false" json:"folder_id"`
	CreatedAt time.Time `json:"created_at"`
}
