package models

import "time"

type Folder struct {
	ID        uint         `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string       `gorm:"type:varchar(255);not null" json:"name"`
	UserID    uint         `gorm:"not null;index" json:"user_id"`
	IsHidden  bool         `gorm:"default:false;index" json:"is_hidden"`
	CreatedAt time.Time    `gorm:"index" json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
	Files     []StoredFile `gorm:"foreignKey:FolderID" json:"files,omitempty"`
	Likes     []FolderLike `gorm:"foreignKey:FolderID" json:"-"`
	Tags      []Tag        `gorm:"many2many:folder_tags" json:"tags,omitempty"`
}
