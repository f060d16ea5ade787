package model

import "time"

// Tag labels notes for filtering. Names are unique per user, not globally.
type Tag struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index:idx_user_tag_name,unique" json:"user_id"`
	Name      string    `gorm:"index:idx_user_tag_name,unique" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Note is a markdown document owned by a user.
type Note struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index" json:"user_id"`
	Title     string    `json:"title"`
	Content   string    `gorm:"type:text" json:"content"`
	Tags      []Tag     `gorm:"many2many:note_tags" json:"tags"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
