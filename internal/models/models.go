package models

import (
	"time"
)

type User struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Username     string    `gorm:"unique;not null"          json:"username"`
	Email        string    `gorm:"unique;not null"          json:"email"`
	PasswordHash string    `gorm:"not null"                 json:"-"`
	FullName     string    `json:"full_name"`
	IsAdmin      bool      `gorm:"default:false"            json:"is_admin"`
	IsActive     bool      `gorm:"default:true"             json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	Roles        []Role    `gorm:"many2many:user_roles"     json:"roles,omitempty"`
}

type Role struct {
	ID          uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string `gorm:"unique;not null"          json:"name"`
	Description string `json:"description"`
}

type Book struct {
	ID          uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Title       string `gorm:"not null;index"           json:"title"`
	Author      string `gorm:"not null"                 json:"author"`
	Category    string `gorm:"index"                    json:"category"`
	Description string `json:"description"`
	CoverURL    string `json:"cover_url"`
	ISBN        string `json:"isbn,omitempty"`
}

type Favorite struct {
	ID      uint      `gorm:"primaryKey;autoIncrement"                 json:"id"`
	UserID  uint      `gorm:"not null;uniqueIndex:idx_user_book"       json:"user_id"`
	BookID  uint      `gorm:"not null;uniqueIndex:idx_user_book"       json:"book_id"`
	IsRead  bool      `gorm:"default:false"                            json:"is_read"`
	AddedAt time.Time `gorm:"autoCreateTime"                           json:"added_at"`
}
