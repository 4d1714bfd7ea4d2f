package model

import (
	"time"
)

type User struct {
	ID           int64  `gorm:"primaryKey;autoIncrement"`
	Username     string `gorm:"size:50;not null;uniqueIndex"`
	Email        string `gorm:"size:100;not null;uniqueIndex"`
	PasswordHash string `gorm:"size:255;not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Article struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	Title     string `gorm:"size:200;not null;index"`
	Content   string `gorm:"not null"`
	Category  string `gorm:"size:30;not null;index"`
	CreatedAt time.Time
	AuthorID  int64 `gorm:"not null;index"`
	Author    User  `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
}

type Comment struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	Content   string `gorm:"not null"`
	CreatedAt time.Time
	AuthorID  int64   `gorm:"not null;index"`
	Author    User    `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	ArticleID int64   `gorm:"not null;index"`
	Article   Article `gorm:"foreignKey:ArticleID;constraint:OnDelete:CASCADE"`
}

// Identity is the claim set carried by every token.
type Identity struct {
	UserID   int64
	Username string
}

func (u User) Identity() Identity {
	return Identity{UserID: u.ID, Username: u.Username}
}

type TokenPair struct {
	AccessToken  string
	RefreshToken string
	TokenType    string
	AccessTTL    time.Duration
	RefreshTTL   time.Duration
	UserID       int64
}

// ArticleFilter narrows article listings. Sort is one of SortDateDesc,
// SortDateAsc or empty for insertion order.
type ArticleFilter struct {
	Category string
	Sort     string
}

const (
	SortDateDesc = "date_desc"
	SortDateAsc  = "date_asc"
)
