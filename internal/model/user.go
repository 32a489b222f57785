package model

import "time"

type User struct {
	ID        uint64 `gorm:"primaryKey"`
	SubjectID string `gorm:"uniqueIndex;size:64;not null"` // 身份提供方的 subject id
	Email     string `gorm:"size:128;not null"`
	Name      string `gorm:"size:64;not null"`
	ImageURL  string `gorm:"size:255"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
