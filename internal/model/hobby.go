package model

import "time"

type Hobby struct {
	ID          uint64   `gorm:"primaryKey"`
	Name        string   `gorm:"uniqueIndex;size:64;not null"`
	Description string   `gorm:"type:text"`
	Tags        []string `gorm:"serializer:json;type:json"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// GeneralHobbyName 未指定爱好的社区兜底归属
const GeneralHobbyName = "General"
