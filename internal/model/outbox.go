package model

import "time"

// 出箱事件类型
const (
	EventRevalidate = "revalidate"
	EventComment    = "comment"
)

// NotifyOutbox 通知事件出箱表，与业务写同事务落库，异步投递
type NotifyOutbox struct {
	ID        uint64 `gorm:"primaryKey"`
	EventType string `gorm:"size:16;not null"` // revalidate / comment
	EntityID  uint64 `gorm:"not null"`
	Payload   string `gorm:"type:json;not null"`
	Status    int8   `gorm:"not null;default:0;comment:'0=pending,1=sent,2=failed'"`
	Retry     int    `gorm:"not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (NotifyOutbox) TableName() string { return "notify_outbox" }
