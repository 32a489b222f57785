package mysql

import (
	"context"
	"encoding/json"

	"github.com/DennisDemir24/hobby-link/internal/model"

	"gorm.io/gorm"
)

type OutboxRepository struct {
	DB *gorm.DB
}

// Insert 与业务写同事务落一条待投递事件
func (r *OutboxRepository) Insert(eventType string, entityID uint64, payload any) error {
	b, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	ob := &model.NotifyOutbox{
		EventType: eventType,
		EntityID:  entityID,
		Payload:   string(b),
		Status:    0,
	}
	return r.DB.Create(ob).Error
}

func (r *OutboxRepository) List(ctx context.Context, batchSize int) ([]model.NotifyOutbox, error) {
	var list []model.NotifyOutbox
	if err := r.DB.WithContext(ctx).
		Where("status = 0").
		Order("id ASC").
		Limit(batchSize).
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// RetryUpdate 投递失败记一次重试
func (r *OutboxRepository) RetryUpdate(ctx context.Context, id uint64) error {
	return r.DB.WithContext(ctx).Model(&model.NotifyOutbox{}).Where("id = ?", id).
		Updates(map[string]any{"status": 2, "retry": gorm.Expr("retry + 1")}).Error
}

// SuccessUpdate 投递成功
func (r *OutboxRepository) SuccessUpdate(ctx context.Context, id uint64) error {
	return r.DB.WithContext(ctx).Model(&model.NotifyOutbox{}).Where("id = ?", id).
		Update("status", 1).Error
}
