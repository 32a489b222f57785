package notify

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/DennisDemir24/hobby-link/internal/model"
	"github.com/DennisDemir24/hobby-link/internal/pkg"
	"github.com/DennisDemir24/hobby-link/internal/repository/mysql"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Publisher 事件总线抽象，生产实现是 pkg.KafkaProducer
type Publisher interface {
	Send(ctx context.Context, key string, value []byte) error
}

// Mailer 邮件发送抽象
type Mailer interface {
	Send(to, subject, htmlBody string) error
}

// Relay 轮询 outbox 表，把待投递事件发到 Kafka，评论事件另发邮件。
// 至少一次投递；失败记 retry 交给下一轮或人工处理。
type Relay struct {
	outbox   *mysql.OutboxRepository
	users    *mysql.UserRepository
	posts    *mysql.PostRepository
	producer Publisher
	mailer   Mailer
	log      *zap.Logger
	batch    int
}

func NewRelay(db *gorm.DB, producer Publisher, mailer Mailer, log *zap.Logger) *Relay {
	return &Relay{
		outbox:   &mysql.OutboxRepository{DB: db},
		users:    &mysql.UserRepository{DB: db},
		posts:    &mysql.PostRepository{DB: db},
		producer: producer,
		mailer:   mailer,
		log:      log,
		batch:    100,
	}
}

// Start 启动轮询，返回停止函数
func (r *Relay) Start(interval time.Duration) (stop func()) {
	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		t := time.NewTicker(interval)
		defer t.Stop()
		for {
			select {
			case <-done:
				return
			case <-t.C:
				r.Drain(context.Background())
			}
		}
	}()
	return func() {
		close(done)
		wg.Wait()
	}
}

// Drain 处理一批待投递事件
func (r *Relay) Drain(ctx context.Context) {
	list, err := r.outbox.List(ctx, r.batch)
	if err != nil {
		r.logWarn("list outbox", err)
		return
	}
	for _, ev := range list {
		if err := r.deliver(ctx, ev); err != nil {
			r.logWarn("deliver outbox event", err, zap.Uint64("id", ev.ID), zap.String("type", ev.EventType))
			if err := r.outbox.RetryUpdate(ctx, ev.ID); err != nil {
				r.logWarn("mark outbox retry", err)
			}
			continue
		}
		if err := r.outbox.SuccessUpdate(ctx, ev.ID); err != nil {
			r.logWarn("mark outbox sent", err)
		}
	}
}

func (r *Relay) deliver(ctx context.Context, ev model.NotifyOutbox) error {
	if r.producer != nil {
		if err := r.producer.Send(ctx, pkg.MakeKeyFromID(ev.EntityID), []byte(ev.Payload)); err != nil {
			return err
		}
	}
	if ev.EventType == model.EventComment && r.mailer != nil {
		return r.sendCommentMail(ev)
	}
	return nil
}

func (r *Relay) sendCommentMail(ev model.NotifyOutbox) error {
	var p CommentPayload
	if err := json.Unmarshal([]byte(ev.Payload), &p); err != nil {
		return err
	}
	post, err := r.posts.FindByID(p.PostID)
	if err != nil {
		// 帖子已删，不再通知
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	// 自己评论自己的帖子不发
	if p.CommenterID == post.AuthorID {
		return nil
	}
	author, err := r.users.FindByID(post.AuthorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	commenter, err := r.users.FindByID(p.CommenterID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	body := pkg.CommentNotifyHTML(post.Title, commenter.Name, p.Preview)
	return r.mailer.Send(author.Email, "New comment on your post", body)
}

func (r *Relay) logWarn(msg string, err error, fields ...zap.Field) {
	if r.log == nil {
		return
	}
	r.log.Warn(msg, append(fields, zap.Error(err))...)
}
