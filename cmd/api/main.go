package main

import (
	"time"

	"github.com/DennisDemir24/hobby-link/internal/config"
	"github.com/DennisDemir24/hobby-link/internal/identity"
	"github.com/DennisDemir24/hobby-link/internal/model"
	"github.com/DennisDemir24/hobby-link/internal/notify"
	"github.com/DennisDemir24/hobby-link/internal/pkg"
	"github.com/DennisDemir24/hobby-link/internal/repository/mysql"
	redisrepo "github.com/DennisDemir24/hobby-link/internal/repository/redis"
	"github.com/DennisDemir24/hobby-link/internal/router"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := pkg.InitLogger(cfg.Debug)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	db, err := mysql.InitDB(cfg.MySQL.DSN)
	if err != nil {
		log.Fatal("connect mysql", zap.Error(err))
	}

	// 自动建表（开发阶段 OK）
	if err := db.AutoMigrate(
		&model.User{},
		&model.Hobby{},
		&model.Community{},
		&model.CommunityMember{},
		&model.Post{},
		&model.Comment{},
		&model.PostLike{},
		&model.NotifyOutbox{},
	); err != nil {
		log.Fatal("migrate", zap.Error(err))
	}

	// Redis 不可用时降级运行：页面缓存失效与计数缓存都会被跳过
	var rdb *redis.Client
	if client, err := redisrepo.Init(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB); err != nil {
		log.Warn("redis unavailable, page cache disabled", zap.Error(err))
	} else {
		rdb = client
		defer redisrepo.Close()
	}

	// outbox 投递：Kafka + 评论邮件通知
	producer := pkg.NewKafkaProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic)
	defer producer.Close()
	var mailer notify.Mailer
	if cfg.SMTP.Host != "" {
		mailer = notify.NewSMTPMailer(cfg.SMTP)
	}
	relay := notify.NewRelay(db, producer, mailer, log)
	stopRelay := relay.Start(2 * time.Second)
	defer stopRelay()

	provider := identity.NewJWTProvider(cfg.Auth.Secret)

	r := router.InitRouter(db, rdb, provider, log)
	log.Info("listening", zap.String("addr", cfg.Server.Addr))
	if err := r.Run(cfg.Server.Addr); err != nil {
		log.Fatal("server", zap.Error(err))
	}
}
