package service

import (
	"strconv"
	"testing"

	"github.com/DennisDemir24/hobby-link/internal/identity"
	"github.com/DennisDemir24/hobby-link/internal/model"
	"github.com/DennisDemir24/hobby-link/internal/revalidate"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// 内存库只有一条连接可用
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Hobby{},
		&model.Community{},
		&model.CommunityMember{},
		&model.Post{},
		&model.Comment{},
		&model.PostLike{},
		&model.NotifyOutbox{},
	))
	return db
}

func noRev() *revalidate.Invalidator {
	return revalidate.New(nil, nil)
}

func subject(id string) *identity.Subject {
	return &identity.Subject{
		ID:       id,
		Email:    id + "@example.com",
		Name:     "User " + id,
		ImageURL: "https://img.example.com/" + id,
	}
}

func itoa(v uint64) string { return strconv.FormatUint(v, 10) }

func seedHobby(t *testing.T, db *gorm.DB, name string) *model.Hobby {
	t.Helper()
	hobby := &model.Hobby{Name: name, Tags: []string{}}
	require.NoError(t, db.Create(hobby).Error)
	return hobby
}
