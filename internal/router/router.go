package router

import (
	"github.com/DennisDemir24/hobby-link/internal/handler"
	"github.com/DennisDemir24/hobby-link/internal/identity"
	"github.com/DennisDemir24/hobby-link/internal/middleware"
	redisrepo "github.com/DennisDemir24/hobby-link/internal/repository/redis"
	"github.com/DennisDemir24/hobby-link/internal/revalidate"
	"github.com/DennisDemir24/hobby-link/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func InitRouter(db *gorm.DB, rdb *redis.Client, provider identity.Provider, log *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestLogger(log), gin.Recovery())

	rev := revalidate.New(rdb, log)
	likeCache := redisrepo.NewLikeCacheRepository(rdb)

	hobby := handler.NewHobbyHandler(service.NewHobbyService(db))
	community := handler.NewCommunityHandler(service.NewCommunityService(db, rev))
	post := handler.NewPostHandler(service.NewPostService(db, rev, likeCache))
	comment := handler.NewCommentHandler(service.NewCommentService(db, rev))

	auth := middleware.AuthMiddleware(provider)

	// 爱好相关接口（只读）
	hobbyGroup := r.Group("/api/hobby")
	{
		hobbyGroup.GET("/list", hobby.List)
	}

	// 社区相关接口
	communityGroup := r.Group("/api/community")
	{
		communityGroup.GET("/list", community.List)
		communityGroup.POST("/create", auth, community.Create)
		communityGroup.POST("/:id/join", auth, community.Join)
	}

	// 帖子相关接口
	postGroup := r.Group("/api/post")
	{
		postGroup.GET("/list/:id", post.ListByCommunity)
		postGroup.GET("/:id", post.Get)
		postGroup.POST("/create", auth, post.Create)
		postGroup.PUT("/:id", auth, post.Edit)
		postGroup.DELETE("/:id", auth, post.Delete)
		postGroup.POST("/:id/like", auth, post.Like)
	}

	// 评论相关接口
	commentGroup := r.Group("/api/comment")
	commentGroup.Use(auth)
	{
		commentGroup.POST("/create", comment.Create)
		commentGroup.PUT("/:id", comment.Edit)
		commentGroup.DELETE("/:id", comment.Delete)
	}

	return r
}
