package notify

import "time"

// RevalidatePayload 失效事件：哪些视图路径需要重算
type RevalidatePayload struct {
	EventTime string   `json:"event_time"`
	Paths     []string `json:"paths"`
}

// CommentPayload 评论事件：给帖子作者的通知
type CommentPayload struct {
	EventTime   string `json:"event_time"`
	PostID      uint64 `json:"post_id"`
	CommentID   uint64 `json:"comment_id"`
	CommenterID uint64 `json:"commenter_id"`
	Preview     string `json:"preview"`
}

func NewRevalidatePayload(paths []string) RevalidatePayload {
	return RevalidatePayload{
		EventTime: time.Now().UTC().Format(time.RFC3339Nano),
		Paths:     paths,
	}
}

func NewCommentPayload(postID, commentID, commenterID uint64, preview string) CommentPayload {
	return CommentPayload{
		EventTime:   time.Now().UTC().Format(time.RFC3339Nano),
		PostID:      postID,
		CommentID:   commentID,
		CommenterID: commenterID,
		Preview:     preview,
	}
}
