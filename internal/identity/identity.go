package identity

import "context"

// Subject 已认证调用者：外部身份提供方的 subject id 加档案信息
type Subject struct {
	ID       string
	Email    string
	Name     string
	ImageURL string
}

// Provider 身份提供方适配：从会话 token 还原调用者
type Provider interface {
	Verify(ctx context.Context, token string) (*Subject, error)
}
