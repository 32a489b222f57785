package pkg

import (
	"go.uber.org/zap"
)

// InitLogger debug 模式下用开发配置（彩色、可读），否则生产 JSON 输出
func InitLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
