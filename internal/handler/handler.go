package handler

import (
	"errors"

	"github.com/DennisDemir24/hobby-link/internal/apperr"

	"github.com/gin-gonic/gin"
)

// fail 按错误分类回状态码；Internal 细节不外泄
func fail(c *gin.Context, err error) {
	msg := "internal error"
	var e *apperr.Error
	if errors.As(err, &e) && e.Code != apperr.CodeInternal {
		msg = e.Msg
	}
	c.JSON(apperr.HTTPStatus(err), gin.H{"msg": msg})
}
