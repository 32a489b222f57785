package service

import (
	"errors"

	"github.com/DennisDemir24/hobby-link/internal/apperr"
)

// asAppErr 事务里冒出来的错误统一收口：业务错误原样透出，其余按 Internal
func asAppErr(err error) error {
	var e *apperr.Error
	if errors.As(err, &e) {
		return e
	}
	return apperr.Internal(err)
}
