package handler

import (
	"net/http"

	"github.com/DennisDemir24/hobby-link/internal/service"

	"github.com/gin-gonic/gin"
)

type HobbyHandler struct {
	svc *service.HobbyService
}

func NewHobbyHandler(svc *service.HobbyService) *HobbyHandler {
	return &HobbyHandler{svc: svc}
}

// List 爱好列表接口
func (h *HobbyHandler) List(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"list": list})
}
