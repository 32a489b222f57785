package handler

import (
	"net/http"
	"strconv"

	"github.com/DennisDemir24/hobby-link/internal/middleware"
	"github.com/DennisDemir24/hobby-link/internal/service"

	"github.com/gin-gonic/gin"
)

type CommunityHandler struct {
	svc *service.CommunityService
}

type CommunityCreateReq struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	HobbyID     uint64 `json:"hobby_id"`
}

func NewCommunityHandler(svc *service.CommunityService) *CommunityHandler {
	return &CommunityHandler{svc: svc}
}

// Create 建社区接口
func (h *CommunityHandler) Create(c *gin.Context) {
	var req CommunityCreateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	community, stale, err := h.svc.Create(c.Request.Context(), middleware.SubjectFrom(c), req.Name, req.Description, req.HobbyID)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":          community.ID,
		"name":        community.Name,
		"description": community.Description,
		"hobby_id":    community.HobbyID,
		"stale":       stale,
	})
}

// Join 加入社区接口
func (h *CommunityHandler) Join(c *gin.Context) {
	communityID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || communityID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid community id"})
		return
	}

	stale, err := h.svc.Join(c.Request.Context(), middleware.SubjectFrom(c), communityID)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "stale": stale})
}

// List 社区列表接口，可按爱好过滤
func (h *CommunityHandler) List(c *gin.Context) {
	var hobbyID uint64
	if s := c.Query("hobby_id"); s != "" {
		v, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid hobby_id"})
			return
		}
		hobbyID = v
	}

	list, err := h.svc.ListByHobby(c.Request.Context(), hobbyID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"list": list})
}
