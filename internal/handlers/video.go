package handlers

import (
	"errors"
	"log"
	"net/http"

	"hoaboard/internal/db"
	"hoaboard/internal/models"
	"hoaboard/internal/services"
	"hoaboard/internal/utils"

	"github.com/gin-gonic/gin"
)

type VideoHandler struct {
	videoService *services.VideoService
}

func NewVideoHandler() *VideoHandler {
	return &VideoHandler{
		videoService: services.NewVideoService(db.DB),
	}
}

// ListActive 公开接口 (GET /background-videos)：仅启用的视频，
// 只暴露展示层需要的字段
func (h *VideoHandler) ListActive(c *gin.Context) {
	videos, err := h.videoService.ListActive(c.Request.Context())
	if err != nil {
		log.Printf("Error fetching background videos: %v", err)
		// 背景视频加载失败不阻塞前台展示
		c.JSON(http.StatusOK, gin.H{"videos": []gin.H{}})
		return
	}

	out := make([]gin.H, 0, len(videos))
	for _, v := range videos {
		out = append(out, gin.H{
			"id":        v.ID,
			"video_url": v.VideoUrl,
			"opacity":   v.Opacity,
			"order":     v.Order,
		})
	}
	c.JSON(http.StatusOK, gin.H{"videos": out})
}

// ListAll 管理后台 (GET /admin/background-videos)：全部视频含停用的
func (h *VideoHandler) ListAll(c *gin.Context) {
	videos, err := h.videoService.ListAll(c.Request.Context())
	if err != nil {
		log.Printf("Error fetching admin background videos: %v", err)
		JSONError(c, http.StatusInternalServerError, "Failed to fetch videos")
		return
	}
	c.JSON(http.StatusOK, gin.H{"videos": videos})
}

type createVideoRequest struct {
	Title       string  `json:"title"`
	VideoUrl    string  `json:"videoUrl"`
	Description string  `json:"description"`
	Opacity     float64 `json:"opacity"`
	Order       int     `json:"order"`
}

// Create 新增背景视频 (POST /background-videos，管理员)
func (h *VideoHandler) Create(c *gin.Context) {
	var req createVideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		JSONError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	video := models.BackgroundVideo{
		Title:       req.Title,
		VideoUrl:    req.VideoUrl,
		Description: req.Description,
		Opacity:     req.Opacity,
		Order:       req.Order,
	}
	if err := h.videoService.Create(c.Request.Context(), &video); err != nil {
		if errors.Is(err, services.ErrValidation) {
			JSONError(c, http.StatusBadRequest, "Title and video URL required")
			return
		}
		log.Printf("Error creating background video: %v", err)
		JSONError(c, http.StatusInternalServerError, "Failed to create video")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "video": video})
}

type updateVideoRequest struct {
	ID uint `json:"id"`
	services.VideoUpdate
}

// Update 部分更新背景视频 (PATCH /background-videos，管理员)
// 只更新请求体里出现的字段
func (h *VideoHandler) Update(c *gin.Context) {
	var req updateVideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		JSONError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.ID == 0 {
		JSONError(c, http.StatusBadRequest, "Video ID required")
		return
	}

	video, err := h.videoService.Update(c.Request.Context(), req.ID, req.VideoUpdate)
	if err != nil {
		if errors.Is(err, services.ErrVideoNotFound) {
			JSONError(c, http.StatusNotFound, "Video not found")
			return
		}
		log.Printf("Error updating background video: %v", err)
		JSONError(c, http.StatusInternalServerError, "Failed to update video")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "video": video})
}

// Delete 删除背景视频 (DELETE /background-videos?id=，管理员)
func (h *VideoHandler) Delete(c *gin.Context) {
	id := utils.StringToUint(c.Query("id"))
	if id == 0 {
		JSONError(c, http.StatusBadRequest, "Video ID required")
		return
	}

	if err := h.videoService.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, services.ErrVideoNotFound) {
			JSONError(c, http.StatusNotFound, "Video not found")
			return
		}
		log.Printf("Error deleting background video: %v", err)
		JSONError(c, http.StatusInternalServerError, "Failed to delete video")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
