package handlers

import (
	"errors"
	"log"
	"net/http"

	"hoaboard/internal/db"
	"hoaboard/internal/middleware"
	"hoaboard/internal/models"
	"hoaboard/internal/services"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	eventService *services.EventService
}

func NewAdminHandler() *AdminHandler {
	return &AdminHandler{
		eventService: services.NewEventService(db.DB),
	}
}

// ListEvents 管理后台事件列表 (GET /admin/events)
// 按审核状态拆分返回，pending/approved 各自按提交时间倒序
func (h *AdminHandler) ListEvents(c *gin.Context) {
	events, err := h.eventService.ListAll(c.Request.Context())
	if err != nil {
		log.Printf("Error fetching admin events: %v", err)
		JSONError(c, http.StatusInternalServerError, "Failed to fetch events")
		return
	}

	pending := make([]models.Event, 0)
	approved := make([]models.Event, 0)
	for _, e := range events {
		if e.IsApproved {
			approved = append(approved, e)
		} else {
			pending = append(pending, e)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"pending":  pending,
		"approved": approved,
		"all":      events,
	})
}

type moderateRequest struct {
	EventID string `json:"eventId"`
	Action  string `json:"action"` // approve | reject
}

// Moderate 审核事件 (PATCH /admin/events)
// approve: 发布到公开时间线；reject: 永久删除事件及附件
func (h *AdminHandler) Moderate(c *gin.Context) {
	var req moderateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		JSONError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.EventID == "" || req.Action == "" {
		JSONError(c, http.StatusBadRequest, "Missing eventId or action")
		return
	}

	admin := middleware.CurrentAdmin(c)

	switch req.Action {
	case "approve":
		event, err := h.eventService.Approve(c.Request.Context(), req.EventID, admin.Username)
		if err != nil {
			if errors.Is(err, services.ErrEventNotFound) {
				JSONError(c, http.StatusNotFound, "Event not found")
				return
			}
			log.Printf("Error approving event: %v", err)
			JSONError(c, http.StatusInternalServerError, "Failed to update event")
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "event": event})

	case "reject":
		if err := h.eventService.Delete(c.Request.Context(), req.EventID); err != nil {
			if errors.Is(err, services.ErrEventNotFound) {
				JSONError(c, http.StatusNotFound, "Event not found")
				return
			}
			log.Printf("Error rejecting event: %v", err)
			JSONError(c, http.StatusInternalServerError, "Failed to update event")
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Event rejected and deleted"})

	default:
		JSONError(c, http.StatusBadRequest, "Invalid action")
	}
}

// DeleteEvent 删除已发布事件 (DELETE /admin/events?id=<pid>)
// 与驳回走同一条删除路径，待审核事件同样可删
func (h *AdminHandler) DeleteEvent(c *gin.Context) {
	pid := c.Query("id")
	if pid == "" {
		JSONError(c, http.StatusBadRequest, "Missing event ID")
		return
	}

	if err := h.eventService.Delete(c.Request.Context(), pid); err != nil {
		if errors.Is(err, services.ErrEventNotFound) {
			JSONError(c, http.StatusNotFound, "Event not found")
			return
		}
		log.Printf("Error deleting event: %v", err)
		JSONError(c, http.StatusInternalServerError, "Failed to delete event")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
