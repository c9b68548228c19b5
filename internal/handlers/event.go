package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"hoaboard/internal/db"
	"hoaboard/internal/models"
	"hoaboard/internal/services"
	"hoaboard/internal/utils"

	"github.com/gin-gonic/gin"
)

type EventHandler struct {
	eventService   *services.EventService
	captchaService *services.CaptchaService
}

func NewEventHandler() *EventHandler {
	return &EventHandler{
		eventService:   services.NewEventService(db.DB),
		captchaService: services.NewCaptchaService(),
	}
}

// attachmentInput 提交事件时的附件参数
type attachmentInput struct {
	FileName       string `json:"fileName"`
	FileUrl        string `json:"fileUrl"`
	FileType       string `json:"fileType"`
	IsPiiRedacted  bool   `json:"isPiiRedacted"`
	RedactionAreas string `json:"redactionAreas"`
}

// submitRequest 居民提交事件的请求体
type submitRequest struct {
	Title          string            `json:"title"`
	Description    string            `json:"description"`
	EventDate      string            `json:"eventDate"` // YYYY-MM-DD
	Category       string            `json:"category"`
	SubmitterEmail string            `json:"submitterEmail"`
	CaptchaToken   string            `json:"captchaToken"`
	Attachments    []attachmentInput `json:"attachments"`
}

// List 公开时间线 (GET /events)：仅已审核事件，按事发日期倒序
func (h *EventHandler) List(c *gin.Context) {
	events, err := h.eventService.ListApproved(c.Request.Context())
	if err != nil {
		log.Printf("Error fetching events: %v", err)
		JSONError(c, http.StatusInternalServerError, "Failed to fetch events")
		return
	}

	// 公开接口额外带上渲染后的描述 HTML
	for i := range events {
		events[i].DescriptionHTML = utils.RenderMarkdown(events[i].Description)
	}

	c.JSON(http.StatusOK, events)
}

// Create 匿名提交事件 (POST /events)
// 先过 captcha 人机校验，再做字段校验，通过后进入待审核队列
func (h *EventHandler) Create(c *gin.Context) {
	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		JSONError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.CaptchaToken == "" {
		JSONError(c, http.StatusBadRequest, "CAPTCHA verification required")
		return
	}
	if !h.captchaService.Verify(c.Request.Context(), req.CaptchaToken) {
		JSONError(c, http.StatusBadRequest, "CAPTCHA verification failed")
		return
	}

	eventDate, err := time.Parse("2006-01-02", req.EventDate)
	if err != nil {
		// 前端日期控件给的是 YYYY-MM-DD，但也兼容完整时间戳
		eventDate, err = time.Parse(time.RFC3339, req.EventDate)
		if err != nil {
			JSONError(c, http.StatusBadRequest, "Invalid event date, expected YYYY-MM-DD")
			return
		}
	}

	event := models.Event{
		Title:          req.Title,
		Description:    req.Description,
		EventDate:      eventDate,
		Category:       models.EventCategory(req.Category),
		SubmitterEmail: req.SubmitterEmail,
	}
	for _, att := range req.Attachments {
		event.Attachments = append(event.Attachments, models.Attachment{
			FileName:       att.FileName,
			FileUrl:        att.FileUrl,
			FileType:       models.AttachmentType(att.FileType),
			IsPiiRedacted:  att.IsPiiRedacted,
			RedactionAreas: att.RedactionAreas,
		})
	}

	if err := h.eventService.Submit(c.Request.Context(), &event); err != nil {
		if errors.Is(err, services.ErrValidation) {
			JSONError(c, http.StatusBadRequest, err.Error())
			return
		}
		log.Printf("Error creating event: %v", err)
		JSONError(c, http.StatusInternalServerError, "Failed to create event")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Event submitted and pending review",
		"eventId": event.Pid,
	})
}
