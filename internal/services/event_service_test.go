package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"hoaboard/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB 打开内存 SQLite 并迁移全部模型
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	if err := db.AutoMigrate(&models.Admin{}, &models.Event{}, &models.Attachment{}, &models.BackgroundVideo{}); err != nil {
		t.Fatalf("failed to migrate models: %v", err)
	}
	return db
}

func newTestEvent(title string, eventDate time.Time) *models.Event {
	return &models.Event{
		Title:       title,
		Description: "水管爆裂，地下室进水",
		EventDate:   eventDate,
		Category:    models.CategoryMaintenance,
	}
}

func TestSubmitCreatesPendingEvent(t *testing.T) {
	db := setupTestDB(t)
	svc := NewEventService(db)
	ctx := context.Background()

	event := newTestEvent("Leak", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	event.SubmitterEmail = "resident@example.com"
	event.Attachments = []models.Attachment{
		{FileName: "photo.jpg", FileUrl: "https://files.example.com/photo.jpg", FileType: models.AttachmentImage},
	}

	if err := svc.Submit(ctx, event); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if event.Pid == "" {
		t.Error("expected a public id to be assigned")
	}
	if event.IsApproved {
		t.Error("new submission must not be approved")
	}

	// 公开列表看不到待审核事件
	public, err := svc.ListApproved(ctx)
	if err != nil {
		t.Fatalf("ListApproved failed: %v", err)
	}
	if len(public) != 0 {
		t.Errorf("pending event leaked to public list: %d events", len(public))
	}

	// 管理后台能看到
	all, err := svc.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll failed: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("expected 1 event in admin list, got %d", len(all))
	}
	if len(all[0].Attachments) != 1 {
		t.Errorf("expected attachment to be persisted with event, got %d", len(all[0].Attachments))
	}
}

func TestSubmitValidation(t *testing.T) {
	db := setupTestDB(t)
	svc := NewEventService(db)
	ctx := context.Background()

	cases := []struct {
		name  string
		event *models.Event
	}{
		{"missing title", &models.Event{Description: "d", EventDate: time.Now(), Category: models.CategoryComplaint}},
		{"missing description", &models.Event{Title: "t", EventDate: time.Now(), Category: models.CategoryComplaint}},
		{"missing event date", &models.Event{Title: "t", Description: "d", Category: models.CategoryComplaint}},
		{"bad category", &models.Event{Title: "t", Description: "d", EventDate: time.Now(), Category: "gossip"}},
		{"bad attachment type", &models.Event{
			Title: "t", Description: "d", EventDate: time.Now(), Category: models.CategoryNotice,
			Attachments: []models.Attachment{{FileName: "a", FileUrl: "u", FileType: "video"}},
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := svc.Submit(ctx, tc.event)
			if !errors.Is(err, ErrValidation) {
				t.Errorf("expected ErrValidation, got %v", err)
			}
		})
	}

	// 校验失败不应留下任何记录
	var count int64
	db.Model(&models.Event{}).Count(&count)
	if count != 0 {
		t.Errorf("expected no events persisted, got %d", count)
	}
}

func TestApprovePublishesEvent(t *testing.T) {
	db := setupTestDB(t)
	svc := NewEventService(db)
	ctx := context.Background()

	event := newTestEvent("Leak", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	if err := svc.Submit(ctx, event); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	approved, err := svc.Approve(ctx, event.Pid, "alice")
	if err != nil {
		t.Fatalf("Approve failed: %v", err)
	}
	if !approved.IsApproved {
		t.Error("event not marked approved")
	}
	if approved.ApprovedBy != "alice" {
		t.Errorf("approved_by = %q, want alice", approved.ApprovedBy)
	}
	if approved.ApprovedAt == nil || approved.ApprovedAt.Before(approved.CreatedAt) {
		t.Errorf("approved_at must be set and >= created_at, got %v", approved.ApprovedAt)
	}

	// 审核通过后立即可见
	public, err := svc.ListApproved(ctx)
	if err != nil {
		t.Fatalf("ListApproved failed: %v", err)
	}
	if len(public) != 1 || public[0].Pid != event.Pid {
		t.Fatalf("approved event missing from public list: %+v", public)
	}
}

func TestApproveIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	svc := NewEventService(db)
	ctx := context.Background()

	event := newTestEvent("Noise", time.Now())
	if err := svc.Submit(ctx, event); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	first, err := svc.Approve(ctx, event.Pid, "alice")
	if err != nil {
		t.Fatalf("first Approve failed: %v", err)
	}

	// 重复审核允许，重新盖章
	second, err := svc.Approve(ctx, event.Pid, "bob")
	if err != nil {
		t.Fatalf("re-Approve failed: %v", err)
	}
	if !second.IsApproved {
		t.Error("event lost approved state on re-approve")
	}
	if second.ApprovedBy != "bob" {
		t.Errorf("approved_by = %q, want bob (last writer wins)", second.ApprovedBy)
	}
	if second.ApprovedAt.Before(*first.ApprovedAt) {
		t.Error("re-approve must not move approved_at backwards")
	}
}

func TestApproveUnknownEvent(t *testing.T) {
	db := setupTestDB(t)
	svc := NewEventService(db)

	_, err := svc.Approve(context.Background(), "nope1234", "alice")
	if !errors.Is(err, ErrEventNotFound) {
		t.Errorf("expected ErrEventNotFound, got %v", err)
	}
}

func TestDeleteRemovesEventAndAttachments(t *testing.T) {
	db := setupTestDB(t)
	svc := NewEventService(db)
	ctx := context.Background()

	event := newTestEvent("Fee", time.Now())
	event.Attachments = []models.Attachment{
		{FileName: "bill.pdf", FileUrl: "https://files.example.com/bill.pdf", FileType: models.AttachmentDocument},
		{FileName: "photo.jpg", FileUrl: "https://files.example.com/photo.jpg", FileType: models.AttachmentImage},
	}
	if err := svc.Submit(ctx, event); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	if err := svc.Delete(ctx, event.Pid); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	var eventCount, attCount int64
	db.Model(&models.Event{}).Count(&eventCount)
	db.Model(&models.Attachment{}).Count(&attCount)
	if eventCount != 0 || attCount != 0 {
		t.Errorf("expected full cleanup, got %d events and %d attachments", eventCount, attCount)
	}

	// 删除后的任何操作都是 NotFound
	if err := svc.Delete(ctx, event.Pid); !errors.Is(err, ErrEventNotFound) {
		t.Errorf("second Delete: expected ErrEventNotFound, got %v", err)
	}
	if _, err := svc.Approve(ctx, event.Pid, "alice"); !errors.Is(err, ErrEventNotFound) {
		t.Errorf("Approve after Delete: expected ErrEventNotFound, got %v", err)
	}
}

func TestDeleteApprovedEvent(t *testing.T) {
	db := setupTestDB(t)
	svc := NewEventService(db)
	ctx := context.Background()

	event := newTestEvent("Violation", time.Now())
	if err := svc.Submit(ctx, event); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if _, err := svc.Approve(ctx, event.Pid, "alice"); err != nil {
		t.Fatalf("Approve failed: %v", err)
	}

	// 已发布事件同样可以删除
	if err := svc.Delete(ctx, event.Pid); err != nil {
		t.Fatalf("Delete of approved event failed: %v", err)
	}

	public, err := svc.ListApproved(ctx)
	if err != nil {
		t.Fatalf("ListApproved failed: %v", err)
	}
	if len(public) != 0 {
		t.Errorf("deleted event still visible: %+v", public)
	}
}

func TestPublicListOrdering(t *testing.T) {
	db := setupTestDB(t)
	svc := NewEventService(db)
	ctx := context.Background()

	// 注意排序键是事发日期，不是提交时间
	older := newTestEvent("older incident", time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
	newer := newTestEvent("newer incident", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))

	for _, e := range []*models.Event{newer, older} {
		if err := svc.Submit(ctx, e); err != nil {
			t.Fatalf("Submit failed: %v", err)
		}
		if _, err := svc.Approve(ctx, e.Pid, "alice"); err != nil {
			t.Fatalf("Approve failed: %v", err)
		}
	}

	public, err := svc.ListApproved(ctx)
	if err != nil {
		t.Fatalf("ListApproved failed: %v", err)
	}
	if len(public) != 2 {
		t.Fatalf("expected 2 events, got %d", len(public))
	}
	if public[0].Title != "newer incident" || public[1].Title != "older incident" {
		t.Errorf("wrong order: got [%s, %s]", public[0].Title, public[1].Title)
	}
}
