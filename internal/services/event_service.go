package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hoaboard/internal/models"
	"hoaboard/internal/utils"

	"gorm.io/gorm"
)

var (
	// ErrValidation 提交内容不合法
	ErrValidation = errors.New("validation failed")
	// ErrEventNotFound 事件不存在（或已被另一次操作删除）
	ErrEventNotFound = errors.New("event not found")
)

// EventService 事件审核流程：
// 匿名提交进入待审核队列，管理员审核通过后公开展示，驳回则连同附件一并删除。
type EventService struct {
	db *gorm.DB
}

func NewEventService(db *gorm.DB) *EventService {
	return &EventService{db: db}
}

// validate 校验提交内容，失败返回包装过的 ErrValidation
func (s *EventService) validate(e *models.Event) error {
	if e.Title == "" {
		return fmt.Errorf("%w: title is required", ErrValidation)
	}
	if e.Description == "" {
		return fmt.Errorf("%w: description is required", ErrValidation)
	}
	if e.EventDate.IsZero() {
		return fmt.Errorf("%w: event date is required", ErrValidation)
	}
	if !e.Category.Valid() {
		return fmt.Errorf("%w: unknown category %q", ErrValidation, e.Category)
	}
	for _, att := range e.Attachments {
		if att.FileName == "" || att.FileUrl == "" {
			return fmt.Errorf("%w: attachment file name and url are required", ErrValidation)
		}
		if !att.FileType.Valid() {
			return fmt.Errorf("%w: unknown attachment type %q", ErrValidation, att.FileType)
		}
	}
	return nil
}

// Submit 创建一条待审核事件，附件与事件在同一事务内写入（全部成功或全部失败）。
// 调用方需先通过 captcha 校验。
func (s *EventService) Submit(ctx context.Context, event *models.Event) error {
	if err := s.validate(event); err != nil {
		return err
	}

	event.Pid = utils.RandStringBytesMaskImpr(8)
	event.IsApproved = false
	event.ApprovedAt = nil
	event.ApprovedBy = ""

	// gorm 的关联写入本身在单个事务里，这里仍显式开事务，
	// 保证后续在同一事务里追加逻辑时原子性不被破坏
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(event).Error
	})
}

// ListApproved 公开时间线：仅已审核事件，按事发日期倒序（同日按提交时间倒序）
func (s *EventService) ListApproved(ctx context.Context) ([]models.Event, error) {
	events := make([]models.Event, 0)
	err := s.db.WithContext(ctx).
		Preload("Attachments").
		Where("is_approved = ?", true).
		Order("event_date DESC").
		Order("created_at DESC").
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}

// ListAll 管理后台视图：全部事件（含待审核），按提交时间倒序
func (s *EventService) ListAll(ctx context.Context) ([]models.Event, error) {
	events := make([]models.Event, 0)
	err := s.db.WithContext(ctx).
		Preload("Attachments").
		Order("created_at DESC").
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}

// Get 按公开 ID 查询单个事件
func (s *EventService) Get(ctx context.Context, pid string) (*models.Event, error) {
	var event models.Event
	err := s.db.WithContext(ctx).
		Preload("Attachments").
		Where("pid = ?", pid).
		First(&event).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrEventNotFound
	}
	if err != nil {
		return nil, err
	}
	return &event, nil
}

// Approve 审核通过。重复审核允许，approved_at/approved_by 会被重新写入。
// 两个并发 Approve 都会成功，时间戳以后写入者为准。
func (s *EventService) Approve(ctx context.Context, pid string, adminUsername string) (*models.Event, error) {
	now := time.Now()
	res := s.db.WithContext(ctx).
		Model(&models.Event{}).
		Where("pid = ?", pid).
		Updates(map[string]interface{}{
			"is_approved": true,
			"approved_at": now,
			"approved_by": adminUsername,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrEventNotFound
	}

	return s.Get(ctx, pid)
}

// Delete 永久删除事件及其全部附件（驳回与管理员删除共用此路径，无软删除、无审计记录）。
// 两个并发 Delete 竞争同一事件时，后到者拿到 ErrEventNotFound。
func (s *EventService) Delete(ctx context.Context, pid string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var event models.Event
		if err := tx.Where("pid = ?", pid).First(&event).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEventNotFound
			}
			return err
		}

		if err := tx.Where("event_id = ?", event.ID).Delete(&models.Attachment{}).Error; err != nil {
			return err
		}

		res := tx.Delete(&models.Event{}, event.ID)
		if res.Error != nil {
			return res.Error
		}
		// First 和 Delete 之间事件可能已被并发删除
		if res.RowsAffected == 0 {
			return ErrEventNotFound
		}
		return nil
	})
}
