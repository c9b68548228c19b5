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

// ErrVideoNotFound 背景视频不存在
var ErrVideoNotFound = errors.New("background video not found")

const activeVideosCacheKey = "videos:active"

// VideoUpdate 部分更新命令：仅应用非 nil 字段，
// 不从"字段缺失"推断任何意图
type VideoUpdate struct {
	Title       *string  `json:"title"`
	VideoUrl    *string  `json:"videoUrl"`
	Description *string  `json:"description"`
	Opacity     *float64 `json:"opacity"`
	Order       *int     `json:"order"`
	IsActive    *bool    `json:"isActive"`
}

// VideoService 背景轮播视频管理
type VideoService struct {
	db *gorm.DB
}

func NewVideoService(db *gorm.DB) *VideoService {
	return &VideoService{db: db}
}

// Create 新建背景视频，opacity/order 缺省为 0.15/0，默认启用
func (s *VideoService) Create(ctx context.Context, video *models.BackgroundVideo) error {
	if video.Title == "" || video.VideoUrl == "" {
		return fmt.Errorf("%w: title and video url are required", ErrValidation)
	}
	if video.Opacity == 0 {
		video.Opacity = 0.15
	}
	video.IsActive = true

	if err := s.db.WithContext(ctx).Create(video).Error; err != nil {
		return err
	}
	utils.GetCache().Delete(activeVideosCacheKey)
	return nil
}

// ListAll 管理后台：全部视频，按 order 升序
func (s *VideoService) ListAll(ctx context.Context) ([]models.BackgroundVideo, error) {
	videos := make([]models.BackgroundVideo, 0)
	err := s.db.WithContext(ctx).Order(`"order" ASC`).Find(&videos).Error
	if err != nil {
		return nil, err
	}
	return videos, nil
}

// ListActive 公开展示：仅启用的视频，按 order 升序，短 TTL 缓存
func (s *VideoService) ListActive(ctx context.Context) ([]models.BackgroundVideo, error) {
	if cached := utils.GetCache().Get(activeVideosCacheKey); cached != nil {
		if videos, ok := cached.([]models.BackgroundVideo); ok {
			return videos, nil
		}
	}

	videos := make([]models.BackgroundVideo, 0)
	err := s.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order(`"order" ASC`).
		Find(&videos).Error
	if err != nil {
		return nil, err
	}

	utils.GetCache().Set(activeVideosCacheKey, videos, time.Minute)
	return videos, nil
}

// Update 按部分更新命令更新视频，只写入调用方显式给出的字段
func (s *VideoService) Update(ctx context.Context, id uint, upd VideoUpdate) (*models.BackgroundVideo, error) {
	updates := map[string]interface{}{}
	if upd.Title != nil {
		updates["title"] = *upd.Title
	}
	if upd.VideoUrl != nil {
		updates["video_url"] = *upd.VideoUrl
	}
	if upd.Description != nil {
		updates["description"] = *upd.Description
	}
	if upd.Opacity != nil {
		updates["opacity"] = *upd.Opacity
	}
	if upd.Order != nil {
		updates["order"] = *upd.Order
	}
	if upd.IsActive != nil {
		updates["is_active"] = *upd.IsActive
	}

	if len(updates) > 0 {
		res := s.db.WithContext(ctx).
			Model(&models.BackgroundVideo{}).
			Where("id = ?", id).
			Updates(updates)
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected == 0 {
			return nil, ErrVideoNotFound
		}
		utils.GetCache().Delete(activeVideosCacheKey)
	}

	var video models.BackgroundVideo
	if err := s.db.WithContext(ctx).First(&video, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVideoNotFound
		}
		return nil, err
	}
	return &video, nil
}

// Delete 删除背景视频
func (s *VideoService) Delete(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.BackgroundVideo{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrVideoNotFound
	}
	utils.GetCache().Delete(activeVideosCacheKey)
	return nil
}
