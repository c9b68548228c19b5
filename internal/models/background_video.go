package models

import (
	"time"
)

// BackgroundVideo 前台背景轮播视频，管理员维护
type BackgroundVideo struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	VideoUrl    string    `gorm:"not null" json:"video_url"`
	Description string    `gorm:"size:500" json:"description"`
	Opacity     float64   `gorm:"default:0.15" json:"opacity"` // 0.0 - 1.0
	Order       int       `gorm:"default:0;index" json:"order"`
	IsActive    bool      `gorm:"default:true" json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
