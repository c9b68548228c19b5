package models

import (
	"time"
)

// EventCategory 事件分类
type EventCategory string

const (
	CategoryMaintenance EventCategory = "maintenance" // 维修问题
	CategoryComplaint   EventCategory = "complaint"   // 投诉
	CategoryViolation   EventCategory = "violation"   // 安全/违规
	CategoryNotice      EventCategory = "notice"      // 通知/公告
	CategoryFee         EventCategory = "fee"         // 意外收费
	CategoryOther       EventCategory = "other"       // 其他
)

// Valid 判断分类是否为合法枚举值
func (c EventCategory) Valid() bool {
	switch c {
	case CategoryMaintenance, CategoryComplaint, CategoryViolation,
		CategoryNotice, CategoryFee, CategoryOther:
		return true
	}
	return false
}

// AttachmentType 附件类型
type AttachmentType string

const (
	AttachmentImage    AttachmentType = "image"
	AttachmentDocument AttachmentType = "document"
)

func (t AttachmentType) Valid() bool {
	switch t {
	case AttachmentImage, AttachmentDocument:
		return true
	}
	return false
}

// Event 居民提交的事件记录（待审核 -> 已发布）
type Event struct {
	ID             uint          `gorm:"primaryKey" json:"-"`
	Pid            string        `gorm:"uniqueIndex;size:8;not null" json:"id"` // 对外公开的 ID
	Title          string        `gorm:"not null" json:"title"`
	Description    string        `gorm:"type:text" json:"description"`
	EventDate      time.Time     `gorm:"not null;index" json:"event_date"` // 事发日期，区别于提交时间
	Category       EventCategory `gorm:"size:20;not null" json:"category"`
	SubmitterEmail string        `gorm:"size:200" json:"-"` // 仅管理后台可见，绝不对外输出
	IsApproved     bool          `gorm:"default:false;index" json:"is_approved"`
	ApprovedAt     *time.Time    `json:"approved_at"`
	ApprovedBy     string        `gorm:"size:100" json:"approved_by,omitempty"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`

	Attachments []Attachment `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"attachments"`

	// 非数据库字段，公开接口返回渲染后的 HTML
	DescriptionHTML string `gorm:"-" json:"description_html,omitempty"`
}

// Attachment 事件附件，随事件级联删除
type Attachment struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	EventID        uint           `gorm:"not null;index" json:"-"`
	FileName       string         `gorm:"not null" json:"file_name"`
	FileUrl        string         `gorm:"not null" json:"file_url"`
	FileType       AttachmentType `gorm:"size:20;not null" json:"file_type"`
	IsPiiRedacted  bool           `gorm:"default:false" json:"is_pii_redacted"` // 仅提示性标记，不做强制
	RedactionAreas string         `gorm:"type:text" json:"redaction_areas,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
}
