package services

import (
	"context"
	"errors"
	"fmt"

	"hoaboard/internal/models"
	"hoaboard/internal/utils"

	"gorm.io/gorm"
)

var (
	// ErrInvalidCredentials 登录失败统一返回此错误，
	// 不区分"用户不存在"和"密码错误"，避免用户名枚举
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrAdminExists 管理员用户名已存在
	ErrAdminExists = errors.New("admin already exists")
)

// AdminService 管理员账号与登录校验
type AdminService struct {
	db *gorm.DB
}

func NewAdminService(db *gorm.DB) *AdminService {
	return &AdminService{db: db}
}

// Authenticate 校验用户名密码，成功返回管理员账号。
// 无论用户名不存在还是密码错误，都返回同一个 ErrInvalidCredentials。
func (s *AdminService) Authenticate(ctx context.Context, username, password string) (*models.Admin, error) {
	var admin models.Admin
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&admin).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !utils.CheckPasswordHash(password, admin.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	return &admin, nil
}

// CreateAdmin 创建管理员账号，仅供 cmd/createadmin 提供的离线工具使用
func (s *AdminService) CreateAdmin(ctx context.Context, username, password string) (*models.Admin, error) {
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", ErrValidation)
	}
	if len(password) < 8 {
		return nil, fmt.Errorf("%w: password must be at least 8 characters", ErrValidation)
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Admin{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrAdminExists
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	admin := models.Admin{
		Username:     username,
		PasswordHash: hash,
	}
	if err := s.db.WithContext(ctx).Create(&admin).Error; err != nil {
		return nil, err
	}
	return &admin, nil
}
