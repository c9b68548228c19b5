package handlers

import (
	"errors"
	"log"
	"net/http"

	"hoaboard/internal/db"
	"hoaboard/internal/middleware"
	"hoaboard/internal/services"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	adminService *services.AdminService
}

func NewAuthHandler() *AuthHandler {
	return &AuthHandler{
		adminService: services.NewAdminService(db.DB),
	}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login 管理员登录 (POST /auth/login)
// 登录失败统一返回 401 "Invalid credentials"，不泄露失败原因
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		JSONError(c, http.StatusBadRequest, "Missing credentials")
		return
	}
	if req.Username == "" || req.Password == "" {
		JSONError(c, http.StatusBadRequest, "Missing credentials")
		return
	}

	admin, err := h.adminService.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			JSONError(c, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		log.Printf("Login failed: %v", err)
		JSONError(c, http.StatusInternalServerError, "Login failed")
		return
	}

	session := sessions.Default(c)
	session.Set("admin_id", admin.ID)
	session.Set("username", admin.Username)
	session.Save()

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"username": admin.Username,
	})
}

// Logout 退出登录 (POST /auth/logout)，重复退出不报错
func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Save()

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Session 查询当前登录状态 (GET /auth/session)，无任何副作用
func (h *AuthHandler) Session(c *gin.Context) {
	admin := middleware.CurrentAdmin(c)
	if admin == nil {
		c.JSON(http.StatusOK, gin.H{"isLoggedIn": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"isLoggedIn": true,
		"username":   admin.Username,
		"userId":     admin.ID,
	})
}
