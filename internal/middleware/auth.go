package middleware

import (
	"net/http"

	"hoaboard/internal/db"
	"hoaboard/internal/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const CheckAdminKey = "admin"

// LoadAdmin 从 session 中恢复管理员身份并写入请求上下文
func LoadAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		adminID := session.Get("admin_id")

		if adminID != nil {
			var admin models.Admin
			result := db.DB.First(&admin, adminID)
			if result.Error == nil {
				c.Set(CheckAdminKey, &admin)
			}
		}
		c.Next()
	}
}

// AuthRequired 管理员接口的前置校验，未登录一律 401，
// 不泄露目标资源是否存在
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := c.Get(CheckAdminKey); !exists {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "Unauthorized",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentAdmin 取出 LoadAdmin 放入上下文的管理员，未登录返回 nil
func CurrentAdmin(c *gin.Context) *models.Admin {
	if v, exists := c.Get(CheckAdminKey); exists {
		return v.(*models.Admin)
	}
	return nil
}
