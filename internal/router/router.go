package router

import (
	"hoaboard/internal/handlers"
	"hoaboard/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine) {
	// Handlers
	eventHandler := handlers.NewEventHandler()
	authHandler := handlers.NewAuthHandler()
	adminHandler := handlers.NewAdminHandler()
	videoHandler := handlers.NewVideoHandler()

	// 公共路由 (Public Routes)
	r.GET("/events", eventHandler.List)                   // 公开时间线
	r.POST("/events", eventHandler.Create)                // 匿名提交（captcha 校验）
	r.GET("/background-videos", videoHandler.ListActive)  // 前台背景视频

	r.GET("/auth/session", authHandler.Session) // 查询登录状态
	r.POST("/auth/login", authHandler.Login)    // 管理员登录
	r.POST("/auth/logout", authHandler.Logout)  // 退出登录

	// 管理员路由 (Admin Routes)
	admin := r.Group("/")
	admin.Use(middleware.AuthRequired())
	{
		admin.GET("/admin/events", adminHandler.ListEvents)     // 审核队列
		admin.PATCH("/admin/events", adminHandler.Moderate)     // 通过/驳回
		admin.DELETE("/admin/events", adminHandler.DeleteEvent) // 删除已发布事件

		admin.GET("/admin/background-videos", videoHandler.ListAll) // 全部背景视频
		admin.POST("/background-videos", videoHandler.Create)       // 新增
		admin.PATCH("/background-videos", videoHandler.Update)      // 部分更新
		admin.DELETE("/background-videos", videoHandler.Delete)     // 删除
	}
}
