package router

import (
	"net/http"
	"time"

	"github.com/leochenhaha/ForumAPI0924/internal/config"
	"github.com/leochenhaha/ForumAPI0924/internal/handlers"
	"github.com/leochenhaha/ForumAPI0924/internal/middleware"
	"github.com/leochenhaha/ForumAPI0924/internal/models"
	"github.com/leochenhaha/ForumAPI0924/internal/services"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, cfg *config.Config) {
	tokens := services.NewTokenService(cfg)

	// Handlers
	authHandler := handlers.NewAuthHandler(tokens)
	postHandler := handlers.NewPostHandler()
	voteHandler := handlers.NewVoteHandler()
	reportHandler := handlers.NewReportHandler()
	notificationHandler := handlers.NewNotificationHandler()
	adminHandler := handlers.NewAdminHandler()

	// 所有請求先解析身份，守衛交給各分組
	r.Use(middleware.LoadIdentity(tokens))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "time": time.Now().UTC()})
	})

	api := r.Group("/api")

	// 帳號 (Auth Routes)
	auth := api.Group("/auth")
	{
		auth.POST("/register", authHandler.Register) // 註冊
		auth.POST("/login", authHandler.Login)       // 登入

		me := auth.Group("", middleware.RequireRole(models.RoleUser))
		{
			me.GET("/me", authHandler.Me)                            // 個人資料
			me.PUT("/me", authHandler.UpdateMe)                      // 更新個人資料
			me.POST("/change-password", authHandler.ChangePassword)  // 修改密碼
		}

		adminUsers := auth.Group("", middleware.RequireRole(models.RoleAdmin))
		{
			adminUsers.GET("", authHandler.ListUsers)          // 會員清單
			adminUsers.GET("/:id", authHandler.GetUser)        // 單一會員
			adminUsers.PUT("/:id", authHandler.UpdateUser)     // 改角色/狀態
			adminUsers.DELETE("/:id", authHandler.DeleteUser)  // 刪除會員
		}
	}

	// 文章與回覆 (Post Routes)
	api.GET("/posts", postHandler.List)              // 文章列表
	api.GET("/posts/:id", postHandler.Get)           // 文章詳情
	api.GET("/posts/:id/votes", voteHandler.Summary) // 投票統計，公開

	posts := api.Group("/posts", middleware.RequireRole(models.RoleUser))
	{
		posts.POST("", postHandler.Create)       // 發文
		posts.PUT("/:id", postHandler.Update)    // 編輯文章
		posts.DELETE("/:id", postHandler.Delete) // 刪除文章

		posts.POST("/:id/replies", postHandler.AddReply)           // 回覆
		posts.PUT("/replies/:replyId", postHandler.EditReply)      // 編輯回覆
		posts.DELETE("/replies/:replyId", postHandler.DeleteReply) // 刪除回覆

		posts.POST("/:id/votes", voteHandler.Upsert)   // 投票/改票
		posts.DELETE("/:id/votes", voteHandler.Remove) // 取消投票
	}

	api.GET("/posts/all-replies",
		middleware.RequireRole(models.RoleAdmin), postHandler.AllReplies) // 全站留言

	// 檢舉 (Report Routes)
	api.GET("/reports/reasons", reportHandler.Reasons) // 檢舉理由清單，公開

	reports := api.Group("/reports", middleware.RequireRole(models.RoleUser))
	{
		reports.GET("/mine", reportHandler.Mine) // 我的檢舉紀錄
		reports.POST("", reportHandler.Create)  // 提交檢舉
	}
	api.POST("/reports/review",
		middleware.RequireRole(models.RoleModerator), reportHandler.Review) // 審核檢舉

	// 通知 (Notification Routes)
	notifications := api.Group("/notifications", middleware.RequireRole(models.RoleUser))
	{
		notifications.GET("", notificationHandler.List)                     // 通知列表
		notifications.GET("/unread", notificationHandler.Unread)            // 未讀通知
		notifications.GET("/unread-count", notificationHandler.UnreadCount) // 未讀數量
		notifications.POST("/mark-as-read", notificationHandler.MarkRead)   // 標記已讀
		notifications.DELETE("/:id", notificationHandler.Delete)            // 刪除通知
	}

	// 後台 (Admin Routes)
	admin := api.Group("/admin", middleware.RequireRole(models.RoleAdmin))
	{
		admin.GET("/dashboard", adminHandler.Dashboard) // 營運概況
		admin.GET("/posts", adminHandler.Posts)         // 後台文章列表
		admin.GET("/members", adminHandler.Members)     // 會員列表
		admin.GET("/reports", adminHandler.Reports)     // 檢舉清單
	}
}
