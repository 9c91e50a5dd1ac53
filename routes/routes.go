package routes

import (
	"time"

	"library_api/app"
	"library_api/controllers"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, a *app.App) {
	// 控制器与依赖
	s := controllers.GetSrv(a)
	ac := controllers.NewAuthController(s)
	bookCtl := controllers.NewBookController(s)
	loanCtl := controllers.NewLoanController(s)
	uc := controllers.NewUserController(s)
	auditCtl := controllers.NewAuditController(s)

	// 复用的中间件
	authMW := app.AuthRequired(s.Repo, a.Config)
	adminMW := app.AdminOnly()
	seenMW := app.TouchLastSeen(s.Repo, a.RDB, 5*time.Minute)

	// ------------------------------
	// 认证（公开）
	// ------------------------------
	authGrp := r.Group("/auth")
	{
		authGrp.POST("/signup", ac.Signup)
		authGrp.POST("/login", ac.Login)
	}

	// ------------------------------
	// 当前用户
	// ------------------------------
	me := r.Group("/users/me", authMW, seenMW)
	{
		me.GET("", ac.Me)
		me.GET("/loans", ac.MyLoans)
	}

	// ------------------------------
	// 目录：浏览公开，增删仅管理员
	// ------------------------------
	r.GET("/books", bookCtl.ListBooks)

	booksAdmin := r.Group("/books", authMW, adminMW)
	{
		booksAdmin.POST("", bookCtl.CreateBook)
		booksAdmin.DELETE("/:id", bookCtl.DeleteBook)
	}

	// ------------------------------
	// 借还
	// ------------------------------
	loans := r.Group("/loans", authMW, seenMW)
	{
		loans.POST("", loanCtl.Borrow)
		loans.POST("/:id/return", loanCtl.Return)
	}

	// ------------------------------
	// 管理 API
	// ------------------------------
	api := r.Group("/api", authMW, adminMW)
	{
		api.GET("/users", uc.ListUsers)   // ?q=&page=&size=
		api.GET("/users/:id", uc.GetUser) // 精确查单个
		api.GET("/books", bookCtl.ListBooksAdmin)
	}

	admin := r.Group("/admin", authMW, adminMW)
	{
		admin.GET("/audit", auditCtl.ListAuditLogs)
	}
}
