// controllers/srv.go
package controllers

import (
	"log"
	"net/http"

	"library_api/app"
	"library_api/config"
	"library_api/db"

	"github.com/gin-gonic/gin"
)

type Srv struct {
	Repo *db.Repo
	Cfg  config.Config
}

func GetSrv(a *app.App) *Srv {
	return &Srv{
		Repo: db.NewRepo(a.DB),
		Cfg:  a.Config,
	}
}

// --- helpers ---

func currentUserID(c *gin.Context) (string, bool) {
	v, ok := c.Get("userID")
	if !ok {
		return "", false
	}
	uid, _ := v.(string)
	return uid, uid != ""
}

func currentUsername(c *gin.Context) string {
	v, _ := c.Get("username")
	s, _ := v.(string)
	return s
}

func isAdmin(c *gin.Context) bool {
	v, _ := c.Get("isAdmin")
	b, _ := v.(bool)
	return b
}

// 未被领域哨兵错误覆盖的存储错误：记日志，返回 500，进程继续服务
func storeError(c *gin.Context, err error) {
	log.Printf("store error: %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	c.JSON(http.StatusInternalServerError, app.H{"error": "internal error"})
}
