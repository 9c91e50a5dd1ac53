package controllers

import (
	"net/http"
	"strconv"

	"library_api/app"

	"github.com/gin-gonic/gin"
)

type AuditController struct{ *Srv }

func NewAuditController(s *Srv) *AuditController { return &AuditController{Srv: s} }

// GET /admin/audit?page=&size=（管理员）
func (ac *AuditController) ListAuditLogs(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "50"))

	logs, err := ac.Repo.ListAuditLogs(c.Request.Context(), page, size)
	if err != nil {
		storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"logs": logs})
}
