package models

import "time"

// AuditLog 记录管理员目录操作的审计信息
type AuditLog struct {
	ID            string    `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ActorID       string    `gorm:"type:uuid;index" json:"actorId"`
	ActorUsername string    `json:"actorUsername"`
	Action        string    `gorm:"size:40;index;not null" json:"action"` // book.create / book.delete
	BookID        *string   `gorm:"type:uuid" json:"bookId,omitempty"`
	Detail        string    `gorm:"size:255" json:"detail,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

func (AuditLog) TableName() string { return "lib_audit_log" }
