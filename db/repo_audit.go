package db

import (
	"context"
	"fmt"

	"library_api/models"
)

func (r *Repo) LogAdminAction(ctx context.Context, actorID, actorUsername, action string, bookID *string, detail string) (*models.AuditLog, error) {
	entry := &models.AuditLog{
		ActorID:       actorID,
		ActorUsername: actorUsername,
		Action:        action,
		BookID:        bookID,
		Detail:        detail,
	}
	if err := r.DB.WithContext(ctx).Create(entry).Error; err != nil {
		return nil, fmt.Errorf("insert audit log: %w", err)
	}
	return entry, nil
}

func (r *Repo) ListAuditLogs(ctx context.Context, page, size int) ([]models.AuditLog, error) {
	if page <= 0 {
		page = 1
	}
	if size <= 0 || size > 200 {
		size = 50
	}
	var logs []models.AuditLog
	err := r.DB.WithContext(ctx).
		Order("created_at DESC").
		Offset((page - 1) * size).
		Limit(size).
		Find(&logs).Error
	return logs, err
}
