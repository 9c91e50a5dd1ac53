// app/bootstrap.go
package app

import (
	"context"
	"errors"
	"log"

	"library_api/auth"
	"library_api/config"
	"library_api/db"
	"library_api/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BootstrapFirstAdmin 启动时确保存在默认管理员账号
func BootstrapFirstAdmin(ctx context.Context, cfg config.Config, repo *db.Repo) {
	if cfg.AdminUsername == "" {
		return
	}
	_, err := repo.FindUserByUsername(ctx, cfg.AdminUsername)
	if err == nil {
		return // 已存在，跳过
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("bootstrap admin lookup failed: %v", err)
		return
	}

	hash, err := auth.HashPassword(cfg.AdminPassword)
	if err != nil {
		log.Printf("bootstrap admin hash failed: %v", err)
		return
	}
	admin := &models.User{
		ID:           uuid.NewString(),
		Username:     cfg.AdminUsername,
		Email:        cfg.AdminUsername + "@local",
		DisplayName:  "Admin",
		PasswordHash: hash,
		IsAdmin:      true,
	}
	if err := repo.CreateUser(ctx, admin); err != nil {
		log.Printf("bootstrap admin create failed: %v", err)
		return
	}
	log.Printf("[BOOTSTRAP] created default admin %q", cfg.AdminUsername)
}
