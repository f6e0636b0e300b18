package main

import (
	"context"

	accountsvc "kol_market/internal/api/account/service"
	"kol_market/internal/global"
	"kol_market/internal/logger"
)

// InitDefaultData khởi tạo dữ liệu mặc định cho hệ thống.
// Hiện tại chỉ gồm việc seed tài khoản admin đầu tiên từ cấu hình (nếu có).
func InitDefaultData() {
	log := logger.GetAppLogger()

	adminService, err := accountsvc.NewAdminService()
	if err != nil {
		log.Fatalf("Failed to initialize admin service: %v", err)
	}

	cfg := global.MongoDB_ServerConfig
	if err := adminService.SeedInitialAdmin(context.Background(), cfg.AdminEmail, cfg.AdminPassword); err != nil {
		log.Warnf("Failed to seed initial admin account: %v", err)
		return
	}

	log.Info("Default data initialized")
}
