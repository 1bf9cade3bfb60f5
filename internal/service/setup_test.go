package service

import (
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"doctrack/backend/config"
	"doctrack/backend/internal/repository"
	"doctrack/backend/pkg/database"
)

// setupTestService 基于临时 SQLite 文件构建完整的 Service 聚合
func setupTestService(t *testing.T) *Service {
	t.Helper()
	return setupTestServiceWithLogger(t, zap.NewNop())
}

func setupTestServiceWithLogger(t *testing.T, logger *zap.Logger) *Service {
	t.Helper()
	cfg := &config.DatabaseConfig{
		Driver:     config.DriverSQLite,
		SQLitePath: filepath.Join(t.TempDir(), "service.db"),
	}
	db, err := database.NewDB(cfg, "error", zap.NewNop())
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	if err := database.EnsureSchema(db, zap.NewNop()); err != nil {
		t.Fatalf("创建表结构失败: %v", err)
	}
	return NewService(repository.NewRepository(db), logger)
}

func int64Ptr(v int64) *int64 { return &v }

func strPtr(v string) *string { return &v }
