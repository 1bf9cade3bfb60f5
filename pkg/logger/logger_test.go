package logger

import (
	"testing"

	"go.uber.org/zap/zapcore"

	"doctrack/backend/config"
)

func TestNewLogger_Level(t *testing.T) {
	l, err := NewLogger(&config.LogConfig{Level: "warn", Format: "json"})
	if err != nil {
		t.Fatalf("NewLogger 应成功: %v", err)
	}
	if l.Core().Enabled(zapcore.InfoLevel) {
		t.Error("warn 级别下不应输出 info 日志")
	}
	if !l.Core().Enabled(zapcore.ErrorLevel) {
		t.Error("warn 级别下应输出 error 日志")
	}
}

func TestNewLogger_Console(t *testing.T) {
	if _, err := NewLogger(&config.LogConfig{Level: "debug", Format: "console"}); err != nil {
		t.Fatalf("console 格式应成功: %v", err)
	}
}

func TestNewLogger_InvalidLevel(t *testing.T) {
	if _, err := NewLogger(&config.LogConfig{Level: "loud", Format: "json"}); err == nil {
		t.Fatal("期望非法级别返回错误")
	}
}

func TestNewLogger_NameFromConfig(t *testing.T) {
	l, err := NewLogger(&config.LogConfig{Level: "info", Format: "json", Name: "schemainit"})
	if err != nil {
		t.Fatalf("NewLogger 应成功: %v", err)
	}
	if l.Name() != "schemainit" {
		t.Errorf("期望日志器名称 schemainit，实际=%q", l.Name())
	}

	l, _ = NewLogger(&config.LogConfig{Level: "info", Format: "json"})
	if l.Name() != DefaultName {
		t.Errorf("期望默认名称 %s，实际=%q", DefaultName, l.Name())
	}
}
