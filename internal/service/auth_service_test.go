package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/gauravatalea/ShiftGenius-AI-New/config"
	"github.com/gauravatalea/ShiftGenius-AI-New/internal/dto"
	"github.com/gauravatalea/ShiftGenius-AI-New/pkg/jwt"
)

// ── 测试辅助 ──

func setupTestAuthService(t *testing.T, enabled bool) (AuthService, *jwt.Manager) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret-pass"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("生成密码哈希失败: %v", err)
	}
	cfg := &config.AuthConfig{
		Enabled:        enabled,
		JWTSecret:      "test-secret-key-for-unit-testing-2026",
		AccessTokenTTL: 15 * time.Minute,
		Username:       "supervisor",
		PasswordHash:   string(hash),
	}
	mgr := jwt.NewManager(cfg)
	return NewAuthService(cfg, mgr, zap.NewNop()), mgr
}

// ── Login 测试 ──

func TestLogin_Success(t *testing.T) {
	svc, mgr := setupTestAuthService(t, true)

	result, err := svc.Login(context.Background(), &dto.TokenRequest{Username: "supervisor", Password: "s3cret-pass"})
	if err != nil {
		t.Fatalf("Login 应成功，但返回错误: %v", err)
	}
	if result.AccessToken == "" || result.TokenType != "Bearer" {
		t.Errorf("Token 响应错误: %+v", result)
	}
	if result.ExpiresIn != 900 {
		t.Errorf("期望 ExpiresIn=900，实际=%d", result.ExpiresIn)
	}

	claims, err := mgr.ParseToken(result.AccessToken)
	if err != nil {
		t.Fatalf("签发的 Token 应可解析: %v", err)
	}
	if claims.Username != "supervisor" || claims.Role != RoleSupervisor {
		t.Errorf("Claims 错误: %+v", claims)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, _ := setupTestAuthService(t, true)

	_, err := svc.Login(context.Background(), &dto.TokenRequest{Username: "supervisor", Password: "wrong"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("期望 ErrInvalidCredentials，实际: %v", err)
	}
}

func TestLogin_WrongUsername(t *testing.T) {
	svc, _ := setupTestAuthService(t, true)

	_, err := svc.Login(context.Background(), &dto.TokenRequest{Username: "admin", Password: "s3cret-pass"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("期望 ErrInvalidCredentials，实际: %v", err)
	}
}

func TestLogin_Disabled(t *testing.T) {
	svc, _ := setupTestAuthService(t, false)

	_, err := svc.Login(context.Background(), &dto.TokenRequest{Username: "supervisor", Password: "s3cret-pass"})
	if !errors.Is(err, ErrAuthDisabled) {
		t.Errorf("期望 ErrAuthDisabled，实际: %v", err)
	}
}
