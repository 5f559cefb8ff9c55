package jwt

import (
	"errors"
	"testing"
	"time"

	"github.com/hy-hyun/prototype/config"
)

func newTestManager(ttl time.Duration) *Manager {
	return NewManager(&config.AuthConfig{
		JWTSecret:      "test-secret-0123456789abcdef",
		AccessTokenTTL: ttl,
	})
}

func TestGenerateAndParseToken(t *testing.T) {
	m := newTestManager(time.Hour)

	token, err := m.GenerateAccessToken("user-001", "2024123456")
	if err != nil {
		t.Fatalf("生成 Token 失败: %v", err)
	}

	claims, err := m.ParseToken(token)
	if err != nil {
		t.Fatalf("解析 Token 失败: %v", err)
	}
	if claims.UserID != "user-001" {
		t.Errorf("期望 UserID=user-001，实际=%s", claims.UserID)
	}
	if claims.StudentID != "2024123456" {
		t.Errorf("期望 StudentID=2024123456，实际=%s", claims.StudentID)
	}
	if claims.ID == "" {
		t.Error("JWT ID 不应为空")
	}
}

func TestParseToken_Expired(t *testing.T) {
	m := newTestManager(-time.Minute)

	token, err := m.GenerateAccessToken("user-001", "2024123456")
	if err != nil {
		t.Fatalf("生成 Token 失败: %v", err)
	}

	if _, err := m.ParseToken(token); !errors.Is(err, ErrTokenExpired) {
		t.Errorf("期望 ErrTokenExpired，实际: %v", err)
	}
}

func TestParseToken_WrongSecret(t *testing.T) {
	m1 := newTestManager(time.Hour)
	m2 := NewManager(&config.AuthConfig{
		JWTSecret:      "another-secret-0123456789abcdef",
		AccessTokenTTL: time.Hour,
	})

	token, err := m1.GenerateAccessToken("user-001", "2024123456")
	if err != nil {
		t.Fatalf("生成 Token 失败: %v", err)
	}

	if _, err := m2.ParseToken(token); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("期望 ErrTokenInvalid，实际: %v", err)
	}
}

func TestParseToken_Garbage(t *testing.T) {
	m := newTestManager(time.Hour)
	if _, err := m.ParseToken("not.a.token"); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("期望 ErrTokenInvalid，实际: %v", err)
	}
}
