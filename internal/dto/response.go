package dto

// ── 认证模块响应 ──

// TokenResponse 登录成功响应
type TokenResponse struct {
	AccessToken string          `json:"access_token"`
	ExpiresIn   int             `json:"expires_in"` // Access Token 有效期（秒）
	Account     AccountResponse `json:"account"`
}

// RegisterResponse 注册成功响应
type RegisterResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// ── 账号模块响应 ──

// AccountResponse 账号信息响应（脱敏，不含密码哈希）
type AccountResponse struct {
	ID         string `json:"id"`
	Username   string `json:"username"`
	Name       string `json:"name"`
	Role       string `json:"role"`
	RoomNumber string `json:"room_number,omitempty"`
	Email      string `json:"email"`
	CreatedAt  string `json:"created_at"`
}

// ── 投诉模块响应 ──

// OwnerResponse 提交人投影（管理员视图中随投诉返回的最小账号子集）
type OwnerResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Username   string `json:"username"`
	RoomNumber string `json:"room_number,omitempty"`
}

// ComplaintResponse 投诉信息响应
type ComplaintResponse struct {
	ID            string         `json:"id"`
	Subject       string         `json:"subject"`
	Description   string         `json:"description"`
	Category      string         `json:"category"`
	RoomNumber    string         `json:"room_number"`
	Status        string         `json:"status"`
	AdminResponse string         `json:"admin_response"`
	CreatedAt     string         `json:"created_at"`
	UpdatedAt     string         `json:"updated_at"`
	Owner         *OwnerResponse `json:"owner,omitempty"`
}

// StatsResponse 全局投诉统计（管理员）
type StatsResponse struct {
	Total      int64 `json:"total"`
	Pending    int64 `json:"pending"`
	InProgress int64 `json:"inprogress"`
	Resolved   int64 `json:"resolved"`
}

// MyStatsResponse 单个学生的投诉统计
// 与全局统计不同，不单列 inprogress（沿用既有产品口径）
type MyStatsResponse struct {
	Total    int64 `json:"total"`
	Pending  int64 `json:"pending"`
	Resolved int64 `json:"resolved"`
}

// ── 分页请求 ──

// PaginationRequest 通用分页参数
type PaginationRequest struct {
	Page     int `form:"page"      binding:"omitempty,min=1"`
	PageSize int `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// GetPage 获取页码（含默认值）
func (p *PaginationRequest) GetPage() int {
	if p.Page <= 0 {
		return 1
	}
	return p.Page
}

// GetPageSize 获取每页数量（含默认值）
func (p *PaginationRequest) GetPageSize() int {
	if p.PageSize <= 0 {
		return 20
	}
	return p.PageSize
}

// GetOffset 计算偏移量
func (p *PaginationRequest) GetOffset() int {
	return (p.GetPage() - 1) * p.GetPageSize()
}
