package dto

// ── 账号模块 DTO ──

// AccountListRequest 账号列表查询参数
type AccountListRequest struct {
	PaginationRequest
	Role    string `form:"role"    binding:"omitempty,oneof=student admin"`
	Keyword string `form:"keyword" binding:"omitempty,max=50"`
}

// CreateAccountRequest 管理员创建账号请求
// 可创建学生或其他管理员；房间号仅学生账号使用
type CreateAccountRequest struct {
	Name       string `json:"name"        binding:"required,min=2,max=50"`
	Username   string `json:"username"    binding:"required,min=3,max=50"`
	Email      string `json:"email"       binding:"required,email"`
	Role       string `json:"role"        binding:"required,oneof=student admin"`
	RoomNumber string `json:"room_number" binding:"omitempty,max=20"`
	Password   string `json:"password"    binding:"required,min=8,max=64"`
}
