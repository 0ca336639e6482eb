package dto

// ── 认证模块 DTO ──

// LoginRequest 登录请求
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RegisterRequest 学生自助注册请求
// 两次密码不一致属于边界校验错误，在 Service 层拦截
type RegisterRequest struct {
	Name            string `json:"name"             binding:"required,min=2,max=50"`
	Username        string `json:"username"         binding:"required,min=3,max=50"`
	Email           string `json:"email"            binding:"required,email"`
	RoomNumber      string `json:"room_number"      binding:"required,max=20"`
	Password        string `json:"password"         binding:"required,min=8,max=64"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
}
