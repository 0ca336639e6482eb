package dto

// ── 投诉模块 DTO ──

// FileComplaintRequest 提交投诉请求
type FileComplaintRequest struct {
	Subject     string `json:"subject"     binding:"required,max=200"`
	Description string `json:"description" binding:"required"`
	Category    string `json:"category"    binding:"required,oneof=maintenance food cleanliness security wifi other"`
	RoomNumber  string `json:"room_number" binding:"required,max=20"`
}

// UpdateComplaintRequest 管理员更新投诉请求
// AdminResponse 整体替换旧值，不做追加
type UpdateComplaintRequest struct {
	Status        string `json:"status"         binding:"required,oneof=pending inprogress resolved"`
	AdminResponse string `json:"admin_response" binding:"omitempty"`
}

// ComplaintListRequest 管理员投诉列表查询参数
// 三个过滤维度之间为 AND；keyword 在主题/描述/提交人姓名之间为 OR
type ComplaintListRequest struct {
	PaginationRequest
	Status   string `form:"status"   binding:"omitempty,oneof=pending inprogress resolved"`
	Category string `form:"category" binding:"omitempty,oneof=maintenance food cleanliness security wifi other"`
	Keyword  string `form:"keyword"  binding:"omitempty,max=50"`
}
