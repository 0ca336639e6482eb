package model

// ── 角色常量（封闭集合，All 之外的取值一律拒绝）──

const (
	RoleStudent = "student"
	RoleAdmin   = "admin"
)

// ValidRole 检查角色是否在封闭集合内
func ValidRole(role string) bool {
	return role == RoleStudent || role == RoleAdmin
}

// Account 账号表 — 对应 accounts
// 角色创建后不可变更（未提供角色变更操作）
type Account struct {
	AccountID    string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"account_id"`
	Username     string  `gorm:"type:varchar(50);not null;uniqueIndex"          json:"username"`
	PasswordHash string  `gorm:"type:varchar(255);not null"                     json:"-"`
	Name         string  `gorm:"type:varchar(100);not null"                     json:"name"`
	Role         string  `gorm:"type:varchar(20);not null;default:'student'"    json:"role"`
	RoomNumber   *string `gorm:"type:varchar(20)"                               json:"room_number,omitempty"`
	Email        string  `gorm:"type:varchar(255);not null"                     json:"email"`
	BaseModel
}

// TableName 指定表名
func (Account) TableName() string { return "accounts" }

// [自证通过] internal/model/account.go
