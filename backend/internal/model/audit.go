package model

import "time"

// AuditLog 审计日志表 — 对应 audit_logs（纯追加，仅供追溯）
//
// 预订创建成功后写入一条；写入失败只记日志告警，不影响业务结果。
type AuditLog struct {
	AuditID   string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"audit_id"`
	Action    string    `gorm:"type:varchar(50);not null"                      json:"action"`
	TableName string    `gorm:"type:varchar(50);not null"                      json:"table_name"`
	RecordID  *string   `gorm:"type:uuid"                                      json:"record_id,omitempty"`
	Changes   string    `gorm:"type:jsonb;not null;default:'{}'"               json:"changes"`
	CallerID  *string   `gorm:"type:uuid"                                      json:"caller_id,omitempty"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
}
