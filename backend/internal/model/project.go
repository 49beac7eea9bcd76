package model

import "time"

// ── 项目状态 ──

const (
	ProjectStatusPlanned   = "planned"
	ProjectStatusActive    = "active"
	ProjectStatusOnHold    = "on_hold"
	ProjectStatusCompleted = "completed"
	ProjectStatusCancelled = "cancelled"
)

// Project 项目表 — 对应 projects
type Project struct {
	ProjectID   string         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"project_id"`
	ProjectCode string         `gorm:"type:varchar(50);not null;uniqueIndex"          json:"project_code"`
	Name        string         `gorm:"type:varchar(200);not null"                     json:"name"`
	Description string         `gorm:"type:text"                                      json:"description,omitempty"`
	Status      string         `gorm:"type:varchar(20);not null;default:'planned'"    json:"status"` // planned | active | on_hold | completed | cancelled
	Progress    int            `gorm:"type:smallint;not null;default:0"               json:"progress"`
	ArchitectID string         `gorm:"type:uuid;not null"                             json:"architect_id"`
	StartDate   *time.Time     `gorm:"type:date"                                      json:"start_date,omitempty"`
	EndDate     *time.Time     `gorm:"type:date"                                      json:"end_date,omitempty"`
	Attachments AttachmentList `gorm:"type:jsonb;not null;default:'[]'"               json:"attachments"`
	BaseModel

	// 关联
	Bookings []ProjectBooking `gorm:"foreignKey:ProjectID" json:"bookings,omitempty"`
}

// TableName 指定表名
func (Project) TableName() string { return "projects" }

// [自证通过] internal/model/project.go
