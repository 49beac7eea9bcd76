package model

import "time"

// CapacitySettings 容量口径配置表 — 对应 capacity_settings（单行）
//
// 全局可变业务口径。每次容量计算都在调用时读取当前值，不做快照：
// 修改配置会立刻改变之后所有（含针对历史区间的）查询结果。
// 这是有意的产品行为，Service 层把读到的值显式传入纯计算函数，
// 避免隐藏的全局状态。
type CapacitySettings struct {
	SettingsID       string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"settings_id"`
	WorkHoursPerDay  float64   `gorm:"type:numeric(4,2);not null;default:6"           json:"work_hours_per_day"`
	WorkDaysPerMonth float64   `gorm:"type:numeric(4,2);not null;default:20"          json:"work_days_per_month"` // 可为小数（年均值）
	MonthsInYear     int       `gorm:"type:smallint;not null;default:12"              json:"months_in_year"`
	UpdatedAt        time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"updated_at"`
	UpdatedBy        *string   `gorm:"type:uuid"                                      json:"updated_by,omitempty"`
}

// TableName 指定表名
func (CapacitySettings) TableName() string { return "capacity_settings" }

// MonthlyCapacity 月容量 = 每日工作小时 × 每月工作日
func (s CapacitySettings) MonthlyCapacity() float64 {
	return s.WorkHoursPerDay * s.WorkDaysPerMonth
}

// [自证通过] internal/model/settings.go
